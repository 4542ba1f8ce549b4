package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/bitmap-indexer/common/errs"
	"github.com/gofiber/fiber/v2"
)

const getSatsRangeMaxSpan = 1000

type getSatsRangeRequest struct {
	Start int64 `query:"start"`
	End   int64 `query:"end"`
}

func (r getSatsRangeRequest) Validate() error {
	var errList []error
	if r.Start > r.End {
		errList = append(errList, errors.New("'start' must not be after 'end'"))
	}
	if r.End-r.Start+1 > getSatsRangeMaxSpan {
		errList = append(errList, errors.Errorf("range cannot exceed %d numbers", getSatsRangeMaxSpan))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type getSatsRangeResult struct {
	Start int64    `json:"start"`
	End   int64    `json:"end"`
	Sats  []uint64 `json:"sats"`
}

type getSatsRangeResponse = HttpResponse[getSatsRangeResult]

func (h *HttpHandler) GetSatsRange(ctx *fiber.Ctx) error {
	var req getSatsRangeRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	sats, err := h.usecase.GetSatsRange(ctx.UserContext(), req.Start, req.End)
	if err != nil {
		if errors.Is(err, errs.OutOfRange) || errors.Is(err, errs.InvalidArgument) {
			return errs.WithPublicMessage(err, "invalid range")
		}
		return errors.Wrap(err, "error during GetSatsRange")
	}

	resp := getSatsRangeResponse{
		Result: &getSatsRangeResult{
			Start: req.Start,
			End:   req.End,
			Sats:  sats,
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
