package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/bitmap-indexer/common/errs"
	"github.com/gofiber/fiber/v2"
)

type getSatResult struct {
	Number int64  `json:"number"`
	Sat    uint64 `json:"sat"`
}

type getSatResponse = HttpResponse[getSatResult]

func (h *HttpHandler) GetSat(ctx *fiber.Ctx) error {
	number, err := parseBitmapNumber(ctx.Params("number"))
	if err != nil {
		return errors.WithStack(err)
	}

	sat, err := h.usecase.GetSat(ctx.UserContext(), number)
	if err != nil {
		if errors.Is(err, errs.OutOfRange) {
			return errs.WithPublicMessage(err, "bitmap number out of range")
		}
		return errors.Wrap(err, "error during GetSat")
	}

	resp := getSatResponse{
		Result: &getSatResult{
			Number: number,
			Sat:    sat,
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
