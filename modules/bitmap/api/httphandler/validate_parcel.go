package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/bitmap-indexer/common/errs"
	"github.com/gaze-network/bitmap-indexer/modules/bitmap/internal/entity"
	"github.com/gofiber/fiber/v2"
)

type validateParcelResponse = HttpResponse[entity.ValidationResult]

func (h *HttpHandler) ValidateParcel(ctx *fiber.Ctx) error {
	number, err := parseBitmapNumber(ctx.Params("number"))
	if err != nil {
		return errors.WithStack(err)
	}
	parcel, err := parseBitmapNumber(ctx.Params("parcel"))
	if err != nil {
		return errors.WithStack(errs.NewPublicError("'parcel' must be an integer"))
	}
	if parcel < 0 {
		return errors.WithStack(errs.NewPublicError("'parcel' must be non-negative"))
	}
	expectedId, err := parseExpectedId(ctx.Query("expected_id"))
	if err != nil {
		return errors.WithStack(err)
	}

	result, err := h.usecase.ValidateParcel(ctx.UserContext(), parcel, number, expectedId)
	if err != nil {
		if errors.Is(err, errs.OutOfRange) {
			return errs.WithPublicMessage(err, "bitmap number out of range")
		}
		return errors.Wrap(err, "error during ValidateParcel")
	}

	resp := validateParcelResponse{
		Result: result,
	}

	return errors.WithStack(ctx.JSON(resp))
}
