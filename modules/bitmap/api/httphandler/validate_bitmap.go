package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/bitmap-indexer/common/errs"
	"github.com/gaze-network/bitmap-indexer/modules/bitmap/internal/entity"
	"github.com/gofiber/fiber/v2"
)

type validateBitmapResponse = HttpResponse[entity.ValidationResult]

func (h *HttpHandler) ValidateBitmap(ctx *fiber.Ctx) error {
	number, err := parseBitmapNumber(ctx.Params("number"))
	if err != nil {
		return errors.WithStack(err)
	}
	expectedId, err := parseExpectedId(ctx.Query("expected_id"))
	if err != nil {
		return errors.WithStack(err)
	}

	result, err := h.usecase.ValidateBitmap(ctx.UserContext(), number, expectedId)
	if err != nil {
		if errors.Is(err, errs.OutOfRange) {
			return errs.WithPublicMessage(err, "bitmap number out of range")
		}
		return errors.Wrap(err, "error during ValidateBitmap")
	}

	resp := validateBitmapResponse{
		Result: result,
	}

	return errors.WithStack(ctx.JSON(resp))
}
