package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/bitmap-indexer/common/errs"
	"github.com/gaze-network/bitmap-indexer/modules/bitmap/internal/validator"
	"github.com/gofiber/fiber/v2"
)

type getCanonicalResponse = HttpResponse[validator.CanonicalClaim]

func (h *HttpHandler) GetCanonical(ctx *fiber.Ctx) error {
	number, err := parseBitmapNumber(ctx.Params("number"))
	if err != nil {
		return errors.WithStack(err)
	}

	claim, err := h.usecase.ResolveCanonical(ctx.UserContext(), number)
	if err != nil {
		if errors.Is(err, errs.OutOfRange) {
			return errs.WithPublicMessage(err, "bitmap number out of range")
		}
		if errors.Is(err, errs.NotFound) {
			return errs.NewPublicError("no canonical inscription found")
		}
		return errors.Wrap(err, "error during ResolveCanonical")
	}

	resp := getCanonicalResponse{
		Result: &claim,
	}

	return errors.WithStack(ctx.JSON(resp))
}
