package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/bitmap-indexer/common/errs"
	"github.com/gaze-network/bitmap-indexer/modules/bitmap/internal/entity"
	"github.com/gofiber/fiber/v2"
)

type validateContentRequest struct {
	Content    string `json:"content"`
	ExpectedId string `json:"expectedId"`
}

func (r validateContentRequest) Validate() error {
	var errList []error
	if r.Content == "" {
		errList = append(errList, errors.New("'content' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type validateContentResponse = HttpResponse[entity.ValidationResult]

func (h *HttpHandler) ValidateContent(ctx *fiber.Ctx) error {
	var req validateContentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}
	expectedId, err := parseExpectedId(req.ExpectedId)
	if err != nil {
		return errors.WithStack(err)
	}

	result, err := h.usecase.ValidateContent(ctx.UserContext(), req.Content, expectedId)
	if err != nil {
		return errors.Wrap(err, "error during ValidateContent")
	}

	resp := validateContentResponse{
		Result: result,
	}

	return errors.WithStack(ctx.JSON(resp))
}
