package httphandler

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/bitmap-indexer/common/errs"
	"github.com/gaze-network/bitmap-indexer/modules/bitmap/constants"
	"github.com/gaze-network/bitmap-indexer/modules/bitmap/internal/entity"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

type validateQuery struct {
	Number     int64  `json:"number"`
	Parcel     *int64 `json:"parcel"`
	ExpectedId string `json:"expectedId"`
}

type validateBatchRequest struct {
	Queries []validateQuery `json:"queries"`
}

const validateBatchMaxQueries = 25

func (r validateBatchRequest) Validate() error {
	var errList []error
	if len(r.Queries) == 0 {
		errList = append(errList, errors.New("at least one query is required"))
	}
	if len(r.Queries) > validateBatchMaxQueries {
		errList = append(errList, errors.Errorf("cannot exceed %d queries", validateBatchMaxQueries))
	}
	for i, query := range r.Queries {
		if query.Number < 0 || query.Number > constants.MaxBitmapNumber {
			errList = append(errList, errors.Errorf("queries[%d]: 'number' must be in [0, %d]", i, constants.MaxBitmapNumber))
		}
		if query.Parcel != nil && *query.Parcel < 0 {
			errList = append(errList, errors.Errorf("queries[%d]: 'parcel' must be non-negative", i))
		}
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type validateBatchResult struct {
	List []*entity.ValidationResult `json:"list"`
}

type validateBatchResponse = HttpResponse[validateBatchResult]

func (h *HttpHandler) ValidateBatch(ctx *fiber.Ctx) error {
	var req validateBatchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	processQuery := func(ctx context.Context, query validateQuery, queryIndex int) (*entity.ValidationResult, error) {
		expectedId, err := parseExpectedId(query.ExpectedId)
		if err != nil {
			return nil, errs.WithPublicMessage(err, fmt.Sprintf("queries[%d]", queryIndex))
		}
		if query.Parcel != nil {
			return h.usecase.ValidateParcel(ctx, *query.Parcel, query.Number, expectedId)
		}
		return h.usecase.ValidateBitmap(ctx, query.Number, expectedId)
	}

	results := make([]*entity.ValidationResult, len(req.Queries))
	eg, ectx := errgroup.WithContext(ctx.UserContext())
	for i, query := range req.Queries {
		i := i
		query := query
		eg.Go(func() error {
			result, err := processQuery(ectx, query, i)
			if err != nil {
				return errors.Wrapf(err, "error during processQuery for query %d", i)
			}
			results[i] = result
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return errors.WithStack(err)
	}

	resp := validateBatchResponse{
		Result: &validateBatchResult{
			List: results,
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
