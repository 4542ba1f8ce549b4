package httphandler

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/bitmap-indexer/common"
	"github.com/gaze-network/bitmap-indexer/common/errs"
	"github.com/gaze-network/bitmap-indexer/modules/bitmap/internal/ordinals"
	"github.com/gaze-network/bitmap-indexer/modules/bitmap/usecase"
)

type HttpHandler struct {
	usecase *usecase.Usecase
	network common.Network
}

func New(network common.Network, usecase *usecase.Usecase) *HttpHandler {
	return &HttpHandler{
		usecase: usecase,
		network: network,
	}
}

type HttpResponse[T any] = common.HttpResponse[T]

func parseBitmapNumber(param string) (int64, error) {
	n, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return 0, errs.NewPublicError("'number' must be an integer")
	}
	return n, nil
}

// parseExpectedId parses an optional expected inscription id. An empty value
// yields nil (no expectation).
func parseExpectedId(value string) (*ordinals.InscriptionId, error) {
	if value == "" {
		return nil, nil
	}
	id, err := ordinals.NewInscriptionIdFromString(value)
	if err != nil {
		return nil, errors.WithStack(errs.NewPublicError("'expected_id' is not a valid inscription id"))
	}
	return &id, nil
}
