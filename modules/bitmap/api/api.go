package api

import (
	"github.com/gaze-network/bitmap-indexer/common"
	"github.com/gaze-network/bitmap-indexer/modules/bitmap/api/httphandler"
	"github.com/gaze-network/bitmap-indexer/modules/bitmap/usecase"
)

func NewHTTPHandler(network common.Network, usecase *usecase.Usecase) *httphandler.HttpHandler {
	return httphandler.New(network, usecase)
}
