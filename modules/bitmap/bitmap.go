package bitmap

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/bitmap-indexer/common/errs"
	"github.com/gaze-network/bitmap-indexer/internal/config"
	bitmapapi "github.com/gaze-network/bitmap-indexer/modules/bitmap/api"
	"github.com/gaze-network/bitmap-indexer/modules/bitmap/internal/ordinals"
	"github.com/gaze-network/bitmap-indexer/modules/bitmap/internal/satindex"
	"github.com/gaze-network/bitmap-indexer/modules/bitmap/internal/validator"
	bitmapusecase "github.com/gaze-network/bitmap-indexer/modules/bitmap/usecase"
	"github.com/gaze-network/bitmap-indexer/pkg/logger"
	"github.com/gaze-network/bitmap-indexer/pkg/retry"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/do/v2"
	"github.com/samber/lo"
)

const Version = "v0.1.0"

// Module wires the bitmap validation surface: sat index store, canonical
// resolver, claim validator, and its HTTP API.
type Module struct {
	usecase       *bitmapusecase.Usecase
	prefetchPages bool
}

func New(injector do.Injector) (*Module, error) {
	ctx := do.MustInvoke[context.Context](injector)
	conf := do.MustInvoke[config.Config](injector)
	moduleConf := conf.Modules.Bitmap

	ordEndpoint := lo.Ternary(moduleConf.OrdEndpoint != "", moduleConf.OrdEndpoint, conf.Network.DefaultOrdEndpoint())
	ordClient, err := ordinals.NewClient(ordEndpoint, ordinals.ClientOptions{
		RequestTimeout:    moduleConf.RequestTimeout,
		RequestsPerSecond: moduleConf.RequestsPerSecond,
		Retry:             retry.DefaultPolicy,
		Debug:             moduleConf.Debug,
	})
	if err != nil {
		return nil, errors.Wrap(err, "can't create ord client")
	}

	var pageSource satindex.PageSource
	switch strings.ToLower(moduleConf.PageSource) {
	case "s3":
		pageSource, err = satindex.NewS3PageSource(ctx, moduleConf.S3)
		if err != nil {
			if errors.Is(err, errs.InvalidArgument) {
				return nil, errors.Wrap(err, "invalid s3 page source configuration")
			}
			return nil, errors.Wrap(err, "can't create s3 page source")
		}
	case "", "ord":
		pageIds := make([]ordinals.InscriptionId, 0, len(moduleConf.PageIds))
		for i, raw := range moduleConf.PageIds {
			id, err := ordinals.NewInscriptionIdFromString(strings.TrimSpace(raw))
			if err != nil {
				return nil, errors.Wrapf(err, "invalid page inscription id at position %d", i)
			}
			pageIds = append(pageIds, id)
		}
		pageSource, err = satindex.NewOrdPageSource(ordClient, pageIds)
		if err != nil {
			return nil, errors.Wrap(err, "invalid ord page source configuration")
		}
	default:
		return nil, errors.Wrapf(errs.Unsupported, "%q page source is not supported", moduleConf.PageSource)
	}

	store := satindex.NewStore(pageSource)
	resolver := validator.NewCanonicalResolver(store, ordClient)
	claimValidator := validator.New(resolver, ordClient)
	usecase := bitmapusecase.New(store, resolver, claimValidator)

	// Mount API
	httpServer := do.MustInvoke[*fiber.App](injector)
	httpHandler := bitmapapi.NewHTTPHandler(conf.Network, usecase)
	if err := httpHandler.Mount(httpServer); err != nil {
		return nil, errors.Wrap(err, "can't mount Bitmap API")
	}
	logger.InfoContext(ctx, "Mounted HTTP handler")

	return &Module{
		usecase:       usecase,
		prefetchPages: moduleConf.PrefetchPages,
	}, nil
}

// Start warms the sat index page cache when configured. Lookups decode pages
// lazily either way; prefetching only front-loads the cost.
func (m *Module) Start(ctx context.Context) error {
	if !m.prefetchPages {
		return nil
	}
	logger.InfoContext(ctx, "Prefetching sat index pages")
	if err := m.usecase.PrefetchPages(ctx); err != nil {
		return errors.Wrap(err, "can't prefetch sat index pages")
	}
	return nil
}
