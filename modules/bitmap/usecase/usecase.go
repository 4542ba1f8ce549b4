package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/bitmap-indexer/modules/bitmap/internal/entity"
	"github.com/gaze-network/bitmap-indexer/modules/bitmap/internal/ordinals"
	"github.com/gaze-network/bitmap-indexer/modules/bitmap/internal/satindex"
	"github.com/gaze-network/bitmap-indexer/modules/bitmap/internal/validator"
)

type Usecase struct {
	store     *satindex.Store
	resolver  *validator.CanonicalResolver
	validator *validator.Validator
}

func New(store *satindex.Store, resolver *validator.CanonicalResolver, validator *validator.Validator) *Usecase {
	return &Usecase{
		store:     store,
		resolver:  resolver,
		validator: validator,
	}
}

func (u *Usecase) GetSat(ctx context.Context, n int64) (uint64, error) {
	sat, err := u.store.GetSat(ctx, n)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return sat, nil
}

func (u *Usecase) GetSatsRange(ctx context.Context, start, end int64) ([]uint64, error) {
	sats, err := u.store.GetSatsRange(ctx, start, end)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return sats, nil
}

func (u *Usecase) ResolveCanonical(ctx context.Context, n int64) (validator.CanonicalClaim, error) {
	claim, err := u.resolver.Resolve(ctx, n)
	if err != nil {
		return validator.CanonicalClaim{}, errors.WithStack(err)
	}
	return claim, nil
}

func (u *Usecase) ValidateBitmap(ctx context.Context, n int64, expectedId *ordinals.InscriptionId) (*entity.ValidationResult, error) {
	result, err := u.validator.ValidateBitmap(ctx, n, expectedId)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return result, nil
}

func (u *Usecase) ValidateParcel(ctx context.Context, parcelNumber, n int64, expectedId *ordinals.InscriptionId) (*entity.ValidationResult, error) {
	result, err := u.validator.ValidateParcel(ctx, parcelNumber, n, expectedId)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return result, nil
}

func (u *Usecase) ValidateContent(ctx context.Context, content string, expectedId *ordinals.InscriptionId) (*entity.ValidationResult, error) {
	result, err := u.validator.ValidateContent(ctx, content, expectedId)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return result, nil
}

// PrefetchPages warms the sat index page cache.
func (u *Usecase) PrefetchPages(ctx context.Context) error {
	return errors.WithStack(u.store.Prefetch(ctx))
}
