package validator

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/bitmap-indexer/common/errs"
	"github.com/gaze-network/bitmap-indexer/modules/bitmap/constants"
	"github.com/gaze-network/bitmap-indexer/modules/bitmap/internal/exceptions"
	"github.com/gaze-network/bitmap-indexer/modules/bitmap/internal/ordinals"
	"github.com/gaze-network/bitmap-indexer/modules/bitmap/internal/satindex"
)

// CanonicalClaim is a fully resolved bitmap claim: the sat carrying the
// district, the ordinal index of the recognized inscription on that sat, and
// the inscription id found there.
type CanonicalClaim struct {
	BitmapNumber int64                  `json:"number"`
	Sat          uint64                 `json:"sat"`
	SatIndex     int64                  `json:"satIndex"`
	Id           ordinals.InscriptionId `json:"id"`
}

// CanonicalResolver resolves a bitmap number to its canonical inscription via
// the sat index, the curated exception table, and the ord data service.
type CanonicalResolver struct {
	store      *satindex.Store
	datasource ordinals.Datasource
}

func NewCanonicalResolver(store *satindex.Store, datasource ordinals.Datasource) *CanonicalResolver {
	return &CanonicalResolver{
		store:      store,
		datasource: datasource,
	}
}

// Resolve returns the canonical claim for a bitmap number. Fails with
// errs.OutOfRange for out-of-domain numbers and errs.RemoteLookup (or
// errs.NotFound) when the downstream query cannot produce an id.
func (r *CanonicalResolver) Resolve(ctx context.Context, n int64) (CanonicalClaim, error) {
	if n < 0 || n > constants.MaxBitmapNumber {
		return CanonicalClaim{}, errors.Wrapf(errs.OutOfRange, "bitmap number %d", n)
	}

	sat, err := r.store.GetSat(ctx, n)
	if err != nil {
		return CanonicalClaim{}, errors.Wrapf(err, "can't resolve sat for bitmap %d", n)
	}

	satIndex := exceptions.GetSatIndex(n)

	id, err := r.datasource.GetSatInscriptionId(ctx, sat, satIndex)
	if err != nil {
		return CanonicalClaim{}, errors.Wrapf(err, "can't resolve inscription at index %d of sat %d", satIndex, sat)
	}

	return CanonicalClaim{
		BitmapNumber: n,
		Sat:          sat,
		SatIndex:     satIndex,
		Id:           id,
	}, nil
}
