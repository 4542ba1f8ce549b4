package validator

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/bitmap-indexer/common/errs"
	"github.com/gaze-network/bitmap-indexer/modules/bitmap/constants"
	"github.com/gaze-network/bitmap-indexer/modules/bitmap/internal/entity"
	"github.com/gaze-network/bitmap-indexer/modules/bitmap/internal/ordinals"
	"github.com/gaze-network/bitmap-indexer/pkg/logger"
	"github.com/gaze-network/bitmap-indexer/pkg/logger/slogx"
	cstream "github.com/planxnx/concurrent-stream"
)

const defaultChildConcurrency = 8

// Validator produces validation verdicts for bitmap and parcel claims.
// Every call is independent and idempotent given a stable remote source; no
// state is persisted between calls.
type Validator struct {
	resolver    *CanonicalResolver
	datasource  ordinals.Datasource
	concurrency int
}

func New(resolver *CanonicalResolver, datasource ordinals.Datasource) *Validator {
	return &Validator{
		resolver:    resolver,
		datasource:  datasource,
		concurrency: defaultChildConcurrency,
	}
}

// childOutcome is the settled result of one child's validation. A child that
// could not be fetched has fetched=false and is excluded from the audit
// trail; a fetched child that fails format or eligibility checks carries a
// nil claim.
type childOutcome struct {
	id      ordinals.InscriptionId
	fetched bool
	claim   *entity.ParcelClaim
}

// ValidateBitmap validates the claim "bitmap #n" and enumerates its winning
// parcels. Only out-of-domain input returns an error; remote failures are
// folded into the returned verdict.
func (v *Validator) ValidateBitmap(ctx context.Context, n int64, expectedId *ordinals.InscriptionId) (*entity.ValidationResult, error) {
	if n < 0 || n > constants.MaxBitmapNumber {
		return nil, errors.Wrapf(errs.OutOfRange, "bitmap number %d", n)
	}

	details := &entity.ValidationDetails{
		BitmapNumber: n,
		ValidParcels: make([]*entity.ParcelClaim, 0),
		AllChildren:  make([]ordinals.InscriptionId, 0),
	}

	// Resolving
	canonical, err := v.resolver.Resolve(ctx, n)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return &entity.ValidationResult{
				Status:  entity.StatusInvalid,
				Message: "no canonical inscription found",
				Details: details,
			}, nil
		}
		logger.WarnContext(ctx, "Can't resolve canonical inscription",
			slogx.Error(err),
			slogx.Int64("bitmap_number", n),
		)
		return &entity.ValidationResult{
			Status:  entity.StatusUnknown,
			Message: "canonical inscription resolution failed",
			Details: details,
		}, nil
	}
	details.InscriptionId = &canonical.Id

	if expectedId != nil && *expectedId != canonical.Id {
		return &entity.ValidationResult{
			Status:  entity.StatusInvalid,
			Message: "inscription id mismatch",
			Details: details,
		}, nil
	}

	// ContentChecking
	content, err := v.datasource.GetContent(ctx, canonical.Id)
	if err != nil {
		logger.WarnContext(ctx, "Can't fetch canonical inscription content",
			slogx.Error(err),
			slogx.Stringer("id", canonical.Id),
		)
		return &entity.ValidationResult{
			Status:  entity.StatusUnknown,
			Message: "canonical content fetch failed",
			Details: details,
		}, nil
	}
	if !strings.Contains(content, strconv.FormatInt(n, 10)) || !strings.HasSuffix(content, constants.ContentSuffix) {
		return &entity.ValidationResult{
			Status:  entity.StatusInvalid,
			Message: "canonical content does not claim this bitmap",
			Details: details,
		}, nil
	}

	// Block 0 has no parcel upper bound; for the rest the bound is dropped if
	// block metadata is unavailable (permissive degradation).
	var transactionCount *uint64
	if n != 0 {
		blockInfo, err := v.datasource.GetBlockInfo(ctx, uint64(n))
		if err != nil {
			logger.WarnContext(ctx, "Can't fetch block info, parcel numbers will not be bounded",
				slogx.Error(err),
				slogx.Int64("height", n),
			)
		} else {
			transactionCount = &blockInfo.TransactionCount
		}
	}

	// EnumeratingChildren
	children, err := v.datasource.GetChildren(ctx, canonical.Id)
	if err != nil {
		logger.WarnContext(ctx, "Can't enumerate children",
			slogx.Error(err),
			slogx.Stringer("id", canonical.Id),
		)
		return &entity.ValidationResult{
			Status:  entity.StatusUnknown,
			Message: "children enumeration failed",
			Details: details,
		}, nil
	}

	// ValidatingParcels. The run waits for every child to settle before
	// reducing, so winner selection cannot depend on arrival order.
	outcomes := v.validateChildren(ctx, n, transactionCount, children)

	// Reducing
	winners := make(map[int64]*entity.ParcelClaim)
	for _, outcome := range outcomes {
		if !outcome.fetched {
			continue
		}
		details.AllChildren = append(details.AllChildren, outcome.id)

		claim := outcome.claim
		if claim == nil {
			continue
		}
		current, ok := winners[claim.ParcelNumber]
		if !ok || lessClaim(claim, current) {
			winners[claim.ParcelNumber] = claim
		}
	}

	details.ValidParcels = make([]*entity.ParcelClaim, 0, len(winners))
	for _, claim := range winners {
		details.ValidParcels = append(details.ValidParcels, claim)
	}
	sort.Slice(details.ValidParcels, func(i, j int) bool {
		return details.ValidParcels[i].ParcelNumber < details.ValidParcels[j].ParcelNumber
	})

	return &entity.ValidationResult{
		Status:  entity.StatusValid,
		Details: details,
	}, nil
}

// validateChildren fans out child content and metadata fetches over a bounded
// worker stream and collects every outcome. Individual failures drop the
// child, never the run.
func (v *Validator) validateChildren(ctx context.Context, parentNumber int64, transactionCount *uint64, children []ordinals.InscriptionId) []*childOutcome {
	out := make(chan *childOutcome)
	stream := cstream.NewStream(ctx, v.concurrency, out)

	// Wait for stream to finish and close out channel
	go func() {
		defer close(out)
		_ = stream.Wait()
	}()

	go func() {
		defer stream.Close()
		for _, child := range children {
			child := child
			stream.Go(func() *childOutcome {
				return v.validateChild(ctx, parentNumber, transactionCount, child)
			})
		}
	}()

	outcomes := make([]*childOutcome, 0, len(children))
	for outcome := range out {
		if outcome != nil {
			outcomes = append(outcomes, outcome)
		}
	}
	return outcomes
}

func (v *Validator) validateChild(ctx context.Context, parentNumber int64, transactionCount *uint64, id ordinals.InscriptionId) *childOutcome {
	content, err := v.datasource.GetContent(ctx, id)
	if err != nil {
		logger.DebugContext(ctx, "Dropping child, content fetch failed",
			slogx.Error(err),
			slogx.Stringer("id", id),
		)
		return &childOutcome{id: id, fetched: false}
	}

	parcelNumber, ok := parseParcelChild(content, parentNumber, transactionCount)
	if !ok {
		return &childOutcome{id: id, fetched: true}
	}

	inscription, err := v.datasource.GetInscription(ctx, id)
	if err != nil {
		logger.DebugContext(ctx, "Dropping child, metadata fetch failed",
			slogx.Error(err),
			slogx.Stringer("id", id),
		)
		return &childOutcome{id: id, fetched: false}
	}

	return &childOutcome{
		id:      id,
		fetched: true,
		claim: &entity.ParcelClaim{
			Id:           id,
			ParcelNumber: parcelNumber,
			Content:      content,
			Height:       inscription.Height,
		},
	}
}

// lessClaim is the tie-break rule: the earlier block wins, and within one
// block the lexicographically smaller inscription id. Commutative, so the
// reduction result is independent of child ordering.
func lessClaim(a, b *entity.ParcelClaim) bool {
	if a.Height != b.Height {
		return a.Height < b.Height
	}
	return a.Id.String() < b.Id.String()
}

// ValidateParcel validates the claim "parcel p of bitmap #n". The parent run
// is re-executed in full; callers needing to validate many parcels of one
// district should memoize ValidateBitmap themselves.
func (v *Validator) ValidateParcel(ctx context.Context, parcelNumber, n int64, expectedId *ordinals.InscriptionId) (*entity.ValidationResult, error) {
	result, err := v.ValidateBitmap(ctx, n, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	result.Details.IsParcel = true
	result.Details.ParcelNumber = &parcelNumber
	if result.Status != entity.StatusValid {
		return result, nil
	}

	var winner *entity.ParcelClaim
	for _, claim := range result.Details.ValidParcels {
		if claim.ParcelNumber == parcelNumber {
			winner = claim
			break
		}
	}
	if winner == nil {
		return &entity.ValidationResult{
			Status:  entity.StatusInvalid,
			Message: "parcel not found",
			Details: result.Details,
		}, nil
	}

	details := result.Details
	details.InscriptionId = &winner.Id
	if expectedId != nil && *expectedId != winner.Id {
		return &entity.ValidationResult{
			Status:  entity.StatusInvalid,
			Message: "inscription id mismatch",
			Details: details,
		}, nil
	}

	return &entity.ValidationResult{
		Status:  entity.StatusValid,
		Details: details,
	}, nil
}

// ValidateContent parses arbitrary inscription content and dispatches to the
// bitmap or parcel validator. Malformed content is rejected without any
// network call.
func (v *Validator) ValidateContent(ctx context.Context, content string, expectedId *ordinals.InscriptionId) (*entity.ValidationResult, error) {
	claim, err := ParseContent(content)
	if err != nil {
		return &entity.ValidationResult{
			Status:  entity.StatusInvalid,
			Message: "bad format",
		}, nil
	}

	if claim.BitmapNumber > constants.MaxBitmapNumber {
		return &entity.ValidationResult{
			Status:  entity.StatusPending,
			Message: "block not yet covered by the sat index",
			Details: &entity.ValidationDetails{
				BitmapNumber: claim.BitmapNumber,
				ParcelNumber: claim.ParcelNumber,
				IsParcel:     claim.IsParcel(),
				ValidParcels: make([]*entity.ParcelClaim, 0),
				AllChildren:  make([]ordinals.InscriptionId, 0),
			},
		}, nil
	}

	if claim.IsParcel() {
		return v.ValidateParcel(ctx, *claim.ParcelNumber, claim.BitmapNumber, expectedId)
	}
	return v.ValidateBitmap(ctx, claim.BitmapNumber, expectedId)
}
