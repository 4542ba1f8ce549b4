package satindex

import (
	"context"
	"strconv"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/bitmap-indexer/common/errs"
	"github.com/gaze-network/bitmap-indexer/modules/bitmap/constants"
	"github.com/gaze-network/bitmap-indexer/pkg/logger"
	"github.com/gaze-network/bitmap-indexer/pkg/logger/slogx"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Store resolves bitmap numbers to sat numbers through lazily decoded index
// pages. Pages are fetched and decoded at most once per process; once cached
// they are immutable and shared by any number of readers. The domain is small
// and historical, so there is no eviction.
type Store struct {
	source PageSource
	group  singleflight.Group

	mu    sync.RWMutex
	pages map[int][]uint64
}

func NewStore(source PageSource) *Store {
	return &Store{
		source: source,
		pages:  make(map[int][]uint64),
	}
}

// GetSat returns the sat number carrying bitmap number n.
func (s *Store) GetSat(ctx context.Context, n int64) (uint64, error) {
	if n < 0 || n > constants.MaxBitmapNumber {
		return 0, errors.Wrapf(errs.OutOfRange, "bitmap number %d", n)
	}

	page, err := s.page(ctx, int(n/constants.PageSize))
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return page[n%constants.PageSize], nil
}

// GetSatsRange returns the sat numbers for bitmap numbers [start, end],
// inclusive on both ends.
func (s *Store) GetSatsRange(ctx context.Context, start, end int64) ([]uint64, error) {
	if start > end {
		return nil, errors.Wrapf(errs.InvalidArgument, "start %d is after end %d", start, end)
	}
	if start < 0 || end > constants.MaxBitmapNumber {
		return nil, errors.Wrapf(errs.OutOfRange, "bitmap range [%d, %d]", start, end)
	}

	sats := make([]uint64, 0, end-start+1)
	for n := start; n <= end; n++ {
		sat, err := s.GetSat(ctx, n)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		sats = append(sats, sat)
	}
	return sats, nil
}

// Prefetch warms every index page concurrently. Used at startup when
// configured; lookups do not require it.
func (s *Store) Prefetch(ctx context.Context) error {
	eg, ectx := errgroup.WithContext(ctx)
	for p := 0; p < constants.PageCount; p++ {
		p := p
		eg.Go(func() error {
			_, err := s.page(ectx, p)
			return errors.Wrapf(err, "can't prefetch page %d", p)
		})
	}
	return errors.WithStack(eg.Wait())
}

// page returns the decoded sat array for one page, fetching and decoding it
// if not cached. Concurrent first-access for the same page is collapsed into
// a single fetch.
func (s *Store) page(ctx context.Context, p int) ([]uint64, error) {
	s.mu.RLock()
	cached, ok := s.pages[p]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	result, err, _ := s.group.Do(strconv.Itoa(p), func() (any, error) {
		// re-check under the flight in case a previous flight completed
		s.mu.RLock()
		cached, ok := s.pages[p]
		s.mu.RUnlock()
		if ok {
			return cached, nil
		}

		raw, err := s.source.FetchPage(ctx, p)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		parsed, strategy, err := parsePage(p, raw)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		sats, err := decodePage(parsed)
		if err != nil {
			return nil, errors.Wrapf(err, "can't decode page %d", p)
		}

		logger.InfoContext(ctx, "Decoded sat index page",
			slogx.Int("page", p),
			slogx.String("source", s.source.Name()),
			slogx.String("strategy", string(strategy)),
			slogx.Int("entries", len(parsed.deltas)),
		)

		s.mu.Lock()
		s.pages[p] = sats
		s.mu.Unlock()
		return sats, nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return result.([]uint64), nil
}
