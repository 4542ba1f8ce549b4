package satindex

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/bitmap-indexer/common/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePageSource serves synthetic pages and counts fetches per page.
type fakePageSource struct {
	pages   map[int]string
	fetches map[int]*atomic.Int64
	mu      sync.Mutex
}

func newFakePageSource(pages map[int]string) *fakePageSource {
	return &fakePageSource{
		pages:   pages,
		fetches: make(map[int]*atomic.Int64),
	}
}

func (*fakePageSource) Name() string {
	return "fake"
}

func (s *fakePageSource) FetchPage(_ context.Context, page int) (string, error) {
	s.mu.Lock()
	counter, ok := s.fetches[page]
	if !ok {
		counter = &atomic.Int64{}
		s.fetches[page] = counter
	}
	s.mu.Unlock()
	counter.Add(1)

	raw, ok := s.pages[page]
	if !ok {
		return "", errors.Errorf("no page %d", page)
	}
	return raw, nil
}

func (s *fakePageSource) fetchCount(page int) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	counter, ok := s.fetches[page]
	if !ok {
		return 0
	}
	return counter.Load()
}

func TestStoreGetSat(t *testing.T) {
	ctx := context.Background()

	source := newFakePageSource(map[int]string{
		// page 0: bitmap 0 -> sat 100, bitmap 1 -> sat 103, bitmap 2 -> sat 105
		0: `[[100,5,-2],[2,0,1]]`,
		// page 1: bitmap 177700 -> sat 5000000000
		1: `[[5000000000],[77700]]`,
	})
	store := NewStore(source)

	t.Run("resolves sats on page 0", func(t *testing.T) {
		sat, err := store.GetSat(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, uint64(105), sat)

		sat, err = store.GetSat(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, uint64(100), sat)
	})

	t.Run("resolves sats on another page", func(t *testing.T) {
		sat, err := store.GetSat(ctx, 177700)
		require.NoError(t, err)
		assert.Equal(t, uint64(5000000000), sat)
	})

	t.Run("deterministic across repeated calls", func(t *testing.T) {
		first, err := store.GetSat(ctx, 177700)
		require.NoError(t, err)
		second, err := store.GetSat(ctx, 177700)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("pages are fetched at most once", func(t *testing.T) {
		assert.Equal(t, int64(1), source.fetchCount(0))
		assert.Equal(t, int64(1), source.fetchCount(1))
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := store.GetSat(ctx, -1)
		assert.ErrorIs(t, err, errs.OutOfRange)

		_, err = store.GetSat(ctx, 840000)
		assert.ErrorIs(t, err, errs.OutOfRange)
	})
}

func TestStoreGetSatsRange(t *testing.T) {
	ctx := context.Background()

	source := newFakePageSource(map[int]string{
		0: `[[100,5,-2],[2,0,1]]`,
	})
	store := NewStore(source)

	t.Run("inclusive bounds", func(t *testing.T) {
		sats, err := store.GetSatsRange(ctx, 0, 2)
		require.NoError(t, err)
		assert.Equal(t, []uint64{105, 103, 100}, sats)
	})

	t.Run("single number range", func(t *testing.T) {
		sats, err := store.GetSatsRange(ctx, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, []uint64{103}, sats)
	})

	t.Run("error on inverted range", func(t *testing.T) {
		_, err := store.GetSatsRange(ctx, 2, 1)
		assert.ErrorIs(t, err, errs.InvalidArgument)
	})

	t.Run("error on out-of-domain range", func(t *testing.T) {
		_, err := store.GetSatsRange(ctx, -1, 2)
		assert.ErrorIs(t, err, errs.OutOfRange)

		_, err = store.GetSatsRange(ctx, 839999, 840000)
		assert.ErrorIs(t, err, errs.OutOfRange)
	})

	t.Run("range does not refetch cached page", func(t *testing.T) {
		assert.Equal(t, int64(1), source.fetchCount(0))
	})
}

func TestStoreSingleFlight(t *testing.T) {
	ctx := context.Background()

	source := newFakePageSource(map[int]string{
		0: `[[100,5,-2],[2,0,1]]`,
	})
	store := NewStore(source)

	const goroutines = 50
	var wg sync.WaitGroup
	errCh := make(chan error, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.GetSat(ctx, 1); err != nil {
				errCh <- err
			}
		}()
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	// concurrent first-access must not trigger duplicate fetches
	assert.Equal(t, int64(1), source.fetchCount(0))
}

func TestStorePageFetchError(t *testing.T) {
	ctx := context.Background()

	source := newFakePageSource(map[int]string{})
	store := NewStore(source)

	_, err := store.GetSat(ctx, 0)
	require.Error(t, err)

	// a failed fetch must not poison the cache; make the page available and
	// retry
	source.mu.Lock()
	source.pages[0] = fmt.Sprintf(`[[%d],[0]]`, 42)
	source.mu.Unlock()

	sat, err := store.GetSat(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), sat)
}
