package validator

import (
	"context"
	"fmt"
	"testing"

	"github.com/gaze-network/bitmap-indexer/common/errs"
	"github.com/gaze-network/bitmap-indexer/modules/bitmap/internal/satindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	ctx := context.Background()

	store := satindex.NewStore(staticPageSource{pages: map[int]string{
		// bitmap 92871 -> sat 7777, bitmap 177700 is on page 1
		0: `[[7777],[92871]]`,
		1: `[[5000000000],[77700]]`,
	}})

	t.Run("resolves through default sat index", func(t *testing.T) {
		d := newFakeDatasource()
		expected := mustId("a", 0)
		d.satInscriptions[fmt.Sprintf("%d/0", testSat)] = expected
		resolver := NewCanonicalResolver(store, d)

		claim, err := resolver.Resolve(ctx, testBitmapNumber)
		require.NoError(t, err)
		assert.Equal(t, testBitmapNumber, claim.BitmapNumber)
		assert.Equal(t, testSat, claim.Sat)
		assert.Equal(t, int64(0), claim.SatIndex)
		assert.Equal(t, expected, claim.Id)
	})

	t.Run("reinscribed sat uses the curated index", func(t *testing.T) {
		d := newFakeDatasource()
		expected := mustId("b", 0)
		d.satInscriptions["7777/1"] = expected
		resolver := NewCanonicalResolver(store, d)

		claim, err := resolver.Resolve(ctx, 92871)
		require.NoError(t, err)
		assert.Equal(t, int64(1), claim.SatIndex)
		assert.Equal(t, expected, claim.Id)
	})

	t.Run("not found when the sat has no inscription", func(t *testing.T) {
		resolver := NewCanonicalResolver(store, newFakeDatasource())

		_, err := resolver.Resolve(ctx, testBitmapNumber)
		assert.ErrorIs(t, err, errs.NotFound)
	})

	t.Run("out of range", func(t *testing.T) {
		resolver := NewCanonicalResolver(store, newFakeDatasource())

		_, err := resolver.Resolve(ctx, -1)
		assert.ErrorIs(t, err, errs.OutOfRange)

		_, err = resolver.Resolve(ctx, 840000)
		assert.ErrorIs(t, err, errs.OutOfRange)
	})
}
