package retry

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyDo(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds first attempt", func(t *testing.T) {
		calls := 0
		err := Policy{MaxAttempts: 3, Backoff: Fixed(0)}.Do(ctx, func(context.Context) error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries until success", func(t *testing.T) {
		calls := 0
		err := Policy{MaxAttempts: 3, Backoff: Fixed(0)}.Do(ctx, func(context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("exhausts attempts", func(t *testing.T) {
		calls := 0
		err := Policy{MaxAttempts: 3, Backoff: Fixed(0)}.Do(ctx, func(context.Context) error {
			calls++
			return errors.New("transient")
		})
		require.Error(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("permanent error stops immediately", func(t *testing.T) {
		sentinel := errors.New("gone")
		calls := 0
		err := Policy{MaxAttempts: 3, Backoff: Fixed(0)}.Do(ctx, func(context.Context) error {
			calls++
			return Permanent(sentinel)
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, sentinel)
		assert.Equal(t, 1, calls)
	})

	t.Run("zero max attempts still runs once", func(t *testing.T) {
		calls := 0
		err := Policy{}.Do(ctx, func(context.Context) error {
			calls++
			return errors.New("transient")
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("canceled context aborts retries", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		calls := 0
		err := Policy{MaxAttempts: 5, Backoff: Fixed(time.Minute)}.Do(cctx, func(context.Context) error {
			calls++
			cancel()
			return errors.New("transient")
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}

func TestPermanentNil(t *testing.T) {
	assert.NoError(t, Permanent(nil))
}
