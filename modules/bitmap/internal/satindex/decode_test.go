package satindex

import (
	"testing"

	"github.com/gaze-network/bitmap-indexer/modules/bitmap/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePage(t *testing.T) {
	t.Run("delta reconstruction with permutation", func(t *testing.T) {
		parsed := rawPage{
			deltas: []int64{100, 5, -2},
			perm:   []int64{2, 0, 1},
		}

		sats, err := decodePage(parsed)
		require.NoError(t, err)
		require.Len(t, sats, constants.PageSize)

		// absolutes are [100, 105, 103], permuted into bitmap-offset order
		assert.Equal(t, uint64(100), sats[2])
		assert.Equal(t, uint64(105), sats[0])
		assert.Equal(t, uint64(103), sats[1])
	})

	t.Run("unset positions hold sentinel zero", func(t *testing.T) {
		parsed := rawPage{
			deltas: []int64{42},
			perm:   []int64{99999},
		}

		sats, err := decodePage(parsed)
		require.NoError(t, err)
		assert.Equal(t, uint64(42), sats[99999])
		assert.Equal(t, uint64(0), sats[0])
	})

	t.Run("error on permutation offset out of bounds", func(t *testing.T) {
		parsed := rawPage{
			deltas: []int64{42},
			perm:   []int64{100000},
		}

		_, err := decodePage(parsed)
		assert.Error(t, err)
	})

	t.Run("error on non-positive reconstructed sat", func(t *testing.T) {
		parsed := rawPage{
			deltas: []int64{100, -100},
			perm:   []int64{0, 1},
		}

		_, err := decodePage(parsed)
		assert.Error(t, err)
	})
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		name             string
		page             int
		raw              string
		expectedDeltas   []int64
		expectedPerm     []int64
		expectedStrategy DecodeStrategy
		shouldError      bool
	}{
		{
			name:             "strict canonical payload",
			page:             0,
			raw:              `[[100,5,-2],[2,0,1]]`,
			expectedDeltas:   []int64{100, 5, -2},
			expectedPerm:     []int64{2, 0, 1},
			expectedStrategy: StrategyStrict,
		},
		{
			name:             "newline-indented payload repaired",
			page:             1,
			raw:              "[[100,\n  5,\n  -2],[2,\n  0,\n  1]]",
			expectedDeltas:   []int64{100, 5, -2},
			expectedPerm:     []int64{2, 0, 1},
			expectedStrategy: StrategyStrict,
		},
		{
			name:             "newline run inside a number repaired",
			page:             1,
			raw:              "[[1\n  00,5,-2],[2,0,1]]",
			expectedDeltas:   []int64{100, 5, -2},
			expectedPerm:     []int64{2, 0, 1},
			expectedStrategy: StrategyStripNewlineRuns,
		},
		{
			name:             "double space inside a number repaired",
			page:             1,
			raw:              "[[1  00,5,-2],[2,0,1]]",
			expectedDeltas:   []int64{100, 5, -2},
			expectedPerm:     []int64{2, 0, 1},
			expectedStrategy: StrategyStripDoubleSpace,
		},
		{
			name:             "concatenated fragments wrapped and split",
			page:             2,
			raw:              `[100,5][-2,17][2,0][1,3]`,
			expectedDeltas:   []int64{100, 5, -2, 17},
			expectedPerm:     []int64{2, 0, 1, 3},
			expectedStrategy: StrategyWrapSplit,
		},
		{
			name:             "page 3 also uses wrap split",
			page:             3,
			raw:              `[100][2]`,
			expectedDeltas:   []int64{100},
			expectedPerm:     []int64{2},
			expectedStrategy: StrategyWrapSplit,
		},
		{
			name:        "error on odd fragment entries",
			page:        2,
			raw:         `[100,5][2]`,
			shouldError: true,
		},
		{
			name:        "error on single sequence",
			page:        0,
			raw:         `[[100,5,-2]]`,
			shouldError: true,
		},
		{
			name:        "error on unparseable payload",
			page:        0,
			raw:         `not json at all`,
			shouldError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, strategy, err := parsePage(tt.page, tt.raw)
			if tt.shouldError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedDeltas, parsed.deltas)
			assert.Equal(t, tt.expectedPerm, parsed.perm)
			assert.Equal(t, tt.expectedStrategy, strategy)
		})
	}
}
