package validator

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContent(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		expected    ContentClaim
		shouldError bool
	}{
		{
			name:     "district claim",
			content:  "177700.bitmap",
			expected: ContentClaim{BitmapNumber: 177700},
		},
		{
			name:     "district zero",
			content:  "0.bitmap",
			expected: ContentClaim{BitmapNumber: 0},
		},
		{
			name:    "parcel claim",
			content: "0.177700.bitmap",
			expected: ContentClaim{
				BitmapNumber: 177700,
				ParcelNumber: lo.ToPtr(int64(0)),
			},
		},
		{
			name:    "parcel claim with larger parcel number",
			content: "42.800000.bitmap",
			expected: ContentClaim{
				BitmapNumber: 800000,
				ParcelNumber: lo.ToPtr(int64(42)),
			},
		},
		{
			name:        "error missing suffix",
			content:     "177700",
			shouldError: true,
		},
		{
			name:        "error non-numeric",
			content:     "abc.bitmap",
			shouldError: true,
		},
		{
			name:        "error empty content",
			content:     "",
			shouldError: true,
		},
		{
			name:        "error negative number",
			content:     "-1.bitmap",
			shouldError: true,
		},
		{
			name:        "error trailing garbage",
			content:     "177700.bitmap ",
			shouldError: true,
		},
		{
			name:        "error three dotted numbers",
			content:     "1.2.3.bitmap",
			shouldError: true,
		},
		{
			name:        "error suffix cased",
			content:     "177700.BITMAP",
			shouldError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claim, err := ParseContent(tt.content)
			if tt.shouldError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, claim)
		})
	}
}

func TestContentClaimIsParcel(t *testing.T) {
	assert.False(t, ContentClaim{BitmapNumber: 1}.IsParcel())
	assert.True(t, ContentClaim{BitmapNumber: 1, ParcelNumber: lo.ToPtr(int64(0))}.IsParcel())
}

func TestParseParcelChild(t *testing.T) {
	tests := []struct {
		name             string
		content          string
		parentNumber     int64
		transactionCount *uint64
		expectedParcel   int64
		expectedOk       bool
	}{
		{
			name:             "valid parcel",
			content:          "5.177700.bitmap",
			parentNumber:     177700,
			transactionCount: lo.ToPtr(uint64(6)),
			expectedParcel:   5,
			expectedOk:       true,
		},
		{
			name:             "parcel number at transaction count rejected",
			content:          "6.177700.bitmap",
			parentNumber:     177700,
			transactionCount: lo.ToPtr(uint64(6)),
			expectedOk:       false,
		},
		{
			name:           "unknown transaction count leaves parcel unbounded",
			content:        "999999.177700.bitmap",
			parentNumber:   177700,
			expectedParcel: 999999,
			expectedOk:     true,
		},
		{
			name:             "block zero has no upper bound",
			content:          "7.0.bitmap",
			parentNumber:     0,
			transactionCount: lo.ToPtr(uint64(1)),
			expectedParcel:   7,
			expectedOk:       true,
		},
		{
			name:             "wrong parent rejected",
			content:          "5.177701.bitmap",
			parentNumber:     177700,
			transactionCount: lo.ToPtr(uint64(6)),
			expectedOk:       false,
		},
		{
			name:             "district content is not a parcel",
			content:          "177700.bitmap",
			parentNumber:     177700,
			transactionCount: lo.ToPtr(uint64(6)),
			expectedOk:       false,
		},
		{
			name:             "leading zero parcel rejected",
			content:          "05.177700.bitmap",
			parentNumber:     177700,
			transactionCount: lo.ToPtr(uint64(6)),
			expectedOk:       false,
		},
		{
			name:             "padded parent rejected",
			content:          "5.0177700.bitmap",
			parentNumber:     177700,
			transactionCount: lo.ToPtr(uint64(6)),
			expectedOk:       false,
		},
		{
			name:             "missing suffix rejected",
			content:          "5.177700",
			parentNumber:     177700,
			transactionCount: lo.ToPtr(uint64(6)),
			expectedOk:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parcelNumber, ok := parseParcelChild(tt.content, tt.parentNumber, tt.transactionCount)
			assert.Equal(t, tt.expectedOk, ok)
			if tt.expectedOk {
				assert.Equal(t, tt.expectedParcel, parcelNumber)
			}
		})
	}
}
