package exceptions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetSatIndex(t *testing.T) {
	tests := []struct {
		name         string
		bitmapNumber int64
		expected     int64
	}{
		{
			name:         "reinscribed sat override",
			bitmapNumber: 92871,
			expected:     1,
		},
		{
			name:         "heavily reinscribed sat override",
			bitmapNumber: 834051,
			expected:     17,
		},
		{
			name:         "default index for ordinary number",
			bitmapNumber: 177700,
			expected:     0,
		},
		{
			name:         "default index for zero",
			bitmapNumber: 0,
			expected:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetSatIndex(tt.bitmapNumber))
		})
	}
}
