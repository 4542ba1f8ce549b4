package ordinals

import (
	"encoding/json"
	"testing"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/assert"
)

func TestNewInscriptionIdFromString(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    InscriptionId
		shouldError bool
	}{
		{
			name:  "valid inscription id index 0",
			input: "1111111111111111111111111111111111111111111111111111111111111111i0",
			expected: InscriptionId{
				TxHash: *utils.Must(chainhash.NewHashFromStr("1111111111111111111111111111111111111111111111111111111111111111")),
				Index:  0,
			},
		},
		{
			name:  "valid inscription id index 1",
			input: "1111111111111111111111111111111111111111111111111111111111111111i1",
			expected: InscriptionId{
				TxHash: *utils.Must(chainhash.NewHashFromStr("1111111111111111111111111111111111111111111111111111111111111111")),
				Index:  1,
			},
		},
		{
			name:  "valid inscription id max index",
			input: "1111111111111111111111111111111111111111111111111111111111111111i4294967295",
			expected: InscriptionId{
				TxHash: *utils.Must(chainhash.NewHashFromStr("1111111111111111111111111111111111111111111111111111111111111111")),
				Index:  4294967295,
			},
		},
		{
			name:        "error no separator",
			input:       "abc",
			shouldError: true,
		},
		{
			name:        "error invalid tx hash",
			input:       "xyzixyz",
			shouldError: true,
		},
		{
			name:        "error invalid index",
			input:       "1111111111111111111111111111111111111111111111111111111111111111ixyz",
			shouldError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewInscriptionIdFromString(tt.input)
			if tt.shouldError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestInscriptionIdString(t *testing.T) {
	input := "1111111111111111111111111111111111111111111111111111111111111111i42"
	id := utils.Must(NewInscriptionIdFromString(input))
	assert.Equal(t, input, id.String())
}

func TestInscriptionIdJSON(t *testing.T) {
	input := `"1111111111111111111111111111111111111111111111111111111111111111i7"`

	var id InscriptionId
	assert.NoError(t, json.Unmarshal([]byte(input), &id))
	assert.Equal(t, uint32(7), id.Index)

	marshaled, err := json.Marshal(id)
	assert.NoError(t, err)
	assert.Equal(t, input, string(marshaled))
}
