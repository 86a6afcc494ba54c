package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    string
		expectError bool
	}{
		{
			name:     "checksummed address is lower-cased",
			input:    "0xAbCdEf0123456789AbCdEf0123456789AbCdEf01",
			expected: "0xabcdef0123456789abcdef0123456789abcdef01",
		},
		{
			name:     "surrounding whitespace is trimmed",
			input:    "  0x1111111111111111111111111111111111111111 ",
			expected: "0x1111111111111111111111111111111111111111",
		},
		{
			name:     "missing 0x prefix is accepted",
			input:    "2222222222222222222222222222222222222222",
			expected: "0x2222222222222222222222222222222222222222",
		},
		{
			name:        "too short",
			input:       "0x1234",
			expectError: true,
		},
		{
			name:        "not hex",
			input:       "0xzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz",
			expectError: true,
		},
		{
			name:        "empty",
			input:       "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeAddress(tt.input)
			if tt.expectError {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidAddress)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestValidateTxHash(t *testing.T) {
	valid := "0x" + "ab" + "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcd"
	require.Len(t, valid, 66)

	assert.NoError(t, ValidateTxHash(valid))
	assert.ErrorIs(t, ValidateTxHash("0x1234"), ErrInvalidTxHash)
	assert.ErrorIs(t, ValidateTxHash(valid[2:]), ErrInvalidTxHash)
	assert.ErrorIs(t, ValidateTxHash(""), ErrInvalidTxHash)
}

func TestLowerAddress(t *testing.T) {
	assert.Equal(t, "0xabc", LowerAddress(" 0xABC "))
}
