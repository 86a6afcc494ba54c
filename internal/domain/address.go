package domain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// NormalizeAddress validates an EVM address and returns its lower-cased 0x form.
// All address lookups and keys use this form.
func NormalizeAddress(address string) (string, error) {
	address = strings.TrimSpace(address)
	if !common.IsHexAddress(address) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}

	return strings.ToLower(common.HexToAddress(address).Hex()), nil
}

// LowerAddress lower-cases an address without validating it
func LowerAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// ValidateTxHash checks that hash is a 0x-prefixed 32-byte hex string
func ValidateTxHash(hash string) error {
	b, err := hexutil.Decode(hash)
	if err != nil || len(b) != common.HashLength {
		return fmt.Errorf("%w: %q", ErrInvalidTxHash, hash)
	}

	return nil
}
