package domain

import "errors"

var (
	// ErrInvalidAddress is returned when a value is not a 20-byte hex address
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidTxHash is returned when a value is not a 32-byte hex transaction hash
	ErrInvalidTxHash = errors.New("invalid transaction hash")

	// ErrUnsupportedChain is returned for chain ids outside the configured set
	ErrUnsupportedChain = errors.New("unsupported chain")

	// ErrUserNotFound is returned when no user profile matches a wallet address
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidDocument is returned when a change event snapshot cannot be decoded
	ErrInvalidDocument = errors.New("invalid document")
)
