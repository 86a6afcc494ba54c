package triggers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/adapter"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/domain"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/logger"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/store"
)

// CallableCode classifies a client-facing callable failure
type CallableCode string

const (
	CodeInvalidArgument CallableCode = "invalid-argument"
	CodeNotFound        CallableCode = "not-found"
	CodeInternal        CallableCode = "internal"
)

// CallableError is returned by callable entrypoints
type CallableError struct {
	Code    CallableCode
	Message string
	Err     error
}

func (e *CallableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CallableError) Unwrap() error {
	return e.Err
}

// CallableErrorCode returns the code of a *CallableError in err's chain, or CodeInternal
func CallableErrorCode(err error) CallableCode {
	var ce *CallableError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return CodeInternal
}

// RegisterPushTokenRequest is the callable payload
type RegisterPushTokenRequest struct {
	WalletAddress string `json:"walletAddress"`
	FCMToken      string `json:"fcmToken"`
}

// RegisterPushTokenResponse is returned on success
type RegisterPushTokenResponse struct {
	Success bool `json:"success"`
}

// PushTokenRegistrar stores device push tokens on user profiles
type PushTokenRegistrar struct {
	store store.Store
	clock adapter.Clock
}

// NewPushTokenRegistrar creates a new push token registrar
func NewPushTokenRegistrar(st store.Store, clock adapter.Clock) *PushTokenRegistrar {
	return &PushTokenRegistrar{store: st, clock: clock}
}

// RegisterPushToken stores req.FCMToken as the single push token of req.WalletAddress
func (r *PushTokenRegistrar) RegisterPushToken(ctx context.Context, req RegisterPushTokenRequest) (*RegisterPushTokenResponse, error) {
	if strings.TrimSpace(req.WalletAddress) == "" || strings.TrimSpace(req.FCMToken) == "" {
		return nil, &CallableError{Code: CodeInvalidArgument, Message: "walletAddress and fcmToken are required"}
	}

	wallet, err := domain.NormalizeAddress(req.WalletAddress)
	if err != nil {
		return nil, &CallableError{Code: CodeInvalidArgument, Message: "walletAddress is not a valid address", Err: err}
	}

	found, err := r.store.SetUserPushToken(ctx, wallet, strings.TrimSpace(req.FCMToken), r.clock.Now())
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("wallet", wallet))
		return nil, &CallableError{Code: CodeInternal, Message: "failed to register push token", Err: err}
	}

	if !found {
		return nil, &CallableError{Code: CodeNotFound, Message: "user not found", Err: domain.ErrUserNotFound}
	}

	logger.InfoCtx(ctx, "Push token registered", zap.String("wallet", wallet))
	return &RegisterPushTokenResponse{Success: true}, nil
}
