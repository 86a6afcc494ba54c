package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/api/shared/constants"
	apierrors "github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/api/shared/errors"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/domain"
)

// ChainSupport reports whether a chain id is accepted
type ChainSupport func(chainID domain.ChainID) bool

// CreateTokenRequest represents the request body for recording a deployed token
type CreateTokenRequest struct {
	ContractAddress string         `json:"contract_address"`
	Name            string         `json:"name"`
	Symbol          string         `json:"symbol"`
	Decimals        *uint8         `json:"decimals"`
	TotalSupply     string         `json:"total_supply"`
	DeployerAddress string         `json:"deployer_address"`
	ChainID         domain.ChainID `json:"chain_id"`
	DeployedAt      *time.Time     `json:"deployed_at,omitempty"`
	TxHash          string         `json:"tx_hash"`
}

// Validate validates the request body and normalizes its addresses
func (r *CreateTokenRequest) Validate(supported ChainSupport) error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" || len(r.Name) > constants.MAX_TOKEN_NAME_LENGTH {
		return apierrors.NewValidationError(fmt.Sprintf("name is required and must be at most %d characters", constants.MAX_TOKEN_NAME_LENGTH))
	}

	r.Symbol = strings.TrimSpace(r.Symbol)
	if r.Symbol == "" || len(r.Symbol) > constants.MAX_TOKEN_SYMBOL_LENGTH {
		return apierrors.NewValidationError(fmt.Sprintf("symbol is required and must be at most %d characters", constants.MAX_TOKEN_SYMBOL_LENGTH))
	}

	if r.Decimals == nil {
		d := constants.DEFAULT_TOKEN_DECIMALS
		r.Decimals = &d
	}

	supply, err := decimal.NewFromString(r.TotalSupply)
	if err != nil || !supply.IsPositive() || !supply.IsInteger() {
		return apierrors.NewValidationError("total_supply must be a positive integer")
	}
	r.TotalSupply = supply.String()

	deployer, err := domain.NormalizeAddress(r.DeployerAddress)
	if err != nil {
		return apierrors.NewValidationError(fmt.Sprintf("invalid deployer_address: %s", r.DeployerAddress))
	}
	r.DeployerAddress = deployer

	if r.ContractAddress != "" {
		contract, err := domain.NormalizeAddress(r.ContractAddress)
		if err != nil {
			return apierrors.NewValidationError(fmt.Sprintf("invalid contract_address: %s", r.ContractAddress))
		}
		r.ContractAddress = contract
	}

	if !supported(r.ChainID) {
		return apierrors.NewValidationError(fmt.Sprintf("unsupported chain_id: %d", r.ChainID))
	}

	if err := domain.ValidateTxHash(r.TxHash); err != nil {
		return apierrors.NewValidationError(fmt.Sprintf("invalid tx_hash: %s", r.TxHash))
	}
	r.TxHash = strings.ToLower(r.TxHash)

	return nil
}

// CreateLiquidityRequest represents the request body for recording a liquidity addition
type CreateLiquidityRequest struct {
	TokenAddress string         `json:"token_address"`
	PoolAddress  *string        `json:"pool_address,omitempty"`
	Amount       string         `json:"amount"`
	EthAmount    string         `json:"eth_amount"`
	UserAddress  string         `json:"user_address"`
	ChainID      domain.ChainID `json:"chain_id"`
	TxHash       string         `json:"tx_hash"`
	FeeTier      int            `json:"fee_tier"`
	TickLower    *int           `json:"tick_lower,omitempty"`
	TickUpper    *int           `json:"tick_upper,omitempty"`
}

// Validate validates the request body and normalizes its addresses
func (r *CreateLiquidityRequest) Validate(supported ChainSupport) error {
	token, err := domain.NormalizeAddress(r.TokenAddress)
	if err != nil {
		return apierrors.NewValidationError(fmt.Sprintf("invalid token_address: %s", r.TokenAddress))
	}
	r.TokenAddress = token

	user, err := domain.NormalizeAddress(r.UserAddress)
	if err != nil {
		return apierrors.NewValidationError(fmt.Sprintf("invalid user_address: %s", r.UserAddress))
	}
	r.UserAddress = user

	if r.PoolAddress != nil {
		pool, err := domain.NormalizeAddress(*r.PoolAddress)
		if err != nil {
			return apierrors.NewValidationError(fmt.Sprintf("invalid pool_address: %s", *r.PoolAddress))
		}
		r.PoolAddress = &pool
	}

	amount, err := decimal.NewFromString(r.Amount)
	if err != nil || !amount.IsPositive() {
		return apierrors.NewValidationError("amount must be a positive number")
	}
	r.Amount = amount.String()

	ethAmount, err := decimal.NewFromString(r.EthAmount)
	if err != nil || ethAmount.IsNegative() {
		return apierrors.NewValidationError("eth_amount must be a non-negative number")
	}
	r.EthAmount = ethAmount.String()

	if !supported(r.ChainID) {
		return apierrors.NewValidationError(fmt.Sprintf("unsupported chain_id: %d", r.ChainID))
	}

	if err := domain.ValidateTxHash(r.TxHash); err != nil {
		return apierrors.NewValidationError(fmt.Sprintf("invalid tx_hash: %s", r.TxHash))
	}
	r.TxHash = strings.ToLower(r.TxHash)

	if r.TickLower != nil && r.TickUpper != nil && *r.TickLower >= *r.TickUpper {
		return apierrors.NewValidationError("tick_lower must be less than tick_upper")
	}

	return nil
}

// UpsertUserRequest represents the request body sent on wallet connect
type UpsertUserRequest struct {
	WalletAddress           string                          `json:"wallet_address"`
	DisplayName             *string                         `json:"display_name,omitempty"`
	Email                   *string                         `json:"email,omitempty"`
	NotificationPreferences *domain.NotificationPreferences `json:"notification_preferences,omitempty"`
}

// Validate validates the request body and normalizes the wallet address
func (r *UpsertUserRequest) Validate() error {
	wallet, err := domain.NormalizeAddress(r.WalletAddress)
	if err != nil {
		return apierrors.NewValidationError(fmt.Sprintf("invalid wallet_address: %s", r.WalletAddress))
	}
	r.WalletAddress = wallet

	if r.DisplayName != nil && len(*r.DisplayName) > constants.MAX_DISPLAY_NAME_LENGTH {
		return apierrors.NewValidationError(fmt.Sprintf("display_name must be at most %d characters", constants.MAX_DISPLAY_NAME_LENGTH))
	}

	if r.Email != nil && *r.Email != "" && !strings.Contains(*r.Email, "@") {
		return apierrors.NewValidationError("invalid email")
	}

	return nil
}
