package dto

import (
	"time"

	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/domain"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/store/schema"
)

// TokenResponse represents a recorded token
type TokenResponse struct {
	ID              string         `json:"id"`
	ContractAddress string         `json:"contract_address"`
	Name            string         `json:"name"`
	Symbol          string         `json:"symbol"`
	Decimals        uint8          `json:"decimals"`
	TotalSupply     string         `json:"total_supply"`
	DeployerAddress string         `json:"deployer_address"`
	ChainID         domain.ChainID `json:"chain_id"`
	DeployedAt      time.Time      `json:"deployed_at"`
	TxHash          string         `json:"tx_hash"`
	CreatedAt       time.Time      `json:"created_at"`
}

// TokenListResponse represents a page of tokens
type TokenListResponse struct {
	Tokens []TokenResponse `json:"items"`
	Offset *uint64         `json:"offset,omitempty"`
	Total  uint64          `json:"total"`
}

// LiquidityResponse represents a recorded liquidity addition
type LiquidityResponse struct {
	ID           string         `json:"id"`
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
	CreatedAt    time.Time      `json:"created_at"`
}

// MapTokenToDTO maps a token row to its response
func MapTokenToDTO(token schema.Token) *TokenResponse {
	return &TokenResponse{
		ID:              token.ID,
		ContractAddress: token.ContractAddress,
		Name:            token.Name,
		Symbol:          token.Symbol,
		Decimals:        token.Decimals,
		TotalSupply:     token.TotalSupply,
		DeployerAddress: token.DeployerAddress,
		ChainID:         token.ChainID,
		DeployedAt:      token.DeployedAt,
		TxHash:          token.TxHash,
		CreatedAt:       token.CreatedAt,
	}
}

// MapLiquidityEventToDTO maps a liquidity event row to its response
func MapLiquidityEventToDTO(event schema.LiquidityEvent) *LiquidityResponse {
	return &LiquidityResponse{
		ID:           event.ID,
		TokenAddress: event.TokenAddress,
		PoolAddress:  event.PoolAddress,
		Amount:       event.Amount,
		EthAmount:    event.EthAmount,
		UserAddress:  event.UserAddress,
		ChainID:      event.ChainID,
		TxHash:       event.TxHash,
		FeeTier:      event.FeeTier,
		TickLower:    event.TickLower,
		TickUpper:    event.TickUpper,
		CreatedAt:    event.CreatedAt,
	}
}
