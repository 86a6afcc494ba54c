package schema

import (
	"time"

	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/domain"
)

// LiquidityEvent represents the liquidity_events table - append-only liquidity additions
type LiquidityEvent struct {
	ID           string  `gorm:"column:id;primaryKey;type:uuid"`
	TokenAddress string  `gorm:"column:token_address;not null;type:text;index:idx_liquidity_events_token"`
	PoolAddress  *string `gorm:"column:pool_address;type:text"`
	// Amount and EthAmount are decimal strings in token and native units
	Amount      string         `gorm:"column:amount;not null;type:text"`
	EthAmount   string         `gorm:"column:eth_amount;not null;type:text"`
	UserAddress string         `gorm:"column:user_address;not null;type:text;index:idx_liquidity_events_user"`
	ChainID     domain.ChainID `gorm:"column:chain_id;not null"`
	TxHash      string         `gorm:"column:tx_hash;not null;type:text"`
	FeeTier     int            `gorm:"column:fee_tier;not null;default:0"`
	TickLower   *int           `gorm:"column:tick_lower"`
	TickUpper   *int           `gorm:"column:tick_upper"`
	CreatedAt   time.Time      `gorm:"column:created_at;not null;default:now()"`
}

// TableName specifies the table name for the LiquidityEvent model
func (LiquidityEvent) TableName() string {
	return "liquidity_events"
}

// ToDocument converts the row to the document published in change events
func (l LiquidityEvent) ToDocument() domain.LiquidityDocument {
	return domain.LiquidityDocument{
		ID:           l.ID,
		TokenAddress: l.TokenAddress,
		PoolAddress:  l.PoolAddress,
		Amount:       l.Amount,
		EthAmount:    l.EthAmount,
		UserAddress:  l.UserAddress,
		ChainID:      l.ChainID,
		TxHash:       l.TxHash,
		FeeTier:      l.FeeTier,
		TickLower:    l.TickLower,
		TickUpper:    l.TickUpper,
		CreatedAt:    l.CreatedAt,
	}
}
