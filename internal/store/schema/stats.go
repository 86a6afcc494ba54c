package schema

import "time"

// GlobalStats represents the global_stats table - a singleton row keyed by domain.GlobalStatsID.
// Columns are only changed through additive upserts.
type GlobalStats struct {
	ID                   string     `gorm:"column:id;primaryKey;type:text"`
	TotalTokensCreated   int64      `gorm:"column:total_tokens_created;not null;default:0"`
	TotalLiquidityEvents int64      `gorm:"column:total_liquidity_events;not null;default:0"`
	TotalLiquidityValue  float64    `gorm:"column:total_liquidity_value;not null;default:0"`
	LastTokenCreatedAt   *time.Time `gorm:"column:last_token_created_at"`
	UpdatedAt            time.Time  `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the GlobalStats model
func (GlobalStats) TableName() string {
	return "global_stats"
}

// UserStats represents the user_stats table - per-address activity counters
type UserStats struct {
	// Address is the lower-cased wallet address
	Address         string    `gorm:"column:address;primaryKey;type:text"`
	TokensCreated   int64     `gorm:"column:tokens_created;not null;default:0"`
	LiquidityEvents int64     `gorm:"column:liquidity_events;not null;default:0"`
	LastActivityAt  time.Time `gorm:"column:last_activity_at;not null;default:now()"`
}

// TableName specifies the table name for the UserStats model
func (UserStats) TableName() string {
	return "user_stats"
}
