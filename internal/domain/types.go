package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// ChainID is an EVM chain identifier
type ChainID int64

const (
	ChainBaseMainnet ChainID = 8453
	ChainBaseSepolia ChainID = 84532
)

// Collection names a document collection whose writes produce change events
type Collection string

const (
	CollectionTokens    Collection = "tokens"
	CollectionLiquidity Collection = "liquidity"
	CollectionUsers     Collection = "users"
)

// ChangeKind is the kind of write that produced a change event
type ChangeKind string

const (
	ChangeKindCreated ChangeKind = "created"
	ChangeKindUpdated ChangeKind = "updated"
)

// ActivityKind identifies the domain activity a stats update is applied for
type ActivityKind string

const (
	ActivityTokenCreated   ActivityKind = "token_created"
	ActivityLiquidityAdded ActivityKind = "liquidity_added"
)

// NotificationType is the value of the `type` key in a push notification data payload
type NotificationType string

const (
	NotificationTypeTokenCreated   NotificationType = "token_created"
	NotificationTypeLiquidityAdded NotificationType = "liquidity_added"
	NotificationTypeAchievement    NotificationType = "achievement"
)

// AchievementKindMilestone tags achievements unlocked by crossing a token-count threshold
const AchievementKindMilestone = "milestone"

// DocumentEvent is the change notification emitted after a document write.
// This is the standard format published to NATS
type DocumentEvent struct {
	EventID    string          `json:"eventId"`          // ULID, also used as the JetStream message id
	Collection Collection      `json:"collection"`       // tokens, liquidity, users
	Kind       ChangeKind      `json:"kind"`             // created, updated
	DocumentID string          `json:"documentId"`       // id of the written document
	Before     json.RawMessage `json:"before,omitempty"` // snapshot before the write (updates only)
	After      json.RawMessage `json:"after,omitempty"`  // snapshot after the write
	Timestamp  time.Time       `json:"timestamp"`
}

// Subject returns the NATS subject the event is published on: documents.{collection}.{kind}
func (e *DocumentEvent) Subject() string {
	return fmt.Sprintf("documents.%s.%s", e.Collection, e.Kind)
}

// Valid reports whether the envelope carries the snapshots its kind requires
func (e *DocumentEvent) Valid() bool {
	if e.EventID == "" || e.DocumentID == "" || len(e.After) == 0 {
		return false
	}

	switch e.Kind {
	case ChangeKindCreated:
		return true
	case ChangeKindUpdated:
		return len(e.Before) > 0
	default:
		return false
	}
}

// TokenDocument is the token record written by the client app after a successful deployment
type TokenDocument struct {
	ID              string    `json:"id"`
	ContractAddress string    `json:"contractAddress,omitempty"`
	Name            string    `json:"name"`
	Symbol          string    `json:"symbol"`
	Decimals        uint8     `json:"decimals"`
	TotalSupply     string    `json:"totalSupply"`
	DeployerAddress string    `json:"deployerAddress"`
	ChainID         ChainID   `json:"chainId"`
	DeployedAt      time.Time `json:"deployedAt"`
	TxHash          string    `json:"txHash"`
}

// LiquidityDocument is written once per liquidity-add event
type LiquidityDocument struct {
	ID           string    `json:"id"`
	TokenAddress string    `json:"tokenAddress"`
	PoolAddress  *string   `json:"poolAddress,omitempty"`
	Amount       string    `json:"amount"`    // token amount
	EthAmount    string    `json:"ethAmount"` // matched native-currency amount
	UserAddress  string    `json:"userAddress"`
	ChainID      ChainID   `json:"chainId"`
	TxHash       string    `json:"txHash"`
	FeeTier      int       `json:"feeTier"`
	TickLower    *int      `json:"tickLower,omitempty"`
	TickUpper    *int      `json:"tickUpper,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserDocument is the wallet-linked user profile snapshot carried by users.updated events
type UserDocument struct {
	ID                      string                  `json:"id"`
	WalletAddress           string                  `json:"walletAddress"`
	DisplayName             *string                 `json:"displayName,omitempty"`
	Email                   *string                 `json:"email,omitempty"`
	CreatedAt               time.Time               `json:"createdAt"`
	LastLoginAt             time.Time               `json:"lastLoginAt"`
	TotalTokensCreated      int64                   `json:"totalTokensCreated"`
	TotalLiquidityAdded     int64                   `json:"totalLiquidityAdded"`
	NotificationPreferences NotificationPreferences `json:"notificationPreferences"`
}

// NotificationPreferences holds per-category push opt-outs. A nil field means enabled
type NotificationPreferences struct {
	TokenCreated   *bool `json:"tokenCreated,omitempty"`
	LiquidityAdded *bool `json:"liquidityAdded,omitempty"`
	Achievements   *bool `json:"achievements,omitempty"`
}

// Allows reports whether notifications of the given type may be sent
func (p NotificationPreferences) Allows(t NotificationType) bool {
	var flag *bool
	switch t {
	case NotificationTypeTokenCreated:
		flag = p.TokenCreated
	case NotificationTypeLiquidityAdded:
		flag = p.LiquidityAdded
	case NotificationTypeAchievement:
		flag = p.Achievements
	}

	return flag == nil || *flag
}

// LeaderboardEntry is one ranked token creator
type LeaderboardEntry struct {
	Address     string    `json:"address"`
	TokenCount  int64     `json:"tokenCount"`
	LastTokenAt time.Time `json:"lastTokenAt"`
}
