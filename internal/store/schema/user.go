package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/domain"
)

// User represents the users table - one profile per connected wallet
type User struct {
	ID string `gorm:"column:id;primaryKey;type:text"`
	// WalletAddress is lower-cased and unique
	WalletAddress       string    `gorm:"column:wallet_address;not null;uniqueIndex;type:text"`
	DisplayName         *string   `gorm:"column:display_name;type:text"`
	Email               *string   `gorm:"column:email;type:text"`
	CreatedAt           time.Time `gorm:"column:created_at;not null;default:now()"`
	LastLoginAt         time.Time `gorm:"column:last_login_at;not null;default:now()"`
	TotalTokensCreated  int64     `gorm:"column:total_tokens_created;not null;default:0"`
	TotalLiquidityAdded int64     `gorm:"column:total_liquidity_added;not null;default:0"`
	// NotificationPreferences holds per-category opt-outs
	NotificationPreferences datatypes.JSONType[domain.NotificationPreferences] `gorm:"column:notification_preferences;not null;type:jsonb;default:'{}'"`
	// PushToken is the single FCM registration token for the wallet
	PushToken          *string    `gorm:"column:push_token;type:text"`
	PushTokenUpdatedAt *time.Time `gorm:"column:push_token_updated_at"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// ToDocument converts the row to the document published in users.updated events
func (u User) ToDocument() domain.UserDocument {
	return domain.UserDocument{
		ID:                      u.ID,
		WalletAddress:           u.WalletAddress,
		DisplayName:             u.DisplayName,
		Email:                   u.Email,
		CreatedAt:               u.CreatedAt,
		LastLoginAt:             u.LastLoginAt,
		TotalTokensCreated:      u.TotalTokensCreated,
		TotalLiquidityAdded:     u.TotalLiquidityAdded,
		NotificationPreferences: u.NotificationPreferences.Data(),
	}
}
