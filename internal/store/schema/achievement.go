package schema

import "time"

// Achievement represents the achievements table - append-only milestone unlocks
type Achievement struct {
	ID          string    `gorm:"column:id;primaryKey;type:uuid"`
	UserID      string    `gorm:"column:user_id;not null;type:text;index:idx_achievements_user"`
	Milestone   int64     `gorm:"column:milestone;not null"`
	Title       string    `gorm:"column:title;not null;type:text"`
	Description string    `gorm:"column:description;not null;type:text"`
	Kind        string    `gorm:"column:kind;not null;type:text"`
	UnlockedAt  time.Time `gorm:"column:unlocked_at;not null;default:now()"`
}

// TableName specifies the table name for the Achievement model
func (Achievement) TableName() string {
	return "achievements"
}
