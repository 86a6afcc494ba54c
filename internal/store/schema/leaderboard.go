package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/domain"
)

// Leaderboard represents the leaderboards table. Entries are kept sorted by token count
// descending and capped at domain.LeaderboardCapacity.
type Leaderboard struct {
	ID        string                                       `gorm:"column:id;primaryKey;type:text"`
	Entries   datatypes.JSONSlice[domain.LeaderboardEntry] `gorm:"column:entries;not null;type:jsonb;default:'[]'"`
	UpdatedAt time.Time                                    `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the Leaderboard model
func (Leaderboard) TableName() string {
	return "leaderboards"
}
