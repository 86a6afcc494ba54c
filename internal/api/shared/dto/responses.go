package dto

import (
	"time"

	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/domain"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/store/schema"
)

// UserResponse represents a user profile. The push token is never returned
type UserResponse struct {
	ID                      string                         `json:"id"`
	WalletAddress           string                         `json:"wallet_address"`
	DisplayName             *string                        `json:"display_name,omitempty"`
	Email                   *string                        `json:"email,omitempty"`
	CreatedAt               time.Time                      `json:"created_at"`
	LastLoginAt             time.Time                      `json:"last_login_at"`
	TotalTokensCreated      int64                          `json:"total_tokens_created"`
	TotalLiquidityAdded     int64                          `json:"total_liquidity_added"`
	NotificationPreferences domain.NotificationPreferences `json:"notification_preferences"`
	PushEnabled             bool                           `json:"push_enabled"`
}

// LeaderboardEntryResponse represents one ranked creator
type LeaderboardEntryResponse struct {
	Rank        int       `json:"rank"`
	Address     string    `json:"address"`
	TokenCount  int64     `json:"token_count"`
	LastTokenAt time.Time `json:"last_token_at"`
}

// LeaderboardResponse represents the top creators leaderboard
type LeaderboardResponse struct {
	Entries   []LeaderboardEntryResponse `json:"entries"`
	UpdatedAt *time.Time                 `json:"updated_at,omitempty"`
}

// GlobalStatsResponse represents the global counters
type GlobalStatsResponse struct {
	TotalTokensCreated   int64      `json:"total_tokens_created"`
	TotalLiquidityEvents int64      `json:"total_liquidity_events"`
	TotalLiquidityValue  float64    `json:"total_liquidity_value"`
	LastTokenCreatedAt   *time.Time `json:"last_token_created_at,omitempty"`
	UpdatedAt            *time.Time `json:"updated_at,omitempty"`
}

// UserStatsResponse represents the counters of one address
type UserStatsResponse struct {
	Address         string     `json:"address"`
	TokensCreated   int64      `json:"tokens_created"`
	LiquidityEvents int64      `json:"liquidity_events"`
	LastActivityAt  *time.Time `json:"last_activity_at,omitempty"`
}

// AchievementResponse represents an unlocked milestone
type AchievementResponse struct {
	ID          string    `json:"id"`
	Milestone   int64     `json:"milestone"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Kind        string    `json:"kind"`
	UnlockedAt  time.Time `json:"unlocked_at"`
}

// AchievementListResponse represents a user's achievements in unlock order
type AchievementListResponse struct {
	Achievements []AchievementResponse `json:"items"`
}

// MapUserToDTO maps a user row to its response
func MapUserToDTO(user schema.User) *UserResponse {
	return &UserResponse{
		ID:                      user.ID,
		WalletAddress:           user.WalletAddress,
		DisplayName:             user.DisplayName,
		Email:                   user.Email,
		CreatedAt:               user.CreatedAt,
		LastLoginAt:             user.LastLoginAt,
		TotalTokensCreated:      user.TotalTokensCreated,
		TotalLiquidityAdded:     user.TotalLiquidityAdded,
		NotificationPreferences: user.NotificationPreferences.Data(),
		PushEnabled:             user.PushToken != nil && *user.PushToken != "",
	}
}

// MapLeaderboardToDTO maps ranked entries to the response, keeping at most limit entries
func MapLeaderboardToDTO(leaderboard *schema.Leaderboard, limit int) *LeaderboardResponse {
	response := &LeaderboardResponse{Entries: []LeaderboardEntryResponse{}}
	if leaderboard == nil {
		return response
	}

	updatedAt := leaderboard.UpdatedAt
	response.UpdatedAt = &updatedAt

	for i, entry := range leaderboard.Entries {
		if i >= limit {
			break
		}
		response.Entries = append(response.Entries, LeaderboardEntryResponse{
			Rank:        i + 1,
			Address:     entry.Address,
			TokenCount:  entry.TokenCount,
			LastTokenAt: entry.LastTokenAt,
		})
	}

	return response
}

// MapGlobalStatsToDTO maps the global stats row; a missing row maps to zero counters
func MapGlobalStatsToDTO(stats *schema.GlobalStats) *GlobalStatsResponse {
	if stats == nil {
		return &GlobalStatsResponse{}
	}

	updatedAt := stats.UpdatedAt
	return &GlobalStatsResponse{
		TotalTokensCreated:   stats.TotalTokensCreated,
		TotalLiquidityEvents: stats.TotalLiquidityEvents,
		TotalLiquidityValue:  stats.TotalLiquidityValue,
		LastTokenCreatedAt:   stats.LastTokenCreatedAt,
		UpdatedAt:            &updatedAt,
	}
}

// MapUserStatsToDTO maps the stats row of address; a missing row maps to zero counters
func MapUserStatsToDTO(address string, stats *schema.UserStats) *UserStatsResponse {
	if stats == nil {
		return &UserStatsResponse{Address: address}
	}

	lastActivityAt := stats.LastActivityAt
	return &UserStatsResponse{
		Address:         stats.Address,
		TokensCreated:   stats.TokensCreated,
		LiquidityEvents: stats.LiquidityEvents,
		LastActivityAt:  &lastActivityAt,
	}
}

// MapAchievementsToDTO maps achievement rows to the list response
func MapAchievementsToDTO(achievements []schema.Achievement) *AchievementListResponse {
	response := &AchievementListResponse{Achievements: make([]AchievementResponse, len(achievements))}
	for i, a := range achievements {
		response.Achievements[i] = AchievementResponse{
			ID:          a.ID,
			Milestone:   a.Milestone,
			Title:       a.Title,
			Description: a.Description,
			Kind:        a.Kind,
			UnlockedAt:  a.UnlockedAt,
		}
	}
	return response
}
