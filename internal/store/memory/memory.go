package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/domain"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/store"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/store/schema"
)

// Store is an in-memory implementation of store.Store.
// A single mutex serializes writes, standing in for the database's row locks.
type Store struct {
	mu           sync.RWMutex
	tokens       []schema.Token
	liquidity    []schema.LiquidityEvent
	users        map[string]*schema.User // keyed by wallet address
	globalStats  *schema.GlobalStats
	userStats    map[string]*schema.UserStats // keyed by address
	leaderboard  *schema.Leaderboard
	achievements []schema.Achievement
}

// NewStore creates a new empty in-memory store
func NewStore() *Store {
	return &Store{
		users:     make(map[string]*schema.User),
		userStats: make(map[string]*schema.UserStats),
	}
}

var _ store.Store = (*Store)(nil)

func copyUser(u *schema.User) *schema.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// CreateToken records a token and bumps the deployer's profile counter
func (s *Store) CreateToken(_ context.Context, input store.CreateTokenInput) (*store.CreateTokenResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := schema.Token{
		ID:              input.ID,
		ContractAddress: input.ContractAddress,
		Name:            input.Name,
		Symbol:          input.Symbol,
		Decimals:        input.Decimals,
		TotalSupply:     input.TotalSupply,
		DeployerAddress: input.DeployerAddress,
		ChainID:         input.ChainID,
		DeployedAt:      input.DeployedAt,
		TxHash:          input.TxHash,
		CreatedAt:       time.Now().UTC(),
	}
	if token.ID == "" {
		token.ID = uuid.NewString()
	}
	s.tokens = append(s.tokens, token)

	result := &store.CreateTokenResult{Token: token}
	if u, ok := s.users[input.DeployerAddress]; ok {
		result.UserBefore = copyUser(u)
		u.TotalTokensCreated++
		result.UserAfter = copyUser(u)
	}

	return result, nil
}

// GetTokensByDeployer lists tokens deployed by an address, newest first
func (s *Store) GetTokensByDeployer(_ context.Context, deployer string, limit int, offset uint64) ([]schema.Token, uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []schema.Token
	for _, t := range s.tokens {
		if t.DeployerAddress == deployer {
			matched = append(matched, t)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].DeployedAt.After(matched[j].DeployedAt)
	})

	total := uint64(len(matched))
	if offset >= total {
		return []schema.Token{}, total, nil
	}
	matched = matched[offset:]
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	return matched, total, nil
}

// GetTopDeployers ranks deployers by their token count
func (s *Store) GetTopDeployers(_ context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.topDeployers(limit), nil
}

// topDeployers expects s.mu to be held
func (s *Store) topDeployers(limit int) []domain.LeaderboardEntry {
	byAddress := make(map[string]*domain.LeaderboardEntry)
	for _, t := range s.tokens {
		e, ok := byAddress[t.DeployerAddress]
		if !ok {
			e = &domain.LeaderboardEntry{Address: t.DeployerAddress}
			byAddress[t.DeployerAddress] = e
		}
		e.TokenCount++
		if t.DeployedAt.After(e.LastTokenAt) {
			e.LastTokenAt = t.DeployedAt
		}
	}

	entries := make([]domain.LeaderboardEntry, 0, len(byAddress))
	for _, e := range byAddress {
		entries = append(entries, *e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TokenCount != entries[j].TokenCount {
			return entries[i].TokenCount > entries[j].TokenCount
		}
		if !entries[i].LastTokenAt.Equal(entries[j].LastTokenAt) {
			return entries[i].LastTokenAt.Before(entries[j].LastTokenAt)
		}
		return entries[i].Address < entries[j].Address
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	return entries
}

// CreateLiquidityEvent records a liquidity addition and bumps the user's profile counter
func (s *Store) CreateLiquidityEvent(_ context.Context, input store.CreateLiquidityEventInput) (*store.CreateLiquidityEventResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event := schema.LiquidityEvent{
		ID:           input.ID,
		TokenAddress: input.TokenAddress,
		PoolAddress:  input.PoolAddress,
		Amount:       input.Amount,
		EthAmount:    input.EthAmount,
		UserAddress:  input.UserAddress,
		ChainID:      input.ChainID,
		TxHash:       input.TxHash,
		FeeTier:      input.FeeTier,
		TickLower:    input.TickLower,
		TickUpper:    input.TickUpper,
		CreatedAt:    input.CreatedAt,
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	s.liquidity = append(s.liquidity, event)

	result := &store.CreateLiquidityEventResult{Event: event}
	if u, ok := s.users[input.UserAddress]; ok {
		result.UserBefore = copyUser(u)
		u.TotalLiquidityAdded++
		result.UserAfter = copyUser(u)
	}

	return result, nil
}

// UpsertUser creates or refreshes the profile of a wallet
func (s *Store) UpsertUser(_ context.Context, input store.UpsertUserInput) (*schema.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[input.WalletAddress]
	if !ok {
		u = &schema.User{
			ID:            input.ID,
			WalletAddress: input.WalletAddress,
			CreatedAt:     input.LoginAt,
		}
		if u.ID == "" {
			u.ID = uuid.NewString()
		}
		s.users[input.WalletAddress] = u
	}

	u.LastLoginAt = input.LoginAt
	if input.DisplayName != nil {
		u.DisplayName = input.DisplayName
	}
	if input.Email != nil {
		u.Email = input.Email
	}
	if input.NotificationPreferences != nil {
		u.NotificationPreferences = datatypes.NewJSONType(*input.NotificationPreferences)
	}

	return copyUser(u), nil
}

// GetUserByWalletAddress retrieves a profile; nil when absent
func (s *Store) GetUserByWalletAddress(_ context.Context, walletAddress string) (*schema.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyUser(s.users[walletAddress]), nil
}

// SetUserPushToken stores the push token of a wallet
func (s *Store) SetUserPushToken(_ context.Context, walletAddress string, pushToken string, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[walletAddress]
	if !ok {
		return false, nil
	}

	u.PushToken = &pushToken
	u.PushTokenUpdatedAt = &at
	return true, nil
}

// IncrementGlobalStats adds delta to the global counters
func (s *Store) IncrementGlobalStats(_ context.Context, delta store.StatsDelta) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.globalStats == nil {
		s.globalStats = &schema.GlobalStats{ID: domain.GlobalStatsID}
	}

	g := s.globalStats
	g.TotalTokensCreated += delta.TokensCreated
	g.TotalLiquidityEvents += delta.LiquidityEvents
	g.TotalLiquidityValue += delta.LiquidityValue
	g.UpdatedAt = delta.At
	if delta.TokensCreated > 0 {
		at := delta.At
		g.LastTokenCreatedAt = &at
	}

	return nil
}

// IncrementUserStats adds delta to the counters of an address
func (s *Store) IncrementUserStats(_ context.Context, address string, delta store.StatsDelta) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	us, ok := s.userStats[address]
	if !ok {
		us = &schema.UserStats{Address: address}
		s.userStats[address] = us
	}

	us.TokensCreated += delta.TokensCreated
	us.LiquidityEvents += delta.LiquidityEvents
	us.LastActivityAt = delta.At

	return nil
}

// GetGlobalStats returns a copy of the global counters; nil before the first update
func (s *Store) GetGlobalStats(_ context.Context) (*schema.GlobalStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.globalStats == nil {
		return nil, nil
	}
	g := *s.globalStats
	return &g, nil
}

// GetUserStats returns a copy of an address's counters; nil when absent
func (s *Store) GetUserStats(_ context.Context, address string) (*schema.UserStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	us, ok := s.userStats[address]
	if !ok {
		return nil, nil
	}
	c := *us
	return &c, nil
}

// UpdateLeaderboard runs mutate while holding the write lock
func (s *Store) UpdateLeaderboard(_ context.Context, at time.Time, mutate store.LeaderboardMutation) ([]domain.LeaderboardEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current []domain.LeaderboardEntry
	if s.leaderboard != nil {
		current = slices.Clone([]domain.LeaderboardEntry(s.leaderboard.Entries))
	}

	entries := mutate(current)
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}

	s.leaderboard = &schema.Leaderboard{
		ID:        domain.LeaderboardID,
		Entries:   datatypes.JSONSlice[domain.LeaderboardEntry](slices.Clone(entries)),
		UpdatedAt: at,
	}

	return entries, nil
}

// RebuildLeaderboard aggregates the tokens and writes the ranked result under one write lock
func (s *Store) RebuildLeaderboard(_ context.Context, at time.Time, limit int, rank store.LeaderboardMutation) ([]domain.LeaderboardEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := rank(s.topDeployers(limit))
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}

	s.leaderboard = &schema.Leaderboard{
		ID:        domain.LeaderboardID,
		Entries:   datatypes.JSONSlice[domain.LeaderboardEntry](slices.Clone(entries)),
		UpdatedAt: at,
	}

	return entries, nil
}

// GetLeaderboard returns a copy of the leaderboard; nil when never written
func (s *Store) GetLeaderboard(_ context.Context) (*schema.Leaderboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.leaderboard == nil {
		return nil, nil
	}
	return &schema.Leaderboard{
		ID:        s.leaderboard.ID,
		Entries:   slices.Clone(s.leaderboard.Entries),
		UpdatedAt: s.leaderboard.UpdatedAt,
	}, nil
}

// CreateAchievement appends an achievement record
func (s *Store) CreateAchievement(_ context.Context, input store.CreateAchievementInput) (*schema.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := schema.Achievement{
		ID:          input.ID,
		UserID:      input.UserID,
		Milestone:   input.Milestone,
		Title:       input.Title,
		Description: input.Description,
		Kind:        input.Kind,
		UnlockedAt:  input.UnlockedAt,
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	s.achievements = append(s.achievements, a)

	return &a, nil
}

// GetAchievementsByUserID lists a user's achievements in unlock order
func (s *Store) GetAchievementsByUserID(_ context.Context, userID string) ([]schema.Achievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []schema.Achievement
	for _, a := range s.achievements {
		if a.UserID == userID {
			result = append(result, a)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].UnlockedAt.Equal(result[j].UnlockedAt) {
			return result[i].UnlockedAt.Before(result[j].UnlockedAt)
		}
		return result[i].Milestone < result[j].Milestone
	})

	return result, nil
}
