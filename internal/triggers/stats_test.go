package triggers_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/domain"
	mockspkg "github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/mocks"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/store"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/store/memory"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/triggers"
)

func TestStatsUpdater_Apply(t *testing.T) {
	tests := []struct {
		name     string
		kind     domain.ActivityKind
		value    float64
		expected store.StatsDelta
	}{
		{
			name:     "token created",
			kind:     domain.ActivityTokenCreated,
			value:    42,
			expected: store.StatsDelta{TokensCreated: 1, At: testTime},
		},
		{
			name:     "liquidity added",
			kind:     domain.ActivityLiquidityAdded,
			value:    12.5,
			expected: store.StatsDelta{LiquidityEvents: 1, LiquidityValue: 12.5, At: testTime},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			st := mockspkg.NewMockStore(ctrl)
			st.EXPECT().IncrementGlobalStats(gomock.Any(), tt.expected).Return(nil)
			st.EXPECT().IncrementUserStats(gomock.Any(), walletA, tt.expected).Return(nil)

			updater := triggers.NewStatsUpdater(st, newFixedClock(ctrl))
			err := updater.Apply(context.Background(), tt.kind, "0xABCDEF0123456789ABCDEF0123456789ABCDEF01", tt.value)
			assert.NoError(t, err)
		})
	}
}

func TestStatsUpdater_Apply_UnknownKind(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	updater := triggers.NewStatsUpdater(mockspkg.NewMockStore(ctrl), newFixedClock(ctrl))
	err := updater.Apply(context.Background(), domain.ActivityKind("burned"), walletA, 0)

	assert.Error(t, err)
}

func TestStatsUpdater_Apply_GlobalFailureStillUpdatesUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	globalErr := errors.New("global stats unavailable")
	st := mockspkg.NewMockStore(ctrl)
	st.EXPECT().IncrementGlobalStats(gomock.Any(), gomock.Any()).Return(globalErr)
	st.EXPECT().IncrementUserStats(gomock.Any(), walletA, gomock.Any()).Return(nil)

	updater := triggers.NewStatsUpdater(st, newFixedClock(ctrl))
	err := updater.Apply(context.Background(), domain.ActivityTokenCreated, walletA, 0)

	assert.ErrorIs(t, err, globalErr)
}

func TestStatsUpdater_ConcurrentTokenCreations(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := memory.NewStore()
	updater := triggers.NewStatsUpdater(st, newFixedClock(ctrl))

	const events = 30
	var wg sync.WaitGroup
	for i := 0; i < events; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			actor := walletA
			if i%3 == 0 {
				actor = walletB
			}
			assert.NoError(t, updater.Apply(context.Background(), domain.ActivityTokenCreated, actor, 0))
		}(i)
	}
	wg.Wait()

	global, err := st.GetGlobalStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(events), global.TotalTokensCreated)
	require.NotNil(t, global.LastTokenCreatedAt)
	assert.Equal(t, testTime, *global.LastTokenCreatedAt)

	statsA, err := st.GetUserStats(context.Background(), walletA)
	require.NoError(t, err)
	statsB, err := st.GetUserStats(context.Background(), walletB)
	require.NoError(t, err)
	assert.Equal(t, int64(20), statsA.TokensCreated)
	assert.Equal(t, int64(10), statsB.TokensCreated)
}
