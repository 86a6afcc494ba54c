package memory

import (
	"testing"

	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/store"
	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/store/storetest"
)

func TestMemoryStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return NewStore()
	})
}

func TestMemoryStore_ConcurrentLeaderboard(t *testing.T) {
	storetest.RunConcurrentLeaderboard(t, NewStore(), 50)
}

func TestMemoryStore_ConcurrentFirstConnect(t *testing.T) {
	storetest.RunConcurrentFirstConnect(t, NewStore(), "0x4444444444444444444444444444444444444444", 50)
}
