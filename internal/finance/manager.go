package finance

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/quangdm/finvi/internal/storage"
)

// Manager hands out one Store per user, all backed by the same slot
// database with per-user key prefixes. Stores are created lazily on first
// access and cached for the life of the process.
type Manager struct {
	mu     sync.Mutex
	slots  storage.SlotStore
	stores map[uuid.UUID]*Store
}

func NewManager(slots storage.SlotStore) *Manager {
	return &Manager{
		slots:  slots,
		stores: make(map[uuid.UUID]*Store),
	}
}

// StoreFor returns the financial store of one user, opening it on first use.
func (m *Manager) StoreFor(ctx context.Context, userID uuid.UUID) (*Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if store, ok := m.stores[userID]; ok {
		return store, nil
	}

	store, err := Open(ctx, storage.WithPrefix(m.slots, "user:"+userID.String()+":"))
	if err != nil {
		return nil, err
	}
	m.stores[userID] = store
	return store, nil
}
