package dialog

import "sync"

// ElevationStore tracks which users are currently elevated to
// administrator. Elevation is session-scoped state: it is granted by the
// password flow, revoked only by explicit logout, and never expires on
// its own. It is deliberately independent of the persisted role field,
// which only gates menu visibility.
type ElevationStore interface {
	Grant(userID int64)
	Revoke(userID int64)
	Elevated(userID int64) bool
}

type memoryElevation struct {
	mu    sync.RWMutex
	users map[int64]struct{}
}

// NewElevationStore returns the in-memory ElevationStore.
func NewElevationStore() ElevationStore {
	return &memoryElevation{users: make(map[int64]struct{})}
}

func (m *memoryElevation) Grant(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[userID] = struct{}{}
}

func (m *memoryElevation) Revoke(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, userID)
}

func (m *memoryElevation) Elevated(userID int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.users[userID]
	return ok
}
