package dialog

import "sync"

// Step identifies which flow handler owns the next text input of a
// session. Every Step held by a live session must be registered.
type Step string

// StepData carries the strongly-typed state a flow accumulates across
// its steps. Each flow declares its own variant and embeds Payload.
type StepData interface {
	stepData()
}

// Payload is embedded by flow data structs to satisfy StepData.
type Payload struct{}

func (Payload) stepData() {}

// Session is the ephemeral record of a user's active flow. There is at
// most one per user; starting a new flow replaces it.
type Session struct {
	UserID int64
	Step   Step
	Data   StepData
}

// SessionStore keeps per-user sessions. Implementations are not
// expected to survive restarts; an in-flight flow is silently dropped
// when the process dies.
type SessionStore interface {
	Get(userID int64) (Session, bool)
	Set(userID int64, step Step, data StepData)
	Clear(userID int64)
}

type memorySessions struct {
	mu       sync.RWMutex
	sessions map[int64]Session
}

// NewSessionStore returns the in-memory SessionStore used in
// production. Sessions have no expiry; abandonment leaves the step in
// place until the user cancels or starts another flow.
func NewSessionStore() SessionStore {
	return &memorySessions{sessions: make(map[int64]Session)}
}

func (m *memorySessions) Get(userID int64) (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[userID]
	return sess, ok
}

func (m *memorySessions) Set(userID int64, step Step, data StepData) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = Session{UserID: userID, Step: step, Data: data}
}

func (m *memorySessions) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}
