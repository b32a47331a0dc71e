package flows

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/coachbot/internal/dialog"
	"github.com/m3rciful/coachbot/internal/domain"
	"github.com/m3rciful/coachbot/internal/service"
	"github.com/m3rciful/coachbot/internal/storage"
	"github.com/m3rciful/coachbot/internal/storage/memory"
)

// fakeTransport records outbound sends and fails on demand per user.
type fakeTransport struct {
	mu   sync.Mutex
	sent map[int64][]string
	fail map[int64]bool
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		sent: make(map[int64][]string),
		fail: make(map[int64]bool),
	}
}

func (f *fakeTransport) SendText(_ context.Context, userID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[userID] {
		return errors.New("delivery refused")
	}
	f.sent[userID] = append(f.sent[userID], text)
	return nil
}

func (f *fakeTransport) sentTo(userID int64) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent[userID]...)
}

// env wires the full dialog stack onto the in-memory store, the same
// shape the app assembles at startup.
type env struct {
	store     *storage.Store
	router    *dialog.Router
	sessions  dialog.SessionStore
	elevation dialog.ElevationStore
	transport *fakeTransport
	flows     *Flows
}

func newEnv(t *testing.T) *env {
	t.Helper()

	store := memory.New()
	transport := newFakeTransport()
	sessions := dialog.NewSessionStore()
	elevation := dialog.NewElevationStore()

	f := &Flows{
		Users:         service.NewUsers(store),
		Profiles:      service.NewProfiles(store),
		Progress:      service.NewProgress(store),
		Content:       service.NewContent(store),
		Relay:         service.NewRelay(store),
		Broadcast:     service.NewBroadcast(store.Users, transport, 4),
		Notify:        transport,
		Elevation:     elevation,
		AdminPassword: "hunter2",
	}
	reg := dialog.NewRegistry()
	f.Register(reg)

	return &env{
		store:     store,
		router:    dialog.NewRouter(sessions, elevation, reg),
		sessions:  sessions,
		elevation: elevation,
		transport: transport,
		flows:     f,
	}
}

// text feeds one free-form message through the router, the path plain
// chat messages take.
func (e *env) text(t *testing.T, userID int64, msg string) *dialog.Turn {
	t.Helper()
	turn, err := e.router.HandleText(context.Background(), userID, msg)
	require.NoError(t, err)
	return turn
}

// command feeds a native slash command, which bypasses any session.
func (e *env) command(t *testing.T, userID int64, trigger string) *dialog.Turn {
	t.Helper()
	turn, err := e.router.HandleCommand(context.Background(), userID, trigger)
	require.NoError(t, err)
	return turn
}

// register creates a user through the same path /start uses and returns
// them with their default profile.
func (e *env) register(t *testing.T, userID int64) *domain.User {
	t.Helper()
	u, _, err := e.flows.Users.Ensure(context.Background(), userID, "")
	require.NoError(t, err)
	return u
}

func (e *env) activeProfile(t *testing.T, userID int64) *domain.Profile {
	t.Helper()
	p, err := e.flows.Profiles.Active(context.Background(), userID)
	require.NoError(t, err)
	return p
}

func (e *env) weightHistory(t *testing.T, profileID uuid.UUID) []domain.WeightEntry {
	t.Helper()
	entries, err := e.store.Progress.WeightHistory(context.Background(), profileID)
	require.NoError(t, err)
	return entries
}

func (e *env) step(userID int64) (dialog.Step, bool) {
	sess, ok := e.sessions.Get(userID)
	return sess.Step, ok
}
