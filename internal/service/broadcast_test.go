package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/coachbot/internal/storage/memory"
)

type stubTransport struct {
	mu   sync.Mutex
	sent map[int64]int
	fail map[int64]bool
}

func newStubTransport() *stubTransport {
	return &stubTransport{sent: make(map[int64]int), fail: make(map[int64]bool)}
}

func (s *stubTransport) SendText(_ context.Context, userID int64, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail[userID] {
		return errors.New("blocked")
	}
	s.sent[userID]++
	return nil
}

func TestBroadcastCountsAndIsolatesFailures(t *testing.T) {
	store := memory.New()
	users := NewUsers(store)
	ctx := context.Background()

	for id := int64(1); id <= 5; id++ {
		_, _, err := users.Ensure(ctx, id, "")
		require.NoError(t, err)
	}

	transport := newStubTransport()
	transport.fail[2] = true
	transport.fail[4] = true

	var reported Report
	b := NewBroadcast(store.Users, transport, 2)
	b.OnReport = func(r Report) { reported = r }

	report, err := b.SendAll(ctx, "hello", 0)
	require.NoError(t, err, "per-recipient failures must not fail the batch")
	assert.Equal(t, Report{Sent: 3, Failed: 2}, report)
	assert.Equal(t, report, reported)

	// Healthy recipients got exactly one copy each.
	for _, id := range []int64{1, 3, 5} {
		assert.Equal(t, 1, transport.sent[id], "user %d", id)
	}
}

func TestBroadcastExcludesSender(t *testing.T) {
	store := memory.New()
	users := NewUsers(store)
	ctx := context.Background()

	for id := int64(1); id <= 3; id++ {
		_, _, err := users.Ensure(ctx, id, "")
		require.NoError(t, err)
	}

	transport := newStubTransport()
	b := NewBroadcast(store.Users, transport, 0)

	report, err := b.SendAll(ctx, "hello", 2)
	require.NoError(t, err)
	assert.Equal(t, Report{Sent: 2, Failed: 0}, report)
	assert.Zero(t, transport.sent[2])
}

func TestBroadcastEmptyAudience(t *testing.T) {
	store := memory.New()
	transport := newStubTransport()
	b := NewBroadcast(store.Users, transport, 4)

	report, err := b.SendAll(context.Background(), "hello", 0)
	require.NoError(t, err)
	assert.Equal(t, Report{}, report)
}
