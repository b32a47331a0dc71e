package dialog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testData struct {
	Payload
	Value string
}

func newTestRouter(t *testing.T) (*Router, *Registry, SessionStore, ElevationStore) {
	t.Helper()
	sessions := NewSessionStore()
	elevated := NewElevationStore()
	reg := NewRegistry()
	return NewRouter(sessions, elevated, reg), reg, sessions, elevated
}

func TestRouterActiveSessionWinsOverCommands(t *testing.T) {
	router, reg, sessions, _ := newTestRouter(t)

	var stepHit, cmdHit bool
	reg.MustRegisterStep("collect", StepDef{Handler: func(_ context.Context, tn *Turn) error {
		stepHit = true
		tn.Finish()
		return nil
	}})
	reg.MustRegisterCommand(CommandDef{Trigger: "/menu", Aliases: []string{"Menu"}, Handler: func(_ context.Context, tn *Turn) error {
		cmdHit = true
		return nil
	}})

	sessions.Set(1, "collect", testData{Value: "x"})

	// Mid-flow text equal to a command label stays with the flow.
	_, err := router.HandleText(context.Background(), 1, "Menu")
	require.NoError(t, err)
	assert.True(t, stepHit)
	assert.False(t, cmdHit)
}

func TestRouterCommandOrderFirstMatchWins(t *testing.T) {
	router, reg, _, _ := newTestRouter(t)

	var got string
	reg.MustRegisterCommand(CommandDef{Trigger: "/a", Handler: func(_ context.Context, tn *Turn) error {
		got = "a"
		return nil
	}})
	reg.MustRegisterCommand(CommandDef{Trigger: "/b", Handler: func(_ context.Context, tn *Turn) error {
		got = "b"
		return nil
	}})

	_, err := router.HandleText(context.Background(), 1, "/b")
	require.NoError(t, err)
	assert.Equal(t, "b", got)
}

func TestRegistryRejectsDuplicateTriggers(t *testing.T) {
	reg := NewRegistry()
	handler := func(_ context.Context, _ *Turn) error { return nil }

	require.NoError(t, reg.RegisterCommand(CommandDef{Trigger: "/x", Handler: handler}))
	assert.Error(t, reg.RegisterCommand(CommandDef{Trigger: "/x", Handler: handler}))
	assert.Error(t, reg.RegisterCommand(CommandDef{Trigger: "/y", Aliases: []string{"/x"}, Handler: handler}))

	require.NoError(t, reg.RegisterStep("s", StepDef{Handler: handler}))
	assert.Error(t, reg.RegisterStep("s", StepDef{Handler: handler}))
}

func TestRouterUnknownStepClearsSession(t *testing.T) {
	router, _, sessions, _ := newTestRouter(t)
	sessions.Set(1, "ghost", nil)

	_, err := router.HandleText(context.Background(), 1, "anything")
	require.ErrorIs(t, err, ErrUnknownStep)

	_, ok := sessions.Get(1)
	assert.False(t, ok, "broken session must be dropped")
}

func TestRouterSessionIsolation(t *testing.T) {
	router, reg, sessions, _ := newTestRouter(t)

	reg.MustRegisterStep("collect", StepDef{Handler: func(_ context.Context, tn *Turn) error {
		tn.Advance("collect", testData{Value: tn.Text})
		return nil
	}})
	reg.SetFallback(func(_ context.Context, tn *Turn) error {
		tn.Reply("?")
		return nil
	})

	sessions.Set(1, "collect", testData{Value: "a"})

	// A turn from user 2 must not touch user 1's session.
	_, err := router.HandleText(context.Background(), 2, "hello")
	require.NoError(t, err)

	sess, ok := sessions.Get(1)
	require.True(t, ok)
	assert.Equal(t, testData{Value: "a"}, sess.Data)
	_, ok = sessions.Get(2)
	assert.False(t, ok)
}

func TestRouterElevatedStepRecheckedEveryTurn(t *testing.T) {
	router, reg, sessions, elevated := newTestRouter(t)

	var hits int
	reg.MustRegisterStep("secure", StepDef{Elevated: true, Handler: func(_ context.Context, tn *Turn) error {
		hits++
		return nil
	}})

	elevated.Grant(1)
	sessions.Set(1, "secure", nil)

	_, err := router.HandleText(context.Background(), 1, "one")
	require.NoError(t, err)
	assert.Equal(t, 1, hits)

	// Demoted mid-flow: the handler must not run again and the
	// session must be left as-is.
	elevated.Revoke(1)
	turn, err := router.HandleText(context.Background(), 1, "two")
	require.NoError(t, err)
	assert.Equal(t, 1, hits)
	assert.Equal(t, []string{"Admin only."}, turn.Replies())

	sess, ok := sessions.Get(1)
	require.True(t, ok)
	assert.Equal(t, Step("secure"), sess.Step)
}

func TestRouterTransitionOnlyOnSuccess(t *testing.T) {
	router, reg, sessions, _ := newTestRouter(t)

	boom := errors.New("storage down")
	reg.MustRegisterStep("write", StepDef{Handler: func(_ context.Context, tn *Turn) error {
		tn.Advance("next", nil)
		return boom
	}})
	reg.MustRegisterStep("next", StepDef{Handler: func(_ context.Context, _ *Turn) error { return nil }})

	sessions.Set(1, "write", nil)
	_, err := router.HandleText(context.Background(), 1, "x")
	require.ErrorIs(t, err, boom)

	sess, ok := sessions.Get(1)
	require.True(t, ok)
	assert.Equal(t, Step("write"), sess.Step, "failed turn must not advance")
}

func TestRouterSelfLoopWhenHandlerRecordsNothing(t *testing.T) {
	router, reg, sessions, _ := newTestRouter(t)

	reg.MustRegisterStep("validate", StepDef{Handler: func(_ context.Context, tn *Turn) error {
		tn.Reply("try again")
		return nil
	}})
	sessions.Set(1, "validate", testData{Value: "kept"})

	_, err := router.HandleText(context.Background(), 1, "bad input")
	require.NoError(t, err)

	sess, ok := sessions.Get(1)
	require.True(t, ok)
	assert.Equal(t, Step("validate"), sess.Step)
	assert.Equal(t, testData{Value: "kept"}, sess.Data)
}

func TestRouterFallbackLeavesSessionUntouched(t *testing.T) {
	router, reg, sessions, _ := newTestRouter(t)

	var fallbackHit bool
	reg.SetFallback(func(_ context.Context, tn *Turn) error {
		fallbackHit = true
		tn.Reply("did not understand")
		return nil
	})

	_, err := router.HandleText(context.Background(), 5, "gibberish")
	require.NoError(t, err)
	assert.True(t, fallbackHit)
	_, ok := sessions.Get(5)
	assert.False(t, ok)
}

func TestRouterHandleCommandBypassesSession(t *testing.T) {
	router, reg, sessions, _ := newTestRouter(t)

	reg.MustRegisterStep("collect", StepDef{Handler: func(_ context.Context, _ *Turn) error { return nil }})
	reg.MustRegisterCommand(CommandDef{Trigger: "/cancel", Handler: func(_ context.Context, tn *Turn) error {
		tn.Finish()
		tn.Reply("Cancelled.")
		return nil
	}})

	sessions.Set(1, "collect", nil)
	turn, err := router.HandleCommand(context.Background(), 1, "/cancel")
	require.NoError(t, err)
	assert.Equal(t, []string{"Cancelled."}, turn.Replies())

	_, ok := sessions.Get(1)
	assert.False(t, ok)
}

func TestRouterCancel(t *testing.T) {
	router, _, sessions, _ := newTestRouter(t)

	assert.False(t, router.Cancel(1))
	sessions.Set(1, "any", nil)
	assert.True(t, router.Cancel(1))
	_, ok := sessions.Get(1)
	assert.False(t, ok)
}

func TestElevationStore(t *testing.T) {
	store := NewElevationStore()
	assert.False(t, store.Elevated(1))
	store.Grant(1)
	assert.True(t, store.Elevated(1))
	assert.False(t, store.Elevated(2))
	store.Revoke(1)
	assert.False(t, store.Elevated(1))
}
