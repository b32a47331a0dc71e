package flows

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/coachbot/internal/domain"
)

func (e *env) signIn(t *testing.T, userID int64) {
	t.Helper()
	e.command(t, userID, "/admin")
	turn := e.text(t, userID, "hunter2")
	require.Equal(t, []string{"Admin access granted."}, turn.Replies())
}

func TestAdminPasswordGrantAndDeny(t *testing.T) {
	e := newEnv(t)
	e.register(t, 1)

	turn := e.command(t, 1, "/admin")
	assert.Equal(t, []string{"Send the admin password."}, turn.Replies())

	// Wrong attempt ends the flow without elevation.
	turn = e.text(t, 1, "guess")
	assert.Equal(t, []string{"Wrong password."}, turn.Replies())
	assert.False(t, e.elevation.Elevated(1))
	_, ok := e.step(1)
	assert.False(t, ok)

	// Correct attempt elevates.
	e.command(t, 1, "/admin")
	turn = e.text(t, 1, "hunter2")
	assert.Equal(t, []string{"Admin access granted."}, turn.Replies())
	assert.True(t, e.elevation.Elevated(1))
}

func TestAdminElevationPersistsAcrossTurns(t *testing.T) {
	e := newEnv(t)
	e.register(t, 1)
	e.signIn(t, 1)

	// An unrelated turn later, elevated commands still work.
	e.command(t, 1, "/me")
	turn := e.command(t, 1, "/inbox")
	assert.Equal(t, []string{"Inbox is empty."}, turn.Replies())
}

func TestElevatedCommandDeniedWithoutSignIn(t *testing.T) {
	e := newEnv(t)
	e.register(t, 1)

	turn := e.command(t, 1, "/broadcast")
	assert.Equal(t, []string{"Admin only."}, turn.Replies())
	_, ok := e.step(1)
	assert.False(t, ok)
}

func TestLogoutRevokesElevation(t *testing.T) {
	e := newEnv(t)
	e.register(t, 1)

	turn := e.command(t, 1, "/logout")
	assert.Equal(t, []string{"You are not signed in."}, turn.Replies())

	e.signIn(t, 1)
	turn = e.command(t, 1, "/logout")
	assert.Equal(t, []string{"Admin access revoked."}, turn.Replies())
	assert.False(t, e.elevation.Elevated(1))

	turn = e.command(t, 1, "/inbox")
	assert.Equal(t, []string{"Admin only."}, turn.Replies())
}

func TestLogoutMidFlowFreezesElevatedSteps(t *testing.T) {
	e := newEnv(t)
	e.register(t, 1)
	e.signIn(t, 1)

	e.command(t, 1, "/broadcast")
	e.command(t, 1, "/logout")

	// The session still points at the broadcast step, but elevation is
	// re-checked on every turn.
	turn := e.text(t, 1, "hello everyone")
	assert.Equal(t, []string{"Admin only."}, turn.Replies())
	step, ok := e.step(1)
	require.True(t, ok)
	assert.Equal(t, StepBroadcastText, step)
}

func TestEmptyConfiguredPasswordNeverMatches(t *testing.T) {
	e := newEnv(t)
	e.flows.AdminPassword = ""
	e.register(t, 1)

	e.command(t, 1, "/admin")
	turn := e.text(t, 1, "")
	assert.Equal(t, []string{"Wrong password."}, turn.Replies())
	assert.False(t, e.elevation.Elevated(1))
}

func TestBroadcastComposeConfirmAndReport(t *testing.T) {
	e := newEnv(t)
	for _, id := range []int64{1, 2, 3, 4} {
		e.register(t, id)
	}
	e.transport.fail[3] = true
	e.signIn(t, 1)

	turn := e.command(t, 1, "/broadcast")
	assert.Equal(t, []string{"Send the broadcast text."}, turn.Replies())

	turn = e.text(t, 1, "Gym closed on Friday.")
	require.Len(t, turn.Replies(), 1)
	assert.Contains(t, turn.Replies()[0], "Gym closed on Friday.")

	turn = e.text(t, 1, "yes")
	assert.Equal(t, []string{"Broadcast done: 2 sent, 1 failed."}, turn.Replies())

	// The sender is excluded; healthy recipients each got one copy.
	assert.Empty(t, e.transport.sentTo(1))
	assert.Equal(t, []string{"Gym closed on Friday."}, e.transport.sentTo(2))
	assert.Equal(t, []string{"Gym closed on Friday."}, e.transport.sentTo(4))

	_, ok := e.step(1)
	assert.False(t, ok)
}

func TestBroadcastAnythingButYesCancels(t *testing.T) {
	e := newEnv(t)
	e.register(t, 1)
	e.register(t, 2)
	e.signIn(t, 1)

	e.command(t, 1, "/broadcast")
	e.text(t, 1, "draft text")
	turn := e.text(t, 1, "no")
	assert.Equal(t, []string{"Broadcast cancelled."}, turn.Replies())
	assert.Empty(t, e.transport.sentTo(2))
}

func TestContentLifecycle(t *testing.T) {
	e := newEnv(t)
	e.register(t, 1)
	e.signIn(t, 1)

	e.command(t, 1, "/newcontent")
	turn := e.text(t, 1, "bogus")
	assert.Equal(t, []string{"Send workout or nutrition."}, turn.Replies())

	e.text(t, 1, "workout")
	e.text(t, 1, "Push day")
	turn = e.text(t, 1, "Bench, dips, overhead press.")
	require.Len(t, turn.Replies(), 1)
	assert.Contains(t, turn.Replies()[0], "Push day")

	items, err := e.flows.Content.ListByKind(context.Background(), domain.ContentWorkout)
	require.NoError(t, err)
	require.Len(t, items, 1)

	// Regular users see it through the browse command.
	e.register(t, 2)
	turn = e.command(t, 2, "/workouts")
	require.Len(t, turn.Replies(), 1)
	assert.Contains(t, turn.Replies()[0], "Push day")

	// Delete it again.
	e.command(t, 1, "/delcontent")
	turn = e.text(t, 1, items[0].ID.String())
	assert.Equal(t, []string{"Content deleted."}, turn.Replies())
}

func TestReplyFlowDeliversAndMarksRead(t *testing.T) {
	e := newEnv(t)
	e.register(t, 1)
	e.register(t, 2)
	e.signIn(t, 1)

	// User 2 contacts the trainer.
	e.command(t, 2, "/contact")
	turn := e.text(t, 2, "My knee hurts during squats.")
	require.Len(t, turn.Replies(), 1)
	assert.Contains(t, turn.Replies()[0], "Passed on")

	msgs, err := e.flows.Relay.Unread(context.Background())
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	turn = e.command(t, 1, "/inbox")
	require.Len(t, turn.Replies(), 1)
	assert.Contains(t, turn.Replies()[0], msgs[0].ID.String())
	assert.Contains(t, turn.Replies()[0], "My knee hurts")

	e.command(t, 1, "/reply")
	turn = e.text(t, 1, msgs[0].ID.String())
	assert.Contains(t, turn.Replies()[0], "Replying to 2.")

	turn = e.text(t, 1, "Drop the weight and check your stance.")
	assert.Equal(t, []string{"Answer delivered."}, turn.Replies())

	delivered := e.transport.sentTo(2)
	require.Len(t, delivered, 1)
	assert.Contains(t, delivered[0], "Your trainer answered:")
	assert.Contains(t, delivered[0], "Drop the weight")

	remaining, err := e.flows.Relay.Unread(context.Background())
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestReplyFailedSendKeepsMessageUnread(t *testing.T) {
	e := newEnv(t)
	e.register(t, 1)
	e.register(t, 2)
	e.signIn(t, 1)
	e.transport.fail[2] = true

	msg, err := e.flows.Relay.Record(context.Background(), 2, domain.RelayMessage, "hello")
	require.NoError(t, err)

	e.command(t, 1, "/reply")
	e.text(t, 1, msg.ID.String())
	_, err = e.router.HandleText(context.Background(), 1, "my answer")
	require.Error(t, err)

	// The turn failed, so the step is kept and the message stays unread
	// for a retry.
	step, ok := e.step(1)
	require.True(t, ok)
	assert.Equal(t, StepReplyBody, step)
	msgs, err := e.flows.Relay.Unread(context.Background())
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}

func TestRoleChange(t *testing.T) {
	e := newEnv(t)
	e.register(t, 1)
	e.register(t, 2)
	e.signIn(t, 1)

	e.command(t, 1, "/setrole")
	turn := e.text(t, 1, "2 admin")
	assert.Equal(t, []string{"User 2 is now admin."}, turn.Replies())

	u, err := e.flows.Users.Get(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role)

	// Persisted role does not grant flow access by itself.
	turn = e.command(t, 2, "/inbox")
	assert.Equal(t, []string{"Admin only."}, turn.Replies())
}
