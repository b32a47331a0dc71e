package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/coachbot/internal/storage"
	"github.com/m3rciful/coachbot/internal/storage/memory"
)

func TestUsersEnsureCreatesDefaultProfile(t *testing.T) {
	store := memory.New()
	users := NewUsers(store)
	ctx := context.Background()

	u, created, err := users.Ensure(ctx, 7, "alice")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "alice", u.Username)

	p, err := store.Profiles.Get(ctx, u.ActiveProfileID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), p.UserID)
	assert.Equal(t, "Main", p.Name)

	// Second contact is a plain lookup.
	again, created, err := users.Ensure(ctx, 7, "alice")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, u.ActiveProfileID, again.ActiveProfileID)

	profiles, err := store.Profiles.ByUser(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, profiles, 1)
}

func TestProfilesCreateBecomesActive(t *testing.T) {
	store := memory.New()
	users := NewUsers(store)
	profiles := NewProfiles(store)
	ctx := context.Background()

	u, _, err := users.Ensure(ctx, 7, "")
	require.NoError(t, err)
	first := u.ActiveProfileID

	p, err := profiles.Create(ctx, 7, "Cutting")
	require.NoError(t, err)
	assert.NotEqual(t, first, p.ID)

	active, err := profiles.Active(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, p.ID, active.ID)
}

func TestProfilesDeleteActiveRepoints(t *testing.T) {
	store := memory.New()
	users := NewUsers(store)
	profiles := NewProfiles(store)
	ctx := context.Background()

	u, _, err := users.Ensure(ctx, 7, "")
	require.NoError(t, err)
	first := u.ActiveProfileID

	second, err := profiles.Create(ctx, 7, "Cutting")
	require.NoError(t, err)

	// The second profile is active; deleting it must re-point at the
	// survivor.
	require.NoError(t, profiles.Delete(ctx, 7, second.ID))

	active, err := profiles.Active(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, first, active.ID)

	_, err = store.Profiles.Get(ctx, second.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestProfilesDeleteInactiveKeepsActive(t *testing.T) {
	store := memory.New()
	users := NewUsers(store)
	profiles := NewProfiles(store)
	ctx := context.Background()

	u, _, err := users.Ensure(ctx, 7, "")
	require.NoError(t, err)
	first := u.ActiveProfileID

	second, err := profiles.Create(ctx, 7, "Cutting")
	require.NoError(t, err)

	require.NoError(t, profiles.Delete(ctx, 7, first))

	active, err := profiles.Active(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)
}

func TestProfilesDeleteLastRejected(t *testing.T) {
	store := memory.New()
	users := NewUsers(store)
	profiles := NewProfiles(store)
	ctx := context.Background()

	u, _, err := users.Ensure(ctx, 7, "")
	require.NoError(t, err)

	err = profiles.Delete(ctx, 7, u.ActiveProfileID)
	assert.ErrorIs(t, err, ErrLastProfile)

	// Nothing changed.
	active, err := profiles.Active(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, u.ActiveProfileID, active.ID)
}

func TestProfilesSwitchActiveRejectsForeignProfile(t *testing.T) {
	store := memory.New()
	users := NewUsers(store)
	profiles := NewProfiles(store)
	ctx := context.Background()

	_, _, err := users.Ensure(ctx, 7, "")
	require.NoError(t, err)
	other, _, err := users.Ensure(ctx, 8, "")
	require.NoError(t, err)

	err = profiles.SwitchActive(ctx, 7, other.ActiveProfileID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestProfilesSetWeightDualWrite(t *testing.T) {
	store := memory.New()
	users := NewUsers(store)
	profiles := NewProfiles(store)
	ctx := context.Background()

	u, _, err := users.Ensure(ctx, 7, "")
	require.NoError(t, err)

	require.NoError(t, profiles.SetWeight(ctx, u.ActiveProfileID, 82.5))
	require.NoError(t, profiles.SetWeight(ctx, u.ActiveProfileID, 81.9))

	p, err := profiles.Get(ctx, u.ActiveProfileID)
	require.NoError(t, err)
	assert.Equal(t, 81.9, p.WeightKG)

	history, err := store.Progress.WeightHistory(ctx, u.ActiveProfileID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 82.5, history[0].WeightKG)
	assert.Equal(t, 81.9, history[1].WeightKG)
}

func TestProfilesOtherSettersDoNotTouchHistory(t *testing.T) {
	store := memory.New()
	users := NewUsers(store)
	profiles := NewProfiles(store)
	ctx := context.Background()

	u, _, err := users.Ensure(ctx, 7, "")
	require.NoError(t, err)

	require.NoError(t, profiles.SetAge(ctx, u.ActiveProfileID, 29))
	require.NoError(t, profiles.SetHeight(ctx, u.ActiveProfileID, 180))
	require.NoError(t, profiles.SetGoal(ctx, u.ActiveProfileID, "run a marathon"))

	history, err := store.Progress.WeightHistory(ctx, u.ActiveProfileID)
	require.NoError(t, err)
	assert.Empty(t, history)
}
