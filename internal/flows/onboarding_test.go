package flows

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnboardingFullChain(t *testing.T) {
	e := newEnv(t)

	turn := e.command(t, 7, "/start")
	require.Len(t, turn.Replies(), 2)
	assert.Contains(t, turn.Replies()[0], "Welcome!")
	assert.Equal(t, "Send your age.", turn.Replies()[1])

	step, ok := e.step(7)
	require.True(t, ok)
	assert.Equal(t, StepOnboardingAge, step)

	profile := e.activeProfile(t, 7)

	// Age.
	turn = e.text(t, 7, "29")
	assert.Equal(t, []string{"Send your weight in kg."}, turn.Replies())
	assert.Equal(t, 29, e.activeProfile(t, 7).Age)

	// Invalid weight re-prompts without touching storage or the step.
	turn = e.text(t, 7, "abc")
	assert.Equal(t, []string{"Send a numeric weight in kg."}, turn.Replies())
	assert.Zero(t, e.activeProfile(t, 7).WeightKG)
	assert.Empty(t, e.weightHistory(t, profile.ID))
	step, _ = e.step(7)
	assert.Equal(t, StepOnboardingWeight, step)

	// Valid weight updates the profile and appends exactly one history
	// entry.
	turn = e.text(t, 7, "82")
	assert.Equal(t, []string{"Send your height in cm."}, turn.Replies())
	assert.Equal(t, 82.0, e.activeProfile(t, 7).WeightKG)
	history := e.weightHistory(t, profile.ID)
	require.Len(t, history, 1)
	assert.Equal(t, 82.0, history[0].WeightKG)

	// Height completes the chain and clears the session.
	turn = e.text(t, 7, "180")
	require.Len(t, turn.Replies(), 1)
	assert.Contains(t, turn.Replies()[0], "All set")
	assert.Equal(t, 180.0, e.activeProfile(t, 7).HeightCM)
	_, ok = e.step(7)
	assert.False(t, ok)
}

func TestOnboardingRestartForExistingUser(t *testing.T) {
	e := newEnv(t)
	e.register(t, 7)

	turn := e.command(t, 7, "/start")
	require.NotEmpty(t, turn.Replies())
	assert.Contains(t, turn.Replies()[0], "Welcome back")

	step, ok := e.step(7)
	require.True(t, ok)
	assert.Equal(t, StepOnboardingAge, step)
}

func TestOnboardingInvalidAgeReprompts(t *testing.T) {
	e := newEnv(t)
	e.command(t, 7, "/start")

	for _, bad := range []string{"-3", "0", "twelve", "12.5"} {
		turn := e.text(t, 7, bad)
		assert.Equal(t, []string{"Send a numeric age."}, turn.Replies(), "input %q", bad)
	}
	assert.Zero(t, e.activeProfile(t, 7).Age)
}

func TestStartCommandInterruptsActiveFlow(t *testing.T) {
	e := newEnv(t)
	e.command(t, 7, "/start")
	e.text(t, 7, "29")

	// /start arrives as a native command, so it restarts the chain even
	// though a session is active.
	turn := e.command(t, 7, "/start")
	require.Len(t, turn.Replies(), 2)
	assert.Equal(t, "Send your age.", turn.Replies()[1])

	step, ok := e.step(7)
	require.True(t, ok)
	assert.Equal(t, StepOnboardingAge, step)
}

func TestCancelMidOnboarding(t *testing.T) {
	e := newEnv(t)
	e.command(t, 7, "/start")

	turn := e.command(t, 7, "/cancel")
	assert.Equal(t, []string{"Cancelled."}, turn.Replies())
	_, ok := e.step(7)
	assert.False(t, ok)

	turn = e.command(t, 7, "/cancel")
	assert.Equal(t, []string{"Nothing to cancel."}, turn.Replies())
}
