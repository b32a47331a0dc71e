package flows

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogWeightFlow(t *testing.T) {
	e := newEnv(t)
	u := e.register(t, 7)

	e.command(t, 7, "/weight")
	turn := e.text(t, 7, "abc")
	assert.Equal(t, []string{"Send a numeric weight in kg."}, turn.Replies())
	assert.Empty(t, e.weightHistory(t, u.ActiveProfileID))

	turn = e.text(t, 7, "81.4")
	assert.Equal(t, []string{"Weight logged."}, turn.Replies())
	assert.Equal(t, 81.4, e.activeProfile(t, 7).WeightKG)
	require.Len(t, e.weightHistory(t, u.ActiveProfileID), 1)
}

func TestWeightHistoryCommand(t *testing.T) {
	e := newEnv(t)
	e.register(t, 7)

	turn := e.command(t, 7, "/history")
	assert.Equal(t, []string{"No weight entries yet. Log one with /weight."}, turn.Replies())

	e.command(t, 7, "/weight")
	e.text(t, 7, "81")
	e.command(t, 7, "/weight")
	e.text(t, 7, "80.5")

	turn = e.command(t, 7, "/history")
	require.Len(t, turn.Replies(), 1)
	assert.Contains(t, turn.Replies()[0], "81.0 kg")
	assert.Contains(t, turn.Replies()[0], "80.5 kg")
}

func TestLogMealAndWorkout(t *testing.T) {
	e := newEnv(t)
	u := e.register(t, 7)

	e.command(t, 7, "/meal")
	turn := e.text(t, 7, "Oats with berries")
	assert.Equal(t, []string{"Meal logged."}, turn.Replies())

	e.command(t, 7, "/workout")
	turn = e.text(t, 7, "5k run")
	assert.Equal(t, []string{"Workout logged."}, turn.Replies())

	meals, err := e.flows.Progress.RecentMeals(context.Background(), u.ActiveProfileID, 10)
	require.NoError(t, err)
	require.Len(t, meals, 1)
	assert.Equal(t, "Oats with berries", meals[0].Text)

	workouts, err := e.flows.Progress.RecentWorkouts(context.Background(), u.ActiveProfileID, 10)
	require.NoError(t, err)
	require.Len(t, workouts, 1)
	assert.Equal(t, "5k run", workouts[0].Text)
}

func TestMenuLabelStartsFlow(t *testing.T) {
	e := newEnv(t)
	e.register(t, 7)

	// Reply-keyboard labels arrive as plain text and resolve through the
	// alias table.
	turn := e.text(t, 7, "Log weight")
	assert.Equal(t, []string{"Send your current weight in kg."}, turn.Replies())

	step, ok := e.step(7)
	require.True(t, ok)
	assert.Equal(t, StepLogWeight, step)
}

func TestUnregisteredUserIsSentToStart(t *testing.T) {
	e := newEnv(t)

	turn := e.command(t, 42, "/weight")
	assert.Equal(t, []string{"You are not registered yet. Send /start first."}, turn.Replies())
	_, ok := e.step(42)
	assert.False(t, ok)
}

func TestFallbackForUnknownText(t *testing.T) {
	e := newEnv(t)
	e.register(t, 7)

	turn := e.text(t, 7, "what should I eat")
	assert.Equal(t, []string{"I did not understand that. Try /help."}, turn.Replies())
}
