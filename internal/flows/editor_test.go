package flows

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/coachbot/internal/domain"
)

func TestEditWeightGoesThroughHistory(t *testing.T) {
	e := newEnv(t)
	u := e.register(t, 7)

	turn := e.command(t, 7, "/edit")
	require.Len(t, turn.Replies(), 1)
	assert.Contains(t, turn.Replies()[0], "Which field?")

	turn = e.text(t, 7, "weight")
	assert.Equal(t, []string{"Send your weight in kg."}, turn.Replies())

	// Comma decimal separator is accepted.
	turn = e.text(t, 7, "82,5")
	assert.Equal(t, []string{"Saved."}, turn.Replies())

	assert.Equal(t, 82.5, e.activeProfile(t, 7).WeightKG)
	history := e.weightHistory(t, u.ActiveProfileID)
	require.Len(t, history, 1)
	assert.Equal(t, 82.5, history[0].WeightKG)

	_, ok := e.step(7)
	assert.False(t, ok)
}

func TestEditUnknownFieldReprompts(t *testing.T) {
	e := newEnv(t)
	e.register(t, 7)
	e.command(t, 7, "/edit")

	turn := e.text(t, 7, "shoesize")
	assert.Equal(t, []string{"Unknown field. Pick one from the list."}, turn.Replies())

	step, ok := e.step(7)
	require.True(t, ok)
	assert.Equal(t, StepEditPick, step)
}

func TestEditGoalDateStrictFormat(t *testing.T) {
	e := newEnv(t)
	e.register(t, 7)
	e.command(t, 7, "/edit")
	e.text(t, 7, "goaldate")

	turn := e.text(t, 7, "05.01.2027")
	assert.Equal(t, []string{"Send the date as YYYY-MM-DD."}, turn.Replies())
	step, ok := e.step(7)
	require.True(t, ok)
	assert.Equal(t, StepEditValue, step)

	turn = e.text(t, 7, "2027-01-05")
	assert.Equal(t, []string{"Saved."}, turn.Replies())
	want := time.Date(2027, 1, 5, 0, 0, 0, 0, time.UTC)
	assert.True(t, e.activeProfile(t, 7).GoalDate.Equal(want))
}

func TestEditEquipmentList(t *testing.T) {
	e := newEnv(t)
	e.register(t, 7)
	e.command(t, 7, "/edit")
	e.text(t, 7, "equipment")

	e.text(t, 7, "dumbbells, resistance bands, ,")
	assert.Equal(t, []string{"dumbbells", "resistance bands"}, e.activeProfile(t, 7).Equipment)
}

func TestEditReminderTimesNormalized(t *testing.T) {
	e := newEnv(t)
	e.register(t, 7)
	e.command(t, 7, "/edit")
	e.text(t, 7, "reminders")

	// One bad token rejects the whole list.
	turn := e.text(t, 7, "08:00, 25:99")
	assert.Equal(t, []string{"Send times as HH:MM, comma separated."}, turn.Replies())
	assert.Empty(t, e.activeProfile(t, 7).ReminderTimes)

	e.text(t, 7, "8:00, 19:30")
	assert.Equal(t, []string{"08:00", "19:30"}, e.activeProfile(t, 7).ReminderTimes)
}

func TestEditLevel(t *testing.T) {
	e := newEnv(t)
	e.register(t, 7)
	e.command(t, 7, "/edit")
	e.text(t, 7, "level")

	turn := e.text(t, 7, "superhuman")
	assert.Equal(t, []string{"Send beginner, intermediate or advanced."}, turn.Replies())

	e.text(t, 7, "Advanced")
	assert.Equal(t, domain.LevelAdvanced, e.activeProfile(t, 7).Level)
}

func TestEditWithoutRegistration(t *testing.T) {
	e := newEnv(t)

	turn := e.command(t, 99, "/edit")
	require.Len(t, turn.Replies(), 1)
	assert.Contains(t, turn.Replies()[0], "/start")
	_, ok := e.step(99)
	assert.False(t, ok)
}
