package flows

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileCreateAndList(t *testing.T) {
	e := newEnv(t)
	e.register(t, 7)

	e.command(t, 7, "/newprofile")
	turn := e.text(t, 7, "Cutting")
	assert.Equal(t, []string{`Profile "Cutting" created and made active.`}, turn.Replies())

	turn = e.command(t, 7, "/profiles")
	require.Len(t, turn.Replies(), 1)
	assert.Equal(t, "1. Main\n2. Cutting (active)", turn.Replies()[0])
}

func TestProfileSwitchByNumberAndName(t *testing.T) {
	e := newEnv(t)
	e.register(t, 7)
	e.command(t, 7, "/newprofile")
	e.text(t, 7, "Cutting")

	e.command(t, 7, "/switchprofile")
	turn := e.text(t, 7, "1")
	assert.Equal(t, []string{`Profile "Main" is now active.`}, turn.Replies())
	assert.Equal(t, "Main", e.activeProfile(t, 7).Name)

	// Name match is case-insensitive.
	e.command(t, 7, "/switchprofile")
	turn = e.text(t, 7, "cutting")
	assert.Equal(t, []string{`Profile "Cutting" is now active.`}, turn.Replies())
	assert.Equal(t, "Cutting", e.activeProfile(t, 7).Name)
}

func TestProfileSwitchUnknownReprompts(t *testing.T) {
	e := newEnv(t)
	e.register(t, 7)
	e.command(t, 7, "/switchprofile")

	turn := e.text(t, 7, "9")
	assert.Equal(t, []string{"No profile with that number. Try again."}, turn.Replies())
	step, ok := e.step(7)
	require.True(t, ok)
	assert.Equal(t, StepProfileSwitch, step)
}

func TestProfileDeleteActiveRepoints(t *testing.T) {
	e := newEnv(t)
	e.register(t, 7)
	e.command(t, 7, "/newprofile")
	e.text(t, 7, "Cutting")

	// "Cutting" is active; deleting it must fall back to "Main".
	e.command(t, 7, "/delprofile")
	turn := e.text(t, 7, "Cutting")
	assert.Equal(t, []string{`Profile "Cutting" deleted.`}, turn.Replies())
	assert.Equal(t, "Main", e.activeProfile(t, 7).Name)
}

func TestProfileDeleteLastRejected(t *testing.T) {
	e := newEnv(t)
	e.register(t, 7)

	e.command(t, 7, "/delprofile")
	turn := e.text(t, 7, "Main")
	assert.Equal(t, []string{"You cannot delete your only profile."}, turn.Replies())
	assert.Equal(t, "Main", e.activeProfile(t, 7).Name)
	_, ok := e.step(7)
	assert.False(t, ok)
}

func TestShowProfileSummary(t *testing.T) {
	e := newEnv(t)
	e.command(t, 7, "/start")
	e.text(t, 7, "29")
	e.text(t, 7, "82")
	e.text(t, 7, "180")

	turn := e.command(t, 7, "/me")
	require.Len(t, turn.Replies(), 1)
	out := turn.Replies()[0]
	assert.Contains(t, out, "Profile: Main")
	assert.Contains(t, out, "Age: 29")
	assert.Contains(t, out, "Weight: 82.0 kg")
	assert.Contains(t, out, "Height: 180 cm")
}
