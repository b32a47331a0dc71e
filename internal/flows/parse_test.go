package flows

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePositiveFloat(t *testing.T) {
	for input, want := range map[string]float64{
		"82":    82,
		" 82.5": 82.5,
		"82,5":  82.5,
	} {
		got, ok := parsePositiveFloat(input)
		assert.True(t, ok, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}
	for _, bad := range []string{"", "abc", "-5", "0", "82kg"} {
		_, ok := parsePositiveFloat(bad)
		assert.False(t, ok, "input %q", bad)
	}
}

func TestParseDateIsStrict(t *testing.T) {
	_, ok := parseDate("2027-01-05")
	assert.True(t, ok)

	for _, bad := range []string{"05.01.2027", "2027-1-5", "2027/01/05", "tomorrow"} {
		_, ok := parseDate(bad)
		assert.False(t, ok, "input %q", bad)
	}
}

func TestParseClockList(t *testing.T) {
	times, ok := parseClockList("8:00, 19:30")
	assert.True(t, ok)
	assert.Equal(t, []string{"08:00", "19:30"}, times)

	// One malformed token rejects the whole list.
	_, ok = parseClockList("08:00, 24:00")
	assert.False(t, ok)
	_, ok = parseClockList("")
	assert.False(t, ok)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b c"}, splitList(" a , b c ,, "))
	assert.Empty(t, splitList(" , "))
}
