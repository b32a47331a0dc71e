package flows

import (
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// parsePositiveInt accepts a whole number greater than zero.
func parsePositiveInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// parsePositiveFloat accepts a decimal number greater than zero.
// A comma decimal separator is tolerated.
func parsePositiveFloat(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return 0, false
	}
	return f, true
}

// parseDate accepts exactly YYYY-MM-DD.
func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// splitList splits comma-separated tokens, trimming each and dropping
// empties.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// parseClockList splits a comma list of HH:MM tokens, returning them
// normalized. Any malformed token rejects the whole input.
func parseClockList(s string) ([]string, bool) {
	tokens := splitList(s)
	if len(tokens) == 0 {
		return nil, false
	}
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		t, err := time.Parse("15:04", tok)
		if err != nil {
			return nil, false
		}
		out = append(out, t.Format("15:04"))
	}
	return out, true
}
