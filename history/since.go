package history

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseSince turns a --since argument into an absolute time. It accepts a
// Go duration ("90m", "2h"), a day or week count ("7d", "2w"), "today",
// "yesterday", or any date dateparse understands ("2024-03-01",
// "March 1 2024 10:00"), read in loc.
func ParseSince(s string, now time.Time, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty time")
	}
	if loc == nil {
		loc = time.Local
	}

	switch strings.ToLower(s) {
	case "today":
		return midnight(now.In(loc)), nil
	case "yesterday":
		return midnight(now.In(loc)).AddDate(0, 0, -1), nil
	}

	if d, err := time.ParseDuration(s); err == nil {
		return now.Add(-d), nil
	}
	if n, unit := s[:len(s)-1], s[len(s)-1]; unit == 'd' || unit == 'w' {
		if count, err := strconv.Atoi(n); err == nil {
			days := count
			if unit == 'w' {
				days *= 7
			}
			return now.AddDate(0, 0, -days), nil
		}
	}

	t, err := dateparse.ParseIn(s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized time %q: %w", s, err)
	}
	return t, nil
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
