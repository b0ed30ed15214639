// Package history keeps a bounded log of completed conversions and persists
// it to a line-delimited file or a SQLite database.
package history

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultMaxEntries is the default history capacity.
const DefaultMaxEntries = 100

// Entry is one completed conversion.
type Entry struct {
	From   string    // canonical symbol of the source unit
	To     string    // canonical symbol of the target unit
	Value  float64
	Result float64
	Time   time.Time // persisted with one-second precision
}

// formatFloat writes the shortest text that parses back to the same value.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// MarshalText encodes the entry as "from,to,value,result,unixSeconds".
func (e Entry) MarshalText() ([]byte, error) {
	if strings.ContainsAny(e.From+e.To, ",\n") {
		return nil, fmt.Errorf("unit symbol contains a separator: %q -> %q", e.From, e.To)
	}
	line := strings.Join([]string{
		e.From,
		e.To,
		formatFloat(e.Value),
		formatFloat(e.Result),
		strconv.FormatInt(e.Time.Unix(), 10),
	}, ",")
	return []byte(line), nil
}

// UnmarshalText decodes a line written by MarshalText.
func (e *Entry) UnmarshalText(text []byte) error {
	fields := strings.Split(strings.TrimSpace(string(text)), ",")
	if len(fields) != 5 {
		return fmt.Errorf("expected 5 fields, got %d", len(fields))
	}
	if fields[0] == "" || fields[1] == "" {
		return fmt.Errorf("empty unit symbol")
	}
	value, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return fmt.Errorf("value: %w", err)
	}
	result, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return fmt.Errorf("result: %w", err)
	}
	ts, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	*e = Entry{From: fields[0], To: fields[1], Value: value, Result: result, Time: time.Unix(ts, 0)}
	return nil
}
