package sqlite

import (
	"time"
)

// FormatTimeForDB formats a time.Time value as an RFC3339 UTC string for consistent database storage
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTimeFromDB parses a timestamp written by FormatTimeForDB. Values
// produced by SQLite's CURRENT_TIMESTAMP default are accepted as well.
func ParseTimeFromDB(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02 15:04:05", s, time.UTC)
}
