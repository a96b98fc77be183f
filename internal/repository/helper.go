package repository

import (
	"fmt"
	"time"
)

// timeLayouts are the text layouts SQLite hands back for DATE and DATETIME
// columns: plain dates, RFC3339 timestamps written by the application, and
// the "YYYY-MM-DD HH:MM:SS" form produced by CURRENT_TIMESTAMP defaults.
var timeLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// ParseTime parses a date or timestamp string in any of the layouts SQLite
// stores, returning the result in UTC.
func ParseTime(str string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse date: %q", str)
}
