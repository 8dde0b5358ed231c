package entry

import (
	"fmt"
	"time"
)

var jaWeekdays = [...]string{"日", "月", "火", "水", "木", "金", "土"}

// FormatDisplayTime renders the localized creation stamp stored on an entry,
// e.g. "2026/08/29(土) 14:05". The string is display data and is persisted
// as-is; it is never re-derived from the id.
func FormatDisplayTime(t time.Time) string {
	t = t.Local()
	return fmt.Sprintf("%04d/%02d/%02d(%s) %02d:%02d",
		t.Year(), int(t.Month()), t.Day(),
		jaWeekdays[int(t.Weekday())],
		t.Hour(), t.Minute())
}

// CreatedAt recovers the creation instant from an entry id.
func (e *Entry) CreatedAt() time.Time {
	return time.UnixMilli(e.ID)
}

// ParseTime parses an RFC3339 stamp, as used in export documents.
func ParseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// FormatTime renders an RFC3339 stamp for export documents.
func FormatTime(v time.Time) string {
	return v.UTC().Format(time.RFC3339)
}
