package normalize

import (
	"time"
)

// FixOffset repairs the malformed UTC offset some Jira servers emit: the
// numeric offset is missing its colon separator ("+0500" instead of
// "+05:00"). Timestamps that already carry a colon, or end in Z, pass
// through unchanged, so the fix is idempotent.
func FixOffset(s string) string {
	if len(s) < 6 { return s }
	if s[len(s)-1] == 'Z' || s[len(s)-1] == 'z' { return s }
	if s[len(s)-3] == ':' { return s }
	return s[:len(s)-2] + ":" + s[len(s)-2:]
}

// ParseTimestamp parses a Jira timestamp after repairing the offset,
// preserving the original zone.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, FixOffset(s))
}

// LocalDate reduces a timestamp to its calendar date in the timestamp's own
// offset. A worklog started late at night stays on that local date even when
// the UTC equivalent crosses midnight.
func LocalDate(s string) (string, error) {
	t, err := ParseTimestamp(s)
	if err != nil { return "", err }
	return t.Format("2006-01-02"), nil
}
