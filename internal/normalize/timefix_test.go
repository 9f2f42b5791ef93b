package normalize

import "testing"

func TestFixOffset(t *testing.T) {
	cases := []struct{ in, want string }{
		{"2024-03-15T10:30:00.000+0500", "2024-03-15T10:30:00.000+05:00"},
		{"2024-03-15T10:30:00.000-0830", "2024-03-15T10:30:00.000-08:30"},
		{"2024-03-15T10:30:00.000+05:00", "2024-03-15T10:30:00.000+05:00"},
		{"2024-03-15T10:30:00Z", "2024-03-15T10:30:00Z"},
		{"", ""},
		{"short", "short"},
	}
	for _, c := range cases {
		if got := FixOffset(c.in); got != c.want {
			t.Fatalf("FixOffset(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFixOffset_Idempotent(t *testing.T) {
	in := "2024-03-15T10:30:00.000+0500"
	once := FixOffset(in)
	if twice := FixOffset(once); twice != once {
		t.Fatalf("second application changed the value: %q -> %q", once, twice)
	}
}

func TestParseTimestamp_PreservesZone(t *testing.T) {
	ts, err := ParseTimestamp("2024-03-31T23:59:59.000-0800")
	if err != nil { t.Fatalf("parse: %v", err) }
	_, offset := ts.Zone()
	if offset != -8*3600 { t.Fatalf("expected -08:00 zone, got offset %d", offset) }
}

func TestLocalDate_StaysOnLocalCalendarDay(t *testing.T) {
	// 23:59 local is already the next day in UTC; the local date must win.
	date, err := LocalDate("2024-03-31T23:59:59.000-0800")
	if err != nil { t.Fatalf("parse: %v", err) }
	if date != "2024-03-31" { t.Fatalf("expected 2024-03-31, got %s", date) }
}

func TestParseTimestamp_Malformed(t *testing.T) {
	if _, err := ParseTimestamp("not a timestamp"); err == nil {
		t.Fatalf("expected error for garbage input")
	}
}
