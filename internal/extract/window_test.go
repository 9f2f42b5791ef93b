package extract

import (
	"testing"
	"time"
)

func TestParseWindow_Validation(t *testing.T) {
	cases := []struct {
		name       string
		start, end string
	}{
		{"missing end", "2024-04-01", ""},
		{"missing start", "", "2024-04-30"},
		{"bad format", "04/01/2024", "2024-04-30"},
		{"reversed", "2024-04-30", "2024-04-01"},
	}
	for _, c := range cases {
		if _, err := ParseWindow(c.start, c.end); err == nil {
			t.Fatalf("%s: expected error", c.name)
		}
	}
}

func TestParseWindow_Bounds(t *testing.T) {
	w, err := ParseWindow("2024-04-01", "2024-04-30")
	if err != nil { t.Fatalf("parse: %v", err) }
	if !w.StartUTC.Equal(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("start: %v", w.StartUTC)
	}
	if !w.EndUTC.Equal(time.Date(2024, 4, 30, 23, 59, 59, 0, time.UTC)) {
		t.Fatalf("end: %v", w.EndUTC)
	}
}

func TestParseWindow_SingleDay(t *testing.T) {
	w, err := ParseWindow("2024-04-15", "2024-04-15")
	if err != nil { t.Fatalf("single-day window must be valid: %v", err) }
	if !w.ContainsDate("2024-04-15") { t.Fatalf("own day not contained") }
}

func TestWindow_ContainsDate(t *testing.T) {
	w, _ := ParseWindow("2024-04-01", "2024-04-30")
	if !w.ContainsDate("2024-04-01") || !w.ContainsDate("2024-04-30") {
		t.Fatalf("boundary days must be inclusive")
	}
	if w.ContainsDate("2024-03-31") || w.ContainsDate("2024-05-01") {
		t.Fatalf("neighbor days must be excluded")
	}
}

func TestWindow_ContainsInstant(t *testing.T) {
	w, _ := ParseWindow("2024-04-01", "2024-04-30")
	if !w.ContainsInstant(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("window start instant must be inclusive")
	}
	if !w.ContainsInstant(time.Date(2024, 4, 30, 23, 59, 59, 0, time.UTC)) {
		t.Fatalf("window end instant must be inclusive")
	}
	if w.ContainsInstant(time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)) {
		t.Fatalf("instant before window must be excluded")
	}
}
