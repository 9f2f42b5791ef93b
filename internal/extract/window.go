package extract

import (
	"errors"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Window is an inclusive calendar date range. Worklogs are compared by
// date-only in their own offset; comments by UTC instant against the
// window's UTC day boundaries.
type Window struct {
	Start string
	End   string

	StartUTC time.Time // start day at 00:00:00 UTC
	EndUTC   time.Time // end day at 23:59:59 UTC
}

// ParseWindow validates a date pair: both present, well-formed, start not
// after end.
func ParseWindow(start, end string) (Window, error) {
	if start == "" || end == "" {
		return Window{}, errors.New("both start and end dates must be provided together")
	}
	st, err := time.Parse(dateLayout, start)
	if err != nil { return Window{}, fmt.Errorf("start date must be in YYYY-MM-DD format: %q", start) }
	en, err := time.Parse(dateLayout, end)
	if err != nil { return Window{}, fmt.Errorf("end date must be in YYYY-MM-DD format: %q", end) }
	if st.After(en) { return Window{}, errors.New("start date must be before or equal to end date") }
	return Window{
		Start:    start,
		End:      end,
		StartUTC: time.Date(st.Year(), st.Month(), st.Day(), 0, 0, 0, 0, time.UTC),
		EndUTC:   time.Date(en.Year(), en.Month(), en.Day(), 23, 59, 59, 0, time.UTC),
	}, nil
}

// ContainsDate reports whether the YYYY-MM-DD date string falls inside the
// window. Lexical comparison is exact for this layout.
func (w Window) ContainsDate(date string) bool {
	return date >= w.Start && date <= w.End
}

// ContainsInstant reports whether the UTC instant falls inside the window.
func (w Window) ContainsInstant(t time.Time) bool {
	return !t.Before(w.StartUTC) && !t.After(w.EndUTC)
}
