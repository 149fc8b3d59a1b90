// Package booking implements date-range selection for day-rate services.
package booking

import (
	"fmt"
	"time"

	"github.com/iliamunaev/doorstep/internal/apperr"
)

// DateLayout is the calendar date format exchanged with date pickers.
const DateLayout = "2006-01-02"

const day = 24 * time.Hour

// State is the selection state of a Range.
type State int

const (
	Empty State = iota
	StartOnly
	Complete
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case StartOnly:
		return "start_only"
	case Complete:
		return "complete"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Range is a date range built from successive calendar picks.
// When complete, start is never after end.
//
// The zero value is an empty range.
type Range struct {
	start time.Time
	end   time.Time
	state State
}

// Pick applies one calendar click:
//   - with no range, or a complete one, d starts a new range;
//   - with only a start, a date before it becomes the start and the old
//     start becomes the end;
//   - otherwise d becomes the end.
func (r *Range) Pick(d time.Time) {
	d = Date(d)
	switch {
	case r.state != StartOnly:
		r.start, r.end, r.state = d, time.Time{}, StartOnly
	case d.Before(r.start):
		r.start, r.end, r.state = d, r.start, Complete
	default:
		r.end, r.state = d, Complete
	}
}

// PickDate parses a YYYY-MM-DD date and applies it with Pick.
func (r *Range) PickDate(s string) error {
	d, err := ParseDate(s)
	if err != nil {
		return err
	}
	r.Pick(d)
	return nil
}

// Reset clears the range.
func (r *Range) Reset() { *r = Range{} }

// State returns the current selection state.
func (r *Range) State() State { return r.state }

// Start returns the start date; ok is false when the range is empty.
func (r *Range) Start() (time.Time, bool) {
	return r.start, r.state != Empty
}

// End returns the end date; ok is false unless the range is complete.
func (r *Range) End() (time.Time, bool) {
	return r.end, r.state == Complete
}

// CanBook reports whether both ends are chosen.
func (r *Range) CanBook() bool { return r.state == Complete }

// Days returns the inclusive number of days, or 0 unless complete.
func (r *Range) Days() int {
	if r.state != Complete {
		return 0
	}
	return InclusiveDays(r.start, r.end)
}

// Total returns Days × rate.
func (r *Range) Total(rate int64) int64 {
	return int64(r.Days()) * rate
}

// Dates lists every date of a complete range, both ends included. With only
// a start it returns the start alone.
func (r *Range) Dates() []string {
	switch r.state {
	case StartOnly:
		return []string{FormatDate(r.start)}
	case Complete:
		out := make([]string, 0, r.Days())
		for d := r.start; !d.After(r.end); d = d.AddDate(0, 0, 1) {
			out = append(out, FormatDate(d))
		}
		return out
	default:
		return nil
	}
}

func (r *Range) String() string {
	switch r.state {
	case StartOnly:
		return "Start: " + FormatDate(r.start)
	case Complete:
		return "Selected: " + FormatDate(r.start) + " to " + FormatDate(r.end)
	default:
		return "No dates selected"
	}
}

// InclusiveDays counts calendar days from start to end with both ends
// included. Times of day are ignored.
func InclusiveDays(start, end time.Time) int {
	return int(Date(end).Sub(Date(start))/day) + 1
}

// Date truncates t to its calendar date in UTC.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("booking: %q: %w", s, apperr.ErrInvalidDate)
	}
	return t, nil
}

// FormatDate formats t as YYYY-MM-DD.
func FormatDate(t time.Time) string { return t.Format(DateLayout) }
