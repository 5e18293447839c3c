package entity

import "time"

// DateLayout is the ISO calendar date layout accepted for window bounds.
const DateLayout = "2006-01-02"

// DateWindow is a validated [start, end] calendar date range.
// Neither bound lies after the validation day. Start may be after End;
// such a window selects no observations.
type DateWindow struct {
	start time.Time
	end   time.Time
}

// NewDateWindow builds a window from two dates, truncated to midnight UTC.
// Validation against "today" is the caller's responsibility.
func NewDateWindow(start, end time.Time) DateWindow {
	return DateWindow{start: CivilDate(start), end: CivilDate(end)}
}

// Start returns the first day of the window.
func (w DateWindow) Start() time.Time { return w.start }

// End returns the last day of the window.
func (w DateWindow) End() time.Time { return w.end }

// Inverted reports whether the start is after the end.
func (w DateWindow) Inverted() bool { return w.start.After(w.end) }

// Contains reports whether d falls inside the window, bounds included.
func (w DateWindow) Contains(d time.Time) bool {
	d = CivilDate(d)
	return !d.Before(w.start) && !d.After(w.end)
}

// String formats the window as "start..end".
func (w DateWindow) String() string {
	return w.start.Format(DateLayout) + ".." + w.end.Format(DateLayout)
}

// CivilDate drops the time of day of t, keeping the calendar date of t's location, as midnight UTC.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
