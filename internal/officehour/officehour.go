// Package officehour tells whether the masjid office is staffed.
package officehour

import "time"

// WIB is Western Indonesia Time (UTC+7).
var WIB = time.FixedZone("WIB", 7*60*60)

// Window is a weekly opening window: the same hours on each listed weekday.
// Close is exclusive.
type Window struct {
	Location *time.Location
	Days     []time.Weekday
	Open     int // hour of day
	Close    int
}

// Default is Monday to Friday, 09:00 to 17:00 WIB.
var Default = Window{
	Location: WIB,
	Days:     []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
	Open:     9,
	Close:    17,
}

// IsOpen reports whether t falls inside the window.
func (w Window) IsOpen(t time.Time) bool {
	loc := w.Location
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	if !w.onDay(local.Weekday()) {
		return false
	}
	h := local.Hour()
	return h >= w.Open && h < w.Close
}

// Next returns the next opening instant at or after t. It returns t itself
// when the window is already open, and the zero time when no day is listed.
func (w Window) Next(t time.Time) time.Time {
	if w.IsOpen(t) {
		return t
	}
	if len(w.Days) == 0 || w.Open >= w.Close {
		return time.Time{}
	}
	loc := w.Location
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	for i := 0; i <= 7; i++ {
		day := local.AddDate(0, 0, i)
		opening := time.Date(day.Year(), day.Month(), day.Day(), w.Open, 0, 0, 0, loc)
		if w.onDay(opening.Weekday()) && !opening.Before(local) {
			return opening
		}
	}
	return time.Time{}
}

func (w Window) onDay(d time.Weekday) bool {
	for _, day := range w.Days {
		if day == d {
			return true
		}
	}
	return false
}
