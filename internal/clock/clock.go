// Package clock supplies the reference "today" for every date-bound
// operation. All days are represented as UTC midnight of the calendar date
// observed in the clock's location.
package clock

import (
	"sync"
	"time"
)

const dayLayout = "2006-01-02"

// Clock returns the current calendar day and the zone that defines it.
type Clock interface {
	Today() time.Time
	Location() *time.Location
}

// System reads the wall clock in Loc (UTC when nil).
type System struct {
	Loc *time.Location
}

func (s System) Today() time.Time {
	return DayIn(time.Now(), s.Loc)
}

func (s System) Location() *time.Location {
	if s.Loc == nil {
		return time.UTC
	}
	return s.Loc
}

// Fixed is a settable clock for tests and replays.
type Fixed struct {
	mu  sync.Mutex
	day time.Time
	loc *time.Location
}

// NewFixed returns a UTC clock stopped on the calendar day of t.
func NewFixed(t time.Time) *Fixed {
	return NewFixedIn(t, time.UTC)
}

// NewFixedIn returns a clock in loc stopped on the day t falls on there.
func NewFixedIn(t time.Time, loc *time.Location) *Fixed {
	if loc == nil {
		loc = time.UTC
	}
	return &Fixed{day: DayIn(t, loc), loc: loc}
}

func (f *Fixed) Today() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.day
}

func (f *Fixed) Location() *time.Location { return f.loc }

// Set moves the clock to the calendar day of t in the clock's location.
func (f *Fixed) Set(t time.Time) {
	f.mu.Lock()
	f.day = DayIn(t, f.loc)
	f.mu.Unlock()
}

// Advance moves the clock n days forward (backward when n < 0).
func (f *Fixed) Advance(n int) {
	f.mu.Lock()
	f.day = AddDays(f.day, n)
	f.mu.Unlock()
}

// Day strips the time of day from t, keeping t's calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayIn converts t into loc before taking its calendar date, so an instant
// maps to the day it falls on in the reference zone.
func DayIn(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	return Day(t)
}

// AddDays shifts a day by n calendar days.
func AddDays(day time.Time, n int) time.Time {
	return day.AddDate(0, 0, n)
}

// Format renders a day as YYYY-MM-DD.
func Format(day time.Time) string {
	return day.Format(dayLayout)
}

// Parse reads a YYYY-MM-DD day.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}
