package domain

import "time"

// Frequency is how often a habit is meant to be performed.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Valid reports whether f is one of the known frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// Habit is a recurring activity tracked by its owner.
// CurrentStreak, LongestStreak and LastCompletedDate are a cache of the
// completion history; the backward scan over completions is authoritative.
type Habit struct {
	ID          int64
	UserID      int64
	Name        string
	Description string
	Frequency   Frequency
	Target      float64

	CurrentStreak     int
	LongestStreak     int
	LastCompletedDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Completion marks whether a habit was performed on one calendar day.
// At most one exists per (UserID, HabitID, Day).
type Completion struct {
	ID        int64
	UserID    int64
	HabitID   int64
	Day       time.Time
	Completed bool
	Notes     string

	CreatedAt time.Time
	UpdatedAt time.Time
}
