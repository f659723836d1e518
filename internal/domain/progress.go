package domain

import "time"

// HabitProgress is the per-habit aggregate shown on the progress page.
// CompletionRate is rounded to a whole percentage.
type HabitProgress struct {
	HabitID        int64
	HabitName      string
	Frequency      Frequency
	Target         float64
	TotalDays      int
	CompletedDays  int
	CompletionRate int
	CurrentStreak  int
	RecentProgress []Completion
}

// HabitStats is like HabitProgress but keeps the unrounded completion rate.
type HabitStats struct {
	TotalDays      int
	CompletedDays  int
	CompletionRate float64
	CurrentStreak  int
}

// HabitSummary is the minimal projection returned for habits not yet done today.
type HabitSummary struct {
	ID                int64
	Name              string
	Description       string
	Frequency         Frequency
	Target            float64
	CurrentStreak     int
	LastCompletedDate *time.Time
}
