package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Day parses a calendar date from JSON as either date-only ("2006-01-02") or RFC3339.
// A date-only value names a calendar day; a datetime names an instant.
type Day struct {
	t        *time.Time
	dateOnly bool
}

func (d *Day) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		d.t = nil
		d.dateOnly = false
		return nil
	}
	s := strings.TrimSpace(*raw)
	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			d.t = &parsed
			d.dateOnly = layout == "2006-01-02"
			return nil
		}
	}
	return fmt.Errorf("date: use date (YYYY-MM-DD) or RFC3339 datetime")
}

// Ptr returns *time.Time for use in service/domain. nil means today.
func (d Day) Ptr() *time.Time { return d.t }

// In resolves the value against loc: a date-only value becomes midnight of
// that date in loc, a datetime keeps its instant. nil means today.
func (d Day) In(loc *time.Location) *time.Time {
	if d.t == nil {
		return nil
	}
	if !d.dateOnly || loc == nil {
		return d.t
	}
	y, m, day := d.t.Date()
	t := time.Date(y, m, day, 0, 0, 0, 0, loc)
	return &t
}

type CreateHabitRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=120"`
	Description string  `json:"description" binding:"max=1000"`
	Frequency   string  `json:"frequency" binding:"omitempty,oneof=daily weekly monthly"`
	Target      float64 `json:"target" binding:"omitempty,gt=0"`
}

type UpdateHabitRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=1,max=120"`
	Description *string  `json:"description" binding:"omitempty,max=1000"`
	Frequency   *string  `json:"frequency" binding:"omitempty,oneof=daily weekly monthly"`
	Target      *float64 `json:"target" binding:"omitempty,gt=0"`
}

// MarkDayRequest is the JSON body for POST /habits/{id}/progress.
// Completed defaults to true when omitted.
type MarkDayRequest struct {
	Date      Day    `json:"date"` // optional: "2026-02-19" or RFC3339
	Completed *bool  `json:"completed"`
	Notes     string `json:"notes" binding:"max=1000"`
}

type HabitResponse struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Frequency         string    `json:"frequency"`
	Target            float64   `json:"target"`
	CurrentStreak     int       `json:"current_streak"`
	LongestStreak     int       `json:"longest_streak"`
	LastCompletedDate *string   `json:"last_completed_date"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type ListHabitsResponse struct {
	Items []HabitResponse `json:"items"`
}

type CompletionResponse struct {
	ID        int64     `json:"id"`
	HabitID   int64     `json:"habit_id"`
	Date      string    `json:"date"`
	Completed bool      `json:"completed"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListCompletionsResponse struct {
	Items []CompletionResponse `json:"items"`
}

// CompleteResponse is returned by POST /habits/{id}/complete.
type CompleteResponse struct {
	Completion CompletionResponse `json:"completion"`
	Habit      HabitResponse      `json:"habit"`
}
