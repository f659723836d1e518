package dto

type ProgressResponse struct {
	HabitID        int64                `json:"habit_id"`
	HabitName      string               `json:"habit_name"`
	Frequency      string               `json:"frequency"`
	Target         float64              `json:"target"`
	TotalDays      int                  `json:"total_days"`
	CompletedDays  int                  `json:"completed_days"`
	CompletionRate int                  `json:"completion_rate"`
	CurrentStreak  int                  `json:"current_streak"`
	RecentProgress []CompletionResponse `json:"recent_progress"`
}

type ListProgressResponse struct {
	Items []ProgressResponse `json:"items"`
}

// StatsResponse keeps the completion rate unrounded.
type StatsResponse struct {
	TotalDays      int     `json:"total_days"`
	CompletedDays  int     `json:"completed_days"`
	CompletionRate float64 `json:"completion_rate"`
	CurrentStreak  int     `json:"current_streak"`
}

type HabitSummaryResponse struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	Frequency         string  `json:"frequency"`
	Target            float64 `json:"target"`
	CurrentStreak     int     `json:"current_streak"`
	LastCompletedDate *string `json:"last_completed_date"`
}

type ListHabitSummariesResponse struct {
	Items []HabitSummaryResponse `json:"items"`
}

type RecommendationResponse struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

type ListRecommendationsResponse struct {
	Items []RecommendationResponse `json:"items"`
}
