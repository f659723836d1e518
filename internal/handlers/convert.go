package handlers

import (
	"time"

	"HabitTracker/internal/clock"
	dom "HabitTracker/internal/domain"
	"HabitTracker/internal/dto"
)

func dayPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := clock.Format(*t)
	return &s
}

func habitToResponse(h dom.Habit) dto.HabitResponse {
	return dto.HabitResponse{
		ID:                h.ID,
		Name:              h.Name,
		Description:       h.Description,
		Frequency:         string(h.Frequency),
		Target:            h.Target,
		CurrentStreak:     h.CurrentStreak,
		LongestStreak:     h.LongestStreak,
		LastCompletedDate: dayPtr(h.LastCompletedDate),
		CreatedAt:         h.CreatedAt,
		UpdatedAt:         h.UpdatedAt,
	}
}

func habitsToResponses(list []dom.Habit) []dto.HabitResponse {
	out := make([]dto.HabitResponse, len(list))
	for i := range list {
		out[i] = habitToResponse(list[i])
	}
	return out
}

func completionToResponse(c dom.Completion) dto.CompletionResponse {
	return dto.CompletionResponse{
		ID:        c.ID,
		HabitID:   c.HabitID,
		Date:      clock.Format(c.Day),
		Completed: c.Completed,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func completionsToResponses(list []dom.Completion) []dto.CompletionResponse {
	out := make([]dto.CompletionResponse, len(list))
	for i := range list {
		out[i] = completionToResponse(list[i])
	}
	return out
}

func progressToResponse(p dom.HabitProgress) dto.ProgressResponse {
	return dto.ProgressResponse{
		HabitID:        p.HabitID,
		HabitName:      p.HabitName,
		Frequency:      string(p.Frequency),
		Target:         p.Target,
		TotalDays:      p.TotalDays,
		CompletedDays:  p.CompletedDays,
		CompletionRate: p.CompletionRate,
		CurrentStreak:  p.CurrentStreak,
		RecentProgress: completionsToResponses(p.RecentProgress),
	}
}

func summaryToResponse(s dom.HabitSummary) dto.HabitSummaryResponse {
	return dto.HabitSummaryResponse{
		ID:                s.ID,
		Name:              s.Name,
		Description:       s.Description,
		Frequency:         string(s.Frequency),
		Target:            s.Target,
		CurrentStreak:     s.CurrentStreak,
		LastCompletedDate: dayPtr(s.LastCompletedDate),
	}
}

func recommendationToResponse(r dom.Recommendation) dto.RecommendationResponse {
	return dto.RecommendationResponse{
		Type:        r.Type,
		Title:       r.Title,
		Description: r.Description,
		Priority:    string(r.Priority),
	}
}
