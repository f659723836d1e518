package handlers

import (
	"net/http"

	"HabitTracker/internal/auth"
	"HabitTracker/internal/dto"
	"HabitTracker/internal/service"

	"github.com/gin-gonic/gin"
)

type ProgressHandler struct {
	svc *service.ProgressService
}

func NewProgressHandler(svc *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{svc: svc}
}

// HabitProgress godoc
// @Summary      Progress of one habit
// @Tags         progress
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "Habit ID"
// @Success      200  {object}  dto.ProgressResponse
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /habits/{id}/progress [get]
func (h *ProgressHandler) HabitProgress(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, err := h.svc.HabitProgress(c.Request.Context(), auth.UserIDFromContext(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, progressToResponse(p))
}

// History godoc
// @Summary      Every completion record of a habit, newest first
// @Tags         progress
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "Habit ID"
// @Success      200  {object}  dto.ListCompletionsResponse
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /habits/{id}/history [get]
func (h *ProgressHandler) History(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	list, err := h.svc.History(c.Request.Context(), auth.UserIDFromContext(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListCompletionsResponse{Items: completionsToResponses(list)})
}

// Stats godoc
// @Summary      Statistics of one habit
// @Tags         progress
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "Habit ID"
// @Success      200  {object}  dto.StatsResponse
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /habits/{id}/stats [get]
func (h *ProgressHandler) Stats(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	s, err := h.svc.Stats(c.Request.Context(), auth.UserIDFromContext(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatsResponse{
		TotalDays:      s.TotalDays,
		CompletedDays:  s.CompletedDays,
		CompletionRate: s.CompletionRate,
		CurrentStreak:  s.CurrentStreak,
	})
}

// All godoc
// @Summary      Progress of every habit
// @Tags         progress
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.ListProgressResponse
// @Failure      500  {object}  map[string]string
// @Router       /progress [get]
func (h *ProgressHandler) All(c *gin.Context) {
	list, err := h.svc.AllProgress(c.Request.Context(), auth.UserIDFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	items := make([]dto.ProgressResponse, len(list))
	for i := range list {
		items[i] = progressToResponse(list[i])
	}
	c.JSON(http.StatusOK, dto.ListProgressResponse{Items: items})
}

// IncompleteToday godoc
// @Summary      Habits not completed today
// @Tags         progress
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.ListHabitSummariesResponse
// @Failure      500  {object}  map[string]string
// @Router       /progress/today/incomplete [get]
func (h *ProgressHandler) IncompleteToday(c *gin.Context) {
	list, err := h.svc.IncompleteToday(c.Request.Context(), auth.UserIDFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	items := make([]dto.HabitSummaryResponse, len(list))
	for i := range list {
		items[i] = summaryToResponse(list[i])
	}
	c.JSON(http.StatusOK, dto.ListHabitSummariesResponse{Items: items})
}
