package handlers

import (
	"net/http"

	"HabitTracker/internal/auth"
	dom "HabitTracker/internal/domain"
	"HabitTracker/internal/dto"
	"HabitTracker/internal/service"

	"github.com/gin-gonic/gin"
)

type HabitHandler struct {
	svc *service.HabitService
}

func NewHabitHandler(svc *service.HabitService) *HabitHandler {
	return &HabitHandler{svc: svc}
}

// Create godoc
// @Summary      Create a habit
// @Tags         habits
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.CreateHabitRequest  true  "Habit body"
// @Success      201   {object}  dto.HabitResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /habits [post]
func (h *HabitHandler) Create(c *gin.Context) {
	var req dto.CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	habit, err := h.svc.Create(c.Request.Context(), auth.UserIDFromContext(c), service.HabitInput{
		Name:        req.Name,
		Description: req.Description,
		Frequency:   dom.Frequency(req.Frequency),
		Target:      req.Target,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, habitToResponse(habit))
}

// List godoc
// @Summary      List habits, newest first
// @Tags         habits
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.ListHabitsResponse
// @Failure      500  {object}  map[string]string
// @Router       /habits [get]
func (h *HabitHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), auth.UserIDFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListHabitsResponse{Items: habitsToResponses(list)})
}

// GetByID godoc
// @Summary      Get a habit by ID
// @Tags         habits
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "Habit ID"
// @Success      200  {object}  dto.HabitResponse
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /habits/{id} [get]
func (h *HabitHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	habit, err := h.svc.Get(c.Request.Context(), auth.UserIDFromContext(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, habitToResponse(habit))
}

// Update godoc
// @Summary      Update a habit
// @Tags         habits
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      int  true  "Habit ID"
// @Param        body  body      dto.UpdateHabitRequest  true  "Partial update"
// @Success      200   {object}  dto.HabitResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /habits/{id} [patch]
func (h *HabitHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	patch := service.HabitPatch{
		Name:        req.Name,
		Description: req.Description,
		Target:      req.Target,
	}
	if req.Frequency != nil {
		f := dom.Frequency(*req.Frequency)
		patch.Frequency = &f
	}
	habit, err := h.svc.Update(c.Request.Context(), auth.UserIDFromContext(c), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, habitToResponse(habit))
}

// Delete godoc
// @Summary      Delete a habit and its completion history
// @Tags         habits
// @Security     CookieAuth
// @Param        id   path  int  true  "Habit ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /habits/{id} [delete]
func (h *HabitHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), auth.UserIDFromContext(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Complete godoc
// @Summary      Mark a habit completed today
// @Tags         habits
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "Habit ID"
// @Success      201  {object}  dto.CompleteResponse
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /habits/{id}/complete [post]
func (h *HabitHandler) Complete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	rec, habit, err := h.svc.CompleteToday(c.Request.Context(), auth.UserIDFromContext(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CompleteResponse{
		Completion: completionToResponse(rec),
		Habit:      habitToResponse(habit),
	})
}

// MarkDay godoc
// @Summary      Record completion state for a day
// @Description  Creates or overwrites the record for the given date (today when omitted).
// @Tags         progress
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      int  true  "Habit ID"
// @Param        body  body      dto.MarkDayRequest  true  "Day record"
// @Success      200   {object}  dto.CompletionResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /habits/{id}/progress [post]
func (h *HabitHandler) MarkDay(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.MarkDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	completed := true
	if req.Completed != nil {
		completed = *req.Completed
	}
	rec, err := h.svc.MarkDay(c.Request.Context(), auth.UserIDFromContext(c), id, req.Date.In(h.svc.Location()), completed, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, completionToResponse(rec))
}
