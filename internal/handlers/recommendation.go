package handlers

import (
	"net/http"

	"HabitTracker/internal/auth"
	"HabitTracker/internal/dto"
	"HabitTracker/internal/service"

	"github.com/gin-gonic/gin"
)

type RecommendationHandler struct {
	svc *service.RecommendationService
}

func NewRecommendationHandler(svc *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{svc: svc}
}

// List godoc
// @Summary      Suggestions based on the last seven days
// @Tags         recommendations
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.ListRecommendationsResponse
// @Failure      500  {object}  map[string]string
// @Router       /recommendations [get]
func (h *RecommendationHandler) List(c *gin.Context) {
	list, err := h.svc.Recommendations(c.Request.Context(), auth.UserIDFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	items := make([]dto.RecommendationResponse, len(list))
	for i := range list {
		items[i] = recommendationToResponse(list[i])
	}
	c.JSON(http.StatusOK, dto.ListRecommendationsResponse{Items: items})
}
