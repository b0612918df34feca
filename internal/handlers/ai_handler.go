package handlers

import (
	"net/http"

	"treinai_backend/internal/middleware"
	"treinai_backend/internal/models"
	"treinai_backend/internal/services"
	"treinai_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AIHandler struct {
	*BaseHandler
	suggestionService services.SuggestionService
}

func NewAIHandler(base *BaseHandler, suggestionService services.SuggestionService) *AIHandler {
	return &AIHandler{
		BaseHandler:       base,
		suggestionService: suggestionService,
	}
}

func (h *AIHandler) RegisterRoutes(rg *gin.RouterGroup) {
	ai := rg.Group("/ai")
	ai.Use(
		middleware.AuthMiddleware(),
		middleware.UserContextMiddleware(),
		middleware.RequireRole(models.AccountRoleTrainer),
	)
	{
		ai.POST("/suggest-workout", h.SuggestWorkout)
		ai.POST("/suggest-meal-plan", h.SuggestMealPlan)
	}
}

func (h *AIHandler) SuggestWorkout(c *gin.Context) {
	trainerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SuggestWorkoutRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.suggestionService.SuggestWorkout(c.Request.Context(), trainerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AIHandler) SuggestMealPlan(c *gin.Context) {
	trainerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SuggestMealPlanRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.suggestionService.SuggestMealPlan(c.Request.Context(), trainerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
