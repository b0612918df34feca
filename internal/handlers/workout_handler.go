package handlers

import (
	"net/http"

	"treinai_backend/internal/middleware"
	"treinai_backend/internal/models"
	"treinai_backend/internal/services"
	"treinai_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type WorkoutHandler struct {
	*BaseHandler
	workoutService services.WorkoutService
}

func NewWorkoutHandler(base *BaseHandler, workoutService services.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{
		BaseHandler:    base,
		workoutService: workoutService,
	}
}

func (h *WorkoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	workouts := rg.Group("/students/:studentID/workouts")
	workouts.Use(middleware.AuthMiddleware(), middleware.UserContextMiddleware())
	{
		// Students read their own program; only trainers write it.
		workouts.GET("", h.List)
		workouts.PUT("", middleware.RequireRole(models.AccountRoleTrainer), h.Save)
	}
}

func (h *WorkoutHandler) Save(c *gin.Context) {
	trainerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SaveWorkoutsRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.workoutService.SaveProgram(c.Request.Context(), trainerID, c.Param("studentID"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *WorkoutHandler) List(c *gin.Context) {
	requesterID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.workoutService.ListProgram(c.Request.Context(), requesterID, h.GetRole(c), c.Param("studentID"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
