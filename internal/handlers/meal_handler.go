package handlers

import (
	"net/http"

	"treinai_backend/internal/middleware"
	"treinai_backend/internal/models"
	"treinai_backend/internal/services"
	"treinai_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type MealPlanHandler struct {
	*BaseHandler
	mealService services.MealPlanService
}

func NewMealPlanHandler(base *BaseHandler, mealService services.MealPlanService) *MealPlanHandler {
	return &MealPlanHandler{
		BaseHandler: base,
		mealService: mealService,
	}
}

func (h *MealPlanHandler) RegisterRoutes(rg *gin.RouterGroup) {
	plans := rg.Group("/students/:studentID/meal-plan")
	plans.Use(middleware.AuthMiddleware(), middleware.UserContextMiddleware())
	{
		plans.GET("", h.Get)
		plans.PUT("", middleware.RequireRole(models.AccountRoleTrainer), h.Save)
	}
}

func (h *MealPlanHandler) Save(c *gin.Context) {
	trainerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SaveMealPlanRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.mealService.SavePlan(c.Request.Context(), trainerID, c.Param("studentID"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *MealPlanHandler) Get(c *gin.Context) {
	requesterID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.mealService.GetPlan(c.Request.Context(), requesterID, h.GetRole(c), c.Param("studentID"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
