package handlers

import (
	"net/http"

	"treinai_backend/internal/middleware"
	"treinai_backend/internal/models"
	"treinai_backend/internal/services"
	"treinai_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type RosterHandler struct {
	*BaseHandler
	rosterService services.RosterService
}

func NewRosterHandler(base *BaseHandler, rosterService services.RosterService) *RosterHandler {
	return &RosterHandler{
		BaseHandler:   base,
		rosterService: rosterService,
	}
}

func (h *RosterHandler) RegisterRoutes(rg *gin.RouterGroup) {
	students := rg.Group("/students")
	students.Use(
		middleware.AuthMiddleware(),
		middleware.UserContextMiddleware(),
		middleware.RequireRole(models.AccountRoleTrainer),
	)
	{
		students.GET("", h.List)
		students.POST("", h.Add)
		students.GET("/:studentID", h.Get)
		students.PUT("/:studentID", h.Update)
		// DELETE deactivates. History stays; only the roster forgets.
		students.DELETE("/:studentID", h.Deactivate)
	}
}

func (h *RosterHandler) List(c *gin.Context) {
	trainerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.rosterService.ListStudents(c.Request.Context(), trainerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *RosterHandler) Add(c *gin.Context) {
	trainerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.AddStudentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.rosterService.AddStudent(c.Request.Context(), trainerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *RosterHandler) Get(c *gin.Context) {
	trainerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.rosterService.GetStudent(c.Request.Context(), trainerID, c.Param("studentID"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *RosterHandler) Update(c *gin.Context) {
	trainerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.rosterService.UpdateStudent(c.Request.Context(), trainerID, c.Param("studentID"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *RosterHandler) Deactivate(c *gin.Context) {
	trainerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.rosterService.DeactivateStudent(c.Request.Context(), trainerID, c.Param("studentID")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Student deactivated"})
}
