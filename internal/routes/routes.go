package routes

import (
	"treinai_backend/internal/handlers"
	"treinai_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every HTTP and WebSocket route.
func RegisterRoutes(r *gin.Engine, h *handlers.HandlerContainer, fileHandler *handlers.FileHandler) {
	api := r.Group("/api/v1")
	{
		h.Auth.RegisterRoutes(api)
		h.Roster.RegisterRoutes(api)
		h.Workout.RegisterRoutes(api)
		h.MealPlan.RegisterRoutes(api)
		h.Photo.RegisterRoutes(api)
		h.Chat.RegisterRoutes(api)
		h.AI.RegisterRoutes(api)
	}

	if fileHandler != nil {
		fileHandler.RegisterRoutes(r)
	}

	logger.Info("Routes registered")
}
