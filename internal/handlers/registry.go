package handlers

import (
	"treinai_backend/internal/services"
	"treinai_backend/internal/validator"
	"treinai_backend/ws"
)

// HandlerContainer bundles every HTTP handler for route registration.
type HandlerContainer struct {
	Auth     *AuthHandler
	Roster   *RosterHandler
	Workout  *WorkoutHandler
	MealPlan *MealPlanHandler
	Photo    *PhotoHandler
	Chat     *ChatHandler
	AI       *AIHandler
}

func NewHandlerContainer(svcs *services.ServiceContainer, v *validator.Validator, wsHandler *ws.Handler) *HandlerContainer {
	base := NewBaseHandler(v)

	return &HandlerContainer{
		Auth:     NewAuthHandler(base, svcs.AuthService),
		Roster:   NewRosterHandler(base, svcs.RosterService),
		Workout:  NewWorkoutHandler(base, svcs.WorkoutService),
		MealPlan: NewMealPlanHandler(base, svcs.MealPlanService),
		Photo:    NewPhotoHandler(base, svcs.PhotoService),
		Chat:     NewChatHandler(base, svcs.ChatService, wsHandler),
		AI:       NewAIHandler(base, svcs.SuggestionService),
	}
}
