package services

import (
	"treinai_backend/internal/ai"
	"treinai_backend/internal/config"
	"treinai_backend/internal/email"
	"treinai_backend/internal/repositories"
	"treinai_backend/internal/storage"

	"gorm.io/gorm"
)

// ServiceContainer wires every service with its repositories.
type ServiceContainer struct {
	AuthService       AuthService
	RosterService     RosterService
	WorkoutService    WorkoutService
	MealPlanService   MealPlanService
	PhotoService      PhotoService
	ChatService       ChatService
	SuggestionService SuggestionService
}

func NewServiceContainer(
	db *gorm.DB,
	cfg *config.Config,
	store storage.Storage,
	emailProvider email.Provider,
	generator ai.Generator,
	notifier MessageNotifier,
) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	profileRepo := repositories.NewProfileRepository()
	refreshTokenRepo := repositories.NewRefreshTokenRepository()
	workoutRepo := repositories.NewWorkoutRepository()
	mealRepo := repositories.NewMealPlanRepository()
	photoRepo := repositories.NewPhotoRepository()
	messageRepo := repositories.NewMessageRepository()

	return &ServiceContainer{
		AuthService:       NewAuthService(db, userRepo, profileRepo, refreshTokenRepo),
		RosterService:     NewRosterService(db, userRepo, profileRepo, refreshTokenRepo, emailProvider, cfg.Plan),
		WorkoutService:    NewWorkoutService(db, workoutRepo, profileRepo),
		MealPlanService:   NewMealPlanService(db, mealRepo, profileRepo),
		PhotoService:      NewPhotoService(db, photoRepo, profileRepo, store, cfg.Upload),
		ChatService:       NewChatService(db, messageRepo, profileRepo, userRepo, notifier),
		SuggestionService: NewSuggestionService(db, generator, profileRepo, cfg.AI),
	}
}
