package app

import (
	"fmt"

	"treinai_backend/database"
	"treinai_backend/internal/ai"
	"treinai_backend/internal/auth"
	"treinai_backend/internal/config"
	"treinai_backend/internal/email"
	"treinai_backend/internal/handlers"
	"treinai_backend/internal/logger"
	"treinai_backend/internal/middleware"
	"treinai_backend/internal/routes"
	"treinai_backend/internal/services"
	"treinai_backend/internal/storage"
	"treinai_backend/internal/validator"
	"treinai_backend/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	auth.Init(cfg.JWT.Secret, cfg.JWT.TTL)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	router := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the full engine. Split from Run so tests can mount
// the API without binding a port.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	store, err := storage.New(cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	emailProvider := email.New(cfg.Email)
	generator := ai.NewGeminiClient(cfg.AI)

	wsManager := ws.NewManager()
	go wsManager.Run()

	svcs := services.NewServiceContainer(gormDB, cfg, store, emailProvider, generator, wsManager)
	handlerContainer := handlers.NewHandlerContainer(svcs, validator.New(), ws.NewHandler(wsManager))

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.CORSMiddleware(),
		middleware.LoggingMiddleware(),
	)

	var fileHandler *handlers.FileHandler
	if cfg.Storage.Type == "local" {
		fileHandler = handlers.NewFileHandler(store)
	}
	routes.RegisterRoutes(router, handlerContainer, fileHandler)

	return router
}
