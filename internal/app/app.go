package app

import (
	"fmt"

	"bloodbridge_backend/database"
	"bloodbridge_backend/internal/auth"
	"bloodbridge_backend/internal/config"
	"bloodbridge_backend/internal/dispatch"
	"bloodbridge_backend/internal/email"
	"bloodbridge_backend/internal/handlers"
	"bloodbridge_backend/internal/logger"
	"bloodbridge_backend/internal/middleware"
	"bloodbridge_backend/internal/routes"
	"bloodbridge_backend/internal/services"
	"bloodbridge_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func Run() {
	// .env опционален: в контейнерах конфигурация приходит из окружения
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment variables")
	}

	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	// 1. Инициализируем сервисы
	serviceContainer := initializeServices(cfg, gormDB)

	// 2. Инициализируем хэндлеры
	appHandlers := initializeHandlers(serviceContainer)

	// 3. Инициализируем Gin
	ginRouter := initializeGinRouter()

	// 4. Регистрация маршрутов
	authMW := middleware.AuthMiddleware(serviceContainer.TokenService)
	routes.RegisterRoutes(ginRouter, appHandlers, authMW)

	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB) *services.ServiceContainer {
	var emailProvider email.Provider

	if cfg.Email.Enabled {
		smtpCfg, err := email.ResolveSMTPConfig(cfg.Email)
		if err != nil {
			logger.Fatal("Invalid email configuration", "error", err)
		}

		renderer, err := email.NewTemplateManager()
		if err != nil {
			logger.Fatal("Failed to load email templates", "error", err)
		}

		emailProvider = email.NewGomailProvider(smtpCfg, renderer)
		logger.Info("Email provider initialized",
			"provider", cfg.Email.Provider,
			"host", smtpCfg.Host,
		)
	} else {
		logger.Warn("Email disabled, outgoing mail is logged only")
		emailProvider = &MockEmailProvider{}
	}

	tokens := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL)
	dispatcher := dispatch.NewDispatcher(4, 256)

	return services.NewServiceContainer(gormDB, emailProvider, tokens, dispatcher)
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, container.DonorService),
		DonorHandler:        handlers.NewDonorHandler(baseHandler, container.DonorService, container.MatchingService),
		RequestHandler:      handlers.NewRequestHandler(baseHandler, container.RequestService, container.MatchingService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, container.NotificationService),
	}
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}
