// Package app assembles the main service: database, repositories, services,
// handlers and the HTTP router.
package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"afisha_backend/internal/config"
	"afisha_backend/internal/handlers"
	"afisha_backend/internal/logger"
	"afisha_backend/internal/models"
	"afisha_backend/internal/repositories"
	"afisha_backend/internal/routes"
	"afisha_backend/internal/services"
	"afisha_backend/internal/statsclient"
)

// OpenDatabase connects to postgres and migrates the schema. TranslateError
// maps driver unique-violations onto gorm.ErrDuplicatedKey, which the
// services rely on.
func OpenDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return nil, fmt.Errorf("enable uuid extension: %w", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Event{},
		&models.Location{},
		&models.Request{},
		&models.Estimation{},
		&models.Compilation{},
	)
	if err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return db, nil
}

// SetupRouter builds the fully wired gin engine of the main service.
func SetupRouter(db *gorm.DB, stats statsclient.Client) *gin.Engine {
	userRepo := repositories.NewUserRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	eventRepo := repositories.NewEventRepository(db)
	requestRepo := repositories.NewRequestRepository(db)
	estimationRepo := repositories.NewEstimationRepository(db)
	compilationRepo := repositories.NewCompilationRepository(db)

	appHandlers := handlers.NewAppHandlers(
		services.NewUserService(userRepo),
		services.NewCategoryService(categoryRepo),
		services.NewEventService(eventRepo, categoryRepo, userRepo, estimationRepo, stats),
		services.NewRequestService(requestRepo, eventRepo, userRepo),
		services.NewEstimationService(estimationRepo, requestRepo, eventRepo),
		services.NewCompilationService(compilationRepo, eventRepo, estimationRepo),
	)

	router := gin.New()
	routes.Setup(router, appHandlers)
	return router
}

// Run starts the main service and blocks until the server exits.
func Run() error {
	cfg := config.GetConfig()
	logger.Init(cfg.Server.Env)

	if cfg.Server.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := OpenDatabase(cfg)
	if err != nil {
		return err
	}

	stats := statsclient.New(cfg.Stats.URL, cfg.Stats.AppName)
	router := SetupRouter(db, stats)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("main service listening", "addr", addr)
	return router.Run(addr)
}
