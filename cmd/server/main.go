package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yukikurage/workforce-api/internal/config"
	"github.com/yukikurage/workforce-api/internal/database"
	"github.com/yukikurage/workforce-api/internal/handlers"
	"github.com/yukikurage/workforce-api/internal/logging"
	"github.com/yukikurage/workforce-api/internal/middleware"
	"github.com/yukikurage/workforce-api/internal/repository"
	"github.com/yukikurage/workforce-api/internal/services"
	"github.com/yukikurage/workforce-api/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logging.Sync(logger)
	zap.ReplaceGlobals(logger)

	gin.SetMode(cfg.Server.GinMode)

	// Connect to database
	if err := database.Connect(cfg, logging.GormLogger(logger, cfg.Log.Level)); err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := database.Migrate(); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	if cfg.DB.Seed {
		if err := database.Seed(database.GetDB()); err != nil {
			logger.Fatal("failed to seed database", zap.Error(err))
		}
	}

	codes, err := services.NewCodeProvider(cfg.CodeGen)
	if err != nil {
		logger.Fatal("failed to build code provider", zap.Error(err))
	}

	db := database.GetDB()
	departmentRepo := repository.NewDepartmentRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	projectRepo := repository.NewProjectRepository(db, database.NewExecutionStrategy(cfg.Retry, logger))

	departmentService := services.NewDepartmentService(departmentRepo)
	employeeService := services.NewEmployeeService(employeeRepo, departmentRepo)
	projectService := services.NewProjectService(projectRepo, departmentRepo, employeeRepo, codes, logger)

	utils.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(logger))

	handlers.RegisterRoutes(r, handlers.Handlers{
		Health:      handlers.NewHealthHandler(db),
		Departments: handlers.NewDepartmentHandler(departmentService, employeeService),
		Employees:   handlers.NewEmployeeHandler(employeeService, projectService),
		Projects:    handlers.NewProjectHandler(projectService),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shut down", zap.Error(err))
	}
}
