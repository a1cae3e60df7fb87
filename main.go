package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"projecthub/app/config"
	"projecthub/app/controllers"
	"projecthub/app/middleware"
	"projecthub/app/routes"
	"projecthub/app/services"
	"projecthub/app/telemetry"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Error("shutdown tracing", "error", err)
		}
	}()

	client, err := config.ConnectMongo(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error("disconnect MongoDB", "error", err)
		}
	}()
	db := client.Database(cfg.DatabaseName)

	if cfg.PopulateDB {
		if err := services.Seed(ctx, db, logger); err != nil {
			return err
		}
	}

	centerService := services.NewServiceCenterService(db)
	projectService := services.NewProjectService(db)
	sprintService := services.NewSprintService(db)
	taskService := services.NewTaskService(db)
	userService := services.NewUserService(db)
	cascadeService := services.NewCascadeService(db)

	router := mux.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logging(logger))
	router.Use(middleware.CORS(cfg.CORSOrigins))
	if cfg.TracingEnabled {
		router.Use(middleware.Tracing(cfg.ServiceName))
	}
	if cfg.UseAuth {
		router.Use(middleware.Auth(cfg.JWTSecret))
	}

	routes.RegisterRoutes(router, cfg.APIPrefix, routes.Controllers{
		Root: controllers.NewRootController(cfg.APIPrefix, func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		}),
		ServiceCenters: controllers.NewServiceCenterController(centerService, cascadeService, projectService, sprintService, taskService, userService),
		Projects:       controllers.NewProjectController(projectService, centerService, cascadeService, sprintService, taskService, userService),
		Sprints:        controllers.NewSprintController(sprintService, projectService, cascadeService, taskService, userService),
		Tasks:          controllers.NewTaskController(taskService, cascadeService),
		Users:          controllers.NewUserController(userService, projectService, sprintService, taskService),
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.Addr(), "prefix", cfg.APIPrefix)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}
