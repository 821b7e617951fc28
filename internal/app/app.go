package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"cohort-service/internal/config"
	"cohort-service/internal/db"
	"cohort-service/internal/health"
	"cohort-service/internal/logger"
	"cohort-service/internal/messaging"
	"cohort-service/internal/metrics"
	"cohort-service/internal/middleware"
	"cohort-service/internal/project"
	"cohort-service/internal/student"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
)

type App struct {
	config   *config.Config
	router   chi.Router
	server   *http.Server
	database *bun.DB
	events   *messaging.Producer
	logger   *slog.Logger
}

func New() *App {
	slogLogger := logger.NewWithServiceContext(ServiceName, Version)

	// Set as default logger so slog.Info() uses the same handler
	slog.SetDefault(slogLogger)

	slogLogger.Info("initializing application")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	slogLogger.Info("config loaded", "env", cfg.Env)

	app := &App{
		config: cfg,
		router: chi.NewRouter(),
		logger: slogLogger,
	}

	app.database = db.New(cfg.Database)

	ctx := context.Background()
	if err := db.CreateTables(ctx, app.database, (*project.Project)(nil), (*student.Student)(nil)); err != nil {
		log.Fatal("failed to create schema:", err)
	}

	app.router.Use(middleware.CORS(cfg.Server.CORSOrigins))

	healthHandler := health.NewHandler()
	healthHandler.RegisterRoutes(app.router)

	m, err := metrics.New(otel.Meter(ServiceName))
	if err != nil {
		log.Fatal("failed to create metrics:", err)
	}

	// Event producer is optional; the service runs without a broker
	events, err := messaging.NewProducer(cfg.NATS.URL, cfg.NATS.Subject, slogLogger)
	if err != nil {
		slogLogger.Warn("failed to initialize NATS producer", "error", err)
		events = nil
	}
	app.events = events

	projectRepo := project.NewRepository(app.database)
	projectService := project.NewService(projectRepo, events)
	projectHandler := project.NewHandler(projectService, slogLogger, m)
	projectHandler.RegisterRoutes(app.router)

	studentRepo := student.NewRepository(app.database)
	studentService := student.NewService(studentRepo, projectService, events)
	studentHandler := student.NewHandler(studentService, slogLogger, m)
	studentHandler.RegisterRoutes(app.router)

	slogLogger.Info("application initialized successfully")

	return app
}

func (a *App) Run() error {
	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%s", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  time.Duration(a.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(a.config.Server.IdleTimeout) * time.Second,
	}

	a.logger.Info("server starting", "port", a.config.Server.Port)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down server")
	a.events.Close()
	db.Close(a.database)
	return a.server.Shutdown(ctx)
}
