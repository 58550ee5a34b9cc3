package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/FACorreiaa/travelvibe-api/internal/domain/gateway"
	"github.com/FACorreiaa/travelvibe-api/internal/domain/history"
	"github.com/FACorreiaa/travelvibe-api/internal/domain/planner"
	"github.com/FACorreiaa/travelvibe-api/internal/llm"
	"github.com/FACorreiaa/travelvibe-api/pkg/config"
	"github.com/FACorreiaa/travelvibe-api/pkg/db"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	DB     *db.DB
	Logger *slog.Logger

	// Repositories
	HistoryRepo history.Repository

	// Services
	AIClient       llm.ChatClient
	Gateway        gateway.TravelGateway
	HistoryService history.Service
	Registry       *planner.Registry
	SessionStore   sessions.Store

	// Handlers
	PlannerHandler *planner.Handler
}

// InitDependencies initializes all application dependencies
func InitDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to init database: %w", err)
	}

	if err := deps.initRepositories(); err != nil {
		deps.Cleanup()
		return nil, fmt.Errorf("failed to init repositories: %w", err)
	}

	if err := deps.initServices(ctx); err != nil {
		deps.Cleanup()
		return nil, fmt.Errorf("failed to init services: %w", err)
	}

	if err := deps.initHandlers(); err != nil {
		deps.Cleanup()
		return nil, fmt.Errorf("failed to init handlers: %w", err)
	}

	logger.Info("all dependencies initialized successfully")

	return deps, nil
}

// initDatabase connects to Postgres and runs migrations. Without a
// DATABASE_URL the API runs with search history disabled.
func (d *Dependencies) initDatabase() error {
	if !d.Config.Database.Enabled() {
		d.Logger.Warn("DATABASE_URL not set; search history disabled")
		return nil
	}

	database, err := db.New(db.Config{
		DSN:             d.Config.Database.DSN(),
		MaxConns:        10,
		MinConns:        2,
		MaxConnLifetime: d.Config.Server.SessionTTL,
		MaxConnIdleTime: d.Config.Server.SessionTTL / 4,
	}, d.Logger)
	if err != nil {
		return err
	}

	d.DB = database

	if err := d.DB.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	d.Logger.Info("database connected and migrations completed successfully")
	return nil
}

func (d *Dependencies) initRepositories() error {
	if d.DB != nil {
		d.HistoryRepo = history.NewRepository(d.DB.Pool, d.Logger)
	} else {
		d.HistoryRepo = history.NoopRepository{}
	}

	d.Logger.Info("repositories initialized")
	return nil
}

func (d *Dependencies) initServices(ctx context.Context) error {
	client, err := llm.NewGeminiChatClient(ctx, d.Config.Gemini.APIKey, d.Config.Gemini.Model)
	if err != nil {
		return fmt.Errorf("failed to create gemini client: %w", err)
	}
	d.AIClient = client
	d.Gateway = gateway.NewGeminiGateway(d.AIClient, d.Logger)
	d.HistoryService = history.NewService(d.HistoryRepo, d.Logger)

	d.Registry = planner.NewRegistry(d.Config.Server.SessionTTL, func(sessionID string) *planner.Planner {
		return planner.New(d.Gateway, d.Logger,
			planner.WithSessionID(sessionID),
			planner.WithRecorder(d.HistoryService),
			planner.WithLocatorTimeout(d.Config.Geolocation.Timeout),
		)
	}, d.Logger)

	store := sessions.NewCookieStore([]byte(d.Config.Server.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(d.Config.Server.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	d.SessionStore = store

	d.Logger.Info("services initialized", slog.String("model", d.AIClient.Model()))
	return nil
}

func (d *Dependencies) initHandlers() error {
	d.PlannerHandler = planner.NewHandler(d.Registry, d.HistoryService, d.SessionStore, d.Logger)
	d.Logger.Info("handlers initialized")
	return nil
}

// Cleanup closes all resources
func (d *Dependencies) Cleanup() {
	if d.DB != nil {
		d.DB.Close()
	}
	d.Logger.Info("cleanup completed")
}
