package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/glossadev/glossa-api/internal/config"
	domainrec "github.com/glossadev/glossa-api/internal/domain/recommend"
	"github.com/glossadev/glossa-api/internal/domain/srs"
	"github.com/glossadev/glossa-api/internal/platform/postgres"
	"github.com/glossadev/glossa-api/internal/service/auth"
	"github.com/glossadev/glossa-api/internal/service/recommend"
	"github.com/glossadev/glossa-api/internal/service/review"
	"github.com/glossadev/glossa-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	itemStore    store.ItemStore
	statsStore   store.ReviewStatsStore
	queueStore   store.ReviewQueueStore
	taskStore    store.TaskStore
	learnerStore *postgres.LearnerStore

	// Service interfaces
	tokenVerifier         auth.TokenVerifier
	srsService            srs.Service
	reviewService         review.ReviewService
	recommendationService recommend.RecommendationService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts the core dependencies that must be established
// before application initialization.
func newApplication(cfg *config.Config, log *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: log,
		db:     db,
	}

	app.tokenVerifier = auth.NewHMACVerifier(cfg.Auth.JWTSecret)

	app.itemStore = postgres.NewItemStore(db, log)
	app.statsStore = postgres.NewReviewStatsStore(db, log)
	app.queueStore = postgres.NewReviewQueueStore(db, log)
	app.taskStore = postgres.NewTaskStore(db, log)
	app.learnerStore = postgres.NewLearnerStore(db, log)

	app.srsService = srs.NewServiceWithParams(srs.NewParams(srs.ParamsConfig{
		DefaultEase:     cfg.Policy.DefaultEase,
		MinEase:         cfg.Policy.MinEase,
		MaxIntervalDays: cfg.Policy.MaxIntervalDays,
		MasteryStreak:   cfg.Policy.MasteryStreak,
	}))

	app.reviewService = review.NewReviewService(
		db,
		app.itemStore,
		app.statsStore,
		app.queueStore,
		app.srsService,
		log,
	)

	app.recommendationService = recommend.NewRecommendationService(
		app.learnerStore,
		app.learnerStore,
		app.learnerStore,
		app.taskStore,
		domainrec.DefaultPolicy(),
		log,
	)

	log.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
