package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/tanvir-rahman/skillshare-backend/internal/cache"
	"github.com/tanvir-rahman/skillshare-backend/internal/reconciler"
	"github.com/tanvir-rahman/skillshare-backend/internal/repositories"
	"github.com/tanvir-rahman/skillshare-backend/internal/router"
	"github.com/tanvir-rahman/skillshare-backend/pkg/config"
	"github.com/tanvir-rahman/skillshare-backend/pkg/firebase"
	"github.com/tanvir-rahman/skillshare-backend/validators"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Fatal("failed to initialize databases", zap.Error(err))
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Firebase is optional; without credentials only local JWT auth works.
	var firebaseApp *firebase.App
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err = firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			logger.Fatal("failed to initialize firebase", zap.Error(err))
		}
		logger.Info("firebase auth client initialized")
	}

	// Counter cache and background reconciler, only when redis is configured.
	var counterCache cache.CounterCache
	var rec *reconciler.Reconciler
	if db.Redis != nil {
		counterCache = cache.NewRedisCounterCache(db.Redis)
		counterRepo := repositories.NewPostgresCounterRepository(db.Postgres)
		rec = reconciler.New(counterCache, counterRepo, reconciler.Config{
			Interval: cfg.ReconcileInterval,
			TopN:     int64(cfg.ReconcileTopN),
		}, logger)
		rec.Start(context.Background())
		defer rec.Stop()
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	// Setup global middleware
	config.SetupMiddleware(e, logger)

	deps := router.Deps{
		Postgres:    db.Postgres,
		Mongo:       db.Mongo,
		MongoDBName: cfg.MongoDBName,
		Counters:    counterCache,
		JWTSecret:   cfg.JWTSecret,
		AuthMode:    cfg.AuthMode,
		Logger:      logger,
	}
	if firebaseApp != nil {
		deps.FirebaseAuth = firebaseApp.AuthClient
	}

	if err := router.SetupRoutes(e, deps); err != nil {
		logger.Fatal("failed to set up routes", zap.Error(err))
	}

	// Start server
	logger.Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
