package router

import (
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/tanvir-rahman/skillshare-backend/internal/cache"
	"github.com/tanvir-rahman/skillshare-backend/internal/handlers"
	"github.com/tanvir-rahman/skillshare-backend/internal/middleware"
	"github.com/tanvir-rahman/skillshare-backend/internal/models"
	"github.com/tanvir-rahman/skillshare-backend/internal/repositories"
	"github.com/tanvir-rahman/skillshare-backend/internal/services"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps carries the external dependencies the route tree needs.
type Deps struct {
	Postgres     *gorm.DB
	Mongo        *mongo.Client
	MongoDBName  string
	Counters     cache.CounterCache // may be nil when redis is not configured
	FirebaseAuth *auth.Client       // may be nil when firebase is not configured
	JWTSecret    string
	AuthMode     string // "jwt" (default) or "firebase"
	Logger       *zap.Logger
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Deps) error {
	// AutoMigrate PostgreSQL models
	err := deps.Postgres.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Relation{},
		&models.Comment{},
		&models.Notification{},
		&models.LearningPlan{},
		&models.ProgressUpdate{},
		&models.Badge{},
	)
	if err != nil {
		return err
	}
	deps.Logger.Info("postgres auto-migrations completed")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "skillshare api"})
	})

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(deps.Postgres)
	postRepo := repositories.NewPostgresPostRepository(deps.Postgres)
	counterRepo := repositories.NewPostgresCounterRepository(deps.Postgres)
	relationRepo := repositories.NewPostgresRelationRepository(deps.Postgres, counterRepo)
	commentRepo := repositories.NewPostgresCommentRepository(deps.Postgres)
	notificationRepo := repositories.NewPostgresNotificationRepository(deps.Postgres)
	mediaRepo := repositories.NewMongoMediaRepository(deps.Mongo.Database(deps.MongoDBName))
	planRepo := repositories.NewPostgresLearningPlanRepository(deps.Postgres)
	progressRepo := repositories.NewPostgresProgressUpdateRepository(deps.Postgres)
	badgeRepo := repositories.NewPostgresBadgeRepository(deps.Postgres)

	// --- Services ---
	notifier := services.NewNotificationService(notificationRepo, userRepo, deps.Logger)
	interactionService := services.NewInteractionService(relationRepo, userRepo, postRepo, notifier, deps.Counters, deps.Logger)
	commentService := services.NewCommentService(commentRepo, postRepo, userRepo, notifier, deps.Logger)
	progressService := services.NewProgressService(progressRepo, badgeRepo, userRepo, deps.Logger)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, deps.FirebaseAuth, deps.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Protected routes ---
	api := e.Group("/api/v1")
	if deps.AuthMode == "firebase" && deps.FirebaseAuth != nil {
		api.Use(middleware.FirebaseAuthMiddleware(deps.FirebaseAuth, userRepo))
	} else {
		api.Use(middleware.JWTAuthMiddleware(deps.JWTSecret))
	}

	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(api)

	postHandler := handlers.NewPostHandler(postRepo, mediaRepo, interactionService, deps.Logger)
	postHandler.RegisterPostRoutes(api)

	interactionHandler := handlers.NewInteractionHandler(interactionService)
	interactionHandler.RegisterInteractionRoutes(api)

	followHandler := handlers.NewFollowHandler(interactionService)
	followHandler.RegisterFollowRoutes(api)

	commentHandler := handlers.NewCommentHandler(commentService)
	commentHandler.RegisterCommentRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo)
	notificationHandler.RegisterNotificationRoutes(api)

	planHandler := handlers.NewLearningPlanHandler(planRepo)
	planHandler.RegisterLearningPlanRoutes(api)

	progressHandler := handlers.NewProgressUpdateHandler(progressService)
	progressHandler.RegisterProgressRoutes(api)

	deps.Logger.Info("routes configured")
	return nil
}
