package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskforge/taskforge/internal/api/handler"
	"github.com/taskforge/taskforge/internal/api/middleware"
	"github.com/taskforge/taskforge/internal/core/domain"
	"github.com/taskforge/taskforge/internal/core/ports"
	"github.com/taskforge/taskforge/internal/core/service"
	"github.com/taskforge/taskforge/internal/infrastructure/config"
	mongodb "github.com/taskforge/taskforge/internal/infrastructure/db/mongo"
	redisdb "github.com/taskforge/taskforge/internal/infrastructure/db/redis"
	"github.com/taskforge/taskforge/internal/security"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// events receives security telemetry; pass nil to disable the pipeline.
func NewRouter(db *mongo.Database, rdb *redis.Client, events ports.AuthEventSink, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("taskforge"))

	// --- Dependencies ---
	codec := security.NewTokenCodec(cfg.JWTSecret)
	hasher := security.NewBcryptHasher(0)
	userRepo := mongodb.NewUserRepository(db)
	throttle := redisdb.NewLoginThrottle(rdb)
	authService := service.NewAuthService(userRepo, hasher, codec, throttle, events, cfg.TokenTTL, log)
	authHandler := handler.NewAuthHandler(authService)

	trackerRepo := mongodb.NewTrackerRepository(db)
	trackerService := service.NewTrackerService(trackerRepo, log)
	trackerHandler := handler.NewTrackerHandler(trackerService)

	// Every request passes the authenticator; only guarded routes reject.
	e.Use(middleware.Authenticate(codec))
	member := middleware.RequireRoles(domain.RoleUser, domain.RoleAdmin)
	admin := middleware.RequireRoles(domain.RoleAdmin)

	// --- Auth routes (public) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Tracker routes ---
	e.POST("/projects", trackerHandler.CreateProject, member)
	e.GET("/projects", trackerHandler.ListProjects, member)
	e.GET("/projects/:id", trackerHandler.GetProject, member)
	e.DELETE("/projects/:id", trackerHandler.DeleteProject, admin)

	e.POST("/projects/:id/epics", trackerHandler.CreateEpic, member)
	e.GET("/projects/:id/epics", trackerHandler.ListEpics, member)
	e.DELETE("/epics/:id", trackerHandler.DeleteEpic, admin)

	e.POST("/epics/:id/tasks", trackerHandler.CreateTask, member)
	e.GET("/epics/:id/tasks", trackerHandler.ListTasks, member)
	e.PUT("/tasks/:id", trackerHandler.UpdateTask, member)
	e.DELETE("/tasks/:id", trackerHandler.DeleteTask, admin)

	// --- Observability (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
