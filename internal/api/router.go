package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aibudget/tracker-api/internal/api/handler"
	"github.com/aibudget/tracker-api/internal/api/middleware"
	"github.com/aibudget/tracker-api/internal/core/ports"
	"github.com/aibudget/tracker-api/internal/core/service"
	mongodb "github.com/aibudget/tracker-api/internal/infrastructure/db/mongo"
	redisdb "github.com/aibudget/tracker-api/internal/infrastructure/db/redis"
)

// Options carries the configuration the router needs beyond its connections.
type Options struct {
	JWTSecret string
	TokenTTL  time.Duration
	// OwnerID is the configured owner account id; empty means no owner.
	OwnerID string
	Audit   ports.AuditRecorder
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("budget_tracker"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	forumRepo := mongodb.NewForumRepository(db)
	txRepo := mongodb.NewTransactionRepository(db)

	tokenService := service.NewTokenService(opts.JWTSecret, opts.TokenTTL)
	authService := service.NewAuthService(userRepo, tokenService, opts.OwnerID)
	adminService := service.NewAdminService(userRepo, opts.Audit)
	forumService := service.NewForumService(forumRepo)
	forecastService := service.NewForecastService(txRepo, redisdb.NewForecastCache(rdb))

	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(userRepo)
	adminHandler := handler.NewAdminHandler(adminService)
	forumHandler := handler.NewForumHandler(forumService)
	analyticsHandler := handler.NewAnalyticsHandler(forecastService)

	gate := middleware.Auth(tokenService, userRepo)
	authed := middleware.RequireAuthenticated()
	admin := middleware.RequireAdmin()
	owner := middleware.RequireOwner(opts.OwnerID)

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)

	// --- Profile ---
	e.GET("/profile", profileHandler.Get, gate, authed)
	e.PUT("/profile", profileHandler.Update, gate, authed)

	// --- Admin ---
	g := e.Group("/admin", gate)
	g.GET("/users", adminHandler.ListUsers, admin)
	g.POST("/users/:id/ban", adminHandler.Ban, admin)
	g.POST("/users/:id/unban", adminHandler.Unban, admin)
	g.GET("/admin-requests", adminHandler.ListPending, admin)
	g.POST("/admin-requests/:id/approve", adminHandler.Approve, owner)
	g.POST("/admin-requests/:id/revoke", adminHandler.Revoke, owner)

	// --- Forum ---
	f := e.Group("/forum", gate)
	f.GET("/posts", forumHandler.ListPosts) // anonymous reads allowed
	f.POST("/posts", forumHandler.CreatePost, authed)
	f.PUT("/posts/:id", forumHandler.EditPost, authed)
	f.DELETE("/posts/:id", forumHandler.DeletePost, authed)
	f.POST("/posts/:id/like", forumHandler.LikePost, authed)
	f.POST("/posts/:id/comments", forumHandler.AddComment, authed)
	f.PUT("/comments/:id", forumHandler.EditComment, authed)
	f.DELETE("/comments/:id", forumHandler.DeleteComment, authed)
	f.POST("/comments/:id/like", forumHandler.LikeComment, authed)

	// --- Transactions & analytics ---
	t := e.Group("/transactions", gate, authed)
	t.GET("", analyticsHandler.ListTransactions)
	t.POST("", analyticsHandler.CreateTransaction)
	t.PUT("/:id", analyticsHandler.UpdateTransaction)
	t.DELETE("/:id", analyticsHandler.DeleteTransaction)
	e.GET("/analytics/predict-next-month", analyticsHandler.PredictNextMonth, gate, authed)

	// --- Health probes & metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
