package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/levelup/levelup-backend/internal/api/handler"
	"github.com/levelup/levelup-backend/internal/api/middleware"
	"github.com/levelup/levelup-backend/internal/core/domain"
	"github.com/levelup/levelup-backend/internal/core/ports"
	"github.com/levelup/levelup-backend/internal/core/service"
	mongodb "github.com/levelup/levelup-backend/internal/infrastructure/db/mongo"
	redisdb "github.com/levelup/levelup-backend/internal/infrastructure/db/redis"
	"github.com/levelup/levelup-backend/internal/pkg/password"
	"github.com/levelup/levelup-backend/internal/pkg/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The stats service and referral queue are built by the caller because the
// dispatcher's worker lifecycle belongs to main.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	issuer *token.Issuer,
	statsService ports.StatsService,
	referrals service.ReferralQueue,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("levelup"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	cartRepo := mongodb.NewCartRepository(db)
	cartCache := redisdb.NewCartCache(rdb)

	hasher := password.NewHasher()
	authService := service.NewAuthService(userRepo, hasher, issuer, statsService, referrals, log)
	userService := service.NewUserService(userRepo)
	cartService := service.NewCartService(cartRepo, cartCache, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	cartHandler := handler.NewCartHandler(cartService)
	statsHandler := handler.NewStatsHandler(statsService)

	authMiddleware := middleware.Auth(issuer)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Authenticated routes ---
	apiGroup := e.Group("/api", authMiddleware)
	apiGroup.GET("/users/me", userHandler.Me)
	apiGroup.GET("/cart", cartHandler.Get)
	apiGroup.PUT("/cart", cartHandler.Update)
	apiGroup.GET("/stats/me", statsHandler.Me)

	adminGroup := e.Group("/api/admin", authMiddleware, middleware.RBAC(domain.RoleAdmin))
	adminGroup.GET("/users/:run", userHandler.Get)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
