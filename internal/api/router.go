package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/superlibrary/library-api/internal/api/handler"
	"github.com/superlibrary/library-api/internal/api/middleware"
	"github.com/superlibrary/library-api/internal/core/service"
	"github.com/superlibrary/library-api/internal/infrastructure/config"
	mongostore "github.com/superlibrary/library-api/internal/infrastructure/db/mongo"
	redisstore "github.com/superlibrary/library-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("library"))
	limiter := redisstore.NewLimiter(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window)
	e.Use(middleware.RateLimit(limiter, log))

	// --- Dependencies ---
	bookRepo := mongostore.NewBookRepository(db)
	userRepo := mongostore.NewUserRepository(db)
	bookService := service.NewBookService(bookRepo, log)
	userService := service.NewUserService(userRepo, log)
	bookHandler := handler.NewBookHandler(bookService)
	userHandler := handler.NewUserHandler(userService)

	// --- Catalog routes ---
	books := e.Group("/v1/books")
	books.POST("", bookHandler.Create)
	books.GET("", bookHandler.List)
	books.GET("/:id", bookHandler.Get)
	books.PATCH("/:id", bookHandler.Update)
	books.DELETE("/:id", bookHandler.Delete)

	// --- User registry routes ---
	// The by-email route is registered before :id so the literal segment wins.
	users := e.Group("/v1/users")
	users.POST("", userHandler.Create)
	users.GET("", userHandler.List)
	users.GET("/by-email/:email", userHandler.GetByEmail)
	users.GET("/:id", userHandler.Get)
	users.PATCH("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Health probes ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
