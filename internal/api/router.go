package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/inkwell/blog-platform/internal/api/handler"
	"github.com/inkwell/blog-platform/internal/api/middleware"
	"github.com/inkwell/blog-platform/internal/core/service"
	mongodb "github.com/inkwell/blog-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/inkwell/blog-platform/internal/infrastructure/db/redis"
)

// tokenTTL is the session-token validity window; the auth cookie max-age
// matches it.
const tokenTTL = time.Hour

// Options carries the router's cross-cutting settings.
type Options struct {
	JWTSecret    string
	SecureCookie bool
	Logger       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("blog"))

	// --- Dependencies ---
	authorRepo := mongodb.NewAuthorRepository(db)
	articleRepo := mongodb.NewArticleRepository(db)
	flashStore := redisdb.NewFlashStore(rdb)

	authService := service.NewAuthService(authorRepo, opts.JWTSecret, tokenTTL, opts.Logger)
	articleService := service.NewArticleService(articleRepo, authorRepo, flashStore, opts.Logger)

	authHandler := handler.NewAuthHandler(authService, tokenTTL, opts.SecureCookie)
	articleHandler := handler.NewArticleHandler(articleService)
	dashboardHandler := handler.NewDashboardHandler(articleService)
	authGate := middleware.Auth(opts.JWTSecret)

	// --- Public reader routes ---
	e.GET("/", articleHandler.List)
	e.GET("/article/:id", articleHandler.Read) // counted
	e.GET("/view/:id", articleHandler.View)    // uncounted preview
	e.POST("/search", articleHandler.Search)

	// --- Auth routes ---
	e.GET("/login", authHandler.LoginPage)
	e.GET("/register", authHandler.RegisterPage)
	e.POST("/login", authHandler.Login)
	e.POST("/register", authHandler.Register)
	e.GET("/logout", authHandler.Logout)

	// --- Author dashboard (auth required) ---
	e.GET("/dashboard", dashboardHandler.Dashboard, authGate)
	e.GET("/add-article", dashboardHandler.AddArticlePage, authGate)
	e.POST("/add-article", dashboardHandler.AddArticle, authGate)
	e.GET("/edit-article/:id", dashboardHandler.EditArticlePage, authGate)
	e.PUT("/edit-article/:id", dashboardHandler.EditArticle, authGate)
	e.DELETE("/delete-article/:id", dashboardHandler.DeleteArticle, authGate)
	e.GET("/publish-article/:id", dashboardHandler.PublishArticle, authGate)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
