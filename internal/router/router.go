package router

import (
	"time"

	"toy_store_backend/internal/config"
	"toy_store_backend/internal/handlers"
	"toy_store_backend/internal/middleware"
	"toy_store_backend/internal/repositories"
	"toy_store_backend/internal/services"
	"toy_store_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Options carries everything Setup needs to build services and handlers.
type Options struct {
	Repositories repositories.Repositories
	JWT          *utils.JWTManager
	Pagination   handlers.Pagination
	// Now is the clock used to stamp new sales.
	Now func() time.Time
}

// OptionsFromConfig builds Options for a running server.
func OptionsFromConfig(cfg *config.Config, repos repositories.Repositories) Options {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	return Options{
		Repositories: repos,
		JWT:          utils.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL),
		Pagination:   handlers.Pagination{DefaultSize: cfg.DefaultPageSize, MaxSize: cfg.MaxPageSize},
		Now:          func() time.Time { return time.Now().In(loc) },
	}
}

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, opts Options) {
	utils.RegisterJSONFieldNames()

	repos := opts.Repositories

	// Initialize Services
	clientService := services.NewClientService(repos.Clients)
	saleService := services.NewSaleService(repos.Sales, repos.Clients, opts.Now)
	statsService := services.NewStatsService(repos.Stats)
	authService := services.NewAuthService(repos.Auth, opts.JWT)

	// Initialize Handlers
	clientHandler := handlers.NewClientHandler(clientService, opts.Pagination)
	saleHandler := handlers.NewSaleHandler(saleService, opts.Pagination)
	statsHandler := handlers.NewStatsHandler(statsService)
	authHandler := handlers.NewAuthHandler(authService)

	engine.GET("/", handlers.Index)
	engine.GET("/ping", handlers.Ping)

	SetupPublicAuthRoutes(engine.Group("/auth"), authHandler)

	authenticated := engine.Group("")
	authenticated.Use(middleware.AuthMiddleware(opts.JWT))
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)
		SetupClientRoutes(authenticated, clientHandler)
		SetupSaleRoutes(authenticated, saleHandler)
		SetupStatsRoutes(authenticated, statsHandler)
	}
}
