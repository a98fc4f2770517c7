package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/watchdeck/core/docs"
	httpHandlers "github.com/watchdeck/core/internal/adapters/http"
	"github.com/watchdeck/core/internal/adapters/repository"
	"github.com/watchdeck/core/internal/application/services"
	"github.com/watchdeck/core/internal/infrastructure/config"
	"github.com/watchdeck/core/internal/infrastructure/logger"
	"github.com/watchdeck/core/internal/infrastructure/metrics"
	"github.com/watchdeck/core/internal/infrastructure/storage"
)

// Server represents the HTTP server
type Server struct {
	echo    *echo.Echo
	config  *config.Config
	logger  *logger.Logger
	store   *storage.JSONFile
	metrics *metrics.Metrics
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance. m may be nil when metrics are disabled.
func New(cfg *config.Config, store *storage.JSONFile, catalog *storage.Catalog, m *metrics.Metrics, appLogger *logger.Logger) (*Server, error) {
	if store == nil || catalog == nil {
		return nil, errors.New("server requires a store and a catalog")
	}

	e := echo.New()

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.App.Debug
	e.HTTPErrorHandler = customErrorHandler(appLogger, cfg.App.Debug)

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout

	// Initialize repositories
	watchlistRepo := repository.NewWatchlistRepository(store)
	tabRepo := repository.NewTabRepository(store)

	// Initialize services
	watchlistService := services.NewWatchlistService(watchlistRepo, catalog, appLogger)
	tabService := services.NewTabService(tabRepo, appLogger)
	instrumentService := services.NewInstrumentService(catalog)

	// Initialize handlers
	watchlistHandler := httpHandlers.NewWatchlistHandler(watchlistService, tabService, appLogger)
	tabHandler := httpHandlers.NewTabHandler(tabService, appLogger)
	instrumentHandler := httpHandlers.NewInstrumentHandler(instrumentService)

	server := &Server{
		echo:    e,
		config:  cfg,
		logger:  appLogger,
		store:   store,
		metrics: m,
	}

	server.setupMiddleware()

	if cfg.Metrics.Enabled && m != nil {
		server.setupMetrics()
	}

	server.setupRoutes(watchlistHandler, tabHandler, instrumentHandler)

	return server, nil
}

// Handler exposes the router, mainly for httptest
func (s *Server) Handler() http.Handler {
	return s.echo
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(watchlistHandler *httpHandlers.WatchlistHandler, tabHandler *httpHandlers.TabHandler, instrumentHandler *httpHandlers.InstrumentHandler) {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	api := s.echo.Group("/api")

	api.GET("/instruments", instrumentHandler.ListInstruments)
	api.GET("/instruments/:symbol", instrumentHandler.GetInstrument)

	watchlists := api.Group("/watchlists")
	watchlists.GET("", watchlistHandler.ListWatchlists)
	watchlists.POST("", watchlistHandler.CreateWatchlist)
	watchlists.GET("/:id", watchlistHandler.GetWatchlist)
	watchlists.PUT("/:id", watchlistHandler.UpdateWatchlist)
	watchlists.PATCH("/:id/name", watchlistHandler.RenameWatchlist)
	watchlists.DELETE("/:id", watchlistHandler.DeleteWatchlist)

	api.GET("/tabs", tabHandler.GetTabs)
	api.PUT("/tabs", tabHandler.UpdateTabs)
}

func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": s.config.App.Version,
	})
}

func (s *Server) readinessCheck(c echo.Context) error {
	if err := s.store.Healthy(c.Request().Context()); err != nil {
		s.logger.Warnw("Readiness check failed", "error", err)
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "storage_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Infow("Starting server", "address", address, "data_file", s.store.Path())
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Infow("Shutting down server")
	return s.echo.Shutdown(ctx)
}
