package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"toilet-finder/internal/config"
	"toilet-finder/internal/location"
	"toilet-finder/internal/metrics"
	"toilet-finder/internal/session"
	"toilet-finder/internal/timezone"
)

const shutdownTimeout = 10 * time.Second

// App encapsulates application dependencies
type App struct {
	router   *gin.Engine
	logger   *slog.Logger
	session  *session.Session
	registry *prometheus.Registry
	cfg      *config.Config
}

// NewApp creates a new application with injected dependencies
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewMetrics()
	if err := m.Register(registry); err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	// Marker times fall back to UTC without the timezone finder
	timezones, err := timezone.NewService()
	if err != nil {
		logger.Warn("timezone lookup unavailable", "error", err)
	}

	sess, err := session.New(session.Options{
		Config:    cfg,
		Geocoder:  location.NewLocationService(cfg, m, logger),
		Timezones: timezones,
		Metrics:   m,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}

	return newApp(cfg, logger, sess, registry), nil
}

func newApp(cfg *config.Config, logger *slog.Logger, sess *session.Session, registry *prometheus.Registry) *App {
	// Set Gin mode from configuration
	gin.SetMode(cfg.Server.GinMode)

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	app := &App{
		router:   router,
		logger:   logger,
		session:  sess,
		registry: registry,
		cfg:      cfg,
	}

	// Register routes
	app.registerRoutes()

	logger.Info("application initialized")
	return app
}

// Run serves HTTP and drives the map session until ctx is cancelled
func (app *App) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.session.Run(ctx)
	})

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
