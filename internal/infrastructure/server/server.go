package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"github.com/recipekeeper/core/docs"
	httpHandlers "github.com/recipekeeper/core/internal/adapters/http"
	"github.com/recipekeeper/core/internal/adapters/repository"
	"github.com/recipekeeper/core/internal/application/services"
	"github.com/recipekeeper/core/internal/infrastructure/config"
	"github.com/recipekeeper/core/internal/infrastructure/logger"
	"github.com/recipekeeper/core/internal/ports"
)

// Server represents the HTTP server
type Server struct {
	echo     *echo.Echo
	config   *config.Config
	logger   *logger.Logger
	store    ports.RecipeStore
	registry *prometheus.Registry
}

// New creates a new server instance
func New(cfg *config.Config, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	e.Validator = httpHandlers.NewValidator()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.App.Debug

	e.HTTPErrorHandler = httpHandlers.ErrorHandler(appLogger)

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout

	server := &Server{
		echo:     e,
		config:   cfg,
		logger:   appLogger,
		registry: prometheus.NewRegistry(),
	}

	// Initialize store
	var store ports.RecipeStore = repository.NewFileStore(cfg.Store, appLogger)
	if cfg.Metrics.Enabled {
		store = repository.NewInstrumentedStore(store, repository.NewStoreMetrics(server.registry))
	}
	server.store = store

	// Initialize services
	recipeService := services.NewRecipeService(store, cfg.Store.LockWrites, appLogger)

	// Initialize handlers
	recipeHandler := httpHandlers.NewRecipeHandler(recipeService, appLogger)

	// metrics wrap Recover so panicking requests are counted as 500
	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	server.setupMiddleware()

	server.setupRoutes(recipeHandler)

	return server, nil
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// Recovery middleware; stack traces only in development
	s.echo.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisablePrintStack: !s.config.App.IsDevelopment(),
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			fields := []interface{}{"path", c.Request().URL.Path}
			if len(stack) > 0 {
				fields = append(fields, "stack", string(stack))
			}
			s.logger.WithRequestID(c.Response().Header().Get(echo.HeaderXRequestID)).
				WithError(err).
				Errorw("Recovered from panic", fields...)
			return err
		},
	}))

	// Request ID middleware
	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	// Logger middleware
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			s.logger.LogHTTPRequest(values.Method, values.URI, values.RequestID, values.RemoteIP,
				values.Status, values.Latency, values.Error)
			return nil
		},
	}))

	// CORS middleware; any origin, method and header, credentials allowed
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     s.config.Security.AllowedOrigins(),
		AllowMethods:     []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowCredentials: true,

		UnsafeWildcardOriginWithAllowCredentials: true,
	}))

	// Rate limiting middleware
	if n := s.config.Security.RateLimitRequests; n > 0 {
		window := s.config.Security.RateLimitWindow
		if window <= 0 {
			window = time.Minute
		}
		s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(
				middleware.RateLimiterMemoryStoreConfig{Rate: rate.Limit(float64(n) / window.Seconds()), Burst: n, ExpiresIn: window},
			),
			IdentifierExtractor: func(ctx echo.Context) (string, error) {
				return ctx.RealIP(), nil
			},
			// both are handed to c.Error, so they must return the error rather than write a response
			ErrorHandler: func(context echo.Context, err error) error {
				return echo.NewHTTPError(http.StatusForbidden, "rate limit exceeded").SetInternal(err)
			},
			DenyHandler: func(context echo.Context, identifier string, err error) error {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded").SetInternal(err)
			},
		}))
	}

	// Security headers; HSTS only in production
	secure := middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
	}
	if s.config.App.IsProduction() {
		secure.HSTSMaxAge = 31536000
	}
	s.echo.Use(middleware.SecureWithConfig(secure))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(recipeHandler *httpHandlers.RecipeHandler) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// Swagger documentation
	if s.config.Docs.Enabled {
		docs.SwaggerInfo.Version = s.config.App.Version
		docs.SwaggerInfo.Host = ""
		s.echo.GET("/docs/*", echoSwagger.WrapHandler)
	}

	recipeHandler.Register(s.echo)
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	s.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	s.registry.MustRegister(requestsTotal, requestDuration)

	metricsPath := s.config.Metrics.Path

	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().URL.Path == metricsPath {
				return next(c)
			}

			start := time.Now()

			err := next(c)

			// the error handler has not written the response yet, so derive the status from err
			status := c.Response().Status
			if err != nil {
				status = http.StatusInternalServerError
				var he *echo.HTTPError
				var ve *httpHandlers.ValidationError
				if errors.As(err, &he) {
					status = he.Code
				} else if errors.As(err, &ve) {
					status = http.StatusUnprocessableEntity
				}
			}

			requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(time.Since(start).Seconds())

			return err
		}
	})

	metricsHandler := promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
	s.echo.GET(metricsPath, echo.WrapHandler(metricsHandler))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) readinessCheck(c echo.Context) error {
	recipes, err := s.store.Load(c.Request().Context())
	if err != nil {
		s.logger.Warnw("Readiness check failed", "error", err)
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "ready",
		"recipes": len(recipes),
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// ServeHTTP lets the server be driven directly, e.g. by httptest
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Infow("Starting server", "address", address, "store", s.config.Store.Path)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}
