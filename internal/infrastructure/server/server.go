package server

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/nyaysathi/core/docs"
	httpHandlers "github.com/nyaysathi/core/internal/adapters/http"
	"github.com/nyaysathi/core/internal/adapters/repository"
	"github.com/nyaysathi/core/internal/application/services"
	"github.com/nyaysathi/core/internal/infrastructure/config"
	"github.com/nyaysathi/core/internal/infrastructure/database"
	"github.com/nyaysathi/core/internal/infrastructure/logger"
	"github.com/nyaysathi/core/internal/infrastructure/metrics"
	"github.com/nyaysathi/core/internal/ports"
)

// Server represents the HTTP server
type Server struct {
	echo    *echo.Echo
	config  *config.Config
	logger  *logger.Logger
	db      *database.DB
	cache   ports.CacheRepository
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

type handlers struct {
	contacts    *httpHandlers.ContactHandler
	tasks       *httpHandlers.TaskHandler
	events      *httpHandlers.EventHandler
	pdfs        *httpHandlers.PdfHandler
	translation *httpHandlers.TranslationHandler
	admin       *httpHandlers.AdminHandler
}

// New creates a new server instance. cache backs the translation cache and
// is pinged by the readiness check.
func New(cfg *config.Config, db *database.DB, cache ports.CacheRepository, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	// Set custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true

	// Custom error handler
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	m := metrics.New()

	// Initialize repositories
	contactRepo := repository.NewContactRepository(db.DB)
	taskRepo := repository.NewTaskRepository(db.DB)
	eventRepo := repository.NewEventRepository(db.DB)
	pdfRepo := repository.NewPdfRepository(db.DB)

	// Initialize services
	resolver := services.NewReferenceResolver(contactRepo, appLogger)
	contactService := services.NewContactService(contactRepo, appLogger)
	taskService := services.NewTaskService(taskRepo, resolver, appLogger)
	eventService := services.NewEventService(eventRepo, resolver, appLogger)
	pdfService := services.NewPdfService(pdfRepo, appLogger)
	translationService := newTranslationService(cfg.Translation, cache, m, appLogger)
	summaryService := newSummaryService(cfg.Translation, pdfService, m, appLogger)
	adminService := services.NewAdminService(cfg.Admin, cfg.JWT, appLogger)

	h := handlers{
		contacts:    httpHandlers.NewContactHandler(contactService, appLogger),
		tasks:       httpHandlers.NewTaskHandler(taskService, appLogger),
		events:      httpHandlers.NewEventHandler(eventService, appLogger),
		pdfs:        httpHandlers.NewPdfHandler(pdfService, summaryService, appLogger),
		translation: httpHandlers.NewTranslationHandler(translationService, appLogger),
		admin:       httpHandlers.NewAdminHandler(adminService, appLogger),
	}

	server := &Server{
		echo:    e,
		config:  cfg,
		logger:  appLogger,
		db:      db,
		cache:   cache,
		metrics: m,
	}

	// Setup middleware
	server.setupMiddleware()

	// Setup metrics
	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	// Setup routes
	server.setupRoutes(h, adminService)

	return server, nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.echo.Use(middleware.Recover())

	// Request ID middleware
	s.echo.Use(middleware.RequestID())

	// Logger middleware
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			reqLog := s.logger.WithRequestID(values.RequestID)
			latencyMs := float64(values.Latency.Nanoseconds()) / 1000000

			if values.Error != nil {
				reqLog.WithError(values.Error).Errorw("HTTP request failed",
					"method", values.Method,
					"path", values.URI,
					"status_code", values.Status,
					"duration_ms", latencyMs,
				)
				return nil
			}
			reqLog.LogHTTPRequest(values.Method, values.URI, values.UserAgent, values.RemoteIP, values.Status, latencyMs)
			return nil
		},
	}))

	// CORS middleware
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: splitOrigins(s.config.Security.CORSAllowedOrigins),
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders: []string{
			echo.HeaderOrigin, echo.HeaderContentType,
			echo.HeaderAccept, echo.HeaderAuthorization,
		},
		ExposeHeaders: []string{echo.HeaderContentDisposition},
	}))

	if s.config.Server.BodyLimit != "" {
		s.echo.Use(middleware.BodyLimit(s.config.Server.BodyLimit))
	}

	// Rate limiting middleware
	if s.config.Security.RateLimitRequests > 0 {
		window := s.config.Security.RateLimitWindow
		if window <= 0 {
			window = time.Minute
		}
		s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Skipper: func(c echo.Context) bool {
				return strings.HasPrefix(c.Path(), "/health") || c.Path() == "/metrics"
			},
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(
				middleware.RateLimiterMemoryStoreConfig{
					Rate:      rate.Limit(float64(s.config.Security.RateLimitRequests) / window.Seconds()),
					Burst:     s.config.Security.RateLimitRequests,
					ExpiresIn: 3 * time.Minute,
				},
			),
			IdentifierExtractor: func(ctx echo.Context) (string, error) {
				return ctx.RealIP(), nil
			},
			ErrorHandler: func(context echo.Context, err error) error {
				return context.JSON(http.StatusForbidden, httpHandlers.ErrorResponse{Error: "rate limit exceeded"})
			},
			DenyHandler: func(context echo.Context, identifier string, err error) error {
				return context.JSON(http.StatusTooManyRequests, httpHandlers.ErrorResponse{Error: "rate limit exceeded"})
			},
		}))
	}

	// Security headers
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
	}))

	// Timeout middleware
	if s.config.Server.RequestTimeout > 0 {
		s.echo.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/api/v1/summarize" || c.Path() == "/api/v1/ai-legal-explain"
			},
			Timeout: s.config.Server.RequestTimeout,
		}))
	}
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(h handlers, adminService ports.AdminService) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// Swagger documentation
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 routes
	v1 := s.echo.Group("/api/v1")
	withAdmin := s.adminClaims(adminService)

	contacts := v1.Group("/contacts")
	contacts.GET("", h.contacts.ListContacts)
	contacts.POST("", h.contacts.CreateContact)
	contacts.GET("/:id", h.contacts.GetContact)
	contacts.DELETE("/:id", h.contacts.DeleteContact)

	tasks := v1.Group("/tasks")
	tasks.GET("", h.tasks.ListTasks)
	tasks.POST("", h.tasks.CreateTask, withAdmin)
	tasks.DELETE("", h.tasks.DeleteAllTasks, withAdmin)
	tasks.GET("/:id", h.tasks.GetTask)
	tasks.PUT("/:id", h.tasks.UpdateTask)
	tasks.DELETE("/:id", h.tasks.DeleteTask)
	tasks.PATCH("/:id/status", h.tasks.UpdateTaskStatus)

	events := v1.Group("/events")
	events.GET("", h.events.ListEvents)
	events.POST("", h.events.CreateEvent)
	events.GET("/:id", h.events.GetEvent)
	events.PUT("/:id", h.events.UpdateEvent)
	events.DELETE("/:id", h.events.DeleteEvent)

	pdfs := v1.Group("/pdfs")
	pdfs.GET("", h.pdfs.ListPdfs)
	pdfs.POST("", h.pdfs.StorePdf)
	pdfs.GET("/:id", h.pdfs.DownloadPdf)

	v1.POST("/summarize", h.pdfs.Summarize)
	v1.POST("/translate", h.translation.Translate)
	v1.POST("/ai-legal-explain", h.translation.Explain)
	v1.POST("/admin/login", h.admin.Login)
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start)
			status := c.Response().Status

			s.metrics.RequestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			s.metrics.RequestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(duration.Seconds())

			return err
		}
	})

	// Metrics endpoint
	metricsHandler := promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})
	s.echo.GET("/metrics", echo.WrapHandler(metricsHandler))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	status := "ok"
	checks := make(map[string]interface{})

	// Database health check
	if err := s.db.HealthCheck(); err != nil {
		status = "error"
		checks["database"] = map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
	} else {
		checks["database"] = map[string]interface{}{
			"status": "ok",
			"stats":  s.db.GetConnectionInfo(),
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := s.cache.Ping(ctx); err != nil {
		// the cache is optional; translations still work without it
		checks["cache"] = map[string]interface{}{
			"status": "degraded",
			"error":  err.Error(),
		}
	} else {
		checks["cache"] = map[string]interface{}{"status": "ok"}
	}

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
		"version": map[string]string{
			"app": s.config.App.Version,
			"go":  runtime.Version(),
		},
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	// Check if server is ready to accept requests
	if err := s.db.Ping(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "database_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Infow("Starting server", "address", address)
	s.echo.Server.ReadTimeout = s.config.Server.ReadTimeout
	s.echo.Server.WriteTimeout = s.config.Server.WriteTimeout
	s.echo.Server.IdleTimeout = s.config.Server.IdleTimeout
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Infow("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// customErrorHandler renders errors that reach echo as ErrorResponse bodies
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			body = httpHandlers.ErrorResponse{Error: http.StatusText(http.StatusInternalServerError)}
		)

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			body.Error = fmt.Sprint(he.Message)
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		}

		if code == http.StatusInternalServerError {
			logger.Errorw("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		// Send response
		if !c.Response().Committed {
			if c.Request().Method == http.MethodHead {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, body)
			}
			if err != nil {
				logger.Errorw("Error sending response", "error", err)
			}
		}
	}
}
