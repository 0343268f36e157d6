// internal/api/v2/api.go
package api

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/patrickmn/go-cache"
	"github.com/surimlab/challenge500/internal/conf"
	"github.com/surimlab/challenge500/internal/datastore"
	"github.com/surimlab/challenge500/internal/logging"
	"github.com/surimlab/challenge500/internal/textscore"
)

// OracleEvaluator is the external-scoring contract consumed by the API.
// Implemented by *oracle.Client; tests substitute their own.
type OracleEvaluator interface {
	Evaluate(ctx context.Context, title, body string) (*textscore.OracleScores, error)
}

// Controller manages the API routes and handlers
type Controller struct {
	Echo     *echo.Echo
	Group    *echo.Group
	DS       datastore.Interface
	Settings *conf.Settings
	Oracle   OracleEvaluator // nil when the oracle is disabled
	Scorer   *textscore.Scorer

	logger         *log.Logger
	entryCache     *cache.Cache // cache for entry fetches
	apiLogger      *slog.Logger // structured logger for API operations
	apiLevelVar    *slog.LevelVar
	apiLoggerClose func() error
	location       *time.Location // timezone used to compute the submission day
	startTime      time.Time
}

// Option is a functional option for configuring the Controller.
type Option func(*Controller)

// WithOracle sets the external scoring oracle.
func WithOracle(o OracleEvaluator) Option {
	return func(c *Controller) {
		c.Oracle = o
	}
}

// New creates a new API controller, returning an error if initialization fails
func New(e *echo.Echo, ds datastore.Interface, settings *conf.Settings, options ...Option) (*Controller, error) {
	if settings == nil {
		return nil, fmt.Errorf("settings cannot be nil")
	}

	loc, err := time.LoadLocation(settings.Challenge.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid challenge timezone %q: %w", settings.Challenge.Timezone, err)
	}

	c := &Controller{
		Echo:       e,
		DS:         ds,
		Settings:   settings,
		Scorer:     textscore.NewScorer(textscore.Config{MaxBytes: settings.Challenge.MaxBytes}),
		logger:     log.New(os.Stdout, "api/v2: ", log.LstdFlags),
		entryCache: cache.New(time.Minute, 5*time.Minute),
		location:   loc,
		startTime:  time.Now(),
	}

	for _, opt := range options {
		opt(c)
	}

	// Initialize structured file logger for API operations
	c.apiLevelVar = new(slog.LevelVar)
	if settings.WebServer.Debug {
		c.apiLevelVar.Set(slog.LevelDebug)
	} else {
		c.apiLevelVar.Set(slog.LevelInfo)
	}
	logFilePath := filepath.Join("logs", "api.log")
	c.apiLogger, c.apiLoggerClose, err = logging.NewFileLogger(logFilePath, "api", c.apiLevelVar)
	if err != nil {
		log.Printf("Failed to initialize API file logger at %s: %v. API logging disabled.", logFilePath, err)
		fbHandler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: c.apiLevelVar})
		c.apiLogger = slog.New(fbHandler).With("service", "api")
		c.apiLoggerClose = func() error { return nil }
	}

	c.Group = e.Group("/api/v2")
	c.Group.Use(middleware.Recover())
	c.Group.Use(c.LoggingMiddleware())
	c.Group.Use(c.AnonIdentityMiddleware())

	c.initRoutes()

	return c, nil
}

// initRoutes registers all API endpoints
func (c *Controller) initRoutes() {
	c.Group.GET("/health", c.HealthCheck)

	c.initEntryRoutes()
	c.initArcanaRoutes()
}

// HealthCheck handles the API health check endpoint
func (c *Controller) HealthCheck(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]any{
		"status":     "healthy",
		"version":    c.Settings.Version,
		"uptime_sec": int(time.Since(c.startTime).Seconds()),
	})
}

// Shutdown closes the controller's resources.
func (c *Controller) Shutdown() {
	if c.apiLoggerClose != nil {
		if err := c.apiLoggerClose(); err != nil {
			c.logger.Printf("Error closing API log file: %v", err)
		}
	}
}

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	Code          int    `json:"code"`
	CorrelationID string `json:"correlation_id"` // Unique identifier for tracking this error
}

// NewErrorResponse creates a new API error response
func NewErrorResponse(err error, message string, code int) *ErrorResponse {
	correlationID := generateCorrelationID()

	var errorStr string
	if err != nil {
		errorStr = err.Error()
	} else {
		errorStr = message
	}

	return &ErrorResponse{
		Error:         errorStr,
		Message:       message,
		Code:          code,
		CorrelationID: correlationID,
	}
}

// generateCorrelationID creates a unique identifier for error tracking
func generateCorrelationID() string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	const length = 8

	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "ERR-RAND"
	}
	for i := range b {
		b[i] = charset[int(b[i])%len(charset)]
	}
	return string(b)
}

// HandleError constructs and returns an appropriate error response
func (c *Controller) HandleError(ctx echo.Context, err error, message string, code int) error {
	errorResp := NewErrorResponse(err, message, code)

	ip := ctx.RealIP()
	c.logger.Printf("API Error [%s] from %s: %s: %v", errorResp.CorrelationID, ip, message, err)

	if c.apiLogger != nil {
		var errorStr string
		if err != nil {
			errorStr = err.Error()
		} else {
			errorStr = message
		}
		c.apiLogger.Error("API Error",
			"correlation_id", errorResp.CorrelationID,
			"message", message,
			"error", errorStr,
			"code", code,
			"path", ctx.Request().URL.Path,
			"method", ctx.Request().Method,
			"ip", ip,
		)
	}

	return ctx.JSON(code, errorResp)
}

// Debug logs debug messages when debug mode is enabled
func (c *Controller) Debug(format string, v ...any) {
	if c.Settings.WebServer.Debug {
		msg := fmt.Sprintf(format, v...)
		c.logger.Printf("[DEBUG] %s", msg)
		if c.apiLogger != nil {
			c.apiLogger.Debug(msg)
		}
	}
}

// logAPIRequest is a helper to log API requests with common context fields.
func (c *Controller) logAPIRequest(ctx echo.Context, level slog.Level, msg string, args ...any) {
	if c.apiLogger == nil {
		return
	}
	common := []any{
		"path", ctx.Request().URL.Path,
		"method", ctx.Request().Method,
		"ip", ctx.RealIP(),
	}
	c.apiLogger.Log(ctx.Request().Context(), level, msg, append(common, args...)...)
}
