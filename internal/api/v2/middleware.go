// internal/api/v2/middleware.go
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/surimlab/challenge500/internal/datastore"
)

const (
	anonCookieName = "anon_id"
	userHeaderName = "X-User-Id"

	// anonCookieMaxAge keeps the anonymous identity stable for roughly
	// 400 days, the longest lifetime modern browsers honor.
	anonCookieMaxAge = 400 * 24 * int(time.Hour/time.Second)

	ownerContextKey = "challenge500_owner"
)

// AnonIdentityMiddleware resolves the request owner and issues the
// anonymous identity cookie when none is present. The resolved owner is
// stored on the echo context for handlers.
func (c *Controller) AnonIdentityMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			owner := datastore.Owner{}

			if userID := ctx.Request().Header.Get(userHeaderName); userID != "" {
				owner.UserID = userID
			}

			anonID := ""
			if cookie, err := ctx.Cookie(anonCookieName); err == nil && cookie.Value != "" {
				anonID = cookie.Value
			}
			if anonID == "" {
				anonID = uuid.NewString()
				ctx.SetCookie(&http.Cookie{
					Name:     anonCookieName,
					Value:    anonID,
					Path:     "/",
					MaxAge:   anonCookieMaxAge,
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			owner.AnonID = anonID

			ctx.Set(ownerContextKey, owner)
			return next(ctx)
		}
	}
}

// requestOwner returns the owner resolved by AnonIdentityMiddleware.
func requestOwner(ctx echo.Context) datastore.Owner {
	if owner, ok := ctx.Get(ownerContextKey).(datastore.Owner); ok {
		return owner
	}
	return datastore.Owner{}
}

// LoggingMiddleware logs API requests to the structured logger.
func (c *Controller) LoggingMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()

			err := next(ctx)

			if c.apiLogger != nil {
				status := ctx.Response().Status
				level := slog.LevelInfo
				if status >= http.StatusInternalServerError {
					level = slog.LevelError
				} else if status >= http.StatusBadRequest {
					level = slog.LevelWarn
				}
				c.apiLogger.Log(ctx.Request().Context(), level, "API request",
					"method", ctx.Request().Method,
					"path", ctx.Request().URL.Path,
					"status", status,
					"duration_ms", time.Since(start).Milliseconds(),
					"ip", ctx.RealIP(),
				)
			}

			return err
		}
	}
}
