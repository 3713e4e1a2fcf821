package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tunedeck/internal/model"
	"tunedeck/internal/session"
)

// RequireSession short-circuits to the login page when no session is
// present. The session data is placed on the context for the handler.
func RequireSession(sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			data, ok := sessions.User(c)
			if !ok {
				return c.Redirect(http.StatusFound, "/login")
			}
			c.Set(session.ContextKey, data)
			return next(c)
		}
	}
}

// RequireAdmin terminates the request with 403 unless the session's role
// is admin. Missing sessions get the same flat 403, not a redirect.
func RequireAdmin(sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			data, ok := sessions.User(c)
			if !ok || data.Role != model.RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "admin only")
			}
			c.Set(session.ContextKey, data)
			return next(c)
		}
	}
}
