package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cycletrack/cycle-tracker/internal/api/flash"
)

const loginPrompt = "Please log in first."

// RequireUser sends anonymous requests back to the welcome page with a
// prompt to log in. It must run after Session.
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if Username(c) == "" {
				flash.Error(c, loginPrompt)
				return c.Redirect(http.StatusSeeOther, "/")
			}
			return next(c)
		}
	}
}
