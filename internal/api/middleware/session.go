package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cycletrack/cycle-tracker/internal/core/domain"
)

const (
	// SessionCookie holds the signed session token.
	SessionCookie = "session"

	usernameKey = "username"
)

// Authenticator resolves a session token to the username it was issued for.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// Session resolves the request's session token and injects the username
// into the context. Requests without a usable token continue anonymously.
func Session(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := SessionToken(c)
			if token == "" {
				return next(c)
			}

			username, err := auth.Authenticate(c.Request().Context(), token)
			switch {
			case err == nil:
				c.Set(usernameKey, username)
			case !errors.Is(err, domain.ErrNotAuthenticated):
				return err
			}
			return next(c)
		}
	}
}

// SessionToken returns the token from the session cookie, falling back to
// an "Authorization: Bearer" header.
func SessionToken(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Username returns the username injected by Session, or "" for anonymous
// requests.
func Username(c echo.Context) string {
	username, _ := c.Get(usernameKey).(string)
	return username
}
