package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cycletrack/cycle-tracker/internal/api/flash"
	"github.com/cycletrack/cycle-tracker/internal/api/middleware"
	"github.com/cycletrack/cycle-tracker/internal/core/domain"
	"github.com/cycletrack/cycle-tracker/internal/core/ports"
)

// CookieConfig controls the session cookie written on login.
type CookieConfig struct {
	Secure bool
	TTL    time.Duration
}

type AuthHandler struct {
	authService ports.AuthService
	cookies     CookieConfig
}

func NewAuthHandler(authService ports.AuthService, cookies CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies}
}

// Welcome renders the landing page.
//
// @Summary      Welcome page
// @Tags         pages
// @Produce      json
// @Success      200  {object}  view{data=userData}
// @Router       / [get]
func (h *AuthHandler) Welcome(c echo.Context) error {
	return render(c, http.StatusOK, pageWelcome, userData{Username: middleware.Username(c)})
}

// Home renders the signed-in landing page.
//
// @Summary      Home page
// @Tags         pages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  view{data=userData}
// @Failure      303  "Not logged in, redirected to /"
// @Router       /home [get]
func (h *AuthHandler) Home(c echo.Context) error {
	username, err := currentUser(c)
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, pageHome, userData{Username: username})
}

// RegisterForm renders the registration page.
//
// @Summary      Registration page
// @Tags         auth
// @Produce      json
// @Success      200  {object}  view
// @Router       /register [get]
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return render(c, http.StatusOK, pageRegister, nil)
}

// Register creates an account and signs the new user in.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      303  "Redirect to /home, or back to /register on failure"
// @Failure      400  {object}  errorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var form credentialsForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&form); err != nil {
		flash.Error(c, err.Error())
		return seeOther(c, "/register")
	}

	ctx := c.Request().Context()
	user, err := h.authService.Register(ctx, form.Username, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			flash.Error(c, msgUsernameTaken)
			return seeOther(c, "/register")
		case errors.Is(err, domain.ErrInvalidCredentials):
			flash.Error(c, msgBadCredentials)
			return seeOther(c, "/register")
		case errors.Is(err, domain.ErrPasswordTooLong):
			flash.Error(c, msgPasswordTooLong)
			return seeOther(c, "/register")
		}
		return err
	}

	token, err := h.authService.IssueToken(ctx, user.Username)
	if err != nil {
		return err
	}
	h.setSession(c, token)
	flash.Info(c, msgAccountCreated+user.Username)
	return seeOther(c, "/home")
}

// LoginForm renders the login page.
//
// @Summary      Login page
// @Tags         auth
// @Produce      json
// @Success      200  {object}  view
// @Router       /login [get]
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return render(c, http.StatusOK, pageLogin, nil)
}

// Login verifies credentials and starts a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      303  "Redirect to /home with the session cookie set"
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  view
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var form credentialsForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&form); err != nil {
		flash.Error(c, msgBadCredentials)
		return render(c, http.StatusUnauthorized, pageLogin, nil)
	}

	token, user, err := h.authService.Login(c.Request().Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			flash.Error(c, msgBadCredentials)
			return render(c, http.StatusUnauthorized, pageLogin, nil)
		}
		return err
	}

	h.setSession(c, token)
	flash.Info(c, msgLoggedIn+user.Username)
	return seeOther(c, "/home")
}

// Logout ends the current session, if any.
//
// @Summary      Logout
// @Tags         auth
// @Success      303  "Redirect to /"
// @Router       /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	if token := middleware.SessionToken(c); token != "" {
		if err := h.authService.Logout(c.Request().Context(), token); err != nil {
			return err
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	flash.Info(c, msgLoggedOut)
	return seeOther(c, "/")
}

func (h *AuthHandler) setSession(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookies.TTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
