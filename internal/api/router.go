package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/cycletrack/cycle-tracker/internal/api/handler"
	"github.com/cycletrack/cycle-tracker/internal/api/middleware"
	"github.com/cycletrack/cycle-tracker/internal/core/ports"
	_ "github.com/cycletrack/cycle-tracker/internal/docs"
)

// Services is everything the HTTP layer calls into.
type Services struct {
	Auth     ports.AuthService
	Cycles   ports.CycleService
	Notes    ports.NoteService
	Calendar ports.CalendarService
}

type Options struct {
	Cookies handler.CookieConfig
	// Checks are run by the readiness check, keyed by dependency name.
	Checks map[string]handler.Checker
	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(opts.Logger))
	e.Use(middleware.Session(svc.Auth))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.Auth, opts.Cookies)
	cycleHandler := handler.NewCycleHandler(svc.Cycles)
	calendarHandler := handler.NewCalendarHandler(svc.Calendar, svc.Cycles, svc.Notes)
	requireUser := middleware.RequireUser()

	// --- Pages and auth ---
	e.GET("/", authHandler.Welcome)
	e.GET("/home", authHandler.Home, requireUser)
	e.GET("/register", authHandler.RegisterForm)
	e.POST("/register", authHandler.Register)
	e.GET("/login", authHandler.LoginForm)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)

	// --- Cycle log ---
	e.GET("/log-date", cycleHandler.List, requireUser)
	e.POST("/log-date", cycleHandler.Create, requireUser)
	e.GET("/edit_log/:index", cycleHandler.EditForm, requireUser)
	e.POST("/edit_log/:index", cycleHandler.Edit, requireUser)
	e.POST("/remove_log/:index", cycleHandler.Remove, requireUser)
	e.POST("/remove_logs", cycleHandler.Clear, requireUser)

	// --- Calendar ---
	e.GET("/calendar", calendarHandler.View, requireUser)
	e.POST("/calendar", calendarHandler.Update, requireUser)

	// --- Health checks (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(opts.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("user", middleware.Username(c)).
				Msg("request")
			return nil
		},
	})
}
