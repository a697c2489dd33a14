// Command server runs the cycle tracker HTTP service.
//
// @title                       Cycle Tracker API
// @version                     1.0
// @description                 Personal cycle tracking: accounts, a dated symptom log, a monthly calendar and a free-text note.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cycletrack/cycle-tracker/internal/api"
	"github.com/cycletrack/cycle-tracker/internal/api/handler"
	"github.com/cycletrack/cycle-tracker/internal/core/domain"
	"github.com/cycletrack/cycle-tracker/internal/core/service"
	"github.com/cycletrack/cycle-tracker/internal/infrastructure/db/memory"
	"github.com/cycletrack/cycle-tracker/internal/pkg/config"
	"github.com/cycletrack/cycle-tracker/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "cycle-tracker",
	})

	step, err := domain.ParseMonthStep(cfg.Calendar.MonthStep)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid calendar configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := make(map[string]handler.Checker)

	creds, closeCreds, err := openCredentialStore(ctx, cfg, checks)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Storage.CredentialBackend).Msg("failed to open credential store")
	}
	defer closeCreds()

	revoker, closeRevoker, err := openSessionRevoker(ctx, cfg, checks)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("failed to connect to redis")
	}
	defer closeRevoker()

	// --- Services ---
	cycleService := service.NewCycleService(memory.NewCycleRepository(), log.With().Str("component", "cycle").Logger())
	noteService := service.NewNoteService(memory.NewNoteRepository(), log.With().Str("component", "note").Logger())
	services := api.Services{
		Auth:     service.NewAuthService(creds, revoker, cfg.JWTSecret, cfg.Session.TTL, log.With().Str("component", "auth").Logger()),
		Cycles:   cycleService,
		Notes:    noteService,
		Calendar: service.NewCalendarService(cycleService, noteService, step, time.Now, log.With().Str("component", "calendar").Logger()),
	}

	e := api.NewRouter(services, api.Options{
		Cookies: handler.CookieConfig{Secure: cfg.Session.CookieSecure, TTL: cfg.Session.TTL},
		Checks:  checks,
		Logger:  log,
	})

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("credential_backend", cfg.Storage.CredentialBackend).
			Str("calendar_month_step", string(step)).
			Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
