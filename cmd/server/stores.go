package main

import (
	"context"
	"fmt"

	"github.com/cycletrack/cycle-tracker/internal/api/handler"
	"github.com/cycletrack/cycle-tracker/internal/core/ports"
	"github.com/cycletrack/cycle-tracker/internal/infrastructure/db/file"
	"github.com/cycletrack/cycle-tracker/internal/infrastructure/db/memory"
	"github.com/cycletrack/cycle-tracker/internal/infrastructure/db/mongo"
	"github.com/cycletrack/cycle-tracker/internal/infrastructure/db/redis"
	"github.com/cycletrack/cycle-tracker/internal/pkg/config"
)

// openCredentialStore opens the configured credential backend and
// registers it with the readiness checks.
func openCredentialStore(ctx context.Context, cfg *config.Config, checks map[string]handler.Checker) (ports.CredentialRepository, func(), error) {
	if cfg.Storage.CredentialBackend == config.BackendMongo {
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, nil, err
		}
		repo := mongo.NewCredentialRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, fmt.Errorf("ensure credential indexes: %w", err)
		}
		checks["mongodb"] = repo
		return repo, func() { _ = client.Disconnect(context.Background()) }, nil
	}

	repo, err := file.NewCredentialRepository(cfg.Storage.CredentialsFile)
	if err != nil {
		return nil, nil, err
	}
	checks["credentials_file"] = repo
	return repo, func() {}, nil
}

// openSessionRevoker uses Redis when an address is configured and process
// memory otherwise.
func openSessionRevoker(ctx context.Context, cfg *config.Config, checks map[string]handler.Checker) (ports.SessionRevoker, func(), error) {
	if cfg.Redis.Addr == "" {
		return memory.NewSessionRevoker(), func() {}, nil
	}

	client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return nil, nil, err
	}
	revoker := redis.NewSessionRevoker(client)
	checks["redis"] = revoker
	return revoker, func() { _ = client.Close() }, nil
}
