package ports

import (
	"context"

	"github.com/cycletrack/cycle-tracker/internal/core/domain"
)

// CredentialRepository persists username → password hash pairs.
type CredentialRepository interface {
	// Create stores a new user. It returns domain.ErrUserExists when the
	// username is already taken and leaves the stored hash untouched.
	Create(ctx context.Context, user *domain.User) error
	// FindByUsername returns domain.ErrUserNotFound when absent.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
