package ports

import (
	"context"

	"github.com/cycletrack/cycle-tracker/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// IssueToken mints a session token for an already verified user.
	IssueToken(ctx context.Context, username string) (string, error)
	Authenticate(ctx context.Context, token string) (string, error)
	Logout(ctx context.Context, token string) error
}
