package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cycletrack/cycle-tracker/internal/core/domain"
)

type stubCredentialRepo struct {
	users map[string]*domain.User
}

func newStubCredentialRepo() *stubCredentialRepo {
	return &stubCredentialRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubCredentialRepo) Create(_ context.Context, user *domain.User) error {
	if _, exists := r.users[user.Username]; exists {
		return domain.ErrUserExists
	}
	r.users[user.Username] = cloneUser(user)
	return nil
}

func (r *stubCredentialRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

type stubRevoker struct {
	revoked map[string]time.Time
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]time.Time)}
}

func (r *stubRevoker) Revoke(_ context.Context, tokenID string, until time.Time) error {
	r.revoked[tokenID] = until
	return nil
}

func (r *stubRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := r.revoked[tokenID]
	return ok, nil
}

func newAuthSvc() (*AuthService, *stubCredentialRepo, *stubRevoker) {
	repo := newStubCredentialRepo()
	revoker := newStubRevoker()
	return NewAuthService(repo, revoker, "secret", time.Hour, zerolog.Nop()), repo, revoker
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, repo, _ := newAuthSvc()

	user, err := svc.Register(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.PasswordHash == "pw1" {
		t.Fatalf("expected password to be hashed")
	}
	stored := repo.users["alice"]
	if stored == nil {
		t.Fatalf("expected user to be stored")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _, _ := newAuthSvc()

	if _, err := svc.Register(context.Background(), "", "pw"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
}

func TestAuthService_Register_PasswordTooLong(t *testing.T) {
	svc, repo, _ := newAuthSvc()

	long := strings.Repeat("p", domain.MaxPasswordBytes+8)
	if _, err := svc.Register(context.Background(), "bob", long); !errors.Is(err, domain.ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
	if _, ok := repo.users["bob"]; ok {
		t.Fatalf("user must not be stored")
	}

	// the longest accepted password still round-trips
	limit := strings.Repeat("p", domain.MaxPasswordBytes)
	if _, err := svc.Register(context.Background(), "carol", limit); err != nil {
		t.Fatalf("register at the limit failed: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "carol", limit); err != nil {
		t.Fatalf("login at the limit failed: %v", err)
	}
}

func TestAuthService_Register_DuplicateKeepsFirstHash(t *testing.T) {
	svc, repo, _ := newAuthSvc()

	if _, err := svc.Register(context.Background(), "bob", "first"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	firstHash := repo.users["bob"].PasswordHash

	if _, err := svc.Register(context.Background(), "bob", "second"); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if repo.users["bob"].PasswordHash != firstHash {
		t.Fatalf("stored hash changed on duplicate registration")
	}
	if _, _, err := svc.Login(context.Background(), "bob", "first"); err != nil {
		t.Fatalf("first password should still work: %v", err)
	}
}

func TestAuthService_Register_CaseSensitiveUsernames(t *testing.T) {
	svc, _, _ := newAuthSvc()

	if _, err := svc.Register(context.Background(), "Alice", "pw"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "alice", "pw"); err != nil {
		t.Fatalf("usernames differing in case must be distinct: %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, _ := newAuthSvc()

	if _, err := svc.Register(context.Background(), "carol", "s3cret"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["username"] != "carol" {
		t.Fatalf("expected username claim carol, got %v", claims["username"])
	}
	if claims["jti"] == "" || claims["jti"] == nil {
		t.Fatalf("expected jti claim")
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc, _, _ := newAuthSvc()

	_, _ = svc.Register(context.Background(), "dave", "goodpass")
	if _, _, err := svc.Login(context.Background(), "dave", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc, _, _ := newAuthSvc()

	if _, _, err := svc.Login(context.Background(), "ghost", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	svc, _, _ := newAuthSvc()
	_, _ = svc.Register(context.Background(), "erin", "pw")
	token, _, err := svc.Login(context.Background(), "erin", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	username, err := svc.Authenticate(context.Background(), token)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if username != "erin" {
		t.Fatalf("expected erin, got %q", username)
	}
}

func TestAuthService_Authenticate_Rejects(t *testing.T) {
	svc, _, _ := newAuthSvc()
	other := NewAuthService(newStubCredentialRepo(), newStubRevoker(), "other-secret", time.Hour, zerolog.Nop())
	foreign, _ := other.IssueToken(context.Background(), "mallory")

	expired := signExpired(t, "secret", "mallory")

	for name, token := range map[string]string{
		"empty":        "",
		"garbage":      "not-a-token",
		"wrong secret": foreign,
		"expired":      expired,
	} {
		if _, err := svc.Authenticate(context.Background(), token); err != domain.ErrNotAuthenticated {
			t.Fatalf("%s: expected ErrNotAuthenticated, got %v", name, err)
		}
	}
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	svc, _, revoker := newAuthSvc()
	token, err := svc.IssueToken(context.Background(), "frank")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if len(revoker.revoked) != 1 {
		t.Fatalf("expected one revoked token, got %d", len(revoker.revoked))
	}
	if _, err := svc.Authenticate(context.Background(), token); err != domain.ErrNotAuthenticated {
		t.Fatalf("expected revoked token to be rejected, got %v", err)
	}
}

func TestAuthService_Logout_InvalidTokenIsNoop(t *testing.T) {
	svc, _, revoker := newAuthSvc()

	if err := svc.Logout(context.Background(), "garbage"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(revoker.revoked) != 0 {
		t.Fatalf("nothing should be revoked")
	}
}

// signExpired returns a session token that expired a minute ago.
func signExpired(t *testing.T, secret, username string) string {
	t.Helper()
	past := time.Now().Add(-time.Minute)
	claims := sessionClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "expired",
			ExpiresAt: jwt.NewNumericDate(past),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}
