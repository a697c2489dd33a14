package domain

import "errors"

var (
	ErrUserExists         = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrPasswordTooLong    = errors.New("password is longer than 72 bytes")
)

// MaxPasswordBytes is the longest password bcrypt can hash.
const MaxPasswordBytes = 72

// User models a registered account. Only the bcrypt hash is ever stored.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
