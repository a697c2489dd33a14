// Package file stores credentials as a single JSON object mapping
// username to password hash. The whole file is rewritten on every change.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/cycletrack/cycle-tracker/internal/core/domain"
)

// CredentialRepository implements ports.CredentialRepository on top of a
// flat JSON file. Writes are serialized and land atomically via rename.
type CredentialRepository struct {
	mu    sync.RWMutex
	path  string
	users map[string]string
}

// NewCredentialRepository loads path in full. A missing or empty file is
// an empty credential set.
func NewCredentialRepository(path string) (*CredentialRepository, error) {
	r := &CredentialRepository{path: path, users: make(map[string]string)}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return r, nil
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	if len(data) == 0 {
		return r, nil
	}
	if err := json.Unmarshal(data, &r.users); err != nil {
		return nil, fmt.Errorf("decode credentials %s: %w", path, err)
	}
	return r, nil
}

func (r *CredentialRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; exists {
		return domain.ErrUserExists
	}

	r.users[user.Username] = user.PasswordHash
	if err := r.flush(); err != nil {
		delete(r.users, user.Username)
		return err
	}
	return nil
}

func (r *CredentialRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	hash, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &domain.User{Username: username, PasswordHash: hash}, nil
}

// Check reports whether the credential file's directory is usable.
func (r *CredentialRepository) Check(_ context.Context) error {
	info, err := os.Stat(filepath.Dir(r.path))
	if err != nil {
		return fmt.Errorf("credential directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("credential directory %s is not a directory", filepath.Dir(r.path))
	}
	return nil
}

// flush rewrites the whole file. Callers hold r.mu.
func (r *CredentialRepository) flush() error {
	data, err := json.Marshal(r.users)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp credentials file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync credentials: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close credentials: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("replace credentials: %w", err)
	}
	return nil
}
