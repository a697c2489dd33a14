// Package memory holds the process-lifetime stores: cycle logs, notes and
// revoked sessions. Nothing here survives a restart.
package memory

import (
	"context"
	"sync"

	"github.com/cycletrack/cycle-tracker/internal/core/domain"
)

// CycleRepository keeps each user's entries in insertion order.
type CycleRepository struct {
	mu      sync.RWMutex
	entries map[string][]domain.CycleEntry
}

func NewCycleRepository() *CycleRepository {
	return &CycleRepository{entries: make(map[string][]domain.CycleEntry)}
}

func (r *CycleRepository) Append(_ context.Context, username string, entry domain.CycleEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[username] = append(r.entries[username], entry)
	return nil
}

// List returns a copy; callers may not mutate the stored slice.
func (r *CycleRepository) List(_ context.Context, username string) ([]domain.CycleEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.entries[username]
	out := make([]domain.CycleEntry, len(stored))
	copy(out, stored)
	return out, nil
}

func (r *CycleRepository) Replace(_ context.Context, username string, index int, date, symptom string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.entries[username]
	if index < 0 || index >= len(list) {
		return domain.ErrIndexOutOfRange
	}
	list[index].Date = date
	list[index].Symptom = symptom
	return nil
}

func (r *CycleRepository) Remove(_ context.Context, username string, index int) (domain.CycleEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.entries[username]
	if index < 0 || index >= len(list) {
		return domain.CycleEntry{}, domain.ErrIndexOutOfRange
	}
	removed := list[index]
	r.entries[username] = append(list[:index], list[index+1:]...)
	return removed, nil
}

func (r *CycleRepository) Clear(_ context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, username)
	return nil
}
