package ports

import (
	"context"

	"github.com/cycletrack/cycle-tracker/internal/core/domain"
)

// CycleRepository stores each user's cycle entries in insertion order.
// Positions are 0-based and shift down after a removal.
type CycleRepository interface {
	Append(ctx context.Context, username string, entry domain.CycleEntry) error
	List(ctx context.Context, username string) ([]domain.CycleEntry, error)
	// Replace overwrites date and symptom of the entry at index, keeping
	// its ID. It returns domain.ErrIndexOutOfRange when index is outside
	// [0, len).
	Replace(ctx context.Context, username string, index int, date, symptom string) error
	// Remove deletes and returns the entry at index.
	Remove(ctx context.Context, username string, index int) (domain.CycleEntry, error)
	Clear(ctx context.Context, username string) error
}

// NoteRepository keeps at most one free-text note per user.
type NoteRepository interface {
	Save(ctx context.Context, username, text string) error
	// Get returns "" when the user has no note.
	Get(ctx context.Context, username string) (string, error)
}
