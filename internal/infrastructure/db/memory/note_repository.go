package memory

import (
	"context"
	"sync"
)

type NoteRepository struct {
	mu    sync.RWMutex
	notes map[string]string
}

func NewNoteRepository() *NoteRepository {
	return &NoteRepository{notes: make(map[string]string)}
}

func (r *NoteRepository) Save(_ context.Context, username, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if text == "" {
		delete(r.notes, username)
		return nil
	}
	r.notes[username] = text
	return nil
}

func (r *NoteRepository) Get(_ context.Context, username string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.notes[username], nil
}
