package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cycletrack/cycle-tracker/internal/core/ports"
	"github.com/cycletrack/cycle-tracker/internal/pkg/metrics"
)

type noteService struct {
	repo ports.NoteRepository
	log  zerolog.Logger
}

func NewNoteService(repo ports.NoteRepository, log zerolog.Logger) ports.NoteService {
	return &noteService{repo: repo, log: log}
}

// Save overwrites the user's note; an empty text clears it.
func (s *noteService) Save(ctx context.Context, username, text string) error {
	if err := s.repo.Save(ctx, username, text); err != nil {
		return fmt.Errorf("save note: %w", err)
	}
	metrics.NotesSavedTotal.Inc()
	s.log.Debug().Str("username", username).Int("length", len(text)).Msg("note saved")
	return nil
}

func (s *noteService) Get(ctx context.Context, username string) (string, error) {
	text, err := s.repo.Get(ctx, username)
	if err != nil {
		return "", fmt.Errorf("get note: %w", err)
	}
	return text, nil
}
