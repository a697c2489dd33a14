package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cycletrack/cycle-tracker/internal/core/domain"
	"github.com/cycletrack/cycle-tracker/internal/core/ports"
	"github.com/cycletrack/cycle-tracker/internal/pkg/metrics"
)

type cycleService struct {
	repo ports.CycleRepository
	log  zerolog.Logger
}

// NewCycleService returns a CycleService backed by repo.
func NewCycleService(repo ports.CycleRepository, log zerolog.Logger) ports.CycleService {
	return &cycleService{repo: repo, log: log}
}

// Append validates date and adds a new entry at the end of the user's log.
func (s *cycleService) Append(ctx context.Context, username, date, symptom string) (domain.CycleEntry, error) {
	if _, err := domain.ParseDate(date); err != nil {
		metrics.CycleEntryOpsTotal.WithLabelValues("append", "invalid_date").Inc()
		return domain.CycleEntry{}, err
	}

	entry := domain.CycleEntry{
		ID:      uuid.NewString(),
		Date:    date,
		Symptom: strings.TrimSpace(symptom),
	}
	if err := s.repo.Append(ctx, username, entry); err != nil {
		metrics.CycleEntryOpsTotal.WithLabelValues("append", metrics.ResultError).Inc()
		return domain.CycleEntry{}, fmt.Errorf("append entry: %w", err)
	}

	metrics.CycleEntryOpsTotal.WithLabelValues("append", metrics.ResultOK).Inc()
	s.log.Debug().Str("username", username).Str("date", date).Msg("cycle entry logged")
	return entry, nil
}

func (s *cycleService) List(ctx context.Context, username string) (domain.CycleLog, error) {
	entries, err := s.repo.List(ctx, username)
	if err != nil {
		return domain.CycleLog{}, fmt.Errorf("list entries: %w", err)
	}
	return domain.NewCycleLog(entries), nil
}

func (s *cycleService) Get(ctx context.Context, username string, index int) (domain.CycleEntry, error) {
	entries, err := s.repo.List(ctx, username)
	if err != nil {
		return domain.CycleEntry{}, fmt.Errorf("get entry: %w", err)
	}
	if index < 0 || index >= len(entries) {
		return domain.CycleEntry{}, domain.ErrIndexOutOfRange
	}
	return entries[index], nil
}

// Edit replaces the entry at index. The position is checked before the
// date so that a stale position is reported even with a bad date.
func (s *cycleService) Edit(ctx context.Context, username string, index int, date, symptom string) error {
	if _, err := s.Get(ctx, username, index); err != nil {
		s.countOp("edit", err)
		return err
	}

	if _, err := domain.ParseDate(date); err != nil {
		s.countOp("edit", err)
		return err
	}

	if err := s.repo.Replace(ctx, username, index, date, strings.TrimSpace(symptom)); err != nil {
		s.countOp("edit", err)
		if errors.Is(err, domain.ErrIndexOutOfRange) {
			return err
		}
		return fmt.Errorf("edit entry: %w", err)
	}

	s.countOp("edit", nil)
	s.log.Debug().Str("username", username).Int("index", index).Str("date", date).Msg("cycle entry updated")
	return nil
}

func (s *cycleService) Remove(ctx context.Context, username string, index int) (domain.CycleEntry, error) {
	removed, err := s.repo.Remove(ctx, username, index)
	s.countOp("remove", err)
	if err != nil {
		if errors.Is(err, domain.ErrIndexOutOfRange) {
			return domain.CycleEntry{}, err
		}
		return domain.CycleEntry{}, fmt.Errorf("remove entry: %w", err)
	}

	s.log.Debug().Str("username", username).Int("index", index).Str("date", removed.Date).Msg("cycle entry removed")
	return removed, nil
}

func (s *cycleService) Clear(ctx context.Context, username string) error {
	if err := s.repo.Clear(ctx, username); err != nil {
		s.countOp("clear", err)
		return fmt.Errorf("clear entries: %w", err)
	}
	s.countOp("clear", nil)
	s.log.Info().Str("username", username).Msg("cycle log cleared")
	return nil
}

// LoggedDates returns the set of days that have at least one entry.
func (s *cycleService) LoggedDates(ctx context.Context, username string) (map[domain.CivilDate]struct{}, error) {
	entries, err := s.repo.List(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("logged dates: %w", err)
	}

	dates := make(map[domain.CivilDate]struct{}, len(entries))
	for _, e := range entries {
		d, err := domain.ParseDate(e.Date)
		if err != nil {
			continue
		}
		dates[domain.CivilDateOf(d)] = struct{}{}
	}
	return dates, nil
}

func (s *cycleService) countOp(op string, err error) {
	result := metrics.ResultOK
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInvalidDate):
		result = "invalid_date"
	case errors.Is(err, domain.ErrIndexOutOfRange):
		result = "out_of_range"
	default:
		result = metrics.ResultError
	}
	metrics.CycleEntryOpsTotal.WithLabelValues(op, result).Inc()
}
