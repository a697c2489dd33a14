package ports

import (
	"context"

	"github.com/cycletrack/cycle-tracker/internal/core/domain"
)

// CycleService holds the validation rules around a user's cycle log.
type CycleService interface {
	Append(ctx context.Context, username, date, symptom string) (domain.CycleEntry, error)
	List(ctx context.Context, username string) (domain.CycleLog, error)
	Get(ctx context.Context, username string, index int) (domain.CycleEntry, error)
	Edit(ctx context.Context, username string, index int, date, symptom string) error
	Remove(ctx context.Context, username string, index int) (domain.CycleEntry, error)
	Clear(ctx context.Context, username string) error
	LoggedDates(ctx context.Context, username string) (map[domain.CivilDate]struct{}, error)
}

type NoteService interface {
	Save(ctx context.Context, username, text string) error
	Get(ctx context.Context, username string) (string, error)
}

// CalendarView is the current month plus the following months, overlaid
// with the user's logged dates, and the user's note.
type CalendarView struct {
	Current  domain.MonthGrid   `json:"current"`
	Upcoming []domain.MonthGrid `json:"upcoming"`
	Note     string             `json:"notes"`
}

type CalendarService interface {
	View(ctx context.Context, username string) (*CalendarView, error)
}
