package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/cycletrack/cycle-tracker/internal/core/domain"
	"github.com/cycletrack/cycle-tracker/internal/core/ports"
	"github.com/cycletrack/cycle-tracker/internal/pkg/metrics"
)

// upcomingMonths is how many months follow the current one in a view.
const upcomingMonths = 3

type calendarService struct {
	cycles ports.CycleService
	notes  ports.NoteService
	step   domain.MonthStep
	now    func() time.Time
	log    zerolog.Logger
}

// NewCalendarService builds calendar views from the user's cycle log and
// note. now supplies "today"; nil means time.Now.
func NewCalendarService(cycles ports.CycleService, notes ports.NoteService, step domain.MonthStep, now func() time.Time, log zerolog.Logger) ports.CalendarService {
	if now == nil {
		now = time.Now
	}
	if step == "" {
		step = domain.MonthStepExact
	}
	return &calendarService{cycles: cycles, notes: notes, step: step, now: now, log: log}
}

func (s *calendarService) View(ctx context.Context, username string) (*ports.CalendarView, error) {
	logged, err := s.cycles.LoggedDates(ctx, username)
	if err != nil {
		return nil, err
	}
	note, err := s.notes.Get(ctx, username)
	if err != nil {
		return nil, err
	}

	today := s.now()
	view := &ports.CalendarView{
		Current:  domain.BuildMonthGrid(today.Year(), today.Month(), logged),
		Upcoming: make([]domain.MonthGrid, 0, upcomingMonths),
		Note:     note,
	}
	for _, m := range domain.FollowingMonths(today, upcomingMonths, s.step) {
		view.Upcoming = append(view.Upcoming, domain.BuildMonthGrid(m.Year(), m.Month(), logged))
	}

	metrics.CalendarViewsTotal.Inc()
	s.log.Debug().Str("username", username).Int("logged_days", len(logged)).Msg("calendar view built")
	return view, nil
}
