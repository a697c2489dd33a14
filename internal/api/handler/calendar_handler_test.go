package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/cycletrack/cycle-tracker/internal/api/flash"
	"github.com/cycletrack/cycle-tracker/internal/core/domain"
	"github.com/cycletrack/cycle-tracker/internal/core/ports"
)

type stubCalendarService struct {
	viewFn func(ctx context.Context, username string) (*ports.CalendarView, error)
}

func (s *stubCalendarService) View(ctx context.Context, username string) (*ports.CalendarView, error) {
	return s.viewFn(ctx, username)
}

type stubNoteService struct {
	saveFn func(ctx context.Context, username, text string) error
	getFn  func(ctx context.Context, username string) (string, error)
}

func (s *stubNoteService) Save(ctx context.Context, username, text string) error {
	return s.saveFn(ctx, username, text)
}

func (s *stubNoteService) Get(ctx context.Context, username string) (string, error) {
	return s.getFn(ctx, username)
}

// noCalls fails the test on any cycle or note mutation.
func noCalls(t *testing.T) (*stubCycleService, *stubNoteService) {
	cycles := &stubCycleService{
		appendFn: func(context.Context, string, string, string) (domain.CycleEntry, error) {
			t.Fatalf("append should not be called")
			return domain.CycleEntry{}, nil
		},
	}
	notes := &stubNoteService{
		saveFn: func(context.Context, string, string) error {
			t.Fatalf("save should not be called")
			return nil
		},
	}
	return cycles, notes
}

func TestCalendarHandler_View(t *testing.T) {
	e := newEcho()
	cal := &stubCalendarService{
		viewFn: func(_ context.Context, username string) (*ports.CalendarView, error) {
			logged := map[domain.CivilDate]struct{}{{Year: 2024, Month: 11, Day: 3}: {}}
			return &ports.CalendarView{
				Current:  domain.BuildMonthGrid(2024, 11, logged),
				Upcoming: []domain.MonthGrid{},
				Note:     username + "'s note",
			}, nil
		},
	}
	cycles, notes := noCalls(t)
	h := NewCalendarHandler(cal, cycles, notes)

	rec := httptest.NewRecorder()
	c := signedIn(e, httptest.NewRequest(http.MethodGet, "/calendar", nil), rec, "alice")

	if err := h.View(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := decodeView(t, rec)
	if resp["page"] != "calendar" {
		t.Fatalf("expected calendar page, got %v", resp["page"])
	}
	data := resp["data"].(map[string]any)
	if data["notes"] != "alice's note" {
		t.Fatalf("unexpected note: %v", data["notes"])
	}
	current := data["current"].(map[string]any)
	if current["name"] != "November" || current["year"] != float64(2024) {
		t.Fatalf("unexpected month: %v", current)
	}
}

func TestCalendarHandler_Update_SavesNote(t *testing.T) {
	e := newEcho()
	cycles, _ := noCalls(t)
	var saved string
	notes := &stubNoteService{
		saveFn: func(_ context.Context, _ string, text string) error {
			saved = text
			return nil
		},
	}
	h := NewCalendarHandler(&stubCalendarService{}, cycles, notes)

	rec := httptest.NewRecorder()
	form := url.Values{"note": {"spotting"}, "new_date": {"03/05/2024"}}
	c := signedIn(e, postForm("/calendar", form), rec, "alice")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if saved != "spotting" {
		t.Fatalf("expected note saved, got %q", saved)
	}
	expectRedirect(t, rec, "/calendar")
	expectFlash(t, e, rec, flash.LevelInfo, "Note saved!")
}

func TestCalendarHandler_Update_EmptyNoteClears(t *testing.T) {
	e := newEcho()
	cycles, _ := noCalls(t)
	saved := "unchanged"
	notes := &stubNoteService{
		saveFn: func(_ context.Context, _ string, text string) error {
			saved = text
			return nil
		},
	}
	h := NewCalendarHandler(&stubCalendarService{}, cycles, notes)

	rec := httptest.NewRecorder()
	c := signedIn(e, postForm("/calendar", url.Values{"note": {""}}), rec, "alice")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if saved != "" {
		t.Fatalf("expected note cleared, got %q", saved)
	}
	expectFlash(t, e, rec, flash.LevelInfo, "Note saved!")
}

func TestCalendarHandler_Update_LogsDate(t *testing.T) {
	e := newEcho()
	_, notes := noCalls(t)
	var gotDate, gotSymptom string
	cycles := &stubCycleService{
		appendFn: func(_ context.Context, _ string, date, symptom string) (domain.CycleEntry, error) {
			gotDate, gotSymptom = date, symptom
			return domain.CycleEntry{Date: date}, nil
		},
	}
	h := NewCalendarHandler(&stubCalendarService{}, cycles, notes)

	rec := httptest.NewRecorder()
	form := url.Values{"new_date": {"11/17/2024"}, "new_symptom": {"cramps"}}
	c := signedIn(e, postForm("/calendar", form), rec, "alice")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if gotDate != "11/17/2024" || gotSymptom != "cramps" {
		t.Fatalf("unexpected args: %q %q", gotDate, gotSymptom)
	}
	expectRedirect(t, rec, "/calendar")
	expectFlash(t, e, rec, flash.LevelInfo, "Date logged from calendar!")
}

func TestCalendarHandler_Update_InvalidDate(t *testing.T) {
	e := newEcho()
	_, notes := noCalls(t)
	cycles := &stubCycleService{
		appendFn: func(context.Context, string, string, string) (domain.CycleEntry, error) {
			return domain.CycleEntry{}, domain.ErrInvalidDate
		},
	}
	h := NewCalendarHandler(&stubCalendarService{}, cycles, notes)

	rec := httptest.NewRecorder()
	c := signedIn(e, postForm("/calendar", url.Values{"new_date": {"13/01/2024"}}), rec, "alice")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	expectRedirect(t, rec, "/calendar")
	expectFlash(t, e, rec, flash.LevelError, "Invalid date format. Use MM/DD/YYYY.")
}

func TestCalendarHandler_Update_NothingPosted(t *testing.T) {
	e := newEcho()
	cycles, notes := noCalls(t)
	h := NewCalendarHandler(&stubCalendarService{}, cycles, notes)

	rec := httptest.NewRecorder()
	c := signedIn(e, postForm("/calendar", url.Values{"new_date": {""}}), rec, "alice")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	expectRedirect(t, rec, "/calendar")
	if msgs := flashed(e, rec); len(msgs) != 0 {
		t.Fatalf("expected no messages, got %+v", msgs)
	}
}

func TestCalendarHandler_Update_NoteInQueryIgnored(t *testing.T) {
	e := newEcho()
	cycles, notes := noCalls(t)
	h := NewCalendarHandler(&stubCalendarService{}, cycles, notes)

	rec := httptest.NewRecorder()
	c := signedIn(e, postForm("/calendar?note=x", url.Values{}), rec, "alice")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectRedirect(t, rec, "/calendar")
}
