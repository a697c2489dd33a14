package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cycletrack/cycle-tracker/internal/api/flash"
	"github.com/cycletrack/cycle-tracker/internal/core/domain"
	"github.com/cycletrack/cycle-tracker/internal/core/ports"
)

type CalendarHandler struct {
	calendar ports.CalendarService
	cycles   ports.CycleService
	notes    ports.NoteService
}

func NewCalendarHandler(calendar ports.CalendarService, cycles ports.CycleService, notes ports.NoteService) *CalendarHandler {
	return &CalendarHandler{calendar: calendar, cycles: cycles, notes: notes}
}

// View renders the current and upcoming months with logged days marked.
//
// @Summary      Calendar
// @Tags         calendar
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  view{data=ports.CalendarView}
// @Failure      303  "Not logged in, redirected to /"
// @Router       /calendar [get]
func (h *CalendarHandler) View(c echo.Context) error {
	username, err := currentUser(c)
	if err != nil {
		return err
	}

	cal, err := h.calendar.View(c.Request().Context(), username)
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, pageCalendar, cal)
}

// Update saves the note when a note field is posted, even an empty one.
// Otherwise a non-empty new_date is appended to the cycle log.
//
// @Summary      Save note or log a date from the calendar
// @Tags         calendar
// @Accept       x-www-form-urlencoded
// @Security     BearerAuth
// @Param        note         formData  string  false  "Note text; an empty value clears the note"
// @Param        new_date     formData  string  false  "Date as MM/DD/YYYY"
// @Param        new_symptom  formData  string  false  "Symptom"
// @Success      303  "Redirect to /calendar"
// @Router       /calendar [post]
func (h *CalendarHandler) Update(c echo.Context) error {
	username, err := currentUser(c)
	if err != nil {
		return err
	}

	if _, err := c.FormParams(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	params := c.Request().PostForm

	ctx := c.Request().Context()
	if _, ok := params["note"]; ok {
		if err := h.notes.Save(ctx, username, params.Get("note")); err != nil {
			return err
		}
		flash.Info(c, msgNoteSaved)
		return seeOther(c, "/calendar")
	}

	if newDate := params.Get("new_date"); newDate != "" {
		if _, err := h.cycles.Append(ctx, username, newDate, params.Get("new_symptom")); err != nil {
			if !errors.Is(err, domain.ErrInvalidDate) {
				return err
			}
			flash.Error(c, msgInvalidDate)
		} else {
			flash.Info(c, msgCalendarLogged)
		}
	}
	return seeOther(c, "/calendar")
}
