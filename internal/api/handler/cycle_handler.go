package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cycletrack/cycle-tracker/internal/api/flash"
	"github.com/cycletrack/cycle-tracker/internal/core/domain"
	"github.com/cycletrack/cycle-tracker/internal/core/ports"
)

// CycleHandler handles HTTP requests for the signed-in user's cycle log.
type CycleHandler struct {
	service ports.CycleService
}

func NewCycleHandler(service ports.CycleService) *CycleHandler {
	return &CycleHandler{service: service}
}

// List renders the cycle log with its date range.
//
// @Summary      Cycle log
// @Tags         cycle
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  view{data=domain.CycleLog}
// @Failure      303  "Not logged in, redirected to /"
// @Router       /log-date [get]
func (h *CycleHandler) List(c echo.Context) error {
	username, err := currentUser(c)
	if err != nil {
		return err
	}

	log, err := h.service.List(c.Request().Context(), username)
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, pageLogDate, log)
}

// Create appends a dated entry to the cycle log.
//
// @Summary      Log a date
// @Tags         cycle
// @Accept       x-www-form-urlencoded
// @Security     BearerAuth
// @Param        date     formData  string  true   "Date as MM/DD/YYYY"
// @Param        symptom  formData  string  false  "Symptom"
// @Success      303  "Redirect to /log-date"
// @Router       /log-date [post]
func (h *CycleHandler) Create(c echo.Context) error {
	username, err := currentUser(c)
	if err != nil {
		return err
	}

	var form entryForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	if _, err := h.service.Append(c.Request().Context(), username, form.Date, form.Symptom); err != nil {
		if !errors.Is(err, domain.ErrInvalidDate) {
			return err
		}
		flash.Error(c, msgInvalidDate)
	} else {
		flash.Info(c, msgEntryLogged)
	}
	return seeOther(c, "/log-date")
}

// EditForm renders one entry for editing.
//
// @Summary      Edit entry page
// @Tags         cycle
// @Produce      json
// @Security     BearerAuth
// @Param        index  path  int  true  "0-based entry position"
// @Success      200  {object}  view{data=editLogData}
// @Failure      303  "Unknown entry, redirected to /log-date"
// @Router       /edit_log/{index} [get]
func (h *CycleHandler) EditForm(c echo.Context) error {
	username, err := currentUser(c)
	if err != nil {
		return err
	}

	idx := entryIndex(c)
	entry, err := h.service.Get(c.Request().Context(), username, idx)
	if err != nil {
		if errors.Is(err, domain.ErrIndexOutOfRange) {
			flash.Error(c, msgInvalidEntry)
			return seeOther(c, "/log-date")
		}
		return err
	}
	return render(c, http.StatusOK, pageEditLog, editLogData{Index: idx, Entry: entry})
}

// Edit replaces the date and symptom of one entry.
//
// @Summary      Edit an entry
// @Tags         cycle
// @Accept       x-www-form-urlencoded
// @Security     BearerAuth
// @Param        index    path      int     true   "0-based entry position"
// @Param        date     formData  string  true   "Date as MM/DD/YYYY"
// @Param        symptom  formData  string  false  "Symptom"
// @Success      303  "Redirect to /log-date, or back to the edit page on a bad date"
// @Router       /edit_log/{index} [post]
func (h *CycleHandler) Edit(c echo.Context) error {
	username, err := currentUser(c)
	if err != nil {
		return err
	}

	var form entryForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	idx := entryIndex(c)
	err = h.service.Edit(c.Request().Context(), username, idx, form.Date, form.Symptom)
	switch {
	case errors.Is(err, domain.ErrIndexOutOfRange):
		flash.Error(c, msgInvalidEntry)
		return seeOther(c, "/log-date")
	case errors.Is(err, domain.ErrInvalidDate):
		flash.Error(c, msgInvalidDate)
		return seeOther(c, fmt.Sprintf("/edit_log/%d", idx))
	case err != nil:
		return err
	}

	flash.Info(c, msgEntryUpdated)
	return seeOther(c, "/log-date")
}

// Remove deletes one entry.
//
// @Summary      Remove an entry
// @Tags         cycle
// @Security     BearerAuth
// @Param        index  path  int  true  "0-based entry position"
// @Success      303  "Redirect to /log-date"
// @Router       /remove_log/{index} [post]
func (h *CycleHandler) Remove(c echo.Context) error {
	username, err := currentUser(c)
	if err != nil {
		return err
	}

	removed, err := h.service.Remove(c.Request().Context(), username, entryIndex(c))
	if err != nil {
		if !errors.Is(err, domain.ErrIndexOutOfRange) {
			return err
		}
		flash.Error(c, msgInvalidEntry)
	} else {
		flash.Info(c, fmt.Sprintf(msgRemovedEntryFmt, removed.Date))
	}
	return seeOther(c, "/log-date")
}

// Clear empties the cycle log.
//
// @Summary      Remove all entries
// @Tags         cycle
// @Security     BearerAuth
// @Success      303  "Redirect to /log-date"
// @Router       /remove_logs [post]
func (h *CycleHandler) Clear(c echo.Context) error {
	username, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Clear(c.Request().Context(), username); err != nil {
		return err
	}
	flash.Info(c, msgEntriesCleared)
	return seeOther(c, "/log-date")
}
