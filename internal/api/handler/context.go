package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cycletrack/cycle-tracker/internal/api/flash"
	"github.com/cycletrack/cycle-tracker/internal/api/middleware"
	"github.com/cycletrack/cycle-tracker/internal/core/domain"
)

// currentUser returns the username injected by the session middleware.
// Routes behind RequireUser always have one; anything else is a wiring bug
// surfaced as domain.ErrNotAuthenticated.
func currentUser(c echo.Context) (string, error) {
	username := middleware.Username(c)
	if username == "" {
		return "", domain.ErrNotAuthenticated
	}
	return username, nil
}

// entryIndex parses the :index path parameter. Values that are not
// integers map to -1, which no entry occupies.
func entryIndex(c echo.Context) int {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return -1
	}
	return idx
}

func render(c echo.Context, status int, page string, data any) error {
	return c.JSON(status, view{Page: page, Messages: flash.Consume(c), Data: data})
}

func seeOther(c echo.Context, path string) error {
	return c.Redirect(http.StatusSeeOther, path)
}
