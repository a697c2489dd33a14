package domain

import (
	"fmt"
	"time"
)

// CivilDate is a calendar day without time or location, used as a set key.
type CivilDate struct {
	Year  int
	Month time.Month
	Day   int
}

// CivilDateOf truncates t to its calendar day.
func CivilDateOf(t time.Time) CivilDate {
	y, m, d := t.Date()
	return CivilDate{Year: y, Month: m, Day: d}
}

// CalendarDay is one cell of a month grid. Day is 0 for cells that fall
// outside the month; such cells are never logged.
type CalendarDay struct {
	Day      int  `json:"day"`
	IsLogged bool `json:"is_logged"`
}

// CalendarWeek is a Monday-first row of seven cells.
type CalendarWeek [7]CalendarDay

// MonthGrid is a month partitioned into calendar weeks.
type MonthGrid struct {
	Year  int            `json:"year"`
	Month int            `json:"month"`
	Name  string         `json:"name"`
	Weeks []CalendarWeek `json:"calendar"`
}

// BuildMonthGrid lays out month in weeks starting on Monday and marks
// every day present in logged.
func BuildMonthGrid(year int, month time.Month, logged map[CivilDate]struct{}) MonthGrid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	// Monday = 0 ... Sunday = 6
	offset := (int(first.Weekday()) + 6) % 7

	grid := MonthGrid{
		Year:  year,
		Month: int(month),
		Name:  month.String(),
	}

	var week CalendarWeek
	col := offset
	for day := 1; day <= daysInMonth; day++ {
		_, ok := logged[CivilDate{Year: year, Month: month, Day: day}]
		week[col] = CalendarDay{Day: day, IsLogged: ok}
		col++
		if col == len(week) {
			grid.Weeks = append(grid.Weeks, week)
			week = CalendarWeek{}
			col = 0
		}
	}
	if col > 0 {
		grid.Weeks = append(grid.Weeks, week)
	}
	return grid
}

// MonthStep selects how the calendar advances from one month to the next.
type MonthStep string

const (
	// MonthStepExact moves by whole calendar months.
	MonthStepExact MonthStep = "exact"
	// MonthStepLegacy31 adds 31 days per step from the first of the
	// current month, which can repeat or skip months.
	MonthStepLegacy31 MonthStep = "legacy31"
)

// ParseMonthStep accepts "exact" and "legacy31"; empty means exact.
func ParseMonthStep(s string) (MonthStep, error) {
	switch MonthStep(s) {
	case "", MonthStepExact:
		return MonthStepExact, nil
	case MonthStepLegacy31:
		return MonthStepLegacy31, nil
	default:
		return "", fmt.Errorf("unknown calendar month step %q", s)
	}
}

// FollowingMonths returns the n months after the one containing from.
func FollowingMonths(from time.Time, n int, step MonthStep) []time.Time {
	first := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	months := make([]time.Time, 0, n)
	for i := 1; i <= n; i++ {
		var next time.Time
		if step == MonthStepLegacy31 {
			next = first.AddDate(0, 0, 31*i)
		} else {
			next = first.AddDate(0, i, 0)
		}
		months = append(months, time.Date(next.Year(), next.Month(), 1, 0, 0, 0, 0, time.UTC))
	}
	return months
}
