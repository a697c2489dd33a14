package domain

import (
	"errors"
	"time"
)

// DateLayout is the fixed MM/DD/YYYY format used for every date the
// application accepts or emits.
const DateLayout = "01/02/2006"

var (
	ErrInvalidDate     = errors.New("invalid date format, use MM/DD/YYYY")
	ErrIndexOutOfRange = errors.New("log entry index out of range")
)

// CycleEntry is a single (date, symptom) record owned by one user.
// Date keeps the submitted MM/DD/YYYY string; ID is stable for the
// lifetime of the entry while positions shift on removal.
type CycleEntry struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Symptom string `json:"symptom"`
}

// CycleLog is the read model of a user's entries in insertion order.
// StartDate and EndDate are the earliest and latest logged dates, both
// empty when there are no entries.
type CycleLog struct {
	Entries   []CycleEntry `json:"logs"`
	StartDate string       `json:"start_date,omitempty"`
	EndDate   string       `json:"end_date,omitempty"`
}

// ParseDate validates s against DateLayout. Month and day must be two
// digits and describe a real calendar day from year 1 on. Surrounding
// whitespace is not part of the format.
func ParseDate(s string) (time.Time, error) {
	if len(s) != len(DateLayout) {
		return time.Time{}, ErrInvalidDate
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil || t.Year() < 1 {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// FormatDate renders t in DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// NewCycleLog derives the date bounds for entries. Entries whose date no
// longer parses are ignored for the bounds.
func NewCycleLog(entries []CycleEntry) CycleLog {
	log := CycleLog{Entries: entries}
	if log.Entries == nil {
		log.Entries = []CycleEntry{}
	}

	var minDate, maxDate time.Time
	found := false
	for _, e := range entries {
		d, err := ParseDate(e.Date)
		if err != nil {
			continue
		}
		if !found || d.Before(minDate) {
			minDate = d
		}
		if !found || d.After(maxDate) {
			maxDate = d
		}
		found = true
	}
	if found {
		log.StartDate = FormatDate(minDate)
		log.EndDate = FormatDate(maxDate)
	}
	return log
}
