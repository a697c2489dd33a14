package handler

import (
	"github.com/cycletrack/cycle-tracker/internal/api/flash"
	"github.com/cycletrack/cycle-tracker/internal/core/domain"
)

// Messages shown to the user after an action.
const (
	msgUsernameTaken   = "Username already exists."
	msgAccountCreated  = "Account created! Welcome, "
	msgLoggedIn        = "Logged in successfully! Welcome, "
	msgBadCredentials  = "Invalid username or password."
	msgLoggedOut       = "You have been logged out."
	msgInvalidDate     = "Invalid date format. Use MM/DD/YYYY."
	msgEntryLogged     = "Date and symptom logged!"
	msgInvalidEntry    = "Invalid log entry."
	msgEntryUpdated    = "Log entry updated."
	msgEntriesCleared  = "All logged dates for the current cycle have been removed."
	msgNoteSaved       = "Note saved!"
	msgCalendarLogged  = "Date logged from calendar!"
	msgRemovedEntryFmt = "Removed log for %s."
	msgPasswordTooLong = "Password must be at most 72 bytes."
)

// Page names reported in rendered views.
const (
	pageWelcome  = "welcome"
	pageHome     = "home"
	pageRegister = "register"
	pageLogin    = "login"
	pageLogDate  = "log_date"
	pageEditLog  = "edit_log"
	pageCalendar = "calendar"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// view is the envelope of every rendered page. Messages holds the status
// messages queued since the last rendered page.
type view struct {
	Page     string          `json:"page"`
	Messages []flash.Message `json:"messages"`
	Data     any             `json:"data,omitempty"`
}

// --- Form types ---

type credentialsForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type entryForm struct {
	Date    string `form:"date"`
	Symptom string `form:"symptom"`
}

// --- View payloads ---

type userData struct {
	Username string `json:"username,omitempty"`
}

type editLogData struct {
	Index int               `json:"index"`
	Entry domain.CycleEntry `json:"entry"`
}
