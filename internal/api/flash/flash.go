// Package flash carries short status messages from a mutating request to
// the next rendered response. Messages queued during a request are written
// to a cookie just before the response headers go out; rendering a view
// consumes them and expires the cookie.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	CookieName = "flash"

	LevelInfo  = "info"
	LevelError = "error"

	pendingKey  = "flash.pending"
	consumedKey = "flash.consumed"
)

// Message is one status line shown to the user.
type Message struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

type state struct {
	pending  []Message
	consumed bool
}

// Info queues an informational message for the next rendered response.
func Info(c echo.Context, text string) {
	add(c, Message{Level: LevelInfo, Text: text})
}

// Error queues an error message for the next rendered response.
func Error(c echo.Context, text string) {
	add(c, Message{Level: LevelError, Text: text})
}

// Consume returns messages carried over from earlier requests followed by
// those queued during this one, and clears both.
func Consume(c echo.Context) []Message {
	st := stateOf(c)
	msgs := decode(c)
	msgs = append(msgs, st.pending...)
	st.pending = nil
	st.consumed = true
	if msgs == nil {
		msgs = []Message{}
	}
	return msgs
}

func add(c echo.Context, m Message) {
	st := stateOf(c)
	st.pending = append(st.pending, m)
}

func stateOf(c echo.Context) *state {
	if st, ok := c.Get(pendingKey).(*state); ok {
		return st
	}
	st := &state{}
	c.Set(pendingKey, st)
	c.Response().Before(func() { writeCookie(c, st) })
	return st
}

func writeCookie(c echo.Context, st *state) {
	if len(st.pending) == 0 {
		if st.consumed {
			c.SetCookie(&http.Cookie{Name: CookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
		}
		return
	}

	// Messages not consumed yet in this request stay queued behind any
	// that are still waiting from earlier requests.
	msgs := st.pending
	if !st.consumed {
		msgs = append(decode(c), msgs...)
	}
	raw, err := json.Marshal(msgs)
	if err != nil {
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func decode(c echo.Context) []Message {
	if st, ok := c.Get(pendingKey).(*state); ok && st.consumed {
		return nil
	}
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var msgs []Message
	if err := json.Unmarshal(raw, &msgs); err != nil {
		return nil
	}
	return msgs
}
