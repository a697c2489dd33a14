package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cycletrack/cycle-tracker/internal/api/flash"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

// signedIn returns a context for req as seen after the session middleware
// accepted username.
func signedIn(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, username string) echo.Context {
	c := e.NewContext(req, rec)
	c.Set("username", username)
	return c
}

func withIndex(c echo.Context, index string) echo.Context {
	c.SetParamNames("index")
	c.SetParamValues(index)
	return c
}

// flashed returns the messages the next rendered page would show after rec.
func flashed(e *echo.Echo, rec *httptest.ResponseRecorder) []flash.Message {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range rec.Result().Cookies() {
		req.AddCookie(ck)
	}
	return flash.Consume(e.NewContext(req, httptest.NewRecorder()))
}

func expectRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != location {
		t.Fatalf("expected redirect to %q, got %q", location, got)
	}
}

func expectFlash(t *testing.T, e *echo.Echo, rec *httptest.ResponseRecorder, level, text string) {
	t.Helper()
	msgs := flashed(e, rec)
	if len(msgs) != 1 || msgs[0].Level != level || msgs[0].Text != text {
		t.Fatalf("expected one %s message %q, got %+v", level, text, msgs)
	}
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}
