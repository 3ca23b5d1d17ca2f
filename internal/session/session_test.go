package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matryer/is"
)

func newManager(t *testing.T, secret string) *Manager {
	t.Helper()
	m, err := NewManager(Config{Secret: secret, TTL: time.Hour})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestSignVerify(t *testing.T) {
	is := is.New(t)
	m := newManager(t, "s3cret")
	tok, exp, err := m.Sign("abc")
	is.NoErr(err)
	is.True(exp.After(time.Now()))

	id, err := m.Verify(tok)
	is.NoErr(err)
	is.Equal(id, "abc")

	_, err = newManager(t, "other").Verify(tok)
	is.True(err != nil)
	_, err = m.Verify("garbage")
	is.True(err != nil)
}

func TestEmptySecret(t *testing.T) {
	is := is.New(t)
	_, err := NewManager(Config{})
	is.True(err != nil)
}

func echoID(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(ID(r.Context())))
}

func TestMiddlewareIssuesSession(t *testing.T) {
	is := is.New(t)
	m := newManager(t, "s3cret")
	h := m.Middleware(http.HandlerFunc(echoID))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	is.Equal(rec.Code, http.StatusOK)
	id := rec.Body.String()
	is.True(id != "")

	cookies := rec.Result().Cookies()
	is.Equal(len(cookies), 1)
	is.Equal(cookies[0].Name, "endgame_session")
	is.True(cookies[0].HttpOnly)

	// cookie round trip keeps the session
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	is.Equal(rec.Body.String(), id)
	is.Equal(len(rec.Result().Cookies()), 0)

	// bearer header works too
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+cookies[0].Value)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	is.Equal(rec.Body.String(), id)
}

func TestMiddlewareReplacesInvalidToken(t *testing.T) {
	is := is.New(t)
	m := newManager(t, "s3cret")
	h := m.Middleware(http.HandlerFunc(echoID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	is.Equal(rec.Code, http.StatusOK)
	is.True(rec.Body.String() != "")
	is.True(rec.Header().Get("X-Session-Token") != "")
}
