// internal/session/session.go
//
// Player sessions for the HTTP transport.
// Responsibilities:
//   - Sign and verify HS256 session tokens (JWT) whose subject is the session ID.
//   - Read tokens from "Authorization: Bearer" or the session cookie.
//   - Middleware that attaches a session ID to every request, issuing a new one
//     when the caller has none or presents an invalid token.
//
// The signing key is derived from SESSION_SECRET with HKDF-SHA256, so the raw
// secret is never used as a MAC key directly.

package session

import (
	"context"
	"crypto/sha256"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/hkdf"
)

// Config holds the cookie and token settings.
type Config struct {
	Secret     string        // SESSION_SECRET
	TTL        time.Duration // token lifetime
	CookieName string        // COOKIE_NAME
	Secure     bool          // Secure + SameSite=None (production)
}

// Manager issues and verifies session tokens.
type Manager struct {
	key []byte
	cfg Config
}

// NewManager derives the signing key from cfg.Secret.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Secret == "" {
		return nil, errors.New("session: empty secret")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * 24 * time.Hour
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "endgame_session"
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(cfg.Secret), nil, []byte("endgame session v1")), key); err != nil {
		return nil, err
	}
	return &Manager{key: key, cfg: cfg}, nil
}

// Sign creates a token for session id valid until the returned time.
func (m *Manager) Sign(id string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(m.cfg.TTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString(m.key)
	return ss, exp, err
}

// Verify returns the session ID carried by a valid token.
func (m *Manager) Verify(token string) (string, error) {
	var claims jwt.RegisteredClaims
	t, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return m.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !t.Valid || claims.Subject == "" {
		return "", errors.New("session: invalid token")
	}
	return claims.Subject, nil
}

// setCookie writes the session cookie with appropriate security attributes.
func (m *Manager) setCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if m.cfg.Secure {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a token from the Authorization header or the session cookie.
func (m *Manager) bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(m.cfg.CookieName); err == nil {
		return c.Value
	}
	return ""
}

type ctxKey struct{}

// ID returns the session ID placed in ctx by Middleware.
func ID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// WithID returns a copy of ctx carrying session id.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// Middleware ensures every request carries a session ID. It never rejects a
// request: a missing or invalid token just starts a new session.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tok := m.bearerOrCookie(r); tok != "" {
			if id, err := m.Verify(tok); err == nil {
				next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
				return
			}
		}
		id := uuid.NewString()
		tok, exp, err := m.Sign(id)
		if err != nil {
			log.Error().Err(err).Msg("sign session")
			http.Error(w, `{"error":"session_failed"}`, http.StatusInternalServerError)
			return
		}
		m.setCookie(w, tok, exp)
		w.Header().Set("X-Session-Token", tok)
		next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
	})
}
