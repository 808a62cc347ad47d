// Package auth keeps the signed-in user's credential record in a signed
// cookie session.
//
// The record lives under a single fixed key and is JSON-encoded. Reading it
// never panics: a missing, malformed or token-less record is reported as
// ErrUnauthenticated.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	// SessionName is the cookie name of the application session.
	SessionName = "signdesk"
	// CredentialKey is the fixed key of the credential record.
	CredentialKey = "userInfo"

	sessionIDKey = "sid"
)

// ErrUnauthenticated is returned when no usable credential is stored.
var ErrUnauthenticated = errors.New("unauthenticated")

// Credential is the persisted credential record.
type Credential struct {
	AccessToken string `json:"accessToken"`
	Email       string `json:"email,omitempty"`
	Name        string `json:"name,omitempty"`
}

// ParseCredential decodes a stored record.
func ParseCredential(raw any) (Credential, error) {
	var text string
	switch v := raw.(type) {
	case nil:
		return Credential{}, ErrUnauthenticated
	case string:
		text = v
	case []byte:
		text = string(v)
	default:
		return Credential{}, fmt.Errorf("%w: credential record has type %T", ErrUnauthenticated, raw)
	}

	var c Credential
	if err := json.Unmarshal([]byte(text), &c); err != nil {
		return Credential{}, fmt.Errorf("%w: malformed credential record: %v", ErrUnauthenticated, err)
	}
	if c.AccessToken == "" {
		return Credential{}, fmt.Errorf("%w: credential record has no access token", ErrUnauthenticated)
	}
	return c, nil
}

// NewCookieStore creates the cookie session store used by the server.
func NewCookieStore(secret string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.MaxAge(86400 * 30) // 30 days
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = secure
	store.Options.SameSite = http.SameSiteLaxMode
	return store
}

// Store reads and writes the credential record and the session id.
type Store struct {
	sessions sessions.Store
	logger   *slog.Logger
}

// NewStore wraps a gorilla session store.
func NewStore(s sessions.Store, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{sessions: s, logger: logger}
}

func (s *Store) session(r *http.Request) *sessions.Session {
	sess, err := s.sessions.Get(r, SessionName)
	if err != nil {
		// A cookie that fails to decode (rotated secret, tampering) yields a
		// fresh session; the stale cookie is overwritten on the next save.
		s.logger.Debug("discarding undecodable session", "error", err)
	}
	return sess
}

// SessionID returns the id of the browser session, creating and saving one
// when the request has none. Call it before the response body is written.
func (s *Store) SessionID(w http.ResponseWriter, r *http.Request) (string, error) {
	sess := s.session(r)
	if id, ok := sess.Values[sessionIDKey].(string); ok && id != "" {
		return id, nil
	}

	id := uuid.New().String()
	sess.Values[sessionIDKey] = id
	if err := sess.Save(r, w); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}
	return id, nil
}

// Load returns the stored credential.
func (s *Store) Load(r *http.Request) (Credential, error) {
	return ParseCredential(s.session(r).Values[CredentialKey])
}

// Save stores c as the credential record.
func (s *Store) Save(w http.ResponseWriter, r *http.Request, c Credential) error {
	if c.AccessToken == "" {
		return fmt.Errorf("credential has no access token")
	}
	encoded, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode credential: %w", err)
	}

	sess := s.session(r)
	if _, ok := sess.Values[sessionIDKey].(string); !ok {
		sess.Values[sessionIDKey] = uuid.New().String()
	}
	sess.Values[CredentialKey] = string(encoded)
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Clear removes the credential record, keeping the session id.
func (s *Store) Clear(w http.ResponseWriter, r *http.Request) error {
	sess := s.session(r)
	delete(sess.Values, CredentialKey)
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
