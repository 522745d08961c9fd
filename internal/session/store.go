// Package session persists the bearer credential and user profile across
// client invocations, the way a browser tab keeps them in local storage.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/supportdesk-io/supportdesk-cli/internal/models"
)

const sessionFile = "session.json"

// Session is the stored credential plus the profile it belongs to.
type Session struct {
	Token string             `json:"token"`
	User  models.UserProfile `json:"user"`
}

// Expired reports whether the token's exp claim has passed. The claim is
// read without signature verification: the client holds no key, and the
// backend re-validates every request anyway. A token without a readable exp
// claim is treated as live and left for the server to reject.
func (s *Session) Expired() bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Now().After(exp.Time)
}

// Store is a file-backed session store. The zero value is not usable; use
// NewStore.
type Store struct {
	path string

	mu      sync.RWMutex
	current *Session
}

// NewStore loads the session record from dir, if one exists. The read
// happens synchronously at construction so callers can gate on Get
// immediately.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	s := &Store{path: filepath.Join(dir, sessionFile)}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// A corrupt session file is equivalent to being logged out.
		_ = os.Remove(s.path)
		return s, nil
	}
	if sess.Token != "" {
		s.current = &sess
	}
	return s, nil
}

// Set stores the credential and profile and persists them to disk.
func (s *Store) Set(token string, user models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &Session{Token: token, User: user}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	s.current = sess
	return nil
}

// Get returns the current session, or nil when not logged in.
func (s *Store) Get() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	cp := *s.current
	return &cp
}

// Token returns the stored bearer credential, or "" when not logged in.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// Clear removes the session from memory and disk. Clearing an already-empty
// store is a no-op; the first caller wins when a 401 races another.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	s.current = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
