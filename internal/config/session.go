package config

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// SessionEnvVar is the environment variable holding the master password for
// the current agent session.
const SessionEnvVar = "HOOSAT_AGENT_PASSWORD"

// DefaultSessionTimeout is how long an unlocked session stays valid.
const DefaultSessionTimeout = time.Hour

// ErrSessionExpired is returned when the cached password has timed out.
var ErrSessionExpired = errors.New("wallet session expired, unlock again")

// ErrNoPassword is returned when no password is available at all.
var ErrNoPassword = errors.New("no password set: unlock the wallet system first")

// Session caches the master password in memory with a timeout, mirroring it
// into the process environment so child invocations within the same agent
// session do not prompt again.
type Session struct {
	mu         sync.Mutex
	timeout    time.Duration
	password   []byte
	lastAccess time.Time
}

// NewSession creates a session with the given timeout.
// Zero or negative timeout falls back to DefaultSessionTimeout.
func NewSession(timeout time.Duration) *Session {
	if timeout <= 0 {
		timeout = DefaultSessionTimeout
	}
	return &Session{timeout: timeout}
}

// SetPassword stores the password and refreshes the session.
func (s *Session) SetPassword(password []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.password)
	s.password = make([]byte, len(password))
	copy(s.password, password)
	s.lastAccess = time.Now()
	os.Setenv(SessionEnvVar, string(password))
}

// Password returns a copy of the session password if the session is valid.
// Falls back to the environment variable when memory holds nothing.
// Caller must zero the returned slice after use.
func (s *Session) Password() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.password) > 0 {
		if time.Since(s.lastAccess) >= s.timeout {
			clear(s.password)
			s.password = nil
			return nil, ErrSessionExpired
		}
		s.lastAccess = time.Now()
		out := make([]byte, len(s.password))
		copy(out, s.password)
		return out, nil
	}

	if env := os.Getenv(SessionEnvVar); env != "" {
		s.password = []byte(env)
		s.lastAccess = time.Now()
		out := make([]byte, len(s.password))
		copy(out, s.password)
		return out, nil
	}

	return nil, ErrNoPassword
}

// Active reports whether a password is currently available.
func (s *Session) Active() bool {
	pw, err := s.Password()
	if err != nil {
		return false
	}
	clear(pw)
	return true
}

// Clear wipes the session password from memory and the environment.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.password)
	s.password = nil
	s.lastAccess = time.Time{}
	os.Unsetenv(SessionEnvVar)
}

// PromptForPassword prompts the user for the master password in the terminal.
// The password is read without echoing (hidden input).
// Caller must zero the returned slice after use.
func PromptForPassword(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: set " + SessionEnvVar + " or pass --password")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("password cannot be empty")
	}

	out := make([]byte, len(raw))
	copy(out, raw)
	clear(raw)
	return out, nil
}
