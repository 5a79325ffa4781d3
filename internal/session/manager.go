// Package session owns the authentication token and its lifecycle.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"gnotes/internal/service"
)

// MinPasswordLength is enforced locally before a register call.
const MinPasswordLength = 4

var (
	// ErrMissingFields is returned when username or password is blank.
	ErrMissingFields = errors.New("please fill in all fields")

	// ErrPasswordTooShort is returned by Register for short passwords.
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", MinPasswordLength)

	// ErrInvalidCredentials is returned when the backend rejects a login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// CredentialError is a login the backend refused. It matches ErrInvalidCredentials.
type CredentialError struct {
	Detail string
	Err    error
}

func (e *CredentialError) Error() string { return e.Detail }

func (e *CredentialError) Is(target error) bool { return target == ErrInvalidCredentials }

func (e *CredentialError) Unwrap() error { return e.Err }

// TokenStore persists the token across process restarts.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// Listener observes status transitions. token is "" unless authenticated.
type Listener func(status Status, token string)

// Manager owns the session token and derives the logged-in status.
type Manager struct {
	svc   service.Service
	store TokenStore
	log   *slog.Logger

	mu        sync.Mutex
	token     string
	status    Status
	listeners []*Listener
}

// NewManager creates a Manager in the anonymous state.
// Call Restore to hydrate it from the token store.
func NewManager(svc service.Service, store TokenStore, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Manager{
		svc:   svc,
		store: store,
		log:   log,
	}
}

// Token returns the current token, or "" when not authenticated.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Status returns the current status.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Subscribe registers fn for every status transition.
// Listeners run synchronously, in subscription order, outside the manager lock.
func (m *Manager) Subscribe(fn Listener) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l := &fn
	m.listeners = append(m.listeners, l)
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, cur := range m.listeners {
			if cur == l {
				m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
				return
			}
		}
	}
}

// Login exchanges credentials for a token and persists it.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return ErrMissingFields
	}

	token, err := m.svc.Login(ctx, service.Credentials{Username: username, Password: password})
	if err != nil {
		if apiErr, ok := service.AsAPIError(err); ok {
			detail := apiErr.Message()
			if detail == "" {
				detail = "Invalid credentials"
			}
			return &CredentialError{Detail: detail, Err: err}
		}
		return err
	}

	if err := m.store.Save(token); err != nil {
		m.log.Warn("failed to persist token", "err", err)
	}
	m.log.Debug("logged in", "username", username)
	m.transition(Authenticated, token)
	return nil
}

// Register creates an account. It never changes the session.
func (m *Manager) Register(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return ErrMissingFields
	}
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return m.svc.Register(ctx, service.Credentials{Username: username, Password: password})
}

// Logout clears the token locally, then notifies the backend on a best-effort basis.
// Local state is authoritative: a backend failure does not reverse the logout.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	old := m.token
	m.mu.Unlock()

	if err := m.store.Clear(); err != nil {
		m.log.Warn("failed to remove persisted token", "err", err)
	}
	m.transition(Anonymous, "")

	if old == "" {
		return
	}
	if err := m.svc.Logout(ctx, old); err != nil {
		m.log.Debug("backend logout failed", "err", err)
	}
}

// Restore hydrates the session from the token store and validates it once.
// There is no profile endpoint, so an authenticated list-notes call is the probe.
// Any probe failure discards the token, transient transport failures included.
func (m *Manager) Restore(ctx context.Context) Status {
	token, err := m.store.Load()
	if err != nil {
		m.log.Warn("failed to read persisted token", "err", err)
	}
	if token == "" {
		m.transition(Anonymous, "")
		return Anonymous
	}

	m.transition(Authenticating, "")
	if _, err := m.svc.ListNotes(ctx, token, ""); err != nil {
		m.log.Debug("persisted token rejected", "err", err)
		m.transition(Invalid, "")
		if err := m.store.Clear(); err != nil {
			m.log.Warn("failed to remove persisted token", "err", err)
		}
		m.transition(Anonymous, "")
		return Anonymous
	}

	m.transition(Authenticated, token)
	return Authenticated
}

func (m *Manager) transition(status Status, token string) {
	m.mu.Lock()
	m.status = status
	m.token = token
	listeners := make([]Listener, len(m.listeners))
	for i, l := range m.listeners {
		listeners[i] = *l
	}
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(status, token)
	}
}
