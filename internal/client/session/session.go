// Package session owns the authentication token lifecycle and the resolved
// current-user profile. It is the single mutator of session state; the only
// piece that survives a restart is the token, via a TokenStore.
package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"pocketbook/internal/api"
	"pocketbook/internal/client"
)

type Status int

const (
	// StatusAnonymous means no token and no user.
	StatusAnonymous Status = iota
	// StatusResolving means a token is held and the profile fetch is in flight.
	StatusResolving
	// StatusAuthenticated means both token and user are set.
	StatusAuthenticated
	// StatusInvalid means the session was force-cleared after the server
	// rejected the token. Token and user are gone, as in StatusAnonymous.
	StatusInvalid
)

func (s Status) String() string {
	switch s {
	case StatusAnonymous:
		return "anonymous"
	case StatusResolving:
		return "resolving"
	case StatusAuthenticated:
		return "authenticated"
	case StatusInvalid:
		return "invalid"
	}

	return "unknown"
}

// Manager implements client.CredentialSource. Invariant: user != nil implies
// token != ""; status is StatusAuthenticated iff both are set.
type Manager struct {
	client *client.Client
	tokens TokenStore

	mu       sync.Mutex
	token    string
	user     *api.User
	status   Status
	onChange func(Status)
}

// NewManager reads the persisted token. A restored token alone does not make
// the session authenticated; Resolve must confirm it against the server.
func NewManager(c *client.Client, tokens TokenStore) *Manager {
	m := &Manager{client: c, tokens: tokens, status: StatusAnonymous}

	token, err := tokens.Load()
	if err != nil {
		slog.Warn("could not read persisted token", "error", err)
		return m
	}

	m.token = strings.TrimSpace(token)

	return m
}

// OnChange registers the hook fired after every status transition. The
// frontend uses it to navigate; 401 anywhere lands on the login screen.
func (m *Manager) OnChange(fn func(Status)) {
	m.mu.Lock()
	m.onChange = fn
	m.mu.Unlock()
}

// Token implements client.CredentialSource.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.token
}

// Invalidate implements client.CredentialSource: the server rejected the
// token, so the session is cleared from whatever state it was in.
func (m *Manager) Invalidate() {
	m.clear(StatusInvalid)
}

// Logout clears token and user. Idempotent; callable with no active session.
func (m *Manager) Logout() {
	m.clear(StatusAnonymous)
}

func (m *Manager) clear(to Status) {
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.status = to
	notify := m.onChange
	m.mu.Unlock()

	if err := m.tokens.Clear(); err != nil {
		slog.Warn("could not clear persisted token", "error", err)
	}

	if notify != nil {
		notify(to)
	}
}

// Login exchanges credentials for a token and user snapshot. On failure the
// session stays anonymous and no partial token is ever stored.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	var payload api.AuthPayload

	err := m.client.Do(ctx, http.MethodPost, "/api/auth/sign-in", nil,
		api.SignInRequest{Email: email, Password: password}, &payload)
	if err != nil {
		return err
	}

	m.establish(payload)

	return nil
}

// Register creates an account and signs in, symmetric to Login.
func (m *Manager) Register(ctx context.Context, req api.SignUpRequest) error {
	var payload api.AuthPayload

	err := m.client.Do(ctx, http.MethodPost, "/api/auth/sign-up", nil, req, &payload)
	if err != nil {
		return err
	}

	m.establish(payload)

	return nil
}

func (m *Manager) establish(payload api.AuthPayload) {
	user := payload.User

	m.mu.Lock()
	m.token = payload.Token
	m.user = &user
	m.status = StatusAuthenticated
	notify := m.onChange
	m.mu.Unlock()

	if err := m.tokens.Save(payload.Token); err != nil {
		slog.Warn("could not persist token", "error", err)
	}

	if notify != nil {
		notify(StatusAuthenticated)
	}
}

// Resolve fetches the current user for a restored token. Any failure ends
// with a cleared session: a corrupted or expired persisted token must never
// leave the session half-authenticated.
func (m *Manager) Resolve(ctx context.Context) error {
	m.mu.Lock()

	if m.token == "" {
		m.mu.Unlock()
		return nil
	}

	if m.user != nil {
		m.mu.Unlock()
		return nil
	}

	m.status = StatusResolving
	notify := m.onChange
	m.mu.Unlock()

	if notify != nil {
		notify(StatusResolving)
	}

	var payload api.UserPayload

	err := m.client.Do(ctx, http.MethodGet, "/api/users/current", nil, nil, &payload)
	if err != nil {
		// A 401 has already cleared the session via Invalidate.
		if !errors.Is(err, client.ErrUnauthorized) {
			m.Logout()
		}

		return err
	}

	user := payload.User

	m.mu.Lock()
	m.user = &user
	m.status = StatusAuthenticated
	notify = m.onChange
	m.mu.Unlock()

	if notify != nil {
		notify(StatusAuthenticated)
	}

	return nil
}

func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.status
}

func (m *Manager) Authenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.status == StatusAuthenticated
}

// User returns the resolved profile snapshot, or nil when not authenticated.
func (m *Manager) User() *api.User {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.user == nil {
		return nil
	}

	u := *m.user

	return &u
}

// HasToken reports whether a (possibly unverified) token is held, e.g. one
// restored from disk that Resolve has not confirmed yet.
func (m *Manager) HasToken() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.token != ""
}
