package client

import (
	"context"
	"sync"
)

// State enumerates the session lifecycle.
type State int

const (
	StateUnknown State = iota
	StateChecking
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable view of the session at one point in time.
// IsAuthenticated holds exactly when a token is held and the last
// identity fetch for it succeeded.
type Snapshot struct {
	State           State
	Identity        *Identity
	IsAuthenticated bool
}

// SessionManager owns the client-side authentication state. All
// mutations funnel through Initialize, Login, Logout and the 401
// handler; consumers read state through Snapshot. A monotonic
// generation counter discards completions that were superseded by a
// later transition, so an in-flight login finishing after a logout can
// never resurrect the session.
type SessionManager struct {
	client   *Client
	notifier Notifier

	mu       sync.Mutex
	state    State
	identity *Identity
	gen      uint64
}

// NewSessionManager wires a session manager to a client. The manager
// registers itself as the client's unauthorized handler.
func NewSessionManager(c *Client, notifier Notifier) *SessionManager {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	m := &SessionManager{
		client:   c,
		notifier: notifier,
		state:    StateUnknown,
	}
	c.bindUnauthorized(m.handleUnauthorized)
	return m
}

// Snapshot returns the current session view.
func (m *SessionManager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		State:           m.state,
		Identity:        m.identity,
		IsAuthenticated: m.state == StateAuthenticated,
	}
}

// Initialize resolves a persisted token into a session. With no token
// the session is Anonymous immediately; otherwise the state is
// "checking" until the identity fetch settles. A failed fetch clears
// the persisted token.
func (m *SessionManager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	token, err := m.client.TokenStore().Load()
	if err != nil || token == "" {
		m.state = StateAnonymous
		m.identity = nil
		m.mu.Unlock()
		return err
	}
	m.gen++
	gen := m.gen
	m.state = StateChecking
	m.mu.Unlock()

	identity, fetchErr := m.client.Me(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen {
		// superseded by a later transition
		return nil
	}
	if fetchErr != nil {
		_ = m.client.TokenStore().Clear()
		m.state = StateAnonymous
		m.identity = nil
		return nil
	}
	m.state = StateAuthenticated
	m.identity = identity
	return nil
}

// Login performs a single authentication attempt. On success the token
// is persisted and the identity fetched; on failure the session stays
// Anonymous and the server error is returned verbatim.
func (m *SessionManager) Login(ctx context.Context, username, password string) error {
	m.mu.Lock()
	m.gen++
	gen := m.gen
	m.mu.Unlock()

	tok, err := m.client.Login(ctx, username, password)
	if err != nil {
		return err
	}

	m.mu.Lock()
	if m.gen != gen {
		m.mu.Unlock()
		return nil
	}
	if err := m.client.TokenStore().Save(tok.AccessToken); err != nil {
		m.mu.Unlock()
		return err
	}
	m.mu.Unlock()

	identity, err := m.client.Me(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen {
		return nil
	}
	if err != nil {
		_ = m.client.TokenStore().Clear()
		m.state = StateAnonymous
		m.identity = nil
		return err
	}
	m.state = StateAuthenticated
	m.identity = identity
	return nil
}

// Logout clears the persisted token and identity synchronously. It is
// idempotent; the notification fires once per call regardless.
func (m *SessionManager) Logout() {
	m.mu.Lock()
	m.gen++
	_ = m.client.TokenStore().Clear()
	m.state = StateAnonymous
	m.identity = nil
	m.mu.Unlock()

	m.notifier.Notify("You have been logged out.")
}

// handleUnauthorized is invoked by the client on any 401 response. The
// token slot is already cleared at that point; this transition only
// fires a notification when it actually ended an authenticated session,
// so parallel 401s cannot produce duplicate logout notifications.
func (m *SessionManager) handleUnauthorized() {
	m.mu.Lock()
	if m.state != StateAuthenticated {
		m.mu.Unlock()
		return
	}
	m.gen++
	m.state = StateAnonymous
	m.identity = nil
	m.mu.Unlock()

	m.notifier.Notify("Your session has expired. Please log in again.")
}
