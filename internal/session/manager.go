// Package session owns the authentication state of console clients.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/admin-console/internal/domain"
	"github.com/spec-kit/admin-console/internal/events"
	"github.com/spec-kit/admin-console/internal/repository"
	"github.com/spec-kit/admin-console/internal/token"
)

// LoginRoute is where unauthenticated clients are sent.
const LoginRoute = "/login"

// Redirect is a navigation target signalled by a transition. Empty means
// stay where you are.
type Redirect string

// AuthHeader is the outbound Authorization header the manager keeps in step
// with IsAuthenticated.
type AuthHeader interface {
	SetBearer(token string)
	Clear()
}

// HomeRoute returns the landing route of role.
func HomeRoute(role domain.Role) (string, bool) {
	switch role {
	case domain.RoleAdmin:
		return "/admin", true
	case domain.RoleAgent:
		return "/agent", true
	case domain.RoleVendor:
		return "/vendor", true
	default:
		return "", false
	}
}

// Manager is the Auth Session Manager of one console client. Transitions are
// serialized; the last one to complete wins.
type Manager struct {
	clientID   string
	store      repository.TokenStore
	header     AuthHeader
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time

	once     sync.Once
	startup  Redirect
	mu       sync.RWMutex
	state    domain.Session
	lastSeen time.Time
}

// ManagerDeps bundles the collaborators of a Manager.
type ManagerDeps struct {
	ClientID   string
	Store      repository.TokenStore
	Header     AuthHeader
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Now        func() time.Time
}

// NewManager returns a manager in the Initializing state.
func NewManager(deps ManagerDeps) *Manager {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Store == nil {
		deps.Store = repository.NewMemoryTokenStore()
	}
	return &Manager{
		clientID:   deps.ClientID,
		store:      deps.Store,
		header:     deps.Header,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger.With(zap.String("client_id", deps.ClientID)),
		now:        deps.Now,
		state:      domain.Session{Loading: true},
		lastSeen:   deps.Now(),
	}
}

// Session returns a snapshot of the current state.
func (m *Manager) Session() domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snapshot := m.state
	if snapshot.User != nil {
		user := *snapshot.User
		snapshot.User = &user
	}
	return snapshot
}

// Init resolves the startup state from the token store. It runs once; later
// calls return the first call's redirect.
func (m *Manager) Init(ctx context.Context) Redirect {
	m.once.Do(func() {
		m.startup = m.resolve(ctx)
	})
	return m.startup
}

func (m *Manager) resolve(ctx context.Context) Redirect {
	m.mu.Lock()
	defer m.mu.Unlock()

	pair, ok := m.store.Read(ctx)
	if !ok {
		m.clearLocked()
		return ""
	}

	claims, err := token.Decode(pair.Token)
	if err != nil {
		m.logger.Warn("stored token is malformed", zap.Error(err))
		m.clearStoreLocked(ctx)
		m.clearLocked()
		m.publish(ctx, events.EventSessionCleared, nil, events.ReasonMalformed)
		return ""
	}

	if token.IsExpired(claims, m.now()) {
		m.logger.Info("stored token expired", zap.Time("expired_at", claims.Expiry()))
		m.clearStoreLocked(ctx)
		m.clearLocked()
		m.publish(ctx, events.EventSessionCleared, claims, events.ReasonExpired)
		return LoginRoute
	}

	m.establishLocked(claims, pair.Token)
	m.publish(ctx, events.EventSessionEstablished, claims, events.ReasonStartup)

	home, ok := HomeRoute(claims.Role)
	if !ok {
		return LoginRoute
	}
	return Redirect(home)
}

// Login establishes a session from token. The refresh token already in the
// store is kept. Malformed or expired tokens log the client out.
func (m *Manager) Login(ctx context.Context, raw string) error {
	claims, err := token.Decode(raw)
	if err != nil {
		m.reject(ctx, nil, events.ReasonMalformed)
		return err
	}
	if token.IsExpired(claims, m.now()) {
		m.reject(ctx, claims, events.ReasonExpired)
		return token.ErrExpiredToken
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	refresh := ""
	if pair, ok := m.store.Read(ctx); ok {
		refresh = pair.RefreshToken
	}
	if err := m.store.Save(ctx, raw, refresh); err != nil {
		m.logger.Warn("token store save failed; session kept in memory only", zap.Error(err))
	}

	m.establishLocked(claims, raw)
	m.logger.Info("session established", zap.String("role", string(claims.Role)))
	m.publish(ctx, events.EventSessionEstablished, claims, events.ReasonLogin)
	return nil
}

func (m *Manager) reject(ctx context.Context, claims *domain.Claims, reason string) {
	m.logger.Info("login rejected", zap.String("reason", reason))
	m.publish(ctx, events.EventLoginRejected, claims, reason)
	m.Logout(ctx)
}

// Logout clears the store, the session and the outbound header. Calling it
// on an unauthenticated client only returns the login redirect.
func (m *Manager) Logout(ctx context.Context) Redirect {
	m.mu.Lock()
	defer m.mu.Unlock()

	wasAuthenticated := m.state.IsAuthenticated
	previous := m.state.User

	m.clearStoreLocked(ctx)
	m.clearLocked()

	if wasAuthenticated {
		m.logger.Info("session cleared")
		m.publish(ctx, events.EventSessionCleared, previous, events.ReasonLogout)
	}
	return LoginRoute
}

// Touch marks the client as used at the manager's current time.
func (m *Manager) Touch() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastSeen = m.now()
}

// IdleSince returns when the client was last used.
func (m *Manager) IdleSince() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastSeen
}

// Store returns the client's token store.
func (m *Manager) Store() repository.TokenStore {
	return m.store
}

func (m *Manager) establishLocked(claims *domain.Claims, raw string) {
	m.state = domain.Session{User: claims, IsAuthenticated: true}
	if m.header != nil {
		m.header.SetBearer(raw)
	}
}

func (m *Manager) clearLocked() {
	m.state = domain.Session{}
	if m.header != nil {
		m.header.Clear()
	}
}

func (m *Manager) clearStoreLocked(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Warn("token store clear failed", zap.Error(err))
	}
}

func (m *Manager) publish(ctx context.Context, eventType events.EventType, claims *domain.Claims, reason string) {
	if m.dispatcher == nil {
		return
	}
	payload := events.SessionPayload{Reason: reason}
	if claims != nil {
		payload.Role = claims.Role
		payload.Subject = claims.Subject
		if payload.Subject == "" {
			payload.Subject = claims.UserID
		}
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ClientID:  m.clientID,
		Timestamp: m.now().UTC(),
		Payload:   payload,
	}
	if err := m.dispatcher.Publish(ctx, event); err != nil {
		m.logger.Warn("session event handler failed", zap.String("event", string(eventType)), zap.Error(err))
	}
}
