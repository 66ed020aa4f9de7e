package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/admin-console/internal/domain"
	"github.com/spec-kit/admin-console/internal/events"
	"github.com/spec-kit/admin-console/internal/remote"
	"github.com/spec-kit/admin-console/internal/repository"
	"github.com/spec-kit/admin-console/internal/token"
	"github.com/spec-kit/admin-console/internal/token/tokentest"
)

var fixedNow = time.Unix(1800000000, 0)

type fixture struct {
	manager *Manager
	store   *repository.MemoryTokenStore
	header  *remote.AuthHeader
	events  *[]events.Event
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := repository.NewMemoryTokenStore()
	header := remote.NewAuthHeader()
	dispatcher := events.NewInMemoryDispatcher()

	var (
		mu       sync.Mutex
		recorded []events.Event
	)
	record := func(_ context.Context, e events.Event) error {
		mu.Lock()
		defer mu.Unlock()
		recorded = append(recorded, e)
		return nil
	}
	dispatcher.Subscribe(events.EventSessionEstablished, record)
	dispatcher.Subscribe(events.EventSessionCleared, record)
	dispatcher.Subscribe(events.EventLoginRejected, record)

	m := NewManager(ManagerDeps{
		ClientID:   "client-1",
		Store:      store,
		Header:     header,
		Dispatcher: dispatcher,
		Now:        func() time.Time { return fixedNow },
	})
	return fixture{manager: m, store: store, header: header, events: &recorded}
}

func issue(t *testing.T, role domain.Role, ttl time.Duration) string {
	t.Helper()
	return tokentest.MustIssue(t, domain.Claims{
		Subject:   "sub-" + string(role),
		UserID:    "id-" + string(role),
		Role:      role,
		ExpiresAt: fixedNow.Add(ttl).Unix(),
	})
}

func assertLoggedOut(t *testing.T, f fixture) {
	t.Helper()
	s := f.manager.Session()
	assert.False(t, s.IsAuthenticated)
	assert.False(t, s.Loading)
	assert.Nil(t, s.User)
	_, ok := f.store.Read(context.Background())
	assert.False(t, ok, "token store should be empty")
	_, ok = f.header.Value()
	assert.False(t, ok, "outbound header should be absent")
}

func TestNewManagerStartsLoading(t *testing.T) {
	f := newFixture(t)
	s := f.manager.Session()
	assert.True(t, s.Loading)
	assert.False(t, s.IsAuthenticated)
	assert.Nil(t, s.User)
}

func TestInitWithoutToken(t *testing.T) {
	f := newFixture(t)

	redirect := f.manager.Init(context.Background())

	assert.Empty(t, redirect)
	assertLoggedOut(t, f)
	assert.Empty(t, *f.events)
}

func TestInitWithValidAdminToken(t *testing.T) {
	f := newFixture(t)
	raw := issue(t, domain.RoleAdmin, time.Hour)
	require.NoError(t, f.store.Save(context.Background(), raw, "refresh"))

	redirect := f.manager.Init(context.Background())

	assert.Equal(t, Redirect("/admin"), redirect)
	s := f.manager.Session()
	require.True(t, s.IsAuthenticated)
	assert.Equal(t, domain.RoleAdmin, s.User.Role)
	value, ok := f.header.Value()
	require.True(t, ok)
	assert.Equal(t, "Bearer "+raw, value)

	require.Len(t, *f.events, 1)
	assert.Equal(t, events.EventSessionEstablished, (*f.events)[0].Type)
	assert.Equal(t, events.ReasonStartup, (*f.events)[0].Payload.Reason)
	assert.Equal(t, "client-1", (*f.events)[0].ClientID)
}

func TestInitWithExpiredToken(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Save(context.Background(), issue(t, domain.RoleAgent, -time.Minute), "refresh"))

	redirect := f.manager.Init(context.Background())

	assert.Equal(t, Redirect(LoginRoute), redirect)
	assertLoggedOut(t, f)
	require.Len(t, *f.events, 1)
	assert.Equal(t, events.ReasonExpired, (*f.events)[0].Payload.Reason)
}

func TestInitWithMalformedToken(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Save(context.Background(), "garbage", "refresh"))

	redirect := f.manager.Init(context.Background())

	assert.Empty(t, redirect)
	assertLoggedOut(t, f)
}

func TestInitWithUnknownRoleRedirectsToLogin(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Save(context.Background(), issue(t, "Auditor", time.Hour), ""))

	redirect := f.manager.Init(context.Background())

	assert.Equal(t, Redirect(LoginRoute), redirect)
	assert.True(t, f.manager.Session().IsAuthenticated)
}

func TestInitRunsOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Save(ctx, issue(t, domain.RoleVendor, time.Hour), ""))

	first := f.manager.Init(ctx)
	f.manager.Logout(ctx)
	second := f.manager.Init(ctx)

	assert.Equal(t, first, second)
	assert.False(t, f.manager.Session().IsAuthenticated)
}

func TestLoginWithValidToken(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleAgent, domain.RoleVendor} {
		t.Run(string(role), func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			f.manager.Init(ctx)
			raw := issue(t, role, time.Hour)

			require.NoError(t, f.manager.Login(ctx, raw))

			s := f.manager.Session()
			assert.True(t, s.IsAuthenticated)
			assert.Equal(t, role, s.User.Role)
			value, ok := f.header.Value()
			require.True(t, ok)
			assert.Equal(t, "Bearer "+raw, value)
			pair, ok := f.store.Read(ctx)
			require.True(t, ok)
			assert.Equal(t, raw, pair.Token)
		})
	}
}

func TestLoginKeepsStoredRefreshToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.manager.Init(ctx)
	raw := issue(t, domain.RoleAgent, time.Hour)
	require.NoError(t, f.store.Save(ctx, raw, "refresh-1"))

	require.NoError(t, f.manager.Login(ctx, raw))

	pair, ok := f.store.Read(ctx)
	require.True(t, ok)
	assert.Equal(t, "refresh-1", pair.RefreshToken)
}

func TestLoginWithExpiredToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.manager.Init(ctx)
	require.NoError(t, f.manager.Login(ctx, issue(t, domain.RoleAdmin, time.Hour)))

	err := f.manager.Login(ctx, issue(t, domain.RoleAdmin, -time.Second))

	assert.ErrorIs(t, err, token.ErrExpiredToken)
	assertLoggedOut(t, f)

	types := make([]events.EventType, 0, len(*f.events))
	for _, e := range *f.events {
		types = append(types, e.Type)
	}
	assert.Equal(t, []events.EventType{
		events.EventSessionEstablished,
		events.EventLoginRejected,
		events.EventSessionCleared,
	}, types)
}

func TestLoginWithMalformedToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.manager.Init(ctx)

	err := f.manager.Login(ctx, "not.a.jwt")

	assert.ErrorIs(t, err, token.ErrMalformedToken)
	assertLoggedOut(t, f)
}

func TestLogoutIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.manager.Init(ctx)
	require.NoError(t, f.store.Save(ctx, "x", "refresh"))
	require.NoError(t, f.manager.Login(ctx, issue(t, domain.RoleVendor, time.Hour)))

	for i := 0; i < 3; i++ {
		assert.Equal(t, Redirect(LoginRoute), f.manager.Logout(ctx))
		assertLoggedOut(t, f)
	}

	cleared := 0
	for _, e := range *f.events {
		if e.Type == events.EventSessionCleared {
			cleared++
		}
	}
	assert.Equal(t, 1, cleared)
}

func TestLastTransitionWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.manager.Init(ctx)
	raw := issue(t, domain.RoleAdmin, time.Hour)

	require.NoError(t, f.manager.Login(ctx, raw))
	f.manager.Logout(ctx)
	assertLoggedOut(t, f)

	f.manager.Logout(ctx)
	require.NoError(t, f.manager.Login(ctx, raw))
	assert.True(t, f.manager.Session().IsAuthenticated)
}

func TestHeaderNeverDivergesUnderConcurrency(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.manager.Init(ctx)
	raw := issue(t, domain.RoleAgent, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = f.manager.Login(ctx, raw)
		}()
		go func() {
			defer wg.Done()
			f.manager.Logout(ctx)
		}()
	}
	wg.Wait()

	s := f.manager.Session()
	_, hasHeader := f.header.Value()
	_, hasToken := f.store.Read(ctx)
	assert.Equal(t, s.IsAuthenticated, hasHeader)
	assert.Equal(t, s.IsAuthenticated, hasToken)
}

type failingStore struct{}

func (failingStore) Save(context.Context, string, string) error {
	return repository.ErrStorageUnavailable
}
func (failingStore) Read(context.Context) (repository.TokenPair, bool) {
	return repository.TokenPair{}, false
}
func (failingStore) Clear(context.Context) error { return repository.ErrStorageUnavailable }

func TestStorageUnavailableDegradesGracefully(t *testing.T) {
	header := remote.NewAuthHeader()
	m := NewManager(ManagerDeps{
		ClientID: "c",
		Store:    failingStore{},
		Header:   header,
		Now:      func() time.Time { return fixedNow },
	})
	ctx := context.Background()

	assert.Empty(t, m.Init(ctx))
	assert.False(t, m.Session().IsAuthenticated)

	require.NoError(t, m.Login(ctx, issue(t, domain.RoleAdmin, time.Hour)))
	assert.True(t, m.Session().IsAuthenticated)

	assert.Equal(t, Redirect(LoginRoute), m.Logout(ctx))
	_, ok := header.Value()
	assert.False(t, ok)
}

func TestSessionSnapshotIsDetached(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.manager.Init(ctx)
	require.NoError(t, f.manager.Login(ctx, issue(t, domain.RoleAdmin, time.Hour)))

	snapshot := f.manager.Session()
	snapshot.User.Role = domain.RoleVendor

	assert.Equal(t, domain.RoleAdmin, f.manager.Session().User.Role)
}

func TestHomeRoute(t *testing.T) {
	cases := map[domain.Role]string{
		domain.RoleAdmin:  "/admin",
		domain.RoleAgent:  "/agent",
		domain.RoleVendor: "/vendor",
	}
	for role, want := range cases {
		got, ok := HomeRoute(role)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := HomeRoute("Guest")
	assert.False(t, ok)
}
