package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/admin-console/internal/domain"
	"github.com/spec-kit/admin-console/internal/remote"
	"github.com/spec-kit/admin-console/internal/repository"
)

func TestRegistryReportsStartupRedirectOnce(t *testing.T) {
	stores := repository.NewMemoryTokenStores()
	ctx := context.Background()
	require.NoError(t, stores.For("b1").Save(ctx, issue(t, domain.RoleAgent, time.Hour), "r"))

	reg := NewRegistry(RegistryDeps{
		Stores: stores,
		API:    remote.NewClient("http://api.invalid", time.Second),
		Now:    func() time.Time { return fixedNow },
	})

	client, redirect := reg.Get(ctx, "b1")
	assert.Equal(t, Redirect("/agent"), redirect)
	assert.True(t, client.Manager.Session().IsAuthenticated)

	value, ok := client.API.Auth().Value()
	require.True(t, ok)
	assert.Contains(t, value, "Bearer ")

	again, redirect := reg.Get(ctx, "b1")
	assert.Same(t, client, again)
	assert.Empty(t, redirect)
}

func TestRegistryIsolatesClients(t *testing.T) {
	reg := NewRegistry(RegistryDeps{
		API: remote.NewClient("http://api.invalid", time.Second),
		Now: func() time.Time { return fixedNow },
	})
	ctx := context.Background()

	a, _ := reg.Get(ctx, "a")
	b, _ := reg.Get(ctx, "b")
	require.NoError(t, a.Manager.Login(ctx, issue(t, domain.RoleAdmin, time.Hour)))

	assert.True(t, a.Manager.Session().IsAuthenticated)
	assert.False(t, b.Manager.Session().IsAuthenticated)
	_, ok := b.API.Auth().Value()
	assert.False(t, ok)
	assert.Equal(t, 2, reg.Len())
}

func TestRegistrySweep(t *testing.T) {
	now := fixedNow
	reg := NewRegistry(RegistryDeps{Now: func() time.Time { return now }})
	ctx := context.Background()

	reg.Get(ctx, "old")
	now = now.Add(2 * time.Hour)
	reg.Get(ctx, "fresh")

	assert.Equal(t, 1, reg.Sweep(time.Hour))
	assert.Equal(t, 1, reg.Len())

	_, redirect := reg.Get(ctx, "old")
	assert.Empty(t, redirect)
	assert.Equal(t, 2, reg.Len())
}

func TestSweepSkipsHeldClients(t *testing.T) {
	now := fixedNow
	reg := NewRegistry(RegistryDeps{Now: func() time.Time { return now }})
	ctx := context.Background()

	held, _, release := reg.Acquire(ctx, "busy")
	now = now.Add(2 * time.Hour)

	assert.Zero(t, reg.Sweep(time.Hour))
	again, _ := reg.Get(ctx, "busy")
	assert.Same(t, held, again)

	release()
	release()
	now = now.Add(2 * time.Hour)
	assert.Equal(t, 1, reg.Sweep(time.Hour))
	assert.Zero(t, reg.Len())
}
