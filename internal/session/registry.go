package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/admin-console/internal/events"
	"github.com/spec-kit/admin-console/internal/remote"
	"github.com/spec-kit/admin-console/internal/repository"
)

// Client is everything the console keeps for one browser: its session
// manager and an API client carrying its Authorization header.
type Client struct {
	ID      string
	Manager *Manager
	API     *remote.Client

	// requests currently holding the client; guarded by Registry.mu
	holds int
}

// Registry creates console clients on first use and initializes each
// exactly once.
type Registry struct {
	stores     repository.TokenStores
	api        *remote.Client
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time

	mu      sync.Mutex
	clients map[string]*Client
}

// RegistryDeps bundles the collaborators shared by all clients.
type RegistryDeps struct {
	Stores     repository.TokenStores
	API        *remote.Client
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Now        func() time.Time
}

// NewRegistry builds an empty registry.
func NewRegistry(deps RegistryDeps) *Registry {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Stores == nil {
		deps.Stores = repository.NewMemoryTokenStores()
	}
	return &Registry{
		stores:     deps.Stores,
		api:        deps.API,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		now:        deps.Now,
		clients:    make(map[string]*Client),
	}
}

// Get returns the client for id, creating and initializing it when absent.
// The startup redirect is only reported to the call that created the client.
func (r *Registry) Get(ctx context.Context, id string) (*Client, Redirect) {
	client, redirect, release := r.Acquire(ctx, id)
	release()
	return client, redirect
}

// Acquire is Get for the length of a request: the client is not swept until
// release is called. release is safe to call more than once.
func (r *Registry) Acquire(ctx context.Context, id string) (*Client, Redirect, func()) {
	r.mu.Lock()
	client, exists := r.clients[id]
	if !exists {
		client = r.newClient(id)
		r.clients[id] = client
	}
	client.holds++
	client.Manager.Touch()
	r.mu.Unlock()

	var once sync.Once
	release := func() {
		once.Do(func() {
			r.mu.Lock()
			client.holds--
			client.Manager.Touch()
			r.mu.Unlock()
		})
	}

	redirect := client.Manager.Init(ctx)
	if exists {
		return client, "", release
	}
	return client, redirect, release
}

func (r *Registry) newClient(id string) *Client {
	header := remote.NewAuthHeader()
	var api *remote.Client
	if r.api != nil {
		api = r.api.WithAuth(header)
	}
	return &Client{
		ID: id,
		Manager: NewManager(ManagerDeps{
			ClientID:   id,
			Store:      r.stores.For(id),
			Header:     header,
			Dispatcher: r.dispatcher,
			Logger:     r.logger,
			Now:        r.now,
		}),
		API: api,
	}
}

// Sweep forgets clients idle for longer than maxIdle and returns how many
// were dropped. Clients held by a request are never dropped. Their tokens
// stay in the store, so a returning browser is resolved again from durable
// storage.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)

	r.mu.Lock()
	defer r.mu.Unlock()

	dropped := 0
	for id, client := range r.clients {
		if client.holds == 0 && client.Manager.IdleSince().Before(cutoff) {
			delete(r.clients, id)
			dropped++
		}
	}
	return dropped
}

// Len returns the number of live clients.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}
