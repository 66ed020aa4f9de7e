package repository

import (
	"context"
	"sync"
)

// MemoryTokenStores keeps tokens in process memory. Tokens do not survive a
// restart, so it is meant for tests and single-node development.
type MemoryTokenStores struct {
	mu     sync.Mutex
	stores map[string]*MemoryTokenStore
}

// NewMemoryTokenStores returns an empty in-memory store set.
func NewMemoryTokenStores() *MemoryTokenStores {
	return &MemoryTokenStores{stores: make(map[string]*MemoryTokenStore)}
}

// For returns the store of clientID, creating it on first use.
func (s *MemoryTokenStores) For(clientID string) TokenStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	store, ok := s.stores[clientID]
	if !ok {
		store = NewMemoryTokenStore()
		s.stores[clientID] = store
	}
	return store
}

// MemoryTokenStore is a single client's in-memory token pair.
type MemoryTokenStore struct {
	mu   sync.RWMutex
	pair *TokenPair
}

// NewMemoryTokenStore returns an empty store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Save(_ context.Context, token, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = &TokenPair{Token: token, RefreshToken: refreshToken}
	return nil
}

func (s *MemoryTokenStore) Read(_ context.Context) (TokenPair, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.pair == nil || s.pair.Token == "" {
		return TokenPair{}, false
	}
	return *s.pair, true
}

func (s *MemoryTokenStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = nil
	return nil
}
