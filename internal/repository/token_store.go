package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Field names of the per-client token hash.
const (
	FieldToken        = "token"
	FieldRefreshToken = "refreshToken"
)

// ErrStorageUnavailable wraps failures of the durable token backend.
var ErrStorageUnavailable = errors.New("token storage unavailable")

// TokenPair is what a console client keeps between requests.
type TokenPair struct {
	Token        string
	RefreshToken string
}

// TokenStore persists one console client's tokens. Read treats any storage
// failure as an absent pair.
type TokenStore interface {
	Save(ctx context.Context, token, refreshToken string) error
	Read(ctx context.Context) (TokenPair, bool)
	Clear(ctx context.Context) error
}

// TokenStores hands out the store of a given console client.
type TokenStores interface {
	For(clientID string) TokenStore
}

// RedisTokenStores keeps every client's tokens in a Redis hash.
type RedisTokenStores struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisTokenStores builds Redis-backed stores keyed by prefix and client id.
func NewRedisTokenStores(client *redis.Client, prefix string, ttl time.Duration, logger *zap.Logger) *RedisTokenStores {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisTokenStores{client: client, prefix: prefix, ttl: ttl, logger: logger}
}

// For returns the store of clientID.
func (s *RedisTokenStores) For(clientID string) TokenStore {
	return &redisTokenStore{
		client: s.client,
		key:    s.prefix + ":" + clientID,
		ttl:    s.ttl,
		logger: s.logger.With(zap.String("client_id", clientID)),
	}
}

type redisTokenStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	logger *zap.Logger
}

func (s *redisTokenStore) Save(ctx context.Context, token, refreshToken string) error {
	if s.client == nil {
		return ErrStorageUnavailable
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, s.key, FieldToken, token, FieldRefreshToken, refreshToken)
	if s.ttl > 0 {
		pipe.Expire(ctx, s.key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Warn("token store save failed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

func (s *redisTokenStore) Read(ctx context.Context) (TokenPair, bool) {
	if s.client == nil {
		return TokenPair{}, false
	}

	vals, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		s.logger.Warn("token store read failed; treating as absent", zap.Error(err))
		return TokenPair{}, false
	}
	pair := TokenPair{Token: vals[FieldToken], RefreshToken: vals[FieldRefreshToken]}
	if pair.Token == "" {
		return TokenPair{}, false
	}
	return pair, true
}

func (s *redisTokenStore) Clear(ctx context.Context) error {
	if s.client == nil {
		return ErrStorageUnavailable
	}
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		s.logger.Warn("token store clear failed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}
