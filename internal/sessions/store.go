// Package sessions keeps login sessions keyed by opaque bearer tokens.
// Redis-backed when a client is provided; without one it degrades to an
// in-process map, which covers single-instance deployments and tests.
package sessions

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNoSession means the token is unknown, expired or revoked.
var ErrNoSession = errors.New("no active session")

const keyPrefix = "session:"

// DefaultTTL applies when the configured TTL is missing or non-positive.
const DefaultTTL = 24 * time.Hour

type localSession struct {
	userID    uint
	expiresAt time.Time
}

// Store maps session tokens to user ids with a sliding TTL.
type Store struct {
	client *redis.Client
	ttl    time.Duration

	mu    sync.Mutex
	local map[string]localSession
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		client: client,
		ttl:    ttl,
		local:  make(map[string]localSession),
	}
}

// Create opens a session for the user and returns its token.
func (s *Store) Create(ctx context.Context, userID uint) (string, error) {
	token := uuid.NewString()

	if s.client == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.local[token] = localSession{userID: userID, expiresAt: time.Now().Add(s.ttl)}
		return token, nil
	}

	value := strconv.FormatUint(uint64(userID), 10)
	if err := s.client.Set(ctx, keyPrefix+token, value, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return token, nil
}

// Lookup resolves the token to a user id and slides the expiry forward.
func (s *Store) Lookup(ctx context.Context, token string) (uint, error) {
	if token == "" {
		return 0, ErrNoSession
	}

	if s.client == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		sess, ok := s.local[token]
		if !ok {
			return 0, ErrNoSession
		}
		if time.Now().After(sess.expiresAt) {
			delete(s.local, token)
			return 0, ErrNoSession
		}
		sess.expiresAt = time.Now().Add(s.ttl)
		s.local[token] = sess
		return sess.userID, nil
	}

	value, err := s.client.Get(ctx, keyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNoSession
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load session: %w", err)
	}

	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt session value: %w", err)
	}

	// Sliding expiry is best effort; a failed refresh only shortens the
	// session.
	_ = s.client.Expire(ctx, keyPrefix+token, s.ttl).Err()

	return uint(id), nil
}

// Revoke drops the session. Unknown tokens are a no-op.
func (s *Store) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if s.client == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.local, token)
		return nil
	}

	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// Ping verifies the backing store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	if _, err := s.client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("session store ping failed: %w", err)
	}
	return nil
}
