package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	pkgerrors "github.com/verilocal/admin-gateway/pkg/errors"
)

var (
	// ErrSessionExists is returned when a session ID collides on create.
	ErrSessionExists = errors.New("checkout session already exists")
)

type sessionRedis interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	CheckoutSessionKey(sessionID string) string
}

// Store persists wizard sessions as JSON in Redis. Every save refreshes
// the TTL, so a session expires only after the configured idle window.
type Store struct {
	redis sessionRedis
	ttl   time.Duration
}

// NewStore builds a session store.
func NewStore(redis sessionRedis, ttl time.Duration) (*Store, error) {
	if redis == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Store{redis: redis, ttl: ttl}, nil
}

// Create stores a brand-new session, failing if the ID is already taken.
func (s *Store) Create(ctx context.Context, session *Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshaling checkout session: %w", err)
	}
	ok, err := s.redis.SetNX(ctx, s.redis.CheckoutSessionKey(session.ID), payload, s.ttl)
	if err != nil {
		return fmt.Errorf("storing checkout session: %w", err)
	}
	if !ok {
		return ErrSessionExists
	}
	return nil
}

// Get loads a session by ID.
func (s *Store) Get(ctx context.Context, sessionID string) (*Session, error) {
	raw, err := s.redis.Get(ctx, s.redis.CheckoutSessionKey(sessionID))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "checkout session not found or expired")
		}
		return nil, fmt.Errorf("loading checkout session: %w", err)
	}
	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("decoding checkout session: %w", err)
	}
	return &session, nil
}

// Save overwrites a session and refreshes its TTL.
func (s *Store) Save(ctx context.Context, session *Session) error {
	session.UpdatedAt = time.Now().UTC()
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshaling checkout session: %w", err)
	}
	if err := s.redis.Set(ctx, s.redis.CheckoutSessionKey(session.ID), payload, s.ttl); err != nil {
		return fmt.Errorf("storing checkout session: %w", err)
	}
	return nil
}

// Delete removes a session.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	return s.redis.Del(ctx, s.redis.CheckoutSessionKey(sessionID))
}
