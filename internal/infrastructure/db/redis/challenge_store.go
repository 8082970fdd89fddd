package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/csuniv/election-system/internal/core/domain"
)

// ChallengeStore keeps verification challenges in Redis, keyed by session id.
// Key format: challenge:<session_id>
type ChallengeStore struct {
	client *redis.Client
	ttl    time.Duration // 0 = challenges never expire
}

// NewChallengeStore creates a ChallengeStore wrapping the given Redis client.
// A positive ttl expires pending challenges; zero keeps them indefinitely.
func NewChallengeStore(client *redis.Client, ttl time.Duration) *ChallengeStore {
	return &ChallengeStore{client: client, ttl: ttl}
}

func (s *ChallengeStore) Put(ctx context.Context, c *domain.Challenge) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal challenge: %w", err)
	}
	if err := s.client.Set(ctx, s.key(c.SessionID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store challenge: %w", err)
	}
	return nil
}

func (s *ChallengeStore) Get(ctx context.Context, sessionID string) (*domain.Challenge, error) {
	payload, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("load challenge: %w", err)
	}

	var c domain.Challenge
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil, fmt.Errorf("unmarshal challenge: %w", err)
	}
	return &c, nil
}

func (s *ChallengeStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete challenge: %w", err)
	}
	return nil
}

func (s *ChallengeStore) key(sessionID string) string {
	return "challenge:" + sessionID
}
