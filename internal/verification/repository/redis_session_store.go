package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	verificationdomain "callbox-backend/internal/verification/domain"

	"github.com/redis/go-redis/v9"
)

// redisSessionStore implements SessionStore on redis. Sessions live under a
// TTL so abandoned challenges clean themselves up.
type redisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore creates a new redis-backed SessionStore
func NewRedisSessionStore(client *redis.Client) SessionStore {
	return &redisSessionStore{client: client}
}

func sessionKey(userID, phone string) string {
	return fmt.Sprintf("verification:session:%s:%s", userID, phone)
}

func verifiedKey(userID, phone string) string {
	return fmt.Sprintf("verification:verified:%s:%s", userID, phone)
}

func (s *redisSessionStore) Get(ctx context.Context, userID, phone string) (*verificationdomain.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(userID, phone)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var session verificationdomain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}

func (s *redisSessionStore) Save(ctx context.Context, session *verificationdomain.Session, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return s.client.Set(ctx, sessionKey(session.UserID, session.Phone), data, ttl).Err()
}

func (s *redisSessionStore) MarkVerified(ctx context.Context, userID, phone string, ttl time.Duration) error {
	return s.client.Set(ctx, verifiedKey(userID, phone), "1", ttl).Err()
}

func (s *redisSessionStore) IsVerified(ctx context.Context, userID, phone string) (bool, error) {
	_, err := s.client.Get(ctx, verifiedKey(userID, phone)).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
