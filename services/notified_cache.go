package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisDedupStore keeps the session-scoped set of already-notified todo
// IDs in redis, so the set survives a reload within the same session.
// The key expires with the session TTL; a browser restart gets a fresh
// session ID and therefore a fresh set.
type RedisDedupStore struct {
	client    *redis.Client
	sessionID string
	ttl       time.Duration
}

func NewRedisDedupStore(redisURL, sessionID string, ttl time.Duration) (*RedisDedupStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &RedisDedupStore{
		client:    client,
		sessionID: sessionID,
		ttl:       ttl,
	}, nil
}

func (s *RedisDedupStore) key() string {
	return fmt.Sprintf("notified:%s", s.sessionID)
}

func (s *RedisDedupStore) Seen(ctx context.Context, todoID string) (bool, error) {
	return s.client.SIsMember(ctx, s.key(), todoID).Result()
}

func (s *RedisDedupStore) MarkSeen(ctx context.Context, todoID string) error {
	pipe := s.client.TxPipeline()
	pipe.SAdd(ctx, s.key(), todoID)
	pipe.Expire(ctx, s.key(), s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// Snapshot returns the flagged IDs currently stored for the session.
func (s *RedisDedupStore) Snapshot(ctx context.Context) ([]string, error) {
	return s.client.SMembers(ctx, s.key()).Result()
}

// Clear drops the session's flagged set.
func (s *RedisDedupStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key()).Err()
}

// Close releases the underlying redis connection.
func (s *RedisDedupStore) Close() error {
	return s.client.Close()
}
