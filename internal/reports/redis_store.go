// Package reports stores generated AI status reports in Redis with a TTL.
package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNoReport is returned by Latest when no report has been generated yet or
// every stored report has expired.
var ErrNoReport = errors.New("no report available")

// Report is a generated project summary with its creation time.
type Report struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// RedisStore keeps reports under a key prefix, each expiring after the
// configured TTL. The latest report is tracked with a dedicated key that is
// overwritten on every save.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a new Redis-backed report store
func NewRedisStore(redisURL string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewRedisStoreWithClient(client, ttl), nil
}

// NewRedisStoreWithClient creates a store from an existing Redis client
func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &RedisStore{
		client: client,
		prefix: "report:",
		ttl:    ttl,
	}
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

// Save stores a report and marks it as the latest one. Both keys share the
// same TTL so the latest pointer never outlives its report.
func (s *RedisStore) Save(ctx context.Context, report Report) error {
	jsonData, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if err := s.client.Set(ctx, s.key(report.ID), jsonData, s.ttl).Err(); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+"latest", jsonData, s.ttl).Err(); err != nil {
		return fmt.Errorf("save latest report: %w", err)
	}
	return nil
}

// Latest returns the most recently saved report.
func (s *RedisStore) Latest(ctx context.Context) (Report, error) {
	jsonData, err := s.client.Get(ctx, s.prefix+"latest").Result()
	if err == redis.Nil {
		return Report{}, ErrNoReport
	}
	if err != nil {
		return Report{}, fmt.Errorf("lookup latest report: %w", err)
	}

	var report Report
	if err := json.Unmarshal([]byte(jsonData), &report); err != nil {
		return Report{}, fmt.Errorf("unmarshal report: %w", err)
	}
	return report, nil
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ping checks if Redis is reachable
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
