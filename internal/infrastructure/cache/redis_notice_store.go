package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wmsconnector/backend/internal/domain/sync"
)

const defaultNoticeKey = "sync:notices"

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisNoticeStore buffers notices in a Redis list so every instance of the
// connector shares the same admin notice queue. The list expires after the
// notice TTL, matching the in-memory store.
type RedisNoticeStore struct {
	client *redis.Client
	key    string
}

var _ sync.NoticeStore = (*RedisNoticeStore)(nil)

// NewRedisNoticeStore creates a Redis-backed notice store and verifies the
// connection
func NewRedisNoticeStore(cfg RedisConfig) (*RedisNoticeStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisNoticeStore{
		client: client,
		key:    defaultNoticeKey,
	}, nil
}

// NewRedisNoticeStoreWithClient creates a store with an existing Redis
// client. Useful for testing or when sharing a client across components.
func NewRedisNoticeStoreWithClient(client *redis.Client, key string) *RedisNoticeStore {
	if key == "" {
		key = defaultNoticeKey
	}
	return &RedisNoticeStore{
		client: client,
		key:    key,
	}
}

// Push appends a notice to the shared list and refreshes its TTL
func (s *RedisNoticeStore) Push(ctx context.Context, notice sync.Notice) error {
	payload, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("failed to marshal notice: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, s.key, payload)
	pipe.Expire(ctx, s.key, noticeTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to push notice: %w", err)
	}
	return nil
}

// Drain atomically reads and deletes the whole notice list
func (s *RedisNoticeStore) Drain(ctx context.Context) ([]sync.Notice, error) {
	pipe := s.client.TxPipeline()
	rangeCmd := pipe.LRange(ctx, s.key, 0, -1)
	pipe.Del(ctx, s.key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to drain notices: %w", err)
	}

	raw := rangeCmd.Val()
	notices := make([]sync.Notice, 0, len(raw))
	for _, payload := range raw {
		var notice sync.Notice
		if err := json.Unmarshal([]byte(payload), &notice); err != nil {
			return nil, fmt.Errorf("failed to unmarshal notice: %w", err)
		}
		notices = append(notices, notice)
	}
	return notices, nil
}

// Close closes the Redis client
func (s *RedisNoticeStore) Close() error {
	return s.client.Close()
}
