package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"paste/internal/models"
)

const (
	DefaultRedisPrefix = "paste:"
	redisPingTimeout   = 5 * time.Second
)

// RedisOptions configures the Redis backend.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// RedisStore keeps each paste under one string key. GETDEL makes removal a
// single atomic command.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// OpenRedis connects to Redis and verifies the connection.
func OpenRedis(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	if opts.Addr == "" {
		return nil, errors.New("redis address is required")
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	return &RedisStore{client: client, prefix: prefix}, nil
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *RedisStore) key(id uuid.UUID) string {
	return s.prefix + id.String()
}

func (s *RedisStore) CreatePaste(ctx context.Context, content string) (models.Paste, error) {
	paste, err := insertWithFreshID(func(id uuid.UUID) (models.Paste, error) {
		ok, err := s.client.SetNX(ctx, s.key(id), content, 0).Result()
		if err != nil {
			return models.Paste{}, err
		}
		if !ok {
			return models.Paste{}, errIDTaken
		}
		return models.Paste{ID: id, Content: content}, nil
	})
	if err != nil {
		return models.Paste{}, fmt.Errorf("create paste: %w", err)
	}
	return paste, nil
}

func (s *RedisStore) GetPaste(ctx context.Context, id uuid.UUID) (*models.Paste, error) {
	content, err := s.client.Get(ctx, s.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get paste %s: %w", id, err)
	}
	return &models.Paste{ID: id, Content: content}, nil
}

func (s *RedisStore) RemovePaste(ctx context.Context, id uuid.UUID) (*models.Paste, error) {
	content, err := s.client.GetDel(ctx, s.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("remove paste %s: %w", id, err)
	}
	return &models.Paste{ID: id, Content: content}, nil
}
