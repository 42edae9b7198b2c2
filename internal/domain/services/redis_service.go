package services

import (
	"context"
	"time"

	"niddo-http-service/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
)

// InterfaceRedisService defines the Redis service interface
type InterfaceRedisService interface {
	Set(ctx context.Context, key string, value []byte, expiration time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, keys ...string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
	Ping(ctx context.Context) error
	Close() error
}

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
}

// NewRedisService creates a new Redis service
func NewRedisService(cfg *config.Config) InterfaceRedisService {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.GetRedisAddr(),
		DB:   cfg.RedisDB,
	})

	return &RedisService{
		Client: client,
	}
}

// 1 Set sets a key-value pair in Redis with expiration
func (s *RedisService) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	return s.Client.Set(ctx, key, value, expiration).Err()
}

// 2 Get gets a value from Redis by key, redis.Nil when absent
func (s *RedisService) Get(ctx context.Context, key string) ([]byte, error) {
	return s.Client.Get(ctx, key).Bytes()
}

// 3 Delete deletes keys from Redis
func (s *RedisService) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.Client.Del(ctx, keys...).Err()
}

// 4 DeleteByPrefix removes every key starting with prefix
func (s *RedisService) DeleteByPrefix(ctx context.Context, prefix string) error {
	iter := s.Client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	batch := make([]string, 0, 100)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			if err := s.Delete(ctx, batch...); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return s.Delete(ctx, batch...)
}

// 5 Ping checks the connection
func (s *RedisService) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}

// 6 Close closes the client
func (s *RedisService) Close() error {
	return s.Client.Close()
}
