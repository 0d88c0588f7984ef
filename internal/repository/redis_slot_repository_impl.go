package repository

import (
	"context"
	"errors"
	"fmt"

	domainRepo "salon-booking/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

// RedisSlotKeyPrefix namespaces slot keys in a shared Redis database.
const RedisSlotKeyPrefix = "salon:slot:"

type redisSlotRepository struct {
	client *redis.Client
}

func NewRedisSlotRepository(client *redis.Client) domainRepo.SlotRepository {
	return &redisSlotRepository{client: client}
}

func (r *redisSlotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, RedisSlotKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get slot %s: %w", key, err)
	}
	return data, nil
}

// Set stores the slot without expiry; appointment history is kept indefinitely.
func (r *redisSlotRepository) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, RedisSlotKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set slot %s: %w", key, err)
	}
	return nil
}
