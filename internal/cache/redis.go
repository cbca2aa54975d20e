// Package cache реализует JSON-кеш поверх Redis для горячих выборок
// (списки подписок пользователя, статусы платного доступа).
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fanbase-dev/fanbase/internal/config"
)

// Cache хранит значения в Redis в виде JSON. Клиент экспортируется
// для graceful shutdown и низкоуровневого доступа в тестах.
type Cache struct {
	Client *redis.Client
}

// InitServer подключается к Redis и проверяет соединение пингом.
func InitServer(ctx context.Context, cfg config.RedisConnection) (*Cache, error) {
	const op = "cache.InitServer"

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Username:     cfg.User,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Cache{Client: client}, nil
}

// Get читает ключ и декодирует JSON в result. Возвращает false без
// ошибки, если ключа нет.
func (c *Cache) Get(key string, result any) (bool, error) {
	const op = "cache.Get"

	val, err := c.Client.Get(context.Background(), key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if err := json.Unmarshal(val, result); err != nil {
		return false, fmt.Errorf("%s: unmarshal %q: %w", op, key, err)
	}
	return true, nil
}

// Set сериализует value в JSON и записывает его с заданным TTL.
func (c *Cache) Set(key string, value any, expiration time.Duration) error {
	const op = "cache.Set"

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: marshal %q: %w", op, key, err)
	}
	return c.Client.Set(context.Background(), key, data, expiration).Err()
}

// Invalidate удаляет ключ; отсутствие ключа не считается ошибкой.
func (c *Cache) Invalidate(key string) error {
	return c.Client.Del(context.Background(), key).Err()
}
