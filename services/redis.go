package services

import (
	"context"
	"fmt"

	"yatube/config"

	"github.com/go-redis/redis/v8"
)

// InitRedis создает клиент и проверяет соединение
func InitRedis(ctx context.Context, conf config.RedisConfig) (*redis.Client, error) {
	if conf.Addr == "" {
		return nil, fmt.Errorf("redis address is not configured")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})

	// Тест соединения
	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}
