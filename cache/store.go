// Package cache хранит готовые (отрендеренные) страницы ленты.
package cache

import (
	"context"
	"errors"
	"time"
)

var ErrCacheMiss = errors.New("cache miss")

// Store - хранилище байтов по ключу с временем жизни
type Store interface {
	// Get возвращает ErrCacheMiss, если ключа нет или он истек
	Get(ctx context.Context, key string) ([]byte, error)
	// Set с ttl <= 0 хранит значение до явного удаления
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
