// Package storage хранит картинки постов.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"yatube/config"
)

var ErrNotFound = errors.New("file not found")

// Storage - хранилище файлов по ключу вида "posts/name.gif"
type Storage interface {
	// Write сохраняет содержимое; size = -1, если размер неизвестен
	Write(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// Read возвращает ErrNotFound для отсутствующего ключа; ReadCloser закрывает вызывающий
	Read(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	// URL - адрес, по которому картинку можно получить
	URL(key string) string
}

// New выбирает реализацию по конфигу
func New(ctx context.Context, conf config.MediaConfig) (Storage, error) {
	switch conf.Backend {
	case "", "local":
		return NewLocalStorage(conf.Local.BasePath, "/media/")
	case "s3":
		return NewS3Storage(ctx, conf.S3)
	default:
		return nil, fmt.Errorf("unsupported media backend: %s", conf.Backend)
	}
}
