package cache

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"yatube/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/singleflight"
)

var pageCacheRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "page_cache_requests_total",
		Help: "Page cache lookups by result (hit, miss, error)",
	},
	[]string{"result"},
)

// ComputeFunc строит страницу заново
type ComputeFunc func(ctx context.Context) ([]byte, error)

// PageCache отдает сохраненную страницу, пока ее не сбросят или не истечет ttl.
// Изменения данных под страницей на сохраненное значение не влияют.
// Одновременные промахи по одному ключу выполняют compute один раз.
// Сброс во время compute не дает сохранить страницу, построенную до сброса.
type PageCache struct {
	store Store
	ttl   time.Duration
	sf    singleflight.Group

	// mu защищает gen и упорядочивает запись в store относительно сбросов
	mu  sync.Mutex
	gen uint64
}

// NewPageCache создает кеш; ttl <= 0 - хранить до явного сброса
func NewPageCache(store Store, ttl time.Duration) *PageCache {
	return &PageCache{store: store, ttl: ttl}
}

func (c *PageCache) generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// GetOrCompute возвращает сохраненную страницу или вычисляет и сохраняет новую.
// Ошибки хранилища не прерывают запрос: страница просто строится заново.
func (c *PageCache) GetOrCompute(ctx context.Context, key string, compute ComputeFunc) ([]byte, error) {
	l := logger.Ctx(ctx)

	data, err := c.store.Get(ctx, key)
	if err == nil {
		pageCacheRequests.WithLabelValues("hit").Inc()
		return data, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		pageCacheRequests.WithLabelValues("error").Inc()
		l.Warn().Err(err).Str(logger.FieldKey, key).Msg("page cache get failed")
	}

	gen := c.generation()
	// после сброса новые запросы не присоединяются к вычислению, начатому до него
	flight := key + "#" + strconv.FormatUint(gen, 10)

	v, err, _ := c.sf.Do(flight, func() (interface{}, error) {
		// пока ждали очередь, страницу мог положить другой запрос
		if data, err := c.store.Get(ctx, key); err == nil {
			return data, nil
		}

		pageCacheRequests.WithLabelValues("miss").Inc()
		data, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		c.storeIfCurrent(ctx, key, data, gen)
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// storeIfCurrent сохраняет страницу, только если с начала compute не было сброса
func (c *PageCache) storeIfCurrent(ctx context.Context, key string, data []byte, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		logger.Ctx(ctx).Debug().Str(logger.FieldKey, key).Msg("page cache invalidated during compute, result not stored")
		return
	}
	if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str(logger.FieldKey, key).Msg("page cache set failed")
	}
}

func (c *PageCache) bump() {
	c.mu.Lock()
	c.gen++
	c.mu.Unlock()
}

func (c *PageCache) Invalidate(ctx context.Context, key string) error {
	c.bump()
	return c.store.Delete(ctx, key)
}

func (c *PageCache) InvalidateAll(ctx context.Context) error {
	c.bump()
	return c.store.Clear(ctx)
}
