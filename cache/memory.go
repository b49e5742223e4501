package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// истекшие записи вычищаются при Set не чаще раза в sweepInterval
const sweepInterval = time.Minute

// MemoryStore - Store в памяти процесса
type MemoryStore struct {
	mu        sync.RWMutex
	entries   map[string]memoryEntry
	now       func() time.Time
	nextSweep time.Time
}

func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(time.Now)
}

// NewMemoryStoreWithClock позволяет подменить часы в тестах
func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrCacheMiss
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		s.mu.Lock()
		// запись могли перезаписать, пока лок был отпущен
		if cur, ok := s.entries[key]; ok && cur.expiresAt.Equal(e.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, ErrCacheMiss
	}
	return e.value, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	now := s.now()
	e := memoryEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = now.Add(ttl)
	}

	s.mu.Lock()
	if !now.Before(s.nextSweep) {
		s.sweep(now)
		s.nextSweep = now.Add(sweepInterval)
	}
	s.entries[key] = e
	s.mu.Unlock()
	return nil
}

// sweep удаляет истекшие записи, вызывается под s.mu
func (s *MemoryStore) sweep(now time.Time) {
	for k, e := range s.entries {
		if !e.expiresAt.IsZero() && !now.Before(e.expiresAt) {
			delete(s.entries, k)
		}
	}
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.entries = make(map[string]memoryEntry)
	s.mu.Unlock()
	return nil
}

// Len - количество записей, включая еще не вычищенные истекшие
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

var _ Store = (*MemoryStore)(nil)
