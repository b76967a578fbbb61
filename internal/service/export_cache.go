package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/agency-backend/internal/goroutine"
)

// ExportCache хранит готовые PDF/Excel выгрузки с TTL.
// Ключ включает updatedAt записи, поэтому изменённая запись не получит старый файл.
type ExportCache struct {
	mu    sync.RWMutex
	cache map[string]*cacheEntry
	ttl   time.Duration
}

type cacheEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewExportCache создаёт кэш и запускает фоновую очистку до отмены ctx.
func NewExportCache(ctx context.Context, ttl time.Duration) *ExportCache {
	c := &ExportCache{
		cache: make(map[string]*cacheEntry),
		ttl:   ttl,
	}
	goroutine.SafeGoWithContext(ctx, c.cleanup)
	return c
}

func (c *ExportCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.cache[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.data, true
}

func (c *ExportCache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache[key] = &cacheEntry{data: data, expiresAt: time.Now().Add(c.ttl)}
}

// InvalidateByPrefix удаляет все ключи с префиксом.
func (c *ExportCache) InvalidateByPrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.cache {
		if strings.HasPrefix(key, prefix) {
			delete(c.cache, key)
		}
	}
}

// InvalidateRecord убирает все выгрузки записи, например после удаления.
func (c *ExportCache) InvalidateRecord(kind string, id uuid.UUID) {
	c.InvalidateByPrefix(kind + ":" + id.String() + ":")
}

// GetOrRender отдаёт файл из кэша или рендерит и запоминает его.
func (c *ExportCache) GetOrRender(key string, render func() ([]byte, error)) ([]byte, error) {
	if data, ok := c.Get(key); ok {
		return data, nil
	}

	data, err := render()
	if err != nil {
		return nil, err
	}
	c.Set(key, data)
	return data, nil
}

func (c *ExportCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

func (c *ExportCache) cleanup(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, entry := range c.cache {
				if now.After(entry.expiresAt) {
					delete(c.cache, key)
				}
			}
			c.mu.Unlock()
		}
	}
}

// ExportCacheKey - kind:id:updatedAt:format.
func ExportCacheKey(kind string, id uuid.UUID, updatedAt time.Time, format string) string {
	return kind + ":" + id.String() + ":" + updatedAt.UTC().Format(time.RFC3339Nano) + ":" + format
}
