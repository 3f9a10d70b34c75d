package cache

import (
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"realestate-search-service/internal/core/domain"
)

// SearchCache - потокобезопасный LRU-кэш результатов поиска с временем жизни записей
type SearchCache struct {
	cache *expirable.LRU[string, *domain.SearchResult]
}

// NewSearchCache создает кэш на maxItems записей. ttl <= 0 - записи не устаревают.
func NewSearchCache(maxItems int, ttl time.Duration) (*SearchCache, error) {
	if maxItems <= 0 {
		return nil, fmt.Errorf("cache: maxItems must be positive, got %d", maxItems)
	}
	if ttl < 0 {
		ttl = 0
	}
	return &SearchCache{
		cache: expirable.NewLRU[string, *domain.SearchResult](maxItems, nil, ttl),
	}, nil
}

// Get возвращает копию сохраненного результата
func (c *SearchCache) Get(key string) (*domain.SearchResult, bool) {
	result, ok := c.cache.Get(key)
	if !ok {
		return nil, false
	}
	return cloneResult(result), true
}

// Put сохраняет копию результата, чтобы вызывающий не мог изменить закэшированный список
func (c *SearchCache) Put(key string, result *domain.SearchResult) {
	if result == nil {
		return
	}
	c.cache.Add(key, cloneResult(result))
}

// Len returns the current number of items in the cache.
func (c *SearchCache) Len() int {
	return c.cache.Len()
}

func cloneResult(result *domain.SearchResult) *domain.SearchResult {
	clone := *result
	clone.Listings = append([]domain.Listing(nil), result.Listings...)
	return &clone
}
