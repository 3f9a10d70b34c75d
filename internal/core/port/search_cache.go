package port

import "realestate-search-service/internal/core/domain"

// SearchCachePort - кэш завершенных результатов поиска
type SearchCachePort interface {
	Get(key string) (*domain.SearchResult, bool)
	Put(key string, result *domain.SearchResult)
}
