package port

import (
	"context"
	"realestate-search-service/internal/core/domain"
)

// SearchResultsQueuePort публикует результаты поиска для других сервисов
type SearchResultsQueuePort interface {
	PublishResults(ctx context.Context, run domain.SearchRun, listings []domain.Listing) error
}
