package usecases_port

import (
	"context"
	"realestate-search-service/internal/core/domain"
)

// SearchListingsPort - цикл пагинации одного поиска
type SearchListingsPort interface {
	Execute(ctx context.Context, cfg domain.SearchConfiguration) (*domain.SearchResult, error)
}
