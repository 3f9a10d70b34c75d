package usecases_port

import (
	"context"
	"realestate-search-service/internal/core/domain"
)

// RunSearchPort - поиск с кэшем, историей и публикацией результатов
type RunSearchPort interface {
	Execute(ctx context.Context, cfg domain.SearchConfiguration) (*domain.SearchResult, error)
}
