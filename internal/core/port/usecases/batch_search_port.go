package usecases_port

import (
	"context"
	"realestate-search-service/internal/core/domain"
)

type BatchSearchPort interface {
	Execute(ctx context.Context, configs []domain.SearchConfiguration) ([]*domain.SearchResult, error)
}
