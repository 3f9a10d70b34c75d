package port

import (
	"context"
	"realestate-search-service/internal/core/domain"
)

// SearchHistoryPort сохраняет сведения о выполненных поисках
type SearchHistoryPort interface {
	SaveRun(ctx context.Context, run domain.SearchRun) error
}
