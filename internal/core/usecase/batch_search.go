package usecase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"realestate-search-service/internal/contextkeys"
	"realestate-search-service/internal/core/domain"
	"realestate-search-service/internal/core/port"
	usecases_port "realestate-search-service/internal/core/port/usecases"
)

// BatchSearchUseCase запускает независимые поиски параллельно.
// Каждый поиск изолирован: общих изменяемых данных у них нет.
type BatchSearchUseCase struct {
	runSearchUC usecases_port.RunSearchPort
	concurrency int
}

func NewBatchSearchUseCase(runSearchUC usecases_port.RunSearchPort, concurrency int) *BatchSearchUseCase {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &BatchSearchUseCase{
		runSearchUC: runSearchUC,
		concurrency: concurrency,
	}
}

// Execute возвращает результаты в порядке конфигураций.
// Ошибка одного поиска (некорректная конфигурация) отменяет остальные.
func (uc *BatchSearchUseCase) Execute(ctx context.Context, configs []domain.SearchConfiguration) ([]*domain.SearchResult, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "BatchSearch",
		"batch_size":  len(configs),
		"concurrency": uc.concurrency,
	})
	ucLogger.Info("Starting batch search", nil)

	results := make([]*domain.SearchResult, len(configs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)

	for i, cfg := range configs {
		g.Go(func() error {
			subLogger := ucLogger.WithFields(port.Fields{"batch_index": i})
			subCtx := contextkeys.ContextWithLogger(gCtx, subLogger)

			result, err := uc.runSearchUC.Execute(subCtx, cfg)
			if err != nil {
				return fmt.Errorf("batch search #%d: %w", i, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		ucLogger.Error("Batch search failed", err, nil)
		return nil, err
	}

	ucLogger.Info("Batch search completed", nil)
	return results, nil
}
