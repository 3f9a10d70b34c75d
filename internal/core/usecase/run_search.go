package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"realestate-search-service/internal/contextkeys"
	"realestate-search-service/internal/core/domain"
	"realestate-search-service/internal/core/port"
	usecases_port "realestate-search-service/internal/core/port/usecases"
)

// RunSearchUseCase оборачивает цикл поиска кэшем, историей запусков и публикацией результатов.
// Любой из портов может быть nil - тогда соответствующий шаг пропускается.
type RunSearchUseCase struct {
	searchUC  usecases_port.SearchListingsPort
	cache     port.SearchCachePort
	history   port.SearchHistoryPort
	publisher port.SearchResultsQueuePort
	now       func() time.Time
}

func NewRunSearchUseCase(
	searchUC usecases_port.SearchListingsPort,
	cache port.SearchCachePort,
	history port.SearchHistoryPort,
	publisher port.SearchResultsQueuePort,
) *RunSearchUseCase {
	return &RunSearchUseCase{
		searchUC:  searchUC,
		cache:     cache,
		history:   history,
		publisher: publisher,
		now:       time.Now,
	}
}

func (uc *RunSearchUseCase) Execute(ctx context.Context, cfg domain.SearchConfiguration) (*domain.SearchResult, error) {
	runID := uuid.New()
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "RunSearch",
		"run_id":   runID.String(),
	})
	ctx = contextkeys.ContextWithLogger(ctx, ucLogger)

	cacheKey := cfg.CacheKey()
	if uc.cache != nil {
		if cached, ok := uc.cache.Get(cacheKey); ok {
			ucLogger.Info("Serving search from cache", port.Fields{"listings_count": len(cached.Listings)})
			hit := *cached
			hit.FromCache = true
			return &hit, nil
		}
	}

	startedAt := uc.now().UTC()
	result, err := uc.searchUC.Execute(ctx, cfg)
	if err != nil {
		ucLogger.Error("Search rejected", err, nil)
		return nil, err
	}

	run := domain.SearchRun{
		ID:            runID,
		Channel:       cfg.Channel,
		Locations:     cfg.Locations,
		Configuration: cfg,
		ListingsCount: len(result.Listings),
		PagesFetched:  result.PagesFetched,
		Complete:      result.Complete,
		StopReason:    result.StopReason,
		StartedAt:     startedAt,
		FinishedAt:    uc.now().UTC(),
	}
	if result.Err != nil {
		run.ErrorMessage = result.Err.Error()
	}

	// История и публикация вспомогательные: их сбои не влияют на ответ
	if uc.history != nil {
		if err := uc.history.SaveRun(ctx, run); err != nil {
			ucLogger.Error("Failed to save search run", err, nil)
		}
	}
	if uc.publisher != nil {
		if err := uc.publisher.PublishResults(ctx, run, result.Listings); err != nil {
			ucLogger.Error("Failed to publish search results", err, nil)
		}
	}

	if uc.cache != nil && result.Complete {
		uc.cache.Put(cacheKey, result)
	}

	return result, nil
}
