package usecase

import (
	"context"
	"fmt"

	"realestate-search-service/internal/contextkeys"
	"realestate-search-service/internal/core/domain"
	"realestate-search-service/internal/core/port"
)

// DefaultMaxPages - потолок числа страниц, если ни клиент, ни поиск его не задали
const DefaultMaxPages = 50

// SearchListingsUseCase - цикл пагинации: компиляция запроса, запрос страницы,
// нормализация, проверка условий остановки, переход к следующей странице.
type SearchListingsUseCase struct {
	fetcher  port.SearchFetcherPort
	maxPages int
}

// NewSearchListingsUseCase создает новый экземпляр SearchListingsUseCase.
// maxPages <= 0 заменяется на DefaultMaxPages.
func NewSearchListingsUseCase(fetcher port.SearchFetcherPort, maxPages int) *SearchListingsUseCase {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	return &SearchListingsUseCase{
		fetcher:  fetcher,
		maxPages: maxPages,
	}
}

// Execute выполняет поиск. Ошибка возвращается только для некорректной конфигурации,
// до первого сетевого запроса. Сбой посреди цикла дает частичный результат с Complete == false.
func (uc *SearchListingsUseCase) Execute(ctx context.Context, cfg domain.SearchConfiguration) (*domain.SearchResult, error) {
	baseLogger := contextkeys.LoggerFromContext(ctx)
	ucLogger := baseLogger.WithFields(port.Fields{
		"use_case": "SearchListings",
		"channel":  string(cfg.Channel),
	})

	if !cfg.Channel.IsValid() {
		return nil, fmt.Errorf("use case: %w: %q", domain.ErrInvalidChannel, cfg.Channel)
	}

	exclusion, err := NewExclusionFilter(cfg.ExcludeKeywords, cfg.ExcludeKeywordsAsPatterns)
	if err != nil {
		return nil, fmt.Errorf("use case: %w", err)
	}

	maxPages := uc.maxPages
	if cfg.MaxPages > 0 {
		maxPages = cfg.MaxPages
	}

	startPage := cfg.StartPage
	if startPage < 1 {
		startPage = 1
	}

	ucLogger.Info("Starting search", port.Fields{
		"locations":  cfg.Locations,
		"limit":      cfg.Limit,
		"start_page": startPage,
		"max_pages":  maxPages,
	})

	result := &domain.SearchResult{}
	var accumulated []domain.Listing

	variables := CompileQuery(cfg, startPage)

	for {
		if ctxErr := ctx.Err(); ctxErr != nil {
			ucLogger.Warn("Search cancelled, returning partial results", port.Fields{
				"pages_fetched":  result.PagesFetched,
				"listings_count": len(accumulated),
			})
			result.StopReason = domain.StopReasonCancelled
			result.Err = fmt.Errorf("%w: %w", domain.ErrLoopAborted, ctxErr)
			break
		}

		pageLogger := ucLogger.WithFields(port.Fields{"page": variables.Page})
		pageLogger.Debug("Fetching page", nil)

		document, fetchErr := uc.fetcher.SearchPage(ctx, variables)
		if fetchErr != nil {
			// Частичный результат вместо ошибки: вызывающий узнает о неполноте по Complete и Err
			pageLogger.Warn("Page fetch failed, returning partial results", port.Fields{
				"error":          fetchErr.Error(),
				"pages_fetched":  result.PagesFetched,
				"listings_count": len(accumulated),
			})
			result.StopReason = domain.StopReasonFetchFailed
			result.Err = fmt.Errorf("%w on page %d: %w", domain.ErrLoopAborted, variables.Page, fetchErr)
			break
		}
		result.PagesFetched++

		page := NormalizeResults(document, cfg.Channel)
		if page.Degraded() {
			result.DegradedPages++
			pageLogger.Warn("Response is missing expected fields", port.Fields{
				"missing_paths": page.MissingPaths,
			})
		}
		accumulated = append(accumulated, page.Listings...)

		pageLogger.Debug("Page processed", port.Fields{
			"page_listings":  len(page.Listings),
			"total_listings": len(accumulated),
			"more_results":   page.MoreResultsAvailable,
		})

		if reason, done := checkDone(cfg, len(accumulated), page.MoreResultsAvailable); done {
			result.Complete = true
			result.StopReason = reason
			break
		}

		if result.PagesFetched >= maxPages {
			pageLogger.Warn("Page ceiling reached, more results may be available", port.Fields{"max_pages": maxPages})
			result.StopReason = domain.StopReasonPageLimit
			break
		}

		// Номер следующей страницы берется из последнего отправленного запроса
		variables = CompileQuery(cfg, variables.Page+1)
	}

	accumulated = truncateToLimits(cfg, accumulated)
	result.Listings = exclusion.Apply(accumulated)

	ucLogger.Info("Finished search", port.Fields{
		"listings_count": len(result.Listings),
		"excluded_count": len(accumulated) - len(result.Listings),
		"pages_fetched":  result.PagesFetched,
		"complete":       result.Complete,
		"stop_reason":    string(result.StopReason),
	})

	return result, nil
}

func checkDone(cfg domain.SearchConfiguration, count int, moreResults bool) (domain.StopReason, bool) {
	if cfg.Limit >= 0 && count >= cfg.Limit {
		return domain.StopReasonLimitReached, true
	}
	if cfg.Channel == domain.ChannelSold && cfg.SoldLimit >= 0 && count >= cfg.SoldLimit {
		return domain.StopReasonSoldLimitReached, true
	}
	if !moreResults {
		return domain.StopReasonNoMoreResults, true
	}
	return "", false
}

func truncateToLimits(cfg domain.SearchConfiguration, listings []domain.Listing) []domain.Listing {
	if cfg.Limit >= 0 && len(listings) > cfg.Limit {
		listings = listings[:cfg.Limit]
	}
	if cfg.Channel == domain.ChannelSold && cfg.SoldLimit >= 0 && len(listings) > cfg.SoldLimit {
		listings = listings[:cfg.SoldLimit]
	}
	return listings
}
