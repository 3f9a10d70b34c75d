package realestatefetcher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gocolly/colly/v2"

	"realestate-search-service/internal/contextkeys"
	"realestate-search-service/internal/core/domain"
	"realestate-search-service/internal/core/port"
)

// SearchPage выполняет один POST с переменными страницы и возвращает разобранный JSON-документ
func (a *RealEstateFetcherAdapter) SearchPage(ctx context.Context, variables domain.QueryVariables) (domain.RawResponseDocument, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	searchLogger := logger.WithFields(port.Fields{
		"component": "RealEstateFetcherAdapter(SearchPage)",
		"page":      variables.Page,
	})

	body, err := buildSearchRequestBody(variables)
	if err != nil {
		return nil, fmt.Errorf("realestate adapter: failed to build request body: %w", err)
	}

	collector := a.newRequestCollector()
	collector.Context = ctx

	var document domain.RawResponseDocument
	var responseErr error

	collector.OnRequest(func(r *colly.Request) {
		searchLogger.Debug("Making search request", port.Fields{"url": r.URL.String()})
	})

	collector.OnResponse(func(r *colly.Response) {
		var parsed map[string]any
		if err := json.Unmarshal(r.Body, &parsed); err != nil {
			searchLogger.Error("Failed to unmarshal search response", err, port.Fields{"status": r.StatusCode})
			responseErr = fmt.Errorf("realestate adapter: %w: %v", domain.ErrMalformedResponse, err)
			return
		}
		document = domain.RawResponseDocument(parsed)
	})

	collector.OnError(func(r *colly.Response, err error) {
		searchLogger.Error("Search request failed", err, port.Fields{
			"url":    r.Request.URL.String(),
			"status": r.StatusCode,
		})
		responseErr = fmt.Errorf("realestate adapter: %w: request to %s failed with status %d: %v",
			domain.ErrTransportFailure, r.Request.URL, r.StatusCode, err)
	})

	postErr := collector.PostRaw(a.cfg.SearchURL, body)
	collector.Wait()

	if responseErr != nil {
		return nil, responseErr
	}
	if postErr != nil {
		searchLogger.Error("Failed to post search request", postErr, port.Fields{"url": a.cfg.SearchURL})
		return nil, fmt.Errorf("realestate adapter: %w: %v", domain.ErrTransportFailure, postErr)
	}
	if document == nil {
		// null или пустой ответ
		return nil, fmt.Errorf("realestate adapter: %w: empty document", domain.ErrMalformedResponse)
	}

	searchLogger.Debug("Search page received", nil)
	return document, nil
}
