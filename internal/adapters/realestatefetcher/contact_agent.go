package realestatefetcher

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/gocolly/colly/v2"

	"realestate-search-service/internal/constants"
	"realestate-search-service/internal/contextkeys"
	"realestate-search-service/internal/core/domain"
	"realestate-search-service/internal/core/port"
)

// ContactAgent отправляет форму обращения агенту и возвращает тело ответа без разбора
func (a *RealEstateFetcherAdapter) ContactAgent(ctx context.Context, listingID string, request domain.AgentContactRequest) ([]byte, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	contactLogger := logger.WithFields(port.Fields{
		"component":  "RealEstateFetcherAdapter(ContactAgent)",
		"listing_id": listingID,
	})

	body, err := buildContactAgentBody(request)
	if err != nil {
		return nil, fmt.Errorf("realestate adapter: failed to marshal contact payload: %w", err)
	}

	targetURL := strings.TrimSuffix(a.cfg.ContactBaseURL, "/") +
		fmt.Sprintf(constants.ContactAgentPathTemplate, url.PathEscape(listingID))

	collector := a.newRequestCollector()
	collector.Context = ctx

	var responseBody []byte
	var responseErr error

	collector.OnResponse(func(r *colly.Response) {
		responseBody = r.Body
	})

	collector.OnError(func(r *colly.Response, err error) {
		contactLogger.Error("Contact agent request failed", err, port.Fields{
			"url":    r.Request.URL.String(),
			"status": r.StatusCode,
		})
		responseErr = fmt.Errorf("realestate adapter: %w: request to %s failed with status %d: %v",
			domain.ErrTransportFailure, r.Request.URL, r.StatusCode, err)
	})

	postErr := collector.PostRaw(targetURL, body)
	collector.Wait()

	if responseErr != nil {
		return nil, responseErr
	}
	if postErr != nil {
		return nil, fmt.Errorf("realestate adapter: %w: %v", domain.ErrTransportFailure, postErr)
	}

	contactLogger.Info("Contact agent request completed", port.Fields{"response_bytes": len(responseBody)})
	return responseBody, nil
}
