package port

import (
	"context"
	"realestate-search-service/internal/core/domain"
)

// SearchFetcherPort выполняет один запрос страницы поиска к удаленному сервису.
type SearchFetcherPort interface {
	// SearchPage отправляет переменные запроса и возвращает разобранный JSON-документ.
	// Ошибки оборачивают domain.ErrTransportFailure или domain.ErrMalformedResponse.
	SearchPage(ctx context.Context, variables domain.QueryVariables) (domain.RawResponseDocument, error)
}

// AgentContactPort отправляет обращение агенту объявления
type AgentContactPort interface {
	ContactAgent(ctx context.Context, listingID string, request domain.AgentContactRequest) ([]byte, error)
}
