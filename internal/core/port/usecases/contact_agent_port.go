package usecases_port

import (
	"context"
	"realestate-search-service/internal/core/domain"
)

type ContactAgentPort interface {
	Execute(ctx context.Context, listingID string, request domain.AgentContactRequest) ([]byte, error)
}
