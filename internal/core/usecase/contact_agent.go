package usecase

import (
	"context"
	"fmt"
	"strings"

	"realestate-search-service/internal/contextkeys"
	"realestate-search-service/internal/core/domain"
	"realestate-search-service/internal/core/port"
)

// ContactAgentUseCase отправляет одно обращение агенту, без повторов
type ContactAgentUseCase struct {
	contact port.AgentContactPort
}

func NewContactAgentUseCase(contact port.AgentContactPort) *ContactAgentUseCase {
	return &ContactAgentUseCase{contact: contact}
}

// Execute возвращает тело ответа удаленного сервиса без изменений
func (uc *ContactAgentUseCase) Execute(ctx context.Context, listingID string, request domain.AgentContactRequest) ([]byte, error) {
	listingID = strings.TrimSpace(listingID)
	if listingID == "" {
		return nil, fmt.Errorf("use case: %w", domain.ErrEmptyListingID)
	}

	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "ContactAgent",
		"listing_id": listingID,
	})
	ucLogger.Info("Contacting listing agent", nil)

	body, err := uc.contact.ContactAgent(ctx, listingID, request)
	if err != nil {
		ucLogger.Error("Failed to contact agent", err, nil)
		return nil, fmt.Errorf("use case: error contacting agent for listing %s: %w", listingID, err)
	}

	ucLogger.Info("Agent contacted", port.Fields{"response_bytes": len(body)})
	return body, nil
}
