package realestatefetcher

import (
	"encoding/json"
	"fmt"

	"realestate-search-service/internal/constants"
	"realestate-search-service/internal/core/domain"
)

// Структуры тела GraphQL-запроса
type graphQLRequest struct {
	OperationName string           `json:"operationName"`
	Variables     graphQLVariables `json:"variables"`
	Query         string           `json:"query"`
}

// graphQLVariables.Query - переменные поиска, сериализованные в JSON-строку
type graphQLVariables struct {
	Query            string `json:"query"`
	TestListings     bool   `json:"testListings"`
	NullifyOptionals bool   `json:"nullifyOptionals"`
}

type contactAgentPayload struct {
	LookingTo   string   `json:"lookingTo"`
	Name        string   `json:"name"`
	FromAddress string   `json:"fromAddress"`
	FromPhone   string   `json:"fromPhone"`
	Message     string   `json:"message"`
	LikeTo      []string `json:"likeTo"`
}

// buildSearchRequestBody собирает тело запроса страницы поиска
func buildSearchRequestBody(variables domain.QueryVariables) ([]byte, error) {
	template, ok := constants.SearchQueryTemplates[variables.Channel]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidChannel, variables.Channel)
	}

	encodedVariables, err := json.Marshal(variables)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query variables: %w", err)
	}

	return json.Marshal(graphQLRequest{
		OperationName: constants.SearchOperationName,
		Variables: graphQLVariables{
			Query:            string(encodedVariables),
			TestListings:     false,
			NullifyOptionals: false,
		},
		Query: template,
	})
}

func buildContactAgentBody(request domain.AgentContactRequest) ([]byte, error) {
	return json.Marshal(contactAgentPayload{
		LookingTo:   request.LookingTo,
		Name:        request.Name,
		FromAddress: request.FromAddress,
		FromPhone:   request.FromPhone,
		Message:     request.Message,
		LikeTo:      []string{},
	})
}
