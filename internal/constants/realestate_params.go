package constants

import "realestate-search-service/internal/core/domain"

// Адреса удаленного сервиса по умолчанию
const (
	DefaultSearchEndpoint      = "https://lexa.realestate.com.au/graphql"
	DefaultContactAgentBaseURL = "https://agent-contact.realestate.com.au"
	DefaultSiteOrigin          = "https://www.realestate.com.au"

	// ContactAgentPathTemplate дополняется идентификатором объявления
	ContactAgentPathTemplate = "/contact-agent/listing/%s"

	SearchOperationName = "searchByQuery"
)

// SearchQueryTemplates - GraphQL-документ для каждого канала
var SearchQueryTemplates = map[domain.Channel]string{
	domain.ChannelBuy:  searchBuyQuery,
	domain.ChannelRent: searchRentQuery,
	domain.ChannelSold: searchSoldQuery,
}

// DefaultSearch - поиск, который выполняет корневой HTTP-обработчик
func DefaultSearch() domain.SearchConfiguration {
	cfg := domain.NewSearchConfiguration(domain.ChannelRent)
	cfg.Limit = 10
	cfg.StartPage = 1
	cfg.Locations = []string{"Sydney", "Melbourne"}
	cfg.MinPrice = 50
	cfg.MaxPrice = 1000
	cfg.MinBedrooms = 2
	cfg.MaxBedrooms = 4
	return cfg
}
