package rest

import (
	"realestate-search-service/internal/core/domain"
)

// SearchRequestDTO - тело POST /api/v1/search.
// Поля-указатели отличают "не задано" от нуля: у них ненулевые значения по умолчанию.
type SearchRequestDTO struct {
	Channel                   string   `json:"channel"`
	Limit                     *int     `json:"limit"`
	StartPage                 *int     `json:"start_page"`
	SoldLimit                 *int     `json:"sold_limit"`
	PageSize                  int      `json:"page_size"`
	MaxPages                  int      `json:"max_pages"`
	Locations                 []string `json:"locations"`
	SurroundingSuburbs        *bool    `json:"surrounding_suburbs"`
	ExcludeNoSalePrice        bool     `json:"exclude_no_sale_price"`
	Furnished                 bool     `json:"furnished"`
	PetsAllowed               bool     `json:"pets_allowed"`
	ExUnderContract           bool     `json:"ex_under_contract"`
	MinPrice                  int      `json:"min_price"`
	MaxPrice                  *int     `json:"max_price"`
	MinBedrooms               int      `json:"min_bedrooms"`
	MaxBedrooms               *int     `json:"max_bedrooms"`
	MinBathrooms              int      `json:"min_bathrooms"`
	MinCarspaces              int      `json:"min_carspaces"`
	MinLandSize               int      `json:"min_land_size"`
	PropertyTypes             []string `json:"property_types"`
	ConstructionStatus        string   `json:"construction_status"`
	Keywords                  []string `json:"keywords"`
	ExcludeKeywords           []string `json:"exclude_keywords"`
	ExcludeKeywordsAsPatterns bool     `json:"exclude_keywords_as_patterns"`
	SortType                  string   `json:"sort_type"`
}

// ToDomain переводит DTO в конфигурацию поиска, незаданные поля получают значения по умолчанию
func (d SearchRequestDTO) ToDomain() domain.SearchConfiguration {
	cfg := domain.NewSearchConfiguration(domain.Channel(d.Channel))
	if d.Limit != nil {
		cfg.Limit = *d.Limit
	}
	if d.StartPage != nil {
		cfg.StartPage = *d.StartPage
	}
	if d.SoldLimit != nil {
		cfg.SoldLimit = *d.SoldLimit
	}
	if d.SurroundingSuburbs != nil {
		cfg.SurroundingSuburbs = *d.SurroundingSuburbs
	}
	if d.MaxPrice != nil {
		cfg.MaxPrice = *d.MaxPrice
	}
	if d.MaxBedrooms != nil {
		cfg.MaxBedrooms = *d.MaxBedrooms
	}

	cfg.PageSize = d.PageSize
	cfg.MaxPages = d.MaxPages
	cfg.Locations = domain.NormalizeLocations(d.Locations)
	cfg.ExcludeNoSalePrice = d.ExcludeNoSalePrice
	cfg.Furnished = d.Furnished
	cfg.PetsAllowed = d.PetsAllowed
	cfg.ExUnderContract = d.ExUnderContract
	cfg.MinPrice = d.MinPrice
	cfg.MinBedrooms = d.MinBedrooms
	cfg.MinBathrooms = d.MinBathrooms
	cfg.MinCarspaces = d.MinCarspaces
	cfg.MinLandSize = d.MinLandSize
	cfg.PropertyTypes = d.PropertyTypes
	cfg.ConstructionStatus = domain.ConstructionStatus(d.ConstructionStatus)
	cfg.Keywords = d.Keywords
	cfg.ExcludeKeywords = d.ExcludeKeywords
	cfg.ExcludeKeywordsAsPatterns = d.ExcludeKeywordsAsPatterns
	cfg.SortType = d.SortType
	return cfg
}

type BatchSearchRequestDTO struct {
	Searches []SearchRequestDTO `json:"searches"`
}

type ContactAgentRequestDTO struct {
	LookingTo   string `json:"looking_to"`
	Name        string `json:"name"`
	FromAddress string `json:"from_address"`
	FromPhone   string `json:"from_phone"`
	Message     string `json:"message"`
}

func (d ContactAgentRequestDTO) ToDomain() domain.AgentContactRequest {
	return domain.AgentContactRequest{
		LookingTo:   d.LookingTo,
		Name:        d.Name,
		FromAddress: d.FromAddress,
		FromPhone:   d.FromPhone,
		Message:     d.Message,
	}
}

// SearchResponseDTO - результат поиска. complete == false означает, что список может быть неполным.
type SearchResponseDTO struct {
	Listings      []domain.Listing `json:"listings"`
	Complete      bool             `json:"complete"`
	StopReason    string           `json:"stop_reason"`
	PagesFetched  int              `json:"pages_fetched"`
	DegradedPages int              `json:"degraded_pages"`
	FromCache     bool             `json:"from_cache"`
	Error         string           `json:"error,omitempty"`
}

func toSearchResponseDTO(result *domain.SearchResult) SearchResponseDTO {
	listings := result.Listings
	if listings == nil {
		listings = []domain.Listing{}
	}
	dto := SearchResponseDTO{
		Listings:      listings,
		Complete:      result.Complete,
		StopReason:    string(result.StopReason),
		PagesFetched:  result.PagesFetched,
		DegradedPages: result.DegradedPages,
		FromCache:     result.FromCache,
	}
	if result.Err != nil {
		dto.Error = result.Err.Error()
	}
	return dto
}

type BatchSearchResponseDTO struct {
	Results []SearchResponseDTO `json:"results"`
}
