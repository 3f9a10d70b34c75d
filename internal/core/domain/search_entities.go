package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Channel - категория объявлений, по которой идет поиск
type Channel string

const (
	ChannelBuy  Channel = "buy"
	ChannelRent Channel = "rent"
	ChannelSold Channel = "sold"
)

// IsValid сообщает, поддерживается ли канал удаленным сервисом
func (c Channel) IsValid() bool {
	switch c {
	case ChannelBuy, ChannelRent, ChannelSold:
		return true
	}
	return false
}

// ConstructionStatus - необязательный фильтр по состоянию постройки
type ConstructionStatus string

const (
	ConstructionStatusEstablished ConstructionStatus = "established"
	ConstructionStatusNew         ConstructionStatus = "new"
)

// Unbounded - значение-маркер "без ограничения" для лимитов и верхних границ диапазонов
const Unbounded = -1

// SearchConfiguration описывает один поиск. После создания не изменяется.
//
// Нижние границы по умолчанию равны 0, верхние и лимиты равны Unbounded.
type SearchConfiguration struct {
	Channel   Channel
	Limit     int
	StartPage int
	SoldLimit int
	// PageSize 0 означает "не задан"
	PageSize int
	// MaxPages ограничивает число запросов одного поиска. 0 - значение по умолчанию клиента.
	MaxPages int

	Locations []string

	SurroundingSuburbs bool
	ExcludeNoSalePrice bool
	Furnished          bool
	PetsAllowed        bool
	ExUnderContract    bool

	MinPrice     int
	MaxPrice     int
	MinBedrooms  int
	MaxBedrooms  int
	MinBathrooms int
	MinCarspaces int
	MinLandSize  int

	PropertyTypes      []string
	ConstructionStatus ConstructionStatus

	Keywords        []string
	ExcludeKeywords []string
	// ExcludeKeywordsAsPatterns включает трактовку ExcludeKeywords как регулярных выражений
	ExcludeKeywordsAsPatterns bool

	SortType string
}

// NewSearchConfiguration возвращает конфигурацию со значениями по умолчанию
func NewSearchConfiguration(channel Channel) SearchConfiguration {
	return SearchConfiguration{
		Channel:            channel,
		Limit:              Unbounded,
		StartPage:          1,
		SoldLimit:          Unbounded,
		SurroundingSuburbs: true,
		MaxPrice:           Unbounded,
		MaxBedrooms:        Unbounded,
	}
}

// CacheKey возвращает ключ, однозначно описывающий конфигурацию
func (c SearchConfiguration) CacheKey() string {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Sprintf("%+v", c)
	}
	return string(data)
}

// Locality - элемент списка localities в переменных запроса
type Locality struct {
	SearchLocation string `json:"searchLocation"`
}

// ValueRange - диапазон, значения передаются строками
type ValueRange struct {
	Minimum string `json:"minimum,omitempty"`
	Maximum string `json:"maximum,omitempty"`
}

// KeywordTerms - фильтр по ключевым словам
type KeywordTerms struct {
	Terms []string `json:"terms"`
}

// QueryFilters - документ filters. Ключи с omitempty присутствуют только при выполнении условия.
type QueryFilters struct {
	SurroundingSuburbs bool `json:"surroundingSuburbs"`
	ExcludeNoSalePrice bool `json:"excludeNoSalePrice"`
	ExUnderContract    bool `json:"ex-under-contract"`
	Furnished          bool `json:"furnished"`
	PetsAllowed        bool `json:"petsAllowed"`

	PriceRange         *ValueRange   `json:"priceRange,omitempty"`
	BedroomsRange      *ValueRange   `json:"bedroomsRange,omitempty"`
	PropertyTypes      []string      `json:"propertyTypes,omitempty"`
	MinimumBathroom    string        `json:"minimumBathroom,omitempty"`
	MinimumCars        string        `json:"minimumCars,omitempty"`
	LandSize           *ValueRange   `json:"landSize,omitempty"`
	ConstructionStatus string        `json:"constructionStatus,omitempty"`
	Keywords           *KeywordTerms `json:"keywords,omitempty"`
}

// QueryVariables - переменные GraphQL-запроса для одной страницы
type QueryVariables struct {
	Channel    Channel      `json:"channel"`
	Page       int          `json:"page"`
	PageSize   int          `json:"pageSize"`
	Localities []Locality   `json:"localities"`
	Filters    QueryFilters `json:"filters"`
	SortType   string       `json:"sortType,omitempty"`
}

// RawResponseDocument - разобранный JSON-ответ удаленного сервиса на один запрос
type RawResponseDocument map[string]any

// Listing - объект объявления в том виде, в каком его вернул сервис
type Listing map[string]any

// Description возвращает текстовое представление поля description
func (l Listing) Description() string {
	raw, ok := l["description"]
	if !ok || raw == nil {
		return ""
	}
	if s, ok := raw.(string); ok {
		return s
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Sprint(raw)
	}
	return string(data)
}

// StopReason - причина завершения цикла пагинации
type StopReason string

const (
	StopReasonLimitReached     StopReason = "limit_reached"
	StopReasonSoldLimitReached StopReason = "sold_limit_reached"
	StopReasonNoMoreResults    StopReason = "no_more_results"
	StopReasonPageLimit        StopReason = "page_limit"
	StopReasonFetchFailed      StopReason = "fetch_failed"
	StopReasonCancelled        StopReason = "cancelled"
)

// SearchResult - итог поиска.
// Complete == false означает, что список может быть неполным (см. StopReason и Err).
type SearchResult struct {
	Listings      []Listing
	Complete      bool
	StopReason    StopReason
	PagesFetched  int
	DegradedPages int
	Err           error
	FromCache     bool
}

// SearchRun - запись о выполненном поиске для истории
type SearchRun struct {
	ID            uuid.UUID
	Channel       Channel
	Locations     []string
	Configuration SearchConfiguration
	ListingsCount int
	PagesFetched  int
	Complete      bool
	StopReason    StopReason
	ErrorMessage  string
	StartedAt     time.Time
	FinishedAt    time.Time
}
