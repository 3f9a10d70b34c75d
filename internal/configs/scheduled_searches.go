package configs

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"realestate-search-service/internal/core/domain"
)

// ScheduledSearch - поиск, который планировщик запускает по cron-расписанию
type ScheduledSearch struct {
	Name     string       `yaml:"name"`
	Schedule string       `yaml:"schedule"`
	Search   SearchParams `yaml:"search"`
}

// SearchParams - параметры поиска в YAML. Незаданные поля получают значения по умолчанию.
type SearchParams struct {
	Channel                   string   `yaml:"channel"`
	Limit                     *int     `yaml:"limit"`
	StartPage                 *int     `yaml:"start_page"`
	SoldLimit                 *int     `yaml:"sold_limit"`
	PageSize                  int      `yaml:"page_size"`
	MaxPages                  int      `yaml:"max_pages"`
	Locations                 []string `yaml:"locations"`
	SurroundingSuburbs        *bool    `yaml:"surrounding_suburbs"`
	ExcludeNoSalePrice        bool     `yaml:"exclude_no_sale_price"`
	Furnished                 bool     `yaml:"furnished"`
	PetsAllowed               bool     `yaml:"pets_allowed"`
	ExUnderContract           bool     `yaml:"ex_under_contract"`
	MinPrice                  int      `yaml:"min_price"`
	MaxPrice                  *int     `yaml:"max_price"`
	MinBedrooms               int      `yaml:"min_bedrooms"`
	MaxBedrooms               *int     `yaml:"max_bedrooms"`
	MinBathrooms              int      `yaml:"min_bathrooms"`
	MinCarspaces              int      `yaml:"min_carspaces"`
	MinLandSize               int      `yaml:"min_land_size"`
	PropertyTypes             []string `yaml:"property_types"`
	ConstructionStatus        string   `yaml:"construction_status"`
	Keywords                  []string `yaml:"keywords"`
	ExcludeKeywords           []string `yaml:"exclude_keywords"`
	ExcludeKeywordsAsPatterns bool     `yaml:"exclude_keywords_as_patterns"`
	SortType                  string   `yaml:"sort_type"`
}

type scheduledSearchesFile struct {
	Searches []ScheduledSearch `yaml:"searches"`
}

// ToSearchConfiguration переводит параметры в доменную конфигурацию
func (p SearchParams) ToSearchConfiguration() domain.SearchConfiguration {
	cfg := domain.NewSearchConfiguration(domain.Channel(p.Channel))
	setIfPresent(&cfg.Limit, p.Limit)
	setIfPresent(&cfg.StartPage, p.StartPage)
	setIfPresent(&cfg.SoldLimit, p.SoldLimit)
	setIfPresent(&cfg.MaxPrice, p.MaxPrice)
	setIfPresent(&cfg.MaxBedrooms, p.MaxBedrooms)
	if p.SurroundingSuburbs != nil {
		cfg.SurroundingSuburbs = *p.SurroundingSuburbs
	}

	cfg.PageSize = p.PageSize
	cfg.MaxPages = p.MaxPages
	cfg.Locations = domain.NormalizeLocations(p.Locations)
	cfg.ExcludeNoSalePrice = p.ExcludeNoSalePrice
	cfg.Furnished = p.Furnished
	cfg.PetsAllowed = p.PetsAllowed
	cfg.ExUnderContract = p.ExUnderContract
	cfg.MinPrice = p.MinPrice
	cfg.MinBedrooms = p.MinBedrooms
	cfg.MinBathrooms = p.MinBathrooms
	cfg.MinCarspaces = p.MinCarspaces
	cfg.MinLandSize = p.MinLandSize
	cfg.PropertyTypes = p.PropertyTypes
	cfg.ConstructionStatus = domain.ConstructionStatus(p.ConstructionStatus)
	cfg.Keywords = p.Keywords
	cfg.ExcludeKeywords = p.ExcludeKeywords
	cfg.ExcludeKeywordsAsPatterns = p.ExcludeKeywordsAsPatterns
	cfg.SortType = p.SortType
	return cfg
}

func setIfPresent(dst *int, value *int) {
	if value != nil {
		*dst = *value
	}
}

// LoadScheduledSearches читает YAML-файл с расписанием поисков
func LoadScheduledSearches(path string) ([]ScheduledSearch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scheduled searches file %s: %w", path, err)
	}
	return ParseScheduledSearches(data)
}

// ParseScheduledSearches разбирает YAML и проверяет обязательные поля каждой записи
func ParseScheduledSearches(data []byte) ([]ScheduledSearch, error) {
	var file scheduledSearchesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse scheduled searches: %w", err)
	}

	names := make(map[string]struct{}, len(file.Searches))
	for i, s := range file.Searches {
		if s.Name == "" {
			return nil, fmt.Errorf("scheduled search #%d: name is required", i)
		}
		if _, dup := names[s.Name]; dup {
			return nil, fmt.Errorf("scheduled search %q: duplicate name", s.Name)
		}
		names[s.Name] = struct{}{}

		if s.Schedule == "" {
			return nil, fmt.Errorf("scheduled search %q: schedule is required", s.Name)
		}
		if !domain.Channel(s.Search.Channel).IsValid() {
			return nil, fmt.Errorf("scheduled search %q: %w: %q", s.Name, domain.ErrInvalidChannel, s.Search.Channel)
		}
	}
	return file.Searches, nil
}
