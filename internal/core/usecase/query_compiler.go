package usecase

import (
	"strconv"

	"realestate-search-service/internal/core/domain"
)

const (
	DefaultPageSize = 25
	MaxPageSize     = 100
)

// CompileQuery строит переменные запроса для страницы page.
// Конфигурация не проверяется: некорректные значения (например, max < min) передаются как есть.
func CompileQuery(cfg domain.SearchConfiguration, page int) domain.QueryVariables {
	localities := make([]domain.Locality, 0, len(cfg.Locations))
	for _, location := range cfg.Locations {
		localities = append(localities, domain.Locality{SearchLocation: location})
	}

	filters := domain.QueryFilters{
		SurroundingSuburbs: cfg.SurroundingSuburbs,
		ExcludeNoSalePrice: cfg.ExcludeNoSalePrice,
		ExUnderContract:    cfg.ExUnderContract,
		Furnished:          cfg.Furnished,
		PetsAllowed:        cfg.PetsAllowed,
	}

	filters.PriceRange = compileRange(cfg.MinPrice, cfg.MaxPrice)
	filters.BedroomsRange = compileRange(cfg.MinBedrooms, cfg.MaxBedrooms)

	if len(cfg.PropertyTypes) > 0 {
		filters.PropertyTypes = append([]string(nil), cfg.PropertyTypes...)
	}
	if cfg.MinBathrooms > 0 {
		filters.MinimumBathroom = strconv.Itoa(cfg.MinBathrooms)
	}
	if cfg.MinCarspaces > 0 {
		filters.MinimumCars = strconv.Itoa(cfg.MinCarspaces)
	}
	if cfg.MinLandSize > 0 {
		filters.LandSize = &domain.ValueRange{Minimum: strconv.Itoa(cfg.MinLandSize)}
	}
	if cfg.ConstructionStatus != "" {
		filters.ConstructionStatus = string(cfg.ConstructionStatus)
	}
	if len(cfg.Keywords) > 0 {
		filters.Keywords = &domain.KeywordTerms{Terms: append([]string(nil), cfg.Keywords...)}
	}

	return domain.QueryVariables{
		Channel:    cfg.Channel,
		Page:       page,
		PageSize:   effectivePageSize(cfg.PageSize),
		Localities: localities,
		Filters:    filters,
		SortType:   cfg.SortType,
	}
}

// compileRange возвращает nil, если ни одна из границ не задана
func compileRange(min, max int) *domain.ValueRange {
	if max < 0 && min <= 0 {
		return nil
	}
	r := &domain.ValueRange{}
	if max >= 0 {
		r.Maximum = strconv.Itoa(max)
	}
	if min > 0 {
		r.Minimum = strconv.Itoa(min)
	}
	return r
}

func effectivePageSize(size int) int {
	switch {
	case size == 0:
		return DefaultPageSize
	case size < 1:
		return 1
	case size > MaxPageSize:
		return MaxPageSize
	}
	return size
}
