package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"realestate-search-service/internal/contextkeys"
	"realestate-search-service/internal/core/domain"
	"realestate-search-service/internal/core/port"
)

/*
CREATE TABLE IF NOT EXISTS search_runs (
    id             UUID PRIMARY KEY,
    channel        TEXT        NOT NULL,
    locations      TEXT[]      NOT NULL,
    configuration  JSONB       NOT NULL,
    listings_count INTEGER     NOT NULL,
    pages_fetched  INTEGER     NOT NULL,
    complete       BOOLEAN     NOT NULL,
    stop_reason    TEXT        NOT NULL,
    error_message  TEXT,
    started_at     TIMESTAMPTZ NOT NULL,
    finished_at    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_search_runs_started_at ON search_runs (started_at DESC);
*/

const insertSearchRunSQL = `
	INSERT INTO search_runs (
		id, channel, locations, configuration, listings_count, pages_fetched,
		complete, stop_reason, error_message, started_at, finished_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (id) DO NOTHING;
`

// Execer - часть pgxpool.Pool, нужная репозиторию
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// SearchHistoryRepository реализует SearchHistoryPort для PostgreSQL.
type SearchHistoryRepository struct {
	db Execer
}

// NewSearchHistoryRepository создает новый экземпляр репозитория.
func NewSearchHistoryRepository(db Execer) (*SearchHistoryRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("postgres: db cannot be nil")
	}
	return &SearchHistoryRepository{db: db}, nil
}

// searchConfigurationRecord - конфигурация поиска в том виде, в каком она хранится в JSONB
type searchConfigurationRecord struct {
	Limit                     int      `json:"limit"`
	StartPage                 int      `json:"start_page"`
	SoldLimit                 int      `json:"sold_limit"`
	PageSize                  int      `json:"page_size"`
	MaxPages                  int      `json:"max_pages"`
	SurroundingSuburbs        bool     `json:"surrounding_suburbs"`
	ExcludeNoSalePrice        bool     `json:"exclude_no_sale_price"`
	Furnished                 bool     `json:"furnished"`
	PetsAllowed               bool     `json:"pets_allowed"`
	ExUnderContract           bool     `json:"ex_under_contract"`
	MinPrice                  int      `json:"min_price"`
	MaxPrice                  int      `json:"max_price"`
	MinBedrooms               int      `json:"min_bedrooms"`
	MaxBedrooms               int      `json:"max_bedrooms"`
	MinBathrooms              int      `json:"min_bathrooms"`
	MinCarspaces              int      `json:"min_carspaces"`
	MinLandSize               int      `json:"min_land_size"`
	PropertyTypes             []string `json:"property_types,omitempty"`
	ConstructionStatus        string   `json:"construction_status,omitempty"`
	Keywords                  []string `json:"keywords,omitempty"`
	ExcludeKeywords           []string `json:"exclude_keywords,omitempty"`
	ExcludeKeywordsAsPatterns bool     `json:"exclude_keywords_as_patterns,omitempty"`
	SortType                  string   `json:"sort_type,omitempty"`
}

func toConfigurationRecord(cfg domain.SearchConfiguration) searchConfigurationRecord {
	return searchConfigurationRecord{
		Limit:                     cfg.Limit,
		StartPage:                 cfg.StartPage,
		SoldLimit:                 cfg.SoldLimit,
		PageSize:                  cfg.PageSize,
		MaxPages:                  cfg.MaxPages,
		SurroundingSuburbs:        cfg.SurroundingSuburbs,
		ExcludeNoSalePrice:        cfg.ExcludeNoSalePrice,
		Furnished:                 cfg.Furnished,
		PetsAllowed:               cfg.PetsAllowed,
		ExUnderContract:           cfg.ExUnderContract,
		MinPrice:                  cfg.MinPrice,
		MaxPrice:                  cfg.MaxPrice,
		MinBedrooms:               cfg.MinBedrooms,
		MaxBedrooms:               cfg.MaxBedrooms,
		MinBathrooms:              cfg.MinBathrooms,
		MinCarspaces:              cfg.MinCarspaces,
		MinLandSize:               cfg.MinLandSize,
		PropertyTypes:             cfg.PropertyTypes,
		ConstructionStatus:        string(cfg.ConstructionStatus),
		Keywords:                  cfg.Keywords,
		ExcludeKeywords:           cfg.ExcludeKeywords,
		ExcludeKeywordsAsPatterns: cfg.ExcludeKeywordsAsPatterns,
		SortType:                  cfg.SortType,
	}
}

// SaveRun записывает один запуск поиска. Повторная запись с тем же id игнорируется.
func (r *SearchHistoryRepository) SaveRun(ctx context.Context, run domain.SearchRun) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "SearchHistoryRepository(SaveRun)",
		"run_id":    run.ID.String(),
	})

	configuration, err := json.Marshal(toConfigurationRecord(run.Configuration))
	if err != nil {
		return fmt.Errorf("postgres: failed to marshal search configuration: %w", err)
	}

	locations := run.Locations
	if locations == nil {
		locations = []string{}
	}

	var errorMessage *string
	if run.ErrorMessage != "" {
		errorMessage = &run.ErrorMessage
	}

	_, err = r.db.Exec(ctx, insertSearchRunSQL,
		run.ID, string(run.Channel), locations, configuration, run.ListingsCount, run.PagesFetched,
		run.Complete, string(run.StopReason), errorMessage, run.StartedAt, run.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to insert search run %s: %w", run.ID, err)
	}

	repoLogger.Debug("Search run saved", nil)
	return nil
}
