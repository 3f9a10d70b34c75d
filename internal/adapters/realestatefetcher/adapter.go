package realestatefetcher

import (
	"fmt"
	"net/url"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"

	"realestate-search-service/internal/constants"
)

// Config - неизменяемая конфигурация клиента, задается один раз при создании адаптера
type Config struct {
	SearchURL      string
	ContactBaseURL string
	Origin         string
	// UserAgent пустой - на каждый запрос подставляется User-Agent реального браузера
	UserAgent      string
	RequestTimeout time.Duration
	RandomDelay    time.Duration
	Parallelism    int
}

// RealEstateFetcherAdapter отвечает за все взаимодействия с GraphQL-сервисом поиска
type RealEstateFetcherAdapter struct {
	// родительский коллектор, клоны разделяют с ним лимиты и HTTP-клиент
	collector *colly.Collector
	cfg       Config
}

// NewRealEstateFetcherAdapter - конструктор
func NewRealEstateFetcherAdapter(cfg Config) (*RealEstateFetcherAdapter, error) {
	if cfg.SearchURL == "" {
		cfg.SearchURL = constants.DefaultSearchEndpoint
	}
	if cfg.ContactBaseURL == "" {
		cfg.ContactBaseURL = constants.DefaultContactAgentBaseURL
	}
	if cfg.Origin == "" {
		cfg.Origin = constants.DefaultSiteOrigin
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = 1
	}

	searchHost, err := hostname(cfg.SearchURL)
	if err != nil {
		return nil, fmt.Errorf("RealEstateFetcherAdapter: invalid search URL: %w", err)
	}
	contactHost, err := hostname(cfg.ContactBaseURL)
	if err != nil {
		return nil, fmt.Errorf("RealEstateFetcherAdapter: invalid contact base URL: %w", err)
	}

	// POST на один и тот же URL повторяется на каждой странице, поэтому revisit разрешен
	c := colly.NewCollector(colly.AllowedDomains(searchHost, contactHost), colly.AllowURLRevisit())

	err = c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: cfg.Parallelism,
		RandomDelay: cfg.RandomDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("RealEstateFetcherAdapter: failed to set limit rule: %w", err)
	}

	if cfg.RequestTimeout > 0 {
		c.SetRequestTimeout(cfg.RequestTimeout)
	}
	if cfg.UserAgent != "" {
		c.UserAgent = cfg.UserAgent
	}

	return &RealEstateFetcherAdapter{
		collector: c,
		cfg:       cfg,
	}, nil
}

// newRequestCollector создает "одноразовый" клон со своими обработчиками.
// Колбэки родителя не наследуются, поэтому расширения подключаются к каждому клону.
func (a *RealEstateFetcherAdapter) newRequestCollector() *colly.Collector {
	collector := a.collector.Clone()
	if a.cfg.UserAgent == "" {
		extensions.RandomUserAgent(collector)
	}

	collector.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Content-Type", "application/json")
		r.Headers.Set("Accept", "application/graphql+json, application/json")
		r.Headers.Set("Origin", a.cfg.Origin)
		r.Headers.Set("Referer", a.cfg.Origin+"/")
		r.Headers.Set("Sec-Fetch-Dest", "empty")
		r.Headers.Set("Sec-Fetch-Mode", "cors")
		r.Headers.Set("Sec-Fetch-Site", "same-site")
	})

	return collector
}

func hostname(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("url %q has no host", rawURL)
	}
	return u.Hostname(), nil
}
