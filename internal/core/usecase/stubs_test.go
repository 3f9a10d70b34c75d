package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"realestate-search-service/internal/core/domain"
)

// stubFetcher отдает заранее заготовленные страницы по номеру
type stubFetcher struct {
	mu       sync.Mutex
	pages    map[int]domain.RawResponseDocument
	failOn   map[int]error
	requests []domain.QueryVariables
}

func (f *stubFetcher) SearchPage(_ context.Context, variables domain.QueryVariables) (domain.RawResponseDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, variables)

	if err, ok := f.failOn[variables.Page]; ok {
		return nil, err
	}
	doc, ok := f.pages[variables.Page]
	if !ok {
		return nil, fmt.Errorf("%w: no stub for page %d", domain.ErrTransportFailure, variables.Page)
	}
	return doc, nil
}

func (f *stubFetcher) pagesRequested() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	pages := make([]int, 0, len(f.requests))
	for _, r := range f.requests {
		pages = append(pages, r.Page)
	}
	return pages
}

// decodeDocument разбирает JSON так же, как это делает транспортный адаптер
func decodeDocument(t *testing.T, raw string) domain.RawResponseDocument {
	t.Helper()
	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &parsed))
	return domain.RawResponseDocument(parsed)
}

// searchPage собирает ответ с count объявлениями в exact, начиная с id firstID
func searchPage(t *testing.T, channel domain.Channel, firstID, count int, more bool, descriptions ...string) domain.RawResponseDocument {
	t.Helper()
	items := make([]map[string]any, 0, count)
	for i := 0; i < count; i++ {
		listing := map[string]any{"id": fmt.Sprintf("%d", firstID+i)}
		if i < len(descriptions) {
			listing["description"] = descriptions[i]
		}
		items = append(items, map[string]any{"listing": listing})
	}

	doc := map[string]any{
		"data": map[string]any{
			string(channel) + "Search": map[string]any{
				"results": map[string]any{
					"exact":      map[string]any{"items": items},
					"pagination": map[string]any{"moreResultsAvailable": more},
				},
			},
		},
	}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	return decodeDocument(t, string(raw))
}

func listingIDs(listings []domain.Listing) []string {
	ids := make([]string, 0, len(listings))
	for _, l := range listings {
		id, _ := l["id"].(string)
		ids = append(ids, id)
	}
	return ids
}
