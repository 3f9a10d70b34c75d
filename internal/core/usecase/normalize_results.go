package usecase

import (
	"fmt"
	"strings"

	"github.com/itchyny/gojq"

	"realestate-search-service/internal/core/domain"
)

// getpath на значении неподходящего типа завершается ошибкой, try превращает ее в null
const lookupExpression = `try getpath($path) catch null`

var pathLookup = mustCompileLookup()

func mustCompileLookup() *gojq.Code {
	query, err := gojq.Parse(lookupExpression)
	if err != nil {
		panic(fmt.Sprintf("normalizer: invalid lookup expression: %v", err))
	}
	code, err := gojq.Compile(query, gojq.WithVariables([]string{"$path"}))
	if err != nil {
		panic(fmt.Sprintf("normalizer: failed to compile lookup expression: %v", err))
	}
	return code
}

// lookup возвращает значение по пути или nil, если путь отсутствует
func lookup(document any, path ...string) any {
	jqPath := make([]any, len(path))
	for i, p := range path {
		jqPath[i] = p
	}

	iter := pathLookup.Run(document, jqPath)
	v, ok := iter.Next()
	if !ok {
		return nil
	}
	if _, isErr := v.(error); isErr {
		return nil
	}
	return v
}

// PageResults - результат нормализации одного ответа
type PageResults struct {
	Listings             []domain.Listing
	MoreResultsAvailable bool
	// MissingPaths перечисляет ожидаемые поля, которых не оказалось в ответе
	MissingPaths []string
}

// Degraded сообщает, что ответ не соответствовал ожидаемой форме
func (p PageResults) Degraded() bool {
	return len(p.MissingPaths) > 0
}

// NormalizeResults извлекает объявления из data.<channel>Search.results.
// Никогда не возвращает ошибку: отсутствующие поля дают пустой результат и попадают в MissingPaths.
func NormalizeResults(document domain.RawResponseDocument, channel domain.Channel) PageResults {
	var page PageResults

	searchKey := string(channel) + "Search"
	resultsPath := strings.Join([]string{"data", searchKey, "results"}, ".")

	// gojq работает только с неименованными типами JSON
	results, ok := lookup(map[string]any(document), "data", searchKey, "results").(map[string]any)
	if !ok {
		page.MissingPaths = append(page.MissingPaths, resultsPath)
		return page
	}

	for _, bucket := range []string{"exact", "surrounding"} {
		rawItems := lookup(results, bucket, "items")
		if rawItems == nil {
			continue
		}
		items, ok := rawItems.([]any)
		if !ok {
			page.MissingPaths = append(page.MissingPaths, resultsPath+"."+bucket+".items")
			continue
		}
		for _, item := range items {
			page.Listings = append(page.Listings, unwrapListing(item))
		}
	}

	more, ok := lookup(results, "pagination", "moreResultsAvailable").(bool)
	if !ok {
		page.MissingPaths = append(page.MissingPaths, resultsPath+".pagination.moreResultsAvailable")
	}
	page.MoreResultsAvailable = more

	return page
}

func unwrapListing(item any) domain.Listing {
	wrapper, ok := item.(map[string]any)
	if !ok {
		return domain.Listing{}
	}
	listing, ok := wrapper["listing"].(map[string]any)
	if !ok {
		return domain.Listing{}
	}
	return domain.Listing(listing)
}
