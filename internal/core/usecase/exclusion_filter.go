package usecase

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"realestate-search-service/internal/core/domain"
)

// ExclusionFilter отбрасывает объявления, в описании которых встречается одно из исключаемых слов.
// Сравнение чувствительно к регистру.
type ExclusionFilter struct {
	pattern *regexp.Regexp
}

// NewExclusionFilter собирает одно регулярное выражение-альтернативу из ключевых слов.
// По умолчанию слова экранируются и ищутся как подстроки; asPatterns оставляет их как есть.
// Пустые слова пропускаются: иначе альтернатива совпала бы с любым описанием.
func NewExclusionFilter(keywords []string, asPatterns bool) (*ExclusionFilter, error) {
	parts := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		if keyword == "" {
			continue
		}
		keyword = norm.NFC.String(keyword)
		if !asPatterns {
			keyword = regexp.QuoteMeta(keyword)
		}
		parts = append(parts, keyword)
	}

	if len(parts) == 0 {
		return &ExclusionFilter{}, nil
	}

	pattern, err := regexp.Compile(strings.Join(parts, "|"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidExcludePattern, err)
	}
	return &ExclusionFilter{pattern: pattern}, nil
}

// Apply возвращает объявления, описание которых не совпадает с фильтром, сохраняя порядок.
// Без ключевых слов возвращает исходный срез.
func (f *ExclusionFilter) Apply(listings []domain.Listing) []domain.Listing {
	if f == nil || f.pattern == nil {
		return listings
	}

	kept := make([]domain.Listing, 0, len(listings))
	for _, listing := range listings {
		if f.pattern.MatchString(norm.NFC.String(listing.Description())) {
			continue
		}
		kept = append(kept, listing)
	}
	return kept
}
