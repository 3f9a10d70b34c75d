package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realestate-search-service/internal/core/domain"
)

func listingsWithDescriptions(descriptions ...any) []domain.Listing {
	listings := make([]domain.Listing, 0, len(descriptions))
	for i, d := range descriptions {
		listing := domain.Listing{"id": string(rune('a' + i))}
		if d != nil {
			listing["description"] = d
		}
		listings = append(listings, listing)
	}
	return listings
}

func TestExclusionFilter_DropsMatchingDescriptions(t *testing.T) {
	filter, err := NewExclusionFilter([]string{"mould"}, false)
	require.NoError(t, err)

	listings := listingsWithDescriptions(
		"Sunny two bedroom unit",
		"Some mould in bathroom",
		"Close to station",
	)

	kept := filter.Apply(listings)

	assert.Equal(t, []string{"a", "c"}, listingIDs(kept))
}

func TestExclusionFilter_IsCaseSensitive(t *testing.T) {
	filter, err := NewExclusionFilter([]string{"mould"}, false)
	require.NoError(t, err)

	kept := filter.Apply(listingsWithDescriptions("Mould free since renovation"))

	assert.Len(t, kept, 1)
}

func TestExclusionFilter_NoKeywordsReturnsInput(t *testing.T) {
	for _, keywords := range [][]string{nil, {}, {""}} {
		filter, err := NewExclusionFilter(keywords, false)
		require.NoError(t, err)

		listings := listingsWithDescriptions("anything", nil)
		assert.Equal(t, listings, filter.Apply(listings))
	}
}

func TestExclusionFilter_LiteralSpecialCharacters(t *testing.T) {
	filter, err := NewExclusionFilter([]string{"a.c", "(fixer"}, false)
	require.NoError(t, err)

	kept := filter.Apply(listingsWithDescriptions(
		"abc street",
		"a.c included",
		"great (fixer upper)",
	))

	assert.Equal(t, []string{"a"}, listingIDs(kept))
}

func TestExclusionFilter_PatternMode(t *testing.T) {
	filter, err := NewExclusionFilter([]string{`stud(io|y)`}, true)
	require.NoError(t, err)

	kept := filter.Apply(listingsWithDescriptions(
		"Cosy studio",
		"Bright study nook",
		"Family home",
	))

	assert.Equal(t, []string{"c"}, listingIDs(kept))
}

func TestExclusionFilter_InvalidPattern(t *testing.T) {
	_, err := NewExclusionFilter([]string{"(unclosed"}, true)

	assert.ErrorIs(t, err, domain.ErrInvalidExcludePattern)
}

func TestExclusionFilter_NonStringDescriptions(t *testing.T) {
	filter, err := NewExclusionFilter([]string{"mould"}, false)
	require.NoError(t, err)

	kept := filter.Apply(listingsWithDescriptions(
		nil,
		map[string]any{"text": "black mould"},
		42.0,
	))

	assert.Equal(t, []string{"a", "c"}, listingIDs(kept))
}

func TestExclusionFilter_UnicodeNormalization(t *testing.T) {
	filter, err := NewExclusionFilter([]string{"caf\u00e9"}, false)
	require.NoError(t, err)

	// e + комбинируемый акцент
	kept := filter.Apply(listingsWithDescriptions("Above a cafe\u0301"))

	assert.Empty(t, kept)
}
