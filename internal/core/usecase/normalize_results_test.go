package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realestate-search-service/internal/core/domain"
)

func TestNormalizeResults_ExactBeforeSurrounding(t *testing.T) {
	doc := decodeDocument(t, `{
		"data": {"buySearch": {"results": {
			"exact": {"items": [{"listing": {"id": "e1"}}, {"listing": {"id": "e2"}}]},
			"surrounding": {"items": [{"listing": {"id": "s1"}}]},
			"pagination": {"moreResultsAvailable": true}
		}}}
	}`)

	page := NormalizeResults(doc, domain.ChannelBuy)

	assert.Equal(t, []string{"e1", "e2", "s1"}, listingIDs(page.Listings))
	assert.True(t, page.MoreResultsAvailable)
	assert.False(t, page.Degraded())
}

func TestNormalizeResults_NullBucketIsSkipped(t *testing.T) {
	doc := decodeDocument(t, `{
		"data": {"rentSearch": {"results": {
			"exact": {"items": [{"listing": {"id": "e1"}}]},
			"surrounding": null,
			"pagination": {"moreResultsAvailable": false}
		}}}
	}`)

	page := NormalizeResults(doc, domain.ChannelRent)

	assert.Equal(t, []string{"e1"}, listingIDs(page.Listings))
	assert.False(t, page.MoreResultsAvailable)
	assert.Empty(t, page.MissingPaths)
}

func TestNormalizeResults_MissingListingBecomesEmptyObject(t *testing.T) {
	doc := decodeDocument(t, `{
		"data": {"soldSearch": {"results": {
			"exact": {"items": [{"listing": null}, {"other": 1}, "junk"]},
			"pagination": {"moreResultsAvailable": false}
		}}}
	}`)

	page := NormalizeResults(doc, domain.ChannelSold)

	require.Len(t, page.Listings, 3)
	for _, listing := range page.Listings {
		assert.NotNil(t, listing)
		assert.Empty(t, listing)
	}
}

func TestNormalizeResults_MalformedDocuments(t *testing.T) {
	testCases := []struct {
		name        string
		raw         string
		missingPath string
	}{
		{name: "no data", raw: `{"errors": [{"message": "rate limited"}]}`, missingPath: "data.rentSearch.results"},
		{name: "null data", raw: `{"data": null}`, missingPath: "data.rentSearch.results"},
		{name: "wrong channel key", raw: `{"data": {"buySearch": {"results": {}}}}`, missingPath: "data.rentSearch.results"},
		{name: "results is a string", raw: `{"data": {"rentSearch": {"results": "oops"}}}`, missingPath: "data.rentSearch.results"},
		{name: "data is a list", raw: `{"data": [1, 2]}`, missingPath: "data.rentSearch.results"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			page := NormalizeResults(decodeDocument(t, tc.raw), domain.ChannelRent)

			assert.Empty(t, page.Listings)
			assert.False(t, page.MoreResultsAvailable)
			assert.True(t, page.Degraded())
			assert.Contains(t, page.MissingPaths, tc.missingPath)
		})
	}
}

func TestNormalizeResults_MissingPaginationMeansNoMoreResults(t *testing.T) {
	doc := decodeDocument(t, `{
		"data": {"buySearch": {"results": {
			"exact": {"items": [{"listing": {"id": "e1"}}]}
		}}}
	}`)

	page := NormalizeResults(doc, domain.ChannelBuy)

	assert.Equal(t, []string{"e1"}, listingIDs(page.Listings))
	assert.False(t, page.MoreResultsAvailable)
	assert.Equal(t, []string{"data.buySearch.results.pagination.moreResultsAvailable"}, page.MissingPaths)
}

func TestNormalizeResults_ItemsNotAList(t *testing.T) {
	doc := decodeDocument(t, `{
		"data": {"buySearch": {"results": {
			"exact": {"items": {"listing": {"id": "e1"}}},
			"pagination": {"moreResultsAvailable": false}
		}}}
	}`)

	page := NormalizeResults(doc, domain.ChannelBuy)

	assert.Empty(t, page.Listings)
	assert.Equal(t, []string{"data.buySearch.results.exact.items"}, page.MissingPaths)
}
