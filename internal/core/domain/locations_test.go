package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLocations(t *testing.T) {
	assert.Nil(t, NormalizeLocations(nil))
	assert.Equal(t,
		[]string{"Sydney", "Melbourne", "Parramatta, NSW 2150"},
		NormalizeLocations([]string{" Sydney", "Melbourne ", "", "  ", "Sydney", "Parramatta, NSW 2150"}),
	)
}

func TestListingDescription(t *testing.T) {
	assert.Equal(t, "", Listing{}.Description())
	assert.Equal(t, "", Listing{"description": nil}.Description())
	assert.Equal(t, "Sunny unit", Listing{"description": "Sunny unit"}.Description())
	assert.Equal(t, "42", Listing{"description": 42.0}.Description())
	assert.Equal(t, `{"text":"x"}`, Listing{"description": map[string]any{"text": "x"}}.Description())
}

func TestChannelIsValid(t *testing.T) {
	for _, c := range []Channel{ChannelBuy, ChannelRent, ChannelSold} {
		assert.True(t, c.IsValid())
	}
	assert.False(t, Channel("lease").IsValid())
	assert.False(t, Channel("").IsValid())
}

func TestSearchConfigurationCacheKey(t *testing.T) {
	a := NewSearchConfiguration(ChannelRent)
	b := NewSearchConfiguration(ChannelRent)
	assert.Equal(t, a.CacheKey(), b.CacheKey())

	b.Limit = 10
	assert.NotEqual(t, a.CacheKey(), b.CacheKey())
}
