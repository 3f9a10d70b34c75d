package contracts

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKeyFromPath(t *testing.T) {
	assert.Equal(t, "SearchConfiguration/1.0.0", generateKeyFromPath("schemas/requests/search-configuration.v1.json"))
	assert.Equal(t, "ContactAgent/2.0.0", generateKeyFromPath("schemas/requests/contact-agent.v2.json"))
	assert.Equal(t, "", generateKeyFromPath("schemas/requests/unversioned.json"))
}

func TestAllSchemasCompiled(t *testing.T) {
	for _, key := range []string{SearchConfigurationV1, BatchSearchV1, ContactAgentV1} {
		assert.Contains(t, compiledSchemas, key)
	}
}

func TestValidate_SearchConfiguration(t *testing.T) {
	testCases := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "minimal", body: `{"channel": "rent"}`},
		{name: "full", body: `{"channel": "sold", "limit": 10, "sold_limit": 5, "locations": ["Sydney"], "min_price": 50, "max_price": -1, "exclude_keywords": ["mould"], "construction_status": "new"}`},
		{name: "missing channel", body: `{"limit": 10}`, wantErr: true},
		{name: "unknown channel", body: `{"channel": "lease"}`, wantErr: true},
		{name: "unknown field", body: `{"channel": "buy", "colour": "red"}`, wantErr: true},
		{name: "limit below unbounded", body: `{"channel": "buy", "limit": -2}`, wantErr: true},
		{name: "page size too large", body: `{"channel": "buy", "page_size": 500}`, wantErr: true},
		{name: "not json", body: `{"channel":`, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(SearchConfigurationV1, []byte(tc.body))
			if !tc.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var validationErr *ValidationError
			assert.True(t, errors.As(err, &validationErr))
		})
	}
}

func TestValidate_BatchSearchReferencesConfiguration(t *testing.T) {
	assert.NoError(t, Validate(BatchSearchV1, []byte(`{"searches": [{"channel": "buy"}, {"channel": "rent", "limit": 3}]}`)))
	assert.Error(t, Validate(BatchSearchV1, []byte(`{"searches": [{"channel": "lease"}]}`)))
	assert.Error(t, Validate(BatchSearchV1, []byte(`{"searches": []}`)))
}

func TestValidate_ContactAgent(t *testing.T) {
	assert.NoError(t, Validate(ContactAgentV1, []byte(`{"name": "Sam", "from_address": "sam@example.com", "message": "Hello"}`)))
	assert.Error(t, Validate(ContactAgentV1, []byte(`{"name": "Sam", "from_address": "not-an-email", "message": "Hello"}`)))
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("Nope/1.0.0", []byte(`{}`))
	require.Error(t, err)
	var validationErr *ValidationError
	assert.False(t, errors.As(err, &validationErr))
}
