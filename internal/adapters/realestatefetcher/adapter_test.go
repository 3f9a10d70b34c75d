package realestatefetcher

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realestate-search-service/internal/constants"
	"realestate-search-service/internal/core/domain"
)

func newTestAdapter(t *testing.T, serverURL string) *RealEstateFetcherAdapter {
	t.Helper()
	adapter, err := NewRealEstateFetcherAdapter(Config{
		SearchURL:      serverURL + "/graphql",
		ContactBaseURL: serverURL,
		Origin:         "https://www.example.test",
		UserAgent:      "search-service-test",
	})
	require.NoError(t, err)
	return adapter
}

func TestSearchPage_SendsGraphQLRequest(t *testing.T) {
	var gotBody graphQLRequest
	var gotHeaders http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/graphql", r.URL.Path)
		gotHeaders = r.Header.Clone()
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"rentSearch":{"results":{"pagination":{"moreResultsAvailable":false}}}}}`))
	}))
	defer server.Close()

	adapter := newTestAdapter(t, server.URL)

	cfg := domain.NewSearchConfiguration(domain.ChannelRent)
	cfg.Locations = []string{"Sydney"}
	variables := domain.QueryVariables{
		Channel:    domain.ChannelRent,
		Page:       2,
		PageSize:   25,
		Localities: []domain.Locality{{SearchLocation: "Sydney"}},
	}

	doc, err := adapter.SearchPage(context.Background(), variables)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Contains(t, doc, "data")

	assert.Equal(t, "searchByQuery", gotBody.OperationName)
	assert.Equal(t, constants.SearchQueryTemplates[domain.ChannelRent], gotBody.Query)
	assert.False(t, gotBody.Variables.TestListings)
	assert.False(t, gotBody.Variables.NullifyOptionals)

	var sentVariables domain.QueryVariables
	require.NoError(t, json.Unmarshal([]byte(gotBody.Variables.Query), &sentVariables))
	assert.Equal(t, 2, sentVariables.Page)
	assert.Equal(t, domain.ChannelRent, sentVariables.Channel)

	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
	assert.Equal(t, "https://www.example.test", gotHeaders.Get("Origin"))
	assert.Equal(t, "cors", gotHeaders.Get("Sec-Fetch-Mode"))
	assert.Equal(t, "search-service-test", gotHeaders.Get("User-Agent"))
}

func TestSearchPage_ServerErrorIsTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	adapter := newTestAdapter(t, server.URL)

	_, err := adapter.SearchPage(context.Background(), domain.QueryVariables{Channel: domain.ChannelBuy, Page: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransportFailure)
}

func TestSearchPage_InvalidJSONIsMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>captcha</html>`))
	}))
	defer server.Close()

	adapter := newTestAdapter(t, server.URL)

	_, err := adapter.SearchPage(context.Background(), domain.QueryVariables{Channel: domain.ChannelSold, Page: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestSearchPage_UnknownChannel(t *testing.T) {
	adapter := newTestAdapter(t, "http://127.0.0.1:1")

	_, err := adapter.SearchPage(context.Background(), domain.QueryVariables{Channel: "lease", Page: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidChannel)
}

func TestContactAgent_PostsPayload(t *testing.T) {
	var gotPath string
	var gotPayload map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotPayload)
		_, _ = w.Write([]byte(`{"status":"sent"}`))
	}))
	defer server.Close()

	adapter := newTestAdapter(t, server.URL)

	body, err := adapter.ContactAgent(context.Background(), "140213212", domain.AgentContactRequest{
		LookingTo:   "inspect",
		Name:        "Sam",
		FromAddress: "sam@example.test",
		FromPhone:   "0400000000",
		Message:     "Is the property still available?",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"sent"}`, string(body))

	assert.Equal(t, "/contact-agent/listing/140213212", gotPath)
	assert.Equal(t, "inspect", gotPayload["lookingTo"])
	assert.Equal(t, "Sam", gotPayload["name"])
	assert.Equal(t, "sam@example.test", gotPayload["fromAddress"])
	assert.Equal(t, "0400000000", gotPayload["fromPhone"])
	assert.Equal(t, "Is the property still available?", gotPayload["message"])
	assert.Equal(t, []any{}, gotPayload["likeTo"])
}

func TestContactAgent_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	adapter := newTestAdapter(t, server.URL)

	_, err := adapter.ContactAgent(context.Background(), "1", domain.AgentContactRequest{})
	assert.ErrorIs(t, err, domain.ErrTransportFailure)
}

func TestNewRealEstateFetcherAdapter_InvalidURL(t *testing.T) {
	_, err := NewRealEstateFetcherAdapter(Config{SearchURL: "not a url"})
	assert.Error(t, err)
}
