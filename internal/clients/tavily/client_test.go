package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewClient tests client creation.
func TestNewClient(t *testing.T) {
	client := NewClient("test-key", "https://api.tavily.com", zerolog.Nop())

	assert.NotNil(t, client)
	assert.Equal(t, "test-key", client.apiKey)
	assert.Equal(t, "https://api.tavily.com", client.baseURL)
}

// TestSearch tests a successful search round-trip.
func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/search", r.URL.Path)

		var req searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-key", req.APIKey)
		assert.Equal(t, "Fed rate decision", req.Query)
		assert.Equal(t, "news", req.Topic)
		assert.Equal(t, 7, req.Days)
		assert.Equal(t, 5, req.MaxResults)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]interface{}{
				{
					"title":          "Fed holds rates steady",
					"url":            "https://example.com/fed",
					"content":        "The Federal Reserve kept rates unchanged.",
					"published_date": "2025-01-02T10:00:00Z",
					"source":         "example.com",
					"score":          0.91,
				},
			},
		})
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, zerolog.Nop())

	items, err := client.Search(context.Background(), "Fed rate decision", 7, 5)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "Fed holds rates steady", items[0].Title)
	assert.Equal(t, "The Federal Reserve kept rates unchanged.", items[0].Snippet)
	assert.Equal(t, "https://example.com/fed", items[0].URL)
	assert.Equal(t, "2025-01-02T10:00:00Z", items[0].PublishedAt)
	assert.Equal(t, "example.com", items[0].Source)
	assert.Equal(t, 0.91, items[0].Raw["score"])
}

// TestSearchFieldFallbacks tests that alternate response field names are
// accepted for snippet, timestamp, and source.
func TestSearchFieldFallbacks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]interface{}{
				{
					"title":        "Earnings beat expectations",
					"url":          "https://example.com/earnings",
					"snippet":      "Quarterly earnings came in ahead of forecasts.",
					"published_at": "2025-01-03",
					"domain":       "news.example.com",
				},
			},
		})
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, zerolog.Nop())

	items, err := client.Search(context.Background(), "earnings", 7, 5)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "Quarterly earnings came in ahead of forecasts.", items[0].Snippet)
	assert.Equal(t, "2025-01-03", items[0].PublishedAt)
	assert.Equal(t, "news.example.com", items[0].Source)
}

// TestSearchAPIError tests non-200 handling.
func TestSearchAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "invalid api key"}`))
	}))
	defer server.Close()

	client := NewClient("bad-key", server.URL, zerolog.Nop())

	items, err := client.Search(context.Background(), "anything", 7, 5)
	assert.Error(t, err)
	assert.Nil(t, items)
	assert.Contains(t, err.Error(), "status 401")
}

// TestSearchEmptyResults tests that an empty result set is not an error.
func TestSearchEmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, zerolog.Nop())

	items, err := client.Search(context.Background(), "nothing", 7, 5)
	require.NoError(t, err)
	assert.Empty(t, items)
}
