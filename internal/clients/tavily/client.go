// Package tavily provides a client for the Tavily news search API.
package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aristath/newsradar/internal/modules/news"
	"github.com/rs/zerolog"
)

// Client for api.tavily.com
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     zerolog.Logger
}

// NewClient creates a new Tavily search client.
func NewClient(apiKey, baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log.With().Str("client", "tavily").Logger(),
	}
}

type searchRequest struct {
	APIKey     string `json:"api_key"`
	Query      string `json:"query"`
	Topic      string `json:"topic"`
	Days       int    `json:"days"`
	MaxResults int    `json:"max_results"`
}

// searchResult mirrors one entry of the Tavily response. Publication
// timestamp and source fields vary between result shapes, so each known
// variant is decoded and the first non-empty one wins.
type searchResult struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Content       string  `json:"content"`
	Snippet       string  `json:"snippet"`
	PublishedDate string  `json:"published_date"`
	PublishedAt   string  `json:"published_at"`
	Date          string  `json:"date"`
	Source        string  `json:"source"`
	Domain        string  `json:"domain"`
	Score         float64 `json:"score"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

// Search runs a news-topic query and returns normalized items.
func (c *Client) Search(ctx context.Context, query string, days, maxResults int) ([]news.RawItem, error) {
	reqBody := searchRequest{
		APIKey:     c.apiKey,
		Query:      query,
		Topic:      "news",
		Days:       days,
		MaxResults: maxResults,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	url := c.baseURL + "/search"
	c.log.Debug().Str("query", query).Int("days", days).Int("max_results", maxResults).Msg("Searching")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("search API returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	items := make([]news.RawItem, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		items = append(items, news.RawItem{
			Title:       r.Title,
			Snippet:     firstNonEmpty(r.Content, r.Snippet),
			URL:         r.URL,
			PublishedAt: firstNonEmpty(r.PublishedDate, r.PublishedAt, r.Date),
			Source:      firstNonEmpty(r.Source, r.Domain),
			Raw: map[string]interface{}{
				"score": r.Score,
			},
		})
	}

	c.log.Debug().Str("query", query).Int("results", len(items)).Msg("Search complete")
	return items, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
