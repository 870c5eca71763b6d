package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"search-system/internal/format"
)

type searchResult struct {
	PlaceID string `json:"place_id"`
}

type textSearchResponse struct {
	Results []searchResult `json:"results"`
	Status  string         `json:"status"`
}

type openingHours struct {
	Periods []format.Period `json:"periods"`
}

// details is the provider-shaped record for one place.
type details struct {
	Name             string       `json:"name"`
	FormattedAddress string       `json:"formatted_address"`
	OpeningHours     openingHours `json:"opening_hours"`
	Phone            string       `json:"formatted_phone_number"`
	Types            []string     `json:"types"`
	URL              string       `json:"url"`
}

type detailsResponse struct {
	Result details `json:"result"`
	Status string  `json:"status"`
}

type Client struct {
	httpClient *http.Client
	apiKey     string
	searchURL  string
	detailsURL string
}

func NewClient(apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiKey:     apiKey,
		searchURL:  "https://maps.googleapis.com/maps/api/place/textsearch/json",
		detailsURL: "https://maps.googleapis.com/maps/api/place/details/json",
	}
}

func (c *Client) textSearch(ctx context.Context, query string) ([]searchResult, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("key", c.apiKey)

	var payload textSearchResponse
	if err := c.get(ctx, c.searchURL, q, &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

func (c *Client) details(ctx context.Context, placeID string) (details, error) {
	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("key", c.apiKey)

	var payload detailsResponse
	if err := c.get(ctx, c.detailsURL, q, &payload); err != nil {
		return details{}, err
	}
	return payload.Result, nil
}

func (c *Client) get(ctx context.Context, endpoint string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build places request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("places request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("places API returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode places response: %w", err)
	}
	return nil
}
