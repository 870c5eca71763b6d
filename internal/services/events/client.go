package events

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// UpstreamError is a non-success reply from the events API. The status
// is carried so the dispatcher can report an upstream failure instead
// of conflating it with an empty result set.
type UpstreamError struct {
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("events API returned status %d", e.Status)
}

// apiEvent is the provider-shaped record, alive only while the adapter
// runs. Location is [longitude, latitude].
type apiEvent struct {
	Title       string    `json:"title"`
	Start       string    `json:"start"`
	End         string    `json:"end"`
	Location    []float64 `json:"location"`
	Description string    `json:"description"`
}

type searchResponse struct {
	Results []apiEvent `json:"results"`
}

type searchParams struct {
	Category string
	Scope    string
	From     string
	To       string
	Limit    int
}

type Client struct {
	httpClient *http.Client
	token      string
	baseURL    string
}

func NewClient(token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		token:      token,
		baseURL:    "https://api.predicthq.com/v1/events/",
	}
}

func (c *Client) search(ctx context.Context, p searchParams) ([]apiEvent, error) {
	q := url.Values{}
	q.Set("category", p.Category)
	q.Set("place.scope", p.Scope)
	q.Set("active.gte", p.From)
	q.Set("active.lte", p.To)
	q.Set("limit", strconv.Itoa(p.Limit))
	q.Set("sort", "start")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build events request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("events request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Status: resp.StatusCode}
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode events response: %w", err)
	}
	return payload.Results, nil
}
