package places

import (
	"context"
	"fmt"
	"strings"

	"search-system/internal/format"
	"search-system/internal/services/llm"
)

// Result is one normalized place. Offerings is attached only when the
// offerings option is enabled.
type Result struct {
	Name         string            `json:"Name"`
	Address      string            `json:"Address"`
	OpeningHours map[string]string `json:"Opening Hours"`
	Description  string            `json:"Description"`
	Offerings    map[string]string `json:"Top Offerings & Prices,omitempty"`
	Contact      string            `json:"Contact Number"`
	Citation     []string          `json:"Citation"`
}

// Service is the places-provider adapter: text search, then a details
// lookup per place, then normalization.
type Service struct {
	client           *Client
	llm              llm.Client
	pattern          format.Pattern
	limit            int
	includeOfferings bool
}

func NewService(client *Client, llmClient llm.Client, pattern format.Pattern, limit int, includeOfferings bool) *Service {
	return &Service{
		client:           client,
		llm:              llmClient,
		pattern:          pattern,
		limit:            limit,
		includeOfferings: includeOfferings,
	}
}

// Fetch returns normalized places for a query, at most the configured
// limit, in the provider's own relevance order. An empty slice means
// the provider matched nothing.
func (s *Service) Fetch(ctx context.Context, query string) ([]Result, error) {
	found, err := s.client.textSearch(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("places text search: %w", err)
	}
	if len(found) > s.limit {
		found = found[:s.limit]
	}

	results := make([]Result, 0, len(found))
	for _, place := range found {
		d, err := s.client.details(ctx, place.PlaceID)
		if err != nil {
			return nil, fmt.Errorf("place details %s: %w", place.PlaceID, err)
		}
		r, err := s.normalize(ctx, d)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

func (s *Service) normalize(ctx context.Context, d details) (Result, error) {
	description, err := s.describe(ctx, d)
	if err != nil {
		return Result{}, fmt.Errorf("place %q: %w", d.Name, err)
	}

	r := Result{
		Name:         d.Name,
		Address:      d.FormattedAddress,
		OpeningHours: format.OpeningHours(d.OpeningHours.Periods),
		Description:  description,
		Contact:      s.pattern.Format(d.Phone),
		Citation:     []string{d.URL},
	}

	if s.includeOfferings {
		offerings, err := s.offerings(ctx, d.Name)
		if err != nil {
			return Result{}, fmt.Errorf("place %q: %w", d.Name, err)
		}
		r.Offerings = offerings
	}
	return r, nil
}

func (s *Service) describe(ctx context.Context, d details) (string, error) {
	prompt := fmt.Sprintf("Provide a 350-400 character description for %s, which is a %s.", d.Name, strings.Join(d.Types, ", "))
	description, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate description: %w", err)
	}
	return strings.TrimSpace(description), nil
}

func (s *Service) offerings(ctx context.Context, name string) (map[string]string, error) {
	prompt := fmt.Sprintf("List at most three representative offerings with current prices for %s. "+
		"Respond only with comma-separated 'offering: price' pairs.", name)
	reply, err := s.llm.CompleteGrounded(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate offerings: %w", err)
	}
	return parseOfferings(reply), nil
}

// parseOfferings splits comma-separated "offering: price" text into a
// map. Segments without a colon are skipped.
func parseOfferings(reply string) map[string]string {
	offerings := make(map[string]string)
	for _, segment := range strings.Split(reply, ",") {
		name, price, ok := strings.Cut(segment, ":")
		if !ok {
			continue
		}
		offerings[strings.TrimSpace(name)] = strings.TrimSpace(price)
	}
	return offerings
}
