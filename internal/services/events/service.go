package events

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"search-system/internal/format"
	"search-system/internal/services/classify"
	"search-system/internal/services/geocode"
	"search-system/internal/services/llm"
)

// sourcePrefix is boilerplate the provider prepends to descriptions.
const sourcePrefix = "Sourced from predicthq.com - "

const noDescription = "No description"

// Result is one normalized event. Field order is the response field
// order.
type Result struct {
	Title       string `json:"Title"`
	Start       string `json:"Start Date & Time"`
	End         string `json:"End Date & Time"`
	Location    string `json:"Location"`
	Description string `json:"Description"`
	Citation    string `json:"Citation"`
}

// Service is the events-provider adapter: it resolves the category,
// queries the provider, and normalizes each record.
type Service struct {
	client     *Client
	classifier *classify.Classifier
	geocoder   geocode.Geocoder
	llm        llm.Client
	scope      string
	limit      int
}

func NewService(client *Client, classifier *classify.Classifier, geocoder geocode.Geocoder, llmClient llm.Client, scope string, limit int) *Service {
	return &Service{
		client:     client,
		classifier: classifier,
		geocoder:   geocoder,
		llm:        llmClient,
		scope:      scope,
		limit:      limit,
	}
}

// Fetch returns upcoming events matching the query within the next
// year, normalized. An empty slice means the provider had none.
func (s *Service) Fetch(ctx context.Context, query string) ([]Result, error) {
	category, err := s.classifier.EventCategory(ctx, query)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	raw, err := s.client.search(ctx, searchParams{
		Category: category,
		Scope:    s.scope,
		From:     now.Format("2006-01-02"),
		To:       now.AddDate(1, 0, 0).Format("2006-01-02"),
		Limit:    s.limit,
	})
	if err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}

	results := make([]Result, 0, len(raw))
	for _, ev := range raw {
		r, err := s.normalize(ctx, ev)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

func (s *Service) normalize(ctx context.Context, ev apiEvent) (Result, error) {
	start, err := format.Timestamp(ev.Start)
	if err != nil {
		return Result{}, fmt.Errorf("event %q: %w", ev.Title, err)
	}
	end, err := format.Timestamp(ev.End)
	if err != nil {
		return Result{}, fmt.Errorf("event %q: %w", ev.Title, err)
	}

	location := s.resolveAddress(ctx, ev.Location)

	description, err := s.describe(ctx, ev)
	if err != nil {
		return Result{}, fmt.Errorf("event %q: %w", ev.Title, err)
	}

	return Result{
		Title:       ev.Title,
		Start:       start,
		End:         end,
		Location:    location,
		Description: description,
		Citation:    format.SearchURL(ev.Title),
	}, nil
}

// resolveAddress reverse-geocodes the provider's [longitude, latitude]
// pair. Geocoding failures are logged and fall back to the no-address
// literal so transport detail never reaches the Location field.
func (s *Service) resolveAddress(ctx context.Context, coords []float64) string {
	if len(coords) < 2 {
		log.Warn().Int("coords", len(coords)).Msg("Event record missing coordinates")
		return geocode.NoAddressFound
	}
	addr, err := s.geocoder.ReverseGeocode(ctx, coords[1], coords[0])
	if err != nil {
		log.Warn().Err(err).Msg("Reverse geocoding failed")
		return geocode.NoAddressFound
	}
	return addr
}

func (s *Service) describe(ctx context.Context, ev apiEvent) (string, error) {
	seed := strings.TrimPrefix(ev.Description, sourcePrefix)
	if seed == "" {
		seed = noDescription
	}
	prompt := fmt.Sprintf("Expand the following description of the event %q into a 350-400 character paragraph: %s", ev.Title, seed)
	description, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate description: %w", err)
	}
	return strings.TrimSpace(description), nil
}
