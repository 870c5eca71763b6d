package search

import (
	"context"

	"github.com/rs/zerolog/log"

	"search-system/internal/services/classify"
	"search-system/internal/services/events"
	"search-system/internal/services/places"
)

// IntentClassifier decides which provider a query belongs to.
type IntentClassifier interface {
	Intent(ctx context.Context, query string) (classify.Intent, error)
}

// EventSource fetches normalized events for a query.
type EventSource interface {
	Fetch(ctx context.Context, query string) ([]events.Result, error)
}

// PlaceSource fetches normalized places for a query.
type PlaceSource interface {
	Fetch(ctx context.Context, query string) ([]places.Result, error)
}

// Response carries the outcome of one search. Exactly one of Events or
// Places is populated, selected by Intent.
type Response struct {
	Intent classify.Intent
	Events []events.Result
	Places []places.Result
}

// Empty reports whether the routed provider returned nothing.
func (r *Response) Empty() bool {
	if r.Intent == classify.IntentEvent {
		return len(r.Events) == 0
	}
	return len(r.Places) == 0
}

// Service is the dispatcher: classify the query, route it to the
// matching adapter, and hand back a typed response. All pipeline errors
// propagate to the HTTP boundary untouched.
type Service struct {
	classifier IntentClassifier
	events     EventSource
	places     PlaceSource
}

func NewService(classifier IntentClassifier, eventSource EventSource, placeSource PlaceSource) *Service {
	return &Service{
		classifier: classifier,
		events:     eventSource,
		places:     placeSource,
	}
}

func (s *Service) Search(ctx context.Context, query string) (*Response, error) {
	intent, err := s.classifier.Intent(ctx, query)
	if err != nil {
		return nil, err
	}

	log.Info().Str("query", query).Stringer("intent", intent).Msg("Query classified")

	switch intent {
	case classify.IntentEvent:
		results, err := s.events.Fetch(ctx, query)
		if err != nil {
			return nil, err
		}
		return &Response{Intent: intent, Events: results}, nil
	default:
		results, err := s.places.Fetch(ctx, query)
		if err != nil {
			return nil, err
		}
		return &Response{Intent: intent, Places: results}, nil
	}
}
