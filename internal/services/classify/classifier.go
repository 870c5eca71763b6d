package classify

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"search-system/internal/services/llm"
)

// Intent is the routing decision made for a query: events provider or
// places provider.
type Intent int

const (
	IntentLocation Intent = iota
	IntentEvent
)

func (i Intent) String() string {
	if i == IntentEvent {
		return "event"
	}
	return "location"
}

// Categories is the closed set of event categories the events provider
// accepts as a filter.
var Categories = []string{
	"academic",
	"community",
	"concerts",
	"conferences",
	"expos",
	"festivals",
	"observances",
	"performing-arts",
	"public-holidays",
	"school-holidays",
	"sports",
}

// UnknownCategoryError reports a model reply that matched none of the
// known event categories.
type UnknownCategoryError struct {
	Reply string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("event category %q is not in the known set", e.Reply)
}

// Classifier routes free-text queries using a language model.
type Classifier struct {
	llm llm.Client
}

func NewClassifier(llmClient llm.Client) *Classifier {
	return &Classifier{llm: llmClient}
}

// Intent decides whether a query is about an event or a location. A
// reply matching neither routes to location; that default is policy,
// not an error.
func (c *Classifier) Intent(ctx context.Context, query string) (Intent, error) {
	prompt := fmt.Sprintf("Determine whether the following query is about an event or a location. "+
		"Respond with only one word: 'event' or 'location'. Query: '%s'", query)

	reply, err := c.llm.Complete(ctx, prompt)
	if err != nil {
		return IntentLocation, fmt.Errorf("classify intent: %w", err)
	}

	normalized := strings.ToLower(strings.TrimSpace(reply))
	switch {
	case strings.Contains(normalized, "event"):
		return IntentEvent, nil
	case strings.Contains(normalized, "location"):
		return IntentLocation, nil
	default:
		log.Debug().Str("reply", normalized).Msg("Unclear intent reply, defaulting to location")
		return IntentLocation, nil
	}
}

// EventCategory resolves the event category for a query. The model
// reply is clamped against the known set: exact match first, then
// substring, and anything else is an UnknownCategoryError rather than
// an unvalidated filter value sent upstream.
func (c *Classifier) EventCategory(ctx context.Context, query string) (string, error) {
	list := strings.Join(Categories, ", ")
	prompt := fmt.Sprintf("Determine whether the following query is about one of the following topics: %s. "+
		"Respond with only one word from that list. Query: '%s'", list, query)

	reply, err := c.llm.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("classify event category: %w", err)
	}

	normalized := strings.ToLower(strings.TrimSpace(reply))
	for _, cat := range Categories {
		if normalized == cat {
			return cat, nil
		}
	}
	for _, cat := range Categories {
		if strings.Contains(normalized, cat) {
			return cat, nil
		}
	}
	return "", &UnknownCategoryError{Reply: reply}
}
