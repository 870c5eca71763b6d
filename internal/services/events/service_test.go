package events

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"search-system/internal/services/classify"
	"search-system/internal/services/geocode"
)

// scriptedLLM replies with each queued string in turn.
type scriptedLLM struct {
	replies []string
	prompts []string
}

func (f *scriptedLLM) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if len(f.replies) == 0 {
		return "", errors.New("no scripted reply")
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return reply, nil
}

func (f *scriptedLLM) CompleteGrounded(ctx context.Context, prompt string) (string, error) {
	return f.Complete(ctx, prompt)
}

type fakeGeocoder struct {
	address string
	err     error
}

func (f *fakeGeocoder) ReverseGeocode(_ context.Context, lat, lng float64) (string, error) {
	return f.address, f.err
}

func newTestService(srv *httptest.Server, llm *scriptedLLM, geocoder geocode.Geocoder) *Service {
	client := NewClient("test-token")
	client.baseURL = srv.URL
	return NewService(client, classify.NewClassifier(llm), geocoder, llm, "1880252", 5)
}

const eventPayload = `{"results":[{
	"title": "Jazz Night",
	"start": "2024-03-01T10:00:00Z",
	"end": "2024-03-01T14:00:00Z",
	"location": [103.8591, 1.2838],
	"description": "Sourced from predicthq.com - An evening of live jazz."
}]}`

func TestFetchNormalizesEvents(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Write([]byte(eventPayload))
	}))
	defer srv.Close()

	llm := &scriptedLLM{replies: []string{
		"concerts",
		"An evening of live jazz at the bay, featuring local and touring acts.",
	}}
	svc := newTestService(srv, llm, &fakeGeocoder{address: "10 Bayfront Ave, Singapore"})

	results, err := svc.Fetch(context.Background(), "jazz festival this weekend")
	require.NoError(t, err)
	require.Len(t, results, 1)

	got := results[0]
	assert.Equal(t, "Jazz Night", got.Title)
	assert.Equal(t, "01 Mar 2024 @ 1800 HRS", got.Start)
	assert.Equal(t, "01 Mar 2024 @ 2200 HRS", got.End)
	assert.Equal(t, "10 Bayfront Ave, Singapore", got.Location)
	assert.Equal(t, "An evening of live jazz at the bay, featuring local and touring acts.", got.Description)
	assert.Equal(t, "https://www.google.com/search?q=Jazz+Night", got.Citation)

	assert.Equal(t, "concerts", gotQuery["category"])
	assert.Equal(t, "1880252", gotQuery["place.scope"])
	assert.Equal(t, "5", gotQuery["limit"])
	assert.Equal(t, "start", gotQuery["sort"])
	assert.NotEmpty(t, gotQuery["active.gte"])
	assert.NotEmpty(t, gotQuery["active.lte"])
}

func TestFetchStripsProviderBoilerplateFromPrompt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(eventPayload))
	}))
	defer srv.Close()

	llm := &scriptedLLM{replies: []string{"concerts", "expanded"}}
	svc := newTestService(srv, llm, &fakeGeocoder{address: "somewhere"})

	_, err := svc.Fetch(context.Background(), "jazz")
	require.NoError(t, err)
	require.Len(t, llm.prompts, 2)
	assert.Contains(t, llm.prompts[1], "An evening of live jazz.")
	assert.NotContains(t, llm.prompts[1], "Sourced from predicthq.com")
}

func TestFetchDefaultsMissingDescription(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[{
			"title": "Mystery Expo",
			"start": "2024-05-01T01:00:00Z",
			"end": "2024-05-01T09:00:00Z",
			"location": [103.8, 1.3]
		}]}`))
	}))
	defer srv.Close()

	llm := &scriptedLLM{replies: []string{"expos", "expanded"}}
	svc := newTestService(srv, llm, &fakeGeocoder{address: "somewhere"})

	_, err := svc.Fetch(context.Background(), "expo")
	require.NoError(t, err)
	require.Len(t, llm.prompts, 2)
	assert.Contains(t, llm.prompts[1], "No description")
}

func TestFetchEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	llm := &scriptedLLM{replies: []string{"sports"}}
	svc := newTestService(srv, llm, &fakeGeocoder{address: "unused"})

	results, err := svc.Fetch(context.Background(), "marathon")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFetchUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	llm := &scriptedLLM{replies: []string{"sports"}}
	svc := newTestService(srv, llm, &fakeGeocoder{address: "unused"})

	_, err := svc.Fetch(context.Background(), "marathon")
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusBadGateway, upstream.Status)
}

func TestFetchGeocodingFailureFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(eventPayload))
	}))
	defer srv.Close()

	llm := &scriptedLLM{replies: []string{"concerts", "expanded"}}
	svc := newTestService(srv, llm, &fakeGeocoder{err: &geocode.StatusError{Status: 500, Body: "boom"}})

	results, err := svc.Fetch(context.Background(), "jazz")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, geocode.NoAddressFound, results[0].Location)
	assert.False(t, strings.Contains(results[0].Location, "boom"))
}

func TestFetchUnknownCategoryFailsLoudly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("provider should not be called for an unknown category")
	}))
	defer srv.Close()

	llm := &scriptedLLM{replies: []string{"nightlife"}}
	svc := newTestService(srv, llm, &fakeGeocoder{address: "unused"})

	_, err := svc.Fetch(context.Background(), "clubs")
	var unknown *classify.UnknownCategoryError
	assert.ErrorAs(t, err, &unknown)
}
