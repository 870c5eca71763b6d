package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(srv *httptest.Server) *Client {
	c := NewClient("test-key")
	c.baseURL = srv.URL
	return c
}

func TestReverseGeocode(t *testing.T) {
	var gotLatLng string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLatLng = r.URL.Query().Get("latlng")
		w.Write([]byte(`{"results":[{"formatted_address":"10 Bayfront Ave, Singapore 018956"}]}`))
	}))
	defer srv.Close()

	addr, err := testClient(srv).ReverseGeocode(context.Background(), 1.2838, 103.8591)
	require.NoError(t, err)
	assert.Equal(t, "10 Bayfront Ave, Singapore 018956", addr)
	assert.Equal(t, "1.2838,103.8591", gotLatLng)
}

func TestReverseGeocodeNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	addr, err := testClient(srv).ReverseGeocode(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, NoAddressFound, addr)
}

func TestReverseGeocodeUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("quota exceeded"))
	}))
	defer srv.Close()

	_, err := testClient(srv).ReverseGeocode(context.Background(), 1.3, 103.8)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusForbidden, statusErr.Status)
	assert.Equal(t, "quota exceeded", statusErr.Body)
}
