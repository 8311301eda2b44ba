package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocoderResolve(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Powai, Mumbai", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "roomsathi-test", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"19.1197","lon":"72.9051"}]`))
	}))
	defer srv.Close()

	g := NewGeocoder(GeocoderConfig{BaseURL: srv.URL, UserAgent: "roomsathi-test"})

	coords, err := g.Resolve(context.Background(), "Powai, Mumbai")
	require.NoError(t, err)
	require.NotNil(t, coords)
	assert.InDelta(t, 19.1197, coords.Latitude, 1e-6)
	assert.InDelta(t, 72.9051, coords.Longitude, 1e-6)

	// India bounds, per the lookup above.
	assert.True(t, coords.Latitude > 6 && coords.Latitude < 36)
	assert.True(t, coords.Longitude > 68 && coords.Longitude < 98)
}

func TestGeocoderNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	g := NewGeocoder(GeocoderConfig{BaseURL: srv.URL})

	coords, err := g.Resolve(context.Background(), "xzqvw nonsense gibberish")
	require.NoError(t, err)
	assert.Nil(t, coords)
}

func TestGeocoderEmptyAddress(t *testing.T) {
	g := NewGeocoder(GeocoderConfig{BaseURL: "http://unused.invalid"})
	coords, err := g.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, coords)
}

func TestGeocoderServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	g := NewGeocoder(GeocoderConfig{BaseURL: srv.URL})

	coords, err := g.Resolve(context.Background(), "Mumbai")
	assert.Error(t, err)
	assert.Nil(t, coords)
}

func TestGeocoderAPIKeyForwarded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sekrit", r.URL.Query().Get("key"))
		_, _ = w.Write([]byte(`[{"lat":"28.6139","lon":"77.2090"}]`))
	}))
	defer srv.Close()

	g := NewGeocoder(GeocoderConfig{BaseURL: srv.URL, APIKey: "sekrit"})

	coords, err := g.Resolve(context.Background(), "Delhi")
	require.NoError(t, err)
	require.NotNil(t, coords)
}

func TestIPLocatorSuccessAndFailure(t *testing.T) {
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","lat":19.076,"lon":72.8777}`))
	}))
	defer ok.Close()

	loc := NewIPLocator(ok.URL)
	coords := loc.Current(context.Background())
	require.NotNil(t, coords)
	assert.InDelta(t, 19.076, coords.Latitude, 1e-6)

	fail := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"fail"}`))
	}))
	defer fail.Close()

	assert.Nil(t, NewIPLocator(fail.URL).Current(context.Background()))
	assert.Nil(t, NewIPLocator("").Current(context.Background()))
}
