package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Geocoder resolves a free-text address to coordinates. A nil result with a
// nil error means the provider found no match; callers treat both "no match"
// and errors as "coordinates unknown" and carry on.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (*Coordinates, error)
}

// GeocoderConfig carries everything the client needs up front; nothing is
// read from ambient globals.
type GeocoderConfig struct {
	BaseURL   string // e.g. https://nominatim.openstreetmap.org
	APIKey    string // optional, sent as ?key= when set
	UserAgent string // most providers require one
	Timeout   time.Duration
}

type httpGeocoder struct {
	cfg    GeocoderConfig
	client *http.Client
}

func NewGeocoder(cfg GeocoderConfig) Geocoder {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &httpGeocoder{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

type geocodeHit struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (g *httpGeocoder) Resolve(ctx context.Context, address string) (*Coordinates, error) {
	if address == "" {
		return nil, nil
	}

	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")
	if g.cfg.APIKey != "" {
		q.Set("key", g.cfg.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.cfg.BaseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if g.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", g.cfg.UserAgent)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var hits []geocodeHit
	if err := json.NewDecoder(resp.Body).Decode(&hits); err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(hits[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("geocoder returned bad latitude %q", hits[0].Lat)
	}
	lon, err := strconv.ParseFloat(hits[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("geocoder returned bad longitude %q", hits[0].Lon)
	}

	return &Coordinates{Latitude: lat, Longitude: lon}, nil
}
