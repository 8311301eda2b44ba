package geo

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Locator answers "where is the caller right now" on a best-effort basis.
// One attempt, one outcome: nil when the position cannot be determined for
// any reason. Never returns an error.
type Locator interface {
	Current(ctx context.Context) *Coordinates
}

// IPLocator asks an IP-geolocation JSON endpoint for the caller's position.
type IPLocator struct {
	Endpoint string // e.g. http://ip-api.com/json
	Client   *http.Client
}

func NewIPLocator(endpoint string) *IPLocator {
	return &IPLocator{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 5 * time.Second},
	}
}

type ipLocation struct {
	Status string  `json:"status"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
}

func (l *IPLocator) Current(ctx context.Context) *Coordinates {
	if l == nil || l.Endpoint == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.Endpoint, nil)
	if err != nil {
		return nil
	}

	resp, err := l.Client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var loc ipLocation
	if err := json.NewDecoder(resp.Body).Decode(&loc); err != nil {
		return nil
	}
	if loc.Status != "" && loc.Status != "success" {
		return nil
	}
	if loc.Lat == 0 && loc.Lon == 0 {
		return nil
	}

	return &Coordinates{Latitude: loc.Lat, Longitude: loc.Lon}
}
