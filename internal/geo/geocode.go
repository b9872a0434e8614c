package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nvegesna/planmyday/internal/common"
)

// Place is a resolved location with a human-readable label.
type Place struct {
	Latitude  float64
	Longitude float64
	Label     string
}

// Geocoder resolves free-text locations via the Open-Meteo geocoding API.
type Geocoder struct {
	client  *http.Client
	baseURL string
	timeout time.Duration
}

func NewGeocoder(client *http.Client, baseURL string, timeout time.Duration) *Geocoder {
	return &Geocoder{client: client, baseURL: baseURL, timeout: timeout}
}

// Lookup resolves a location string to coordinates and a display label built
// from name/region/country. A blank or unmatched location returns (nil, nil)
// so callers can phrase the miss for the user; transport and decoding
// failures are returned as errors.
func (g *Geocoder) Lookup(ctx context.Context, location string) (*Place, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	values := url.Values{}
	values.Set("name", location)
	values.Set("count", "1")
	values.Set("language", "en")
	values.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build geocoding request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding returned %s", resp.Status)
	}

	var payload struct {
		Results []struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Name      string  `json:"name"`
			Admin1    string  `json:"admin1"`
			Country   string  `json:"country"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode geocoding response: %w", err)
	}
	if len(payload.Results) == 0 {
		return nil, nil
	}

	match := payload.Results[0]
	return &Place{
		Latitude:  match.Latitude,
		Longitude: match.Longitude,
		Label:     common.JoinNonEmpty(", ", match.Name, match.Admin1, match.Country),
	}, nil
}
