package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client fetches daily and hourly forecast series from the Open-Meteo
// forecast API.
type Client struct {
	client  *http.Client
	baseURL string
	timeout time.Duration
}

func NewClient(client *http.Client, baseURL string, timeout time.Duration) *Client {
	return &Client{client: client, baseURL: baseURL, timeout: timeout}
}

// Fetch pulls hourly and daily forecast data for the coordinates. A non-empty
// date bounds the series to that single day; otherwise the API returns today.
func (c *Client) Fetch(ctx context.Context, lat, lon float64, date string) (*Forecast, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	values.Set("timezone", "auto")
	values.Set("hourly", "temperature_2m,precipitation_probability,relative_humidity_2m")
	values.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_probability_max,sunrise,sunset")
	if date != "" {
		values.Set("start_date", date)
		values.Set("end_date", date)
	} else {
		values.Set("forecast_days", "1")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build forecast request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forecast request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast returned %s", resp.Status)
	}

	var forecast Forecast
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return nil, fmt.Errorf("decode forecast response: %w", err)
	}
	return &forecast, nil
}
