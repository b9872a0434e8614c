package poi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// SearchRadiusMeters bounds the around-query sent to Overpass.
const SearchRadiusMeters = 8000

// Element is a single Overpass result. Nodes carry coordinates directly;
// ways and relations carry a center object instead.
type Element struct {
	Type   string            `json:"type"`
	Lat    *float64          `json:"lat"`
	Lon    *float64          `json:"lon"`
	Center *Center           `json:"center"`
	Tags   map[string]string `json:"tags"`
}

// Center is the computed centroid Overpass attaches to non-node elements.
type Center struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Coordinates resolves the element position, preferring direct lat/lon over
// the center fallback.
func (e Element) Coordinates() (lat, lon float64, ok bool) {
	if e.Lat != nil && e.Lon != nil {
		return *e.Lat, *e.Lon, true
	}
	if e.Center != nil {
		return e.Center.Lat, e.Center.Lon, true
	}
	return 0, 0, false
}

// Client posts Overpass QL queries to the interpreter endpoint.
type Client struct {
	client  *http.Client
	baseURL string
	timeout time.Duration
}

// NewClient returns a client against the given interpreter URL.
func NewClient(client *http.Client, baseURL string, timeout time.Duration) *Client {
	return &Client{client: client, baseURL: baseURL, timeout: timeout}
}

// BuildQuery renders the around-radius query covering every category in the
// policy table.
func BuildQuery(lat, lon float64) string {
	var b strings.Builder
	b.WriteString("\n[out:json][timeout:25];\n(\n")
	for _, c := range policy.Categories {
		fmt.Fprintf(&b, "  node(around:%d,%s,%s)[%q=%q];\n",
			SearchRadiusMeters, formatCoord(lat), formatCoord(lon), c.Key, c.Value)
	}
	b.WriteString(");\nout center;\n")
	return b.String()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Query fetches all tagged elements around the coordinates.
func (c *Client) Query(ctx context.Context, lat, lon float64) ([]Element, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(BuildQuery(lat, lon)))
	if err != nil {
		return nil, fmt.Errorf("build overpass request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overpass returned %s", resp.Status)
	}

	var payload struct {
		Elements []Element `json:"elements"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode overpass response: %w", err)
	}
	return payload.Elements, nil
}
