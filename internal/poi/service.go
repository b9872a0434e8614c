package poi

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nvegesna/planmyday/internal/geo"
)

// Geocoder resolves a location string to coordinates.
type Geocoder interface {
	Lookup(ctx context.Context, location string) (*geo.Place, error)
}

// Service recommends venues around a resolved location.
type Service struct {
	geocoder Geocoder
	client   *Client
	logger   *slog.Logger
}

// NewService wires a geocoder and Overpass client into a venue service.
func NewService(geocoder Geocoder, client *Client, logger *slog.Logger) *Service {
	return &Service{geocoder: geocoder, client: client, logger: logger}
}

// Nearby geocodes the location, queries venues within the fixed radius, and
// renders the ranked shortlist. Unknown locations and empty result sets
// come back as descriptive strings; transport failures are returned as
// errors.
func (s *Service) Nearby(ctx context.Context, location, interest string) (string, error) {
	place, err := s.geocoder.Lookup(ctx, location)
	if err != nil {
		return "", err
	}
	if place == nil {
		return fmt.Sprintf("Unable to locate coordinates for '%s'.", location), nil
	}

	elements, err := s.client.Query(ctx, place.Latitude, place.Longitude)
	if err != nil {
		return "", err
	}

	interest = strings.ToLower(interest)
	venues := Rank(elements, place.Latitude, place.Longitude, interest)
	if len(venues) == 0 {
		return fmt.Sprintf("No notable venues were detected within 8km of %s.", place.Label), nil
	}

	s.logger.Debug("ranked venues", "location", place.Label, "count", len(venues))
	return FormatVenues(place.Label, venues, interest), nil
}
