package weather

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nvegesna/planmyday/internal/common"
	"github.com/nvegesna/planmyday/internal/geo"
)

// Geocoder resolves a free-text location to coordinates and a label.
type Geocoder interface {
	Lookup(ctx context.Context, location string) (*geo.Place, error)
}

// Service turns a location and date into the textual weather outlook.
type Service struct {
	geocoder Geocoder
	client   *Client
	logger   *slog.Logger
}

func NewService(geocoder Geocoder, client *Client, logger *slog.Logger) *Service {
	return &Service{geocoder: geocoder, client: client, logger: logger}
}

// OutlookFor resolves the location, fetches its single-day forecast, and
// reduces it to the outlook text. An unknown location yields a descriptive
// string the caller can relay, not an error; transport failures propagate.
func (s *Service) OutlookFor(ctx context.Context, location, date string) (string, error) {
	place, err := s.geocoder.Lookup(ctx, location)
	if err != nil {
		return "", err
	}
	if place == nil {
		return fmt.Sprintf("Unable to locate coordinates for '%s'. Ask the user for a clearer location.", location), nil
	}

	day := common.NormalizeDate(date, time.Now())
	forecast, err := s.client.Fetch(ctx, place.Latitude, place.Longitude, day)
	if err != nil {
		return "", err
	}

	s.logger.Debug("built weather outlook", "location", place.Label, "date", day)
	return Outlook(place.Label, day, time.Now(), forecast), nil
}
