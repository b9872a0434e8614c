package planner

import (
	"context"
	"log/slog"
)

// WeatherService renders the outlook text for a location and date.
type WeatherService interface {
	OutlookFor(ctx context.Context, location, date string) (string, error)
}

// NewsService digests city headlines for a location, date, and interest list.
type NewsService interface {
	Digest(ctx context.Context, location, date, interests string) (string, error)
}

// VenueService lists ranked venues near a location.
type VenueService interface {
	Nearby(ctx context.Context, location, interest string) (string, error)
}

// Toolbelt bundles the enrichment services the agent tools draw on. It is
// passed as the run context so every tool execution shares one wiring.
type Toolbelt struct {
	Weather WeatherService
	News    NewsService
	Venues  VenueService
	Logger  *slog.Logger
}
