package news

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nvegesna/planmyday/internal/common"
)

// Service fetches city headlines and reduces them to a filtered digest.
type Service struct {
	client *Client
	logger *slog.Logger
}

func NewService(client *Client, logger *slog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// Digest returns up to five headlines for the location, filtered to the
// target date and the comma-separated interest keywords. Items whose publish
// date parsed but does not match the date are dropped; unparseable dates are
// kept. When nothing survives, the digest falls back to naming a few current
// stories so the planner still has context. A missing location or an
// unparseable feed produces a descriptive string, never an error.
func (s *Service) Digest(ctx context.Context, location, date, interests string) (string, error) {
	if strings.TrimSpace(location) == "" {
		return "Location not provided for news lookup.", nil
	}

	day := common.NormalizeDate(date, time.Now())
	keywords := splitKeywords(interests)

	items, err := s.client.Fetch(ctx, location+" events OR festival OR sports OR concert")
	if err != nil {
		if errors.Is(err, ErrMalformedFeed) {
			s.logger.Warn("news feed did not parse", "location", location, "err", err)
			return fmt.Sprintf("Unable to parse news feed for %s.", location), nil
		}
		return "", err
	}

	now := time.Now()
	var lines []string
	for _, item := range items {
		if item.HasDate && item.Published.UTC().Format(common.ISODate) != day {
			continue
		}
		if len(keywords) > 0 && !matchesKeywords(item, keywords) {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s (%s, %s)\n  %s", item.Title, item.Source, item.Age(now), item.Link))
		if len(lines) == 5 {
			break
		}
	}

	if len(lines) == 0 {
		sample := "N/A"
		if len(items) > 0 {
			titles := make([]string, 0, 3)
			for _, item := range items[:min(len(items), 3)] {
				titles = append(titles, item.Title)
			}
			sample = strings.Join(titles, ", ")
		}
		return fmt.Sprintf("No date-matching headlines found for %s on %s.\nSample current stories: %s.", location, day, sample), nil
	}

	return fmt.Sprintf("City news for %s on %s:\n%s", location, day, strings.Join(lines, "\n")), nil
}

func splitKeywords(interests string) []string {
	var keywords []string
	for _, token := range strings.Split(interests, ",") {
		token = strings.ToLower(strings.TrimSpace(token))
		if token != "" {
			keywords = append(keywords, token)
		}
	}
	return keywords
}

func matchesKeywords(item Item, keywords []string) bool {
	title := strings.ToLower(item.Title)
	desc := strings.ToLower(item.Description)
	return common.HasAny(title, keywords...) || common.HasAny(desc, keywords...)
}
