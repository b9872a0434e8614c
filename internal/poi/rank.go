package poi

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nvegesna/planmyday/internal/common"
	"github.com/nvegesna/planmyday/internal/geo"
)

// MaxVenues caps how many venues the rendered shortlist includes.
const MaxVenues = 7

// Venue is a named place with its distance from the origin and the
// interest-adjusted score used for ordering.
type Venue struct {
	Name       string
	Label      string
	DistanceKm float64
	Score      float64
}

// Rank turns raw elements into an ordered shortlist. Unnamed elements and
// repeated names are dropped (first occurrence wins), scores start at the
// distance in kilometers, interest bonuses subtract from them, and the
// result is floored at zero. Ties keep their arrival order.
func Rank(elements []Element, originLat, originLon float64, interest string) []Venue {
	seen := make(map[string]struct{})
	var venues []Venue
	for _, e := range elements {
		name := e.Tags["name"]
		if name == "" {
			continue
		}
		lat, lon, ok := e.Coordinates()
		if !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		distance := geo.DistanceKm(originLat, originLon, lat, lon)
		label := LabelFor(e.Tags)
		score := applyBonuses(distance, label, interest)
		if score < 0 {
			score = 0
		}
		venues = append(venues, Venue{Name: name, Label: label, DistanceKm: distance, Score: score})
	}

	sort.SliceStable(venues, func(i, j int) bool { return venues[i].Score < venues[j].Score })
	return venues
}

func applyBonuses(score float64, label, interest string) float64 {
	if interest == "" {
		return score
	}
	lowLabel := strings.ToLower(label)
	for _, b := range policy.Bonuses {
		if !common.HasAny(interest, b.Triggers...) {
			continue
		}
		switch {
		case b.LabelContains != "" && strings.Contains(lowLabel, b.LabelContains):
			score -= b.Discount
		case b.LabelEquals != "" && label == b.LabelEquals:
			score -= b.Discount
		}
	}
	return score
}

// FormatVenues renders the shortlist block handed to the agents.
func FormatVenues(placeLabel string, venues []Venue, interest string) string {
	top := venues
	if len(top) > MaxVenues {
		top = top[:MaxVenues]
	}

	lines := make([]string, 0, len(top)+2)
	lines = append(lines, fmt.Sprintf("Highlighted venues near %s (within ~8 km):", placeLabel))
	for _, v := range top {
		lines = append(lines, fmt.Sprintf("- %s (%s) · %.1f km away", v.Name, v.Label, v.DistanceKm))
	}
	if interest != "" {
		lines = append(lines, fmt.Sprintf("Interest bias applied for: %s.", interest))
	}
	return strings.Join(lines, "\n")
}
