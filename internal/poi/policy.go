package poi

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed policy.yaml
var policyYAML []byte

// Category pairs an OSM tag with the display label its venues get.
type Category struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// Bonus lowers a venue's score when the interest text mentions any of the
// trigger words and the venue label matches.
type Bonus struct {
	Triggers      []string `yaml:"triggers"`
	LabelContains string   `yaml:"label_contains"`
	LabelEquals   string   `yaml:"label_equals"`
	Discount      float64  `yaml:"discount"`
}

// Policy holds the category table and bonus rules embedded with the binary.
type Policy struct {
	Categories []Category `yaml:"categories"`
	Bonuses    []Bonus    `yaml:"bonuses"`
}

var policy = loadPolicy()

func loadPolicy() Policy {
	var p Policy
	if err := yaml.Unmarshal(policyYAML, &p); err != nil {
		panic("poi: invalid embedded policy: " + err.Error())
	}
	return p
}

// LabelFor scans the category table in order and returns the label of the
// first tag pair the element carries. Unmatched elements fall back to the
// raw amenity, leisure, or tourism value, then to a generic label.
func LabelFor(tags map[string]string) string {
	for _, c := range policy.Categories {
		if tags[c.Key] == c.Value {
			return c.Label
		}
	}
	for _, key := range []string{"amenity", "leisure", "tourism"} {
		if v := tags[key]; v != "" {
			return v
		}
	}
	return "Point of interest"
}
