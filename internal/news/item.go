package news

import (
	"fmt"
	"time"
)

// Item is one feed entry with its parse state. HasDate is false when the
// item carried no publish date or one we could not parse; such items are
// kept by the date filter rather than dropped.
type Item struct {
	Title       string
	Description string
	Link        string
	Source      string
	Published   time.Time
	HasDate     bool
}

// Age renders a coarse recency bucket for display next to the headline.
func (i Item) Age(now time.Time) string {
	if !i.HasDate {
		return "recent"
	}
	hours := int(now.UTC().Sub(i.Published.UTC()).Hours())
	if hours < 1 {
		return "just now"
	}
	if hours < 24 {
		return fmt.Sprintf("%dh ago", hours)
	}
	return fmt.Sprintf("%dd ago", hours/24)
}
