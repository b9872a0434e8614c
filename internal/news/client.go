package news

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ErrMalformedFeed marks feed documents that did not parse as XML. Callers
// downgrade it to a descriptive message instead of failing the lookup.
var ErrMalformedFeed = errors.New("malformed news feed")

// FeedParams pins the Google News market for the RSS search.
type FeedParams struct {
	HL   string
	GL   string
	CEID string
}

// Client queries the Google News RSS search endpoint.
type Client struct {
	client  *http.Client
	baseURL string
	params  FeedParams
	timeout time.Duration
}

func NewClient(client *http.Client, baseURL string, params FeedParams, timeout time.Duration) *Client {
	return &Client{client: client, baseURL: baseURL, params: params, timeout: timeout}
}

type rssFeed struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	Link        string `xml:"link"`
	Source      string `xml:"source"`
}

// Fetch runs the search query and returns the feed items in document order.
// Transport and HTTP failures are returned as-is; an unparseable feed is
// wrapped in ErrMalformedFeed.
func (c *Client) Fetch(ctx context.Context, query string) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	values := url.Values{}
	values.Set("q", query)
	values.Set("hl", c.params.HL)
	values.Set("gl", c.params.GL)
	values.Set("ceid", c.params.CEID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build news request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news feed returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read news feed: %w", err)
	}

	var feed rssFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFeed, err)
	}

	items := make([]Item, 0, len(feed.Channel.Items))
	for _, raw := range feed.Channel.Items {
		items = append(items, newItem(raw))
	}
	return items, nil
}

func newItem(raw rssItem) Item {
	item := Item{
		Title:       raw.Title,
		Description: stripHTML(raw.Description),
		Link:        raw.Link,
		Source:      raw.Source,
	}
	if item.Title == "" {
		item.Title = "Untitled"
	}
	if item.Source == "" {
		item.Source = "Local outlet"
	}
	if ts, ok := parsePubDate(raw.PubDate); ok {
		item.Published = ts
		item.HasDate = true
	}
	return item
}

// parsePubDate accepts the RFC 1123 variants Google News emits.
func parsePubDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC1123, time.RFC1123Z} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// stripHTML reduces a description fragment to its visible text so keyword
// matching sees headlines, not markup.
func stripHTML(fragment string) string {
	if fragment == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	return strings.TrimSpace(doc.Text())
}
