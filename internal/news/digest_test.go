package news

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func feedServer(t *testing.T, items string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); !strings.Contains(got, "events OR festival OR sports OR concert") {
			t.Errorf("expected category clause in query, got %q", got)
		}
		w.Header().Set("Content-Type", "application/xml")
		fmt.Fprintf(w, `<?xml version="1.0"?><rss version="2.0"><channel><title>search</title>%s</channel></rss>`, items)
	}))
}

func serviceFor(srv *httptest.Server) *Service {
	client := NewClient(srv.Client(), srv.URL, FeedParams{HL: "en", GL: "US", CEID: "US:en"}, 5*time.Second)
	return NewService(client, discardLogger())
}

func rssEntry(title, pubDate, link, source, description string) string {
	return fmt.Sprintf(
		`<item><title>%s</title><description>%s</description><pubDate>%s</pubDate><link>%s</link><source url="http://s">%s</source></item>`,
		title, description, pubDate, link, source,
	)
}

func TestDigestFormatsMatchingItems(t *testing.T) {
	srv := feedServer(t, rssEntry("Cricket finals at Gachibowli", "Sun, 01 Jun 2025 08:00:00 GMT", "http://example.com/1", "Deccan Chronicle", ""))
	defer srv.Close()

	got, err := serviceFor(srv).Digest(context.Background(), "Hyderabad", "2025-06-01", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "City news for Hyderabad on 2025-06-01:\n") {
		t.Errorf("unexpected header:\n%s", got)
	}
	if !strings.Contains(got, "- Cricket finals at Gachibowli (Deccan Chronicle, ") {
		t.Errorf("expected formatted headline, got:\n%s", got)
	}
	if !strings.Contains(got, "\n  http://example.com/1") {
		t.Errorf("expected indented link line, got:\n%s", got)
	}
}

func TestDigestDropsDateMismatchEvenWhenKeywordsMatch(t *testing.T) {
	srv := feedServer(t,
		rssEntry("Cricket carnival", "Mon, 02 Jun 2025 08:00:00 GMT", "http://example.com/off", "A", "")+
			rssEntry("Quiet day", "Sun, 01 Jun 2025 09:00:00 GMT", "http://example.com/on", "B", "cricket highlights inside"),
	)
	defer srv.Close()

	got, err := serviceFor(srv).Digest(context.Background(), "Hyderabad", "2025-06-01", "cricket")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(got, "Cricket carnival") {
		t.Errorf("expected off-date item to be dropped, got:\n%s", got)
	}
	if !strings.Contains(got, "Quiet day") {
		t.Errorf("expected on-date description match to survive, got:\n%s", got)
	}
}

func TestDigestKeepsUnparseableDates(t *testing.T) {
	srv := feedServer(t, rssEntry("Mystery timing show", "sometime soon", "http://example.com/2", "C", ""))
	defer srv.Close()

	got, err := serviceFor(srv).Digest(context.Background(), "Hyderabad", "2025-06-01", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "Mystery timing show (C, recent)") {
		t.Errorf("expected unparseable date to be kept with 'recent' age, got:\n%s", got)
	}
}

func TestDigestIgnoresKeywordsInsideMarkup(t *testing.T) {
	srv := feedServer(t,
		rssEntry("Street food walk", "Sun, 01 Jun 2025 10:00:00 GMT", "http://example.com/3", "D",
			`&lt;a href="http://festival.example.com/x"&gt;A guided walk downtown&lt;/a&gt;`),
	)
	defer srv.Close()

	got, err := serviceFor(srv).Digest(context.Background(), "Hyderabad", "2025-06-01", "festival")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "No date-matching headlines found") {
		t.Errorf("keyword hidden in markup should not match, got:\n%s", got)
	}
}

func TestDigestCapsAtFiveItems(t *testing.T) {
	var entries strings.Builder
	for i := 0; i < 7; i++ {
		entries.WriteString(rssEntry(
			fmt.Sprintf("Headline %d", i),
			"Sun, 01 Jun 2025 08:00:00 GMT",
			fmt.Sprintf("http://example.com/%d", i),
			"E", "",
		))
	}
	srv := feedServer(t, entries.String())
	defer srv.Close()

	got, err := serviceFor(srv).Digest(context.Background(), "Hyderabad", "2025-06-01", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := strings.Count(got, "(E, "); n != 5 {
		t.Errorf("expected 5 headlines, got %d:\n%s", n, got)
	}
}

func TestDigestFallbackNamesSampleTitles(t *testing.T) {
	srv := feedServer(t,
		rssEntry("T1", "Mon, 02 Jun 2025 08:00:00 GMT", "l1", "A", "")+
			rssEntry("T2", "Mon, 02 Jun 2025 08:00:00 GMT", "l2", "B", "")+
			rssEntry("T3", "Mon, 02 Jun 2025 08:00:00 GMT", "l3", "C", "")+
			rssEntry("T4", "Mon, 02 Jun 2025 08:00:00 GMT", "l4", "D", ""),
	)
	defer srv.Close()

	got, err := serviceFor(srv).Digest(context.Background(), "Hyderabad", "2025-06-01", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "No date-matching headlines found for Hyderabad on 2025-06-01.\nSample current stories: T1, T2, T3."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestDigestFallbackWithEmptyFeed(t *testing.T) {
	srv := feedServer(t, "")
	defer srv.Close()

	got, err := serviceFor(srv).Digest(context.Background(), "Hyderabad", "2025-06-01", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "Sample current stories: N/A.") {
		t.Errorf("expected N/A sample for empty feed, got:\n%s", got)
	}
}

func TestDigestRepeatableOverSameFeed(t *testing.T) {
	srv := feedServer(t,
		rssEntry("Art walk", "", "http://example.com/a", "A", "")+
			rssEntry("Night market", "", "http://example.com/b", "B", ""),
	)
	defer srv.Close()

	svc := serviceFor(srv)
	first, err := svc.Digest(context.Background(), "Hyderabad", "2025-06-01", "market")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Digest(context.Background(), "Hyderabad", "2025-06-01", "market")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("same feed and filters produced different digests:\n%s\n---\n%s", first, second)
	}
	if !strings.Contains(first, "Night market") || strings.Contains(first, "Art walk") {
		t.Errorf("keyword filter should keep only the market item, got:\n%s", first)
	}
}

func TestDigestMissingLocation(t *testing.T) {
	svc := NewService(NewClient(http.DefaultClient, "http://invalid.test", FeedParams{}, time.Second), discardLogger())

	got, err := svc.Digest(context.Background(), "  ", "2025-06-01", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Location not provided for news lookup." {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestDigestMalformedFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not xml <<<"))
	}))
	defer srv.Close()

	got, err := serviceFor(srv).Digest(context.Background(), "Hyderabad", "2025-06-01", "")
	if err != nil {
		t.Fatalf("expected soft failure, got error: %v", err)
	}
	if got != "Unable to parse news feed for Hyderabad." {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestDigestPropagatesTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	if _, err := serviceFor(srv).Digest(context.Background(), "Hyderabad", "2025-06-01", ""); err == nil {
		t.Fatal("expected transport error to propagate")
	}
}
