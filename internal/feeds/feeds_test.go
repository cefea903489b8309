package feeds

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseRSS(t *testing.T) {
	data := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>World Desk</title>
    <link>https://example.com</link>
    <item>
      <title>Border incident reported</title>
      <link>https://example.com/articles/1</link>
      <description>Initial reports of an incident near the border.</description>
      <pubDate>Mon, 02 Jan 2006 15:04:05 GMT</pubDate>
    </item>
    <item>
      <title>Second story</title>
      <link>https://example.com/articles/2</link>
      <description>More details.</description>
      <pubDate>not a date</pubDate>
    </item>
  </channel>
</rss>`)

	items, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Title != "Border incident reported" {
		t.Errorf("unexpected title: %q", items[0].Title)
	}
	if items[0].Link != "https://example.com/articles/1" {
		t.Errorf("unexpected link: %q", items[0].Link)
	}
	if items[0].Published.IsZero() {
		t.Error("expected parsed publish date")
	}
	if !items[1].Published.IsZero() {
		t.Errorf("expected zero time for unparseable date, got %v", items[1].Published)
	}
}

func TestParseAtom(t *testing.T) {
	data := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Analysis Feed</title>
  <entry>
    <title>Naval movement observed</title>
    <link rel="alternate" href="https://example.org/posts/7"/>
    <summary>Vessels observed transiting the strait.</summary>
    <published>2024-03-01T09:30:00Z</published>
  </entry>
</feed>`)

	items, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Link != "https://example.org/posts/7" {
		t.Errorf("unexpected link: %q", items[0].Link)
	}
	want := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	if !items[0].Published.Equal(want) {
		t.Errorf("expected %v, got %v", want, items[0].Published)
	}
}

func TestParseAtomFallsBackToContentAndUpdated(t *testing.T) {
	data := []byte(`<?xml version="1.0"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Feed</title>
  <entry>
    <title>Entry</title>
    <link href="https://example.org/a"/>
    <content>Full body text.</content>
    <updated>2024-05-10T12:00:00Z</updated>
  </entry>
</feed>`)

	items, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if items[0].Summary != "Full body text." {
		t.Errorf("expected content fallback, got %q", items[0].Summary)
	}
	if items[0].Published.IsZero() {
		t.Error("expected updated date fallback")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse([]byte("<html><body>not a feed</body></html>")); err == nil {
		t.Fatal("expected error for non-feed input")
	}
}

func TestParseRSSDateFormats(t *testing.T) {
	tests := []struct {
		input string
		zero  bool
	}{
		{"Mon, 02 Jan 2006 15:04:05 GMT", false},
		{"Mon, 2 Jan 2006 15:04:05 +0000", false},
		{"2006-01-02T15:04:05Z", false},
		{"", true},
		{"yesterday", true},
	}

	for _, tt := range tests {
		got := parseRSSDate(tt.input)
		if got.IsZero() != tt.zero {
			t.Errorf("parseRSSDate(%q): zero=%v, want zero=%v", tt.input, got.IsZero(), tt.zero)
		}
	}
}

func TestFetchServesFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "intelwire-test/1.0" {
			t.Errorf("User-Agent = %q, want intelwire-test/1.0", got)
		}
		fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Wire</title>
    <item>
      <title>Hosted item</title>
      <link>https://example.com/hosted</link>
      <description>Body</description>
      <pubDate>Mon, 02 Jan 2006 15:04:05 GMT</pubDate>
    </item>
  </channel>
</rss>`)
	}))
	defer srv.Close()

	f := NewFetcher(5*time.Second, "intelwire-test/1.0")
	items, err := f.Fetch(srv.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Title != "Hosted item" {
		t.Errorf("Title = %q, want 'Hosted item'", items[0].Title)
	}
}

func TestFetchNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := NewFetcher(5*time.Second, "")
	if _, err := f.Fetch(srv.URL); err == nil {
		t.Fatal("expected error for 503 response")
	}
}
