package fetch

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse HTML: %v", err)
	}
	return doc
}

func TestExtractTitlePreference(t *testing.T) {
	tests := []struct {
		name  string
		html  string
		title string
	}{
		{
			name:  "head title wins",
			html:  `<html><head><title>Head Title</title><meta property="og:title" content="OG Title"></head><body><h1>H1 Title</h1></body></html>`,
			title: "Head Title",
		},
		{
			name:  "og title fallback",
			html:  `<html><head><meta property="og:title" content="OG Title"></head><body><h1>H1 Title</h1></body></html>`,
			title: "OG Title",
		},
		{
			name:  "h1 fallback",
			html:  `<html><head></head><body><h1>H1 Title</h1></body></html>`,
			title: "H1 Title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Extract(docFromHTML(t, tt.html), "https://example.com/a", "")
			if page.Title != tt.title {
				t.Errorf("expected title %q, got %q", tt.title, page.Title)
			}
		})
	}
}

func TestExtractTitleFallbackAndTruncation(t *testing.T) {
	page := Extract(docFromHTML(t, "<html><body></body></html>"), "https://example.com/x", "")
	if page.Title != "Report from https://example.com/x" {
		t.Errorf("unexpected fallback title: %q", page.Title)
	}

	long := strings.Repeat("a", 300)
	page = Extract(docFromHTML(t, "<html><head><title>"+long+"</title></head></html>"), "https://example.com/y", "")
	if len(page.Title) != 200 {
		t.Errorf("expected title truncated to 200 chars, got %d", len(page.Title))
	}

	arabic := strings.Repeat("صواريخ بالستية في سماء العاصمة ", 10)
	page = Extract(docFromHTML(t, "<html><head><title>"+arabic+"</title></head></html>"), "https://example.com/z", "")
	if !utf8.ValidString(page.Title) {
		t.Errorf("truncated title is invalid UTF-8: %q", page.Title)
	}
	if got := utf8.RuneCountInString(page.Title); got != 200 {
		t.Errorf("expected title truncated to 200 runes, got %d", got)
	}
}

func TestExtractContent(t *testing.T) {
	html := `<html><body>
		<p>This paragraph is long enough to be included in the output.</p>
		<p>short</p>
		<li>A list item that also carries enough text to be kept around.</li>
	</body></html>`

	page := Extract(docFromHTML(t, html), "https://example.com/a", "")
	if !strings.Contains(page.Content, "long enough to be included") {
		t.Errorf("expected paragraph in content, got %q", page.Content)
	}
	if strings.Contains(page.Content, "short") {
		t.Error("expected short fragments to be dropped")
	}
	if !strings.Contains(page.Content, "list item") {
		t.Error("expected list items in content")
	}
}

func TestExtractContentBodyFallback(t *testing.T) {
	page := Extract(docFromHTML(t, "<html><body>bare   text\nonly</body></html>"), "https://example.com/a", "")
	if page.Content != "bare text only" {
		t.Errorf("expected collapsed body text, got %q", page.Content)
	}
}

func TestQueryDigest(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for i := 0; i < 8; i++ {
		sb.WriteString("<p>Paragraph mentioning Missile systems and other details padded out.</p>")
	}
	sb.WriteString("<p>Unrelated paragraph with nothing of interest in it at all.</p>")
	sb.WriteString("</body></html>")

	page := Extract(docFromHTML(t, sb.String()), "https://example.com/a", "missile")
	if !strings.HasPrefix(page.Content, "** EXTRACTION RESULTS FOR 'missile' **") {
		t.Errorf("expected digest header, got %q", page.Content)
	}
	digest, _, ok := strings.Cut(page.Content, strings.Repeat("=", 40))
	if !ok {
		t.Fatalf("expected digest divider, got %q", page.Content)
	}
	if got := strings.Count(digest, "Paragraph mentioning"); got != 5 {
		t.Errorf("expected 5 matches in digest, got %d", got)
	}
	if !strings.Contains(digest, "... and 3 more matches.") {
		t.Errorf("expected overflow note, got %q", digest)
	}
	if !strings.Contains(page.Content, "Unrelated paragraph") {
		t.Error("expected full content kept after the digest")
	}
}

func TestQueryDigestNoMatches(t *testing.T) {
	page := Extract(docFromHTML(t, "<html><body><p>Nothing relevant here today, just filler text.</p></body></html>"), "https://example.com/a", "submarine")
	if strings.Contains(page.Content, "EXTRACTION RESULTS") {
		t.Errorf("expected no digest when nothing matches, got %q", page.Content)
	}
	if !strings.Contains(page.Content, "Nothing relevant here") {
		t.Errorf("expected content preserved, got %q", page.Content)
	}
}

func TestFetchServesPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><title>Hosted page</title></head>
<body><p>This paragraph is long enough to count as article content.</p></body></html>`)
	}))
	defer srv.Close()

	f := NewFetcher(5*time.Second, "intelwire-test/1.0")
	page, err := f.Fetch(srv.URL, "")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if page.Title != "Hosted page" {
		t.Errorf("Title = %q, want 'Hosted page'", page.Title)
	}
	if !strings.Contains(page.Content, "article content") {
		t.Errorf("Content = %q, missing paragraph text", page.Content)
	}
}

func TestFetchNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher(5*time.Second, "")
	if _, err := f.Fetch(srv.URL, ""); err == nil {
		t.Fatal("expected error for 404 response")
	}
}
