// Package fetch retrieves individual web pages and extracts readable
// article content from them.
package fetch

import (
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const maxTitleLength = 200

// Page is the extracted content of a fetched web page.
type Page struct {
	URL     string
	Title   string
	Content string
}

// Fetcher downloads pages and extracts their title and text content.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher creates a page fetcher with the given per-request timeout.
func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Fetch downloads the page at pageURL and extracts its content. When query
// is non-empty and any content line matches it, a digest of the matching
// lines is prepended to the full text.
func (f *Fetcher) Fetch(pageURL, query string) (*Page, error) {
	req, err := http.NewRequest("GET", pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	return Extract(doc, pageURL, query), nil
}

// Extract pulls the title and text content out of a parsed document.
func Extract(doc *goquery.Document, pageURL, query string) *Page {
	title := extractTitle(doc)
	if title == "" {
		title = "Report from " + pageURL
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		title = string([]rune(title)[:maxTitleLength])
	}

	content := extractContent(doc)
	if query != "" {
		if digest := queryDigest(content, query); digest != "" {
			content = digest + content
		}
	}

	return &Page{URL: pageURL, Title: title, Content: content}
}

// extractTitle tries the document title, then og:title, then the first h1.
func extractTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("head title").First().Text()); title != "" {
		return title
	}
	if og, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		if og = strings.TrimSpace(og); og != "" {
			return og
		}
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

// extractContent collects paragraph-level text. If the page has no usable
// paragraph structure it falls back to the whole body text.
func extractContent(doc *goquery.Document) string {
	var parts []string
	doc.Find("p, h1, h2, h3, h4, h5, h6, li").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if len(text) > 20 {
			parts = append(parts, text)
		}
	})
	if len(parts) > 0 {
		return strings.Join(parts, "\n\n")
	}
	return collapseWhitespace(doc.Find("body").Text())
}

// queryDigest builds a summary of the content lines containing the query
// term, capped at five, to be prepended to the full content. Returns ""
// when nothing matches.
func queryDigest(content, query string) string {
	needle := strings.ToLower(query)
	var matches []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.Contains(strings.ToLower(line), needle) {
			matches = append(matches, line)
		}
	}
	if len(matches) == 0 {
		return ""
	}

	shown := matches
	if len(shown) > 5 {
		shown = shown[:5]
	}
	digest := fmt.Sprintf("** EXTRACTION RESULTS FOR '%s' **\n", query)
	digest += strings.Join(shown, "\n- ")
	if extra := len(matches) - len(shown); extra > 0 {
		digest += fmt.Sprintf("\n... and %d more matches.", extra)
	}
	return digest + "\n" + strings.Repeat("=", 40) + "\n\n"
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
