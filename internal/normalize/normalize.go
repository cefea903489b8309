// Package normalize cleans raw feed and page text before analysis.
package normalize

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"
)

// mojibake maps common mis-decoded byte sequences to their intended
// characters. Feeds occasionally serve UTF-8 double-encoded as Latin-1.
var mojibake = strings.NewReplacer(
	"â€™", "'",
	"â€˜", "'",
	"â€œ", `"`,
	"â€", `"`,
	"â€“", "-",
	"â€”", "-",
	"â€¦", "...",
	"Â ", " ",
	" ", " ",
)

// Text strips markup from raw and returns clean, NFC-normalized plain text
// with collapsed whitespace.
func Text(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	if strings.ContainsAny(s, "<>") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
			doc.Find("script, style").Remove()
			s = doc.Text()
		}
	}

	s = mojibake.Replace(s)
	s = norm.NFC.String(s)
	return collapse(s)
}

// Title applies the same cleanup as Text and additionally enforces a
// single-line result.
func Title(raw string) string {
	return Text(raw)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
