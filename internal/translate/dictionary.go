package translate

import (
	"fmt"
	"regexp"
	"sort"
	"sync"

	"intelwire/internal/core"
	"intelwire/internal/logger"
)

// termStore provides the curated term dictionary.
type termStore interface {
	ListSovereignTerms() ([]core.SovereignTerm, error)
}

type compiledTerm struct {
	re          *regexp.Regexp
	replacement string
	length      int
}

// Dictionary performs glossary-based substitution using the curated term
// table. It is the fallback path when the model translation is unavailable.
type Dictionary struct {
	store termStore

	mu    sync.Mutex
	terms []compiledTerm
	ready bool
}

// NewDictionary creates a dictionary backed by the given term store. Terms
// are compiled lazily on first use.
func NewDictionary(store termStore) *Dictionary {
	return &Dictionary{store: store}
}

// Refresh recompiles the term set from storage. Call after seeding or
// editing terms.
func (d *Dictionary) Refresh() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.load()
}

// load compiles terms, longest English term first so multi-word phrases win
// over their substrings. Caller must hold d.mu.
func (d *Dictionary) load() error {
	terms, err := d.store.ListSovereignTerms()
	if err != nil {
		return fmt.Errorf("failed to load sovereign terms: %w", err)
	}

	sort.SliceStable(terms, func(i, j int) bool {
		return len(terms[i].EnglishTerm) > len(terms[j].EnglishTerm)
	})

	compiled := make([]compiledTerm, 0, len(terms))
	for _, term := range terms {
		if term.EnglishTerm == "" {
			continue
		}
		pattern := term.EnglishTerm
		if !term.IsRegex {
			pattern = `\b` + regexp.QuoteMeta(term.EnglishTerm) + `\b`
		}
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			logger.Warn("skipping invalid term pattern", "term", term.EnglishTerm, "error", err)
			continue
		}
		compiled = append(compiled, compiledTerm{
			re:          re,
			replacement: term.ArabicTranslation,
			length:      len(term.EnglishTerm),
		})
	}

	d.terms = compiled
	d.ready = true
	return nil
}

// Apply substitutes every known term in text with its curated translation.
// Unknown text passes through unchanged.
func (d *Dictionary) Apply(text string) string {
	if text == "" {
		return text
	}

	d.mu.Lock()
	if !d.ready {
		if err := d.load(); err != nil {
			logger.Error("dictionary load failed", err)
			d.mu.Unlock()
			return text
		}
	}
	terms := d.terms
	d.mu.Unlock()

	for _, term := range terms {
		text = term.re.ReplaceAllString(text, term.replacement)
	}
	return text
}
