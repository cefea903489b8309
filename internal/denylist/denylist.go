// Package denylist filters out-of-domain sources and entries by keyword.
package denylist

import (
	"strings"
	"sync"

	"intelwire/internal/logger"
)

type keywordStore interface {
	ListActiveIgnoredKeywords() ([]string, error)
}

// Denylist is a process-wide keyword cache, lazily populated on first use
// and invalidated only by an explicit Refresh.
type Denylist struct {
	store keywordStore

	mu       sync.Mutex
	keywords []string
	ready    bool
}

// New creates a denylist backed by the given store.
func New(store keywordStore) *Denylist {
	return &Denylist{store: store}
}

// Refresh reloads the keyword set from storage.
func (d *Denylist) Refresh() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.load()
}

// load reads active keywords. Caller must hold d.mu. An unreadable table
// leaves the list empty so processing continues permissively.
func (d *Denylist) load() error {
	keywords, err := d.store.ListActiveIgnoredKeywords()
	if err != nil {
		logger.Warn("failed to load denylist, continuing without filters", "error", err)
		d.keywords = nil
		d.ready = true
		return err
	}

	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			lowered = append(lowered, kw)
		}
	}
	d.keywords = lowered
	d.ready = true
	return nil
}

// Blocked reports whether any of the given texts contains a denylisted
// keyword, case-insensitively.
func (d *Denylist) Blocked(texts ...string) bool {
	d.mu.Lock()
	if !d.ready {
		_ = d.load()
	}
	keywords := d.keywords
	d.mu.Unlock()

	for _, text := range texts {
		lowered := strings.ToLower(text)
		for _, kw := range keywords {
			if strings.Contains(lowered, kw) {
				return true
			}
		}
	}
	return false
}
