// Package extract finds known entities in report text and records them.
package extract

import (
	"fmt"
	"strings"

	"intelwire/internal/core"
	"intelwire/internal/logger"
)

type entityStore interface {
	ListEntityPatterns() ([]core.EntityPattern, error)
	GetOrCreateEntity(name string, entityType core.EntityType) (*core.Entity, error)
	AttachEntity(reportID, entityID string) error
}

// Extractor matches configured entity patterns against report text.
type Extractor struct {
	store entityStore
}

// NewExtractor creates an extractor backed by the given store.
func NewExtractor(store entityStore) *Extractor {
	return &Extractor{store: store}
}

// Extract scans the report's title and content plus their translations for
// known entity patterns and attaches each match to the report. It returns
// the entities found.
func (e *Extractor) Extract(report *core.Report) ([]core.Entity, error) {
	patterns, err := e.store.ListEntityPatterns()
	if err != nil {
		return nil, fmt.Errorf("failed to load entity patterns: %w", err)
	}

	haystack := strings.Join([]string{
		report.Title,
		report.Content,
		report.TranslatedTitle,
		report.TranslatedContent,
	}, "\n")

	var found []core.Entity
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		if pattern.Pattern == "" || seen[pattern.Pattern] {
			continue
		}
		if !strings.Contains(haystack, pattern.Pattern) {
			continue
		}
		seen[pattern.Pattern] = true

		entity, err := e.store.GetOrCreateEntity(pattern.Pattern, pattern.EntityType)
		if err != nil {
			logger.Warn("failed to resolve entity", "pattern", pattern.Pattern, "error", err)
			continue
		}
		if err := e.store.AttachEntity(report.ID, entity.ID); err != nil {
			logger.Warn("failed to attach entity", "entity", entity.Name, "error", err)
			continue
		}
		found = append(found, *entity)
	}

	return found, nil
}
