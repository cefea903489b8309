// Package classify assigns a sensitivity level, topic and severity to
// reports using the weighted rule set.
package classify

import (
	"fmt"
	"strings"

	"intelwire/internal/core"
	"intelwire/internal/logger"
)

// DefaultTopic is assigned when no rule matches.
const DefaultTopic = "GENERAL_INTEL"

type ruleStore interface {
	ListActiveRules() ([]core.ClassificationRule, error)
}

// Classifier evaluates classification rules against reports.
type Classifier struct {
	store ruleStore
}

// NewClassifier creates a classifier backed by the given rule store.
func NewClassifier(store ruleStore) *Classifier {
	return &Classifier{store: store}
}

// Classify applies the first matching rule to the report. Rules arrive
// ordered by weight descending with rule id as the tie-breaker, so
// evaluation order is deterministic. With no match the report falls back to
// UNCLASSIFIED with the default topic and its credibility is left alone.
func (c *Classifier) Classify(report *core.Report) error {
	rules, err := c.store.ListActiveRules()
	if err != nil {
		return fmt.Errorf("failed to load classification rules: %w", err)
	}

	haystack := strings.ToLower(report.Title + " " + report.Content)

	for _, rule := range rules {
		if !Matches(rule, haystack) {
			continue
		}

		report.Classification = rule.Classification
		report.Severity = rule.Severity
		if rule.Topic != "" {
			report.Topic = rule.Topic
		}

		switch rule.Severity {
		case core.SeverityCritical:
			report.CredibilityScore = 100
		case core.SeverityHigh:
			if report.CredibilityScore < 90 {
				report.CredibilityScore = 90
			}
		}

		logger.Debug("report classified", "report_id", report.ID, "rule", rule.Name, "classification", report.Classification)
		return nil
	}

	report.Classification = core.ClassUnclassified
	report.Topic = DefaultTopic
	return nil
}

// Matches reports whether rule fires against the lowercased haystack. The
// keyword set is an OR gate; the required set, when non-empty, demands at
// least one additional hit.
func Matches(rule core.ClassificationRule, haystack string) bool {
	if !containsAny(haystack, rule.Keywords) {
		return false
	}
	if strings.TrimSpace(rule.RequiredKeywords) != "" && !containsAny(haystack, rule.RequiredKeywords) {
		return false
	}
	return true
}

// containsAny reports whether any comma-separated keyword from list occurs
// in the lowercased haystack.
func containsAny(haystack, list string) bool {
	for _, kw := range strings.Split(list, ",") {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}
