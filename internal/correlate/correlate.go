// Package correlate links related reports and scores their credibility
// from cross-source corroboration.
package correlate

import (
	"fmt"
	"strings"

	"intelwire/internal/core"
	"intelwire/internal/logger"
)

const (
	// DefaultWindow is how many recent reports are considered as link
	// candidates.
	DefaultWindow = 50
	// DefaultSimilarityThreshold is the minimum Jaccard title similarity
	// for a link.
	DefaultSimilarityThreshold = 0.1

	corroborationPoints = 5
	maxCredibility      = 100
)

type correlationStore interface {
	GetRecentReports(excludeID string, limit int) ([]core.Report, error)
	LinkReports(a, b string) error
	RelatedReports(reportID string) ([]core.Report, error)
	ShareEntity(a, b string) (bool, error)
	GetSource(id string) (*core.Source, error)
	UpdateReportCredibility(reportID string, score int) error
}

// Correlator cross-links reports against a recent window and recomputes
// credibility from corroborating sources.
type Correlator struct {
	store     correlationStore
	window    int
	threshold float64
}

// NewCorrelator creates a correlator. window and threshold fall back to the
// defaults when non-positive.
func NewCorrelator(store correlationStore, window int, threshold float64) *Correlator {
	if window <= 0 {
		window = DefaultWindow
	}
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	return &Correlator{store: store, window: window, threshold: threshold}
}

// Correlate links report to every sufficiently similar candidate in the
// recent window, then recomputes its credibility. The report's
// CredibilityScore field is updated in place and persisted.
func (c *Correlator) Correlate(report *core.Report) error {
	candidates, err := c.store.GetRecentReports(report.ID, c.window)
	if err != nil {
		return fmt.Errorf("failed to load correlation candidates: %w", err)
	}

	tokens := Tokenize(report.Title)
	for _, candidate := range candidates {
		similar := JaccardSimilarity(tokens, Tokenize(candidate.Title)) > c.threshold

		shared := false
		if !similar {
			shared, err = c.store.ShareEntity(report.ID, candidate.ID)
			if err != nil {
				logger.Warn("entity overlap check failed", "candidate", candidate.ID, "error", err)
				continue
			}
		}

		if similar || shared {
			if err := c.store.LinkReports(report.ID, candidate.ID); err != nil {
				logger.Warn("failed to link reports", "candidate", candidate.ID, "error", err)
			}
		}
	}

	return c.recomputeCredibility(report)
}

// recomputeCredibility overwrites the report's credibility with the source
// baseline plus corroboration points per distinct other source among its
// related reports.
func (c *Correlator) recomputeCredibility(report *core.Report) error {
	source, err := c.store.GetSource(report.SourceID)
	if err != nil {
		return fmt.Errorf("failed to load source: %w", err)
	}

	baseline := 0
	if source != nil {
		baseline = source.ReliabilityScore
	}

	related, err := c.store.RelatedReports(report.ID)
	if err != nil {
		return fmt.Errorf("failed to load related reports: %w", err)
	}

	others := make(map[string]bool)
	for _, r := range related {
		if r.SourceID != "" && r.SourceID != report.SourceID {
			others[r.SourceID] = true
		}
	}

	score := baseline + corroborationPoints*len(others)
	if score > maxCredibility {
		score = maxCredibility
	}

	report.CredibilityScore = score
	return c.store.UpdateReportCredibility(report.ID, score)
}

// Tokenize splits a title into a lowercase whitespace-token set.
func Tokenize(title string) map[string]bool {
	tokens := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(title)) {
		tokens[tok] = true
	}
	return tokens
}

// JaccardSimilarity computes |A∩B| / |A∪B| over token sets. An empty union
// yields 0.
func JaccardSimilarity(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	intersection := 0
	for tok := range a {
		if b[tok] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
