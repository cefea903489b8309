// Package ingest drives the intelligence pipeline: fetch, filter,
// translate, extract, correlate, classify and alert, per source.
package ingest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"intelwire/internal/core"
	"intelwire/internal/feeds"
	"intelwire/internal/fetch"
	"intelwire/internal/logger"
	"intelwire/internal/store"
)

// MaxManualURLs is the default cap on a single manual fetch invocation.
const MaxManualURLs = 50

// ManualSourceName is the synthetic source that owns manually fetched pages.
const ManualSourceName = "Manual Web Fetch"

const manualSourceReliability = 80

type feedFetcher interface {
	Fetch(feedURL string) ([]feeds.Item, error)
}

type pageFetcher interface {
	Fetch(pageURL, query string) (*fetch.Page, error)
}

type reportTranslator interface {
	TranslateReport(ctx context.Context, report *core.Report) core.ProcessingStatus
}

type entityExtractor interface {
	Extract(report *core.Report) ([]core.Entity, error)
}

type reportCorrelator interface {
	Correlate(report *core.Report) error
}

type reportClassifier interface {
	Classify(report *core.Report) error
}

type alertDispatcher interface {
	Dispatch(report *core.Report) (int, error)
}

type blocklist interface {
	Blocked(texts ...string) bool
}

type textNormalizer func(string) string

// RunStats aggregates one ingestion pass over all sources.
type RunStats struct {
	Success int `json:"success"`
	Failed  int `json:"failed"`
}

// FetchResult is returned from the manual multi-URL path.
type FetchResult struct {
	Success int           `json:"success"`
	Failed  int           `json:"failed"`
	Errors  []string      `json:"errors"`
	Reports []core.Report `json:"reports"`
}

// Orchestrator wires the pipeline stages together.
type Orchestrator struct {
	store          *store.Store
	feeds          feedFetcher
	pages          pageFetcher
	translator     reportTranslator
	extractor      entityExtractor
	correlator     reportCorrelator
	classifier     reportClassifier
	dispatcher     alertDispatcher
	denylist       blocklist
	normalize      textNormalizer
	maxConcurrency int
	maxItems       int
	maxManualURLs  int
}

// Options configures an Orchestrator.
type Options struct {
	Store           *store.Store
	Feeds           feedFetcher
	Pages           pageFetcher
	Translator      reportTranslator
	Extractor       entityExtractor
	Correlator      reportCorrelator
	Classifier      reportClassifier
	Dispatcher      alertDispatcher
	Denylist        blocklist
	Normalize       func(string) string
	MaxConcurrency  int
	MaxItemsPerFeed int
	MaxManualURLs   int
}

// New creates an orchestrator from options. Nil stages are skipped during
// processing, which keeps partial wiring usable in tests and in commands
// that only need part of the pipeline.
func New(opts Options) *Orchestrator {
	normalize := opts.Normalize
	if normalize == nil {
		normalize = func(s string) string { return strings.TrimSpace(s) }
	}
	maxConcurrency := opts.MaxConcurrency
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}
	maxItems := opts.MaxItemsPerFeed
	if maxItems <= 0 {
		maxItems = 50
	}
	maxManualURLs := opts.MaxManualURLs
	if maxManualURLs <= 0 {
		maxManualURLs = MaxManualURLs
	}
	return &Orchestrator{
		store:          opts.Store,
		feeds:          opts.Feeds,
		pages:          opts.Pages,
		translator:     opts.Translator,
		extractor:      opts.Extractor,
		correlator:     opts.Correlator,
		classifier:     opts.Classifier,
		dispatcher:     opts.Dispatcher,
		denylist:       opts.Denylist,
		normalize:      normalize,
		maxConcurrency: maxConcurrency,
		maxItems:       maxItems,
		maxManualURLs:  maxManualURLs,
	}
}

// Run processes every active feed source once. Sources are dispatched
// concurrently up to the configured limit; each source is independent and a
// failing source only increments the failure count.
func (o *Orchestrator) Run(ctx context.Context) (*RunStats, error) {
	sources, err := o.store.ListActiveSources(core.SourceTypeFeed)
	if err != nil {
		return nil, fmt.Errorf("failed to list active sources: %w", err)
	}

	stats := &RunStats{}
	var mu sync.Mutex
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, o.maxConcurrency)

	for _, source := range sources {
		wg.Add(1)
		go func(src core.Source) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			err := o.processSource(ctx, src)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Error("source ingestion failed", err, "source", src.Name)
				stats.Failed++
				return
			}
			stats.Success++
		}(source)
	}

	wg.Wait()
	logger.Info("ingestion run complete", "success", stats.Success, "failed", stats.Failed)
	return stats, nil
}

// processSource fetches one feed and runs each new entry through the
// pipeline. The source's last_fetched_at is only advanced when the whole
// source completed without error.
func (o *Orchestrator) processSource(ctx context.Context, src core.Source) error {
	if o.denylist != nil && o.denylist.Blocked(src.Name, src.URL) {
		logger.Info("source denylisted, skipping", "source", src.Name)
		return nil
	}
	if src.URL == "" {
		return nil
	}

	items, err := o.feeds.Fetch(src.URL)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", src.Name, err)
	}

	if len(items) > o.maxItems {
		items = items[:o.maxItems]
	}

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := o.ingestItem(ctx, src, item); err != nil {
			return err
		}
	}

	return o.store.UpdateSourceLastFetched(src.ID, time.Now().UTC())
}

// ingestItem creates and processes a report for one feed entry. Duplicates
// and denylisted entries are skipped silently.
func (o *Orchestrator) ingestItem(ctx context.Context, src core.Source, item feeds.Item) error {
	if item.Link == "" {
		return nil
	}

	exists, err := o.store.ReportExistsByURL(item.Link)
	if err != nil {
		return fmt.Errorf("failed to check for duplicate: %w", err)
	}
	if exists {
		return nil
	}

	if o.denylist != nil && o.denylist.Blocked(item.Title, item.Summary) {
		logger.Debug("entry denylisted", "title", item.Title)
		return nil
	}

	published := item.Published
	if published.IsZero() {
		published = time.Now().UTC()
	}

	report := &core.Report{
		SourceID:         src.ID,
		Title:            o.normalize(item.Title),
		Content:          o.normalize(item.Summary),
		OriginalURL:      item.Link,
		PublishedAt:      published,
		CredibilityScore: src.ReliabilityScore,
	}
	if err := o.store.CreateReport(report); err != nil {
		if store.IsUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("failed to persist report: %w", err)
	}

	return o.Process(ctx, report)
}

// Process runs the downstream pipeline over a freshly created report:
// translation, entity extraction, correlation, classification and alert
// dispatch. The report is mutated in place and its derived fields persisted
// as each stage completes. Stage failures after persistence are logged and
// do not abort the remaining stages.
func (o *Orchestrator) Process(ctx context.Context, report *core.Report) error {
	if o.translator != nil {
		status := o.translator.TranslateReport(ctx, report)
		report.ProcessingStatus = status
		if err := o.store.UpdateReportTranslation(report); err != nil {
			return fmt.Errorf("failed to persist translation: %w", err)
		}
	}

	if o.extractor != nil {
		if _, err := o.extractor.Extract(report); err != nil {
			logger.Warn("entity extraction failed", "report_id", report.ID, "error", err)
		}
	}

	if o.correlator != nil {
		if err := o.correlator.Correlate(report); err != nil {
			logger.Warn("correlation failed", "report_id", report.ID, "error", err)
		}
	}

	if o.classifier != nil {
		if err := o.classifier.Classify(report); err != nil {
			logger.Warn("classification failed", "report_id", report.ID, "error", err)
		}
		if err := o.store.UpdateReportAnalysis(report); err != nil {
			return fmt.Errorf("failed to persist analysis: %w", err)
		}
	}

	if o.dispatcher != nil {
		if _, err := o.dispatcher.Dispatch(report); err != nil {
			logger.Warn("alert dispatch failed", "report_id", report.ID, "error", err)
		}
	}

	return nil
}

// FetchURLs runs the manual multi-URL path: each URL is fetched, parsed and
// pushed through the same pipeline under the synthetic manual source. URLs
// are deduplicated and capped; every skipped or failed URL contributes one
// reason-tagged diagnostic string.
func (o *Orchestrator) FetchURLs(ctx context.Context, urls []string, query string) (*FetchResult, error) {
	src, err := o.store.GetOrCreateSourceByName(ManualSourceName, core.Source{
		Name:             ManualSourceName,
		Type:             core.SourceTypeManual,
		ReliabilityScore: manualSourceReliability,
		IsActive:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve manual source: %w", err)
	}

	result := &FetchResult{}
	seen := make(map[string]bool)

	for _, rawURL := range urls {
		rawURL = strings.TrimSpace(rawURL)
		if rawURL == "" || seen[rawURL] {
			continue
		}
		seen[rawURL] = true

		if len(seen) > o.maxManualURLs {
			break
		}

		if err := ctx.Err(); err != nil {
			return result, err
		}

		exists, err := o.store.ReportExistsByURL(rawURL)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("Error %s: %v", rawURL, err))
			continue
		}
		if exists {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("Skipped (Duplicate): %s", rawURL))
			continue
		}

		page, err := o.pages.Fetch(rawURL, query)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("Error %s: %v", rawURL, err))
			continue
		}
		if page == nil || (page.Title == "" && page.Content == "") {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("Failed to parse: %s", rawURL))
			continue
		}

		report := &core.Report{
			SourceID:         src.ID,
			Title:            o.normalize(page.Title),
			Content:          page.Content,
			OriginalURL:      rawURL,
			PublishedAt:      time.Now().UTC(),
			CredibilityScore: src.ReliabilityScore,
		}
		if err := o.store.CreateReport(report); err != nil {
			result.Failed++
			if store.IsUniqueViolation(err) {
				result.Errors = append(result.Errors, fmt.Sprintf("Skipped (Duplicate): %s", rawURL))
			} else {
				result.Errors = append(result.Errors, fmt.Sprintf("Error %s: %v", rawURL, err))
			}
			continue
		}

		if err := o.Process(ctx, report); err != nil {
			logger.Warn("pipeline processing failed", "url", rawURL, "error", err)
		}

		result.Success++
		result.Reports = append(result.Reports, *report)
	}

	return result, nil
}
