package handlers

import (
	"context"

	"intelwire/internal/alerts"
	"intelwire/internal/classify"
	"intelwire/internal/config"
	"intelwire/internal/correlate"
	"intelwire/internal/denylist"
	"intelwire/internal/extract"
	"intelwire/internal/feeds"
	"intelwire/internal/fetch"
	"intelwire/internal/ingest"
	"intelwire/internal/logger"
	"intelwire/internal/normalize"
	"intelwire/internal/store"
	"intelwire/internal/translate"
)

// buildPipeline wires the full orchestrator from the loaded configuration.
// When no Gemini API key is configured the translator runs on the offline
// term dictionary alone.
func buildPipeline(ctx context.Context, st *store.Store) *ingest.Orchestrator {
	cfg := config.Get()

	var model translate.Model
	if cfg.Translator.Gemini.APIKey != "" {
		client, err := translate.NewGeminiClient(ctx, cfg.Translator.Gemini.APIKey, cfg.Translator.Gemini.Model)
		if err != nil {
			logger.Warn("gemini client unavailable, using dictionary only", "error", err)
		} else {
			model = client
		}
	} else {
		logger.Info("no gemini API key configured, using dictionary translation")
	}

	dictionary := translate.NewDictionary(st)
	translator := translate.NewTranslator(model, dictionary, cfg.Translator.Gemini.ChunkSize, cfg.ChunkTimeout())

	return ingest.New(ingest.Options{
		Store:           st,
		Feeds:           feeds.NewFetcher(cfg.FeedTimeout(), cfg.Feeds.UserAgent),
		Pages:           fetch.NewFetcher(cfg.FetchTimeout(), cfg.Fetch.UserAgent),
		Translator:      translator,
		Extractor:       extract.NewExtractor(st),
		Correlator:      correlate.NewCorrelator(st, cfg.Correlation.Window, cfg.Correlation.SimilarityThreshold),
		Classifier:      classify.NewClassifier(st),
		Dispatcher:      alerts.NewDispatcher(st),
		Denylist:        denylist.New(st),
		Normalize:       normalize.Text,
		MaxConcurrency:  cfg.Ingest.MaxConcurrency,
		MaxItemsPerFeed: cfg.Feeds.MaxItemsPerFeed,
		MaxManualURLs:   cfg.Fetch.MaxURLs,
	})
}

// openStore opens the configured data directory.
func openStore() (*store.Store, error) {
	return store.NewStore(config.Get().App.DataDir)
}
