package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.App.DataDir != ".intelwire" {
		t.Errorf("unexpected data dir: %q", cfg.App.DataDir)
	}
	if cfg.Feeds.MaxItemsPerFeed != 50 {
		t.Errorf("unexpected max items: %d", cfg.Feeds.MaxItemsPerFeed)
	}
	if cfg.Fetch.MaxURLs != 50 {
		t.Errorf("unexpected max urls: %d", cfg.Fetch.MaxURLs)
	}
	if cfg.Translator.Gemini.ChunkSize != 4000 {
		t.Errorf("unexpected chunk size: %d", cfg.Translator.Gemini.ChunkSize)
	}
	if cfg.Correlation.Window != 50 {
		t.Errorf("unexpected correlation window: %d", cfg.Correlation.Window)
	}
	if cfg.Correlation.SimilarityThreshold != 0.1 {
		t.Errorf("unexpected similarity threshold: %v", cfg.Correlation.SimilarityThreshold)
	}
}

func TestDurationHelpers(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := cfg.FeedTimeout(); got != 10*time.Second {
		t.Errorf("unexpected feed timeout: %v", got)
	}
	if got := cfg.ChunkTimeout(); got != 60*time.Second {
		t.Errorf("unexpected chunk timeout: %v", got)
	}

	cfg.Feeds.Timeout = "garbage"
	if got := cfg.FeedTimeout(); got != 10*time.Second {
		t.Errorf("expected fallback timeout, got %v", got)
	}
}
