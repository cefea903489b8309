// Package translate renders report titles and bodies into Arabic, using a
// Gemini model with a curated term dictionary as fallback.
package translate

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"google.golang.org/genai"

	"intelwire/internal/core"
	"intelwire/internal/logger"
)

const (
	// DefaultModel is the default Gemini model used for translation.
	DefaultModel = "gemini-flash-lite-latest"
	// DefaultChunkSize is the maximum number of characters sent to the
	// model in a single request.
	DefaultChunkSize = 4000

	translatePromptTemplate = `Translate the following text to Arabic. Preserve names of people, places and organizations accurately. Return only the translated text with no commentary.

---
%s
---`
)

// Model generates a translation for a single chunk of text.
type Model interface {
	Translate(ctx context.Context, text string) (string, error)
}

// GeminiClient translates text through the Gemini API.
type GeminiClient struct {
	gClient   *genai.Client
	modelName string
}

// NewGeminiClient creates a Gemini-backed translation client.
func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required. Set GEMINI_API_KEY environment variable or translator.gemini.api_key in config file")
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	gClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{gClient: gClient, modelName: modelName}, nil
}

// Translate sends one chunk to the model and returns its translation.
func (c *GeminiClient) Translate(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf(translatePromptTemplate, text)
	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: prompt}},
		Role:  "user",
	}}

	resp, err := c.gClient.Models.GenerateContent(ctx, c.modelName, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate translation: %w", err)
	}

	result := strings.TrimSpace(resp.Text())
	if result == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return result, nil
}

// Translator orchestrates translation of a report. The model path is
// authoritative; the dictionary covers chunks the model could not handle
// and the full text when no model is configured.
type Translator struct {
	model        Model
	dictionary   *Dictionary
	chunkSize    int
	chunkTimeout time.Duration
}

// NewTranslator creates a translator. model may be nil, in which case only
// the dictionary is used.
func NewTranslator(model Model, dictionary *Dictionary, chunkSize int, chunkTimeout time.Duration) *Translator {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkTimeout <= 0 {
		chunkTimeout = 60 * time.Second
	}
	return &Translator{
		model:        model,
		dictionary:   dictionary,
		chunkSize:    chunkSize,
		chunkTimeout: chunkTimeout,
	}
}

// TranslateReport fills in the translated title and content of report. A
// report that already carries a translated title is left untouched. The
// returned status is StatusCompleted when any translation path succeeded;
// on StatusFailed the translated fields are left empty so a later pass can
// try again.
func (t *Translator) TranslateReport(ctx context.Context, report *core.Report) core.ProcessingStatus {
	if report.TranslatedTitle != "" {
		return report.ProcessingStatus
	}

	if t.model != nil {
		title, titleOK := t.translateText(ctx, report.Title)
		content, contentOK := t.translateText(ctx, report.Content)
		if titleOK || contentOK {
			report.TranslatedTitle = title
			report.TranslatedContent = content
			return core.StatusCompleted
		}
		logger.Warn("model translation failed, falling back to dictionary", "report_id", report.ID)
	}

	if t.dictionary != nil {
		title := t.dictionary.Apply(report.Title)
		content := t.dictionary.Apply(report.Content)
		if title != report.Title || content != report.Content {
			report.TranslatedTitle = title
			report.TranslatedContent = content
			return core.StatusCompleted
		}
	}

	// Translated fields stay empty so a later pass can retry once a model
	// or richer dictionary is available.
	return core.StatusFailed
}

// translateText runs text through the model chunk by chunk. A failed chunk
// keeps its original text so the output never loses material. The second
// return value reports whether at least one chunk translated.
func (t *Translator) translateText(ctx context.Context, text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return text, false
	}

	chunks := splitChunks(text, t.chunkSize)
	translated := make([]string, len(chunks))
	anyOK := false

	for i, chunk := range chunks {
		chunkCtx, cancel := context.WithTimeout(ctx, t.chunkTimeout)
		result, err := t.model.Translate(chunkCtx, chunk)
		cancel()
		if err != nil {
			logger.Warn("chunk translation failed", "chunk", i, "error", err)
			translated[i] = chunk
			continue
		}
		translated[i] = result
		anyOK = true
	}

	return strings.Join(translated, "\n"), anyOK
}

// splitChunks breaks text into pieces of at most size characters, cutting on
// paragraph and sentence boundaries where possible. Every cut lands on a
// rune boundary so multibyte text is never split mid-character.
func splitChunks(text string, size int) []string {
	if utf8.RuneCountInString(text) <= size {
		return []string{text}
	}

	var chunks []string
	for utf8.RuneCountInString(text) > size {
		window := prefixRunes(text, size)
		cut := len(window)
		if idx := strings.LastIndex(window, "\n\n"); idx > len(window)/2 {
			cut = idx
		} else if idx := strings.LastIndexAny(window, ".!?؟"); idx > len(window)/2 {
			_, width := utf8.DecodeRuneInString(window[idx:])
			cut = idx + width
		} else if idx := strings.LastIndex(window, " "); idx > len(window)/2 {
			cut = idx
		}
		chunks = append(chunks, strings.TrimSpace(text[:cut]))
		text = strings.TrimSpace(text[cut:])
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}

// prefixRunes returns the longest prefix of s holding at most n runes.
func prefixRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
