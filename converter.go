package md2wiki

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-wikitext/md2wiki/internal/pipeline"
)

// Compile-time interface implementation checks.
var _ pipeline.Preprocessor = (*pipeline.WikiPreprocessor)(nil)

// DefaultPassthroughTag is the fence language emitted verbatim for the target
// publishing format ("csf": wiki storage format).
const DefaultPassthroughTag = "csf"

// converterConfig holds options resolved at construction time.
type converterConfig struct {
	passthroughTag string
	highlighting   bool
}

// Option customizes a Converter.
type Option func(*converterConfig)

// WithPassthroughTag sets the fence language whose body is passed through
// verbatim for the target publishing format. The tag must be a plain word
// (letters, digits, hyphen, underscore).
func WithPassthroughTag(tag string) Option {
	return func(cfg *converterConfig) { cfg.passthroughTag = tag }
}

// WithHighlighting enables CSS-class syntax highlighting of ordinary code
// fences. Intended for local preview output; wiki targets apply their own
// code styling, so this is off by default.
func WithHighlighting() Option {
	return func(cfg *converterConfig) { cfg.highlighting = true }
}

// Converter turns Markdown into wiki-ready XHTML fragments. It owns the
// shared engine instance and serializes reset+convert on it, so one Converter
// is safe for concurrent use.
type Converter struct {
	cfg          converterConfig
	preprocessor pipeline.Preprocessor
	engine       *pipeline.Engine
}

// NewConverter creates a Converter. Configuration errors are fatal here:
// a misconfigured engine would mis-render every document.
func NewConverter(opts ...Option) (*Converter, error) {
	cfg := converterConfig{passthroughTag: DefaultPassthroughTag}
	for _, opt := range opts {
		opt(&cfg)
	}

	if !isValidFenceTag(cfg.passthroughTag) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPassthroughTag, cfg.passthroughTag)
	}

	return &Converter{
		cfg:          cfg,
		preprocessor: &pipeline.WikiPreprocessor{},
		engine: pipeline.NewEngine(pipeline.EngineConfig{
			PassthroughTag: cfg.passthroughTag,
			Highlighting:   cfg.highlighting,
		}),
	}, nil
}

// Convert preprocesses content and runs it through the engine, returning the
// XHTML fragment. Engine-level parse failures propagate as ErrConversion;
// no partial output is returned. Supports context cancellation via the
// goroutine + select pattern since the engine does not take a context.
func (c *Converter) Convert(ctx context.Context, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyMarkdown
	}

	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		preprocessed := c.preprocessor.Preprocess(content)
		html, err := c.engine.Convert(preprocessed)
		if err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrConversion, err)}
			return
		}
		done <- result{html: html}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// isValidFenceTag reports whether tag can serve as a fence info language.
func isValidFenceTag(tag string) bool {
	if tag == "" {
		return false
	}
	for _, r := range tag {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}
