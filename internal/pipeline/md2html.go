package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	mdext "github.com/go-wikitext/md2wiki/internal/extension"
)

// ErrEngineConversion indicates the Markdown engine rejected a document.
var ErrEngineConversion = errors.New("markdown engine conversion failed")

// Fence languages handled by the verbatim passthrough.
const (
	// MathLanguage marks fenced math expressions.
	MathLanguage = "math"
	// MathClass is the CSS class math passthrough divs carry, recognized by
	// downstream math-aware post-processing.
	MathClass = "arithmatex"
)

// EngineConfig fixes the engine's extension surface at construction time.
type EngineConfig struct {
	// PassthroughTag is the fence language whose body is emitted verbatim for
	// the target publishing format.
	PassthroughTag string
	// Highlighting enables chroma CSS-class highlighting of ordinary code
	// fences, for local preview output. The wiki target leaves fences plain.
	Highlighting bool
}

// Engine wraps a single goldmark instance. The instance accumulates its
// configuration once and is then shared process-wide; reset and convert form
// one transaction guarded by a mutex, so concurrent callers are serialized
// and no state leaks between documents.
type Engine struct {
	mu  sync.Mutex
	md  goldmark.Markdown
	buf bytes.Buffer
}

// NewEngine builds the engine with the fixed extension set: tables,
// footnotes, strikethrough, admonitions, emoji (custom x-emoji generator),
// verbatim passthrough for math and the configured publish-format tag, and
// raw HTML passthrough.
func NewEngine(cfg EngineConfig) *Engine {
	extenders := []goldmark.Extender{
		extension.Table,
		extension.Footnote,
		extension.Strikethrough,
		mdext.Admonitions(),
		mdext.Emoji(),
		mdext.Passthrough(
			mdext.Fence{Language: MathLanguage, Class: MathClass},
			mdext.Fence{Language: cfg.PassthroughTag, Class: cfg.PassthroughTag},
		),
	}
	if cfg.Highlighting {
		extenders = append(extenders, highlighting.NewHighlighting(
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true),
			),
		))
	}

	md := goldmark.New(
		goldmark.WithExtensions(extenders...),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			// Raw HTML must survive: the preprocessor emits <mark>/<ins> and
			// documents may embed publish-format markup directly.
			html.WithUnsafe(),
		),
	)
	return &Engine{md: md}
}

// Convert runs one reset+convert transaction and returns the markup fragment.
// Engine-level parse failures propagate to the caller; no partial output is
// returned.
func (e *Engine) Convert(content string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.reset()
	if err := e.md.Convert([]byte(content), &e.buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEngineConversion, err)
	}
	return e.buf.String(), nil
}

// reset clears state carried over from the previous document. goldmark builds
// a fresh parser context per Convert call, so footnote numbering cannot leak;
// the scratch buffer is the remaining cross-call state.
func (e *Engine) reset() {
	e.buf.Reset()
}
