// Package md2wiki converts Markdown documents into XHTML fragments suitable
// for embedding in a wiki page.
//
// # Quick Start
//
// Create a converter once and reuse it across documents:
//
//	conv, err := md2wiki.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	html, err := conv.Convert(ctx, "# Hello\n\n- item\n  - nested")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The output is a fragment; no document structure is wrapped around it.
//
// # Conversion Pipeline
//
// Each Convert call runs these stages:
//
//  1. Line-ending normalization (\r\n and \r become \n)
//  2. Mark/insert shorthand (==text== and ^^text^^ become <mark>/<ins>)
//  3. List-indentation normalization (2-space nesting becomes 4-space,
//     guarded by conservative look-around heuristics so code blocks,
//     admonition bodies and already-canonical text are never touched)
//  4. Markdown parsing via goldmark with tables, footnotes, strikethrough,
//     "!!!" admonitions, :emoji: shortcodes and verbatim fence passthrough
//
// Fenced blocks tagged "math" (and the configured publish-format tag,
// "csf" by default) bypass Markdown parsing entirely and are emitted as raw
// <div> elements for downstream post-processing. Emoji render as <x-emoji>
// elements carrying the shortname and Unicode codepoints.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := md2wiki.NewConverter(
//	    md2wiki.WithPassthroughTag("storage"),
//	    md2wiki.WithHighlighting(),
//	)
//
// # Math Images
//
// RenderMath turns a LaTeX-like expression into PNG or SVG bytes for page
// assembly code that replaces math divs with attached images:
//
//	img, err := md2wiki.RenderMath(`\sum_{i} x_i^2`,
//	    md2wiki.WithRasterFormat(md2wiki.FormatSVG),
//	    md2wiki.WithRasterDPI(200),
//	)
//
// A failure satisfying errors.Is(err, md2wiki.ErrRasterUnavailable) means the
// rendering backend is broken, not that the document is; conversion of the
// surrounding document still succeeds since math fences degrade to
// passthrough markup.
//
// # Concurrency
//
// A Converter serializes access to its shared engine instance, so a single
// Converter is safe for concurrent use; reset and convert form one
// transaction. For parallel throughput, hold one Converter per worker.
package md2wiki
