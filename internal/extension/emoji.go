// Package extension provides the goldmark extensions that produce wiki-ready
// markup: emoji elements, verbatim fence passthrough and admonition blocks.
package extension

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	east "github.com/yuin/goldmark-emoji/ast"
	"github.com/yuin/goldmark/util"
)

// EmojiElement is the inline element emitted for an emoji shortcode. It is
// serialized as <x-emoji> so that downstream wiki post-processing can locate
// emoji unambiguously, independent of the surrounding text.
type EmojiElement struct {
	Shortname string // data-shortname attribute
	Unicode   string // data-unicode attribute, hyphen-delimited hex, may be empty
	Text      string // element text: decoded glyph or fallback text
}

// ResolveEmoji builds the element for a matched shortcode. The alias, stripped
// of colon delimiters, takes precedence over the shortname for the
// data-shortname attribute. When a codepoint sequence is supplied, each
// hyphen-delimited hex token is decoded to a Unicode scalar value and the
// concatenation becomes the element text; otherwise the fallback text is used
// verbatim. Undecodable tokens are skipped rather than reported.
func ResolveEmoji(shortname, alias, unicodeSeq, fallback string) EmojiElement {
	name := shortname
	if alias != "" {
		name = alias
	}
	el := EmojiElement{Shortname: strings.Trim(name, ":")}

	if unicodeSeq == "" {
		el.Text = fallback
		return el
	}

	el.Unicode = unicodeSeq
	var glyph strings.Builder
	for _, token := range strings.Split(unicodeSeq, "-") {
		v, err := strconv.ParseUint(token, 16, 32)
		if err != nil {
			continue
		}
		glyph.WriteRune(rune(v))
	}
	el.Text = glyph.String()
	return el
}

// String serializes the element. The output is inline-safe: a single
// <x-emoji> span with no block-level wrapping.
func (e EmojiElement) String() string {
	var b strings.Builder
	b.WriteString(`<x-emoji data-shortname="`)
	b.Write(util.EscapeHTML([]byte(e.Shortname)))
	b.WriteString(`"`)
	if e.Unicode != "" {
		b.WriteString(` data-unicode="`)
		b.Write(util.EscapeHTML([]byte(e.Unicode)))
		b.WriteString(`"`)
	}
	b.WriteString(">")
	b.Write(util.EscapeHTML([]byte(e.Text)))
	b.WriteString("</x-emoji>")
	return b.String()
}

// Emoji returns a goldmark extender that renders :shortcode: emoji through
// ResolveEmoji instead of the stock entity output.
func Emoji() goldmark.Extender {
	return emoji.New(
		emoji.WithRenderingMethod(emoji.Func),
		emoji.WithRendererFunc(renderEmoji),
	)
}

// renderEmoji adapts a goldmark-emoji node to ResolveEmoji.
func renderEmoji(w util.BufWriter, source []byte, n *east.Emoji, config *emoji.RendererConfig) {
	shortname := string(n.ShortName)
	var unicodeSeq, fallback string
	if n.Value != nil {
		if n.Value.IsUnicode() {
			unicodeSeq = hexSequence(n.Value.Unicode)
		}
		fallback = n.Value.Name
	}
	_, _ = w.WriteString(ResolveEmoji(shortname, "", unicodeSeq, fallback).String())
}

// hexSequence renders runes as hyphen-delimited lowercase hex, the notation
// used by emoji databases (e.g. "1f604" or "1f1ef-1f1f5").
func hexSequence(runes []rune) string {
	parts := make([]string, len(runes))
	for i, r := range runes {
		parts[i] = strconv.FormatInt(int64(r), 16)
	}
	return strings.Join(parts, "-")
}
