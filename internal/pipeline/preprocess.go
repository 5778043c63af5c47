// Package pipeline implements the text transformations that run before and
// around the Markdown engine: line-ending normalization, inline shorthand
// conversion, list-indentation normalization and the engine wrapper itself.
package pipeline

import (
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Highlight syntax ==text==
	highlightPattern = regexp.MustCompile(`==(.+?)==`)

	// Insert syntax ^^text^^
	insertPattern = regexp.MustCompile(`\^\^(.+?)\^\^`)
)

// Preprocessor defines the contract for Markdown preprocessing.
type Preprocessor interface {
	Preprocess(content string) string
}

// WikiPreprocessor prepares hand-authored Markdown for the engine: it
// normalizes line endings, converts mark/insert shorthand to inline HTML and
// rewrites 2-space list indentation to the 4-space convention the engine
// expects. Order matters: line endings first, so every later pass sees \n
// only, then inline conversions, then indentation.
type WikiPreprocessor struct{}

// Preprocess applies all transformations in order.
func (p *WikiPreprocessor) Preprocess(content string) string {
	content = NormalizeLineEndings(content)
	content = ConvertHighlights(content)
	content = ConvertInserts(content)
	content = NormalizeIndentation(content)
	return content
}

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// ConvertHighlights transforms ==text== to <mark>text</mark>.
// Lines inside fenced code blocks are left untouched.
func ConvertHighlights(content string) string {
	return convertInlineOutsideFences(content, highlightPattern, "<mark>$1</mark>")
}

// ConvertInserts transforms ^^text^^ to <ins>text</ins>.
// Lines inside fenced code blocks are left untouched.
func ConvertInserts(content string) string {
	return convertInlineOutsideFences(content, insertPattern, "<ins>$1</ins>")
}

// convertInlineOutsideFences applies a line-level regex replacement while
// skipping the interior of fenced code blocks, so shorthand appearing in code
// samples survives verbatim.
func convertInlineOutsideFences(content string, pattern *regexp.Regexp, replacement string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))

	inCodeBlock := false
	for _, line := range lines {
		if isFenceDelimiter(line) {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
			continue
		}
		if inCodeBlock {
			result = append(result, line)
			continue
		}
		result = append(result, pattern.ReplaceAllString(line, replacement))
	}

	return strings.Join(result, "\n")
}
