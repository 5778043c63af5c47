package pipeline

import (
	"strings"
)

// Heuristic bounds for list-style detection. These values are part of the
// observable normalization behavior; changing them changes which documents
// get reindented, so they are pinned by tests.
const (
	// systemWindowRadius is how many lines before and after the current line
	// are examined when deciding whether the surrounding text uses 2-space
	// list indentation.
	systemWindowRadius = 5

	// continuationScanBound is how many lines the backward scan inspects when
	// deciding whether a line continues a list item.
	continuationScanBound = 4
)

// NormalizeIndentation rewrites 2-space list indentation to 4-space multiples
// so that strict Markdown parsers recognize the intended nesting:
//
//	0 spaces -> 0 spaces
//	2 spaces -> 4 spaces (level 1)
//	4 spaces -> 8 spaces (level 2)
//	6 spaces -> 12 spaces (level 3)
//
// Lines inside fenced code blocks, admonition bodies, headings, quotes and
// inline-code openers are never touched, and neither is content that already
// follows the 4-space convention. The output has the same line count as the
// input, and the pass is idempotent.
func NormalizeIndentation(content string) string {
	lines := strings.Split(content, "\n")
	processed := make([]string, 0, len(lines))

	inCodeBlock := false
	inAdmonition := false

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			processed = append(processed, line)
			continue
		}

		stripped := strings.TrimLeft(line, " \t")

		// Fence delimiters toggle code-block state and pass through as-is.
		if isFenceDelimiter(line) {
			inCodeBlock = !inCodeBlock
			processed = append(processed, line)
			continue
		}

		if inCodeBlock {
			processed = append(processed, line)
			continue
		}

		if strings.HasPrefix(stripped, "!!!") {
			inAdmonition = true
			processed = append(processed, line)
			continue
		}

		leading := len(line) - len(stripped)

		// The admonition body ends at the first non-blank line at column zero.
		// That same line is then processed under the new state.
		if inAdmonition && leading == 0 {
			inAdmonition = false
		}

		// Headings, quotes, inline-code openers and admonition bodies are
		// never reindented.
		if leading == 0 ||
			strings.HasPrefix(stripped, "`") ||
			strings.HasPrefix(stripped, "#") ||
			strings.HasPrefix(stripped, ">") ||
			inAdmonition {
			processed = append(processed, line)
			continue
		}

		if leading%2 == 0 &&
			looksLikeTwoSpaceSystem(lines, i) &&
			(isBulletItem(stripped) || isOrdinalItem(stripped) || isListContinuation(lines, i)) {
			level := leading / 2
			processed = append(processed, strings.Repeat(" ", level*4)+stripped)
		} else {
			// Indented content outside a detected 2-space list system is
			// already properly formatted; leave it alone.
			processed = append(processed, line)
		}
	}

	return strings.Join(processed, "\n")
}

// looksLikeTwoSpaceSystem reports whether the text surrounding lines[index]
// appears to use 2-space list indentation. It inspects a window of
// systemWindowRadius lines in each direction and collects the leading-space
// counts of indented bullet lines. A single count that is even but not a
// multiple of 4 (2, 6, 10, ...) is treated as decisive evidence: 2-space
// documents mix list levels, so requiring unanimity would miss the convention
// when only one nested level falls inside the window.
func looksLikeTwoSpaceSystem(lines []string, index int) bool {
	start := max(0, index-systemWindowRadius)
	end := min(len(lines), index+systemWindowRadius)

	var spaceCounts []int
	for i := start; i < end; i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}
		stripped := strings.TrimLeft(line, " \t")
		if !isBulletItem(stripped) {
			continue
		}
		if spaces := len(line) - len(stripped); spaces > 0 {
			spaceCounts = append(spaceCounts, spaces)
		}
	}

	if len(spaceCounts) == 0 {
		return false
	}

	for _, spaces := range spaceCounts {
		if spaces%2 == 0 && spaces%4 != 0 {
			return true
		}
	}
	return false
}

// isListContinuation reports whether lines[index] continues a list item
// (wrapped item text or nested content). It scans backward up to
// continuationScanBound lines: a bullet line resolves to true, a non-blank
// line at column zero is a paragraph boundary and resolves to false, and an
// exhausted scan resolves to false.
func isListContinuation(lines []string, index int) bool {
	if index == 0 {
		return false
	}

	for i := index - 1; i >= index-continuationScanBound && i >= 0; i-- {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}
		stripped := strings.TrimLeft(line, " \t")
		if isBulletItem(stripped) {
			return true
		}
		if len(line) == len(stripped) {
			return false
		}
	}

	return false
}

// isFenceDelimiter reports whether the line opens or closes a fenced code
// block (three backticks or tildes after trimming).
func isFenceDelimiter(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~")
}

// isBulletItem reports whether stripped content starts with an unordered
// list marker.
func isBulletItem(stripped string) bool {
	return strings.HasPrefix(stripped, "* ") ||
		strings.HasPrefix(stripped, "- ") ||
		strings.HasPrefix(stripped, "+ ")
}

// isOrdinalItem reports whether stripped content starts with an ordered list
// marker such as "1. " (checked within the first ten characters).
func isOrdinalItem(stripped string) bool {
	if stripped == "" || stripped[0] < '0' || stripped[0] > '9' {
		return false
	}
	head := stripped
	if len(head) > 10 {
		head = head[:10]
	}
	return strings.Contains(head, ". ")
}
