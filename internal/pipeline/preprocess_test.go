package pipeline

import (
	"testing"
)

func TestNormalizeLineEndings(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "LF unchanged",
			input:    "line1\nline2",
			expected: "line1\nline2",
		},
		{
			name:     "CRLF to LF",
			input:    "line1\r\nline2",
			expected: "line1\nline2",
		},
		{
			name:     "CR to LF",
			input:    "line1\rline2",
			expected: "line1\nline2",
		},
		{
			name:     "mixed line endings",
			input:    "a\r\nb\rc\nd",
			expected: "a\nb\nc\nd",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeLineEndings(tt.input)
			if got != tt.expected {
				t.Errorf("NormalizeLineEndings() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestConvertHighlights(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single highlight",
			input:    "This is ==highlighted== text",
			expected: "This is <mark>highlighted</mark> text",
		},
		{
			name:     "multiple highlights",
			input:    "==one== and ==two==",
			expected: "<mark>one</mark> and <mark>two</mark>",
		},
		{
			name:     "setext underline not a highlight",
			input:    "Title\n====",
			expected: "Title\n====",
		},
		{
			name:     "inside code fence untouched",
			input:    "```\n==literal==\n```",
			expected: "```\n==literal==\n```",
		},
		{
			name:     "outside fence converted, inside kept",
			input:    "==yes==\n```\n==no==\n```\n==again==",
			expected: "<mark>yes</mark>\n```\n==no==\n```\n<mark>again</mark>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertHighlights(tt.input)
			if got != tt.expected {
				t.Errorf("ConvertHighlights() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestConvertInserts(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single insert",
			input:    "added ^^new words^^ here",
			expected: "added <ins>new words</ins> here",
		},
		{
			name:     "caret alone untouched",
			input:    "x^2 and y^3",
			expected: "x^2 and y^3",
		},
		{
			name:     "inside code fence untouched",
			input:    "~~~\n^^raw^^\n~~~",
			expected: "~~~\n^^raw^^\n~~~",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertInserts(tt.input)
			if got != tt.expected {
				t.Errorf("ConvertInserts() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestWikiPreprocessor(t *testing.T) {
	p := &WikiPreprocessor{}

	input := "# Title\r\n\r\n- a\r\n  - ==b==\r\n"
	got := p.Preprocess(input)
	want := "# Title\n\n- a\n    - <mark>b</mark>\n"
	if got != want {
		t.Errorf("Preprocess() = %q, want %q", got, want)
	}
}
