package extension

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
)

func convertAdmonition(t *testing.T, input string) string {
	t.Helper()
	md := goldmark.New(goldmark.WithExtensions(Admonitions()))
	var buf bytes.Buffer
	if err := md.Convert([]byte(input), &buf); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	return buf.String()
}

func TestAdmonitions(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantContains []string
		wantNot      []string
	}{
		{
			name:  "note with explicit title",
			input: "!!! note \"Remember this\"\n    The body text.",
			wantContains: []string{
				`<div class="admonition note">`,
				`<p class="admonition-title">Remember this</p>`,
				"<p>The body text.</p>",
				"</div>",
			},
		},
		{
			name:  "title derived from type",
			input: "!!! warning\n    Careful.",
			wantContains: []string{
				`<div class="admonition warning">`,
				`<p class="admonition-title">Warning</p>`,
			},
		},
		{
			name:    "empty title suppressed",
			input:   "!!! tip \"\"\n    Quiet tip.",
			wantNot: []string{"admonition-title"},
			wantContains: []string{
				`<div class="admonition tip">`,
				"<p>Quiet tip.</p>",
			},
		},
		{
			name:  "body ends at column zero",
			input: "!!! note\n    inside\noutside",
			wantContains: []string{
				"<p>inside</p>",
				"</div>\n<p>outside</p>",
			},
		},
		{
			name:  "multi line body ends at column zero",
			input: "!!! note\n    first\n    second\nafter",
			wantContains: []string{
				"<p>first\nsecond</p>",
				"</div>\n<p>after</p>",
			},
		},
		{
			name:  "list body ends at column zero",
			input: "!!! note\n    - item\n      text\noutside",
			wantContains: []string{
				"<ul>",
				"</div>\n<p>outside</p>",
			},
		},
		{
			name:  "blank lines stay inside the body",
			input: "!!! note\n    first\n\n    second",
			wantContains: []string{
				"<p>first</p>",
				"<p>second</p>",
			},
		},
		{
			name:  "nested markdown in body",
			input: "!!! note\n    - one\n    - two",
			wantContains: []string{
				"<ul>",
				"<li>one</li>",
			},
		},
		{
			name:    "triple bang mid paragraph is not an opener",
			input:   "watch out !!! here",
			wantNot: []string{"admonition"},
		},
		{
			name:    "bare bangs without type are not an opener",
			input:   "!!!\ntext",
			wantNot: []string{"admonition"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convertAdmonition(t, tt.input)
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
			for _, not := range tt.wantNot {
				if strings.Contains(got, not) {
					t.Errorf("output should not contain %q:\n%s", not, got)
				}
			}
		})
	}
}
