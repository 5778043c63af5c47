package extension

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
)

func TestFormatFence(t *testing.T) {
	tests := []struct {
		name         string
		source       string
		cssClass     string
		extraClasses []string
		elementID    string
		attrs        [][2]string
		expected     string
	}{
		{
			name:     "class only",
			source:   "x^2",
			cssClass: "arithmatex",
			expected: `<div class="arithmatex">x^2</div>`,
		},
		{
			name:         "configured class stays first",
			source:       "body",
			cssClass:     "csf",
			extraClasses: []string{"wide", "bordered"},
			expected:     `<div class="csf wide bordered">body</div>`,
		},
		{
			name:      "id precedes class",
			source:    "body",
			cssClass:  "csf",
			elementID: "block-1",
			expected:  `<div id="block-1" class="csf">body</div>`,
		},
		{
			name:     "attributes in insertion order",
			source:   "body",
			cssClass: "csf",
			attrs:    [][2]string{{"data-b", "2"}, {"data-a", "1"}},
			expected: `<div class="csf" data-b="2" data-a="1">body</div>`,
		},
		{
			name:     "source is not escaped",
			source:   `<ac:link><ri:page ri:content-title="Home"/></ac:link>`,
			cssClass: "csf",
			expected: `<div class="csf"><ac:link><ri:page ri:content-title="Home"/></ac:link></div>`,
		},
		{
			name:     "empty source",
			source:   "",
			cssClass: "arithmatex",
			expected: `<div class="arithmatex"></div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatFence(tt.source, tt.cssClass, tt.extraClasses, tt.elementID, tt.attrs)
			if got != tt.expected {
				t.Errorf("FormatFence() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParseFenceAttributes(t *testing.T) {
	tests := []struct {
		name        string
		info        string
		wantID      string
		wantClasses []string
		wantAttrs   [][2]string
	}{
		{
			name: "no attribute braces",
			info: "math",
		},
		{
			name:        "id class and attribute",
			info:        `math {#eq1 .display data-num="3"}`,
			wantID:      "eq1",
			wantClasses: []string{"display"},
			wantAttrs:   [][2]string{{"data-num", "3"}},
		},
		{
			name:   "first id wins",
			info:   "csf {#one #two}",
			wantID: "one",
		},
		{
			name:      "unquoted value",
			info:      "csf {k=v}",
			wantAttrs: [][2]string{{"k", "v"}},
		},
		{
			name:      "missing value defaults to empty",
			info:      "csf {k=}",
			wantAttrs: [][2]string{{"k", ""}},
		},
		{
			name: "malformed braces ignored",
			info: "csf {unclosed",
		},
		{
			name: "bare tokens dropped",
			info: "csf {stray words}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, classes, attrs := parseFenceAttributes(tt.info)
			if id != tt.wantID {
				t.Errorf("id = %q, want %q", id, tt.wantID)
			}
			if len(classes) != len(tt.wantClasses) {
				t.Fatalf("classes = %v, want %v", classes, tt.wantClasses)
			}
			for i := range classes {
				if classes[i] != tt.wantClasses[i] {
					t.Errorf("classes[%d] = %q, want %q", i, classes[i], tt.wantClasses[i])
				}
			}
			if len(attrs) != len(tt.wantAttrs) {
				t.Fatalf("attrs = %v, want %v", attrs, tt.wantAttrs)
			}
			for i := range attrs {
				if attrs[i] != tt.wantAttrs[i] {
					t.Errorf("attrs[%d] = %v, want %v", i, attrs[i], tt.wantAttrs[i])
				}
			}
		})
	}
}

func TestPassthroughExtension(t *testing.T) {
	md := goldmark.New(goldmark.WithExtensions(Passthrough(
		Fence{Language: "math", Class: "arithmatex"},
		Fence{Language: "csf", Class: "csf"},
	)))

	convert := func(t *testing.T, input string) string {
		t.Helper()
		var buf bytes.Buffer
		if err := md.Convert([]byte(input), &buf); err != nil {
			t.Fatalf("Convert() error = %v", err)
		}
		return buf.String()
	}

	t.Run("math fence", func(t *testing.T) {
		got := convert(t, "```math\nx^2\n```")
		if !strings.Contains(got, `<div class="arithmatex">x^2</div>`) {
			t.Errorf("unexpected output:\n%s", got)
		}
	})

	t.Run("multi line source preserved verbatim", func(t *testing.T) {
		got := convert(t, "```csf\n<p:first/>\n<p:second/>\n```")
		if !strings.Contains(got, "<p:first/>\n<p:second/>") {
			t.Errorf("source lines not preserved:\n%s", got)
		}
	})

	t.Run("fence attributes", func(t *testing.T) {
		got := convert(t, "```math {#eq .big}\n1+1\n```")
		if !strings.Contains(got, `<div id="eq" class="arithmatex big">1+1</div>`) {
			t.Errorf("unexpected output:\n%s", got)
		}
	})

	t.Run("unregistered language untouched", func(t *testing.T) {
		got := convert(t, "```python\nprint(1)\n```")
		if !strings.Contains(got, "<pre><code") {
			t.Errorf("expected a regular code block:\n%s", got)
		}
		if strings.Contains(got, "<div") {
			t.Errorf("unexpected passthrough div:\n%s", got)
		}
	})

	t.Run("markdown inside fence not parsed", func(t *testing.T) {
		got := convert(t, "```csf\n# not a heading\n```")
		if strings.Contains(got, "<h1") {
			t.Errorf("fence body was parsed as markdown:\n%s", got)
		}
	})
}
