package extension

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Fence registers a fenced-code-block language for verbatim passthrough.
// Matching fences are rendered as a raw <div> carrying the fence source,
// bypassing both Markdown parsing and HTML escaping for the body.
type Fence struct {
	Language string // fence info language that triggers passthrough
	Class    string // CSS class, always first in the rendered class list
}

// PassthroughBlock is a fenced code block reinterpreted as verbatim markup.
type PassthroughBlock struct {
	gast.BaseBlock
	Class        string
	ID           string
	ExtraClasses []string
	Attrs        [][2]string
}

// KindPassthroughBlock is the node kind of PassthroughBlock.
var KindPassthroughBlock = gast.NewNodeKind("PassthroughBlock")

// Kind implements ast.Node.
func (n *PassthroughBlock) Kind() gast.NodeKind { return KindPassthroughBlock }

// IsRaw reports that the block content must not be parsed as inlines.
func (n *PassthroughBlock) IsRaw() bool { return true }

// Dump implements ast.Node.
func (n *PassthroughBlock) Dump(source []byte, level int) {
	m := map[string]string{
		"Class": n.Class,
		"ID":    n.ID,
	}
	gast.DumpHelper(n, source, level, m, nil)
}

// FormatFence serializes a passthrough <div>. The opening tag carries, in
// order: an id attribute only when elementID is non-empty, a class attribute
// with cssClass always first followed by extraClasses, then the remaining
// attributes in insertion order. The source is emitted unescaped; callers on
// this path produce content the final renderer must trust.
func FormatFence(source, cssClass string, extraClasses []string, elementID string, attrs [][2]string) string {
	var b strings.Builder
	b.WriteString("<div")
	if elementID != "" {
		fmt.Fprintf(&b, ` id="%s"`, elementID)
	}
	classes := make([]string, 0, 1+len(extraClasses))
	classes = append(classes, cssClass)
	classes = append(classes, extraClasses...)
	fmt.Fprintf(&b, ` class="%s"`, strings.Join(classes, " "))
	for _, kv := range attrs {
		fmt.Fprintf(&b, ` %s="%s"`, kv[0], kv[1])
	}
	b.WriteString(">")
	b.WriteString(source)
	b.WriteString("</div>")
	return b.String()
}

// parseFenceAttributes extracts {#id .class key="value"} attributes from the
// tail of a fence info string. Parsing is best-effort: missing values default
// to empty and malformed tokens are dropped, never reported.
func parseFenceAttributes(info string) (id string, classes []string, attrs [][2]string) {
	start := strings.IndexByte(info, '{')
	end := strings.LastIndexByte(info, '}')
	if start < 0 || end < start {
		return "", nil, nil
	}
	for _, token := range strings.Fields(info[start+1 : end]) {
		switch {
		case strings.HasPrefix(token, "#"):
			if id == "" {
				id = token[1:]
			}
		case strings.HasPrefix(token, "."):
			if token != "." {
				classes = append(classes, token[1:])
			}
		case strings.Contains(token, "="):
			key, value, _ := strings.Cut(token, "=")
			value = strings.Trim(value, `"'`)
			if key != "" {
				attrs = append(attrs, [2]string{key, value})
			}
		}
	}
	return id, classes, attrs
}

type passthroughTransformer struct {
	fences []Fence
}

// Transform replaces fenced code blocks whose language matches a registered
// fence with PassthroughBlock nodes carrying the parsed fence attributes.
func (t *passthroughTransformer) Transform(doc *gast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()

	var matched []*gast.FencedCodeBlock
	_ = gast.Walk(doc, func(node gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}
		fcb, ok := node.(*gast.FencedCodeBlock)
		if !ok {
			return gast.WalkContinue, nil
		}
		if t.fenceFor(string(fcb.Language(source))) != nil {
			matched = append(matched, fcb)
		}
		return gast.WalkContinue, nil
	})

	for _, fcb := range matched {
		parent := fcb.Parent()
		if parent == nil {
			continue
		}
		fence := t.fenceFor(string(fcb.Language(source)))

		block := &PassthroughBlock{Class: fence.Class}
		block.SetLines(fcb.Lines())
		if fcb.Info != nil {
			info := string(fcb.Info.Segment.Value(source))
			block.ID, block.ExtraClasses, block.Attrs = parseFenceAttributes(info)
		}
		parent.ReplaceChild(parent, fcb, block)
	}
}

func (t *passthroughTransformer) fenceFor(language string) *Fence {
	for i := range t.fences {
		if t.fences[i].Language == language {
			return &t.fences[i]
		}
	}
	return nil
}

type passthroughRenderer struct{}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *passthroughRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindPassthroughBlock, r.render)
}

func (r *passthroughRenderer) render(w util.BufWriter, source []byte, node gast.Node, entering bool) (gast.WalkStatus, error) {
	if !entering {
		return gast.WalkContinue, nil
	}
	n := node.(*PassthroughBlock)

	var body bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		body.Write(segment.Value(source))
	}
	src := strings.TrimSuffix(body.String(), "\n")

	_, _ = w.WriteString(FormatFence(src, n.Class, n.ExtraClasses, n.ID, n.Attrs))
	_, _ = w.WriteString("\n")
	return gast.WalkContinue, nil
}

type passthroughExtension struct {
	fences []Fence
}

// Passthrough returns a goldmark extender that renders the given fence
// languages verbatim.
func Passthrough(fences ...Fence) goldmark.Extender {
	return &passthroughExtension{fences: fences}
}

// Extend implements goldmark.Extender.
func (e *passthroughExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithASTTransformers(
			util.Prioritized(&passthroughTransformer{fences: e.fences}, 100),
		),
	)
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(&passthroughRenderer{}, 100),
		),
	)
}
