package extension

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// admonitionBodyIndent is the indentation consumed from body lines, matching
// the 4-space convention admonition bodies are written with.
const admonitionBodyIndent = 4

// admonitionPattern matches an opener line: "!!! type" with an optional
// quoted title. An explicitly empty title ("") suppresses the title element.
var admonitionPattern = regexp.MustCompile(`^!!!\s*([\w-]+)(?:\s+"(.*)")?\s*$`)

// Admonition is a callout block: "!!! note "Optional title"" followed by an
// indented body.
type Admonition struct {
	gast.BaseBlock
	AdmonitionClass string
	Title           string
	HasTitle        bool
}

// KindAdmonition is the node kind of Admonition.
var KindAdmonition = gast.NewNodeKind("Admonition")

// Kind implements ast.Node.
func (n *Admonition) Kind() gast.NodeKind { return KindAdmonition }

// Dump implements ast.Node.
func (n *Admonition) Dump(source []byte, level int) {
	m := map[string]string{
		"AdmonitionClass": n.AdmonitionClass,
		"Title":           n.Title,
	}
	gast.DumpHelper(n, source, level, m, nil)
}

type admonitionParser struct{}

// Trigger implements parser.BlockParser.
func (p *admonitionParser) Trigger() []byte { return []byte{'!'} }

// Open implements parser.BlockParser.
func (p *admonitionParser) Open(parent gast.Node, reader text.Reader, pc parser.Context) (gast.Node, parser.State) {
	line, segment := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || line[pos] != '!' {
		return nil, parser.NoChildren
	}

	m := admonitionPattern.FindSubmatch(line[pos:])
	if m == nil {
		return nil, parser.NoChildren
	}

	node := &Admonition{AdmonitionClass: strings.ToLower(string(m[1]))}
	// The title group is absent when no quotes follow the type; in that case
	// the renderer derives a title from the type name.
	if openerHasTitle(line[pos:]) {
		node.Title = string(m[2])
		node.HasTitle = true
	}

	reader.Advance(segment.Len() - 1)
	return node, parser.HasChildren
}

// Continue implements parser.BlockParser. Body lines are indented by
// admonitionBodyIndent; the first non-blank line without that indentation
// closes the block.
func (p *admonitionParser) Continue(node gast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, segment := reader.PeekLine()
	if util.IsBlank(line) {
		return parser.Continue | parser.HasChildren
	}
	pos, padding := util.IndentPositionPadding(line, reader.LineOffset(), segment.Padding, admonitionBodyIndent)
	if pos < 0 {
		p.closeBodyParagraph(node, reader, pc)
		return parser.Close
	}
	reader.AdvanceAndSetPadding(pos, padding)
	return parser.Continue | parser.HasChildren
}

// closeBodyParagraph closes a body paragraph still open when the block ends.
// Paragraphs are the only lazily-continuable block, so an open one would
// absorb the boundary line into the body instead of letting it start fresh
// text after the block.
func (p *admonitionParser) closeBodyParagraph(node gast.Node, reader text.Reader, pc parser.Context) {
	blocks := pc.OpenedBlocks()
	if len(blocks) == 0 {
		return
	}
	last := blocks[len(blocks)-1]
	if last.Node == node || !gast.IsParagraph(last.Node) {
		return
	}
	last.Parser.Close(last.Node, reader, pc)
	pc.SetOpenedBlocks(blocks[:len(blocks)-1])
}

// Close implements parser.BlockParser.
func (p *admonitionParser) Close(node gast.Node, reader text.Reader, pc parser.Context) {}

// CanInterruptParagraph implements parser.BlockParser.
func (p *admonitionParser) CanInterruptParagraph() bool { return true }

// CanAcceptIndentedLine implements parser.BlockParser.
func (p *admonitionParser) CanAcceptIndentedLine() bool { return false }

// openerHasTitle reports whether the opener line carries a quoted title,
// distinguishing an absent title from an explicitly empty one.
func openerHasTitle(line []byte) bool {
	return strings.Count(string(line), `"`) >= 2
}

type admonitionRenderer struct{}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *admonitionRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindAdmonition, r.render)
}

func (r *admonitionRenderer) render(w util.BufWriter, source []byte, node gast.Node, entering bool) (gast.WalkStatus, error) {
	n := node.(*Admonition)
	if !entering {
		_, _ = w.WriteString("</div>\n")
		return gast.WalkContinue, nil
	}

	_, _ = w.WriteString(`<div class="admonition `)
	_, _ = w.Write(util.EscapeHTML([]byte(n.AdmonitionClass)))
	_, _ = w.WriteString("\">\n")

	title := n.Title
	if !n.HasTitle {
		title = capitalize(n.AdmonitionClass)
	}
	if title != "" {
		_, _ = w.WriteString(`<p class="admonition-title">`)
		_, _ = w.Write(util.EscapeHTML([]byte(title)))
		_, _ = w.WriteString("</p>\n")
	}
	return gast.WalkContinue, nil
}

// capitalize upper-cases the first byte of an ASCII admonition type name.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

type admonitionExtension struct{}

// Admonitions returns a goldmark extender adding "!!!" callout blocks.
func Admonitions() goldmark.Extender {
	return &admonitionExtension{}
}

// Extend implements goldmark.Extender. The parser slots in just before the
// blockquote parser (priority 800) so ordinary block constructs inside the
// indented body keep their usual precedence.
func (e *admonitionExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(
			util.Prioritized(&admonitionParser{}, 799),
		),
	)
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(&admonitionRenderer{}, 500),
		),
	)
}
