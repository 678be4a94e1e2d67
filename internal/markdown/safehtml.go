package markdown

import (
	"bytes"
	stdhtml "html"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

const codeStyle = "friendly"

// safeHTMLRenderer overrides the default HTML output for the node kinds
// that would otherwise emit author-controlled markup. Raw HTML becomes
// the sentinel; fenced code blocks are highlighted with chroma.
type safeHTMLRenderer struct{}

func (r *safeHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHTMLBlock, r.renderHTMLBlock)
	reg.Register(ast.KindRawHTML, r.renderRawHTML)
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r *safeHTMLRenderer) renderHTMLBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(RawHTMLSentinel)
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func (r *safeHTMLRenderer) renderRawHTML(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(RawHTMLSentinel)
	}
	return ast.WalkSkipChildren, nil
}

func (r *safeHTMLRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)
	language := string(n.Language(source))

	var code bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		code.Write(line.Value(source))
	}

	var highlighted bytes.Buffer
	if err := quick.Highlight(&highlighted, code.String(), language, "html", codeStyle); err != nil {
		_, _ = w.WriteString("<pre><code>")
		_, _ = w.WriteString(stdhtml.EscapeString(code.String()))
		_, _ = w.WriteString("</code></pre>\n")
		return ast.WalkContinue, nil
	}
	_, _ = w.Write(highlighted.Bytes())
	_ = w.WriteByte('\n')
	return ast.WalkContinue, nil
}
