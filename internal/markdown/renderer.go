// Package markdown converts author-entered note source into HTML5. Raw
// HTML in the source is never passed through; it is replaced with a
// fixed sentinel so untrusted notes stay safe to embed in pages.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Sentinel substituted for every raw HTML block or inline tag.
const RawHTMLSentinel = `<em class="alert">No raw HTML please.</em>`

const rawHTMLWarning = "Avoid raw HTML tags in your source text."

type Mode int

const (
	// Document renders the note as-is, directives included.
	Document Mode = iota
	// Page strips {{ word ... }} directive paragraphs from the output.
	Page
	// Slides additionally splits the output into slide/handout segments.
	Slides
)

type Slide struct {
	Body    string
	Handout string
}

type Result struct {
	HTML     string
	Metadata map[string]string
	Warnings []string
	Slides   []Slide
}

// Renderer is stateless and safe for concurrent use.
type Renderer struct {
	engine goldmark.Markdown
}

func New() *Renderer {
	engine := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.DefinitionList,
			extension.Footnote,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			renderer.WithNodeRenderers(
				util.Prioritized(&safeHTMLRenderer{}, 100),
			),
		),
	)
	return &Renderer{engine: engine}
}

func (r *Renderer) Render(source string, mode Mode) (Result, error) {
	res := Result{Metadata: map[string]string{}}

	body := source
	var meta map[string]any
	rest, err := frontmatter.Parse(strings.NewReader(source), &meta)
	if err != nil {
		res.Warnings = append(res.Warnings, "Front matter could not be parsed and was ignored.")
	} else {
		body = string(rest)
		for key, value := range meta {
			res.Metadata[key] = metaString(value)
		}
	}

	var buf bytes.Buffer
	if err := r.engine.Convert([]byte(body), &buf); err != nil {
		return Result{}, fmt.Errorf("convert markdown: %w", err)
	}
	out := buf.String()

	if strings.Contains(out, RawHTMLSentinel) {
		res.Warnings = append(res.Warnings, rawHTMLWarning)
	}

	out = injectTableClasses(out)
	switch mode {
	case Page:
		out = stripDirectives(out)
	case Slides:
		res.Slides = splitSlides(out)
	}
	res.HTML = out
	return res, nil
}

func metaString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, metaString(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}
