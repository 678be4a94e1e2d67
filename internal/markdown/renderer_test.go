package markdown

import (
	"reflect"
	"strings"
	"testing"
)

func TestRenderReplacesRawHTMLWithSentinel(t *testing.T) {
	r := New()
	res, err := r.Render("hello\n\n<script>alert(1)</script>\n", Document)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(res.HTML, "<script>") {
		t.Fatalf("raw script tag leaked into output: %q", res.HTML)
	}
	if !strings.Contains(res.HTML, RawHTMLSentinel) {
		t.Fatalf("expected sentinel in output, got %q", res.HTML)
	}
	if len(res.Warnings) == 0 {
		t.Fatalf("expected a raw HTML warning")
	}
}

func TestRenderReplacesInlineRawHTML(t *testing.T) {
	r := New()
	res, err := r.Render("before <b>bold</b> after\n", Document)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(res.HTML, "<b>") {
		t.Fatalf("inline tag leaked into output: %q", res.HTML)
	}
	if !strings.Contains(res.HTML, RawHTMLSentinel) {
		t.Fatalf("expected sentinel in output, got %q", res.HTML)
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	r := New()
	source := "---\ntitle: Draft\n---\n\n# Heading\n\nline one\nline two\n"
	first, err := r.Render(source, Document)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	second, err := r.Render(source, Document)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if first.HTML != second.HTML {
		t.Fatalf("renders differ:\n%q\n%q", first.HTML, second.HTML)
	}
	if !reflect.DeepEqual(first.Metadata, second.Metadata) {
		t.Fatalf("metadata differs: %v vs %v", first.Metadata, second.Metadata)
	}
}

func TestRenderExtractsFrontMatter(t *testing.T) {
	r := New()
	res, err := r.Render("---\ntitle: Test\nauthor: alice\n---\n\nbody text\n", Document)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if res.Metadata["title"] != "Test" {
		t.Fatalf("title metadata: got %q want Test", res.Metadata["title"])
	}
	if res.Metadata["author"] != "alice" {
		t.Fatalf("author metadata: got %q want alice", res.Metadata["author"])
	}
	if strings.Contains(res.HTML, "title: Test") {
		t.Fatalf("front matter block leaked into output: %q", res.HTML)
	}
	if !strings.Contains(res.HTML, "body text") {
		t.Fatalf("body missing from output: %q", res.HTML)
	}
}

func TestRenderConvertsLineBreaks(t *testing.T) {
	r := New()
	res, err := r.Render("line one\nline two\n", Document)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(res.HTML, "<br") {
		t.Fatalf("expected hard line break, got %q", res.HTML)
	}
}

func TestRenderInjectsTableClasses(t *testing.T) {
	r := New()
	source := "| a | b |\n| - | - |\n| 1 | 2 |\n"
	res, err := r.Render(source, Document)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(res.HTML, `<table class="table table-striped">`) {
		t.Fatalf("expected styled table, got %q", res.HTML)
	}
}

func TestRenderHeadingAnchors(t *testing.T) {
	r := New()
	res, err := r.Render("# My Section\n", Document)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(res.HTML, `id="my-section"`) {
		t.Fatalf("expected heading anchor id, got %q", res.HTML)
	}
}

func TestPageModeStripsDirectives(t *testing.T) {
	r := New()
	source := "intro\n\n{{ toc }}\n\noutro\n"
	res, err := r.Render(source, Page)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(res.HTML, "{{ toc }}") {
		t.Fatalf("directive survived page mode: %q", res.HTML)
	}
	if !strings.Contains(res.HTML, "intro") || !strings.Contains(res.HTML, "outro") {
		t.Fatalf("surrounding content lost: %q", res.HTML)
	}
}

func TestDocumentModeKeepsDirectives(t *testing.T) {
	r := New()
	res, err := r.Render("{{ toc }}\n", Document)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(res.HTML, "{{ toc }}") {
		t.Fatalf("directive should be visible in document mode: %q", res.HTML)
	}
}

func TestSlidesSplitWithHandout(t *testing.T) {
	r := New()
	source := strings.Join([]string{
		"{{ slide }}",
		"",
		"first body",
		"",
		"{{ slide }}",
		"",
		"second body",
		"",
		"{{ handout }}",
		"",
		"speaker notes",
		"",
	}, "\n")
	res, err := r.Render(source, Slides)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(res.Slides) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(res.Slides))
	}
	if res.Slides[0].Handout != "" {
		t.Fatalf("first slide should have no handout, got %q", res.Slides[0].Handout)
	}
	if !strings.Contains(res.Slides[0].Body, "first body") {
		t.Fatalf("first slide body wrong: %q", res.Slides[0].Body)
	}
	if !strings.Contains(res.Slides[1].Body, "second body") {
		t.Fatalf("second slide body wrong: %q", res.Slides[1].Body)
	}
	if !strings.Contains(res.Slides[1].Handout, "speaker notes") {
		t.Fatalf("second slide handout wrong: %q", res.Slides[1].Handout)
	}
}

func TestSlidesWithoutMarkersIsSingleSlide(t *testing.T) {
	r := New()
	res, err := r.Render("just one document\n", Slides)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(res.Slides) != 1 {
		t.Fatalf("expected a single slide, got %d", len(res.Slides))
	}
	if !strings.Contains(res.Slides[0].Body, "just one document") {
		t.Fatalf("slide body wrong: %q", res.Slides[0].Body)
	}
}

func TestRenderHighlightsFencedCode(t *testing.T) {
	r := New()
	res, err := r.Render("```go\npackage main\n```\n", Document)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(res.HTML, "<pre") {
		t.Fatalf("expected highlighted code block, got %q", res.HTML)
	}
	if strings.Contains(res.HTML, "```") {
		t.Fatalf("fence markers leaked into output: %q", res.HTML)
	}
}
