package markdown

import (
	"regexp"
	"strings"
)

// Directive paragraphs look like {{ word ... }} on a line of their own
// and survive conversion as single-paragraph markers.
var (
	directiveRe = regexp.MustCompile(`<p>\{\{\s*[A-Za-z][^}]*\}\}</p>\n?`)
	slideRe     = regexp.MustCompile(`<p>\{\{\s*slide[^}]*\}\}</p>\n?`)
	handoutRe   = regexp.MustCompile(`<p>\{\{\s*handout[^}]*\}\}</p>\n?`)
)

func injectTableClasses(html string) string {
	return strings.ReplaceAll(html, "<table>", `<table class="table table-striped">`)
}

func stripDirectives(html string) string {
	return directiveRe.ReplaceAllString(html, "")
}

// splitSlides cuts the rendered document on {{ slide }} markers. A
// document without markers is a single slide. Within each slide the
// first {{ handout }} marker separates the visible body from the
// handout notes.
func splitSlides(html string) []Slide {
	segments := slideRe.Split(html, -1)
	if len(segments) > 1 && strings.TrimSpace(segments[0]) == "" {
		segments = segments[1:]
	}
	slides := make([]Slide, 0, len(segments))
	for _, segment := range segments {
		parts := handoutRe.Split(segment, 2)
		slide := Slide{Body: parts[0]}
		if len(parts) == 2 {
			slide.Handout = parts[1]
		}
		slides = append(slides, slide)
	}
	return slides
}
