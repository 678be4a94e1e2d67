package web

import (
	"bytes"
	"html/template"
	"net/http"
	"path/filepath"
	"runtime"
)

type Templates struct {
	all *template.Template
}

func projectRoot() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		panic("unable to resolve project root")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}

func staticRoot() string {
	return filepath.Join(projectRoot(), "static")
}

func MustParseTemplates() *Templates {
	glob := filepath.Join(projectRoot(), "templates", "*.html")

	t := template.New("").Funcs(template.FuncMap{
		// Slide bodies come out of the renderer already sanitized.
		"safe": func(s string) template.HTML { return template.HTML(s) },
	})
	t = template.Must(t.ParseGlob(glob))
	return &Templates{all: t}
}

// RenderPage executes the content template first so a template error
// surfaces before any of the base chrome is written.
func (t *Templates) RenderPage(w http.ResponseWriter, data ViewData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	var content bytes.Buffer
	if err := t.all.ExecuteTemplate(&content, data.ContentTemplate, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	pageData := data
	pageData.ContentHTML = template.HTML(content.String())
	if err := t.all.ExecuteTemplate(w, "base", pageData); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
