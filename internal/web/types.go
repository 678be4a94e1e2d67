package web

import (
	"html/template"

	"mdnotes/internal/notes"
)

type ViewData struct {
	Title           string
	ContentTemplate string
	ContentHTML     template.HTML
	Nickname        string
	SignedIn        bool
	Greeting        template.HTML
	Apps            []App
	Fields          notes.Fields
}
