package web

import (
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"

	"mdnotes/internal/notes"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, ViewData{
		Title:           "Home",
		ContentTemplate: "home",
		Apps:            Apps,
	})
}

func (s *Server) handleNotesGet(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	cmd := notes.Command{
		Name:     vars["cmd"],
		Key:      vars["key"],
		Form:     url.Values{},
		Identity: CurrentIdentity(r.Context()),
	}
	s.execute(w, r, s.ctrl.Dispatch(r.Context(), cmd))
}

func (s *Server) handleNotesPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	cmd := notes.Command{
		Name:     mux.Vars(r)["cmd"],
		Form:     r.PostForm,
		Identity: CurrentIdentity(r.Context()),
	}
	s.execute(w, r, s.ctrl.Dispatch(r.Context(), cmd))
}

func (s *Server) handleNotesDelete(w http.ResponseWriter, r *http.Request) {
	cmd := notes.Command{
		Name:     mux.Vars(r)["cmd"],
		Key:      r.URL.Query().Get("key"),
		Form:     url.Values{},
		Identity: CurrentIdentity(r.Context()),
	}
	s.execute(w, r, s.ctrl.Dispatch(r.Context(), cmd))
}

// execute turns a controller outcome into an HTTP response. Messages
// attached to a redirect have nowhere to go in the response, so they
// are logged instead.
func (s *Server) execute(w http.ResponseWriter, r *http.Request, out notes.Outcome) {
	if out.IsRedirect() {
		for _, e := range out.Fields.Errors {
			slog.Info("dispatch error", "path", r.URL.Path, "err", e)
		}
		http.Redirect(w, r, out.Redirect, http.StatusSeeOther)
		return
	}
	title := out.Fields.Title
	if title == "" {
		title = "Notes"
	}
	s.renderPage(w, r, ViewData{
		Title:           title,
		ContentTemplate: out.Template,
		Fields:          out.Fields,
	})
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, data ViewData) {
	id := CurrentIdentity(r.Context())
	data.Nickname = id.Name
	data.SignedIn = id.SignedIn
	data.Greeting = greeting(id, r.URL.RequestURI())
	if data.Apps == nil {
		data.Apps = Apps
	}
	s.views.RenderPage(w, data)
}

func greeting(id notes.Identity, dest string) template.HTML {
	var b strings.Builder
	if id.SignedIn {
		b.WriteString(`<a href="`)
		template.HTMLEscape(&b, []byte(LogoutURL(dest)))
		b.WriteString(`">sign out</a>`)
	} else {
		b.WriteString(`<a href="`)
		template.HTMLEscape(&b, []byte(LoginURL(dest)))
		b.WriteString(`">Sign in or register</a>`)
	}
	return template.HTML(b.String())
}
