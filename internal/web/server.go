package web

import (
	"net/http"

	"github.com/gorilla/mux"

	"mdnotes/internal/config"
	"mdnotes/internal/markdown"
	"mdnotes/internal/notes"
	"mdnotes/internal/store"
)

type Server struct {
	cfg    config.Config
	ctrl   *notes.Controller
	router *mux.Router
	views  *Templates
	auth   *Auth
}

func NewServer(cfg config.Config, st *store.Store) (*Server, error) {
	a, err := newAuth(cfg)
	if err != nil {
		return nil, err
	}
	s := &Server{
		cfg:    cfg,
		ctrl:   notes.NewController(st, markdown.New(), cfg.RecentLimit),
		router: mux.NewRouter(),
		views:  MustParseTemplates(),
		auth:   a,
	}
	s.routes()
	return s, nil
}

func (s *Server) Handler() http.Handler {
	if s.auth != nil {
		return s.auth.Middleware(s.router)
	}
	return s.router
}

func (s *Server) routes() {
	s.router.HandleFunc("/", s.handleHome).Methods(http.MethodGet)
	s.router.HandleFunc("/home", s.handleHome).Methods(http.MethodGet)
	s.router.HandleFunc("/login", s.handleLogin).Methods(http.MethodGet)
	s.router.HandleFunc("/logout", s.handleLogout).Methods(http.MethodGet)

	s.router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(staticRoot()))))

	s.router.HandleFunc("/notes", s.handleNotesGet).Methods(http.MethodGet)
	s.router.HandleFunc("/notes/{cmd}", s.handleNotesGet).Methods(http.MethodGet)
	s.router.HandleFunc("/notes/{cmd}/{key}", s.handleNotesGet).Methods(http.MethodGet)
	s.router.HandleFunc("/notes/{cmd}", s.handleNotesPost).Methods(http.MethodPost)
	s.router.HandleFunc("/notes/{cmd}", s.handleNotesDelete).Methods(http.MethodDelete)
}
