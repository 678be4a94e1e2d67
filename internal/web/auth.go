package web

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"net/url"

	"mdnotes/internal/auth"
	"mdnotes/internal/config"
	"mdnotes/internal/notes"
)

type authEntry struct {
	plain string
	hash  *auth.Hash
}

// Auth maps HTTP basic credentials to the signed-in role. Requests
// without credentials pass through as guests; only invalid credentials
// are rejected.
type Auth struct {
	users map[string]authEntry
}

func newAuth(cfg config.Config) (*Auth, error) {
	users := make(map[string]authEntry)

	if cfg.AuthFile != "" {
		fileUsers, err := auth.LoadFile(cfg.AuthFile)
		if err != nil {
			return nil, err
		}
		for user, hash := range fileUsers {
			users[user] = authEntry{hash: hash}
		}
	}

	if cfg.AuthUser != "" || cfg.AuthPass != "" {
		if cfg.AuthUser == "" || cfg.AuthPass == "" {
			return nil, errors.New("NOTES_AUTH_USER and NOTES_AUTH_PASS must be set together")
		}
		users[cfg.AuthUser] = authEntry{plain: cfg.AuthPass}
	}

	if len(users) == 0 {
		return nil, nil
	}
	return &Auth{users: users}, nil
}

func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if ok {
			if !a.verify(user, pass) {
				w.Header().Set("WWW-Authenticate", `Basic realm="mdnotes"`)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := WithIdentity(r.Context(), notes.Identity{Name: user, SignedIn: true})
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), notes.Identity{})))
	})
}

func (a *Auth) verify(user, pass string) bool {
	entry, ok := a.users[user]
	if !ok {
		return false
	}
	if entry.hash != nil {
		return entry.hash.Verify(pass)
	}
	return subtle.ConstantTimeCompare([]byte(entry.plain), []byte(pass)) == 1
}

// LoginURL and LogoutURL are the redirect builders the templates
// consume; dest is the page to return to afterwards.
func LoginURL(dest string) string {
	return "/login?dest=" + url.QueryEscape(dest)
}

func LogoutURL(dest string) string {
	return "/logout?dest=" + url.QueryEscape(dest)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	id := CurrentIdentity(r.Context())
	if id.SignedIn {
		http.Redirect(w, r, destOr(r, "/"), http.StatusSeeOther)
		return
	}
	w.Header().Set("WWW-Authenticate", `Basic realm="mdnotes"`)
	http.Error(w, "Sign in required", http.StatusUnauthorized)
}

// handleLogout cannot invalidate basic credentials server-side; the 401
// prompts the browser to drop them.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", `Basic realm="mdnotes"`)
	http.Error(w, "Signed out", http.StatusUnauthorized)
}

func destOr(r *http.Request, fallback string) string {
	dest := r.URL.Query().Get("dest")
	if dest == "" || dest[0] != '/' {
		return fallback
	}
	return dest
}
