package notes

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"mdnotes/internal/markdown"
	"mdnotes/internal/store"
)

// NoteStore is the slice of the store the controller needs.
type NoteStore interface {
	Create(ctx context.Context, n store.Note) (string, error)
	Update(ctx context.Context, id string, n store.Note) error
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, owner string, limit int) ([]store.Note, error)
	ListPublic(ctx context.Context, limit int) ([]store.Note, error)
	Resolve(ctx context.Context, key string) (store.Lookup, error)
}

// Command is the per-request input: the action name from the URL, an
// optional note key, submitted form fields and the caller identity.
// It lives for one dispatch only.
type Command struct {
	Name     string
	Key      string
	Form     url.Values
	Identity Identity
}

type RecentEntry struct {
	Title    string
	Editable bool
}

// Fields is the bag handed to the template layer.
type Fields struct {
	Errors    []string
	Warnings  []string
	Successes []string

	Title        string
	Source       string
	Target       template.HTML
	Key          string
	DateCreated  time.Time
	DateModified time.Time
	Public       bool
	Editable     bool

	Recent map[string]RecentEntry
	Slides []markdown.Slide
	Meta   map[string]string
}

// Outcome is either a render instruction (Template set) or a redirect
// instruction (Redirect set). Redirect outcomes may still carry errors
// or successes; the web layer decides what to do with them.
type Outcome struct {
	Template string
	Redirect string
	Fields   Fields
}

func (o Outcome) IsRedirect() bool { return o.Redirect != "" }

type Controller struct {
	store       NoteStore
	renderer    *markdown.Renderer
	recentLimit int
}

func NewController(st NoteStore, r *markdown.Renderer, recentLimit int) *Controller {
	if recentLimit <= 0 {
		recentLimit = 20
	}
	return &Controller{store: st, renderer: r, recentLimit: recentLimit}
}

// Dispatch runs one command to completion. Every path ends in a render
// or a redirect; nothing here panics or propagates store failures.
func (c *Controller) Dispatch(ctx context.Context, cmd Command) Outcome {
	switch cmd.Name {
	case "view", "page", "slides", "pubreader":
		return c.show(ctx, cmd)
	case "new":
		return Outcome{Template: "edit", Fields: Fields{}}
	case "edit":
		return c.edit(ctx, cmd)
	case "save":
		return c.save(ctx, cmd)
	case "trash":
		return c.trash(ctx, cmd)
	case "copy":
		return c.copy(ctx, cmd)
	default:
		return c.listing(ctx, cmd, nil, nil)
	}
}

func renderMode(command string) markdown.Mode {
	switch command {
	case "page", "pubreader":
		return markdown.Page
	case "slides":
		return markdown.Slides
	}
	return markdown.Document
}

func (c *Controller) show(ctx context.Context, cmd Command) Outcome {
	lk, err := c.store.Resolve(ctx, cmd.Key)
	if err != nil {
		slog.Warn("resolve note key", "key", cmd.Key, "err", err)
	}

	if d := CanView(cmd.Identity, lk.Note); !d.Allow {
		return Outcome{Template: cmd.Name, Fields: Fields{Errors: []string{d.Reason}}}
	}

	n := lk.Note
	res, err := c.renderer.Render(n.Source, renderMode(cmd.Name))
	if err != nil {
		return Outcome{Template: cmd.Name, Fields: Fields{Errors: []string{"The note could not be rendered."}}}
	}

	return Outcome{Template: cmd.Name, Fields: Fields{
		Warnings:     res.Warnings,
		Title:        n.Title,
		Source:       n.Source,
		Target:       template.HTML(res.HTML),
		Key:          n.ID,
		DateCreated:  n.Created,
		DateModified: n.Modified,
		Public:       n.Public,
		Editable:     isOwner(cmd.Identity, n),
		Slides:       res.Slides,
		Meta:         res.Metadata,
	}}
}

func (c *Controller) edit(ctx context.Context, cmd Command) Outcome {
	lk, err := c.store.Resolve(ctx, cmd.Key)
	if err != nil {
		slog.Warn("resolve note key", "key", cmd.Key, "err", err)
	}

	if d := CanEdit(cmd.Identity, lk); !d.Allow {
		return Outcome{Template: "edit", Fields: Fields{Errors: []string{d.Reason}}}
	}
	if lk.Status != store.KeyFound {
		return Outcome{Template: "edit", Fields: Fields{}}
	}

	n := lk.Note
	return Outcome{Template: "edit", Fields: Fields{
		Title:        n.Title,
		Source:       n.Source,
		Key:          n.ID,
		DateCreated:  n.Created,
		DateModified: n.Modified,
		Public:       n.Public,
		Editable:     true,
	}}
}

func (c *Controller) save(ctx context.Context, cmd Command) Outcome {
	key := cmd.Key
	if key == "" {
		key = cmd.Form.Get("key")
	}
	lk, err := c.store.Resolve(ctx, key)
	if err != nil {
		slog.Warn("resolve note key", "key", key, "err", err)
	}

	if d := CanSave(cmd.Identity, lk); !d.Allow {
		return Outcome{Redirect: "/notes/new", Fields: Fields{Errors: []string{d.Reason}}}
	}

	title := strings.TrimSpace(cmd.Form.Get("title"))
	source := cmd.Form.Get("source")
	public := cmd.Form.Get("public") != ""

	var validation []string
	if title == "" {
		validation = append(validation, "Title is required.")
	}
	if strings.TrimSpace(source) == "" {
		validation = append(validation, "Some markdown text is required.")
	}
	if len(validation) > 0 {
		// Nothing is persisted; the entered values come back with the form.
		return Outcome{Template: "edit", Fields: Fields{
			Errors: validation,
			Title:  title,
			Source: source,
			Key:    key,
			Public: public,
		}}
	}

	var id string
	if lk.Status == store.KeyFound {
		id = lk.Note.ID
		n := lk.Note
		n.Title = title
		n.Source = source
		n.Public = public
		if err := c.store.Update(ctx, id, n); err != nil {
			return Outcome{Template: "edit", Fields: Fields{
				Errors: []string{"The note could not be saved."},
				Title:  title,
				Source: source,
				Key:    key,
				Public: public,
			}}
		}
	} else {
		owner := ""
		if cmd.Identity.SignedIn {
			owner = cmd.Identity.Name
		}
		id, err = c.store.Create(ctx, store.Note{
			Title:  title,
			Source: source,
			Owner:  owner,
			Public: public,
		})
		if err != nil {
			return Outcome{Template: "edit", Fields: Fields{
				Errors: []string{"The note could not be saved."},
				Title:  title,
				Source: source,
				Public: public,
			}}
		}
	}

	if cmd.Form.Get("submit") == "view" {
		return Outcome{Redirect: "/notes/view/" + id}
	}
	return Outcome{Redirect: "/notes/edit/" + id}
}

func (c *Controller) trash(ctx context.Context, cmd Command) Outcome {
	lk, err := c.store.Resolve(ctx, cmd.Key)
	if err != nil {
		slog.Warn("resolve note key", "key", cmd.Key, "err", err)
	}

	out := Outcome{Redirect: "/notes"}
	if d := CanTrash(cmd.Identity, lk.Note); !d.Allow {
		out.Fields.Errors = append(out.Fields.Errors, d.Reason)
		return out
	}
	if lk.Status != store.KeyFound {
		out.Fields.Errors = append(out.Fields.Errors, "That note does not exist.")
		return out
	}
	if err := c.store.Delete(ctx, lk.Note.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
		out.Fields.Errors = append(out.Fields.Errors, "The note could not be deleted.")
		return out
	}
	out.Fields.Successes = append(out.Fields.Successes, "Note deleted.")
	return out
}

func (c *Controller) copy(ctx context.Context, cmd Command) Outcome {
	lk, err := c.store.Resolve(ctx, cmd.Key)
	if err != nil {
		slog.Warn("resolve note key", "key", cmd.Key, "err", err)
	}
	if lk.Status != store.KeyFound {
		return c.listing(ctx, cmd, []string{"That note does not exist."}, nil)
	}

	if d := CanCopy(cmd.Identity, lk.Note); !d.Allow {
		return c.listing(ctx, cmd, nil, []string{d.Reason})
	}

	dup := store.CopyOf(lk.Note, cmd.Identity.Name)
	id, err := c.store.Create(ctx, dup)
	if err != nil {
		return c.listing(ctx, cmd, []string{"The note could not be copied."}, nil)
	}
	return Outcome{Redirect: "/notes/edit/" + id}
}

// listing merges the public-recent and owner-recent notes into one map
// keyed by note id. Overwriting on collision is harmless: same id,
// same note.
func (c *Controller) listing(ctx context.Context, cmd Command, errs, warnings []string) Outcome {
	recent := make(map[string]RecentEntry)

	public, err := c.store.ListPublic(ctx, c.recentLimit)
	if err != nil {
		errs = append(errs, "Public notes are unavailable right now.")
	}
	for _, n := range public {
		recent[n.ID] = RecentEntry{Title: n.Title, Editable: isOwner(cmd.Identity, n)}
	}

	if cmd.Identity.SignedIn {
		own, err := c.store.ListByOwner(ctx, cmd.Identity.Name, c.recentLimit)
		if err != nil {
			errs = append(errs, "Your notes are unavailable right now.")
		}
		for _, n := range own {
			recent[n.ID] = RecentEntry{Title: n.Title, Editable: isOwner(cmd.Identity, n)}
		}
	}

	return Outcome{Template: "listing", Fields: Fields{
		Errors:   errs,
		Warnings: warnings,
		Recent:   recent,
	}}
}
