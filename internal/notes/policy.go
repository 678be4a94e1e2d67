// Package notes holds the command dispatcher for the notes app and the
// access policy it consults. Policy functions are pure: they never
// touch the store and never fail.
package notes

import "mdnotes/internal/store"

// Identity is the per-request caller. SignedIn false means the guest
// role; Name is empty for guests.
type Identity struct {
	Name     string
	SignedIn bool
}

type Decision struct {
	Allow  bool
	Reason string
}

func allow() Decision             { return Decision{Allow: true} }
func deny(reason string) Decision { return Decision{Reason: reason} }

const (
	reasonGuestPrivate = "Guests cannot view private notes."
	reasonNoAccess     = "You do not have access to this note."
	reasonGuestEdit    = "Guests cannot edit saved notes. Sign in to keep your notes."
	reasonNotYourNote  = "You can only edit your own notes."
	reasonGuestCopy    = "Sign in to copy notes to your own collection."
	reasonGuestTrash   = "Guests cannot delete notes."
	reasonNotYourTrash = "You can only delete your own notes."
)

func isOwner(id Identity, n store.Note) bool {
	return id.SignedIn && n.Owner != "" && n.Owner == id.Name
}

// CanView allows owners always and anyone when the note is public.
func CanView(id Identity, n store.Note) Decision {
	if isOwner(id, n) {
		return allow()
	}
	if n.Public {
		return allow()
	}
	if id.SignedIn {
		return deny(reasonNoAccess)
	}
	return deny(reasonGuestPrivate)
}

// CanEdit allows everyone to start a new note (no key supplied).
// Editing an existing note requires signed-in ownership.
func CanEdit(id Identity, lk store.Lookup) Decision {
	if lk.Status == store.KeyAbsent {
		return allow()
	}
	if !id.SignedIn {
		return deny(reasonGuestEdit)
	}
	if lk.Status == store.KeyFound && isOwner(id, lk.Note) {
		return allow()
	}
	return deny(reasonNotYourNote)
}

// CanSave mirrors CanEdit: the save gate and the edit-form gate must
// agree or the form could be submitted but never shown.
func CanSave(id Identity, lk store.Lookup) Decision {
	return CanEdit(id, lk)
}

// CanCopy requires a signed-in caller who owns the source note or can
// see it publicly.
func CanCopy(id Identity, n store.Note) Decision {
	if !id.SignedIn {
		return deny(reasonGuestCopy)
	}
	if isOwner(id, n) || n.Public {
		return allow()
	}
	return deny(reasonNoAccess)
}

// CanTrash requires signed-in ownership, nothing less.
func CanTrash(id Identity, n store.Note) Decision {
	if !id.SignedIn {
		return deny(reasonGuestTrash)
	}
	if isOwner(id, n) {
		return allow()
	}
	return deny(reasonNotYourTrash)
}
