package notes

import (
	"testing"

	"mdnotes/internal/store"
)

var (
	alice = Identity{Name: "alice", SignedIn: true}
	bob   = Identity{Name: "bob", SignedIn: true}
	guest = Identity{}
)

func TestCanViewPrivateDeniedForNonOwners(t *testing.T) {
	private := store.Note{ID: "1", Owner: "bob"}
	for _, id := range []Identity{alice, guest} {
		if d := CanView(id, private); d.Allow {
			t.Fatalf("identity %+v must not view a private note", id)
		}
	}
	if d := CanView(guest, private); d.Reason != "Guests cannot view private notes." {
		t.Fatalf("guest deny reason: got %q", d.Reason)
	}
	if d := CanView(alice, private); d.Reason != "You do not have access to this note." {
		t.Fatalf("signed-in deny reason: got %q", d.Reason)
	}
}

func TestCanViewPublicAllowedForEveryone(t *testing.T) {
	public := store.Note{ID: "1", Owner: "bob", Public: true}
	for _, id := range []Identity{alice, bob, guest} {
		if d := CanView(id, public); !d.Allow {
			t.Fatalf("identity %+v must view a public note, denied: %q", id, d.Reason)
		}
	}
}

func TestCanViewOwnerAlwaysAllowed(t *testing.T) {
	private := store.Note{ID: "1", Owner: "bob"}
	if d := CanView(bob, private); !d.Allow {
		t.Fatalf("owner denied: %q", d.Reason)
	}
}

func TestCanEditAbsentKeyAlwaysAllowed(t *testing.T) {
	absent := store.Lookup{Status: store.KeyAbsent}
	for _, id := range []Identity{alice, guest} {
		if d := CanEdit(id, absent); !d.Allow {
			t.Fatalf("new-note edit denied for %+v: %q", id, d.Reason)
		}
		if d := CanSave(id, absent); !d.Allow {
			t.Fatalf("new-note save denied for %+v: %q", id, d.Reason)
		}
	}
}

func TestCanEditExistingRequiresOwnership(t *testing.T) {
	found := store.Lookup{Status: store.KeyFound, Note: store.Note{ID: "1", Owner: "bob"}}
	if d := CanEdit(bob, found); !d.Allow {
		t.Fatalf("owner edit denied: %q", d.Reason)
	}
	if d := CanEdit(alice, found); d.Allow {
		t.Fatalf("non-owner edit must be denied")
	}
	if d := CanEdit(guest, found); d.Allow {
		t.Fatalf("guest edit of existing note must be denied")
	}
	invalid := store.Lookup{Status: store.KeyInvalid}
	if d := CanEdit(alice, invalid); d.Allow {
		t.Fatalf("edit of invalid key must be denied")
	}
}

func TestCanCopy(t *testing.T) {
	public := store.Note{ID: "1", Owner: "bob", Public: true}
	private := store.Note{ID: "2", Owner: "bob"}

	if d := CanCopy(guest, public); d.Allow {
		t.Fatalf("guest copy must be denied")
	} else if d.Reason != "Sign in to copy notes to your own collection." {
		t.Fatalf("guest copy reason: got %q", d.Reason)
	}
	if d := CanCopy(alice, public); !d.Allow {
		t.Fatalf("copy of public note denied: %q", d.Reason)
	}
	if d := CanCopy(bob, private); !d.Allow {
		t.Fatalf("owner copy denied: %q", d.Reason)
	}
	if d := CanCopy(alice, private); d.Allow {
		t.Fatalf("copy of someone else's private note must be denied")
	}
}

func TestCanTrash(t *testing.T) {
	private := store.Note{ID: "1", Owner: "bob"}
	if d := CanTrash(guest, private); d.Allow {
		t.Fatalf("guest trash must be denied")
	} else if d.Reason != "Guests cannot delete notes." {
		t.Fatalf("guest trash reason: got %q", d.Reason)
	}
	if d := CanTrash(bob, private); !d.Allow {
		t.Fatalf("owner trash denied: %q", d.Reason)
	}
	if d := CanTrash(alice, private); d.Allow {
		t.Fatalf("non-owner trash must be denied")
	}
}

func TestUnownedNoteHasNoOwnerPrivileges(t *testing.T) {
	anon := store.Note{ID: "1", Owner: "", Public: true}
	if d := CanTrash(alice, anon); d.Allow {
		t.Fatalf("unowned note must not be deletable by anyone")
	}
	found := store.Lookup{Status: store.KeyFound, Note: anon}
	if d := CanEdit(alice, found); d.Allow {
		t.Fatalf("unowned note must not be editable")
	}
}
