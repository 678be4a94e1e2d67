package store

import "time"

// Note is a single user-authored document. Owner may be empty: such a
// note is reachable only through its key, never through the per-user
// listing.
type Note struct {
	ID       string
	Title    string
	Source   string
	Owner    string
	Public   bool
	Created  time.Time
	Modified time.Time
}

const copySuffix = " [COPY]"

// CopyOf builds a duplicate of n owned by owner. Every field is
// enumerated here on purpose; the store assigns ID and timestamps on
// create.
func CopyOf(n Note, owner string) Note {
	return Note{
		Title:  n.Title + copySuffix,
		Source: n.Source,
		Owner:  owner,
		Public: n.Public,
	}
}
