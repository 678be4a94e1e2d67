// Package store persists notes in a sqlite database keyed by opaque
// uuid strings.
package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

var ErrNotFound = errors.New("note not found")

const schemaSQL = `
CREATE TABLE IF NOT EXISTS notes (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	source TEXT NOT NULL,
	owner TEXT NOT NULL DEFAULT '',
	public INTEGER NOT NULL DEFAULT 0,
	created INTEGER NOT NULL,
	modified INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS notes_owner_modified ON notes(owner, modified DESC);
CREATE INDEX IF NOT EXISTS notes_public_modified ON notes(public, modified DESC);
`

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schemaSQL)
	return err
}

func (s *Store) Get(ctx context.Context, id string) (Note, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, source, owner, public, created, modified FROM notes WHERE id = ?`, id)
	return scanNote(row)
}

// Create assigns the id and both timestamps.
func (s *Store) Create(ctx context.Context, n Note) (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notes(id, title, source, owner, public, created, modified) VALUES(?, ?, ?, ?, ?, ?, ?)`,
		id, n.Title, n.Source, n.Owner, boolToInt(n.Public), now.UnixNano(), now.UnixNano())
	if err != nil {
		return "", err
	}
	return id, nil
}

// Update rewrites title, source and visibility and bumps the modified
// time. Owner and created are set once at creation and never touched
// here.
func (s *Store) Update(ctx context.Context, id string, n Note) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE notes SET title = ?, source = ?, public = ?, modified = ? WHERE id = ?`,
		n.Title, n.Source, boolToInt(n.Public), time.Now().UTC().UnixNano(), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListByOwner(ctx context.Context, owner string, limit int) ([]Note, error) {
	if owner == "" {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, source, owner, public, created, modified FROM notes
		 WHERE owner = ? ORDER BY modified DESC, id LIMIT ?`, owner, limit)
	if err != nil {
		return nil, err
	}
	return collectNotes(rows)
}

func (s *Store) ListPublic(ctx context.Context, limit int) ([]Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, source, owner, public, created, modified FROM notes
		 WHERE public = 1 ORDER BY modified DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	return collectNotes(rows)
}

type LookupStatus int

const (
	// KeyAbsent means no key was supplied at all.
	KeyAbsent LookupStatus = iota
	// KeyInvalid covers both malformed keys and keys that reference no
	// stored record.
	KeyInvalid
	KeyFound
)

type Lookup struct {
	Status LookupStatus
	Note   Note
}

// Resolve distinguishes a missing key from a malformed or dangling one.
// Malformed input never produces an error; only the database can.
func (s *Store) Resolve(ctx context.Context, key string) (Lookup, error) {
	if key == "" {
		return Lookup{Status: KeyAbsent}, nil
	}
	if _, err := uuid.Parse(key); err != nil {
		return Lookup{Status: KeyInvalid}, nil
	}
	n, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return Lookup{Status: KeyInvalid}, nil
	}
	if err != nil {
		return Lookup{Status: KeyInvalid}, err
	}
	return Lookup{Status: KeyFound, Note: n}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (Note, error) {
	var n Note
	var public int
	var created, modified int64
	err := row.Scan(&n.ID, &n.Title, &n.Source, &n.Owner, &public, &created, &modified)
	if errors.Is(err, sql.ErrNoRows) {
		return Note{}, ErrNotFound
	}
	if err != nil {
		return Note{}, err
	}
	n.Public = public != 0
	n.Created = time.Unix(0, created).UTC()
	n.Modified = time.Unix(0, modified).UTC()
	return n, nil
}

func collectNotes(rows *sql.Rows) ([]Note, error) {
	defer rows.Close()
	var notes []Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
