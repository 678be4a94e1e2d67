package web

import (
	"context"

	"mdnotes/internal/notes"
)

type contextKey int

const identityKey contextKey = iota

func WithIdentity(ctx context.Context, id notes.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// CurrentIdentity returns the caller identity set by the auth
// middleware; absent a value it returns the guest identity.
func CurrentIdentity(ctx context.Context) notes.Identity {
	id, ok := ctx.Value(identityKey).(notes.Identity)
	if !ok {
		return notes.Identity{}
	}
	return id
}
