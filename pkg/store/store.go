// Package store is the sync layer: two persistence variants with one
// contract. The local variant keeps each collection under its own key in a
// diskv tree; the remote variant mirrors everything into a per-user journal
// document on a sync server. Callers own the in-memory state; the store only
// mirrors it outward or replaces it wholesale on a watch snapshot.
package store

import (
	"context"
	"errors"

	"tableflip.dev/penpal/pkg/entry"
	"tableflip.dev/penpal/pkg/persona"
)

// ErrNotLoaded guards writes issued before the initial load finished, so an
// empty default state can never clobber data that simply has not been read
// yet.
var ErrNotLoaded = errors.New("store: initial load has not completed")

// State is a full snapshot of every synchronized collection.
type State struct {
	Entries        []*entry.Entry
	CustomPersonas []persona.Persona
	SelectedIDs    []string
	HiddenIDs      []string
	Order          []string

	// HasSelection distinguishes "no selection ever stored" (the default
	// applies) from a deliberately empty selection.
	HasSelection bool
}

// Persistence is the contract shared by both variants. Writes mirror one
// collection each and are fire-and-forget from the caller's perspective;
// failures are logged, not surfaced. Watch streams full replacement
// snapshots; the latest snapshot always wins.
type Persistence interface {
	Load(ctx context.Context) (*State, error)
	SaveEntries(ctx context.Context, entries []*entry.Entry) error
	SaveCustomPersonas(ctx context.Context, personas []persona.Persona) error
	SaveSelectedIDs(ctx context.Context, ids []string) error
	SaveHiddenIDs(ctx context.Context, ids []string) error
	SaveOrder(ctx context.Context, ids []string) error
	Watch(ctx context.Context) (<-chan *State, error)
	Erase(ctx context.Context) error
}
