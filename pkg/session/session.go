// Package session provides on-disk persistence for diagram snapshots.
//
// A snapshot is a named, versioned copy of a diagram document. Every save
// mints a fresh revision token, and saves must present the revision they
// based their changes on: a mismatch fails with [ErrRevisionConflict]
// instead of overwriting concurrent work (optimistic concurrency).
//
// # Usage
//
//	store, err := session.NewFileStore("") // Uses ~/.config/gridflow/snapshots/
//	if err != nil {
//	    return err
//	}
//
//	// Create a snapshot
//	snap, err := store.Save(ctx, "checkout-flow", doc, "")
//
//	// Update it later, proving we saw the current revision
//	snap, err = store.Save(ctx, "checkout-flow", doc2, snap.Revision)
//	if errors.Is(err, session.ErrRevisionConflict) {
//	    // Someone else saved in between; reload and retry
//	}
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Sentinel errors for snapshot operations.
var (
	// ErrNotFound is returned when a snapshot does not exist.
	ErrNotFound = errors.New("snapshot not found")

	// ErrRevisionConflict is returned when a save presents a revision that
	// no longer matches the stored snapshot.
	ErrRevisionConflict = errors.New("revision conflict")

	// ErrInvalidName is returned when a snapshot name is empty or would
	// escape the store directory.
	ErrInvalidName = errors.New("invalid snapshot name")
)

// Snapshot is a stored diagram document plus its revision metadata.
type Snapshot struct {
	Name      string          `json:"name"`
	Revision  string          `json:"revision"` // Opaque token, new on every save
	Diagram   json.RawMessage `json:"diagram"`  // The diagram JSON document
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Store is the interface for snapshot storage backends.
type Store interface {
	// Load retrieves a snapshot by name.
	// Returns ErrNotFound if no snapshot with that name exists.
	Load(ctx context.Context, name string) (*Snapshot, error)

	// Save stores a diagram document under the given name.
	//
	// expectedRevision must be empty when creating a new snapshot and must
	// equal the stored revision when updating an existing one; otherwise
	// Save fails with ErrRevisionConflict. On success the returned snapshot
	// carries the freshly minted revision.
	Save(ctx context.Context, name string, diagram json.RawMessage, expectedRevision string) (*Snapshot, error)

	// Delete removes a snapshot. Deleting a missing snapshot is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all stored snapshots in lexical order.
	List(ctx context.Context) ([]string, error)
}
