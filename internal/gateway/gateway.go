// Package gateway is the persistence boundary of the application: a flat
// key-value store of JSON documents. Every higher layer (repo, service) talks
// to storage exclusively through the Gateway interface, so the backing store
// can be swapped (memory, Badger, SQLite, Postgres) without touching them.
//
// Writes are last-write-wins. A deployment with several writers must put an
// authoritative store with conflict detection behind this interface.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkordes/tripvote/internal/domain"
)

// Gateway reads and writes JSON documents by key.
// Implementations must be safe for concurrent use.
type Gateway interface {
	// Get returns the document stored under key. The boolean is false when
	// the key is absent; that is not an error.
	Get(ctx context.Context, key string) (json.RawMessage, bool, error)

	// Set stores value under key, replacing any previous document.
	Set(ctx context.Context, key string, value json.RawMessage) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// persistenceErr tags err as a domain.ErrPersistence so handlers can map it
// without knowing which backend produced it.
func persistenceErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrPersistence, err)
}

// errInvalidJSON is returned by Set when value is not a well-formed JSON document.
func errInvalidJSON(key string) error {
	return fmt.Errorf("value for key %q is not valid JSON", key)
}
