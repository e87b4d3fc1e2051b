// Package local implements the repository interfaces over the collection
// store: every operation reads a whole collection, works on it in memory,
// and (for mutations) writes the whole collection back.
//
// LOST-UPDATE SAFETY:
// A read-modify-write sequence is not atomic at the store level, so two
// concurrent request handlers could each read, each append, and the second
// write would silently drop the first append. All mutations therefore run
// inside a single process-wide mutex. A mutex-per-collection would allow a
// little more parallelism, but the collections are small and correctness
// is easier to see with one critical section.
package local

import (
	"sync"

	"github.com/sakif/hirepro/internal/store"
)

// DB implements every repository interface over a store.Store.
//
// One struct (rather than one per entity) because the entities share a
// single mutex and a single store handle.
type DB struct {
	store store.Store
	mu    sync.RWMutex
}

// New creates a DB over the given store.
func New(s store.Store) *DB {
	return &DB{store: s}
}
