// Package store provides the collection store that backs all persistence.
//
// THE STORAGE MODEL:
// The application persists a handful of named JSON collections — "jobs",
// "users", "hrs", plus the two session pointer records "hrInfo" and
// "userInfo". Reads return the whole collection; writes overwrite it
// wholesale. There are no partial updates and no merge semantics: every
// mutation in the app is read-full-collection → modify in memory →
// write-full-collection.
//
// That sounds wasteful compared to row-level SQL, but the collections are
// small (one browser-profile's worth of data in the original product), and
// it buys a very simple contract: the repository layer above owns ALL the
// data-shape logic, and the store only moves JSON blobs.
//
// CONCURRENCY:
// The store itself is safe for concurrent use, but a read-modify-write
// sequence across two calls is not atomic. The repository layer serializes
// every mutation behind a single mutex, so two request handlers can never
// interleave their read and write and lose an update.
package store

import (
	"context"
	"encoding/json"
	"sync"
)

// Collection names persisted by the application. Kept here so the
// repository and the tests agree on the storage layout.
const (
	CollectionJobs     = "jobs"
	CollectionUsers    = "users"
	CollectionHRs      = "hrs"
	CollectionHRInfo   = "hrInfo"
	CollectionUserInfo = "userInfo"
)

// Store is whole-collection JSON persistence.
//
// Read unmarshals the named collection into v (a pointer). An absent
// collection — or one whose stored document is corrupt — leaves v at its
// zero value and returns nil: callers treat both as "empty", never as an
// error. Write marshals v and overwrites the collection. Delete removes
// the collection entirely (used for clearing session pointers).
type Store interface {
	Read(ctx context.Context, collection string, v any) error
	Write(ctx context.Context, collection string, v any) error
	Delete(ctx context.Context, collection string) error
}

// Memory is an in-memory Store for tests and for running without a
// database file. It holds marshaled JSON (not live pointers) so it
// round-trips data exactly like the SQLite store does.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Read(_ context.Context, collection string, v any) error {
	m.mu.RLock()
	raw, ok := m.data[collection]
	m.mu.RUnlock()
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		// Corrupt document reads as empty, same as the SQLite store.
		return nil
	}
	return nil
}

func (m *Memory) Write(_ context.Context, collection string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[collection] = raw
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, collection string) error {
	m.mu.Lock()
	delete(m.data, collection)
	m.mu.Unlock()
	return nil
}

// Corrupt plants an unparseable document under the collection. Test hook
// for the "malformed JSON reads as empty" contract.
func (m *Memory) Corrupt(collection string) {
	m.mu.Lock()
	m.data[collection] = []byte("{not json")
	m.mu.Unlock()
}
