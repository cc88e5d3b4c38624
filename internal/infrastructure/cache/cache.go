// Package cache holds the catalog listing cache. Entries are opaque byte
// payloads keyed by a query fingerprint; Invalidate drops every entry at once
// so any change to a job's listing data is visible on the next read.
//
// Every lookup reports the generation it ran in. A page computed after a miss
// is written back with that generation, and the write is dropped when an
// Invalidate happened in between, so a page read from the database before a
// commit can never be served after it.
package cache

import "context"

// Store is implemented by every cache backend.
type Store interface {
	// Get returns the payload for key, the current generation and whether
	// the key was present.
	Get(ctx context.Context, key string) ([]byte, int64, bool, error)
	// Set stores value unless the generation has moved past gen.
	Set(ctx context.Context, key string, gen int64, value []byte) error
	// Invalidate drops every entry and starts a new generation.
	Invalidate(ctx context.Context) error
	Close() error
}

// NopStore never holds anything.
type NopStore struct{}

func (NopStore) Get(context.Context, string) ([]byte, int64, bool, error) { return nil, 0, false, nil }
func (NopStore) Set(context.Context, string, int64, []byte) error         { return nil }
func (NopStore) Invalidate(context.Context) error                         { return nil }
func (NopStore) Close() error                                             { return nil }

var _ Store = NopStore{}
