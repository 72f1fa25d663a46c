// Package cache keeps the last successfully parsed input text under a
// single key.
package cache

import (
	"context"
	"errors"
)

// DefaultKey is the key the last input is stored under.
const DefaultKey = "spa_last"

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown cache backend")

// Store holds at most one value: the last parsed raw text.
type Store interface {
	// Get returns the cached text and whether a value was present.
	Get(ctx context.Context) (string, bool, error)
	// Set replaces the cached text.
	Set(ctx context.Context, text string) error
	// Delete removes the cached text. Deleting an empty store is not an error.
	Delete(ctx context.Context) error
}
