// Package snapshot persists the full directory state as one opaque
// document. Every mutation rewrites the whole snapshot; the encoding must
// preserve corpus order, review order and vote-ledger contents.
package snapshot

import (
	"context"
	"errors"
)

// ErrEmpty is returned by Load when the backend holds no snapshot yet.
var ErrEmpty = errors.New("snapshot: store is empty")

// Store reads and rewrites one JSON-encodable document.
type Store interface {
	// Load decodes the stored snapshot into dest.
	Load(ctx context.Context, dest interface{}) error
	// Save encodes src and replaces the stored snapshot atomically.
	Save(ctx context.Context, src interface{}) error
}
