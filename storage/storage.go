// Package storage defines the blob store that holds uploaded payloads.
// Metadata lives in the database, keyed by the same opaque id, so the
// store only ever deals in raw bytes.
package storage

import (
	"context"
	"errors"
	"io"

	"gorm.io/gorm"
)

// ErrNotFound is returned when no payload exists under the given id.
var ErrNotFound = errors.New("object not found")

// BlobStore stores file payloads under opaque ids. Implementations must
// return ErrNotFound from Open and Delete when the id is unknown,
// repeated deletes of the same id error instead of no-opping.
type BlobStore interface {
	// Store writes the full payload under id. The reader must be
	// positioned at the start and size must match its length.
	Store(ctx context.Context, id, filename, contentType string, r io.ReadSeeker, size int64) error

	// Open returns the payload as a stream. The caller owns the
	// returned ReadCloser.
	Open(ctx context.Context, id string) (io.ReadCloser, error)

	// Delete removes the payload.
	Delete(ctx context.Context, id string) error
}

// ListFilter is the typed predicate used to select file metadata rows.
// Only simple category equality and inequality exist, which is all the
// tugas/galeri split needs. Keeping this out of handler code means the
// metadata backend can change without touching the API layer.
type ListFilter struct {
	Category    string // exact match when set
	NotCategory string // exclusion when set
}

// Scope applies the filter as a gorm scope.
func (f ListFilter) Scope() func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if f.Category != "" {
			tx = tx.Where("category = ?", f.Category)
		}
		if f.NotCategory != "" {
			tx = tx.Where("category <> ?", f.NotCategory)
		}
		return tx
	}
}
