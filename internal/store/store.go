// Package store provides data storage interfaces and implementations.
package store

import (
	"context"
	"errors"

	"github.com/vyrodovalexey/bookcatalog/internal/model"
)

// Store errors.
var (
	ErrNotFound = errors.New("book not found")
)

// Store defines the interface for catalog storage operations.
type Store interface {
	// List returns all books in insertion order.
	List(ctx context.Context) ([]model.Book, error)

	// Get retrieves a book by its ID.
	Get(ctx context.Context, id int64) (*model.Book, error)

	// Create appends a new book and returns it with its assigned ID.
	Create(ctx context.Context, fields model.BookFields) (*model.Book, error)

	// Update replaces title and author of an existing book. The year is
	// replaced only when fields.Year is non-zero.
	Update(ctx context.Context, id int64, fields model.BookFields) (*model.Book, error)

	// Delete removes a book by its ID and returns the removed record.
	Delete(ctx context.Context, id int64) (*model.Book, error)
}
