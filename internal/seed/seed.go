// Package seed provides the initial contents of the book catalog.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vyrodovalexey/bookcatalog/internal/model"
	"github.com/vyrodovalexey/bookcatalog/internal/store"
)

// ErrInvalidSeed is returned when a seed entry lacks a title or author.
var ErrInvalidSeed = errors.New("seed book requires title and author")

// DefaultBooks returns the books the catalog starts with when no seed file
// is configured.
func DefaultBooks() []model.BookFields {
	return []model.BookFields{
		{Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", Year: 1925},
		{Title: "To Kill a Mockingbird", Author: "Harper Lee", Year: 1960},
		{Title: "1984", Author: "George Orwell", Year: 1949},
	}
}

// file is the on-disk layout of a seed file.
//
//	books:
//	  - title: Dune
//	    author: Frank Herbert
//	    year: 1965
type file struct {
	Books []model.BookFields `yaml:"books"`
}

// Parse decodes seed books from YAML.
func Parse(data []byte) ([]model.BookFields, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding seed yaml: %w", err)
	}

	books := make([]model.BookFields, 0, len(f.Books))
	for i, b := range f.Books {
		b.Normalize()
		if b.Title == "" || b.Author == "" {
			return nil, fmt.Errorf("seed book %d: %w", i, ErrInvalidSeed)
		}
		books = append(books, b)
	}

	return books, nil
}

// Load returns the seed books for path, or DefaultBooks when path is empty.
func Load(path string) ([]model.BookFields, error) {
	if path == "" {
		return DefaultBooks(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}

	return Parse(data)
}

// Apply creates every seed book in s, in order.
func Apply(ctx context.Context, s store.Store, books []model.BookFields) error {
	for _, b := range books {
		if _, err := s.Create(ctx, b); err != nil {
			return fmt.Errorf("seeding %q: %w", b.Title, err)
		}
	}
	return nil
}
