package store

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vyrodovalexey/bookcatalog/internal/model"
)

// Catalog metrics.
var (
	catalogBooks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_books",
			Help: "Number of books currently in the catalog",
		},
	)

	catalogMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_mutations_total",
			Help: "Total number of successful catalog mutations",
		},
		[]string{"operation"},
	)
)

// MemoryStore implements Store interface with in-memory storage.
// Books are kept in insertion order and IDs are never reused.
type MemoryStore struct {
	mu     sync.RWMutex
	books  []model.Book
	nextID int64
	now    func() time.Time
}

// Option configures a MemoryStore.
type Option func(*MemoryStore)

// WithClock sets the clock used to default the year of new books.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		s.now = now
	}
}

// NewMemoryStore creates a new MemoryStore instance.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		books:  make([]model.Book, 0),
		nextID: 1,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns all books in insertion order.
func (s *MemoryStore) List(ctx context.Context) ([]model.Book, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("list books: %w", ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.books), nil
}

// Get retrieves a book by its ID.
func (s *MemoryStore) Get(ctx context.Context, id int64) (*model.Book, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("get book: %w", ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}

	book := s.books[idx]
	return &book, nil
}

// Create appends a new book and returns it with its assigned ID.
func (s *MemoryStore) Create(ctx context.Context, fields model.BookFields) (*model.Book, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("create book: %w", ctx.Err())
	default:
	}

	fields.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	year := fields.Year
	if year == 0 {
		year = s.now().Year()
	}

	book := model.Book{
		ID:     s.nextID,
		Title:  fields.Title,
		Author: fields.Author,
		Year:   year,
	}
	s.nextID++
	s.books = append(s.books, book)

	catalogBooks.Set(float64(len(s.books)))
	catalogMutationsTotal.WithLabelValues("create").Inc()

	return &book, nil
}

// Update replaces title and author of an existing book. A zero year keeps
// the stored one.
func (s *MemoryStore) Update(ctx context.Context, id int64, fields model.BookFields) (*model.Book, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("update book: %w", ctx.Err())
	default:
	}

	fields.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}

	book := &s.books[idx]
	book.Title = fields.Title
	book.Author = fields.Author
	if fields.Year != 0 {
		book.Year = fields.Year
	}

	catalogMutationsTotal.WithLabelValues("update").Inc()

	updated := *book
	return &updated, nil
}

// Delete removes a book by its ID and returns the removed record.
func (s *MemoryStore) Delete(ctx context.Context, id int64) (*model.Book, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("delete book: %w", ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}

	deleted := s.books[idx]
	s.books = slices.Delete(s.books, idx, idx+1)

	catalogBooks.Set(float64(len(s.books)))
	catalogMutationsTotal.WithLabelValues("delete").Inc()

	return &deleted, nil
}

// Len returns the number of books in the store.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.books)
}

// indexOf returns the slice index of the book with the given ID, or -1.
// Callers must hold s.mu.
func (s *MemoryStore) indexOf(id int64) int {
	return slices.IndexFunc(s.books, func(b model.Book) bool {
		return b.ID == id
	})
}
