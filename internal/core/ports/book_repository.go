package ports

import (
	"context"

	"github.com/pageturn/bookshelf-api/internal/core/domain"
)

// BookRepository defines persistence operations for books.
//
// Visibility is part of the contract: FindByID, Update and Unpublish only
// consider published books, so an unpublished id behaves exactly like a
// nonexistent one. Create must be atomic with respect to the id-uniqueness
// check, and Update/Unpublish must be atomic read-modify-writes per record.
type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) error
	// FindByID retrieves a published book; unpublished and unknown ids both
	// return domain.ErrBookNotFound.
	FindByID(ctx context.Context, id string) (*domain.Book, error)
	// FindAll returns published books matching search, sorted by title
	// ascending with id ascending as tie-break.
	FindAll(ctx context.Context, search domain.Search) ([]*domain.Book, error)
	// Update replaces title, description and price of a published book and
	// returns the updated record.
	Update(ctx context.Context, id string, title, description string, price domain.Price) (*domain.Book, error)
	// Unpublish transitions a published book to unpublished and returns the
	// record in its new state.
	Unpublish(ctx context.Context, id string) (*domain.Book, error)
}

// BookCache is a read-through cache for single-book lookups. Implementations
// must treat a miss and an error identically from the caller's perspective:
// the service falls back to the repository either way.
type BookCache interface {
	Get(ctx context.Context, id string) (*domain.Book, bool)
	Set(ctx context.Context, book *domain.Book)
	Invalidate(ctx context.Context, id string)
}
