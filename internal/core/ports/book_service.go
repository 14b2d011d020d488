package ports

import (
	"context"

	"github.com/pageturn/bookshelf-api/internal/core/domain"
)

// CreateBookInput carries all data needed to create a new book. The author
// is resolved from the authenticated caller's username, never from the body.
type CreateBookInput struct {
	AuthorUsername string
	Title          string
	Description    string
	Price          domain.Price
}

// UpdateBookInput carries the three mutable fields of a book. Identity,
// author and state are never touched by an update.
type UpdateBookInput struct {
	ID          string
	Title       string
	Description string
	Price       domain.Price
}

// BookService defines the use-case operations of the book aggregate.
type BookService interface {
	Create(ctx context.Context, input CreateBookInput) (*domain.Book, error)
	List(ctx context.Context, search domain.Search) ([]*domain.Book, error)
	Get(ctx context.Context, id string) (*domain.Book, error)
	Update(ctx context.Context, input UpdateBookInput) (*domain.Book, error)
	// Delete soft-deletes: the book transitions to unpublished and is
	// returned as confirmation. A second delete fails with ErrBookNotFound.
	Delete(ctx context.Context, id string) (*domain.Book, error)
}
