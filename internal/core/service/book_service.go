package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pageturn/bookshelf-api/internal/core/domain"
	"github.com/pageturn/bookshelf-api/internal/core/ports"
	"github.com/pageturn/bookshelf-api/internal/metrics"
)

// BookService owns the book lifecycle: creation always starts published,
// delete is a one-way transition to unpublished, and unpublished books are
// invisible to every read path.
type BookService struct {
	books  ports.BookRepository
	users  ports.UserRepository
	cache  ports.BookCache
	ids    ports.IDGenerator
	logger zerolog.Logger
}

// NewBookService wires the aggregate. cache may be nil, in which case every
// Get goes straight to the repository.
func NewBookService(books ports.BookRepository, users ports.UserRepository, cache ports.BookCache, ids ports.IDGenerator, logger zerolog.Logger) *BookService {
	return &BookService{books: books, users: users, cache: cache, ids: ids, logger: logger}
}

// Create resolves the author from the caller's username, allocates a fresh
// id and persists the book in the published state. There is no uniqueness
// constraint on titles.
func (s *BookService) Create(ctx context.Context, input ports.CreateBookInput) (*domain.Book, error) {
	if strings.TrimSpace(input.Title) == "" || input.Price.CurrencyCode == "" {
		return nil, domain.ErrInvalidInput
	}

	author, err := s.users.FindByUsername(ctx, input.AuthorUsername)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	book := &domain.Book{
		ID:          s.ids.NewID(),
		Title:       input.Title,
		Description: input.Description,
		Author: domain.AuthorRef{
			UserID:    author.ID,
			Pseudonym: author.AuthorPseudonym,
		},
		Price:     input.Price,
		State:     domain.StatePublished,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.books.Create(ctx, book); err != nil {
		s.logger.Error().Err(err).Str("title", input.Title).Msg("failed to create book")
		return nil, err
	}

	metrics.BooksCreatedTotal.Inc()
	s.logger.Info().Str("book_id", book.ID).Str("author", author.Username).Msg("book created")
	return book, nil
}

// List returns all published books matching search, sorted by title
// ascending with id ascending breaking ties.
func (s *BookService) List(ctx context.Context, search domain.Search) ([]*domain.Book, error) {
	metrics.BookSearchesTotal.WithLabelValues(boolLabel(search.Active())).Inc()
	return s.books.FindAll(ctx, search)
}

// Get returns the book only if published; an unpublished and a nonexistent
// id are indistinguishable to the caller.
func (s *BookService) Get(ctx context.Context, id string) (*domain.Book, error) {
	if s.cache != nil {
		if book, ok := s.cache.Get(ctx, id); ok {
			return book, nil
		}
	}

	book, err := s.books.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, book)
	}
	return book, nil
}

// Update replaces the three mutable fields of a visible book. Identity,
// author and state are preserved.
func (s *BookService) Update(ctx context.Context, input ports.UpdateBookInput) (*domain.Book, error) {
	if strings.TrimSpace(input.Title) == "" || input.Price.CurrencyCode == "" {
		return nil, domain.ErrInvalidInput
	}

	book, err := s.books.Update(ctx, input.ID, input.Title, input.Description, input.Price)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, book.ID)
	}
	s.logger.Info().Str("book_id", book.ID).Msg("book updated")
	return book, nil
}

// Delete transitions the book to unpublished and returns it as
// confirmation. The transition is one-way: deleting an already-unpublished
// book fails with ErrBookNotFound, same as an unknown id.
func (s *BookService) Delete(ctx context.Context, id string) (*domain.Book, error) {
	book, err := s.books.Unpublish(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, book.ID)
	}
	metrics.BooksUnpublishedTotal.Inc()
	s.logger.Info().Str("book_id", book.ID).Msg("book unpublished")
	return book, nil
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
