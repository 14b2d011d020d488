package service

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/pageturn/bookshelf-api/internal/core/ports"
	"github.com/pageturn/bookshelf-api/internal/metrics"
)

// CoverService stores and serves book cover images. Every operation first
// resolves the book through the repository, so covers of unpublished or
// unknown books are unreachable under the same visibility rule as the books
// themselves.
type CoverService struct {
	books   ports.BookRepository
	storage ports.CoverStorage
	logger  zerolog.Logger
}

func NewCoverService(books ports.BookRepository, storage ports.CoverStorage, logger zerolog.Logger) *CoverService {
	return &CoverService{books: books, storage: storage, logger: logger}
}

func (s *CoverService) Upload(ctx context.Context, bookID, contentType string, body io.Reader, size int64) error {
	if _, err := s.books.FindByID(ctx, bookID); err != nil {
		return err
	}

	if err := s.storage.Put(ctx, bookID, contentType, body, size); err != nil {
		s.logger.Error().Err(err).Str("book_id", bookID).Msg("failed to store cover")
		return err
	}

	metrics.CoverUploadsTotal.Inc()
	s.logger.Info().Str("book_id", bookID).Msg("cover stored")
	return nil
}

func (s *CoverService) Download(ctx context.Context, bookID string) (*ports.CoverObject, error) {
	if _, err := s.books.FindByID(ctx, bookID); err != nil {
		return nil, err
	}
	return s.storage.Get(ctx, bookID)
}

func (s *CoverService) Remove(ctx context.Context, bookID string) error {
	if _, err := s.books.FindByID(ctx, bookID); err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, bookID); err != nil {
		return err
	}

	s.logger.Info().Str("book_id", bookID).Msg("cover removed")
	return nil
}
