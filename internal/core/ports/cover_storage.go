package ports

import (
	"context"
	"io"
)

// CoverObject is a stored cover image streamed back to the caller.
type CoverObject struct {
	ContentType string
	Size        int64
	Body        io.ReadCloser
}

// CoverStorage persists cover image bytes in object storage, keyed by book id.
type CoverStorage interface {
	Put(ctx context.Context, bookID, contentType string, body io.Reader, size int64) error
	Get(ctx context.Context, bookID string) (*CoverObject, error)
	Delete(ctx context.Context, bookID string) error
}

// CoverService gates cover operations on book visibility and delegates the
// bytes to CoverStorage.
type CoverService interface {
	Upload(ctx context.Context, bookID, contentType string, body io.Reader, size int64) error
	Download(ctx context.Context, bookID string) (*CoverObject, error)
	Remove(ctx context.Context, bookID string) error
}
