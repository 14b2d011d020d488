package handler

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/pageturn/bookshelf-api/internal/core/ports"
)

type stubCoverService struct {
	uploadFn   func(ctx context.Context, bookID, contentType string, body io.Reader, size int64) error
	downloadFn func(ctx context.Context, bookID string) (*ports.CoverObject, error)
	removeFn   func(ctx context.Context, bookID string) error
}

func (s *stubCoverService) Upload(ctx context.Context, bookID, contentType string, body io.Reader, size int64) error {
	return s.uploadFn(ctx, bookID, contentType, body, size)
}

func (s *stubCoverService) Download(ctx context.Context, bookID string) (*ports.CoverObject, error) {
	return s.downloadFn(ctx, bookID)
}

func (s *stubCoverService) Remove(ctx context.Context, bookID string) error {
	return s.removeFn(ctx, bookID)
}

// unsizedReader hides the concrete reader type so httptest.NewRequest leaves
// ContentLength at -1, the way a chunked transfer arrives.
type unsizedReader struct {
	io.Reader
}

func newCoverContext(method string, body io.Reader, contentType string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/books/b1/cover", body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/books/:id/cover")
	c.SetParamNames("id")
	c.SetParamValues("b1")
	return c, rec
}

func TestCoverHandler_Upload_ChunkedBody(t *testing.T) {
	var gotSize int64
	var gotBody []byte
	stub := &stubCoverService{
		uploadFn: func(_ context.Context, bookID, contentType string, body io.Reader, size int64) error {
			if bookID != "b1" || contentType != "image/png" {
				t.Fatalf("unexpected args: %s %s", bookID, contentType)
			}
			gotSize = size
			raw, err := io.ReadAll(body)
			if err != nil {
				t.Fatalf("read body: %v", err)
			}
			gotBody = raw
			return nil
		},
	}
	handler := NewCoverHandler(stub)

	c, rec := newCoverContext(http.MethodPost, unsizedReader{bytes.NewReader([]byte("fake-image"))}, "image/png")
	if c.Request().ContentLength != -1 {
		t.Fatalf("fixture must model an unknown-length body, got %d", c.Request().ContentLength)
	}

	if err := handler.Upload(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if gotSize != -1 || string(gotBody) != "fake-image" {
		t.Fatalf("unexpected upload: size=%d body=%q", gotSize, gotBody)
	}
}

func TestCoverHandler_Upload_EmptyBody(t *testing.T) {
	handler := NewCoverHandler(&stubCoverService{
		uploadFn: func(context.Context, string, string, io.Reader, int64) error {
			t.Fatal("service must not be called for an empty body")
			return nil
		},
	})

	c, _ := newCoverContext(http.MethodPost, nil, "image/png")

	err := handler.Upload(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestCoverHandler_Upload_DeclaredOversize(t *testing.T) {
	handler := NewCoverHandler(&stubCoverService{
		uploadFn: func(context.Context, string, string, io.Reader, int64) error {
			t.Fatal("service must not be called for an oversized body")
			return nil
		},
	})

	c, _ := newCoverContext(http.MethodPost, bytes.NewReader(make([]byte, maxCoverBytes+1)), "image/png")

	err := handler.Upload(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %v", err)
	}
}

func TestCoverHandler_Upload_ChunkedOversize(t *testing.T) {
	// With no declared length the size check cannot run up front; the
	// capped reader must stop the service mid-stream instead.
	stub := &stubCoverService{
		uploadFn: func(_ context.Context, _, _ string, body io.Reader, _ int64) error {
			_, err := io.ReadAll(body)
			return err
		},
	}
	handler := NewCoverHandler(stub)

	c, _ := newCoverContext(http.MethodPost, unsizedReader{bytes.NewReader(make([]byte, maxCoverBytes+1))}, "image/png")

	err := handler.Upload(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %v", err)
	}
}
