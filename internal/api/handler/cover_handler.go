package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pageturn/bookshelf-api/internal/core/ports"
)

// maxCoverBytes caps uploaded cover images at 5 MiB.
const maxCoverBytes = 5 << 20

// CoverHandler handles cover image upload, download and removal.
type CoverHandler struct {
	service ports.CoverService
}

func NewCoverHandler(service ports.CoverService) *CoverHandler {
	return &CoverHandler{service: service}
}

// Upload handles POST and PUT /books/:id/cover. The request body is the raw
// image; Content-Type is preserved and served back on download.
//
// @Summary      Upload a cover image
// @Tags         covers
// @Accept       octet-stream
// @Security     BearerAuth
// @Param        id  path  string  true  "Book id"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /books/{id}/cover [post]
func (h *CoverHandler) Upload(c echo.Context) error {
	req := c.Request()
	// ContentLength -1 means a chunked body of unknown length; only a
	// declared empty body is rejected outright.
	if req.ContentLength == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "cover body is required")
	}
	if req.ContentLength > maxCoverBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "cover exceeds size limit")
	}

	contentType := req.Header.Get(echo.HeaderContentType)
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}

	body := http.MaxBytesReader(c.Response(), req.Body, maxCoverBytes)
	err := h.service.Upload(req.Context(), c.Param("id"), contentType, body, req.ContentLength)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "cover exceeds size limit")
		}
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// Download handles GET /books/:id/cover, streaming the stored image.
//
// @Summary      Download a cover image
// @Tags         covers
// @Produce      octet-stream
// @Param        id  path  string  true  "Book id"
// @Success      200
// @Failure      404  {object}  errorResponse
// @Router       /books/{id}/cover [get]
func (h *CoverHandler) Download(c echo.Context) error {
	obj, err := h.service.Download(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	defer obj.Body.Close()

	return c.Stream(http.StatusOK, obj.ContentType, obj.Body)
}

// Remove handles DELETE /books/:id/cover.
//
// @Summary      Delete a cover image
// @Tags         covers
// @Security     BearerAuth
// @Param        id  path  string  true  "Book id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /books/{id}/cover [delete]
func (h *CoverHandler) Remove(c echo.Context) error {
	if err := h.service.Remove(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
