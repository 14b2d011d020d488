package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pageturn/bookshelf-api/internal/core/domain"
	"github.com/pageturn/bookshelf-api/internal/core/ports"
)

// BookHandler handles HTTP requests for book operations.
type BookHandler struct {
	service ports.BookService
}

func NewBookHandler(service ports.BookService) *BookHandler {
	return &BookHandler{service: service}
}

// Create handles POST /books.
//
// @Summary      Create a new book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookRequest  true  "Book details"
// @Success      201   {object}  bookResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /books [post]
func (h *BookHandler) Create(c echo.Context) error {
	var req createBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	book, err := h.service.Create(c.Request().Context(), toCreateInput(req, username))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toBookResponse(book))
}

// List handles GET /books with an optional ?search= filter on titles.
//
// @Summary      List published books
// @Tags         books
// @Produce      json
// @Param        search  query     string  false  "Case-insensitive substring filter on titles"
// @Success      200     {object}  listBooksResponse
// @Failure      400     {object}  errorResponse
// @Router       /books [get]
func (h *BookHandler) List(c echo.Context) error {
	search := domain.NoSearch
	if raw := c.QueryParam("search"); raw != "" {
		var err error
		if search, err = domain.NewSearch(raw); err != nil {
			return err
		}
	}

	books, err := h.service.List(c.Request().Context(), search)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListResponse(books))
}

// Get handles GET /books/:id.
//
// @Summary      Get a published book by id
// @Tags         books
// @Produce      json
// @Param        id   path      string  true  "Book id"
// @Success      200  {object}  bookResponse
// @Failure      404  {object}  errorResponse
// @Router       /books/{id} [get]
func (h *BookHandler) Get(c echo.Context) error {
	book, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookResponse(book))
}

// Update handles PUT /books/:id.
//
// @Summary      Update a book's title, description and price
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Book id"
// @Param        body  body      updateBookRequest  true  "New field values"
// @Success      200   {object}  bookResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /books/{id} [put]
func (h *BookHandler) Update(c echo.Context) error {
	var req updateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	book, err := h.service.Update(c.Request().Context(), toUpdateInput(req, c.Param("id")))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toBookResponse(book))
}

// Delete handles DELETE /books/:id. The book is soft-deleted and returned
// in its unpublished state as confirmation.
//
// @Summary      Unpublish a book
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Book id"
// @Success      200  {object}  bookResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /books/{id} [delete]
func (h *BookHandler) Delete(c echo.Context) error {
	book, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookResponse(book))
}
