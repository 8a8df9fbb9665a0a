package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/superlibrary/library-api/internal/api/metrics"
	"github.com/superlibrary/library-api/internal/core/ports"
)

// BookHandler handles HTTP requests for catalog operations.
type BookHandler struct {
	service ports.BookService
}

func NewBookHandler(service ports.BookService) *BookHandler {
	return &BookHandler{service: service}
}

// Create handles POST /v1/books.
//
// @Summary      Add a book to the catalog
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        book  body      createBookRequest  true  "Book to create"
// @Success      201   {object}  bookResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/books [post]
func (h *BookHandler) Create(c echo.Context) error {
	var req createBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), toCreateBook(req))
	if err != nil {
		return err
	}

	metrics.BooksCreatedTotal.WithLabelValues(created.Genre).Inc()
	return c.JSON(http.StatusCreated, toBookResponse(created))
}

// Get handles GET /v1/books/:id.
//
// @Summary      Get a book by id
// @Tags         books
// @Produce      json
// @Param        id   path      string  true  "Book id (24-char hex)"
// @Success      200  {object}  bookResponse
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /v1/books/{id} [get]
func (h *BookHandler) Get(c echo.Context) error {
	book, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookResponse(book))
}

// List handles GET /v1/books.
//
// @Summary      List books
// @Tags         books
// @Produce      json
// @Param        skip    query     int     false  "Documents to skip"
// @Param        limit   query     int     false  "Page size (max 200)"
// @Param        title   query     string  false  "Exact title filter"
// @Param        author  query     string  false  "Exact author filter"
// @Param        genre   query     string  false  "Exact genre filter"
// @Success      200  {object}  bookListResponse
// @Failure      422  {object}  map[string]string
// @Router       /v1/books [get]
func (h *BookHandler) List(c echo.Context) error {
	q, err := listQueryFromContext(c, "title", "author", "genre")
	if err != nil {
		return err
	}

	books, err := h.service.List(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookListResponse(books))
}

// Update handles PATCH /v1/books/:id.
//
// @Summary      Partially update a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Book id (24-char hex)"
// @Param        book  body      updateBookRequest  true  "Fields to change"
// @Success      200   {object}  bookResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/books/{id} [patch]
func (h *BookHandler) Update(c echo.Context) error {
	var req updateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	updated, err := h.service.Update(c.Request().Context(), c.Param("id"), toUpdateBook(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookResponse(updated))
}

// Delete handles DELETE /v1/books/:id.
//
// @Summary      Delete a book
// @Tags         books
// @Param        id  path  string  true  "Book id (24-char hex)"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /v1/books/{id} [delete]
func (h *BookHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
