package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/database/books"
)

type BooksController struct {
	repo *books.Repository
}

func NewBooksController(repo *books.Repository) *BooksController {
	return &BooksController{repo: repo}
}

// ListBooks returns one page of the catalogue.
// GET /api/books
func (controller *BooksController) ListBooks(c *gin.Context) {
	params := books.ListParams{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Genre:    c.Query("genre"),
		Language: c.Query("language"),
		Sort:     c.Query("sort"),
		Order:    c.Query("order"),
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "page_size", books.DefaultPageSize),
	}

	result, err := controller.repo.List(params)
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetBook returns a single book by id.
// GET /api/books/:id
func (controller *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.repo.GetByID(id)
	if errors.Is(err, books.ErrNotFound) {
		respondNotFound(c, "book")
		return
	}
	if err != nil {
		respondInternalError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// CreateBook sanitizes the payload and inserts a new book.
// POST /api/books
func (controller *BooksController) CreateBook(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, "invalid JSON payload")
		return
	}

	book, err := controller.repo.Create(payload)
	if err != nil {
		var validationErr *books.ValidationError
		if errors.As(err, &validationErr) {
			respondBadRequest(c, validationErr.Message)
			return
		}
		respondInternalError(c, err, "create book")
		return
	}
	respondCreated(c, book)
}

// UpdateBook overwrites an existing book with the sanitized payload.
// PUT /api/books/:id
func (controller *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, "invalid JSON payload")
		return
	}

	book, err := controller.repo.Update(id, payload)
	if err != nil {
		var validationErr *books.ValidationError
		if errors.As(err, &validationErr) {
			respondBadRequest(c, validationErr.Message)
			return
		}
		if errors.Is(err, books.ErrNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "update book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// DeleteBook removes a book by id.
// DELETE /api/books/:id
func (controller *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	deleted, err := controller.repo.Delete(id)
	if err != nil {
		respondInternalError(c, err, "delete book")
		return
	}
	if !deleted {
		respondNotFound(c, "book")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
