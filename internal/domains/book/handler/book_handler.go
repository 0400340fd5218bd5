package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"book-catalog-backend/internal/domains/book/model"
	"book-catalog-backend/internal/domains/book/service"
	"book-catalog-backend/internal/shared/response"
	"book-catalog-backend/internal/shared/validation"
)

// Handler - HTTP handler for /api/books
type Handler struct {
	service service.ServiceInterface
	debug   bool // expose internal error details
}

func NewHandler(service service.ServiceInterface, debug bool) *Handler {
	return &Handler{
		service: service,
		debug:   debug,
	}
}

// CreateBook - POST /api/books/create
func (h *Handler) CreateBook(c *gin.Context) {
	// an empty body is validated like {}
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "Invalid request body", validation.ToDetails(err))
		return
	}

	created, err := h.service.CreateBook(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err, "BOOK_CREATION_ERROR")
		return
	}

	response.Success(c, http.StatusCreated, "Book created successfully", created)
}

// ListBooks - GET /api/books
func (h *Handler) ListBooks(c *gin.Context) {
	books, err := h.service.ListBooks(c.Request.Context())
	if err != nil {
		h.handleError(c, err, "BOOK_LIST_ERROR")
		return
	}

	response.Success(c, http.StatusOK, "Books retrieved successfully", books)
}

// GetBook - GET /api/books/:id
func (h *Handler) GetBook(c *gin.Context) {
	book, err := h.service.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err, "BOOK_FETCH_ERROR")
		return
	}

	response.Success(c, http.StatusOK, "Book retrieved successfully", book)
}

// UpdateBook - PUT /api/books/:id
func (h *Handler) UpdateBook(c *gin.Context) {
	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", validation.ToDetails(err))
		return
	}

	book, err := h.service.UpdateBook(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.handleError(c, err, "BOOK_UPDATE_ERROR")
		return
	}

	response.Success(c, http.StatusOK, "Book updated successfully", book)
}

// DeleteBook - DELETE /api/books/:id
func (h *Handler) DeleteBook(c *gin.Context) {
	if err := h.service.DeleteBook(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err, "BOOK_DELETE_ERROR")
		return
	}

	response.Success(c, http.StatusOK, "Book deleted successfully", nil)
}

// SearchBooks - GET /api/books/search?query=
func (h *Handler) SearchBooks(c *gin.Context) {
	books, err := h.service.SearchBooks(c.Request.Context(), c.Query("query"))
	if err != nil {
		h.handleError(c, err, "BOOK_SEARCH_ERROR")
		return
	}

	response.Success(c, http.StatusOK, "Books retrieved successfully", books)
}

// BooksByCategory - GET /api/books/category/:category
func (h *Handler) BooksByCategory(c *gin.Context) {
	books, err := h.service.BooksByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		h.handleError(c, err, "BOOK_CATEGORY_ERROR")
		return
	}

	response.Success(c, http.StatusOK, "Books retrieved successfully", books)
}
