package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"book-catalog-backend/internal/domains/book/model"
	"book-catalog-backend/internal/domains/book/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockService struct{ mock.Mock }

func (m *mockService) CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.BookCreatedResponse, error) {
	args := m.Called(req)
	res, _ := args.Get(0).(*model.BookCreatedResponse)
	return res, args.Error(1)
}

func (m *mockService) ListBooks(ctx context.Context) ([]model.Book, error) {
	args := m.Called()
	books, _ := args.Get(0).([]model.Book)
	return books, args.Error(1)
}

func (m *mockService) GetBook(ctx context.Context, id string) (*model.Book, error) {
	args := m.Called(id)
	b, _ := args.Get(0).(*model.Book)
	return b, args.Error(1)
}

func (m *mockService) UpdateBook(ctx context.Context, id string, req model.UpdateBookRequest) (*model.Book, error) {
	args := m.Called(id, req)
	b, _ := args.Get(0).(*model.Book)
	return b, args.Error(1)
}

func (m *mockService) DeleteBook(ctx context.Context, id string) error {
	return m.Called(id).Error(0)
}

func (m *mockService) SearchBooks(ctx context.Context, query string) ([]model.Book, error) {
	args := m.Called(query)
	books, _ := args.Get(0).([]model.Book)
	return books, args.Error(1)
}

func (m *mockService) BooksByCategory(ctx context.Context, category string) ([]model.Book, error) {
	args := m.Called(category)
	books, _ := args.Get(0).([]model.Book)
	return books, args.Error(1)
}

func newRouter(svc service.ServiceInterface, debug bool) *gin.Engine {
	h := NewHandler(svc, debug)
	r := gin.New()
	books := r.Group("/api/books")
	books.POST("/create", h.CreateBook)
	books.GET("", h.ListBooks)
	books.GET("/search", h.SearchBooks)
	books.GET("/category/:category", h.BooksByCategory)
	books.GET("/:id", h.GetBook)
	books.PUT("/:id", h.UpdateBook)
	books.DELETE("/:id", h.DeleteBook)
	return r
}

func do(t *testing.T, r http.Handler, method, path, body string) (int, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w.Code, out
}

func errorOf(body map[string]any) map[string]any {
	e, _ := body["error"].(map[string]any)
	return e
}

var bookID = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

func TestCreateBook_Created(t *testing.T) {
	svc := new(mockService)
	b := &model.Book{ID: bookID, Title: "Dune", Author: "Herbert", Price: decimal.RequireFromString("19.99"), Image: model.DefaultImage, Category: "general"}
	svc.On("CreateBook", mock.Anything).Return(model.ToCreatedResponse(b), nil)

	status, body := do(t, newRouter(svc, false), http.MethodPost, "/api/books/create",
		`{"title":"Dune","author":"Herbert","price":19.99}`)

	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Book created successfully", body["message"])
	data := body["data"].(map[string]any)
	assert.Equal(t, 19.99, data["price"])
	assert.Equal(t, map[string]any{
		"view":   "/books/" + bookID.String(),
		"update": "/books/" + bookID.String(),
		"delete": "/books/" + bookID.String(),
	}, data["links"])
}

func TestCreateBook_ValidationErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantMessage string
		wantDetails map[string]any
	}{
		{
			name:        "missing fields carry example",
			err:         &model.ValidationError{Err: model.ErrMissingFields, Fields: []string{"title", "price"}},
			wantMessage: "Missing required fields",
		},
		{
			name:        "bad price type",
			err:         &model.ValidationError{Err: model.ErrInvalidPriceType, Received: "abc"},
			wantMessage: "Price must be a number",
			wantDetails: map[string]any{"received": "abc"},
		},
		{
			name:        "non positive price",
			err:         &model.ValidationError{Err: model.ErrInvalidPriceRange, Received: float64(-1)},
			wantMessage: "Price must be greater than 0",
			wantDetails: map[string]any{"received": float64(-1)},
		},
		{
			name:        "price beyond column range",
			err:         &model.ValidationError{Err: model.ErrPriceTooLarge, Received: 1e11},
			wantMessage: "Price must not exceed 9999999999.99",
			wantDetails: map[string]any{"received": 1e11},
		},
		{
			name:        "bad image",
			err:         &model.ValidationError{Err: model.ErrInvalidImageURL, Received: "nope"},
			wantMessage: "Image must be a valid URL",
			wantDetails: map[string]any{"received": "nope"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			svc.On("CreateBook", mock.Anything).Return(nil, tt.err)

			status, body := do(t, newRouter(svc, false), http.MethodPost, "/api/books/create", `{}`)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantMessage, errorOf(body)["message"])

			details := errorOf(body)["details"].(map[string]any)
			if tt.wantDetails != nil {
				assert.Equal(t, tt.wantDetails, details)
				return
			}
			assert.Equal(t, []any{"title", "price"}, details["missingFields"])
			example := details["example"].(map[string]any)
			assert.Equal(t, "Book Title", example["title"])
			assert.Equal(t, 19.99, example["price"])
		})
	}
}

func TestCreateBook_EmptyBodyReportsMissingFields(t *testing.T) {
	// real service: validation fails before the store is touched
	r := newRouter(service.NewService(nil), false)

	for _, body := range []string{"", "{}"} {
		status, out := do(t, r, http.MethodPost, "/api/books/create", body)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Missing required fields", errorOf(out)["message"])

		details := errorOf(out)["details"].(map[string]any)
		assert.Equal(t, []any{"title", "author", "price"}, details["missingFields"])
		assert.Contains(t, details, "example")
	}
}

func TestCreateBook_InternalError(t *testing.T) {
	for _, debug := range []bool{false, true} {
		svc := new(mockService)
		svc.On("CreateBook", mock.Anything).Return(nil, errors.New("pg: too many connections"))

		status, body := do(t, newRouter(svc, debug), http.MethodPost, "/api/books/create",
			`{"title":"Dune","author":"Herbert","price":1}`)

		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "BOOK_CREATION_ERROR", errorOf(body)["code"])
		assert.Equal(t, "Internal server error", errorOf(body)["message"])
		if debug {
			assert.Equal(t, "pg: too many connections", errorOf(body)["details"])
		} else {
			assert.NotContains(t, errorOf(body), "details")
		}
	}
}

func TestCreateBook_BadStockIsInvalidBody(t *testing.T) {
	svc := new(mockService)

	status, body := do(t, newRouter(svc, false), http.MethodPost, "/api/books/create",
		`{"title":"Dune","author":"Herbert","price":1,"stock":"lots"}`)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, map[string]any{"stock": "must be a int"}, errorOf(body)["details"])
	svc.AssertNotCalled(t, "CreateBook", mock.Anything)
}

func TestGetBook(t *testing.T) {
	svc := new(mockService)
	svc.On("GetBook", bookID.String()).Return(&model.Book{ID: bookID, Title: "Dune"}, nil)
	svc.On("GetBook", "nope").Return(nil, model.ErrBookNotFound)

	r := newRouter(svc, false)

	status, body := do(t, r, http.MethodGet, "/api/books/"+bookID.String(), "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Dune", body["data"].(map[string]any)["title"])

	status, body = do(t, r, http.MethodGet, "/api/books/nope", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Book not found", errorOf(body)["message"])
	assert.Equal(t, "NOT_FOUND", errorOf(body)["code"])
}

func TestListBooks(t *testing.T) {
	svc := new(mockService)
	svc.On("ListBooks").Return([]model.Book{}, nil).Once()
	svc.On("ListBooks").Return(nil, errors.New("boom")).Once()

	r := newRouter(svc, false)

	status, body := do(t, r, http.MethodGet, "/api/books", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{}, body["data"])

	status, body = do(t, r, http.MethodGet, "/api/books", "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "BOOK_LIST_ERROR", errorOf(body)["code"])
}

func TestUpdateBook(t *testing.T) {
	t.Run("timestamps rejected", func(t *testing.T) {
		svc := new(mockService)
		svc.On("UpdateBook", bookID.String(), mock.Anything).Return(nil, model.ErrProtectedFieldMutation)

		status, body := do(t, newRouter(svc, false), http.MethodPut, "/api/books/"+bookID.String(), `{"createdAt":"2020-01-01"}`)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Cannot update timestamp fields", errorOf(body)["message"])
	})

	t.Run("patch forwarded", func(t *testing.T) {
		svc := new(mockService)
		svc.On("UpdateBook", bookID.String(), mock.MatchedBy(func(req model.UpdateBookRequest) bool {
			return req.Title != nil && *req.Title == "Dune Messiah" && req.Stock == model.IntOf(3)
		})).Return(&model.Book{ID: bookID, Title: "Dune Messiah", Stock: 3}, nil)

		status, body := do(t, newRouter(svc, false), http.MethodPut, "/api/books/"+bookID.String(), `{"title":"Dune Messiah","stock":"3"}`)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, float64(3), body["data"].(map[string]any)["stock"])
		svc.AssertExpectations(t)
	})

	t.Run("unknown id", func(t *testing.T) {
		svc := new(mockService)
		svc.On("UpdateBook", "missing", mock.Anything).Return(nil, model.ErrBookNotFound)

		status, _ := do(t, newRouter(svc, false), http.MethodPut, "/api/books/missing", `{}`)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("wrong field type", func(t *testing.T) {
		svc := new(mockService)

		status, body := do(t, newRouter(svc, false), http.MethodPut, "/api/books/"+bookID.String(), `{"title":5}`)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, map[string]any{"title": "must be a string"}, errorOf(body)["details"])
	})
}

func TestDeleteBook(t *testing.T) {
	svc := new(mockService)
	svc.On("DeleteBook", bookID.String()).Return(nil)
	svc.On("DeleteBook", "missing").Return(model.ErrBookNotFound)

	r := newRouter(svc, false)

	status, body := do(t, r, http.MethodDelete, "/api/books/"+bookID.String(), "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Book deleted successfully", body["message"])

	status, _ = do(t, r, http.MethodDelete, "/api/books/missing", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSearchAndCategory(t *testing.T) {
	svc := new(mockService)
	svc.On("SearchBooks", "").Return(nil, model.ErrMissingQuery)
	svc.On("SearchBooks", "dune").Return([]model.Book{{Title: "Dune"}}, nil)
	svc.On("BooksByCategory", "fiction").Return([]model.Book{{Category: "fiction"}}, nil)

	r := newRouter(svc, false)

	status, body := do(t, r, http.MethodGet, "/api/books/search", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Search query is required", errorOf(body)["message"])

	status, body = do(t, r, http.MethodGet, "/api/books/search?query=dune", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"], 1)

	status, body = do(t, r, http.MethodGet, "/api/books/category/fiction", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"], 1)
}
