package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"book-catalog-backend/internal/config"
	bookHandler "book-catalog-backend/internal/domains/book/handler"
	"book-catalog-backend/internal/domains/book/model"
	bookService "book-catalog-backend/internal/domains/book/service"
	"book-catalog-backend/internal/domains/user"
	userHandler "book-catalog-backend/internal/domains/user/handler"
	userService "book-catalog-backend/internal/domains/user/service"
	"book-catalog-backend/internal/shared/middleware"
	"book-catalog-backend/pkg/container"
	"book-catalog-backend/pkg/jwt"
	"book-catalog-backend/pkg/password"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type emptyBookRepo struct{}

func (emptyBookRepo) Create(_ context.Context, b *model.Book) (*model.Book, error) { return b, nil }
func (emptyBookRepo) FindAll(context.Context) ([]model.Book, error)                { return []model.Book{}, nil }
func (emptyBookRepo) FindByID(context.Context, string) (*model.Book, error) {
	return nil, model.ErrBookNotFound
}
func (emptyBookRepo) UpdateByID(context.Context, string, model.BookPatch) (*model.Book, error) {
	return nil, model.ErrBookNotFound
}
func (emptyBookRepo) DeleteByID(context.Context, string) error { return model.ErrBookNotFound }
func (emptyBookRepo) Search(context.Context, string) ([]model.Book, error) {
	return []model.Book{}, nil
}
func (emptyBookRepo) FindByCategory(context.Context, string) ([]model.Book, error) {
	return []model.Book{}, nil
}

type emptyUserRepo struct{}

func (emptyUserRepo) Create(context.Context, *user.User) error { return nil }
func (emptyUserRepo) FindByEmail(context.Context, string) (*user.User, error) {
	return nil, user.ErrIdentityNotFound
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func testContainer() *container.Container {
	reg := prometheus.NewRegistry()
	cfg := &config.Config{App: config.AppConfig{Version: "test", CORSOrigins: []string{"*"}}}

	return &container.Container{
		Config:      cfg,
		Registry:    reg,
		Metrics:     middleware.NewMetrics(reg),
		UserHandler: userHandler.NewUserHandler(userService.NewUserService(emptyUserRepo{}, password.NewHasher(bcrypt.MinCost, 1), jwt.NewManager("secret", 0)), false),
		BookHandler: bookHandler.NewHandler(bookService.NewService(emptyBookRepo{}), false),
	}
}

func request(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_Routes(t *testing.T) {
	r := SetupRouter(testContainer())

	tests := []struct {
		method, path, body string
		want               int
	}{
		{http.MethodGet, "/api/books", "", http.StatusOK},
		{http.MethodGet, "/api/books/search?query=dune", "", http.StatusOK},
		{http.MethodGet, "/api/books/search", "", http.StatusBadRequest},
		{http.MethodGet, "/api/books/category/fiction", "", http.StatusOK},
		{http.MethodGet, "/api/books/not-a-uuid", "", http.StatusNotFound},
		{http.MethodPut, "/api/books/not-a-uuid", `{}`, http.StatusNotFound},
		{http.MethodDelete, "/api/books/not-a-uuid", "", http.StatusNotFound},
		{http.MethodPost, "/api/books/create", `{"title":"Dune"}`, http.StatusBadRequest},
		{http.MethodPost, "/api/books/create", `{"title":"Dune","author":"Herbert","price":"9.99"}`, http.StatusCreated},
		{http.MethodPost, "/api/auth/login", `{"email":"a@b.c","password":"pw"}`, http.StatusBadRequest},
		{http.MethodPost, "/api/auth/register", `{"email":"a@b.c"}`, http.StatusBadRequest},
		{http.MethodGet, "/api/health", "", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := request(r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestRouter_Metrics(t *testing.T) {
	r := SetupRouter(testContainer())

	request(r, http.MethodGet, "/api/books", "")
	request(r, http.MethodGet, "/nowhere", "")

	w := request(r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)

	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `catalog_http_requests_total{method="GET",route="/api/books",status="200"} 1`)
	assert.Contains(t, string(body), `route="unmatched"`)
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name       string
		db, redis  pinger
		wantStatus int
		wantState  string
		wantRedis  string
		wantDB     string
	}{
		{name: "all up", db: fakePinger{}, redis: fakePinger{}, wantStatus: http.StatusOK, wantState: "ok", wantRedis: "ok", wantDB: "ok"},
		{name: "redis disabled", db: fakePinger{}, wantStatus: http.StatusOK, wantState: "ok", wantRedis: "disabled", wantDB: "ok"},
		{name: "redis down", db: fakePinger{}, redis: fakePinger{err: errors.New("dial tcp 10.0.0.7:6379: refused")}, wantStatus: http.StatusOK, wantState: "degraded", wantRedis: "error", wantDB: "ok"},
		{name: "db down", db: fakePinger{err: errors.New("password authentication failed for user catalog")}, wantStatus: http.StatusServiceUnavailable, wantState: "unavailable", wantRedis: "disabled", wantDB: "error"},
		{name: "db not connected", wantStatus: http.StatusServiceUnavailable, wantState: "unavailable", wantRedis: "disabled", wantDB: "disconnected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/health", healthCheck("1.0.0", tt.db, tt.redis))

			w := request(r, http.MethodGet, "/health", "")
			assert.Equal(t, tt.wantStatus, w.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantState, body["status"])
			services := body["services"].(map[string]any)
			assert.Equal(t, tt.wantRedis, services["redis"])
			assert.Equal(t, tt.wantDB, services["database"])
			// internal error text stays in the logs
			assert.NotContains(t, w.Body.String(), "10.0.0.7")
			assert.NotContains(t, w.Body.String(), "password authentication")
		})
	}
}
