package repository

import (
	"context"

	"book-catalog-backend/internal/domains/book/model"
)

// RepositoryInterface - data access for books
// ids are taken as strings; a malformed id behaves like an unknown one.
type RepositoryInterface interface {
	Create(ctx context.Context, book *model.Book) (*model.Book, error)
	FindAll(ctx context.Context) ([]model.Book, error)
	FindByID(ctx context.Context, id string) (*model.Book, error)
	UpdateByID(ctx context.Context, id string, patch model.BookPatch) (*model.Book, error)
	DeleteByID(ctx context.Context, id string) error
	Search(ctx context.Context, query string) ([]model.Book, error)
	FindByCategory(ctx context.Context, category string) ([]model.Book, error)
}
