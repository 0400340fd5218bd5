package service

import (
	"context"

	"book-catalog-backend/internal/domains/book/model"
)

// ServiceInterface - business logic of the book catalog
type ServiceInterface interface {
	CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.BookCreatedResponse, error)
	ListBooks(ctx context.Context) ([]model.Book, error)
	GetBook(ctx context.Context, id string) (*model.Book, error)
	UpdateBook(ctx context.Context, id string, req model.UpdateBookRequest) (*model.Book, error)
	DeleteBook(ctx context.Context, id string) error
	SearchBooks(ctx context.Context, query string) ([]model.Book, error)
	BooksByCategory(ctx context.Context, category string) ([]model.Book, error)
}
