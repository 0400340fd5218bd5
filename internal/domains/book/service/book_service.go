package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"book-catalog-backend/internal/domains/book/model"
	"book-catalog-backend/internal/domains/book/repository"
)

// BookService implements ServiceInterface
type BookService struct {
	repo repository.RepositoryInterface
	now  func() time.Time
}

func NewService(repo repository.RepositoryInterface) ServiceInterface {
	return &BookService{
		repo: repo,
		now:  time.Now,
	}
}

// CreateBook validates, applies defaults and persists a new book.
func (s *BookService) CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.BookCreatedResponse, error) {
	// 1. Validate; the first failing rule wins
	price, err := model.ValidateCreateRequest(req)
	if err != nil {
		return nil, err
	}

	// 2. Defaults
	book := model.NewBook(req, price)
	book.ID = uuid.New()
	book.CreatedAt = s.now().UTC()
	book.UpdatedAt = book.CreatedAt

	// 3. Persist
	saved, err := s.repo.Create(ctx, book)
	if err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("[BookService] create book failed")
		return nil, fmt.Errorf("create book: %w", err)
	}

	log.Info().Str("book_id", saved.ID.String()).Msg("[BookService] book created")
	return model.ToCreatedResponse(saved), nil
}

func (s *BookService) ListBooks(ctx context.Context) ([]model.Book, error) {
	books, err := s.repo.FindAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("[BookService] list books failed")
		return nil, err
	}
	return books, nil
}

func (s *BookService) GetBook(ctx context.Context, id string) (*model.Book, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logUnexpected(err, id, "get book failed")
		return nil, err
	}
	return book, nil
}

// UpdateBook applies a shallow patch of the allow-listed fields.
// Timestamps are server managed; price is not re-validated.
func (s *BookService) UpdateBook(ctx context.Context, id string, req model.UpdateBookRequest) (*model.Book, error) {
	if req.TouchesTimestamps() {
		return nil, model.ErrProtectedFieldMutation
	}

	book, err := s.repo.UpdateByID(ctx, id, req.ToPatch())
	if err != nil {
		s.logUnexpected(err, id, "update book failed")
		return nil, err
	}
	return book, nil
}

func (s *BookService) DeleteBook(ctx context.Context, id string) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		s.logUnexpected(err, id, "delete book failed")
		return err
	}
	log.Info().Str("book_id", id).Msg("[BookService] book deleted")
	return nil
}

// SearchBooks matches query against title, author and category.
func (s *BookService) SearchBooks(ctx context.Context, query string) ([]model.Book, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, model.ErrMissingQuery
	}

	books, err := s.repo.Search(ctx, query)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("[BookService] search books failed")
		return nil, err
	}
	return books, nil
}

func (s *BookService) BooksByCategory(ctx context.Context, category string) ([]model.Book, error) {
	books, err := s.repo.FindByCategory(ctx, category)
	if err != nil {
		log.Error().Err(err).Str("category", category).Msg("[BookService] books by category failed")
		return nil, err
	}
	return books, nil
}

func (s *BookService) logUnexpected(err error, id, msg string) {
	if errors.Is(err, model.ErrBookNotFound) {
		return
	}
	log.Error().Err(err).Str("book_id", id).Msg("[BookService] " + msg)
}
