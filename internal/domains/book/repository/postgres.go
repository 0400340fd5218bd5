package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"book-catalog-backend/internal/domains/book/model"
	"book-catalog-backend/internal/infrastructure/database"
	"book-catalog-backend/internal/shared/utils"
)

// postgresRepository - raw SQL over a pgx pool
type postgresRepository struct {
	pool database.Querier
}

func NewPostgresRepository(pool database.Querier) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const bookColumns = `id, title, author, price, description, caption, image, stock, category, created_at, updated_at`

// insertion order
const bookOrder = `ORDER BY created_at, id`

func scanBook(row pgx.Row) (*model.Book, error) {
	var b model.Book
	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.Price,
		&b.Description,
		&b.Caption,
		&b.Image,
		&b.Stock,
		&b.Category,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *postgresRepository) queryBooks(ctx context.Context, query string, args ...any) ([]model.Book, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := make([]model.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return books, nil
}

// notFound maps "no such row" and "not a uuid" to ErrBookNotFound.
func notFound(err error, op string) error {
	if errors.Is(err, pgx.ErrNoRows) || database.IsInvalidText(err) {
		return model.ErrBookNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ========================= CREATE =====================

const insertBookQuery = `
	INSERT INTO books (id, title, author, price, description, caption, image, stock, category, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING ` + bookColumns

// Create inserts the book and returns the stored row.
func (r *postgresRepository) Create(ctx context.Context, book *model.Book) (*model.Book, error) {
	saved, err := scanBook(r.pool.QueryRow(ctx, insertBookQuery,
		book.ID,
		book.Title,
		book.Author,
		book.Price,
		book.Description,
		book.Caption,
		book.Image,
		book.Stock,
		book.Category,
		book.CreatedAt,
		book.UpdatedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("insert book: %w", err)
	}
	return saved, nil
}

// ========================= READ =====================

func (r *postgresRepository) FindAll(ctx context.Context) ([]model.Book, error) {
	books, err := r.queryBooks(ctx, `SELECT `+bookColumns+` FROM books `+bookOrder)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

const selectBookByIDQuery = `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

func (r *postgresRepository) FindByID(ctx context.Context, id string) (*model.Book, error) {
	bookID, ok := utils.ParseUUID(id)
	if !ok {
		return nil, model.ErrBookNotFound
	}

	b, err := scanBook(r.pool.QueryRow(ctx, selectBookByIDQuery, bookID))
	if err != nil {
		return nil, notFound(err, "find book")
	}
	return b, nil
}

// Search matches query as a case-insensitive substring of title, author or category.
func (r *postgresRepository) Search(ctx context.Context, query string) ([]model.Book, error) {
	conditions := []string{
		"title ILIKE $1",
		"author ILIKE $1",
		"category ILIKE $1",
	}
	sql := fmt.Sprintf(`SELECT %s FROM books WHERE %s %s`, bookColumns, utils.JoinWithOr(conditions), bookOrder)

	books, err := r.queryBooks(ctx, sql, utils.ContainsPattern(query))
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	return books, nil
}

const selectBooksByCategoryQuery = `SELECT ` + bookColumns + ` FROM books WHERE category ILIKE $1 ` + bookOrder

func (r *postgresRepository) FindByCategory(ctx context.Context, category string) ([]model.Book, error) {
	books, err := r.queryBooks(ctx, selectBooksByCategoryQuery, utils.ContainsPattern(category))
	if err != nil {
		return nil, fmt.Errorf("books by category: %w", err)
	}
	return books, nil
}

// ========================= UPDATE =====================

// UpdateByID overwrites the supplied fields and bumps updated_at in one statement.
func (r *postgresRepository) UpdateByID(ctx context.Context, id string, patch model.BookPatch) (*model.Book, error) {
	bookID, ok := utils.ParseUUID(id)
	if !ok {
		return nil, model.ErrBookNotFound
	}

	query, args := buildUpdateQuery(bookID, patch)
	b, err := scanBook(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if patch.Price != nil && database.IsNumericOutOfRange(err) {
			return nil, &model.ValidationError{Err: model.ErrPriceTooLarge, Received: patch.Price}
		}
		return nil, notFound(err, "update book")
	}
	return b, nil
}

func buildUpdateQuery(id uuid.UUID, patch model.BookPatch) (string, []any) {
	sets := make([]string, 0, 9)
	args := make([]any, 0, 9)

	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Author != nil {
		set("author", *patch.Author)
	}
	if patch.Price != nil {
		set("price", *patch.Price)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.Caption != nil {
		set("caption", *patch.Caption)
	}
	if patch.Image != nil {
		set("image", *patch.Image)
	}
	if patch.Stock != nil {
		set("stock", *patch.Stock)
	}
	if patch.Category != nil {
		set("category", *patch.Category)
	}
	sets = append(sets, "updated_at = NOW()")

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE books SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), bookColumns)

	return query, args
}

// ========================= DELETE =====================

func (r *postgresRepository) DeleteByID(ctx context.Context, id string) error {
	bookID, ok := utils.ParseUUID(id)
	if !ok {
		return model.ErrBookNotFound
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, bookID)
	if err != nil {
		return notFound(err, "delete book")
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}
