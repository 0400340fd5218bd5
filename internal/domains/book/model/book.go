package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// price is rendered as a JSON number, not a quoted string
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	DefaultImage    = "https://via.placeholder.com/150"
	DefaultCategory = "general"
)

// Book represents the main book entity.
// Match migration 000002_create_books_table.up.sql
type Book struct {
	// Identity
	ID uuid.UUID `json:"id" db:"id"`

	// Required on create
	Title  string          `json:"title" db:"title"`
	Author string          `json:"author" db:"author"`
	Price  decimal.Decimal `json:"price" db:"price"`

	// Optional, defaulted on create
	Description string `json:"description" db:"description"`
	Caption     string `json:"caption" db:"caption"`
	Image       string `json:"image" db:"image"`
	Stock       int    `json:"stock" db:"stock"`
	Category    string `json:"category" db:"category"`

	// System managed
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// BookPatch holds the allow-listed fields of an update. nil means "leave as is".
type BookPatch struct {
	Title       *string
	Author      *string
	Description *string
	Caption     *string
	Image       *string
	Category    *string
	Price       *decimal.Decimal
	Stock       *int
}

// IsEmpty reports whether the patch changes nothing.
func (p BookPatch) IsEmpty() bool {
	return p.Title == nil && p.Author == nil && p.Description == nil &&
		p.Caption == nil && p.Image == nil && p.Category == nil &&
		p.Price == nil && p.Stock == nil
}
