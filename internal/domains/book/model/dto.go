package model

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// ========================================
// CREATE
// ========================================

// CreateBookRequest - POST /api/books/create
// Required fields are checked by ValidateCreateRequest, not by binding tags,
// so that all missing fields are reported together.
type CreateBookRequest struct {
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	Price       PriceInput `json:"price"`
	Description string     `json:"description"`
	Caption     string     `json:"caption"`
	Image       string     `json:"image"`
	Stock       FlexInt    `json:"stock"`
	Category    string     `json:"category"`
}

// ExampleCreateRequest is echoed back when required fields are missing.
var ExampleCreateRequest = map[string]any{
	"title":       "Book Title",
	"author":      "Author Name",
	"price":       19.99,
	"image":       "https://example.com/book-cover.jpg",
	"description": "Optional description",
	"caption":     "Short catchy phrase about the book",
	"stock":       10,
	"category":    "fiction",
}

// PriceInput keeps the raw JSON of the price so the validator can tell
// "missing" from "not a number" from "not positive".
type PriceInput struct {
	raw json.RawMessage
}

// NewPriceInput builds a PriceInput from a JSON literal, e.g. `19.99` or `"19.99"`.
func NewPriceInput(literal string) PriceInput {
	return PriceInput{raw: json.RawMessage(literal)}
}

func (p *PriceInput) UnmarshalJSON(b []byte) error {
	p.raw = append(p.raw[:0], b...)
	return nil
}

// IsMissing: absent, null, "", false, or the number 0.
func (p PriceInput) IsMissing() bool {
	raw := bytes.TrimSpace(p.raw)
	switch string(raw) {
	case "", "null", `""`, "false":
		return true
	}
	if isJSONNumber(raw) {
		d, err := decimal.NewFromString(string(raw))
		return err == nil && d.IsZero()
	}
	return false
}

// Decimal returns the numeric value of a JSON number or numeric string.
// A blank string counts as zero.
func (p PriceInput) Decimal() (decimal.Decimal, bool) {
	raw := bytes.TrimSpace(p.raw)
	if isJSONNumber(raw) {
		d, err := decimal.NewFromString(string(raw))
		return d, err == nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return decimal.Zero, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(s)
	return d, err == nil
}

// Received returns the price as the client sent it, for error details.
func (p PriceInput) Received() any {
	if len(p.raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(p.raw, &v); err != nil {
		return string(p.raw)
	}
	return v
}

func isJSONNumber(raw []byte) bool {
	if len(raw) == 0 {
		return false
	}
	c := raw[0]
	return c == '-' || (c >= '0' && c <= '9')
}

// FlexInt accepts an integer given as a JSON number or a numeric string.
// null and "" leave it unset.
type FlexInt struct {
	Value int
	Set   bool
}

func IntOf(v int) FlexInt {
	return FlexInt{Value: v, Set: true}
}

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch t := v.(type) {
	case nil:
		*f = FlexInt{}
		return nil
	case string:
		if strings.TrimSpace(t) == "" {
			*f = FlexInt{}
			return nil
		}
		v = strings.TrimSpace(t)
	case float64:
	default:
		return flexIntError(b)
	}

	n, err := cast.ToFloat64E(v)
	if err != nil || n != math.Trunc(n) || n > math.MaxInt32 || n < math.MinInt32 {
		return flexIntError(b)
	}

	*f = FlexInt{Value: int(n), Set: true}
	return nil
}

func flexIntError(b []byte) error {
	return &json.UnmarshalTypeError{Value: string(b), Type: reflect.TypeOf(0)}
}

// NewBook applies the create defaults. price is the value ValidateCreateRequest returned.
func NewBook(req CreateBookRequest, price decimal.Decimal) *Book {
	b := &Book{
		Title:       req.Title,
		Author:      req.Author,
		Price:       price,
		Description: req.Description,
		Caption:     req.Caption,
		Image:       req.Image,
		Stock:       req.Stock.Value,
		Category:    req.Category,
	}
	if b.Image == "" {
		b.Image = DefaultImage
	}
	if b.Category == "" {
		b.Category = DefaultCategory
	}
	return b
}

// BookLinks - related routes of a created book
type BookLinks struct {
	View   string `json:"view"`
	Update string `json:"update"`
	Delete string `json:"delete"`
}

// BookCreatedResponse - body of a 201 on create
type BookCreatedResponse struct {
	ID       uuid.UUID       `json:"id"`
	Title    string          `json:"title"`
	Author   string          `json:"author"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	Image    string          `json:"image"`
	Category string          `json:"category"`
	Caption  string          `json:"caption"`
	Links    BookLinks       `json:"links"`
}

func ToCreatedResponse(b *Book) *BookCreatedResponse {
	self := "/books/" + b.ID.String()
	return &BookCreatedResponse{
		ID:       b.ID,
		Title:    b.Title,
		Author:   b.Author,
		Price:    b.Price,
		Stock:    b.Stock,
		Image:    b.Image,
		Category: b.Category,
		Caption:  b.Caption,
		Links:    BookLinks{View: self, Update: self, Delete: self},
	}
}

// ========================================
// UPDATE
// ========================================

// UpdateBookRequest - PUT /api/books/:id
// Every field is optional; null means "not supplied".
type UpdateBookRequest struct {
	Title       *string          `json:"title"`
	Author      *string          `json:"author"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
	Caption     *string          `json:"caption"`
	Image       *string          `json:"image"`
	Stock       FlexInt          `json:"stock"`
	Category    *string          `json:"category"`

	// Server managed, rejected when supplied
	CreatedAt json.RawMessage `json:"createdAt"`
	UpdatedAt json.RawMessage `json:"updatedAt"`
}

// TouchesTimestamps reports whether the client tried to write createdAt or updatedAt.
func (r UpdateBookRequest) TouchesTimestamps() bool {
	return supplied(r.CreatedAt) || supplied(r.UpdatedAt)
}

func supplied(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && string(raw) != "null"
}

// ToPatch keeps only the allow-listed fields the client supplied.
func (r UpdateBookRequest) ToPatch() BookPatch {
	p := BookPatch{
		Title:       r.Title,
		Author:      r.Author,
		Price:       r.Price,
		Description: r.Description,
		Caption:     r.Caption,
		Image:       r.Image,
		Category:    r.Category,
	}
	if r.Stock.Set {
		stock := r.Stock.Value
		p.Stock = &stock
	}
	return p
}
