package model

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// PriceScale and MaxPrice mirror the books.price NUMERIC(12, 2) column.
const PriceScale = 2

var MaxPrice = decimal.RequireFromString("9999999999.99")

var imageURLPattern = regexp.MustCompile(`^https?://[^/]+/.+$`)

// required fields, in the order they are reported
var requiredFields = []string{"title", "author", "price"}

var errPriceRequired = validation.NewError("validation_price_required", "cannot be blank")

func priceRequired(value interface{}) error {
	if p, ok := value.(PriceInput); ok && p.IsMissing() {
		return errPriceRequired
	}
	return nil
}

// ValidateCreateRequest checks a create payload; the first failing rule wins.
// On success it returns the coerced price rounded to cents.
func ValidateCreateRequest(req CreateBookRequest) (decimal.Decimal, error) {
	// 1. Required fields, reported together
	err := validation.ValidateStruct(&req,
		validation.Field(&req.Title, validation.Required),
		validation.Field(&req.Author, validation.Required),
		validation.Field(&req.Price, validation.By(priceRequired)),
	)
	if err != nil {
		var errs validation.Errors
		if !errors.As(err, &errs) {
			return decimal.Zero, err
		}
		missing := make([]string, 0, len(requiredFields))
		for _, name := range requiredFields {
			if _, ok := errs[name]; ok {
				missing = append(missing, name)
			}
		}
		return decimal.Zero, &ValidationError{Err: ErrMissingFields, Fields: missing}
	}

	// 2. Price type
	price, ok := req.Price.Decimal()
	if !ok {
		return decimal.Zero, &ValidationError{Err: ErrInvalidPriceType, Received: req.Price.Received()}
	}

	// 3. Price range, checked on the value the column will hold
	price = price.Round(PriceScale)
	if !price.IsPositive() {
		return decimal.Zero, &ValidationError{Err: ErrInvalidPriceRange, Received: req.Price.Received()}
	}
	if price.GreaterThan(MaxPrice) {
		return decimal.Zero, &ValidationError{Err: ErrPriceTooLarge, Received: req.Price.Received()}
	}

	// 4. Image shape, only when given
	if err := validation.Validate(req.Image, validation.Match(imageURLPattern)); err != nil {
		return decimal.Zero, &ValidationError{Err: ErrInvalidImageURL, Received: req.Image}
	}

	return price, nil
}
