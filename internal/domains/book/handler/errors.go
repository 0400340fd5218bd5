package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"book-catalog-backend/internal/domains/book/model"
	"book-catalog-backend/internal/shared/response"
)

var bookErrorMap = map[error]struct {
	Status  int
	Message string
}{
	model.ErrBookNotFound:           {Status: http.StatusNotFound, Message: "Book not found"},
	model.ErrProtectedFieldMutation: {Status: http.StatusBadRequest, Message: "Cannot update timestamp fields"},
	model.ErrMissingQuery:           {Status: http.StatusBadRequest, Message: "Search query is required"},
	model.ErrMissingFields:          {Status: http.StatusBadRequest, Message: "Missing required fields"},
	model.ErrInvalidPriceType:       {Status: http.StatusBadRequest, Message: "Price must be a number"},
	model.ErrInvalidPriceRange:      {Status: http.StatusBadRequest, Message: "Price must be greater than 0"},
	model.ErrPriceTooLarge:          {Status: http.StatusBadRequest, Message: "Price must not exceed 9999999999.99"},
	model.ErrInvalidImageURL:        {Status: http.StatusBadRequest, Message: "Image must be a valid URL"},
}

// handleError writes the client error for known sentinels and a 500 otherwise.
func (h *Handler) handleError(c *gin.Context, err error, code string) {
	for target, mapped := range bookErrorMap {
		if errors.Is(err, target) {
			response.Error(c, mapped.Status, mapped.Message, validationDetails(err))
			return
		}
	}

	response.InternalError(c, code, "Internal server error", err, h.debug)
}

func validationDetails(err error) interface{} {
	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		return nil
	}
	if errors.Is(verr, model.ErrMissingFields) {
		return gin.H{
			"missingFields": verr.Fields,
			"example":       model.ExampleCreateRequest,
		}
	}
	return gin.H{"received": verr.Received}
}
