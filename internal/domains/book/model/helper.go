package model

import "github.com/google/uuid"

// BookCacheKey - cache key of a single book
func BookCacheKey(id uuid.UUID) string {
	return "book:" + id.String()
}
