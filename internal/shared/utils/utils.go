package utils

import (
	"github.com/google/uuid"
)

// ParseUUID parses s, reporting false for anything that is not a canonical uuid.
func ParseUUID(s string) (uuid.UUID, bool) {
	if !IsValidUUID(s) {
		return uuid.Nil, false
	}
	uid, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return uid, true
}

// isValidUUID - Kiểm tra format UUID hợp lệ
func IsValidUUID(u string) bool {
	if len(u) != 36 {
		return false
	}
	// Simple validation: check dashes at correct positions
	if u[8] != '-' || u[13] != '-' || u[18] != '-' || u[23] != '-' {
		return false
	}
	return true
}
