package user

import (
	"context"
)

// Repository định nghĩa contract cho data access layer
type Repository interface {
	// Create inserts a new user.
	// Returns: ErrDuplicateIdentity nếu email đã tồn tại
	Create(ctx context.Context, user *User) error

	// FindByEmail tìm user theo email (dùng cho login)
	// Returns: ErrIdentityNotFound nếu không tìm thấy
	FindByEmail(ctx context.Context, email string) (*User, error)
}
