package user

// ========================================
// AUTH DTOs
// ========================================

// RegisterRequest - POST /api/auth/register
// Only presence of email and password is enforced.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// LoginRequest - POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the signed token and the user summary.
type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}
