package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"book-catalog-backend/internal/domains/user"
	"book-catalog-backend/internal/shared/middleware"
	"book-catalog-backend/internal/shared/response"
	"book-catalog-backend/internal/shared/validation"
)

// UserHandler xử lý HTTP requests cho auth routes
// Struct này là stateless - chỉ chứa dependencies
type UserHandler struct {
	service user.Service
	debug   bool // expose internal error details
}

func NewUserHandler(service user.Service, debug bool) *UserHandler {
	return &UserHandler{
		service: service,
		debug:   debug,
	}
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// Register xử lý POST /api/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return
	}

	userDTO, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err, "REGISTER_ERROR", "Server error during registration")
		return
	}

	response.Success(c, http.StatusCreated, "User created successfully", gin.H{"user": userDTO})
}

// Login xử lý POST /api/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err, "LOGIN_ERROR", "Server error during login")
		return
	}

	response.Success(c, http.StatusOK, "Login successful", res)
}

// ========================================
// HELPERS
// ========================================

func (h *UserHandler) handleError(c *gin.Context, err error, code, message string) {
	switch {
	// 400 Bad Request - client error
	case errors.Is(err, user.ErrDuplicateIdentity),
		errors.Is(err, user.ErrIdentityNotFound):
		response.Error(c, http.StatusBadRequest, err.Error(), nil)

	// 401 Unauthorized - authentication failed
	case errors.Is(err, user.ErrInvalidCredential):
		response.Error(c, http.StatusUnauthorized, err.Error(), nil)

	// 500 Internal Server Error - unexpected errors
	default:
		log.Error().Err(err).Str("request_id", c.GetString(middleware.RequestIDKey)).Msg(message)
		response.InternalError(c, code, message, err, h.debug)
	}
}

func (h *UserHandler) bindAndValidate(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", validation.ToDetails(err))
		return err
	}

	return nil
}
