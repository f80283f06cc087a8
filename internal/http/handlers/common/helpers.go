package common

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/marketplace-backend/internal/dto"
	"github.com/ignatzorin/marketplace-backend/internal/http/middleware"
)

var (
	// ErrAccountNotFound is returned when the account is not found in context
	ErrAccountNotFound = errors.New("аккаунт не найден в контексте")
)

// CurrentAccountID extracts the caller's account ID from Gin context
func CurrentAccountID(c *gin.Context) (uuid.UUID, error) {
	raw, exists := c.Get(middleware.ContextAccountIDKey)
	if !exists {
		return uuid.Nil, ErrAccountNotFound
	}

	accountID, ok := raw.(uuid.UUID)
	if !ok {
		return uuid.Nil, ErrAccountNotFound
	}

	return accountID, nil
}

// BindAndValidate binds JSON request and returns properly formatted error
func BindAndValidate(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return fmt.Errorf("ошибка валидации запроса: %w", err)
	}
	return nil
}

// RespondError sends a standardized error response
func RespondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Error: message})
}

// RespondJSON sends a JSON response with the given status code and data
func RespondJSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Pagination extracts limit/offset query parameters with defaults
func Pagination(c *gin.Context) (limit, offset int) {
	limit = 20
	offset = 0
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			offset = parsed
		}
	}
	return limit, offset
}
