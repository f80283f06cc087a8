package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/marketplace-backend/internal/service"
)

// Context ключи для gin.Context.
const (
	ContextAccountIDKey = "accountID"
)

// AuthMiddleware проверяет JWT access токен и кладёт идентификатор
// вызывающего участника в контекст. Это и есть «адрес вызывающего»
// для всех операций движка.
func AuthMiddleware(tokens *service.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
			return
		}

		raw := strings.TrimPrefix(auth, "Bearer ")
		accountID, err := tokens.ParseAccess(raw)
		if err != nil || accountID == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "токен невалиден"})
			return
		}

		c.Set(ContextAccountIDKey, accountID)
		c.Next()
	}
}
