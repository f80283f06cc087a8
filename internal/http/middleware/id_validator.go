package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/marketplace-backend/internal/pkg/ident"
)

// ListingIDValidator проверяет, что параметр — валидный идентификатор
// объявления. Пространства идентификаторов объявлений и заказов разные,
// поэтому подставить один вместо другого нельзя.
// Использование: router.GET("/listings/:id", ListingIDValidator("id"), handler.GetListing)
func ListingIDValidator(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Param(paramName)
		if !ident.IsListingID(idStr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "параметр " + paramName + " должен быть идентификатором объявления",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// OrderIDValidator проверяет, что параметр — валидный идентификатор заказа.
func OrderIDValidator(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Param(paramName)
		if !ident.IsOrderID(idStr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "параметр " + paramName + " должен быть идентификатором заказа",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
