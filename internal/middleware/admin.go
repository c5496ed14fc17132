package middleware

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework

	"tube_places/internal/store" // Storage contracts
)

// AdminOnlyMiddleware checks the user's admin flag in the store on each request
func AdminOnlyMiddleware(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := CurrentUserID(c) // Get userID from context
		// Check if userID exists in context
		if userID == "" {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		user, err := users.GetUser(c.Request.Context(), userID) // Fetch user from store
		if err != nil {
			// If user not found or any error, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		// Check the stored flag, not the token claim, so revocation is immediate
		if !user.IsAdmin {
			// If not admin, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Set(IsAdminKey, true) // Confirmed admin
		c.Next()                // If admin, proceed to the next handler
	}
}
