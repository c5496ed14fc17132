package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework

	"tube_places/internal/credential" // Redaction
	"tube_places/internal/store"      // Storage contracts
)

// GetUserHandler returns the public view of one user
func GetUserHandler(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := users.GetUser(c.Request.Context(), c.Param("id")) // Fetch user by ID
		if err != nil {
			respondError(c, err, "Failed to fetch user")
			return
		}
		c.JSON(http.StatusOK, credential.ToPublicView(user)) // Never the raw record
	}
}

// ListUsersHandler returns every user, redacted, for admins
func ListUsersHandler(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := users.ListUsers(c.Request.Context()) // Fetch all users
		if err != nil {
			respondError(c, err, "Failed to fetch users")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"users": credential.ToPublicViews(list), // Redacted users
			"total": len(list),                      // Number of users
		})
	}
}
