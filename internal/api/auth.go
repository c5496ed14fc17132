package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework

	"tube_places/internal/credential" // Credential model
	"tube_places/internal/utils"      // Utility functions
)

// Request struct for registration
type RegisterRequest struct {
	Name     string `json:"name"`     // Display name
	Username string `json:"username"` // Username
	Email    string `json:"email"`    // Email, unique
	Password string `json:"password"` // Plaintext password, hashed before storage
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Response struct for authentication
type AuthResponse struct {
	Token string                `json:"token"` // JWT token
	User  credential.PublicUser `json:"user"`  // Redacted user
}

// RegisterHandler creates a standard (non-admin) account
func RegisterHandler(svc *credential.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Field rules and uniqueness are enforced by the credential service
		user, err := svc.CreateUser(c.Request.Context(), credential.Candidate{
			Name:     req.Name,
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			respondError(c, err, "Failed to register user")
			return
		}
		c.JSON(http.StatusCreated, credential.ToPublicView(user)) // Return the redacted user
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(svc *credential.Service, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Look the user up and compare the provided password with the stored hash
		user, err := svc.Authenticate(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err, "Failed to log in")
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, user.IsAdmin, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, AuthResponse{Token: token, User: credential.ToPublicView(user)})
	}
}
