package api

import (
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client

	"tube_places/internal/credential" // Credential model
	"tube_places/internal/middleware" // Custom middleware
	"tube_places/internal/store"      // Storage contracts
)

// Deps are the collaborators of the HTTP layer
type Deps struct {
	Store       store.Store         // Storage backend
	Credentials *credential.Service // User creation and authentication
	Redis       *redis.Client       // Optional read cache
	JWTSecret   string              // Token signing key
}

// RegisterRoutes mounts every endpoint on r
func RegisterRoutes(r gin.IRouter, d Deps) {
	// Auth routes
	r.POST("/register", RegisterHandler(d.Credentials))        // Registration endpoint
	r.POST("/login", LoginHandler(d.Credentials, d.JWTSecret)) // Login endpoint

	// Public reads
	r.GET("/users/:id", GetUserHandler(d.Store))            // Public profile
	r.GET("/stations", ListStationsHandler(d.Store))        // Station list
	r.GET("/places", ListPlacesHandler(d.Store, d.Redis))   // Place list
	r.GET("/places/:id", GetPlaceHandler(d.Store, d.Redis)) // Place detail

	// Place interactions (protected by JWT)
	auth := middleware.JWTAuthMiddleware(d.JWTSecret)
	placeGroup := r.Group("/places/:id", auth)
	placeGroup.POST("/reviews", CreateReviewHandler(d.Store, d.Redis))                      // Create review
	placeGroup.PUT("/reviews/:reviewId", UpdateReviewHandler(d.Store, d.Store, d.Redis))    // Edit review
	placeGroup.DELETE("/reviews/:reviewId", DeleteReviewHandler(d.Store, d.Store, d.Redis)) // Delete review
	placeGroup.POST("/likes", AddLikeHandler(d.Store, d.Redis))                             // Like
	placeGroup.DELETE("/likes", RemoveLikeHandler(d.Store, d.Redis))                        // Unlike

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin", auth, middleware.AdminOnlyMiddleware(d.Store))
	adminGroup.GET("/users", ListUsersHandler(d.Store)) // List users endpoint
}
