package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client

	"tube_places/internal/middleware" // Authenticated user
	"tube_places/internal/store"      // Storage contracts
)

// AddLikeHandler adds the caller to the place's likes; liking twice is a no-op
func AddLikeHandler(places store.PlaceStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		place, err := places.AddLike(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c))
		if err != nil {
			respondError(c, err, "Failed to like place")
			return
		}
		invalidatePlace(c.Request.Context(), rdb, place.ID) // Drop stale cache
		c.JSON(http.StatusOK, place)
	}
}

// RemoveLikeHandler removes the caller from the place's likes
func RemoveLikeHandler(places store.PlaceStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		place, err := places.RemoveLike(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c))
		if err != nil {
			respondError(c, err, "Failed to unlike place")
			return
		}
		invalidatePlace(c.Request.Context(), rdb, place.ID) // Drop stale cache
		c.JSON(http.StatusOK, place)
	}
}
