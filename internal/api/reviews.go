package api

import (
	"context"  // Request context
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"time"     // Review timestamps

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library

	"tube_places/internal/domain"     // Domain models
	"tube_places/internal/middleware" // Authenticated user
	"tube_places/internal/store"      // Storage contracts
)

// ReviewRequest is the body of review create and edit
type ReviewRequest struct {
	Comment string `json:"comment" binding:"required"`            // Review text
	Rating  int    `json:"rating" binding:"required,min=1,max=5"` // Star rating 1..5
}

// CreateReviewHandler adds a review by the caller to a place
func CreateReviewHandler(places store.PlaceStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ReviewRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Comment and a rating from 1 to 5 are required"})
			return
		}
		now := time.Now().UTC()
		review := domain.Review{
			ID:        store.NewID(),               // Review identity
			Rating:    req.Rating,                  // Star rating
			Comment:   req.Comment,                 // Review text
			CreatedBy: middleware.CurrentUserID(c), // Author
			CreatedAt: now,
			UpdatedAt: now,
		}
		place, err := places.AddReview(c.Request.Context(), c.Param("id"), review)
		if err != nil {
			respondError(c, err, "Failed to create review")
			return
		}
		invalidatePlace(c.Request.Context(), rdb, place.ID) // Drop stale cache
		logrus.WithFields(logrus.Fields{
			"place_id":  place.ID,
			"review_id": review.ID,
			"user_id":   review.CreatedBy,
		}).Info("Review created")
		c.JSON(http.StatusCreated, place)
	}
}

// UpdateReviewHandler edits a review; only its author or an admin may do so
func UpdateReviewHandler(places store.PlaceStore, users store.UserStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ReviewRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Comment and a rating from 1 to 5 are required"})
			return
		}
		ctx := c.Request.Context()
		review, err := authorizedReview(ctx, places, users, c.Param("id"), c.Param("reviewId"), middleware.CurrentUserID(c))
		if err != nil {
			respondError(c, err, "Failed to update review")
			return
		}
		review.Comment = req.Comment
		review.Rating = req.Rating
		review.UpdatedAt = time.Now().UTC()
		place, err := places.UpdateReview(ctx, c.Param("id"), review)
		if err != nil {
			respondError(c, err, "Failed to update review")
			return
		}
		invalidatePlace(ctx, rdb, place.ID) // Drop stale cache
		c.JSON(http.StatusOK, place)
	}
}

// DeleteReviewHandler removes a review; only its author or an admin may do so
func DeleteReviewHandler(places store.PlaceStore, users store.UserStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if _, err := authorizedReview(ctx, places, users, c.Param("id"), c.Param("reviewId"), middleware.CurrentUserID(c)); err != nil {
			respondError(c, err, "Failed to delete review")
			return
		}
		place, err := places.DeleteReview(ctx, c.Param("id"), c.Param("reviewId"))
		if err != nil {
			respondError(c, err, "Failed to delete review")
			return
		}
		invalidatePlace(ctx, rdb, place.ID) // Drop stale cache
		logrus.WithFields(logrus.Fields{
			"place_id":  place.ID,
			"review_id": c.Param("reviewId"),
			"user_id":   middleware.CurrentUserID(c),
		}).Info("Review deleted")
		c.JSON(http.StatusOK, place)
	}
}

// authorizedReview loads a review and checks that userID wrote it or is an admin
func authorizedReview(ctx context.Context, places store.PlaceStore, users store.UserStore, placeID, reviewID, userID string) (domain.Review, error) {
	place, err := places.GetPlace(ctx, placeID)
	if err != nil {
		return domain.Review{}, err
	}
	i := place.FindReview(reviewID)
	if i < 0 {
		return domain.Review{}, domain.ErrNotFound
	}
	review := place.Reviews[i]
	if review.CreatedBy == userID {
		return review, nil // Author
	}
	user, err := users.GetUser(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Review{}, domain.ErrForbidden // Unknown caller
	}
	if err != nil {
		return domain.Review{}, err
	}
	if !user.IsAdmin {
		return domain.Review{}, domain.ErrForbidden
	}
	return review, nil
}
