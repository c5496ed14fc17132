package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"time"     // Time durations

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library

	"tube_places/internal/domain" // Domain models
	"tube_places/internal/store"  // Storage contracts
	"tube_places/internal/utils"  // Utility functions
)

// placeCacheTTL bounds how stale a cached place read can be
const placeCacheTTL = 60 * time.Second

// ListStationsHandler returns every station
func ListStationsHandler(stations store.StationStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := stations.ListStations(c.Request.Context()) // Fetch all stations
		if err != nil {
			respondError(c, err, "Failed to fetch stations")
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// ListPlacesHandler returns places, optionally filtered by station or category
func ListPlacesHandler(places store.PlaceStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		filter := store.PlaceFilter{
			StationID: c.Query("station"),  // Filter by station ID
			Category:  c.Query("category"), // Filter by category
		}
		// Create a cache key based on the filter
		cacheKey := utils.PlacesListPrefix + "station=" + filter.StationID + ":category=" + filter.Category
		var cached []domain.Place
		// If cached data found, return it
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.Header("X-Cache", "HIT")
			c.JSON(http.StatusOK, cached)
			return
		}
		list, err := places.ListPlaces(ctx, filter) // Query the store
		if err != nil {
			respondError(c, err, "Failed to fetch places")
			return
		}
		// Cache the response for future requests
		_ = utils.SetCache(ctx, rdb, cacheKey, list, placeCacheTTL)
		c.JSON(http.StatusOK, list)
	}
}

// GetPlaceHandler returns one place with its embedded reviews and likes
func GetPlaceHandler(places store.PlaceStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id := c.Param("id")                   // Place ID from path
		cacheKey := utils.PlaceKeyPrefix + id // Cache key for the place
		var cached domain.Place
		// If cached data found, return it
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.Header("X-Cache", "HIT")
			c.JSON(http.StatusOK, cached)
			return
		}
		place, err := places.GetPlace(ctx, id) // Query the store
		if err != nil {
			respondError(c, err, "Failed to fetch place")
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, place, placeCacheTTL) // Cache the place
		c.JSON(http.StatusOK, place)
	}
}

// invalidatePlace drops the cached copy of a place and every cached listing
func invalidatePlace(ctx context.Context, rdb *redis.Client, placeID string) {
	if err := utils.DeleteCache(ctx, rdb, utils.PlaceKeyPrefix+placeID); err != nil {
		logrus.WithFields(logrus.Fields{"place_id": placeID, "error": err.Error()}).Warn("Failed to invalidate place cache")
	}
	if err := utils.DeletePrefix(ctx, rdb, utils.PlacesListPrefix); err != nil {
		logrus.WithFields(logrus.Fields{"error": err.Error()}).Warn("Failed to invalidate place listings")
	}
}
