// Package store defines the persistence contracts shared by the storage
// backends. Every backend keeps three collections: users, stations and
// places, with reviews and likes embedded in their place.
package store

import (
	"context"

	"github.com/google/uuid"

	"tube_places/internal/domain"
)

// UserStore persists users. Implementations return *domain.UniquenessError
// when an email is already taken and domain.ErrNotFound for missing records.
type UserStore interface {
	CreateUser(ctx context.Context, u *domain.User) error
	UpdateUser(ctx context.Context, u *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// StationStore persists stations.
type StationStore interface {
	// CreateStations inserts the stations in order and returns them with
	// their generated identities.
	CreateStations(ctx context.Context, stations []domain.Station) ([]domain.Station, error)
	GetStation(ctx context.Context, id string) (*domain.Station, error)
	ListStations(ctx context.Context) ([]domain.Station, error)
}

// PlaceFilter narrows ListPlaces. Empty fields match everything.
type PlaceFilter struct {
	StationID string
	Category  string
}

// PlaceStore persists places and the reviews and likes embedded in them.
// Every mutation returns the updated place.
type PlaceStore interface {
	CreatePlaces(ctx context.Context, places []domain.Place) ([]domain.Place, error)
	GetPlace(ctx context.Context, id string) (*domain.Place, error)
	ListPlaces(ctx context.Context, filter PlaceFilter) ([]domain.Place, error)
	AddReview(ctx context.Context, placeID string, r domain.Review) (*domain.Place, error)
	UpdateReview(ctx context.Context, placeID string, r domain.Review) (*domain.Place, error)
	DeleteReview(ctx context.Context, placeID, reviewID string) (*domain.Place, error)
	AddLike(ctx context.Context, placeID, userID string) (*domain.Place, error)
	RemoveLike(ctx context.Context, placeID, userID string) (*domain.Place, error)
}

// Store is a full storage backend.
type Store interface {
	UserStore
	StationStore
	PlaceStore

	// Clear deletes every place, user and station.
	Clear(ctx context.Context) error
	// Close releases the underlying connection.
	Close(ctx context.Context) error
}

// NewID returns a fresh record identity.
func NewID() string {
	return uuid.NewString()
}

// Matches reports whether p passes the filter.
func (f PlaceFilter) Matches(p *domain.Place) bool {
	if f.StationID != "" && p.StationID != f.StationID {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	return true
}

// WithoutLike returns likes minus userID.
func WithoutLike(likes []string, userID string) []string {
	out := make([]string, 0, len(likes))
	for _, id := range likes {
		if id != userID {
			out = append(out, id)
		}
	}
	return out
}
