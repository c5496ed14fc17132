// Package storetest holds behaviour checks every store.Store backend must pass.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tube_places/internal/domain"
	"tube_places/internal/store"
)

// Run exercises a backend. newStore must return an empty store.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Run("users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("stations", func(t *testing.T) { testStations(t, newStore(t)) })
	t.Run("places", func(t *testing.T) { testPlaces(t, newStore(t)) })
	t.Run("clear", func(t *testing.T) { testClear(t, newStore(t)) })
}

func testUsers(t *testing.T, st store.Store) {
	ctx := context.Background()

	u := &domain.User{Name: "a", Username: "a", Email: "a@user.com", Password: "hash"}
	require.NoError(t, st.CreateUser(ctx, u))
	require.NotEmpty(t, u.ID)

	got, err := st.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@user.com", got.Email)
	assert.Equal(t, "hash", got.Password)

	byEmail, err := st.FindUserByEmail(ctx, "a@user.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	dup := &domain.User{Name: "b", Username: "b", Email: "a@user.com", Password: "hash"}
	err = st.CreateUser(ctx, dup)
	var ue *domain.UniquenessError
	require.True(t, errors.As(err, &ue), "got %v", err)

	got.Name = "renamed"
	require.NoError(t, st.UpdateUser(ctx, got))
	got, err = st.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)

	// Back-to-back saves with nothing changed still find the row
	for i := 0; i < 5; i++ {
		require.NoError(t, st.UpdateUser(ctx, got))
	}

	_, err = st.GetUser(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = st.FindUserByEmail(ctx, "missing@user.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, st.UpdateUser(ctx, &domain.User{ID: "missing", Email: "m@user.com"}), domain.ErrNotFound)

	users, err := st.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func testStations(t *testing.T, st store.Store) {
	ctx := context.Background()

	created, err := st.CreateStations(ctx, []domain.Station{
		{Name: "Baker Street", Zone: 1, Lines: []string{"Jubilee"}},
		{Name: "Camden Town", Zone: 2, Lines: []string{"Northern"}},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, "Baker Street", created[0].Name)
	assert.Equal(t, "Camden Town", created[1].Name)
	assert.NotEqual(t, created[0].ID, created[1].ID)

	got, err := st.GetStation(ctx, created[1].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Northern"}, got.Lines)

	list, err := st.ListStations(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func testPlaces(t *testing.T, st store.Store) {
	ctx := context.Background()

	stations, err := st.CreateStations(ctx, []domain.Station{{Name: "Baker Street"}})
	require.NoError(t, err)
	drafts := []domain.PlaceDraft{
		{Name: "Museum", Category: "Museum", StationID: stations[0].ID},
		{Name: "Park", Category: "Park", StationID: stations[0].ID},
	}
	places, err := st.CreatePlaces(ctx, []domain.Place{drafts[0].ToPlace(), drafts[1].ToPlace()})
	require.NoError(t, err)
	require.Len(t, places, 2)
	id := places[0].ID

	list, err := st.ListPlaces(ctx, store.PlaceFilter{Category: "Park"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Park", list[0].Name)

	list, err = st.ListPlaces(ctx, store.PlaceFilter{StationID: stations[0].ID})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	now := time.Now().UTC().Truncate(time.Millisecond)
	review := domain.Review{ID: store.NewID(), Rating: 4, Comment: "good", CreatedBy: "u1", CreatedAt: now, UpdatedAt: now}
	p, err := st.AddReview(ctx, id, review)
	require.NoError(t, err)
	require.Len(t, p.Reviews, 1)
	assert.Equal(t, "good", p.Reviews[0].Comment)

	review.Comment = "great"
	review.Rating = 5
	p, err = st.UpdateReview(ctx, id, review)
	require.NoError(t, err)
	assert.Equal(t, "great", p.Reviews[0].Comment)
	assert.Equal(t, 5, p.Reviews[0].Rating)

	_, err = st.UpdateReview(ctx, id, domain.Review{ID: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p, err = st.AddLike(ctx, id, "u1")
	require.NoError(t, err)
	p, err = st.AddLike(ctx, id, "u1")
	require.NoError(t, err)
	p, err = st.AddLike(ctx, id, "u2")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"u1", "u2"}, p.Likes)

	p, err = st.RemoveLike(ctx, id, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, p.Likes)

	p, err = st.DeleteReview(ctx, id, review.ID)
	require.NoError(t, err)
	assert.Empty(t, p.Reviews)

	_, err = st.DeleteReview(ctx, id, review.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = st.AddLike(ctx, "missing", "u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = st.GetPlace(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	untouched, err := st.GetPlace(ctx, places[1].ID)
	require.NoError(t, err)
	assert.Empty(t, untouched.Likes)
	assert.Empty(t, untouched.Reviews)
}

func testClear(t *testing.T, st store.Store) {
	ctx := context.Background()

	require.NoError(t, st.CreateUser(ctx, &domain.User{Name: "a", Username: "a", Email: "a@user.com", Password: "hash"}))
	stations, err := st.CreateStations(ctx, []domain.Station{{Name: "Baker Street"}})
	require.NoError(t, err)
	_, err = st.CreatePlaces(ctx, []domain.Place{{Name: "Museum", StationID: stations[0].ID}})
	require.NoError(t, err)

	require.NoError(t, st.Clear(ctx))

	users, err := st.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
	list, err := st.ListStations(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	places, err := st.ListPlaces(ctx, store.PlaceFilter{})
	require.NoError(t, err)
	assert.Empty(t, places)
}
