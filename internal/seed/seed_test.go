package seed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tube_places/internal/credential"
	"tube_places/internal/dataset"
	"tube_places/internal/domain"
	"tube_places/internal/store"
	"tube_places/internal/store/memstore"
)

func newOrchestrator(st store.Store) *Orchestrator {
	logger, _ := test.NewNullLogger()
	return &Orchestrator{
		Connect: func(context.Context) (store.Store, error) { return st, nil },
		Driver:  "memory",
		Hasher:  credential.Hasher{Cost: bcrypt.MinCost},
		Log:     logger,
	}
}

func TestRunSeedsEmptyStore(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()

	res, err := newOrchestrator(st).Run(ctx)
	require.NoError(t, err)
	assert.True(t, st.Closed())

	users, err := st.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	admins := 0
	for _, u := range users {
		if u.IsAdmin {
			admins++
		}
		assert.NotEqual(t, BaselinePassword, u.Password)
		assert.True(t, credential.VerifyPassword(&u, BaselinePassword))
	}
	assert.Equal(t, 1, admins)
	assert.True(t, res.Admin.IsAdmin)
	assert.False(t, res.User.IsAdmin)

	static, err := dataset.Stations()
	require.NoError(t, err)
	stations, err := st.ListStations(ctx)
	require.NoError(t, err)
	assert.Len(t, stations, len(static))

	sources, err := dataset.Sources()
	require.NoError(t, err)
	places, err := st.ListPlaces(ctx, store.PlaceFilter{})
	require.NoError(t, err)
	assert.Len(t, places, len(sources))
	assert.Len(t, res.Places, len(sources))

	for _, p := range places {
		station, err := st.GetStation(ctx, p.StationID)
		require.NoError(t, err, p.Name)
		assert.Equal(t, station.Name, p.StationName)
		assert.Empty(t, p.Likes)
		assert.Empty(t, p.Reviews)
	}
}

func TestRunClearsPriorState(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()

	require.NoError(t, st.CreateUser(ctx, &domain.User{Email: "old@user.com"}))
	_, err := st.CreateStations(ctx, []domain.Station{{Name: "Old"}})
	require.NoError(t, err)
	_, err = st.CreatePlaces(ctx, []domain.Place{{Name: "Old place"}})
	require.NoError(t, err)

	_, err = newOrchestrator(st).Run(ctx)
	require.NoError(t, err)

	_, err = st.FindUserByEmail(ctx, "old@user.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	places, err := st.ListPlaces(ctx, store.PlaceFilter{})
	require.NoError(t, err)
	for _, p := range places {
		assert.NotEqual(t, "Old place", p.Name)
	}
}

func TestRunWithSyntheticDataset(t *testing.T) {
	st := memstore.New()
	o := newOrchestrator(st)
	o.Stations = []domain.Station{{Name: "Baker Street"}, {Name: "Westminster"}}
	o.Sources = []dataset.PlaceSource{
		{Name: "A", StationIndex: 1},
		{Name: "B", StationIndex: 0},
		{Name: "C", StationIndex: 1},
	}

	res, err := o.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Stations, 2)
	require.Len(t, res.Places, 3)
	assert.Equal(t, res.Stations[1].ID, res.Places[0].StationID)
	assert.Equal(t, res.Stations[0].ID, res.Places[1].StationID)
	assert.Equal(t, res.Stations[1].ID, res.Places[2].StationID)
}

func TestRunConnectionFailure(t *testing.T) {
	o := newOrchestrator(nil)
	o.Connect = func(context.Context) (store.Store, error) { return nil, errors.New("dial tcp: refused") }

	res, err := o.Run(context.Background())
	assert.Nil(t, res)
	var ce *domain.ConnectionError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "memory", ce.Driver)
}

type failingPlaces struct {
	*memstore.Store
}

func (failingPlaces) CreatePlaces(context.Context, []domain.Place) ([]domain.Place, error) {
	return nil, errors.New("write failed")
}

func TestRunReleasesStoreOnFailure(t *testing.T) {
	st := memstore.New()
	o := newOrchestrator(failingPlaces{st})

	_, err := o.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed places")
	assert.True(t, st.Closed())
}

func TestRunAbortsOnShapeError(t *testing.T) {
	st := memstore.New()
	o := newOrchestrator(st)
	o.Stations = []domain.Station{{Name: "Baker Street"}}
	o.Sources = []dataset.PlaceSource{{Name: "Dangling", StationIndex: 3}}

	_, err := o.Run(context.Background())
	var se *domain.ShapeError
	require.True(t, errors.As(err, &se))
	assert.True(t, st.Closed())

	places, err := st.ListPlaces(context.Background(), store.PlaceFilter{})
	require.NoError(t, err)
	assert.Empty(t, places)
}

type slowClear struct {
	*memstore.Store
}

func (slowClear) Clear(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestRunPhaseTimeout(t *testing.T) {
	st := memstore.New()
	o := newOrchestrator(slowClear{st})
	o.PhaseTimeout = 20 * time.Millisecond

	_, err := o.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, st.Closed())

	users, err := st.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}
