// Package seed resets the database to a known baseline: two accounts, the
// static station list and the places that reference those stations.
package seed

import (
	"context" // Phase deadlines
	"errors"  // Error inspection
	"fmt"     // Error wrapping
	"time"    // Timeouts and phase timing

	"github.com/sirupsen/logrus" // Logging library

	"tube_places/internal/credential" // Account creation
	"tube_places/internal/dataset"    // Static stations and places
	"tube_places/internal/domain"     // Domain models and errors
	"tube_places/internal/store"      // Storage contracts
)

// BaselinePassword is the password of both seeded accounts.
const BaselinePassword = "password!1"

// releaseTimeout bounds the disconnect, which runs even after a failure.
const releaseTimeout = 10 * time.Second

// ConnectFunc opens the store the seed runs against.
type ConnectFunc func(ctx context.Context) (store.Store, error)

// BaselineUsers returns the administrator and the standard user.
func BaselineUsers() (admin, user credential.Candidate) {
	admin = credential.Candidate{
		Name:     "admin",
		Username: "admin",
		Email:    "admin@admin.com",
		Password: BaselinePassword,
		IsAdmin:  true,
	}
	user = credential.Candidate{
		Name:     "user",
		Username: "user",
		Email:    "user@user.com",
		Password: BaselinePassword,
	}
	return admin, user
}

// Result is what a completed run created.
type Result struct {
	Admin    *domain.User
	User     *domain.User
	Stations []domain.Station
	Places   []domain.Place
}

// Orchestrator runs the seed phases strictly in order: connect, clear,
// users, stations, places, disconnect. Any failure aborts the run; the
// store is released whenever it was acquired.
type Orchestrator struct {
	Connect      ConnectFunc
	Driver       string            // Reported in connection errors
	Policy       credential.Policy // Zero value means credential.DefaultPolicy()
	Hasher       credential.Hasher
	PhaseTimeout time.Duration // 0 disables per-phase deadlines
	Log          logrus.FieldLogger

	// Stations and Sources replace the embedded dataset when non-nil.
	Stations []domain.Station
	Sources  []dataset.PlaceSource
}

// Run executes the seed once. It is destructive and not resumable.
func (o *Orchestrator) Run(ctx context.Context) (res *Result, err error) {
	log := o.logger()

	st, err := o.connect(ctx)
	if err != nil {
		return nil, err
	}
	log.Info("Successfully connected to the store")

	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout) // Outlives a cancelled run
		defer cancel()
		if cerr := st.Close(releaseCtx); cerr != nil {
			log.WithError(cerr).Error("Disconnect failed")
			if err == nil {
				err = fmt.Errorf("disconnect: %w", cerr)
			}
			return
		}
		log.Info("Disconnected")
	}()

	res = &Result{}

	err = o.phase(ctx, "clear", func(ctx context.Context) error {
		log.Info("Clearing out the database")
		return st.Clear(ctx)
	})
	if err != nil {
		return nil, err
	}

	err = o.phase(ctx, "users", func(ctx context.Context) error {
		var perr error
		res.Admin, res.User, perr = o.seedUsers(ctx, st)
		return perr
	})
	if err != nil {
		return nil, err
	}

	err = o.phase(ctx, "stations", func(ctx context.Context) error {
		var perr error
		res.Stations, perr = o.seedStations(ctx, st)
		return perr
	})
	if err != nil {
		return nil, err
	}

	err = o.phase(ctx, "places", func(ctx context.Context) error {
		var perr error
		res.Places, perr = o.seedPlaces(ctx, st, res.Stations) // Stations from the previous phase
		return perr
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (o *Orchestrator) logger() logrus.FieldLogger {
	if o.Log != nil {
		return o.Log
	}
	return logrus.StandardLogger()
}

func (o *Orchestrator) connect(ctx context.Context) (store.Store, error) {
	if o.PhaseTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.PhaseTimeout)
		defer cancel()
	}
	if o.Connect == nil {
		return nil, &domain.ConnectionError{Driver: o.Driver, Err: errors.New("no connect function")}
	}
	st, err := o.Connect(ctx)
	if err != nil {
		var ce *domain.ConnectionError
		if errors.As(err, &ce) {
			return nil, err
		}
		return nil, &domain.ConnectionError{Driver: o.Driver, Err: err} // Wrap raw driver errors
	}
	return st, nil
}

// phase runs fn under the per-phase deadline and tags its error.
func (o *Orchestrator) phase(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	if o.PhaseTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.PhaseTimeout)
		defer cancel()
	}
	start := time.Now()
	if err := fn(ctx); err != nil {
		return fmt.Errorf("seed %s: %w", name, err) // Tag with the phase name
	}
	o.logger().WithFields(logrus.Fields{
		"phase":   name,
		"elapsed": time.Since(start).String(),
	}).Info("Phase completed")
	return nil
}

func (o *Orchestrator) seedUsers(ctx context.Context, st store.UserStore) (*domain.User, *domain.User, error) {
	policy := o.Policy
	if policy.Email == nil || policy.Password == nil {
		policy = credential.DefaultPolicy()
	}
	svc := credential.NewService(st, policy, o.Hasher) // Same path as registration

	adminIn, userIn := BaselineUsers()
	admin, err := svc.CreateUser(ctx, adminIn)
	if err != nil {
		return nil, nil, fmt.Errorf("create admin: %w", err)
	}
	o.logger().WithField("user_id", admin.ID).Info("Created admin user")

	user, err := svc.CreateUser(ctx, userIn)
	if err != nil {
		return nil, nil, fmt.Errorf("create user: %w", err)
	}
	o.logger().WithField("user_id", user.ID).Info("Created normal user")
	return admin, user, nil
}

func (o *Orchestrator) seedStations(ctx context.Context, st store.StationStore) ([]domain.Station, error) {
	stations := o.Stations
	if stations == nil {
		var err error
		if stations, err = dataset.Stations(); err != nil {
			return nil, err
		}
	}
	created, err := st.CreateStations(ctx, stations)
	if err != nil {
		return nil, err
	}
	o.logger().WithField("count", len(created)).Info("Stations seeded")
	return created, nil
}

func (o *Orchestrator) seedPlaces(ctx context.Context, st store.PlaceStore, stations []domain.Station) ([]domain.Place, error) {
	var (
		drafts []domain.PlaceDraft
		err    error
	)
	if o.Sources != nil {
		drafts, err = dataset.Build(o.Sources, stations)
	} else {
		drafts, err = dataset.BuildPlaces(stations)
	}
	if err != nil {
		return nil, err
	}

	places := make([]domain.Place, len(drafts))
	for i, d := range drafts {
		places[i] = d.ToPlace()
	}
	created, err := st.CreatePlaces(ctx, places) // Insert all places in one batch
	if err != nil {
		return nil, err
	}
	o.logger().WithField("count", len(created)).Info("Places seeded")
	return created, nil
}
