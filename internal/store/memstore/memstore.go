// Package memstore is an in-process store.Store used by tests and by the
// "memory" driver for local development.
package memstore

import (
	"context" // Store interface signature
	"sort"    // Stable listings
	"sync"    // Collection lock
	"time"    // Timestamps

	"tube_places/internal/domain" // Domain models
	"tube_places/internal/store"  // Storage contracts
)

// Store keeps every collection in maps guarded by a single mutex.
type Store struct {
	mu       sync.RWMutex              // Guards every map below
	users    map[string]domain.User    // Users by ID
	stations map[string]domain.Station // Stations by ID
	places   map[string]domain.Place   // Places by ID
	order    map[string]int            // insertion sequence, for stable listings
	seq      int
	closed   bool
}

var _ store.Store = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{
		users:    map[string]domain.User{},
		stations: map[string]domain.Station{},
		places:   map[string]domain.Place{},
		order:    map[string]int{},
	}
}

func (s *Store) next(id string) {
	s.seq++
	s.order[id] = s.seq
}

func (s *Store) CreateUser(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return &domain.UniquenessError{Field: "email", Value: u.Email} // Unique email
		}
	}
	if u.ID == "" {
		u.ID = store.NewID() // Assign identity before insert
	}
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	s.users[u.ID] = *u // Store a copy
	s.next(u.ID)
	return nil
}

func (s *Store) UpdateUser(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, existing := range s.users {
		if id != u.ID && existing.Email == u.Email {
			return &domain.UniquenessError{Field: "email", Value: u.Email}
		}
	}
	u.UpdatedAt = time.Now()
	s.users[u.ID] = *u
	return nil
}

func (s *Store) GetUser(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Store) ListUsers(_ context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return s.order[out[i].ID] < s.order[out[j].ID] })
	return out, nil
}

func (s *Store) CreateStations(_ context.Context, stations []domain.Station) ([]domain.Station, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Station, len(stations))
	for i, st := range stations {
		if st.ID == "" {
			st.ID = store.NewID()
		}
		st.Lines = append([]string(nil), st.Lines...)
		s.stations[st.ID] = st
		s.next(st.ID)
		out[i] = st
	}
	return out, nil
}

func (s *Store) GetStation(_ context.Context, id string) (*domain.Station, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.stations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &st, nil
}

func (s *Store) ListStations(_ context.Context) ([]domain.Station, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Station, 0, len(s.stations))
	for _, st := range s.stations {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return s.order[out[i].ID] < s.order[out[j].ID] })
	return out, nil
}

func (s *Store) CreatePlaces(_ context.Context, places []domain.Place) ([]domain.Place, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	out := make([]domain.Place, len(places))
	for i, p := range places {
		if p.ID == "" {
			p.ID = store.NewID()
		}
		p.CreatedAt, p.UpdatedAt = now, now
		p = clonePlace(p)
		s.places[p.ID] = p
		s.next(p.ID)
		out[i] = clonePlace(p)
	}
	return out, nil
}

func (s *Store) GetPlace(_ context.Context, id string) (*domain.Place, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.places[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p = clonePlace(p)
	return &p, nil
}

func (s *Store) ListPlaces(_ context.Context, filter store.PlaceFilter) ([]domain.Place, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Place, 0, len(s.places))
	for _, p := range s.places {
		if filter.Matches(&p) {
			out = append(out, clonePlace(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return s.order[out[i].ID] < s.order[out[j].ID] })
	return out, nil
}

// mutate applies fn to a copy of the place and stores it when fn succeeds.
func (s *Store) mutate(id string, fn func(p *domain.Place) error) (*domain.Place, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.places[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p = clonePlace(p)
	if err := fn(&p); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now()
	s.places[id] = p
	p = clonePlace(p)
	return &p, nil
}

func (s *Store) AddReview(_ context.Context, placeID string, r domain.Review) (*domain.Place, error) {
	return s.mutate(placeID, func(p *domain.Place) error {
		p.Reviews = append(p.Reviews, r)
		return nil
	})
}

func (s *Store) UpdateReview(_ context.Context, placeID string, r domain.Review) (*domain.Place, error) {
	return s.mutate(placeID, func(p *domain.Place) error {
		i := p.FindReview(r.ID)
		if i < 0 {
			return domain.ErrNotFound
		}
		p.Reviews[i] = r
		return nil
	})
}

func (s *Store) DeleteReview(_ context.Context, placeID, reviewID string) (*domain.Place, error) {
	return s.mutate(placeID, func(p *domain.Place) error {
		i := p.FindReview(reviewID)
		if i < 0 {
			return domain.ErrNotFound
		}
		p.Reviews = append(p.Reviews[:i], p.Reviews[i+1:]...)
		return nil
	})
}

func (s *Store) AddLike(_ context.Context, placeID, userID string) (*domain.Place, error) {
	return s.mutate(placeID, func(p *domain.Place) error {
		if !p.HasLike(userID) {
			p.Likes = append(p.Likes, userID)
		}
		return nil
	})
}

func (s *Store) RemoveLike(_ context.Context, placeID, userID string) (*domain.Place, error) {
	return s.mutate(placeID, func(p *domain.Place) error {
		p.Likes = store.WithoutLike(p.Likes, userID)
		return nil
	})
}

func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.places = map[string]domain.Place{}
	s.users = map[string]domain.User{}
	s.stations = map[string]domain.Station{}
	s.order = map[string]int{}
	return nil
}

func (s *Store) Close(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (s *Store) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

func clonePlace(p domain.Place) domain.Place {
	p.Likes = append([]string{}, p.Likes...)
	p.Reviews = append([]domain.Review{}, p.Reviews...)
	return p
}
