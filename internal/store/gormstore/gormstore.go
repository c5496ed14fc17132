// Package gormstore stores users, stations and places in MySQL through gorm.
// Reviews and likes are embedded in the place row as JSON columns, so a place
// keeps the document shape it has in the Mongo backend.
package gormstore

import (
	"context" // Request scoped cancellation
	"errors"  // Error inspection

	"github.com/go-sql-driver/mysql" // MySQL error numbers
	"gorm.io/gorm"                   // GORM ORM library
	"gorm.io/gorm/clause"            // Row locking

	"tube_places/internal/domain" // Domain models
	"tube_places/internal/store"  // Storage contracts
)

const mysqlDuplicateEntry = 1062 // ER_DUP_ENTRY

// Store is a store.Store backed by a *gorm.DB
type Store struct {
	db *gorm.DB
}

var _ store.Store = (*Store)(nil)

// New wraps an open gorm connection
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the users, stations and places tables
func (s *Store) Migrate() error {
	// AutoMigrate will create tables, missing columns and the unique email index
	return s.db.AutoMigrate(&domain.User{}, &domain.Station{}, &domain.Place{})
}

// translate maps driver errors onto domain errors
func translate(err error, u *domain.User) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	var me *mysql.MySQLError
	if errors.Is(err, gorm.ErrDuplicatedKey) || (errors.As(err, &me) && me.Number == mysqlDuplicateEntry) {
		if u != nil {
			return &domain.UniquenessError{Field: "email", Value: u.Email}
		}
		return &domain.UniquenessError{Field: "id"}
	}
	return err
}

func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = store.NewID() // Assign identity before insert
	}
	return translate(s.db.WithContext(ctx).Create(u).Error, u)
}

func (s *Store) UpdateUser(ctx context.Context, u *domain.User) error {
	res := s.db.WithContext(ctx).Model(&domain.User{ID: u.ID}).Select("*").Omit("created_at").Updates(u)
	if err := translate(res.Error, u); err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		// MySQL counts changed rows only, so an unchanged re-save also lands here
		var n int64
		if err := s.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", u.ID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrNotFound // Nothing matched the ID
		}
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &u, nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := s.db.WithContext(ctx).Order("created_at asc").Find(&users).Error
	return users, err
}

func (s *Store) CreateStations(ctx context.Context, stations []domain.Station) ([]domain.Station, error) {
	if len(stations) == 0 {
		return []domain.Station{}, nil
	}
	out := make([]domain.Station, len(stations))
	copy(out, stations)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = store.NewID()
		}
	}
	// Batch insert keeps the input order
	if err := s.db.WithContext(ctx).Create(&out).Error; err != nil {
		return nil, translate(err, nil)
	}
	return out, nil
}

func (s *Store) GetStation(ctx context.Context, id string) (*domain.Station, error) {
	var st domain.Station
	if err := s.db.WithContext(ctx).First(&st, "id = ?", id).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &st, nil
}

func (s *Store) ListStations(ctx context.Context) ([]domain.Station, error) {
	var stations []domain.Station
	err := s.db.WithContext(ctx).Order("name asc").Find(&stations).Error
	return stations, err
}

func (s *Store) CreatePlaces(ctx context.Context, places []domain.Place) ([]domain.Place, error) {
	if len(places) == 0 {
		return []domain.Place{}, nil
	}
	out := make([]domain.Place, len(places))
	copy(out, places)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = store.NewID()
		}
		if out[i].Likes == nil {
			out[i].Likes = []string{} // Store [] rather than null
		}
		if out[i].Reviews == nil {
			out[i].Reviews = []domain.Review{}
		}
	}
	if err := s.db.WithContext(ctx).Create(&out).Error; err != nil {
		return nil, translate(err, nil)
	}
	return out, nil
}

func (s *Store) GetPlace(ctx context.Context, id string) (*domain.Place, error) {
	var p domain.Place
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err, nil)
	}
	return &p, nil
}

func (s *Store) ListPlaces(ctx context.Context, filter store.PlaceFilter) ([]domain.Place, error) {
	query := s.db.WithContext(ctx).Model(&domain.Place{}) // Start building the query
	if filter.StationID != "" {
		query = query.Where("station_id = ?", filter.StationID) // Filter by station
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category) // Filter by category
	}
	var places []domain.Place
	err := query.Order("name asc").Find(&places).Error
	return places, err
}

// mutate locks the place row, applies fn and saves the result atomically
func (s *Store) mutate(ctx context.Context, id string, fn func(p *domain.Place) error) (*domain.Place, error) {
	var p domain.Place
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, "id = ?", id).Error; err != nil {
			return err // Return error to rollback
		}
		if err := fn(&p); err != nil {
			return err
		}
		return tx.Select("likes", "reviews", "updated_at").Save(&p).Error
	})
	if err != nil {
		return nil, translate(err, nil)
	}
	return &p, nil
}

func (s *Store) AddReview(ctx context.Context, placeID string, r domain.Review) (*domain.Place, error) {
	return s.mutate(ctx, placeID, func(p *domain.Place) error {
		p.Reviews = append(p.Reviews, r)
		return nil
	})
}

func (s *Store) UpdateReview(ctx context.Context, placeID string, r domain.Review) (*domain.Place, error) {
	return s.mutate(ctx, placeID, func(p *domain.Place) error {
		i := p.FindReview(r.ID)
		if i < 0 {
			return domain.ErrNotFound
		}
		p.Reviews[i] = r
		return nil
	})
}

func (s *Store) DeleteReview(ctx context.Context, placeID, reviewID string) (*domain.Place, error) {
	return s.mutate(ctx, placeID, func(p *domain.Place) error {
		i := p.FindReview(reviewID)
		if i < 0 {
			return domain.ErrNotFound
		}
		p.Reviews = append(p.Reviews[:i], p.Reviews[i+1:]...)
		return nil
	})
}

func (s *Store) AddLike(ctx context.Context, placeID, userID string) (*domain.Place, error) {
	return s.mutate(ctx, placeID, func(p *domain.Place) error {
		if !p.HasLike(userID) {
			p.Likes = append(p.Likes, userID)
		}
		return nil
	})
}

func (s *Store) RemoveLike(ctx context.Context, placeID, userID string) (*domain.Place, error) {
	return s.mutate(ctx, placeID, func(p *domain.Place) error {
		p.Likes = store.WithoutLike(p.Likes, userID)
		return nil
	})
}

// Clear deletes all places, users and stations
func (s *Store) Clear(ctx context.Context) error {
	db := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, model := range []any{&domain.Place{}, &domain.User{}, &domain.Station{}} {
		if err := db.Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying sql.DB pool
func (s *Store) Close(_ context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
