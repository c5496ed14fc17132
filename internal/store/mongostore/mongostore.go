// Package mongostore keeps users, stations and places as MongoDB documents.
// Reviews and liking user IDs are embedded arrays of the place document.
package mongostore

import (
	"context" // Request scoped cancellation
	"errors"  // Error inspection
	"fmt"     // Error wrapping
	"time"    // Timestamps

	"go.mongodb.org/mongo-driver/bson"           // BSON documents and filters
	"go.mongodb.org/mongo-driver/mongo"          // MongoDB client
	"go.mongodb.org/mongo-driver/mongo/options"  // Query and index options
	"go.mongodb.org/mongo-driver/mongo/readpref" // Ping read preference

	"tube_places/internal/domain" // Domain models
	"tube_places/internal/store"  // Storage contracts
)

// Collection names
const (
	usersCollection    = "users"
	stationsCollection = "stations"
	placesCollection   = "places"
)

// Store is a store.Store backed by a MongoDB database.
type Store struct {
	client   *mongo.Client
	users    *mongo.Collection
	stations *mongo.Collection
	places   *mongo.Collection
}

var _ store.Store = (*Store)(nil)

// Connect dials uri, verifies the connection and ensures indexes on dbName.
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil { // Fail fast on an unreachable server
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	s := New(client, dbName)
	if err := s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}
	return s, nil
}

// New wraps an already connected client.
func New(client *mongo.Client, dbName string) *Store {
	db := client.Database(dbName)
	return &Store{
		client:   client,
		users:    db.Collection(usersCollection),
		stations: db.Collection(stationsCollection),
		places:   db.Collection(placesCollection),
	}
}

// EnsureIndexes creates the unique email index and the place lookup indexes.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true), // One account per email
	})
	if err != nil {
		return err
	}
	_, err = s.places.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "station_id", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	})
	return err
}

func translate(err error, u *domain.User) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return domain.ErrNotFound
	case mongo.IsDuplicateKeyError(err) && u != nil:
		return &domain.UniquenessError{Field: "email", Value: u.Email}
	case mongo.IsDuplicateKeyError(err):
		return &domain.UniquenessError{Field: "_id"}
	}
	return err
}

func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = store.NewID() // UUID strings, same as the other backends
	}
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	_, err := s.users.InsertOne(ctx, u)
	return translate(err, u)
}

func (s *Store) UpdateUser(ctx context.Context, u *domain.User) error {
	u.UpdatedAt = time.Now().UTC()
	res, err := s.users.UpdateByID(ctx, u.ID, bson.M{"$set": bson.M{
		"name":       u.Name,
		"username":   u.Username,
		"email":      u.Email,
		"password":   u.Password,
		"is_admin":   u.IsAdmin,
		"updated_at": u.UpdatedAt,
	}})
	if err != nil {
		return translate(err, u)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound // Nothing matched the ID
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	if err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, translate(err, nil)
	}
	return &u, nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		return nil, translate(err, nil)
	}
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	cur, err := s.users.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	users := []domain.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) CreateStations(ctx context.Context, stations []domain.Station) ([]domain.Station, error) {
	out := make([]domain.Station, len(stations))
	docs := make([]any, len(stations))
	for i, st := range stations {
		if st.ID == "" {
			st.ID = store.NewID()
		}
		if st.Lines == nil {
			st.Lines = []string{}
		}
		out[i] = st
		docs[i] = st
	}
	if len(docs) == 0 {
		return out, nil
	}
	// Ordered insert so a failure leaves a prefix, never a scattered subset
	if _, err := s.stations.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return nil, translate(err, nil)
	}
	return out, nil
}

func (s *Store) GetStation(ctx context.Context, id string) (*domain.Station, error) {
	var st domain.Station
	if err := s.stations.FindOne(ctx, bson.M{"_id": id}).Decode(&st); err != nil {
		return nil, translate(err, nil)
	}
	return &st, nil
}

func (s *Store) ListStations(ctx context.Context) ([]domain.Station, error) {
	cur, err := s.stations.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	stations := []domain.Station{}
	if err := cur.All(ctx, &stations); err != nil {
		return nil, err
	}
	return stations, nil
}

func (s *Store) CreatePlaces(ctx context.Context, places []domain.Place) ([]domain.Place, error) {
	now := time.Now().UTC()
	out := make([]domain.Place, len(places))
	docs := make([]any, len(places))
	for i, p := range places {
		if p.ID == "" {
			p.ID = store.NewID()
		}
		if p.Likes == nil {
			p.Likes = []string{} // $addToSet fails on null
		}
		if p.Reviews == nil {
			p.Reviews = []domain.Review{}
		}
		p.CreatedAt, p.UpdatedAt = now, now
		out[i] = p
		docs[i] = p
	}
	if len(docs) == 0 {
		return out, nil
	}
	if _, err := s.places.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return nil, translate(err, nil)
	}
	return out, nil
}

func (s *Store) GetPlace(ctx context.Context, id string) (*domain.Place, error) {
	var p domain.Place
	if err := s.places.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, translate(err, nil)
	}
	return &p, nil
}

func (s *Store) ListPlaces(ctx context.Context, filter store.PlaceFilter) ([]domain.Place, error) {
	q := bson.M{}
	if filter.StationID != "" {
		q["station_id"] = filter.StationID
	}
	if filter.Category != "" {
		q["category"] = filter.Category
	}
	cur, err := s.places.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	places := []domain.Place{}
	if err := cur.All(ctx, &places); err != nil {
		return nil, err
	}
	return places, nil
}

// update applies a single-document update and returns the new document.
func (s *Store) update(ctx context.Context, filter, update bson.M) (*domain.Place, error) {
	set, _ := update["$set"].(bson.M)
	if set == nil {
		set = bson.M{}
		update["$set"] = set
	}
	set["updated_at"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p domain.Place
	if err := s.places.FindOneAndUpdate(ctx, filter, update, opts).Decode(&p); err != nil {
		return nil, translate(err, nil)
	}
	return &p, nil
}

func (s *Store) AddReview(ctx context.Context, placeID string, r domain.Review) (*domain.Place, error) {
	return s.update(ctx, bson.M{"_id": placeID}, bson.M{"$push": bson.M{"reviews": r}})
}

func (s *Store) UpdateReview(ctx context.Context, placeID string, r domain.Review) (*domain.Place, error) {
	return s.update(ctx,
		bson.M{"_id": placeID, "reviews._id": r.ID},
		bson.M{"$set": bson.M{"reviews.$": r}},
	)
}

func (s *Store) DeleteReview(ctx context.Context, placeID, reviewID string) (*domain.Place, error) {
	return s.update(ctx,
		bson.M{"_id": placeID, "reviews._id": reviewID},
		bson.M{"$pull": bson.M{"reviews": bson.M{"_id": reviewID}}},
	)
}

func (s *Store) AddLike(ctx context.Context, placeID, userID string) (*domain.Place, error) {
	return s.update(ctx, bson.M{"_id": placeID}, bson.M{"$addToSet": bson.M{"likes": userID}})
}

func (s *Store) RemoveLike(ctx context.Context, placeID, userID string) (*domain.Place, error) {
	return s.update(ctx, bson.M{"_id": placeID}, bson.M{"$pull": bson.M{"likes": userID}})
}

// Clear deletes every document from the three collections.
func (s *Store) Clear(ctx context.Context) error {
	for _, coll := range []*mongo.Collection{s.places, s.users, s.stations} {
		if _, err := coll.DeleteMany(ctx, bson.D{}); err != nil {
			return fmt.Errorf("clear %s: %w", coll.Name(), err)
		}
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
