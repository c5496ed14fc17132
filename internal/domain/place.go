package domain

import "time" // Timestamps

// Review Model, embedded in its Place
type Review struct {
	ID        string    `bson:"_id" json:"id"`                // Review identity (UUID)
	Rating    int       `bson:"rating" json:"rating"`         // 1..5 stars
	Comment   string    `bson:"comment" json:"comment"`       // Free text
	CreatedBy string    `bson:"created_by" json:"created_by"` // Author user ID (weak reference)
	CreatedAt time.Time `bson:"created_at" json:"created_at"` // Creation time
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"` // Last edit time
}

// Place Model
type Place struct {
	ID           string    `gorm:"primaryKey;size:36" bson:"_id" json:"id"`                 // Primary key (UUID)
	Name         string    `gorm:"not null" bson:"name" json:"name"`                        // Place name
	Description  string    `gorm:"type:text" bson:"description" json:"description"`         // Long description
	Image        string    `bson:"image" json:"image"`                                      // Image URL
	Lat          float64   `bson:"lat" json:"lat"`                                          // Latitude
	Long         float64   `bson:"long" json:"long"`                                        // Longitude
	OpeningTimes string    `bson:"opening_times" json:"opening_times"`                      // Opening hours
	Contact      string    `bson:"contact" json:"contact"`                                  // Phone or website
	Category     string    `gorm:"index" bson:"category" json:"category"`                   // Category
	StationID    string    `gorm:"index;size:36;not null" bson:"station_id" json:"station"` // Station reference (weak)
	StationName  string    `bson:"station_name" json:"station_name"`                        // Denormalized station name
	Likes        []string  `gorm:"serializer:json;type:json" bson:"likes" json:"likes"`     // User IDs that liked the place
	Reviews      []Review  `gorm:"serializer:json;type:json" bson:"reviews" json:"reviews"` // Embedded reviews
	CreatedAt    time.Time `gorm:"autoCreateTime" bson:"created_at" json:"created_at"`      // Creation time
	UpdatedAt    time.Time `gorm:"autoUpdateTime" bson:"updated_at" json:"updated_at"`      // Last update time
}

// PlaceDraft is a place that has not been persisted yet
type PlaceDraft struct {
	Name         string
	Description  string
	Image        string
	Lat          float64
	Long         float64
	OpeningTimes string
	Contact      string
	Category     string
	StationID    string
	StationName  string
}

// ToPlace turns the draft into a place with empty likes and reviews
func (d PlaceDraft) ToPlace() Place {
	return Place{
		Name:         d.Name,
		Description:  d.Description,
		Image:        d.Image,
		Lat:          d.Lat,
		Long:         d.Long,
		OpeningTimes: d.OpeningTimes,
		Contact:      d.Contact,
		Category:     d.Category,
		StationID:    d.StationID,
		StationName:  d.StationName,
		Likes:        []string{},
		Reviews:      []Review{},
	}
}

// HasLike reports whether userID is in the likes set
func (p *Place) HasLike(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// FindReview returns the index of the review with the given ID, or -1
func (p *Place) FindReview(reviewID string) int {
	for i := range p.Reviews {
		if p.Reviews[i].ID == reviewID {
			return i
		}
	}
	return -1
}
