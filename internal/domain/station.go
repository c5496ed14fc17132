package domain

// Station Model
type Station struct {
	ID    string   `gorm:"primaryKey;size:36" bson:"_id" json:"id"`             // Primary key (UUID)
	Name  string   `gorm:"not null" bson:"name" json:"name"`                    // Station name
	Lines []string `gorm:"serializer:json;type:json" bson:"lines" json:"lines"` // Lines serving the station
	Zone  int      `gorm:"not null;default:1" bson:"zone" json:"zone"`          // Fare zone
}
