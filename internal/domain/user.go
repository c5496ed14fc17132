package domain

import "time" // Timestamps

// User Model
type User struct {
	ID        string    `gorm:"primaryKey;size:36" bson:"_id" json:"id"`                // Primary key (UUID)
	Name      string    `gorm:"not null" bson:"name" json:"name"`                       // Display name
	Username  string    `gorm:"not null" bson:"username" json:"username"`               // Username
	Email     string    `gorm:"uniqueIndex;size:30;not null" bson:"email" json:"-"`     // Unique email, never serialized
	Password  string    `gorm:"not null" bson:"password" json:"-"`                      // Salted bcrypt hash once persisted
	IsAdmin   bool      `gorm:"not null;default:false" bson:"is_admin" json:"is_admin"` // Admin flag
	CreatedAt time.Time `gorm:"autoCreateTime" bson:"created_at" json:"created_at"`     // Creation time
	UpdatedAt time.Time `gorm:"autoUpdateTime" bson:"updated_at" json:"updated_at"`     // Last update time

	passwordModified bool // Set by SetPassword, cleared once the hash is written
}

// SetPassword stores a plaintext password and marks it for hashing on the next save.
func (u *User) SetPassword(plain string) {
	u.Password = plain
	u.passwordModified = true
}

// PasswordModified reports whether Password holds plaintext that still needs hashing.
func (u *User) PasswordModified() bool {
	return u.passwordModified
}

// SetPasswordHash replaces the password with an already computed hash.
func (u *User) SetPasswordHash(hash string) {
	u.Password = hash
	u.passwordModified = false
}
