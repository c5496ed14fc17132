package credential

import "tube_places/internal/domain" // Domain models

// PublicUser is the only externally visible shape of a user. It has no
// email or password field at all.
type PublicUser struct {
	ID       string `json:"id"`       // User ID
	Name     string `json:"name"`     // Display name
	Username string `json:"username"` // Username
	IsAdmin  bool   `json:"is_admin"` // Admin flag
}

// ToPublicView redacts a user for external consumption.
func ToPublicView(u *domain.User) PublicUser {
	return PublicUser{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		IsAdmin:  u.IsAdmin,
	}
}

// ToPublicViews redacts a list of users.
func ToPublicViews(users []domain.User) []PublicUser {
	out := make([]PublicUser, len(users))
	for i := range users {
		out[i] = ToPublicView(&users[i])
	}
	return out
}
