package credential

import (
	"golang.org/x/crypto/bcrypt" // Password hashing

	"tube_places/internal/domain" // Domain models
)

// Hasher derives salted bcrypt hashes. bcrypt draws a fresh random salt for
// every call and embeds it in the returned hash.
type Hasher struct {
	Cost int // Work factor, 0 means bcrypt.DefaultCost
}

// Hash returns the salted hash of plain
func (h Hasher) Hash(plain string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// maybeHashPassword replaces a modified plaintext password with its hash.
// An untouched password already holds a hash and is left alone.
func (h Hasher) maybeHashPassword(u *domain.User) error {
	if !u.PasswordModified() {
		return nil
	}
	hash, err := h.Hash(u.Password)
	if err != nil {
		return err
	}
	u.SetPasswordHash(hash) // Clears the modified marker
	return nil
}

// VerifyPassword reports whether candidate matches the user's stored hash.
// The comparison is constant time.
func VerifyPassword(u *domain.User, candidate string) bool {
	if u == nil || u.PasswordModified() {
		return false // Plaintext is never a valid stored hash
	}
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate)) == nil
}
