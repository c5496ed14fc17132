package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceHelpers(t *testing.T) {
	p := Place{
		Likes:   []string{"u1", "u2"},
		Reviews: []Review{{ID: "r1"}, {ID: "r2"}},
	}

	assert.True(t, p.HasLike("u2"))
	assert.False(t, p.HasLike("u3"))
	assert.Equal(t, 1, p.FindReview("r2"))
	assert.Equal(t, -1, p.FindReview("r3"))
}

func TestUserPasswordLifecycle(t *testing.T) {
	var u User
	assert.False(t, u.PasswordModified())

	u.SetPassword("password!1")
	assert.True(t, u.PasswordModified())

	u.SetPasswordHash("$2a$10$hash")
	assert.False(t, u.PasswordModified())
	assert.Equal(t, "$2a$10$hash", u.Password)
}

func TestErrorHelpers(t *testing.T) {
	ve := &ValidationError{Fields: []FieldError{{Field: "email", Reason: "email_shape"}}}
	wrapped := fmt.Errorf("create: %w", ve)

	assert.True(t, IsValidation(wrapped))
	assert.True(t, ve.Has("email"))
	assert.False(t, ve.Has("password"))
	assert.Equal(t, "validation failed: email: email_shape", ve.Error())

	ue := &UniquenessError{Field: "email", Value: "a@b.com"}
	assert.True(t, IsUniqueness(fmt.Errorf("save: %w", ue)))
	assert.False(t, IsUniqueness(wrapped))

	cause := errors.New("refused")
	ce := &ConnectionError{Driver: "mongo", Err: cause}
	assert.ErrorIs(t, ce, cause)
	assert.Equal(t, "connect to mongo: refused", ce.Error())
}
