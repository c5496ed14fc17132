package credential

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tube_places/internal/domain"
)

func newUser(email, password string) *domain.User {
	u := &domain.User{Name: "user", Username: "user", Email: email}
	u.SetPassword(password)
	return u
}

func requireValidationError(t *testing.T, err error) *domain.ValidationError {
	t.Helper()
	require.Error(t, err)
	ve, ok := err.(*domain.ValidationError)
	require.True(t, ok, "expected *domain.ValidationError, got %T", err)
	return ve
}

func TestValidateFieldsAcceptsValidUser(t *testing.T) {
	v := NewValidator(DefaultPolicy())
	assert.NoError(t, v.ValidateFields(newUser("user@user.com", "password!1")))
}

func TestValidateFieldsRequiresEveryField(t *testing.T) {
	v := NewValidator(DefaultPolicy())
	u := &domain.User{}
	u.SetPassword("")

	ve := requireValidationError(t, v.ValidateFields(u))
	for _, field := range []string{"name", "username", "email", "password"} {
		assert.True(t, ve.Has(field), field)
	}
}

func TestValidateFieldsRejectsInvalidEmails(t *testing.T) {
	v := NewValidator(DefaultPolicy())
	emails := map[string]string{
		"missing at": "user.user.com",
		"too short":  "a@b.",
		"tiny":       "a@b",
		"too long":   strings.Repeat("a", 20) + "@example.com",
		"no domain":  "user@",
	}
	for name, email := range emails {
		t.Run(name, func(t *testing.T) {
			ve := requireValidationError(t, v.ValidateFields(newUser(email, "password!1")))
			assert.True(t, ve.Has("email"))
			assert.False(t, ve.Has("password"))
		})
	}
}

func TestValidateFieldsRejectsWeakPassword(t *testing.T) {
	v := NewValidator(DefaultPolicy())

	ve := requireValidationError(t, v.ValidateFields(newUser("user@user.com", "password")))
	assert.Equal(t, []domain.FieldError{{Field: "password", Reason: "password_policy"}}, ve.Fields)
}

func TestValidateFieldsSkipsComplexityForStoredHash(t *testing.T) {
	v := NewValidator(DefaultPolicy())
	u := &domain.User{Name: "user", Username: "user", Email: "user@user.com"}
	u.SetPasswordHash("$2a$04$abcdefghijklmnopqrstuuFakeHashWithoutSymbolsOrDigits")

	assert.NoError(t, v.ValidateFields(u))
}

func TestValidateFieldsRejectsPasswordOverBcryptLimit(t *testing.T) {
	v := NewValidator(DefaultPolicy())
	password := strings.Repeat("a", 70) + "1!!"

	ve := requireValidationError(t, v.ValidateFields(newUser("user@user.com", password)))
	assert.Equal(t, []domain.FieldError{{Field: "password", Reason: "password_length"}}, ve.Fields)
}

func TestValidateFieldsCapsPasswordLengthForCustomPolicy(t *testing.T) {
	p := DefaultPolicy()
	p.Password = func(string) bool { return true } // Accepts anything
	v := NewValidator(p)

	ve := requireValidationError(t, v.ValidateFields(newUser("user@user.com", strings.Repeat("x", MaxPasswordBytes+1))))
	assert.True(t, ve.Has("password"))
	assert.NoError(t, v.ValidateFields(newUser("user@user.com", strings.Repeat("x", MaxPasswordBytes))))
}
