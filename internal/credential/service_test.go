package credential

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tube_places/internal/domain"
	"tube_places/internal/store/memstore"
)

func newService(t *testing.T) (*Service, *memstore.Store) {
	t.Helper()
	st := memstore.New()
	return NewService(st, DefaultPolicy(), Hasher{Cost: bcrypt.MinCost}), st
}

func candidate(email string) Candidate {
	return Candidate{Name: "user", Username: "user", Email: email, Password: "password!1"}
}

func TestCreateUserHashesPassword(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()

	for _, password := range []string{"password!1", "Zz9&Zz9&", "longer#passw0rd"} {
		c := candidate(password[:4] + "@user.com")
		c.Password = password

		u, err := svc.CreateUser(ctx, c)
		require.NoError(t, err)
		assert.NotEmpty(t, u.ID)
		assert.NotEqual(t, password, u.Password)
		assert.False(t, u.PasswordModified())
		assert.True(t, VerifyPassword(u, password))
		assert.False(t, VerifyPassword(u, password+"x"))

		stored, err := st.GetUser(ctx, u.ID)
		require.NoError(t, err)
		assert.NotEqual(t, password, stored.Password)
		assert.True(t, VerifyPassword(stored, password))
	}
}

func TestCreateUserUsesFreshSalt(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	a, err := svc.CreateUser(ctx, candidate("a@user.com"))
	require.NoError(t, err)
	b, err := svc.CreateUser(ctx, candidate("b@user.com"))
	require.NoError(t, err)

	assert.NotEqual(t, a.Password, b.Password)
}

func TestCreateUserRejectsInvalidInput(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()

	c := candidate("not-an-email")
	_, err := svc.CreateUser(ctx, c)
	assert.True(t, domain.IsValidation(err))

	users, err := st.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()

	first, err := svc.CreateUser(ctx, candidate("user@user.com"))
	require.NoError(t, err)

	dup := candidate("user@user.com")
	dup.Name = "other"
	_, err = svc.CreateUser(ctx, dup)
	require.Error(t, err)
	var ue *domain.UniquenessError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "email", ue.Field)

	stored, err := st.GetUser(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "user", stored.Name)
	assert.Equal(t, first.Password, stored.Password)

	users, err := st.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestSaveWithoutPasswordChangeKeepsHash(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, candidate("user@user.com"))
	require.NoError(t, err)
	hash := u.Password

	name := "renamed"
	updated, err := svc.UpdateProfile(ctx, u.ID, ProfileUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, hash, updated.Password)

	require.NoError(t, svc.Save(ctx, updated))
	stored, err := st.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, hash, stored.Password)
	assert.Equal(t, "renamed", stored.Name)
	assert.True(t, VerifyPassword(stored, "password!1"))
}

func TestUpdateUserPasswordRehashes(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, candidate("user@user.com"))
	require.NoError(t, err)

	updated, err := svc.UpdateUserPassword(ctx, u.ID, "n3w&password")
	require.NoError(t, err)
	assert.NotEqual(t, u.Password, updated.Password)
	assert.True(t, VerifyPassword(updated, "n3w&password"))
	assert.False(t, VerifyPassword(updated, "password!1"))

	_, err = svc.UpdateUserPassword(ctx, u.ID, "weak")
	assert.True(t, domain.IsValidation(err))
}

func TestUpdateProfileRejectsTakenEmail(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, candidate("a@user.com"))
	require.NoError(t, err)
	b, err := svc.CreateUser(ctx, candidate("b@user.com"))
	require.NoError(t, err)

	email := "a@user.com"
	_, err = svc.UpdateProfile(ctx, b.ID, ProfileUpdate{Email: &email})
	assert.True(t, domain.IsUniqueness(err))
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, candidate("user@user.com"))
	require.NoError(t, err)

	u, err := svc.Authenticate(ctx, "user@user.com", "password!1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)

	_, err = svc.Authenticate(ctx, "user@user.com", "wrong!pass1")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody@user.com", "password!1")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestVerifyPasswordRejectsUnhashed(t *testing.T) {
	u := &domain.User{}
	u.SetPassword("password!1")
	assert.False(t, VerifyPassword(u, "password!1"))
	assert.False(t, VerifyPassword(nil, "password!1"))
}

func TestToPublicViewRedacts(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	admin := candidate("admin@admin.com")
	admin.IsAdmin = true
	for _, c := range []Candidate{admin, candidate("user@user.com")} {
		u, err := svc.CreateUser(ctx, c)
		require.NoError(t, err)

		for _, v := range []any{ToPublicView(u), u} {
			raw, err := json.Marshal(v)
			require.NoError(t, err)

			var fields map[string]any
			require.NoError(t, json.Unmarshal(raw, &fields))
			assert.NotContains(t, fields, "password")
			assert.NotContains(t, fields, "email")
			assert.Equal(t, u.ID, fields["id"])
			assert.Equal(t, c.IsAdmin, fields["is_admin"])
		}
	}
}

func TestCreateUserRejectsPasswordOverBcryptLimit(t *testing.T) {
	svc, st := newService(t)
	c := candidate("user@user.com")
	c.Password = strings.Repeat("a", 70) + "1!!"

	_, err := svc.CreateUser(context.Background(), c)
	require.True(t, domain.IsValidation(err), "got %v", err)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.Has("password"))

	users, err := st.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestCreateUserAcceptsPasswordAtBcryptLimit(t *testing.T) {
	svc, _ := newService(t)
	c := candidate("user@user.com")
	c.Password = strings.Repeat("a", MaxPasswordBytes-2) + "1!"

	u, err := svc.CreateUser(context.Background(), c)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(u, c.Password))
}

func TestSaveNewUserValidatesDirectlyAssignedPassword(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()

	err := svc.Save(ctx, &domain.User{Name: "u", Username: "u", Email: "user@user.com", Password: "weak"})
	require.True(t, domain.IsValidation(err), "got %v", err)
	users, err := st.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestSaveNewUserHashesDirectlyAssignedPassword(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()

	u := &domain.User{Name: "u", Username: "u", Email: "user@user.com", Password: "password!1"}
	require.NoError(t, svc.Save(ctx, u))
	assert.False(t, u.PasswordModified())

	stored, err := st.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "password!1", stored.Password)
	assert.True(t, VerifyPassword(stored, "password!1"))
}
