package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tube_places/internal/domain"
	"tube_places/internal/store/memstore"
	"tube_places/internal/utils"
)

const secret = "secret"

func newRouter(st *memstore.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", JWTAuthMiddleware(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": CurrentUserID(c), "admin": c.GetBool(IsAdminKey)})
	})
	r.GET("/admin", JWTAuthMiddleware(secret), AdminOnlyMiddleware(st), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func get(r *gin.Engine, path, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := newRouter(memstore.New())
	token, err := utils.GenerateJWT("u1", false, secret)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", token).Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", "Bearer garbage").Code)

	w := get(r, "/me", "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"u1","admin":false}`, w.Body.String())
}

func TestAdminOnlyMiddlewareChecksStore(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	r := newRouter(st)

	user := &domain.User{Email: "user@user.com"}
	require.NoError(t, st.CreateUser(ctx, user))
	admin := &domain.User{Email: "admin@admin.com", IsAdmin: true}
	require.NoError(t, st.CreateUser(ctx, admin))

	// A forged admin claim is not enough
	forged, err := utils.GenerateJWT(user.ID, true, secret)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, get(r, "/admin", "Bearer "+forged).Code)

	ghost, err := utils.GenerateJWT("ghost", true, secret)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, get(r, "/admin", "Bearer "+ghost).Code)

	token, err := utils.GenerateJWT(admin.ID, true, secret)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, get(r, "/admin", "Bearer "+token).Code)
}
