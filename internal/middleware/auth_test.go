package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/macrolog/backend/internal/models"
	"github.com/macrolog/backend/internal/service"
)

type fakeValidator struct {
	claims *service.TokenClaims
	err    error
}

func (f fakeValidator) ValidateToken(string) (*service.TokenClaims, error) {
	return f.claims, f.err
}

type fakeResolver struct {
	user *models.User
	err  error
}

func (f fakeResolver) ResolveSession(context.Context, string) (*models.User, error) {
	return f.user, f.err
}

func tokenAuthRouter(v TokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", TokenAuth(v), func(c *gin.Context) {
		id, _ := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	return r
}

func TestTokenAuthMissingHeader(t *testing.T) {
	r := tokenAuthRouter(fakeValidator{claims: &service.TokenClaims{UserID: 1}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTokenAuthMalformedHeader(t *testing.T) {
	r := tokenAuthRouter(fakeValidator{claims: &service.TokenClaims{UserID: 1}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTokenAuthInvalidToken(t *testing.T) {
	r := tokenAuthRouter(fakeValidator{err: errors.New("bad signature")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer abc")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTokenAuthSetsIdentity(t *testing.T) {
	r := tokenAuthRouter(fakeValidator{claims: &service.TokenClaims{UserID: 42}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer abc")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id": 42}`, w.Body.String())
}

func TestSessionAuthRedirectsWithoutCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/dashboard", SessionAuth(fakeResolver{err: service.ErrSessionNotFound}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/dashboard", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestSessionAuthSetsIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	resolver := fakeResolver{user: &models.User{ID: 7, Username: "alice"}}
	r.GET("/dashboard", SessionAuth(resolver), func(c *gin.Context) {
		id, _ := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "sid"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id": 7}`, w.Body.String())
}
