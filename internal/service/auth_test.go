package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrolog/backend/internal/models"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := setupTestDB(t)
	return NewAuthService(db, "test-secret", NewMemorySessionStore(time.Hour))
}

func TestRegisterAndLogin(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, "alice", "Passw0rd")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "Passw0rd", user.PasswordHash)

	got, err := auth.Login(ctx, "alice", "Passw0rd")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = auth.Login(ctx, "alice", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login(ctx, "nobody", "Passw0rd")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	first, err := auth.Register(ctx, "alice", "Passw0rd")
	require.NoError(t, err)

	_, err = auth.Register(ctx, "alice", "Other123")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	// First row unaffected, no second row created.
	var count int64
	require.NoError(t, auth.db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	got, err := auth.Login(ctx, "alice", "Passw0rd")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestTokenRoundTrip(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, "alice", "Passw0rd")
	require.NoError(t, err)

	token, err := auth.GenerateToken(user.ID)
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	_, err = auth.ValidateToken(token + "tampered")
	assert.Error(t, err)

	_, err = auth.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestTokenSignedWithOtherSecretRejected(t *testing.T) {
	auth := newTestAuthService(t)
	other := NewAuthService(auth.db, "other-secret", NewMemorySessionStore(time.Hour))

	token, err := other.GenerateToken(1)
	require.NoError(t, err)

	_, err = auth.ValidateToken(token)
	assert.Error(t, err)
}

func TestSessionLifecycle(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, "alice", "Passw0rd")
	require.NoError(t, err)

	sessionID, err := auth.StartSession(ctx, user.ID)
	require.NoError(t, err)

	got, err := auth.ResolveSession(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	require.NoError(t, auth.EndSession(ctx, sessionID))
	_, err = auth.ResolveSession(ctx, sessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestResolveSessionStaleUser(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, "alice", "Passw0rd")
	require.NoError(t, err)

	sessionID, err := auth.StartSession(ctx, user.ID)
	require.NoError(t, err)

	// The session outlives the user row; resolving it must fail rather
	// than return a phantom identity.
	require.NoError(t, auth.db.Delete(&models.User{}, user.ID).Error)

	_, err = auth.ResolveSession(ctx, sessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemorySessionStoreExpiry(t *testing.T) {
	store := NewMemorySessionStore(-time.Second)
	ctx := context.Background()

	sessionID, err := store.Create(ctx, 1)
	require.NoError(t, err)

	_, err = store.Get(ctx, sessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
