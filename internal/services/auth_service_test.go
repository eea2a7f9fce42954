package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"toy_store_backend/internal/models"
	"toy_store_backend/internal/repositories/memory"
	"toy_store_backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) (*memory.Store, AuthService, *utils.JWTManager) {
	t.Helper()
	store := memory.NewStore()
	jwt := utils.NewJWTManager("test-secret", time.Minute, time.Hour)
	return store, NewAuthService(store.Repositories().Auth, jwt), jwt
}

func TestLoginIssuesTokenPair(t *testing.T) {
	_, svc, jwt := newAuthFixture(t)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, RegisterUserRequest{Username: "admin", Password: "correct-horse", Role: "ADMIN"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Empty(t, user.PasswordHash)

	pair, err := svc.LoginUser(ctx, LoginRequest{Username: "admin", Password: "correct-horse"})
	require.NoError(t, err)

	claims, err := jwt.ValidateToken(pair.Access, utils.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	refreshed, err := svc.RefreshAccessToken(ctx, RefreshRequest{Refresh: pair.Refresh})
	require.NoError(t, err)
	_, err = jwt.ValidateToken(refreshed.Access, utils.TokenTypeAccess)
	assert.NoError(t, err)

	// An access token cannot be used to refresh.
	_, err = svc.RefreshAccessToken(ctx, RefreshRequest{Refresh: pair.Access})
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	store, svc, _ := newAuthFixture(t)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, RegisterUserRequest{Username: "staff", Password: "long-enough"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, user.Role)

	_, err = svc.LoginUser(ctx, LoginRequest{Username: "staff", Password: "wrong-password"})
	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	_, err = svc.LoginUser(ctx, LoginRequest{Username: "ghost", Password: "long-enough"})
	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	pair, err := svc.LoginUser(ctx, LoginRequest{Username: "staff", Password: "long-enough"})
	require.NoError(t, err)

	require.NoError(t, store.SetUserActive(user.ID, false))
	_, err = svc.LoginUser(ctx, LoginRequest{Username: "staff", Password: "long-enough"})
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
	_, err = svc.RefreshAccessToken(ctx, RefreshRequest{Refresh: pair.Refresh})
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestRegisterUserValidation(t *testing.T) {
	_, svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, RegisterUserRequest{Username: " ", Password: "short", Email: strPtr("bad")})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "username")
	assert.Contains(t, verr.Fields, "password")
	assert.Contains(t, verr.Fields, "email")

	_, err = svc.RegisterUser(ctx, RegisterUserRequest{Username: "x", Password: "long-enough", Role: "owner"})
	assert.True(t, errors.Is(err, ErrRoleNotFound))

	_, err = svc.RegisterUser(ctx, RegisterUserRequest{Username: "x", Password: "long-enough"})
	require.NoError(t, err)
	_, err = svc.RegisterUser(ctx, RegisterUserRequest{Username: "x", Password: "long-enough"})
	assert.True(t, errors.Is(err, ErrUsernameExists))
}

func TestRegisterUserRejectsPasswordsBcryptCannotHash(t *testing.T) {
	_, svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, RegisterUserRequest{Username: "long", Password: strings.Repeat("a", 73)})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Equal(t, "Ensure this field has no more than 72 bytes.", verr.Fields["password"])

	// 40 runes, 80 bytes
	_, err = svc.RegisterUser(ctx, RegisterUserRequest{Username: "wide", Password: strings.Repeat("é", 40)})
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Contains(t, verr.Fields, "password")

	_, err = svc.RegisterUser(ctx, RegisterUserRequest{Username: "edge", Password: strings.Repeat("a", 72)})
	require.NoError(t, err)
}
