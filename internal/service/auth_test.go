package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	return &AuthService{
		Repo:          newTestRepo(t),
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}
}

func TestAuthRegisterAndLogin(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "maria", "maria@example.com", "secreta123")
	require.NoError(t, err)
	assert.Equal(t, "user", user.Role)
	assert.NotEqual(t, "secreta123", user.PasswordHash)

	access, refresh, logged, err := svc.Login(ctx, "maria", "secreta123")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, user.ID, logged.ID)

	claims, err := svc.parseToken(access, svc.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims["sub"])
	assert.Equal(t, "user", claims["role"])
}

func TestAuthRegisterValidation(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"empty username", "", "a@example.com", "pw"},
		{"empty email", "user", "", "pw"},
		{"empty password", "user", "a@example.com", ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.Register(ctx, tt.username, tt.email, tt.password)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAuthRegisterDuplicateUsername(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "pedro", "pedro@example.com", "pw123456")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "pedro", "otro@example.com", "pw123456")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAuthLoginWrongPassword(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "lucia", "lucia@example.com", "correcta")
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "lucia", "incorrecta")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, _, err = svc.Login(ctx, "inexistente", "lo que sea")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthRotateRevokesOldToken(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "ana", "ana@example.com", "pw123456")
	require.NoError(t, err)
	_, refresh, _, err := svc.Login(ctx, "ana", "pw123456")
	require.NoError(t, err)

	access2, refresh2, err := svc.Rotate(ctx, refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, access2)
	assert.NotEqual(t, refresh, refresh2)

	// The rotated token works.
	access3, refresh3, err := svc.Rotate(ctx, refresh2)
	require.NoError(t, err)
	assert.NotEmpty(t, access3)

	// Replaying the already-rotated token revokes the whole family.
	_, _, err = svc.Rotate(ctx, refresh2)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Rotate(ctx, refresh3)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthRotateRejectsForgedToken(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "not-a-user",
	}).SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	_, _, err = svc.Rotate(ctx, forged)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthLogout(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "tomas", "tomas@example.com", "pw123456")
	require.NoError(t, err)
	_, refresh, _, err := svc.Login(ctx, "tomas", "pw123456")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, refresh))

	_, _, err = svc.Rotate(ctx, refresh)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
