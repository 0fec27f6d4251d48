package service

import (
	"context"
	"testing"
	"time"

	"strengthdesk/coach-app/internal/domain"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUserRepo(), testSecret, time.Hour)

	t.Run("registers each role", func(t *testing.T) {
		for i, role := range []domain.Role{domain.RoleCoach, domain.RoleTrainer, domain.RoleAthlete} {
			email := string(role) + "@example.com"
			user, err := svc.Register(ctx, "User", email, "password123", role)
			require.NoError(t, err, "role %d", i)
			assert.Equal(t, role, user.Role)
			assert.Empty(t, user.PasswordHash, "hash never leaves the service")
		}
	})

	t.Run("rejects unknown roles", func(t *testing.T) {
		_, err := svc.Register(ctx, "User", "admin@example.com", "password123", "admin")
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, "User", "dup@example.com", "password123", domain.RoleCoach)
		require.NoError(t, err)

		_, err = svc.Register(ctx, "User", "dup@example.com", "password123", domain.RoleCoach)
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUserRepo(), testSecret, time.Hour)

	registered, err := svc.Register(ctx, "Casey", "casey@example.com", "password123", domain.RoleCoach)
	require.NoError(t, err)

	t.Run("valid credentials yield a signed token", func(t *testing.T) {
		token, user, err := svc.Login(ctx, "casey@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
		assert.Empty(t, user.PasswordHash)

		claims := &jwtClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(_ *jwt.Token) (interface{}, error) {
			return []byte(testSecret), nil
		})
		require.NoError(t, err)
		assert.True(t, parsed.Valid)
		assert.Equal(t, registered.ID.Hex(), claims.UserID)
		assert.Equal(t, domain.RoleCoach, claims.Role)
		assert.Equal(t, "coach-app", claims.Issuer)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "casey@example.com", "nope")
		assert.ErrorIs(t, err, ErrAuthenticationFailed)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "ghost@example.com", "password123")
		assert.ErrorIs(t, err, ErrAuthenticationFailed)
	})
}
