//go:build unit

package user_test

import (
	"testing"
	"time"

	"shiftlink/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	t.Run("accepts a plausible address", func(t *testing.T) {
		email, err := user.NewEmail("venue@example.com")
		require.NoError(t, err)
		assert.Equal(t, "venue@example.com", email.String())
	})

	t.Run("rejects malformed addresses", func(t *testing.T) {
		for _, value := range []string{"", "no-at-sign", "two@@example.com", "spaces in@example.com", "missing@tld"} {
			_, err := user.NewEmail(value)
			assert.ErrorIs(t, err, user.ErrInvalidEmail, value)
		}
	})
}

func TestNewRole(t *testing.T) {
	t.Run("known roles", func(t *testing.T) {
		for _, value := range []string{"venue", "professional", "admin"} {
			role, err := user.NewRole(value)
			require.NoError(t, err)
			assert.Equal(t, value, role.String())
		}
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := user.NewRole("superuser")
		assert.ErrorIs(t, err, user.ErrInvalidRole)
	})
}

func TestNewUser(t *testing.T) {
	email, err := user.NewEmail("pro@example.com")
	require.NoError(t, err)

	u := user.NewUser(email, "hashed-password", user.RoleProfessional)
	assert.NotEqual(t, uuid.Nil, u.ID())
	assert.Equal(t, email, u.Email())
	assert.Equal(t, user.RoleProfessional, u.Role())
	assert.True(t, u.IsActive())
	assert.Nil(t, u.LastLogin())
}

func TestReconstructUser(t *testing.T) {
	email, err := user.NewEmail("venue@example.com")
	require.NoError(t, err)

	id := uuid.New()
	lastLogin := time.Date(2026, 2, 28, 9, 0, 0, 0, time.UTC)
	createdAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	u := user.ReconstructUser(id, email, "hashed-password", user.RoleVenue, false, &lastLogin, createdAt)
	assert.Equal(t, id, u.ID())
	assert.Equal(t, user.RoleVenue, u.Role())
	assert.False(t, u.IsActive())
	require.NotNil(t, u.LastLogin())
	assert.Equal(t, lastLogin, *u.LastLogin())
	assert.Equal(t, createdAt, u.CreatedAt())
}
