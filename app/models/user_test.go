package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	t.Parallel()

	t.Run("valid user", func(t *testing.T) {
		t.Parallel()
		u, err := CreateUser("maria", "maria@example.com", "correct-horse-battery")
		require.NoError(t, err)
		assert.Equal(t, ROLE_USER, u.Role)
		assert.Equal(t, STATUS_ACTIVE, u.Status)
		assert.NotEqual(t, "correct-horse-battery", u.Password)
		assert.True(t, u.CheckPassword("correct-horse-battery"))
		assert.False(t, u.CheckPassword("wrong"))
	})

	t.Run("short password rejected before hashing", func(t *testing.T) {
		t.Parallel()
		_, err := CreateUser("maria", "maria@example.com", "short")
		assert.Error(t, err)
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		t.Parallel()
		_, err := CreateUser("maria", "not-an-email", "correct-horse-battery")
		assert.Error(t, err)
	})
}

func TestUserRoles(t *testing.T) {
	t.Parallel()

	admin := &User{Role: ROLE_ADMIN, Status: STATUS_ACTIVE}
	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.IsActive())

	disabled := &User{Role: ROLE_USER, Status: STATUS_DISABLED}
	assert.False(t, disabled.IsAdmin())
	assert.False(t, disabled.IsActive())
}
