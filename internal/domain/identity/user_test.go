package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates active user with hashed password", func(t *testing.T) {
		user, err := NewUser("Agent@Example.com", "parola123", "Ana Agent", RoleAgent)
		require.NoError(t, err)

		assert.Equal(t, "agent@example.com", user.Email)
		assert.Equal(t, RoleAgent, user.Role)
		assert.Equal(t, UserStatusActive, user.Status)
		assert.NotEqual(t, "parola123", user.PasswordHash)
		assert.True(t, user.VerifyPassword("parola123"))
		assert.False(t, user.VerifyPassword("wrong"))
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := NewUser("not-an-email", "parola123", "", RoleUser)
		require.Error(t, err)
	})

	t.Run("rejects weak password", func(t *testing.T) {
		_, err := NewUser("agent@example.com", "short1", "", RoleUser)
		require.Error(t, err)

		_, err = NewUser("agent@example.com", "onlyletters", "", RoleUser)
		require.Error(t, err)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := NewUser("agent@example.com", "parola123", "", Role("owner"))
		require.Error(t, err)
	})
}

func TestPermissionsFor(t *testing.T) {
	tests := []struct {
		role Role
		want Permissions
	}{
		{RoleAdmin, Permissions{CanEditOwn: true, CanEditAny: true, CanDeleteOwn: true, CanDeleteAny: true}},
		{RoleManager, Permissions{}},
		{RoleAgent, Permissions{CanEditOwn: true, CanDeleteOwn: true}},
		{RoleUser, Permissions{}},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, PermissionsFor(tt.role))
		})
	}
}

func TestCanAssignRole(t *testing.T) {
	t.Run("admin assigns any role", func(t *testing.T) {
		for _, target := range []Role{RoleAdmin, RoleManager, RoleAgent, RoleUser} {
			assert.True(t, RoleAdmin.CanAssignRole(target), target.String())
		}
	})

	t.Run("manager assigns only agent and user", func(t *testing.T) {
		assert.True(t, RoleManager.CanAssignRole(RoleAgent))
		assert.True(t, RoleManager.CanAssignRole(RoleUser))
		assert.False(t, RoleManager.CanAssignRole(RoleManager))
		assert.False(t, RoleManager.CanAssignRole(RoleAdmin))
	})

	t.Run("agent and user assign nothing", func(t *testing.T) {
		assert.False(t, RoleAgent.CanAssignRole(RoleUser))
		assert.False(t, RoleUser.CanAssignRole(RoleUser))
	})
}

func TestUserLifecycle(t *testing.T) {
	user, err := NewUser("agent@example.com", "parola123", "", RoleAgent)
	require.NoError(t, err)

	t.Run("deactivate and reactivate", func(t *testing.T) {
		require.NoError(t, user.Deactivate())
		assert.False(t, user.IsActive())
		require.Error(t, user.Deactivate())

		require.NoError(t, user.Activate())
		assert.True(t, user.IsActive())
	})

	t.Run("role change updates permissions", func(t *testing.T) {
		require.NoError(t, user.SetRole(RoleManager))
		assert.True(t, user.Permissions().CanDeleteAny)
	})

	t.Run("records login timestamp", func(t *testing.T) {
		require.Nil(t, user.LastLoginAt)
		user.RecordLogin()
		require.NotNil(t, user.LastLoginAt)
	})
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("manager")
	require.NoError(t, err)
	assert.Equal(t, RoleManager, role)

	_, err = ParseRole("superuser")
	require.Error(t, err)
}
