package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zencrm/backend/internal/domain/identity"
	"github.com/zencrm/backend/internal/domain/shared"
)

func adminActor() identity.Actor {
	return identity.NewActor(uuid.New(), identity.RoleAdmin)
}

func managerActor() identity.Actor {
	return identity.NewActor(uuid.New(), identity.RoleManager)
}

func createRequest(role string) CreateUserRequest {
	return CreateUserRequest{
		Email:       "nou@zencrm.ro",
		Password:    "parola123",
		DisplayName: "Cont Nou",
		Role:        role,
	}
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("admin creates a manager account", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, zap.NewNop())

		repo.On("ExistsByEmail", ctx, "nou@zencrm.ro").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		resp, err := service.Create(ctx, adminActor(), createRequest("manager"))
		require.NoError(t, err)

		assert.Equal(t, "manager", resp.Role)
		assert.Equal(t, "active", resp.Status)
		assert.Equal(t, "nou@zencrm.ro", resp.Email)
		repo.AssertExpectations(t)
	})

	t.Run("role assignment matrix", func(t *testing.T) {
		cases := []struct {
			name    string
			actor   identity.Actor
			role    string
			allowed bool
		}{
			{"admin assigns admin", adminActor(), "admin", true},
			{"admin assigns agent", adminActor(), "agent", true},
			{"manager assigns agent", managerActor(), "agent", true},
			{"manager assigns user", managerActor(), "user", true},
			{"manager assigns admin", managerActor(), "admin", false},
			{"manager assigns manager", managerActor(), "manager", false},
			{"agent assigns user", identity.NewActor(uuid.New(), identity.RoleAgent), "user", false},
			{"plain user assigns user", identity.NewActor(uuid.New(), identity.RoleUser), "user", false},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				repo := new(MockUserRepository)
				service := NewUserService(repo, zap.NewNop())

				if tc.allowed {
					repo.On("ExistsByEmail", ctx, mock.Anything).Return(false, nil)
					repo.On("Save", ctx, mock.Anything).Return(nil)
				}

				_, err := service.Create(ctx, tc.actor, createRequest(tc.role))
				if tc.allowed {
					assert.NoError(t, err)
				} else {
					var domainErr *shared.DomainError
					require.ErrorAs(t, err, &domainErr)
					assert.Equal(t, "FORBIDDEN", domainErr.Code)
					repo.AssertNotCalled(t, "Save")
				}
			})
		}
	})

	t.Run("duplicate email is refused", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, zap.NewNop())

		repo.On("ExistsByEmail", ctx, "nou@zencrm.ro").Return(true, nil)

		_, err := service.Create(ctx, adminActor(), createRequest("agent"))

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("invalid role fails before any repository call", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, zap.NewNop())

		_, err := service.Create(ctx, adminActor(), createRequest("owner"))

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_ROLE", domainErr.Code)
		repo.AssertNotCalled(t, "ExistsByEmail")
	})
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("manager cannot promote to admin", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, zap.NewNop())

		user := testUser(t, "agent@zencrm.ro", "parola123", identity.RoleAgent)
		repo.On("FindByID", ctx, user.ID).Return(user, nil)

		role := "admin"
		_, err := service.Update(ctx, managerActor(), user.ID, UpdateUserRequest{Role: &role})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("admin promotes an agent to manager", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, zap.NewNop())

		user := testUser(t, "agent@zencrm.ro", "parola123", identity.RoleAgent)
		repo.On("FindByID", ctx, user.ID).Return(user, nil)
		repo.On("Save", ctx, user).Return(nil)

		role := "manager"
		resp, err := service.Update(ctx, adminActor(), user.ID, UpdateUserRequest{Role: &role})
		require.NoError(t, err)
		assert.Equal(t, "manager", resp.Role)
	})

	t.Run("users may reset their own password", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, zap.NewNop())

		user := testUser(t, "agent@zencrm.ro", "parola123", identity.RoleAgent)
		self := identity.NewActor(user.ID, identity.RoleAgent)
		repo.On("FindByID", ctx, user.ID).Return(user, nil)
		repo.On("Save", ctx, user).Return(nil)

		password := "parolaNoua9"
		_, err := service.Update(ctx, self, user.ID, UpdateUserRequest{Password: &password})
		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("parolaNoua9"))
	})

	t.Run("agents cannot reset a colleague's password", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, zap.NewNop())

		user := testUser(t, "agent@zencrm.ro", "parola123", identity.RoleAgent)
		other := identity.NewActor(uuid.New(), identity.RoleAgent)
		repo.On("FindByID", ctx, user.ID).Return(user, nil)

		password := "parolaNoua9"
		_, err := service.Update(ctx, other, user.ID, UpdateUserRequest{Password: &password})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})
}

func TestUserService_Deactivate(t *testing.T) {
	ctx := context.Background()

	t.Run("admin deactivates another account", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, zap.NewNop())

		user := testUser(t, "agent@zencrm.ro", "parola123", identity.RoleAgent)
		repo.On("FindByID", ctx, user.ID).Return(user, nil)
		repo.On("Save", ctx, user).Return(nil)

		resp, err := service.Deactivate(ctx, adminActor(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, "deactivated", resp.Status)
	})

	t.Run("admins cannot deactivate themselves", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, zap.NewNop())

		actor := adminActor()
		_, err := service.Deactivate(ctx, actor, actor.UserID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
		repo.AssertNotCalled(t, "FindByID")
	})

	t.Run("managers cannot deactivate accounts", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, zap.NewNop())

		_, err := service.Deactivate(ctx, managerActor(), uuid.New())

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})

	t.Run("deactivate then activate restores access", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(repo, zap.NewNop())

		user := testUser(t, "agent@zencrm.ro", "parola123", identity.RoleAgent)
		repo.On("FindByID", ctx, user.ID).Return(user, nil)
		repo.On("Save", ctx, user).Return(nil)

		_, err := service.Deactivate(ctx, adminActor(), user.ID)
		require.NoError(t, err)

		resp, err := service.Activate(ctx, adminActor(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, "active", resp.Status)
		assert.True(t, user.IsActive())
	})
}

func TestUserService_Permissions(t *testing.T) {
	service := NewUserService(new(MockUserRepository), zap.NewNop())

	t.Run("agent gets own-record capabilities only", func(t *testing.T) {
		actor := identity.NewActor(uuid.New(), identity.RoleAgent)
		resp := service.Permissions(actor)

		assert.Equal(t, actor.UserID, resp.UserID)
		assert.Equal(t, "agent", resp.Role)
		assert.True(t, resp.Permissions.CanEditOwn)
		assert.False(t, resp.Permissions.CanEditAny)
		assert.True(t, resp.Permissions.CanDeleteOwn)
		assert.False(t, resp.Permissions.CanDeleteAny)
	})

	t.Run("plain user gets none", func(t *testing.T) {
		resp := service.Permissions(identity.NewActor(uuid.New(), identity.RoleUser))
		assert.Equal(t, identity.Permissions{}, resp.Permissions)
	})

	t.Run("manager holds no record capabilities", func(t *testing.T) {
		resp := service.Permissions(managerActor())
		assert.Equal(t, identity.Permissions{}, resp.Permissions)
	})
}
