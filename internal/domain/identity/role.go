package identity

import (
	"github.com/zencrm/backend/internal/domain/shared"
)

// Role represents a user's access level in the back office
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleAgent   Role = "agent"
	RoleUser    Role = "user"
)

// IsValid returns true if the role is known
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleAgent, RoleUser:
		return true
	default:
		return false
	}
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// Permissions is the capability set derived from a role. Own-record
// capabilities apply to records whose CreatedBy matches the acting user.
type Permissions struct {
	CanEditOwn   bool `json:"can_edit_own"`
	CanEditAny   bool `json:"can_edit_any"`
	CanDeleteOwn bool `json:"can_delete_own"`
	CanDeleteAny bool `json:"can_delete_any"`
}

// PermissionsFor derives the capability set for a role. Managers run the
// user directory but hold no record capabilities of their own.
func PermissionsFor(role Role) Permissions {
	switch role {
	case RoleAdmin:
		return Permissions{
			CanEditOwn:   true,
			CanEditAny:   true,
			CanDeleteOwn: true,
			CanDeleteAny: true,
		}
	case RoleAgent:
		return Permissions{
			CanEditOwn:   true,
			CanDeleteOwn: true,
		}
	default:
		return Permissions{}
	}
}

// CanAssignRole reports whether a user holding this role may create an
// account with the target role. Admins assign any role; managers are
// limited to agent and user accounts.
func (r Role) CanAssignRole(target Role) bool {
	switch r {
	case RoleAdmin:
		return target.IsValid()
	case RoleManager:
		return target == RoleAgent || target == RoleUser
	default:
		return false
	}
}

// ParseRole converts a raw string into a Role
func ParseRole(raw string) (Role, error) {
	role := Role(raw)
	if !role.IsValid() {
		return "", shared.NewDomainError("INVALID_ROLE", "Role must be admin, manager, agent, or user")
	}
	return role, nil
}
