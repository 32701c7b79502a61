package identity

import (
	"github.com/google/uuid"
)

// Actor is the acting user resolved from an access token. It carries just
// enough to gate record mutations by ownership.
type Actor struct {
	UserID uuid.UUID
	Role   Role
}

// NewActor builds an actor from resolved claims
func NewActor(userID uuid.UUID, role Role) Actor {
	return Actor{UserID: userID, Role: role}
}

// Permissions returns the capability set for the actor's role
func (a Actor) Permissions() Permissions {
	return PermissionsFor(a.Role)
}

// owns reports whether the record belongs to the actor. Records without a
// creator are owned by nobody.
func (a Actor) owns(createdBy *uuid.UUID) bool {
	return createdBy != nil && *createdBy == a.UserID
}

// CanEdit reports whether the actor may modify a record created by createdBy
func (a Actor) CanEdit(createdBy *uuid.UUID) bool {
	p := a.Permissions()
	if p.CanEditAny {
		return true
	}
	return p.CanEditOwn && a.owns(createdBy)
}

// CanDelete reports whether the actor may delete a record created by createdBy
func (a Actor) CanDelete(createdBy *uuid.UUID) bool {
	p := a.Permissions()
	if p.CanDeleteAny {
		return true
	}
	return p.CanDeleteOwn && a.owns(createdBy)
}
