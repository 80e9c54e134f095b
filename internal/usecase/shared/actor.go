package shared

import (
	"hostel-backoffice/internal/domain/user"

	"github.com/google/uuid"
)

// Actor is the authenticated caller as established by the auth middleware.
type Actor struct {
	UserID uuid.UUID
	Role   user.Role
}

func (a Actor) IsAdministrator() bool {
	return a.Role.IsAdministrator()
}

// CanAccess reports whether the actor may see or change data owned by ownerID.
func (a Actor) CanAccess(ownerID uuid.UUID) bool {
	return a.IsAdministrator() || a.UserID == ownerID
}
