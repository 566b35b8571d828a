package auth

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/example/storefront/pkg/models"
)

// Principal is the authenticated identity attached to every request:
// who is calling and with what role. Handlers and services take it
// explicitly instead of digging fields out of the request.
type Principal struct {
	UserID primitive.ObjectID
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// CanAccess reports whether the principal may act on a resource owned by
// the given user: owners and administrators only.
func (p Principal) CanAccess(owner primitive.ObjectID) bool {
	return p.IsAdmin() || p.UserID == owner
}
