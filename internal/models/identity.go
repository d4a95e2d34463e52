package models

import (
	"time"

	"github.com/google/uuid"
)

// Identity is the verified caller, derived from a bearer token and valid for one request
type Identity struct {
	UserID    uuid.UUID
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// HasRole reports whether the identity carries one of the given roles
func (i *Identity) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}
