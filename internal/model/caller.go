package model

import "github.com/google/uuid"

// Caller is the authenticated identity behind a request.
type Caller struct {
	AccountID uuid.UUID
	Role      Role
}

// Is reports whether the caller has role.
func (c Caller) Is(role Role) bool {
	return c.Role == role
}
