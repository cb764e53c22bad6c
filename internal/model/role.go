package model

import "fmt"

// Role is the access-control dimension of an account.
type Role string

const (
	RoleRestaurant Role = "restaurant"
	RoleNGO        Role = "ngo"
)

// ParseRole converts a raw role string into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleRestaurant, RoleNGO:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleRestaurant || r == RoleNGO
}

func (r Role) String() string {
	return string(r)
}
