package entities

import (
	"fmt"
	"time"
)

// LocationRole is the fixed-category tag scoping a person's relation to a
// location. A person has at most one location per role.
type LocationRole string

const (
	RoleBirthplace LocationRole = "birthplace"
	RoleResidence  LocationRole = "residence"
	RoleBurial     LocationRole = "burial"
)

// ParseLocationRole validates and converts a string to LocationRole.
func ParseLocationRole(s string) (LocationRole, error) {
	switch s {
	case "birthplace":
		return RoleBirthplace, nil
	case "residence":
		return RoleResidence, nil
	case "burial":
		return RoleBurial, nil
	default:
		return "", fmt.Errorf("%w: location role %q (valid: birthplace, residence, burial)", ErrValidation, s)
	}
}

// PersonLocation links a person to a location under a role.
type PersonLocation struct {
	ID         string       `json:"id"`
	PersonID   string       `json:"person_id"`
	LocationID string       `json:"location_id"`
	Role       LocationRole `json:"role"`
	CreatedAt  time.Time    `json:"created_at"`
}

// LocationAssignment is one desired location entry for a person, scoped
// by role. Exactly one of LocationID or NewLocation must be set: either a
// reference to an existing location or an inline spec for a new one.
type LocationAssignment struct {
	Role        LocationRole  `json:"role"`
	LocationID  string        `json:"location_id,omitempty"`
	NewLocation *LocationSpec `json:"new_location,omitempty"`
}
