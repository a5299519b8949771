package entities

import (
	"fmt"
	"time"
)

// RelationType defines the kind of relationship between two people.
type RelationType string

const (
	RelationParent RelationType = "parent"
	RelationChild  RelationType = "child"
	RelationSpouse RelationType = "spouse"
)

// Reciprocal returns the type of the mirror edge implied by this one:
// parent and child imply each other, spouse implies itself.
func (t RelationType) Reciprocal() RelationType {
	switch t {
	case RelationParent:
		return RelationChild
	case RelationChild:
		return RelationParent
	case RelationSpouse:
		return RelationSpouse
	}
	return t
}

// ParseRelationType validates and converts a string to RelationType.
func ParseRelationType(s string) (RelationType, error) {
	switch s {
	case "parent":
		return RelationParent, nil
	case "child":
		return RelationChild, nil
	case "spouse":
		return RelationSpouse, nil
	default:
		return "", fmt.Errorf("%w: relationship type %q (valid: parent, child, spouse)", ErrValidation, s)
	}
}

// Relationship represents a directed typed edge between two people.
// Every edge has a reciprocal counterpart stored as an independent row;
// the relationship service keeps the pair in sync.
type Relationship struct {
	ID           string       `json:"id"`
	FromPersonID string       `json:"from_person_id"`
	ToPersonID   string       `json:"to_person_id"`
	Type         RelationType `json:"type"`
	CreatedAt    time.Time    `json:"created_at"`
}

// ReciprocalKey returns the composite key of the edge's mirror counterpart.
func (r *Relationship) ReciprocalKey() (fromID, toID string, relType RelationType) {
	return r.ToPersonID, r.FromPersonID, r.Type.Reciprocal()
}
