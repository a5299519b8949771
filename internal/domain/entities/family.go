package entities

import "time"

// Family is a named surname group. People reference their family by ID;
// deleting a family detaches its members, it never deletes them.
type Family struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// FamilySpec describes a family to create, either standalone or inline
// while creating a person.
type FamilySpec struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
