package entities

import "time"

// Location is a shared, reusable place record. It is not owned by any
// single person; multiple people may reference the same location through
// person-location links.
type Location struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	City        string    `json:"city,omitempty"`
	State       string    `json:"state,omitempty"`
	Country     string    `json:"country,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// LocationSpec describes a location to create, either standalone or inline
// during a person-location sync.
type LocationSpec struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	Country     string `json:"country,omitempty"`
}
