package entities

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for birth and death dates.
const DateLayout = "2006-01-02"

// Person is an individual that can belong to a family and participate in
// relationships and location links. Dates are optional YYYY-MM-DD strings;
// empty means unknown.
type Person struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	BirthDate string    `json:"birth_date,omitempty"`
	DeathDate string    `json:"death_date,omitempty"`
	Biography string    `json:"biography,omitempty"`
	FamilyID  string    `json:"family_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidateDate checks that s is empty or a valid YYYY-MM-DD date.
func ValidateDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return fmt.Errorf("%w: date %q (expected YYYY-MM-DD)", ErrValidation, s)
	}
	return nil
}
