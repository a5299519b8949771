package ports

import (
	"context"

	"github.com/ersonp/kin-core/internal/domain/entities"
)

// Tx is the set of leaf data-access operations available inside a
// transaction. Find methods return nil (not an error) when no row matches;
// services translate absence into entities.ErrNotFound. Insert and update
// methods return an error wrapping entities.ErrConflict on uniqueness
// violations.
type Tx interface {
	// Family operations

	// FindFamily finds a family by its ID.
	FindFamily(ctx context.Context, id string) (*entities.Family, error)

	// FindFamilyByName finds a family by its unique name.
	FindFamilyByName(ctx context.Context, name string) (*entities.Family, error)

	// ListFamilies lists all families ordered by name.
	ListFamilies(ctx context.Context) ([]entities.Family, error)

	// InsertFamily inserts a new family.
	InsertFamily(ctx context.Context, family *entities.Family) error

	// UpdateFamily updates an existing family.
	UpdateFamily(ctx context.Context, family *entities.Family) error

	// DeleteFamily deletes a family row. It does not touch members.
	DeleteFamily(ctx context.Context, id string) error

	// DetachFamilyMembers clears the family reference of every member.
	DetachFamilyMembers(ctx context.Context, familyID string) error

	// ListFamilyMembers lists the people belonging to a family, ordered by
	// last then first name.
	ListFamilyMembers(ctx context.Context, familyID string) ([]entities.Person, error)

	// Person operations

	// FindPerson finds a person by ID.
	FindPerson(ctx context.Context, id string) (*entities.Person, error)

	// ListPeople lists all people ordered by last then first name.
	ListPeople(ctx context.Context) ([]entities.Person, error)

	// InsertPerson inserts a new person.
	InsertPerson(ctx context.Context, person *entities.Person) error

	// UpdatePerson updates an existing person.
	UpdatePerson(ctx context.Context, person *entities.Person) error

	// DeletePerson deletes a person together with their relationship edges
	// and person-location links. Referenced locations survive.
	DeletePerson(ctx context.Context, id string) error

	// Location operations

	// FindLocation finds a location by ID.
	FindLocation(ctx context.Context, id string) (*entities.Location, error)

	// ListLocations lists all locations ordered by name.
	ListLocations(ctx context.Context) ([]entities.Location, error)

	// InsertLocation inserts a new location.
	InsertLocation(ctx context.Context, location *entities.Location) error

	// UpdateLocation updates an existing location.
	UpdateLocation(ctx context.Context, location *entities.Location) error

	// DeleteLocation deletes a location and the person-location links that
	// reference it.
	DeleteLocation(ctx context.Context, id string) error

	// Relationship operations

	// FindRelationship finds a relationship edge by ID.
	FindRelationship(ctx context.Context, id string) (*entities.Relationship, error)

	// FindRelationshipByKey finds an edge by its composite key.
	FindRelationshipByKey(ctx context.Context, fromID, toID string, relType entities.RelationType) (*entities.Relationship, error)

	// ListRelationships lists all relationship edges.
	ListRelationships(ctx context.Context) ([]entities.Relationship, error)

	// InsertRelationship inserts a new edge.
	InsertRelationship(ctx context.Context, rel *entities.Relationship) error

	// UpdateRelationshipType changes the type of an existing edge.
	UpdateRelationshipType(ctx context.Context, id string, relType entities.RelationType) error

	// DeleteRelationship deletes a single edge. The reciprocal edge is a
	// separate row and is not touched.
	DeleteRelationship(ctx context.Context, id string) error

	// Person-location operations

	// FindPersonLocationByRole finds a person's link for a role.
	FindPersonLocationByRole(ctx context.Context, personID string, role entities.LocationRole) (*entities.PersonLocation, error)

	// ListPersonLocations lists a person's links ordered by role.
	ListPersonLocations(ctx context.Context, personID string) ([]entities.PersonLocation, error)

	// InsertPersonLocation inserts a new person-location link.
	InsertPersonLocation(ctx context.Context, link *entities.PersonLocation) error

	// UpdatePersonLocation updates an existing link.
	UpdatePersonLocation(ctx context.Context, link *entities.PersonLocation) error

	// DeletePersonLocation deletes a link by ID. The location row survives.
	DeletePersonLocation(ctx context.Context, id string) error
}

// Store defines the interface for the relational storage collaborator.
// It exposes the same operations as Tx in autocommit mode plus schema
// management and the transaction boundary.
type Store interface {
	Tx

	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the database connection.
	Close() error

	// WithTx runs fn inside a single transaction. The transaction commits
	// when fn returns nil and rolls back when it returns an error, so all
	// writes issued through the Tx succeed together or not at all.
	WithTx(ctx context.Context, fn func(tx Tx) error) error
}
