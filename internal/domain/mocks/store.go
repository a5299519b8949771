package mocks

import (
	"context"
	"fmt"
	"sort"

	"github.com/ersonp/kin-core/internal/domain/entities"
	"github.com/ersonp/kin-core/internal/domain/ports"
)

// Store is an in-memory implementation of ports.Store for tests. It
// enforces the same uniqueness constraints and deletion cascades as the
// SQLite store, and WithTx snapshots all tables so a failing function
// observes real rollback semantics.
type Store struct {
	Families        map[string]*entities.Family
	People          map[string]*entities.Person
	Locations       map[string]*entities.Location
	Relationships   map[string]*entities.Relationship
	PersonLocations map[string]*entities.PersonLocation

	// Err, when set, is returned by every operation.
	Err error
}

// NewStore creates a new mock Store.
func NewStore() *Store {
	return &Store{
		Families:        make(map[string]*entities.Family),
		People:          make(map[string]*entities.Person),
		Locations:       make(map[string]*entities.Location),
		Relationships:   make(map[string]*entities.Relationship),
		PersonLocations: make(map[string]*entities.PersonLocation),
	}
}

// EnsureSchema creates the database schema if it doesn't exist.
func (m *Store) EnsureSchema(_ context.Context) error {
	return m.Err
}

// Close closes the database connection.
func (m *Store) Close() error {
	return nil
}

// WithTx runs fn against the store, restoring the previous state when fn
// returns an error.
func (m *Store) WithTx(_ context.Context, fn func(tx ports.Tx) error) error {
	if m.Err != nil {
		return m.Err
	}

	families := cloneMap(m.Families)
	people := cloneMap(m.People)
	locations := cloneMap(m.Locations)
	relationships := cloneMap(m.Relationships)
	personLocations := cloneMap(m.PersonLocations)

	if err := fn(m); err != nil {
		m.Families = families
		m.People = people
		m.Locations = locations
		m.Relationships = relationships
		m.PersonLocations = personLocations
		return err
	}
	return nil
}

func cloneMap[T any](src map[string]*T) map[string]*T {
	dst := make(map[string]*T, len(src))
	for k, v := range src {
		clone := *v
		dst[k] = &clone
	}
	return dst
}

// Family operations

// FindFamily finds a family by its ID.
func (m *Store) FindFamily(_ context.Context, id string) (*entities.Family, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	f, ok := m.Families[id]
	if !ok {
		return nil, nil
	}
	clone := *f
	return &clone, nil
}

// FindFamilyByName finds a family by its unique name.
func (m *Store) FindFamilyByName(_ context.Context, name string) (*entities.Family, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, f := range m.Families {
		if f.Name == name {
			clone := *f
			return &clone, nil
		}
	}
	return nil, nil
}

// ListFamilies lists all families ordered by name.
func (m *Store) ListFamilies(_ context.Context) ([]entities.Family, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.Family, 0, len(m.Families))
	for _, f := range m.Families {
		result = append(result, *f)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// InsertFamily inserts a new family.
func (m *Store) InsertFamily(_ context.Context, family *entities.Family) error {
	if m.Err != nil {
		return m.Err
	}
	if _, exists := m.Families[family.ID]; exists {
		return fmt.Errorf("%w: family %s", entities.ErrConflict, family.ID)
	}
	for _, f := range m.Families {
		if f.Name == family.Name {
			return fmt.Errorf("%w: family name %q", entities.ErrConflict, family.Name)
		}
	}
	clone := *family
	m.Families[family.ID] = &clone
	return nil
}

// UpdateFamily updates an existing family.
func (m *Store) UpdateFamily(_ context.Context, family *entities.Family) error {
	if m.Err != nil {
		return m.Err
	}
	if _, exists := m.Families[family.ID]; !exists {
		return fmt.Errorf("%w: family %s", entities.ErrNotFound, family.ID)
	}
	for id, f := range m.Families {
		if id != family.ID && f.Name == family.Name {
			return fmt.Errorf("%w: family name %q", entities.ErrConflict, family.Name)
		}
	}
	clone := *family
	m.Families[family.ID] = &clone
	return nil
}

// DeleteFamily deletes a family row. It does not touch members.
func (m *Store) DeleteFamily(_ context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	delete(m.Families, id)
	return nil
}

// DetachFamilyMembers clears the family reference of every member.
func (m *Store) DetachFamilyMembers(_ context.Context, familyID string) error {
	if m.Err != nil {
		return m.Err
	}
	for _, p := range m.People {
		if p.FamilyID == familyID {
			p.FamilyID = ""
		}
	}
	return nil
}

// ListFamilyMembers lists the people belonging to a family, ordered by
// last then first name.
func (m *Store) ListFamilyMembers(_ context.Context, familyID string) ([]entities.Person, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.Person, 0, 8)
	for _, p := range m.People {
		if p.FamilyID == familyID {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].LastName != result[j].LastName {
			return result[i].LastName < result[j].LastName
		}
		return result[i].FirstName < result[j].FirstName
	})
	return result, nil
}

// Person operations

// FindPerson finds a person by ID.
func (m *Store) FindPerson(_ context.Context, id string) (*entities.Person, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.People[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

// ListPeople lists all people ordered by last then first name.
func (m *Store) ListPeople(_ context.Context) ([]entities.Person, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.Person, 0, len(m.People))
	for _, p := range m.People {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].LastName != result[j].LastName {
			return result[i].LastName < result[j].LastName
		}
		return result[i].FirstName < result[j].FirstName
	})
	return result, nil
}

// InsertPerson inserts a new person.
func (m *Store) InsertPerson(_ context.Context, person *entities.Person) error {
	if m.Err != nil {
		return m.Err
	}
	if _, exists := m.People[person.ID]; exists {
		return fmt.Errorf("%w: person %s", entities.ErrConflict, person.ID)
	}
	clone := *person
	m.People[person.ID] = &clone
	return nil
}

// UpdatePerson updates an existing person.
func (m *Store) UpdatePerson(_ context.Context, person *entities.Person) error {
	if m.Err != nil {
		return m.Err
	}
	if _, exists := m.People[person.ID]; !exists {
		return fmt.Errorf("%w: person %s", entities.ErrNotFound, person.ID)
	}
	clone := *person
	m.People[person.ID] = &clone
	return nil
}

// DeletePerson deletes a person together with their relationship edges and
// person-location links, matching the SQLite foreign key cascades.
func (m *Store) DeletePerson(_ context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	delete(m.People, id)
	for relID, rel := range m.Relationships {
		if rel.FromPersonID == id || rel.ToPersonID == id {
			delete(m.Relationships, relID)
		}
	}
	for linkID, link := range m.PersonLocations {
		if link.PersonID == id {
			delete(m.PersonLocations, linkID)
		}
	}
	return nil
}

// Location operations

// FindLocation finds a location by ID.
func (m *Store) FindLocation(_ context.Context, id string) (*entities.Location, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	l, ok := m.Locations[id]
	if !ok {
		return nil, nil
	}
	clone := *l
	return &clone, nil
}

// ListLocations lists all locations ordered by name.
func (m *Store) ListLocations(_ context.Context) ([]entities.Location, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.Location, 0, len(m.Locations))
	for _, l := range m.Locations {
		result = append(result, *l)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// InsertLocation inserts a new location.
func (m *Store) InsertLocation(_ context.Context, location *entities.Location) error {
	if m.Err != nil {
		return m.Err
	}
	if _, exists := m.Locations[location.ID]; exists {
		return fmt.Errorf("%w: location %s", entities.ErrConflict, location.ID)
	}
	clone := *location
	m.Locations[location.ID] = &clone
	return nil
}

// UpdateLocation updates an existing location.
func (m *Store) UpdateLocation(_ context.Context, location *entities.Location) error {
	if m.Err != nil {
		return m.Err
	}
	if _, exists := m.Locations[location.ID]; !exists {
		return fmt.Errorf("%w: location %s", entities.ErrNotFound, location.ID)
	}
	clone := *location
	m.Locations[location.ID] = &clone
	return nil
}

// DeleteLocation deletes a location and the person-location links that
// reference it.
func (m *Store) DeleteLocation(_ context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	delete(m.Locations, id)
	for linkID, link := range m.PersonLocations {
		if link.LocationID == id {
			delete(m.PersonLocations, linkID)
		}
	}
	return nil
}

// Relationship operations

// FindRelationship finds a relationship edge by ID.
func (m *Store) FindRelationship(_ context.Context, id string) (*entities.Relationship, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	rel, ok := m.Relationships[id]
	if !ok {
		return nil, nil
	}
	clone := *rel
	return &clone, nil
}

// FindRelationshipByKey finds an edge by its composite key.
func (m *Store) FindRelationshipByKey(_ context.Context, fromID, toID string, relType entities.RelationType) (*entities.Relationship, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, rel := range m.Relationships {
		if rel.FromPersonID == fromID && rel.ToPersonID == toID && rel.Type == relType {
			clone := *rel
			return &clone, nil
		}
	}
	return nil, nil
}

// ListRelationships lists all relationship edges.
func (m *Store) ListRelationships(_ context.Context) ([]entities.Relationship, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.Relationship, 0, len(m.Relationships))
	for _, rel := range m.Relationships {
		result = append(result, *rel)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// InsertRelationship inserts a new edge, enforcing the composite key.
func (m *Store) InsertRelationship(_ context.Context, rel *entities.Relationship) error {
	if m.Err != nil {
		return m.Err
	}
	for _, existing := range m.Relationships {
		if existing.FromPersonID == rel.FromPersonID && existing.ToPersonID == rel.ToPersonID && existing.Type == rel.Type {
			return fmt.Errorf("%w: relationship %s -[%s]-> %s", entities.ErrConflict, rel.FromPersonID, rel.Type, rel.ToPersonID)
		}
	}
	clone := *rel
	m.Relationships[rel.ID] = &clone
	return nil
}

// UpdateRelationshipType changes the type of an existing edge, enforcing
// the composite key.
func (m *Store) UpdateRelationshipType(_ context.Context, id string, relType entities.RelationType) error {
	if m.Err != nil {
		return m.Err
	}
	rel, ok := m.Relationships[id]
	if !ok {
		return fmt.Errorf("%w: relationship %s", entities.ErrNotFound, id)
	}
	for otherID, other := range m.Relationships {
		if otherID != id && other.FromPersonID == rel.FromPersonID && other.ToPersonID == rel.ToPersonID && other.Type == relType {
			return fmt.Errorf("%w: relationship %s -[%s]-> %s", entities.ErrConflict, rel.FromPersonID, relType, rel.ToPersonID)
		}
	}
	rel.Type = relType
	return nil
}

// DeleteRelationship deletes a single edge.
func (m *Store) DeleteRelationship(_ context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	delete(m.Relationships, id)
	return nil
}

// Person-location operations

// FindPersonLocationByRole finds a person's link for a role.
func (m *Store) FindPersonLocationByRole(_ context.Context, personID string, role entities.LocationRole) (*entities.PersonLocation, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, link := range m.PersonLocations {
		if link.PersonID == personID && link.Role == role {
			clone := *link
			return &clone, nil
		}
	}
	return nil, nil
}

// ListPersonLocations lists a person's links ordered by role.
func (m *Store) ListPersonLocations(_ context.Context, personID string) ([]entities.PersonLocation, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.PersonLocation, 0, 4)
	for _, link := range m.PersonLocations {
		if link.PersonID == personID {
			result = append(result, *link)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Role < result[j].Role })
	return result, nil
}

// InsertPersonLocation inserts a new link, enforcing one row per role.
func (m *Store) InsertPersonLocation(_ context.Context, link *entities.PersonLocation) error {
	if m.Err != nil {
		return m.Err
	}
	for _, existing := range m.PersonLocations {
		if existing.PersonID == link.PersonID && existing.Role == link.Role {
			return fmt.Errorf("%w: person %s already has a %s location", entities.ErrConflict, link.PersonID, link.Role)
		}
	}
	clone := *link
	m.PersonLocations[link.ID] = &clone
	return nil
}

// UpdatePersonLocation updates an existing link.
func (m *Store) UpdatePersonLocation(_ context.Context, link *entities.PersonLocation) error {
	if m.Err != nil {
		return m.Err
	}
	if _, exists := m.PersonLocations[link.ID]; !exists {
		return fmt.Errorf("%w: person location %s", entities.ErrNotFound, link.ID)
	}
	clone := *link
	m.PersonLocations[link.ID] = &clone
	return nil
}

// DeletePersonLocation deletes a link by ID.
func (m *Store) DeletePersonLocation(_ context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	delete(m.PersonLocations, id)
	return nil
}
