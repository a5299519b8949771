// Package sqlite provides a SQLite implementation of the Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ersonp/kin-core/internal/domain/entities"
	"github.com/ersonp/kin-core/internal/domain/ports"
	"github.com/ersonp/kin-core/internal/infrastructure/config"
	sqlite3 "modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"
)

// querier abstracts *sql.DB and *sql.Tx so the same query code serves
// autocommit calls and transactional calls.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// queries implements ports.Tx against a querier.
type queries struct {
	q querier
}

// Repository implements ports.Store using SQLite.
type Repository struct {
	queries
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Pragmas are per-connection and :memory: databases are per-connection,
	// so keep the pool at a single connection.
	db.SetMaxOpenConns(1)

	// Enable foreign keys for referential integrity
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		queries: queries{q: db},
		db:      db,
		path:    cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Families (named surname groups; people reference them)
	CREATE TABLE IF NOT EXISTS families (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		description TEXT,
		created_at TIMESTAMP NOT NULL
	);

	-- People (optionally members of one family)
	CREATE TABLE IF NOT EXISTS people (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		birth_date TEXT,
		death_date TEXT,
		biography TEXT,
		family_id TEXT REFERENCES families(id) ON DELETE SET NULL,
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_people_family ON people(family_id);

	-- Locations (shared place records)
	CREATE TABLE IF NOT EXISTS locations (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		city TEXT,
		state TEXT,
		country TEXT,
		created_at TIMESTAMP NOT NULL
	);

	-- Relationship edges (each edge and its reciprocal are separate rows)
	CREATE TABLE IF NOT EXISTS relationships (
		id TEXT PRIMARY KEY,
		from_person_id TEXT NOT NULL REFERENCES people(id) ON DELETE CASCADE,
		to_person_id TEXT NOT NULL REFERENCES people(id) ON DELETE CASCADE,
		type TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		UNIQUE(from_person_id, to_person_id, type)
	);
	CREATE INDEX IF NOT EXISTS idx_relationships_from ON relationships(from_person_id);
	CREATE INDEX IF NOT EXISTS idx_relationships_to ON relationships(to_person_id);

	-- Person-location links (one row per person and role)
	CREATE TABLE IF NOT EXISTS person_locations (
		id TEXT PRIMARY KEY,
		person_id TEXT NOT NULL REFERENCES people(id) ON DELETE CASCADE,
		location_id TEXT NOT NULL REFERENCES locations(id) ON DELETE CASCADE,
		role TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		UNIQUE(person_id, role)
	);
	CREATE INDEX IF NOT EXISTS idx_person_locations_person ON person_locations(person_id);
	CREATE INDEX IF NOT EXISTS idx_person_locations_location ON person_locations(location_id);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// WithTx runs fn inside a single transaction, committing when fn returns
// nil and rolling back otherwise.
func (r *Repository) WithTx(ctx context.Context, fn func(tx ports.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if err := fn(&queries{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a UNIQUE or PRIMARY KEY
// constraint failure from the driver.
func isUniqueViolation(err error) bool {
	var se *sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == sqlitelib.SQLITE_CONSTRAINT_UNIQUE || se.Code() == sqlitelib.SQLITE_CONSTRAINT_PRIMARYKEY
}

// nullString maps an empty string to SQL NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Family operations

// FindFamily finds a family by its ID.
func (r *queries) FindFamily(ctx context.Context, id string) (*entities.Family, error) {
	query := `
		SELECT id, name, description, created_at
		FROM families
		WHERE id = ?
	`
	return r.scanFamilyRow(r.q.QueryRowContext(ctx, query, id))
}

// FindFamilyByName finds a family by its unique name.
func (r *queries) FindFamilyByName(ctx context.Context, name string) (*entities.Family, error) {
	query := `
		SELECT id, name, description, created_at
		FROM families
		WHERE name = ?
	`
	return r.scanFamilyRow(r.q.QueryRowContext(ctx, query, name))
}

func (r *queries) scanFamilyRow(row *sql.Row) (*entities.Family, error) {
	var family entities.Family
	var description sql.NullString

	err := row.Scan(&family.ID, &family.Name, &description, &family.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning family: %w", err)
	}
	family.Description = description.String
	return &family, nil
}

// ListFamilies lists all families ordered by name.
func (r *queries) ListFamilies(ctx context.Context) ([]entities.Family, error) {
	query := `
		SELECT id, name, description, created_at
		FROM families
		ORDER BY name ASC
	`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying families: %w", err)
	}
	defer rows.Close()

	families := make([]entities.Family, 0, 16)
	for rows.Next() {
		var family entities.Family
		var description sql.NullString
		if err := rows.Scan(&family.ID, &family.Name, &description, &family.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning family: %w", err)
		}
		family.Description = description.String
		families = append(families, family)
	}
	return families, rows.Err()
}

// InsertFamily inserts a new family.
func (r *queries) InsertFamily(ctx context.Context, family *entities.Family) error {
	query := `
		INSERT INTO families (id, name, description, created_at)
		VALUES (?, ?, ?, ?)
	`
	_, err := r.q.ExecContext(ctx, query,
		family.ID,
		family.Name,
		nullString(family.Description),
		family.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: family name %q", entities.ErrConflict, family.Name)
		}
		return fmt.Errorf("inserting family: %w", err)
	}
	return nil
}

// UpdateFamily updates an existing family.
func (r *queries) UpdateFamily(ctx context.Context, family *entities.Family) error {
	query := `
		UPDATE families
		SET name = ?, description = ?
		WHERE id = ?
	`
	result, err := r.q.ExecContext(ctx, query,
		family.Name,
		nullString(family.Description),
		family.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: family name %q", entities.ErrConflict, family.Name)
		}
		return fmt.Errorf("updating family: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: family %s", entities.ErrNotFound, family.ID)
	}
	return nil
}

// DeleteFamily deletes a family row.
func (r *queries) DeleteFamily(ctx context.Context, id string) error {
	query := `DELETE FROM families WHERE id = ?`
	if _, err := r.q.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting family: %w", err)
	}
	return nil
}

// DetachFamilyMembers clears the family reference of every member.
func (r *queries) DetachFamilyMembers(ctx context.Context, familyID string) error {
	query := `UPDATE people SET family_id = NULL WHERE family_id = ?`
	if _, err := r.q.ExecContext(ctx, query, familyID); err != nil {
		return fmt.Errorf("detaching family members: %w", err)
	}
	return nil
}

// ListFamilyMembers lists the people belonging to a family, ordered by
// last then first name.
func (r *queries) ListFamilyMembers(ctx context.Context, familyID string) ([]entities.Person, error) {
	query := `
		SELECT id, first_name, last_name, birth_date, death_date, biography, family_id, created_at
		FROM people
		WHERE family_id = ?
		ORDER BY last_name ASC, first_name ASC
	`
	rows, err := r.q.QueryContext(ctx, query, familyID)
	if err != nil {
		return nil, fmt.Errorf("querying family members: %w", err)
	}
	defer rows.Close()

	people := make([]entities.Person, 0, 8)
	for rows.Next() {
		var person entities.Person
		var birthDate, deathDate, biography, memberFamilyID sql.NullString
		if err := rows.Scan(
			&person.ID,
			&person.FirstName,
			&person.LastName,
			&birthDate,
			&deathDate,
			&biography,
			&memberFamilyID,
			&person.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning person: %w", err)
		}
		person.BirthDate = birthDate.String
		person.DeathDate = deathDate.String
		person.Biography = biography.String
		person.FamilyID = memberFamilyID.String
		people = append(people, person)
	}
	return people, rows.Err()
}

// Person operations

// FindPerson finds a person by ID.
func (r *queries) FindPerson(ctx context.Context, id string) (*entities.Person, error) {
	query := `
		SELECT id, first_name, last_name, birth_date, death_date, biography, family_id, created_at
		FROM people
		WHERE id = ?
	`
	row := r.q.QueryRowContext(ctx, query, id)

	var person entities.Person
	var birthDate, deathDate, biography, familyID sql.NullString

	err := row.Scan(
		&person.ID,
		&person.FirstName,
		&person.LastName,
		&birthDate,
		&deathDate,
		&biography,
		&familyID,
		&person.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning person: %w", err)
	}

	person.BirthDate = birthDate.String
	person.DeathDate = deathDate.String
	person.Biography = biography.String
	person.FamilyID = familyID.String
	return &person, nil
}

// ListPeople lists all people ordered by last then first name.
func (r *queries) ListPeople(ctx context.Context) ([]entities.Person, error) {
	query := `
		SELECT id, first_name, last_name, birth_date, death_date, biography, family_id, created_at
		FROM people
		ORDER BY last_name ASC, first_name ASC
	`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying people: %w", err)
	}
	defer rows.Close()

	people := make([]entities.Person, 0, 16)
	for rows.Next() {
		var person entities.Person
		var birthDate, deathDate, biography, familyID sql.NullString
		if err := rows.Scan(
			&person.ID,
			&person.FirstName,
			&person.LastName,
			&birthDate,
			&deathDate,
			&biography,
			&familyID,
			&person.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning person: %w", err)
		}
		person.BirthDate = birthDate.String
		person.DeathDate = deathDate.String
		person.Biography = biography.String
		person.FamilyID = familyID.String
		people = append(people, person)
	}
	return people, rows.Err()
}

// InsertPerson inserts a new person.
func (r *queries) InsertPerson(ctx context.Context, person *entities.Person) error {
	query := `
		INSERT INTO people (id, first_name, last_name, birth_date, death_date, biography, family_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.q.ExecContext(ctx, query,
		person.ID,
		person.FirstName,
		person.LastName,
		nullString(person.BirthDate),
		nullString(person.DeathDate),
		nullString(person.Biography),
		nullString(person.FamilyID),
		person.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: person %s", entities.ErrConflict, person.ID)
		}
		return fmt.Errorf("inserting person: %w", err)
	}
	return nil
}

// UpdatePerson updates an existing person.
func (r *queries) UpdatePerson(ctx context.Context, person *entities.Person) error {
	query := `
		UPDATE people
		SET first_name = ?, last_name = ?, birth_date = ?, death_date = ?, biography = ?, family_id = ?
		WHERE id = ?
	`
	result, err := r.q.ExecContext(ctx, query,
		person.FirstName,
		person.LastName,
		nullString(person.BirthDate),
		nullString(person.DeathDate),
		nullString(person.Biography),
		nullString(person.FamilyID),
		person.ID,
	)
	if err != nil {
		return fmt.Errorf("updating person: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: person %s", entities.ErrNotFound, person.ID)
	}
	return nil
}

// DeletePerson deletes a person. Relationship edges and person-location
// links go with them through the foreign key cascades.
func (r *queries) DeletePerson(ctx context.Context, id string) error {
	query := `DELETE FROM people WHERE id = ?`
	if _, err := r.q.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting person: %w", err)
	}
	return nil
}

// Location operations

// FindLocation finds a location by ID.
func (r *queries) FindLocation(ctx context.Context, id string) (*entities.Location, error) {
	query := `
		SELECT id, name, description, city, state, country, created_at
		FROM locations
		WHERE id = ?
	`
	row := r.q.QueryRowContext(ctx, query, id)

	var location entities.Location
	var description, city, state, country sql.NullString

	err := row.Scan(
		&location.ID,
		&location.Name,
		&description,
		&city,
		&state,
		&country,
		&location.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning location: %w", err)
	}

	location.Description = description.String
	location.City = city.String
	location.State = state.String
	location.Country = country.String
	return &location, nil
}

// ListLocations lists all locations ordered by name.
func (r *queries) ListLocations(ctx context.Context) ([]entities.Location, error) {
	query := `
		SELECT id, name, description, city, state, country, created_at
		FROM locations
		ORDER BY name ASC
	`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying locations: %w", err)
	}
	defer rows.Close()

	locations := make([]entities.Location, 0, 16)
	for rows.Next() {
		var location entities.Location
		var description, city, state, country sql.NullString
		if err := rows.Scan(
			&location.ID,
			&location.Name,
			&description,
			&city,
			&state,
			&country,
			&location.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning location: %w", err)
		}
		location.Description = description.String
		location.City = city.String
		location.State = state.String
		location.Country = country.String
		locations = append(locations, location)
	}
	return locations, rows.Err()
}

// InsertLocation inserts a new location.
func (r *queries) InsertLocation(ctx context.Context, location *entities.Location) error {
	query := `
		INSERT INTO locations (id, name, description, city, state, country, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.q.ExecContext(ctx, query,
		location.ID,
		location.Name,
		nullString(location.Description),
		nullString(location.City),
		nullString(location.State),
		nullString(location.Country),
		location.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: location %s", entities.ErrConflict, location.ID)
		}
		return fmt.Errorf("inserting location: %w", err)
	}
	return nil
}

// UpdateLocation updates an existing location.
func (r *queries) UpdateLocation(ctx context.Context, location *entities.Location) error {
	query := `
		UPDATE locations
		SET name = ?, description = ?, city = ?, state = ?, country = ?
		WHERE id = ?
	`
	result, err := r.q.ExecContext(ctx, query,
		location.Name,
		nullString(location.Description),
		nullString(location.City),
		nullString(location.State),
		nullString(location.Country),
		location.ID,
	)
	if err != nil {
		return fmt.Errorf("updating location: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: location %s", entities.ErrNotFound, location.ID)
	}
	return nil
}

// DeleteLocation deletes a location. Person-location links referencing it
// go with it through the foreign key cascade.
func (r *queries) DeleteLocation(ctx context.Context, id string) error {
	query := `DELETE FROM locations WHERE id = ?`
	if _, err := r.q.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting location: %w", err)
	}
	return nil
}

// Relationship operations

// FindRelationship finds a relationship edge by ID.
func (r *queries) FindRelationship(ctx context.Context, id string) (*entities.Relationship, error) {
	query := `
		SELECT id, from_person_id, to_person_id, type, created_at
		FROM relationships
		WHERE id = ?
	`
	return r.scanRelationshipRow(r.q.QueryRowContext(ctx, query, id))
}

// FindRelationshipByKey finds an edge by its composite key.
func (r *queries) FindRelationshipByKey(ctx context.Context, fromID, toID string, relType entities.RelationType) (*entities.Relationship, error) {
	query := `
		SELECT id, from_person_id, to_person_id, type, created_at
		FROM relationships
		WHERE from_person_id = ? AND to_person_id = ? AND type = ?
	`
	return r.scanRelationshipRow(r.q.QueryRowContext(ctx, query, fromID, toID, string(relType)))
}

func (r *queries) scanRelationshipRow(row *sql.Row) (*entities.Relationship, error) {
	var rel entities.Relationship
	var relType string

	err := row.Scan(&rel.ID, &rel.FromPersonID, &rel.ToPersonID, &relType, &rel.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning relationship: %w", err)
	}

	rel.Type = entities.RelationType(relType)
	return &rel, nil
}

// ListRelationships lists all relationship edges.
func (r *queries) ListRelationships(ctx context.Context) ([]entities.Relationship, error) {
	query := `
		SELECT id, from_person_id, to_person_id, type, created_at
		FROM relationships
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying relationships: %w", err)
	}
	defer rows.Close()

	relationships := make([]entities.Relationship, 0, 16)
	for rows.Next() {
		var rel entities.Relationship
		var relType string
		if err := rows.Scan(&rel.ID, &rel.FromPersonID, &rel.ToPersonID, &relType, &rel.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning relationship: %w", err)
		}
		rel.Type = entities.RelationType(relType)
		relationships = append(relationships, rel)
	}
	return relationships, rows.Err()
}

// InsertRelationship inserts a new edge. The composite key is enforced by
// the UNIQUE constraint; a violation surfaces as a conflict.
func (r *queries) InsertRelationship(ctx context.Context, rel *entities.Relationship) error {
	query := `
		INSERT INTO relationships (id, from_person_id, to_person_id, type, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.q.ExecContext(ctx, query,
		rel.ID,
		rel.FromPersonID,
		rel.ToPersonID,
		string(rel.Type),
		rel.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: relationship %s -[%s]-> %s", entities.ErrConflict, rel.FromPersonID, rel.Type, rel.ToPersonID)
		}
		return fmt.Errorf("inserting relationship: %w", err)
	}
	return nil
}

// UpdateRelationshipType changes the type of an existing edge.
func (r *queries) UpdateRelationshipType(ctx context.Context, id string, relType entities.RelationType) error {
	query := `UPDATE relationships SET type = ? WHERE id = ?`
	result, err := r.q.ExecContext(ctx, query, string(relType), id)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: relationship type %s", entities.ErrConflict, relType)
		}
		return fmt.Errorf("updating relationship type: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: relationship %s", entities.ErrNotFound, id)
	}
	return nil
}

// DeleteRelationship deletes a single edge.
func (r *queries) DeleteRelationship(ctx context.Context, id string) error {
	query := `DELETE FROM relationships WHERE id = ?`
	if _, err := r.q.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting relationship: %w", err)
	}
	return nil
}

// Person-location operations

// FindPersonLocationByRole finds a person's link for a role.
func (r *queries) FindPersonLocationByRole(ctx context.Context, personID string, role entities.LocationRole) (*entities.PersonLocation, error) {
	query := `
		SELECT id, person_id, location_id, role, created_at
		FROM person_locations
		WHERE person_id = ? AND role = ?
	`
	row := r.q.QueryRowContext(ctx, query, personID, string(role))

	var link entities.PersonLocation
	var linkRole string

	err := row.Scan(&link.ID, &link.PersonID, &link.LocationID, &linkRole, &link.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning person location: %w", err)
	}

	link.Role = entities.LocationRole(linkRole)
	return &link, nil
}

// ListPersonLocations lists a person's links ordered by role.
func (r *queries) ListPersonLocations(ctx context.Context, personID string) ([]entities.PersonLocation, error) {
	query := `
		SELECT id, person_id, location_id, role, created_at
		FROM person_locations
		WHERE person_id = ?
		ORDER BY role ASC
	`
	rows, err := r.q.QueryContext(ctx, query, personID)
	if err != nil {
		return nil, fmt.Errorf("querying person locations: %w", err)
	}
	defer rows.Close()

	links := make([]entities.PersonLocation, 0, 4)
	for rows.Next() {
		var link entities.PersonLocation
		var role string
		if err := rows.Scan(&link.ID, &link.PersonID, &link.LocationID, &role, &link.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning person location: %w", err)
		}
		link.Role = entities.LocationRole(role)
		links = append(links, link)
	}
	return links, rows.Err()
}

// InsertPersonLocation inserts a new link. One row per person and role is
// enforced by the UNIQUE constraint.
func (r *queries) InsertPersonLocation(ctx context.Context, link *entities.PersonLocation) error {
	query := `
		INSERT INTO person_locations (id, person_id, location_id, role, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.q.ExecContext(ctx, query,
		link.ID,
		link.PersonID,
		link.LocationID,
		string(link.Role),
		link.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: person %s already has a %s location", entities.ErrConflict, link.PersonID, link.Role)
		}
		return fmt.Errorf("inserting person location: %w", err)
	}
	return nil
}

// UpdatePersonLocation updates an existing link.
func (r *queries) UpdatePersonLocation(ctx context.Context, link *entities.PersonLocation) error {
	query := `
		UPDATE person_locations
		SET location_id = ?, role = ?
		WHERE id = ?
	`
	result, err := r.q.ExecContext(ctx, query,
		link.LocationID,
		string(link.Role),
		link.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: person %s already has a %s location", entities.ErrConflict, link.PersonID, link.Role)
		}
		return fmt.Errorf("updating person location: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: person location %s", entities.ErrNotFound, link.ID)
	}
	return nil
}

// DeletePersonLocation deletes a link by ID.
func (r *queries) DeletePersonLocation(ctx context.Context, id string) error {
	query := `DELETE FROM person_locations WHERE id = ?`
	if _, err := r.q.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting person location: %w", err)
	}
	return nil
}
