package services

import (
	"context"
	"fmt"

	"github.com/ersonp/kin-core/internal/domain/entities"
	"github.com/ersonp/kin-core/internal/domain/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PersonInput carries the fields for creating a person. Locations, when
// present, are applied through the location synchronizer inside the same
// transaction as the insert. At most one of FamilyID or NewFamily may be
// set: a reference to an existing family, or an inline spec for a family
// created in the same transaction as the person.
type PersonInput struct {
	FirstName string
	LastName  string
	BirthDate string
	DeathDate string
	Biography string
	FamilyID  string
	NewFamily *entities.FamilySpec
	Locations []entities.LocationAssignment
}

// PersonUpdate carries a partial update. Nil fields are left untouched;
// a non-nil empty FamilyID detaches the person from their family. A nil
// Locations slice leaves links alone, a non-nil one re-syncs them.
type PersonUpdate struct {
	FirstName     *string
	LastName      *string
	BirthDate     *string
	DeathDate     *string
	Biography     *string
	FamilyID      *string
	Locations     []entities.LocationAssignment
	SyncLocations bool
}

// PersonLocationDetail pairs a role with the full location record.
type PersonLocationDetail struct {
	Role     entities.LocationRole `json:"role"`
	Location entities.Location     `json:"location"`
}

// PersonDetail is a person together with their role-scoped location links.
type PersonDetail struct {
	entities.Person
	Locations []PersonLocationDetail `json:"locations"`
}

// PersonService manages people, their family membership, and their initial
// location assignments.
type PersonService struct {
	store     ports.Store
	locations *LocationSyncService
	log       *zap.Logger
}

// NewPersonService creates a new PersonService.
func NewPersonService(store ports.Store, locations *LocationSyncService, log *zap.Logger) *PersonService {
	return &PersonService{
		store:     store,
		locations: locations,
		log:       log,
	}
}

// Create inserts a person. The family reference, when set, must resolve.
// Location assignments are synced inside the same transaction so a bad
// assignment leaves no person behind.
func (s *PersonService) Create(ctx context.Context, in PersonInput) (*PersonDetail, error) {
	if in.FirstName == "" || in.LastName == "" {
		return nil, fmt.Errorf("%w: first and last name are required", entities.ErrValidation)
	}
	for _, d := range []string{in.BirthDate, in.DeathDate} {
		if err := entities.ValidateDate(d); err != nil {
			return nil, err
		}
	}
	if err := validateAssignments(in.Locations); err != nil {
		return nil, err
	}
	if in.FamilyID != "" && in.NewFamily != nil {
		return nil, fmt.Errorf("%w: provide either family_id or family, not both", entities.ErrValidation)
	}
	if in.NewFamily != nil && in.NewFamily.Name == "" {
		return nil, fmt.Errorf("%w: family name is required", entities.ErrValidation)
	}

	person := &entities.Person{
		ID:        uuid.New().String(),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		BirthDate: in.BirthDate,
		DeathDate: in.DeathDate,
		Biography: in.Biography,
		FamilyID:  in.FamilyID,
		CreatedAt: timeNow(),
	}
	err := s.store.WithTx(ctx, func(tx ports.Tx) error {
		if in.FamilyID != "" {
			family, err := tx.FindFamily(ctx, in.FamilyID)
			if err != nil {
				return fmt.Errorf("finding family: %w", err)
			}
			if family == nil {
				return fmt.Errorf("%w: family %s", entities.ErrNotFound, in.FamilyID)
			}
		}
		if in.NewFamily != nil {
			existing, err := tx.FindFamilyByName(ctx, in.NewFamily.Name)
			if err != nil {
				return fmt.Errorf("checking family name: %w", err)
			}
			if existing != nil {
				return fmt.Errorf("%w: family name %q already exists", entities.ErrConflict, in.NewFamily.Name)
			}
			family := &entities.Family{
				ID:          uuid.New().String(),
				Name:        in.NewFamily.Name,
				Description: in.NewFamily.Description,
				CreatedAt:   timeNow(),
			}
			if err := tx.InsertFamily(ctx, family); err != nil {
				return fmt.Errorf("inserting family: %w", err)
			}
			person.FamilyID = family.ID
		}
		if err := tx.InsertPerson(ctx, person); err != nil {
			return fmt.Errorf("inserting person: %w", err)
		}
		if len(in.Locations) > 0 {
			if _, err := s.locations.applyTx(ctx, tx, person.ID, in.Locations); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, person.ID)
}

// Get returns a person with their location links resolved.
func (s *PersonService) Get(ctx context.Context, id string) (*PersonDetail, error) {
	person, err := s.store.FindPerson(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding person: %w", err)
	}
	if person == nil {
		return nil, fmt.Errorf("%w: person %s", entities.ErrNotFound, id)
	}
	detail, err := s.buildDetail(ctx, *person)
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// List returns all people with their location links resolved.
func (s *PersonService) List(ctx context.Context) ([]PersonDetail, error) {
	people, err := s.store.ListPeople(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing people: %w", err)
	}
	result := make([]PersonDetail, 0, len(people))
	for _, person := range people {
		detail, err := s.buildDetail(ctx, person)
		if err != nil {
			return nil, err
		}
		result = append(result, *detail)
	}
	return result, nil
}

// Update applies a partial update. When upd syncs locations, the sync runs
// in the same transaction as the field update.
func (s *PersonService) Update(ctx context.Context, id string, upd PersonUpdate) (*PersonDetail, error) {
	for _, d := range []*string{upd.BirthDate, upd.DeathDate} {
		if d != nil {
			if err := entities.ValidateDate(*d); err != nil {
				return nil, err
			}
		}
	}
	if upd.SyncLocations {
		if err := validateAssignments(upd.Locations); err != nil {
			return nil, err
		}
	}

	err := s.store.WithTx(ctx, func(tx ports.Tx) error {
		person, err := tx.FindPerson(ctx, id)
		if err != nil {
			return fmt.Errorf("finding person: %w", err)
		}
		if person == nil {
			return fmt.Errorf("%w: person %s", entities.ErrNotFound, id)
		}

		if upd.FirstName != nil {
			person.FirstName = *upd.FirstName
		}
		if upd.LastName != nil {
			person.LastName = *upd.LastName
		}
		if upd.BirthDate != nil {
			person.BirthDate = *upd.BirthDate
		}
		if upd.DeathDate != nil {
			person.DeathDate = *upd.DeathDate
		}
		if upd.Biography != nil {
			person.Biography = *upd.Biography
		}
		if upd.FamilyID != nil {
			if *upd.FamilyID != "" {
				family, err := tx.FindFamily(ctx, *upd.FamilyID)
				if err != nil {
					return fmt.Errorf("finding family: %w", err)
				}
				if family == nil {
					return fmt.Errorf("%w: family %s", entities.ErrNotFound, *upd.FamilyID)
				}
			}
			person.FamilyID = *upd.FamilyID
		}
		if person.FirstName == "" || person.LastName == "" {
			return fmt.Errorf("%w: first and last name are required", entities.ErrValidation)
		}

		if err := tx.UpdatePerson(ctx, person); err != nil {
			return fmt.Errorf("updating person: %w", err)
		}

		if upd.SyncLocations {
			if _, err := s.locations.applyTx(ctx, tx, id, upd.Locations); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes a person. Their relationship edges and location links go
// with them; location records survive.
func (s *PersonService) Delete(ctx context.Context, id string) error {
	return s.store.WithTx(ctx, func(tx ports.Tx) error {
		person, err := tx.FindPerson(ctx, id)
		if err != nil {
			return fmt.Errorf("finding person: %w", err)
		}
		if person == nil {
			return fmt.Errorf("%w: person %s", entities.ErrNotFound, id)
		}
		if err := tx.DeletePerson(ctx, id); err != nil {
			return fmt.Errorf("deleting person: %w", err)
		}
		return nil
	})
}

// buildDetail resolves a person's location links into full records.
func (s *PersonService) buildDetail(ctx context.Context, person entities.Person) (*PersonDetail, error) {
	return resolvePersonDetail(ctx, s.store, s.log, person)
}

// resolvePersonDetail resolves a person's location links into full records.
// It is shared with the family service, which embeds member details in
// family reads.
func resolvePersonDetail(ctx context.Context, q ports.Tx, log *zap.Logger, person entities.Person) (*PersonDetail, error) {
	links, err := q.ListPersonLocations(ctx, person.ID)
	if err != nil {
		return nil, fmt.Errorf("listing person locations: %w", err)
	}

	detail := &PersonDetail{
		Person:    person,
		Locations: make([]PersonLocationDetail, 0, len(links)),
	}
	for _, link := range links {
		location, err := q.FindLocation(ctx, link.LocationID)
		if err != nil {
			return nil, fmt.Errorf("finding location: %w", err)
		}
		if location == nil {
			// Dangling link; surface the role without a record rather
			// than failing the read.
			log.Warn("person location references missing location",
				zap.String("person_id", person.ID),
				zap.String("location_id", link.LocationID),
			)
			continue
		}
		detail.Locations = append(detail.Locations, PersonLocationDetail{
			Role:     link.Role,
			Location: *location,
		})
	}
	return detail, nil
}
