package services

import (
	"context"
	"fmt"

	"github.com/ersonp/kin-core/internal/domain/entities"
	"github.com/ersonp/kin-core/internal/domain/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LocationSyncService reconciles a person's role-scoped location links
// against a desired assignment list: roles absent from the list are
// removed, the rest are upserted. Locations referenced by removed links
// are never deleted.
type LocationSyncService struct {
	store ports.Store
	log   *zap.Logger
}

// NewLocationSyncService creates a new LocationSyncService.
func NewLocationSyncService(store ports.Store, log *zap.Logger) *LocationSyncService {
	return &LocationSyncService{
		store: store,
		log:   log,
	}
}

// syncPlan is the outcome of diffing current links against desired
// assignments. Computing it is pure so the reconciliation logic is
// testable without a store.
type syncPlan struct {
	toRemove []entities.PersonLocation
	toUpsert []entities.LocationAssignment
}

// planSync computes which current links to remove and which assignments to
// upsert. Removal is by role: any current link whose role is not desired
// goes; every desired assignment is upserted.
func planSync(current []entities.PersonLocation, desired []entities.LocationAssignment) syncPlan {
	keep := make(map[entities.LocationRole]bool, len(desired))
	for _, a := range desired {
		keep[a.Role] = true
	}

	var plan syncPlan
	for _, link := range current {
		if !keep[link.Role] {
			plan.toRemove = append(plan.toRemove, link)
		}
	}
	plan.toUpsert = desired
	return plan
}

// validateAssignments rejects duplicate roles and malformed entries before
// any write happens.
func validateAssignments(assignments []entities.LocationAssignment) error {
	seen := make(map[entities.LocationRole]bool, len(assignments))
	for _, a := range assignments {
		if seen[a.Role] {
			return fmt.Errorf("%w: duplicate location role %q", entities.ErrValidation, a.Role)
		}
		seen[a.Role] = true

		hasRef := a.LocationID != ""
		hasInline := a.NewLocation != nil
		if hasRef == hasInline {
			return fmt.Errorf("%w: assignment for role %q needs exactly one of location_id or new_location", entities.ErrValidation, a.Role)
		}
		if hasInline && a.NewLocation.Name == "" {
			return fmt.Errorf("%w: inline location for role %q needs a name", entities.ErrValidation, a.Role)
		}
	}
	return nil
}

// Apply makes the person's stored links match assignments exactly, inside
// one transaction. It returns the person's final links. Re-applying the
// same list of by-ID assignments is idempotent; inline specs create a
// fresh location row on every call since they carry no dedup key.
func (s *LocationSyncService) Apply(ctx context.Context, personID string, assignments []entities.LocationAssignment) ([]entities.PersonLocation, error) {
	if err := validateAssignments(assignments); err != nil {
		return nil, err
	}

	var result []entities.PersonLocation
	err := s.store.WithTx(ctx, func(tx ports.Tx) error {
		person, err := tx.FindPerson(ctx, personID)
		if err != nil {
			return fmt.Errorf("finding person: %w", err)
		}
		if person == nil {
			return fmt.Errorf("%w: person %s", entities.ErrNotFound, personID)
		}

		links, err := s.applyTx(ctx, tx, personID, assignments)
		if err != nil {
			return err
		}
		result = links
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// applyTx runs the reconciliation inside a caller-owned transaction. The
// caller is responsible for validating the person and the assignment list.
func (s *LocationSyncService) applyTx(ctx context.Context, tx ports.Tx, personID string, assignments []entities.LocationAssignment) ([]entities.PersonLocation, error) {
	current, err := tx.ListPersonLocations(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("listing person locations: %w", err)
	}

	plan := planSync(current, assignments)

	for _, link := range plan.toRemove {
		if err := tx.DeletePersonLocation(ctx, link.ID); err != nil {
			return nil, fmt.Errorf("removing person location: %w", err)
		}
	}

	for _, a := range plan.toUpsert {
		location, err := s.resolveLocation(ctx, tx, a)
		if err != nil {
			return nil, err
		}

		existing, err := tx.FindPersonLocationByRole(ctx, personID, a.Role)
		if err != nil {
			return nil, fmt.Errorf("finding person location: %w", err)
		}
		if existing == nil {
			link := &entities.PersonLocation{
				ID:         uuid.New().String(),
				PersonID:   personID,
				LocationID: location.ID,
				Role:       a.Role,
				CreatedAt:  timeNow(),
			}
			if err := tx.InsertPersonLocation(ctx, link); err != nil {
				return nil, fmt.Errorf("inserting person location: %w", err)
			}
		} else {
			existing.LocationID = location.ID
			if err := tx.UpdatePersonLocation(ctx, existing); err != nil {
				return nil, fmt.Errorf("updating person location: %w", err)
			}
		}
	}

	return tx.ListPersonLocations(ctx, personID)
}

// resolveLocation returns the target location for an assignment, creating
// it when the assignment carries an inline spec.
func (s *LocationSyncService) resolveLocation(ctx context.Context, tx ports.Tx, a entities.LocationAssignment) (*entities.Location, error) {
	if a.NewLocation != nil {
		location := &entities.Location{
			ID:          uuid.New().String(),
			Name:        a.NewLocation.Name,
			Description: a.NewLocation.Description,
			City:        a.NewLocation.City,
			State:       a.NewLocation.State,
			Country:     a.NewLocation.Country,
			CreatedAt:   timeNow(),
		}
		if err := tx.InsertLocation(ctx, location); err != nil {
			return nil, fmt.Errorf("creating inline location: %w", err)
		}
		s.log.Debug("created inline location",
			zap.String("location_id", location.ID),
			zap.String("name", location.Name),
		)
		return location, nil
	}

	location, err := tx.FindLocation(ctx, a.LocationID)
	if err != nil {
		return nil, fmt.Errorf("finding location: %w", err)
	}
	if location == nil {
		return nil, fmt.Errorf("%w: location %s", entities.ErrNotFound, a.LocationID)
	}
	return location, nil
}
