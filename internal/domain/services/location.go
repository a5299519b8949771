package services

import (
	"context"
	"fmt"

	"github.com/ersonp/kin-core/internal/domain/entities"
	"github.com/ersonp/kin-core/internal/domain/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LocationUpdate carries a partial location update. Nil fields are left
// untouched.
type LocationUpdate struct {
	Name        *string
	Description *string
	City        *string
	State       *string
	Country     *string
}

// LocationService manages standalone location records. Locations are
// shared; deleting one removes the links pointing at it but never touches
// people.
type LocationService struct {
	store ports.Store
	log   *zap.Logger
}

// NewLocationService creates a new LocationService.
func NewLocationService(store ports.Store, log *zap.Logger) *LocationService {
	return &LocationService{
		store: store,
		log:   log,
	}
}

// Create inserts a new location from a spec.
func (s *LocationService) Create(ctx context.Context, spec entities.LocationSpec) (*entities.Location, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("%w: location name is required", entities.ErrValidation)
	}

	location := &entities.Location{
		ID:          uuid.New().String(),
		Name:        spec.Name,
		Description: spec.Description,
		City:        spec.City,
		State:       spec.State,
		Country:     spec.Country,
		CreatedAt:   timeNow(),
	}
	if err := s.store.InsertLocation(ctx, location); err != nil {
		return nil, fmt.Errorf("inserting location: %w", err)
	}
	return location, nil
}

// Get returns a location by ID.
func (s *LocationService) Get(ctx context.Context, id string) (*entities.Location, error) {
	location, err := s.store.FindLocation(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding location: %w", err)
	}
	if location == nil {
		return nil, fmt.Errorf("%w: location %s", entities.ErrNotFound, id)
	}
	return location, nil
}

// List returns all locations.
func (s *LocationService) List(ctx context.Context) ([]entities.Location, error) {
	locations, err := s.store.ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing locations: %w", err)
	}
	return locations, nil
}

// Update applies a partial update.
func (s *LocationService) Update(ctx context.Context, id string, upd LocationUpdate) (*entities.Location, error) {
	var updated *entities.Location
	err := s.store.WithTx(ctx, func(tx ports.Tx) error {
		location, err := tx.FindLocation(ctx, id)
		if err != nil {
			return fmt.Errorf("finding location: %w", err)
		}
		if location == nil {
			return fmt.Errorf("%w: location %s", entities.ErrNotFound, id)
		}

		if upd.Name != nil {
			if *upd.Name == "" {
				return fmt.Errorf("%w: location name is required", entities.ErrValidation)
			}
			location.Name = *upd.Name
		}
		if upd.Description != nil {
			location.Description = *upd.Description
		}
		if upd.City != nil {
			location.City = *upd.City
		}
		if upd.State != nil {
			location.State = *upd.State
		}
		if upd.Country != nil {
			location.Country = *upd.Country
		}

		if err := tx.UpdateLocation(ctx, location); err != nil {
			return fmt.Errorf("updating location: %w", err)
		}
		updated = location
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a location and the person links pointing at it.
func (s *LocationService) Delete(ctx context.Context, id string) error {
	return s.store.WithTx(ctx, func(tx ports.Tx) error {
		location, err := tx.FindLocation(ctx, id)
		if err != nil {
			return fmt.Errorf("finding location: %w", err)
		}
		if location == nil {
			return fmt.Errorf("%w: location %s", entities.ErrNotFound, id)
		}
		if err := tx.DeleteLocation(ctx, id); err != nil {
			return fmt.Errorf("deleting location: %w", err)
		}
		return nil
	})
}
