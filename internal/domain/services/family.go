package services

import (
	"context"
	"fmt"

	"github.com/ersonp/kin-core/internal/domain/entities"
	"github.com/ersonp/kin-core/internal/domain/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FamilyUpdate carries a partial family update. Nil fields are left
// untouched.
type FamilyUpdate struct {
	Name        *string
	Description *string
}

// FamilyDetail is a family together with its members, each resolved with
// their location links.
type FamilyDetail struct {
	entities.Family
	Members []PersonDetail `json:"members"`
}

// FamilyService manages families. Family names are unique; deleting a
// family detaches its members instead of deleting them.
type FamilyService struct {
	store ports.Store
	log   *zap.Logger
}

// NewFamilyService creates a new FamilyService.
func NewFamilyService(store ports.Store, log *zap.Logger) *FamilyService {
	return &FamilyService{
		store: store,
		log:   log,
	}
}

// Create inserts a new family with a unique name.
func (s *FamilyService) Create(ctx context.Context, name, description string) (*FamilyDetail, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: family name is required", entities.ErrValidation)
	}

	existing, err := s.store.FindFamilyByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("checking family name: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: family name %q already exists", entities.ErrConflict, name)
	}

	family := &entities.Family{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		CreatedAt:   timeNow(),
	}
	if err := s.store.InsertFamily(ctx, family); err != nil {
		return nil, fmt.Errorf("inserting family: %w", err)
	}
	return &FamilyDetail{Family: *family, Members: []PersonDetail{}}, nil
}

// Get returns a family by ID with its members resolved.
func (s *FamilyService) Get(ctx context.Context, id string) (*FamilyDetail, error) {
	family, err := s.store.FindFamily(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding family: %w", err)
	}
	if family == nil {
		return nil, fmt.Errorf("%w: family %s", entities.ErrNotFound, id)
	}
	return s.buildDetail(ctx, *family)
}

// List returns all families with their members resolved.
func (s *FamilyService) List(ctx context.Context) ([]FamilyDetail, error) {
	families, err := s.store.ListFamilies(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing families: %w", err)
	}
	result := make([]FamilyDetail, 0, len(families))
	for _, family := range families {
		detail, err := s.buildDetail(ctx, family)
		if err != nil {
			return nil, err
		}
		result = append(result, *detail)
	}
	return result, nil
}

// Update applies a partial update. A name change must not collide with
// another family.
func (s *FamilyService) Update(ctx context.Context, id string, upd FamilyUpdate) (*FamilyDetail, error) {
	var updated *entities.Family
	err := s.store.WithTx(ctx, func(tx ports.Tx) error {
		family, err := tx.FindFamily(ctx, id)
		if err != nil {
			return fmt.Errorf("finding family: %w", err)
		}
		if family == nil {
			return fmt.Errorf("%w: family %s", entities.ErrNotFound, id)
		}

		if upd.Name != nil {
			if *upd.Name == "" {
				return fmt.Errorf("%w: family name is required", entities.ErrValidation)
			}
			other, err := tx.FindFamilyByName(ctx, *upd.Name)
			if err != nil {
				return fmt.Errorf("checking family name: %w", err)
			}
			if other != nil && other.ID != id {
				return fmt.Errorf("%w: family name %q already exists", entities.ErrConflict, *upd.Name)
			}
			family.Name = *upd.Name
		}
		if upd.Description != nil {
			family.Description = *upd.Description
		}

		if err := tx.UpdateFamily(ctx, family); err != nil {
			return fmt.Errorf("updating family: %w", err)
		}
		updated = family
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.buildDetail(ctx, *updated)
}

// buildDetail resolves a family's members, each with their location links.
func (s *FamilyService) buildDetail(ctx context.Context, family entities.Family) (*FamilyDetail, error) {
	members, err := s.store.ListFamilyMembers(ctx, family.ID)
	if err != nil {
		return nil, fmt.Errorf("listing family members: %w", err)
	}

	detail := &FamilyDetail{
		Family:  family,
		Members: make([]PersonDetail, 0, len(members)),
	}
	for _, member := range members {
		memberDetail, err := resolvePersonDetail(ctx, s.store, s.log, member)
		if err != nil {
			return nil, err
		}
		detail.Members = append(detail.Members, *memberDetail)
	}
	return detail, nil
}

// Delete removes a family, detaching its members in the same transaction.
func (s *FamilyService) Delete(ctx context.Context, id string) error {
	return s.store.WithTx(ctx, func(tx ports.Tx) error {
		family, err := tx.FindFamily(ctx, id)
		if err != nil {
			return fmt.Errorf("finding family: %w", err)
		}
		if family == nil {
			return fmt.Errorf("%w: family %s", entities.ErrNotFound, id)
		}
		if err := tx.DetachFamilyMembers(ctx, id); err != nil {
			return fmt.Errorf("detaching family members: %w", err)
		}
		if err := tx.DeleteFamily(ctx, id); err != nil {
			return fmt.Errorf("deleting family: %w", err)
		}
		return nil
	})
}
