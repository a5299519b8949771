package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ersonp/kin-core/internal/domain/entities"
	"github.com/ersonp/kin-core/internal/domain/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// RelationshipService maintains the invariant that every directed typed
// edge between two people has a matching reciprocal edge: parent implies
// child, child implies parent, spouse implies spouse. Each public operation
// runs inside a single transaction so the pair never diverges.
//
// The service does not validate that the resulting graph is acyclic or
// biologically sane; nothing prevents A parent B alongside B parent A.
type RelationshipService struct {
	store ports.Store
	log   *zap.Logger
}

// NewRelationshipService creates a new RelationshipService.
func NewRelationshipService(store ports.Store, log *zap.Logger) *RelationshipService {
	return &RelationshipService{
		store: store,
		log:   log,
	}
}

// Create inserts the edge (from, to, type) and ensures its reciprocal
// (to, from, reciprocal(type)) exists. A reciprocal already present is left
// untouched. Both people must resolve, and the edge key must be free.
func (s *RelationshipService) Create(ctx context.Context, fromID, toID string, relType entities.RelationType) (*entities.Relationship, error) {
	if fromID == toID {
		return nil, fmt.Errorf("%w: cannot relate a person to themselves", entities.ErrValidation)
	}

	var created *entities.Relationship
	err := s.store.WithTx(ctx, func(tx ports.Tx) error {
		for _, id := range []string{fromID, toID} {
			person, err := tx.FindPerson(ctx, id)
			if err != nil {
				return fmt.Errorf("finding person: %w", err)
			}
			if person == nil {
				return fmt.Errorf("%w: person %s", entities.ErrNotFound, id)
			}
		}

		existing, err := tx.FindRelationshipByKey(ctx, fromID, toID, relType)
		if err != nil {
			return fmt.Errorf("checking existing relationship: %w", err)
		}
		if existing != nil {
			return fmt.Errorf("%w: relationship %s -[%s]-> %s already exists", entities.ErrConflict, fromID, relType, toID)
		}

		rel := &entities.Relationship{
			ID:           uuid.New().String(),
			FromPersonID: fromID,
			ToPersonID:   toID,
			Type:         relType,
			CreatedAt:    timeNow(),
		}
		if err := tx.InsertRelationship(ctx, rel); err != nil {
			return fmt.Errorf("inserting relationship: %w", err)
		}
		if err := s.ensureReciprocal(ctx, tx, rel); err != nil {
			return err
		}

		created = rel
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update changes the type of an existing edge and moves its reciprocal:
// the old reciprocal is removed before the retype, the new one ensured
// after, so no stale reciprocal survives. An update to the current type is
// a no-op.
func (s *RelationshipService) Update(ctx context.Context, id string, relType entities.RelationType) (*entities.Relationship, error) {
	var updated *entities.Relationship
	err := s.store.WithTx(ctx, func(tx ports.Tx) error {
		rel, err := tx.FindRelationship(ctx, id)
		if err != nil {
			return fmt.Errorf("finding relationship: %w", err)
		}
		if rel == nil {
			return fmt.Errorf("%w: relationship %s", entities.ErrNotFound, id)
		}
		if rel.Type == relType {
			updated = rel
			return nil
		}

		if err := s.removeReciprocal(ctx, tx, rel); err != nil {
			return err
		}
		if err := tx.UpdateRelationshipType(ctx, rel.ID, relType); err != nil {
			return fmt.Errorf("retyping relationship: %w", err)
		}
		rel.Type = relType
		if err := s.ensureReciprocal(ctx, tx, rel); err != nil {
			return err
		}

		updated = rel
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an edge and its reciprocal. A missing reciprocal indicates
// a pre-existing inconsistency; it is logged and tolerated rather than
// failing the primary delete.
func (s *RelationshipService) Delete(ctx context.Context, id string) error {
	return s.store.WithTx(ctx, func(tx ports.Tx) error {
		rel, err := tx.FindRelationship(ctx, id)
		if err != nil {
			return fmt.Errorf("finding relationship: %w", err)
		}
		if rel == nil {
			return fmt.Errorf("%w: relationship %s", entities.ErrNotFound, id)
		}
		if err := tx.DeleteRelationship(ctx, rel.ID); err != nil {
			return fmt.Errorf("deleting relationship: %w", err)
		}
		return s.removeReciprocal(ctx, tx, rel)
	})
}

// List returns all relationship edges.
func (s *RelationshipService) List(ctx context.Context) ([]entities.Relationship, error) {
	rels, err := s.store.ListRelationships(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing relationships: %w", err)
	}
	return rels, nil
}

// ensureReciprocal makes sure the mirror edge of rel exists, creating it
// when absent. An edge already present under the reciprocal key is left
// untouched so repeated creates stay idempotent.
func (s *RelationshipService) ensureReciprocal(ctx context.Context, tx ports.Tx, rel *entities.Relationship) error {
	fromID, toID, relType := rel.ReciprocalKey()
	existing, err := tx.FindRelationshipByKey(ctx, fromID, toID, relType)
	if err != nil {
		return fmt.Errorf("finding reciprocal: %w", err)
	}
	if existing != nil {
		return nil
	}

	mirror := &entities.Relationship{
		ID:           uuid.New().String(),
		FromPersonID: fromID,
		ToPersonID:   toID,
		Type:         relType,
		CreatedAt:    rel.CreatedAt,
	}
	if err := tx.InsertRelationship(ctx, mirror); err != nil {
		return fmt.Errorf("inserting reciprocal: %w", err)
	}
	return nil
}

// removeReciprocal deletes the mirror edge of rel if present.
func (s *RelationshipService) removeReciprocal(ctx context.Context, tx ports.Tx, rel *entities.Relationship) error {
	fromID, toID, relType := rel.ReciprocalKey()
	existing, err := tx.FindRelationshipByKey(ctx, fromID, toID, relType)
	if err != nil {
		return fmt.Errorf("finding reciprocal: %w", err)
	}
	if existing == nil {
		s.log.Warn("reciprocal edge missing",
			zap.String("relationship_id", rel.ID),
			zap.String("from_person_id", fromID),
			zap.String("to_person_id", toID),
			zap.String("type", string(relType)),
		)
		return nil
	}
	if err := tx.DeleteRelationship(ctx, existing.ID); err != nil {
		return fmt.Errorf("deleting reciprocal: %w", err)
	}
	return nil
}
