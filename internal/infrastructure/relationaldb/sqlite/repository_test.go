package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/kin-core/internal/domain/entities"
	"github.com/ersonp/kin-core/internal/domain/ports"
	"github.com/ersonp/kin-core/internal/infrastructure/config"
)

// setupTestRepo creates an in-memory SQLite repository for testing.
func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(config.SQLiteConfig{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	err = repo.EnsureSchema(context.Background())
	require.NoError(t, err)

	return repo
}

func insertTestPerson(t *testing.T, repo *Repository, id string) {
	t.Helper()
	err := repo.InsertPerson(context.Background(), &entities.Person{
		ID:        id,
		FirstName: "Test",
		LastName:  "Person",
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
}

func insertTestLocation(t *testing.T, repo *Repository, id, name string) {
	t.Helper()
	err := repo.InsertLocation(context.Background(), &entities.Location{
		ID:        id,
		Name:      name,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
}

func TestNewRepository(t *testing.T) {
	t.Run("success with memory database", func(t *testing.T) {
		repo, err := NewRepository(config.SQLiteConfig{Path: ":memory:"})
		require.NoError(t, err)
		defer repo.Close()
		assert.NotNil(t, repo)
	})

	t.Run("error with empty path", func(t *testing.T) {
		_, err := NewRepository(config.SQLiteConfig{Path: ""})
		require.Error(t, err)
	})
}

func TestRepository_EnsureSchema(t *testing.T) {
	repo := setupTestRepo(t)

	tables := []string{"families", "people", "locations", "relationships", "person_locations"}
	for _, table := range tables {
		var count int
		err := repo.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s should exist", table)
	}

	// Idempotent
	require.NoError(t, repo.EnsureSchema(context.Background()))
}

func TestRepository_Families(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	t.Run("insert and find", func(t *testing.T) {
		family := &entities.Family{
			ID:          "fam-1",
			Name:        "Smith",
			Description: "the Smiths",
			CreatedAt:   time.Now(),
		}
		require.NoError(t, repo.InsertFamily(ctx, family))

		found, err := repo.FindFamily(ctx, "fam-1")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Smith", found.Name)
		assert.Equal(t, "the Smiths", found.Description)

		byName, err := repo.FindFamilyByName(ctx, "Smith")
		require.NoError(t, err)
		require.NotNil(t, byName)
		assert.Equal(t, "fam-1", byName.ID)
	})

	t.Run("find missing returns nil", func(t *testing.T) {
		found, err := repo.FindFamily(ctx, "ghost")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		err := repo.InsertFamily(ctx, &entities.Family{
			ID:        "fam-2",
			Name:      "Smith",
			CreatedAt: time.Now(),
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, entities.ErrConflict))
	})

	t.Run("update", func(t *testing.T) {
		require.NoError(t, repo.UpdateFamily(ctx, &entities.Family{
			ID:   "fam-1",
			Name: "Smythe",
		}))

		found, err := repo.FindFamily(ctx, "fam-1")
		require.NoError(t, err)
		assert.Equal(t, "Smythe", found.Name)
		assert.Empty(t, found.Description)
	})

	t.Run("update missing returns not found", func(t *testing.T) {
		err := repo.UpdateFamily(ctx, &entities.Family{ID: "ghost", Name: "X"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, entities.ErrNotFound))
	})

	t.Run("list members filters by family", func(t *testing.T) {
		require.NoError(t, repo.InsertPerson(ctx, &entities.Person{
			ID:        "kin-1",
			FirstName: "Zoe",
			LastName:  "Smythe",
			FamilyID:  "fam-1",
			CreatedAt: time.Now(),
		}))
		require.NoError(t, repo.InsertPerson(ctx, &entities.Person{
			ID:        "kin-2",
			FirstName: "Adam",
			LastName:  "Smythe",
			FamilyID:  "fam-1",
			CreatedAt: time.Now(),
		}))
		require.NoError(t, repo.InsertPerson(ctx, &entities.Person{
			ID:        "outsider-1",
			FirstName: "Carol",
			LastName:  "Jones",
			CreatedAt: time.Now(),
		}))

		members, err := repo.ListFamilyMembers(ctx, "fam-1")
		require.NoError(t, err)
		require.Len(t, members, 2)
		assert.Equal(t, "kin-2", members[0].ID, "ordered by name")
		assert.Equal(t, "kin-1", members[1].ID)

		none, err := repo.ListFamilyMembers(ctx, "ghost")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("detach members clears family id", func(t *testing.T) {
		require.NoError(t, repo.InsertPerson(ctx, &entities.Person{
			ID:        "member-1",
			FirstName: "Alice",
			LastName:  "Smith",
			FamilyID:  "fam-1",
			CreatedAt: time.Now(),
		}))

		require.NoError(t, repo.DetachFamilyMembers(ctx, "fam-1"))

		person, err := repo.FindPerson(ctx, "member-1")
		require.NoError(t, err)
		assert.Empty(t, person.FamilyID)
	})

	t.Run("list ordered by name", func(t *testing.T) {
		require.NoError(t, repo.InsertFamily(ctx, &entities.Family{
			ID:        "fam-3",
			Name:      "Jones",
			CreatedAt: time.Now(),
		}))

		families, err := repo.ListFamilies(ctx)
		require.NoError(t, err)
		require.Len(t, families, 2)
		assert.Equal(t, "Jones", families[0].Name)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.DeleteFamily(ctx, "fam-3"))

		found, err := repo.FindFamily(ctx, "fam-3")
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestRepository_People(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	t.Run("insert and find with nullable fields", func(t *testing.T) {
		person := &entities.Person{
			ID:        "p-1",
			FirstName: "Alice",
			LastName:  "Smith",
			BirthDate: "1921-03-15",
			CreatedAt: time.Now(),
		}
		require.NoError(t, repo.InsertPerson(ctx, person))

		found, err := repo.FindPerson(ctx, "p-1")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "1921-03-15", found.BirthDate)
		assert.Empty(t, found.DeathDate)
		assert.Empty(t, found.FamilyID)
	})

	t.Run("update", func(t *testing.T) {
		require.NoError(t, repo.UpdatePerson(ctx, &entities.Person{
			ID:        "p-1",
			FirstName: "Alicia",
			LastName:  "Smith",
			DeathDate: "1999-01-01",
		}))

		found, err := repo.FindPerson(ctx, "p-1")
		require.NoError(t, err)
		assert.Equal(t, "Alicia", found.FirstName)
		assert.Equal(t, "1999-01-01", found.DeathDate)
		assert.Empty(t, found.BirthDate, "nullable field cleared")
	})

	t.Run("list ordered by last then first name", func(t *testing.T) {
		require.NoError(t, repo.InsertPerson(ctx, &entities.Person{
			ID:        "p-2",
			FirstName: "Bob",
			LastName:  "Jones",
			CreatedAt: time.Now(),
		}))

		people, err := repo.ListPeople(ctx)
		require.NoError(t, err)
		require.Len(t, people, 2)
		assert.Equal(t, "Jones", people[0].LastName)
	})

	t.Run("delete cascades edges and links", func(t *testing.T) {
		insertTestLocation(t, repo, "loc-1", "Oslo")
		require.NoError(t, repo.InsertRelationship(ctx, &entities.Relationship{
			ID:           "rel-1",
			FromPersonID: "p-1",
			ToPersonID:   "p-2",
			Type:         entities.RelationSpouse,
			CreatedAt:    time.Now(),
		}))
		require.NoError(t, repo.InsertPersonLocation(ctx, &entities.PersonLocation{
			ID:         "link-1",
			PersonID:   "p-1",
			LocationID: "loc-1",
			Role:       entities.RoleResidence,
			CreatedAt:  time.Now(),
		}))

		require.NoError(t, repo.DeletePerson(ctx, "p-1"))

		rel, err := repo.FindRelationship(ctx, "rel-1")
		require.NoError(t, err)
		assert.Nil(t, rel, "edge cascaded")

		links, err := repo.ListPersonLocations(ctx, "p-1")
		require.NoError(t, err)
		assert.Empty(t, links, "link cascaded")

		loc, err := repo.FindLocation(ctx, "loc-1")
		require.NoError(t, err)
		assert.NotNil(t, loc, "location survives")
	})
}

func TestRepository_Relationships(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	insertTestPerson(t, repo, "p-1")
	insertTestPerson(t, repo, "p-2")

	t.Run("insert and find by key", func(t *testing.T) {
		rel := &entities.Relationship{
			ID:           "rel-1",
			FromPersonID: "p-1",
			ToPersonID:   "p-2",
			Type:         entities.RelationParent,
			CreatedAt:    time.Now(),
		}
		require.NoError(t, repo.InsertRelationship(ctx, rel))

		found, err := repo.FindRelationshipByKey(ctx, "p-1", "p-2", entities.RelationParent)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "rel-1", found.ID)

		missing, err := repo.FindRelationshipByKey(ctx, "p-2", "p-1", entities.RelationParent)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("duplicate key conflicts", func(t *testing.T) {
		err := repo.InsertRelationship(ctx, &entities.Relationship{
			ID:           "rel-dup",
			FromPersonID: "p-1",
			ToPersonID:   "p-2",
			Type:         entities.RelationParent,
			CreatedAt:    time.Now(),
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, entities.ErrConflict))
	})

	t.Run("retype", func(t *testing.T) {
		require.NoError(t, repo.UpdateRelationshipType(ctx, "rel-1", entities.RelationSpouse))

		found, err := repo.FindRelationship(ctx, "rel-1")
		require.NoError(t, err)
		assert.Equal(t, entities.RelationSpouse, found.Type)
	})

	t.Run("retype onto existing key conflicts", func(t *testing.T) {
		require.NoError(t, repo.InsertRelationship(ctx, &entities.Relationship{
			ID:           "rel-2",
			FromPersonID: "p-1",
			ToPersonID:   "p-2",
			Type:         entities.RelationParent,
			CreatedAt:    time.Now(),
		}))

		err := repo.UpdateRelationshipType(ctx, "rel-2", entities.RelationSpouse)
		require.Error(t, err)
		assert.True(t, errors.Is(err, entities.ErrConflict))
	})

	t.Run("retype missing returns not found", func(t *testing.T) {
		err := repo.UpdateRelationshipType(ctx, "ghost", entities.RelationSpouse)
		require.Error(t, err)
		assert.True(t, errors.Is(err, entities.ErrNotFound))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.DeleteRelationship(ctx, "rel-2"))

		rels, err := repo.ListRelationships(ctx)
		require.NoError(t, err)
		assert.Len(t, rels, 1)
	})
}

func TestRepository_PersonLocations(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	insertTestPerson(t, repo, "p-1")
	insertTestLocation(t, repo, "loc-1", "Oslo")
	insertTestLocation(t, repo, "loc-2", "Bergen")

	t.Run("insert and find by role", func(t *testing.T) {
		require.NoError(t, repo.InsertPersonLocation(ctx, &entities.PersonLocation{
			ID:         "link-1",
			PersonID:   "p-1",
			LocationID: "loc-1",
			Role:       entities.RoleBirthplace,
			CreatedAt:  time.Now(),
		}))

		found, err := repo.FindPersonLocationByRole(ctx, "p-1", entities.RoleBirthplace)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "loc-1", found.LocationID)

		missing, err := repo.FindPersonLocationByRole(ctx, "p-1", entities.RoleBurial)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("second link for same role conflicts", func(t *testing.T) {
		err := repo.InsertPersonLocation(ctx, &entities.PersonLocation{
			ID:         "link-dup",
			PersonID:   "p-1",
			LocationID: "loc-2",
			Role:       entities.RoleBirthplace,
			CreatedAt:  time.Now(),
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, entities.ErrConflict))
	})

	t.Run("retarget", func(t *testing.T) {
		require.NoError(t, repo.UpdatePersonLocation(ctx, &entities.PersonLocation{
			ID:         "link-1",
			PersonID:   "p-1",
			LocationID: "loc-2",
			Role:       entities.RoleBirthplace,
		}))

		found, err := repo.FindPersonLocationByRole(ctx, "p-1", entities.RoleBirthplace)
		require.NoError(t, err)
		assert.Equal(t, "loc-2", found.LocationID)
	})

	t.Run("location delete cascades links", func(t *testing.T) {
		require.NoError(t, repo.DeleteLocation(ctx, "loc-2"))

		links, err := repo.ListPersonLocations(ctx, "p-1")
		require.NoError(t, err)
		assert.Empty(t, links)

		person, err := repo.FindPerson(ctx, "p-1")
		require.NoError(t, err)
		assert.NotNil(t, person, "person survives")
	})
}

func TestRepository_WithTx(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	t.Run("commit on success", func(t *testing.T) {
		err := repo.WithTx(ctx, func(tx ports.Tx) error {
			return tx.InsertLocation(ctx, &entities.Location{
				ID:        "loc-tx",
				Name:      "Oslo",
				CreatedAt: time.Now(),
			})
		})
		require.NoError(t, err)

		found, err := repo.FindLocation(ctx, "loc-tx")
		require.NoError(t, err)
		assert.NotNil(t, found)
	})

	t.Run("rollback on error", func(t *testing.T) {
		sentinel := errors.New("boom")
		err := repo.WithTx(ctx, func(tx ports.Tx) error {
			if err := tx.InsertLocation(ctx, &entities.Location{
				ID:        "loc-rollback",
				Name:      "Bergen",
				CreatedAt: time.Now(),
			}); err != nil {
				return err
			}
			return sentinel
		})
		require.ErrorIs(t, err, sentinel)

		found, err := repo.FindLocation(ctx, "loc-rollback")
		require.NoError(t, err)
		assert.Nil(t, found, "insert rolled back")
	})
}
