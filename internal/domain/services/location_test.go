package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ersonp/kin-core/internal/domain/entities"
)

func setupLocationTest() (*LocationService, *mockStore) {
	store := newMockStore()
	svc := NewLocationService(store, zap.NewNop())
	return svc, store
}

func TestLocationService_Create(t *testing.T) {
	t.Run("creates location", func(t *testing.T) {
		svc, store := setupLocationTest()

		location, err := svc.Create(context.Background(), entities.LocationSpec{
			Name:    "Oslo",
			Country: "Norway",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, location.ID)
		assert.Equal(t, "Oslo", location.Name)
		assert.Len(t, store.Locations, 1)
	})

	t.Run("name required", func(t *testing.T) {
		svc, _ := setupLocationTest()

		_, err := svc.Create(context.Background(), entities.LocationSpec{City: "Oslo"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, entities.ErrValidation))
	})

	t.Run("same name allowed twice", func(t *testing.T) {
		svc, store := setupLocationTest()
		ctx := context.Background()

		_, err := svc.Create(ctx, entities.LocationSpec{Name: "Oslo"})
		require.NoError(t, err)
		_, err = svc.Create(ctx, entities.LocationSpec{Name: "Oslo"})
		require.NoError(t, err)

		assert.Len(t, store.Locations, 2)
	})
}

func TestLocationService_Update(t *testing.T) {
	t.Run("partial update", func(t *testing.T) {
		svc, store := setupLocationTest()

		store.addLocation("oslo", "Oslo")
		store.Locations["oslo"].Country = "Norway"

		city := "Oslo"
		location, err := svc.Update(context.Background(), "oslo", LocationUpdate{City: &city})
		require.NoError(t, err)
		assert.Equal(t, "Oslo", location.City)
		assert.Equal(t, "Norway", location.Country)
	})

	t.Run("cannot blank the name", func(t *testing.T) {
		svc, store := setupLocationTest()

		store.addLocation("oslo", "Oslo")

		blank := ""
		_, err := svc.Update(context.Background(), "oslo", LocationUpdate{Name: &blank})
		require.Error(t, err)
		assert.True(t, errors.Is(err, entities.ErrValidation))
	})

	t.Run("not found", func(t *testing.T) {
		svc, _ := setupLocationTest()

		name := "Oslo"
		_, err := svc.Update(context.Background(), "ghost", LocationUpdate{Name: &name})
		require.Error(t, err)
		assert.True(t, errors.Is(err, entities.ErrNotFound))
	})
}

func TestLocationService_Delete(t *testing.T) {
	t.Run("removes links, keeps people", func(t *testing.T) {
		svc, store := setupLocationTest()

		store.addLocation("oslo", "Oslo")
		store.addPerson("alice", "Alice", "Smith")
		store.addPersonLocation("l1", "alice", "oslo", entities.RoleResidence)

		require.NoError(t, svc.Delete(context.Background(), "oslo"))

		assert.Len(t, store.Locations, 0)
		assert.Len(t, store.PersonLocations, 0)
		assert.Len(t, store.People, 1)
	})

	t.Run("not found", func(t *testing.T) {
		svc, _ := setupLocationTest()

		err := svc.Delete(context.Background(), "ghost")
		require.Error(t, err)
		assert.True(t, errors.Is(err, entities.ErrNotFound))
	})
}

func TestLocationService_GetList(t *testing.T) {
	svc, store := setupLocationTest()
	ctx := context.Background()

	store.addLocation("oslo", "Oslo")
	store.addLocation("bergen", "Bergen")

	location, err := svc.Get(ctx, "oslo")
	require.NoError(t, err)
	assert.Equal(t, "Oslo", location.Name)

	locations, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, locations, 2)
	assert.Equal(t, "Bergen", locations[0].Name, "ordered by name")
}
