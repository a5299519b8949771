package services

import (
	"github.com/ersonp/kin-core/internal/domain/mocks"
)

// mockStore wraps the shared in-memory store so tests can hang seeding
// helpers off it.
type mockStore struct {
	*mocks.Store
}

func newMockStore() *mockStore {
	return &mockStore{mocks.NewStore()}
}
