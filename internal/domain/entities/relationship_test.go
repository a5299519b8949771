package entities

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelationTypeReciprocal(t *testing.T) {
	assert.Equal(t, RelationChild, RelationParent.Reciprocal())
	assert.Equal(t, RelationParent, RelationChild.Reciprocal())
	assert.Equal(t, RelationSpouse, RelationSpouse.Reciprocal())
}

func TestParseRelationType(t *testing.T) {
	t.Run("valid types", func(t *testing.T) {
		for _, s := range []string{"parent", "child", "spouse"} {
			relType, err := ParseRelationType(s)
			require.NoError(t, err)
			assert.Equal(t, RelationType(s), relType)
		}
	})

	t.Run("invalid type", func(t *testing.T) {
		_, err := ParseRelationType("sibling")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))
	})

	t.Run("empty string", func(t *testing.T) {
		_, err := ParseRelationType("")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))
	})
}

func TestReciprocalKey(t *testing.T) {
	rel := Relationship{
		ID:           "rel-1",
		FromPersonID: "alice",
		ToPersonID:   "bob",
		Type:         RelationParent,
	}

	fromID, toID, relType := rel.ReciprocalKey()
	assert.Equal(t, "bob", fromID)
	assert.Equal(t, "alice", toID)
	assert.Equal(t, RelationChild, relType)

	// The reciprocal of the reciprocal is the original key
	mirror := Relationship{FromPersonID: fromID, ToPersonID: toID, Type: relType}
	fromID, toID, relType = mirror.ReciprocalKey()
	assert.Equal(t, "alice", fromID)
	assert.Equal(t, "bob", toID)
	assert.Equal(t, RelationParent, relType)
}
