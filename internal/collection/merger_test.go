package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bgmix/internal/models"
)

func ownedGame(id, name, username, entryID string) models.GameRecord {
	return models.GameRecord{
		ID:   id,
		Name: name,
		Owners: []models.Owner{{
			Username:          username,
			CollectionEntryID: entryID,
		}},
	}
}

func TestMerge_SingleCollection(t *testing.T) {
	input := models.UserCollection{
		Summary: models.CollectionSummary{Username: "alice", TotalItems: 2},
		Items: []models.GameRecord{
			ownedGame("1", "Catan", "alice", "c1"),
			ownedGame("2", "Azul", "alice", "c2"),
		},
	}

	merged := Merge([]models.UserCollection{input})

	require.Len(t, merged.Boardgames, 2)
	assert.Equal(t, "Catan", merged.Boardgames[0].Name)
	assert.Equal(t, "Azul", merged.Boardgames[1].Name)
	for _, g := range merged.Boardgames {
		require.Len(t, g.Owners, 1)
		assert.Equal(t, "alice", g.Owners[0].Username)
	}
	require.Len(t, merged.Collections, 1)
	assert.Equal(t, "alice", merged.Collections[0].Username)
}

func TestMerge_OwnerAccumulationOrder(t *testing.T) {
	alice := models.UserCollection{
		Summary: models.CollectionSummary{Username: "alice"},
		Items:   []models.GameRecord{ownedGame("224517", "Brass: Birmingham", "alice", "a1")},
	}
	bob := models.UserCollection{
		Summary: models.CollectionSummary{Username: "bob"},
		Items:   []models.GameRecord{ownedGame("224517", "Brass: Birmingham", "bob", "b1")},
	}

	merged := Merge([]models.UserCollection{alice, bob})

	require.Len(t, merged.Boardgames, 1)
	owners := merged.Boardgames[0].Owners
	require.Len(t, owners, 2)
	assert.Equal(t, "alice", owners[0].Username)
	assert.Equal(t, "bob", owners[1].Username)
}

func TestMerge_FirstSeenInsertionOrder(t *testing.T) {
	alice := models.UserCollection{
		Summary: models.CollectionSummary{Username: "alice"},
		Items: []models.GameRecord{
			ownedGame("3", "Wingspan", "alice", "a1"),
			ownedGame("1", "Catan", "alice", "a2"),
		},
	}
	bob := models.UserCollection{
		Summary: models.CollectionSummary{Username: "bob"},
		Items: []models.GameRecord{
			ownedGame("1", "Catan", "bob", "b1"),
			ownedGame("2", "Azul", "bob", "b2"),
		},
	}

	merged := Merge([]models.UserCollection{alice, bob})

	require.Len(t, merged.Boardgames, 3)
	assert.Equal(t, "3", merged.Boardgames[0].ID)
	assert.Equal(t, "1", merged.Boardgames[1].ID)
	assert.Equal(t, "2", merged.Boardgames[2].ID)
}

func TestMerge_DuplicateUsernameNotCollapsed(t *testing.T) {
	col := models.UserCollection{
		Summary: models.CollectionSummary{Username: "alice"},
		Items:   []models.GameRecord{ownedGame("1", "Catan", "alice", "a1")},
	}

	merged := Merge([]models.UserCollection{col, col})

	require.Len(t, merged.Boardgames, 1)
	assert.Len(t, merged.Boardgames[0].Owners, 2)
}

func TestMerge_DoesNotMutateInputOwners(t *testing.T) {
	shared := ownedGame("1", "Catan", "alice", "a1")
	alice := models.UserCollection{
		Summary: models.CollectionSummary{Username: "alice"},
		Items:   []models.GameRecord{shared},
	}
	bob := models.UserCollection{
		Summary: models.CollectionSummary{Username: "bob"},
		Items:   []models.GameRecord{ownedGame("1", "Catan", "bob", "b1")},
	}

	Merge([]models.UserCollection{alice, bob})
	Merge([]models.UserCollection{alice, bob})

	require.Len(t, shared.Owners, 1)
	assert.Len(t, alice.Items[0].Owners, 1)
}

func TestMerge_MissingIDsStayDistinct(t *testing.T) {
	col := models.UserCollection{
		Summary: models.CollectionSummary{Username: "alice"},
		Items: []models.GameRecord{
			ownedGame("", "Mystery One", "alice", "e1"),
			ownedGame("", "Mystery Two", "alice", "e2"),
		},
	}

	merged := Merge([]models.UserCollection{col})

	require.Len(t, merged.Boardgames, 2)
	assert.Equal(t, 2, merged.Malformed)
}

func TestMerge_EmptyInput(t *testing.T) {
	merged := Merge(nil)
	assert.Empty(t, merged.Boardgames)
	assert.Empty(t, merged.Collections)
}
