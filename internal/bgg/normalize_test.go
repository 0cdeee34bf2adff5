package bgg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeXMLItem_MissingNumericsCollapseToZero(t *testing.T) {
	item := xmlItem{
		ObjectID: "42",
		Name:     xmlName{Value: "Obscure Game", SortIndex: "N/A"},
		Stats: xmlStats{
			MinPlayers:  "",
			MaxPlayers:  "N/A",
			MaxPlayTime: "garbage",
			Rating:      xmlRating{Average: xmlValueAttr{Value: "N/A"}},
		},
	}

	game := normalizeXMLItem("alice", item)

	assert.Zero(t, game.SortIndex)
	assert.Zero(t, game.Stats.MinPlayers)
	assert.Zero(t, game.Stats.MaxPlayers)
	assert.Zero(t, game.Stats.MaxPlayTime)
	assert.Zero(t, game.Stats.Rating)
	assert.Zero(t, game.YearPublished)
}

func TestNormalizeXMLItem_ParsesWellFormedValues(t *testing.T) {
	item := xmlItem{
		ObjectID:      "224517",
		CollID:        "c1",
		Name:          xmlName{Value: "Brass: Birmingham", SortIndex: "1"},
		YearPublished: "2018",
		Stats: xmlStats{
			MinPlayers:  "2",
			MaxPlayers:  "4",
			MinPlayTime: "60",
			MaxPlayTime: "120",
			PlayingTime: "120",
			Rating:      xmlRating{Average: xmlValueAttr{Value: "8.58"}},
		},
		Status: xmlStatus{Own: "1", LastModified: "2025-01-01 10:00:00"},
	}

	game := normalizeXMLItem("alice", item)

	assert.Equal(t, 2018, game.YearPublished)
	assert.Equal(t, 1, game.SortIndex)
	assert.InDelta(t, 8.58, game.Stats.Rating, 0.001)
	require.Len(t, game.Owners, 1)
	assert.Equal(t, "c1", game.Owners[0].CollectionEntryID)
}

func TestXMLStatusBlob_OmitsEmptyFields(t *testing.T) {
	blob := xmlStatusBlob(xmlStatus{Own: "1", Wishlist: ""})

	assert.Equal(t, map[string]string{"own": "1"}, blob)
}

func TestNormalizeGraphQLItem_StatusValuesStringified(t *testing.T) {
	game := normalizeGraphQLItem("bob", gqlItem{
		EntryID: "e1",
		Status:  map[string]interface{}{"own": true, "numplays": 12.0, "comment": ""},
		Game:    gqlGame{ID: "1", Name: "Azul"},
	})

	require.Len(t, game.Owners, 1)
	status := game.Owners[0].Status
	assert.Equal(t, "true", status["own"])
	assert.Equal(t, "12", status["numplays"])
	_, ok := status["comment"]
	assert.False(t, ok)
}
