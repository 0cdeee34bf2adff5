package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bgmix/internal/collection"
	"bgmix/internal/models"
	"bgmix/internal/testutil"
)

// stubCollectionService serves a canned merged collection and runs the
// real view pipeline over it.
type stubCollectionService struct {
	merged     *models.MergedCollection
	fetchCalls int
	lastUsers  []string
}

func (s *stubCollectionService) FetchAll(_ context.Context, usernames []string) *models.MergedCollection {
	s.fetchCalls++
	s.lastUsers = usernames
	return s.merged
}

func (s *stubCollectionService) BuildView(games []models.GameRecord, view *models.ViewParams) ([]models.GameRecord, []collection.GroupBucket) {
	filtered := collection.ApplyFilters(games, view.Criteria)
	sorted := collection.Sort(filtered, view.Sort)
	return sorted, collection.Group(sorted, view.Group)
}

func sampleMerged() *models.MergedCollection {
	return &models.MergedCollection{
		Collections: []models.CollectionSummary{
			{Username: "alice", TotalItems: 2},
			{Username: "bob", TotalItems: 1},
		},
		Boardgames: []models.GameRecord{
			{ID: "a", Name: "Game A", Stats: models.GameStats{Rating: 8.5, MinPlayers: 2, MaxPlayers: 4}},
			{ID: "b", Name: "Game B", Stats: models.GameStats{Rating: 6.0, MinPlayers: 1, MaxPlayers: 1}},
		},
	}
}

func newApiFixture(merged *models.MergedCollection) (*ApiController, *stubCollectionService, *testutil.MockLogger) {
	svc := &stubCollectionService{merged: merged}
	logger := &testutil.MockLogger{}
	return NewApiController(logger, svc, testutil.NewMockCache()), svc, logger
}

func decodeCollections(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGetCollections_ReturnsMergedView(t *testing.T) {
	ctrl, svc, _ := newApiFixture(sampleMerged())

	req := httptest.NewRequest(http.MethodGet, "/collections?users=alice,bob", nil)
	rec := httptest.NewRecorder()
	ctrl.GetCollections(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, []string{"alice", "bob"}, svc.lastUsers)

	body := decodeCollections(t, rec)
	var games []models.GameRecord
	require.NoError(t, json.Unmarshal(body["boardgames"], &games))
	assert.Len(t, games, 2)
	_, hasGroups := body["groups"]
	assert.False(t, hasGroups)
}

func TestGetCollections_MissingUsersIsBadRequest(t *testing.T) {
	ctrl, svc, _ := newApiFixture(sampleMerged())

	for _, target := range []string{"/collections", "/collections?users=", "/collections?users=,%20,"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		ctrl.GetCollections(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
	assert.Zero(t, svc.fetchCalls)
}

func TestGetCollections_FiltersAndSorts(t *testing.T) {
	ctrl, _, _ := newApiFixture(sampleMerged())

	req := httptest.NewRequest(http.MethodGet, "/collections?users=alice&players=3&sort=rating_desc", nil)
	rec := httptest.NewRecorder()
	ctrl.GetCollections(rec, req)

	body := decodeCollections(t, rec)
	var games []models.GameRecord
	require.NoError(t, json.Unmarshal(body["boardgames"], &games))
	require.Len(t, games, 1)
	assert.Equal(t, "a", games[0].ID)
}

func TestGetCollections_GroupsOnlyWhenRequested(t *testing.T) {
	ctrl, _, _ := newApiFixture(sampleMerged())

	req := httptest.NewRequest(http.MethodGet, "/collections?users=alice&group=players", nil)
	rec := httptest.NewRecorder()
	ctrl.GetCollections(rec, req)

	body := decodeCollections(t, rec)
	var groups []struct {
		Label string              `json:"label"`
		Games []models.GameRecord `json:"games"`
	}
	require.NoError(t, json.Unmarshal(body["groups"], &groups))
	require.Len(t, groups, 2)
	assert.Equal(t, "1 Player(s)", groups[0].Label)
	assert.Equal(t, "2-4 Players", groups[1].Label)
}

func TestGetCollections_FailuresIncludedInResponse(t *testing.T) {
	merged := sampleMerged()
	merged.Failures = []models.FetchFailure{{Username: "ghost", Reason: "user not found"}}
	ctrl, _, _ := newApiFixture(merged)

	req := httptest.NewRequest(http.MethodGet, "/collections?users=alice,ghost", nil)
	rec := httptest.NewRecorder()
	ctrl.GetCollections(rec, req)

	body := decodeCollections(t, rec)
	var failures []models.FetchFailure
	require.NoError(t, json.Unmarshal(body["failures"], &failures))
	require.Len(t, failures, 1)
	assert.Equal(t, "ghost", failures[0].Username)
}

func TestGetCollections_SecondRequestServedFromCache(t *testing.T) {
	ctrl, svc, _ := newApiFixture(sampleMerged())

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/collections?users=alice", nil)
		rec := httptest.NewRecorder()
		ctrl.GetCollections(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, 1, svc.fetchCalls)
}

func TestGetCollections_MalformedItemsLogged(t *testing.T) {
	merged := sampleMerged()
	merged.Malformed = 3
	ctrl, _, logger := newApiFixture(merged)

	req := httptest.NewRequest(http.MethodGet, "/collections?users=alice", nil)
	rec := httptest.NewRecorder()
	ctrl.GetCollections(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, logger.Logs)
	assert.Equal(t, "warn", logger.Logs[0].Level)
}

func TestParseUsernames(t *testing.T) {
	assert.Equal(t, []string{"alice", "bob"}, parseUsernames(" alice , bob "))
	assert.Empty(t, parseUsernames(""))
	assert.Empty(t, parseUsernames(" , ,"))
}

func TestParseViewParams_Fallbacks(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/collections?players=junk&time=-1&minRating=abc&sort=price&group=publisher", nil)

	view := parseViewParams(req)

	assert.Zero(t, view.Criteria.NumberOfPlayers)
	assert.Equal(t, -1, view.Criteria.PlayingTimeBucket)
	assert.Zero(t, view.Criteria.MinRating)
	assert.Equal(t, models.SortNameAsc, view.Sort)
	assert.Equal(t, models.GroupNone, view.Group)
}
