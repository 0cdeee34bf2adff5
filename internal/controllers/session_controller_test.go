package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bgmix/internal/models"
	"bgmix/internal/testutil"
)

func newSessionFixture() (*SessionController, *testutil.MockSessionService, *testutil.MockLogger) {
	svc := &testutil.MockSessionService{NextID: "deadbeef"}
	logger := &testutil.MockLogger{}
	return NewSessionController(logger, svc), svc, logger
}

func TestSessionCreate_ReturnsID(t *testing.T) {
	ctrl, svc, _ := newSessionFixture()

	body := `{"name":"friday night","usernames":["alice","bob"],"criteria":{"numberOfPlayers":4},"sort":"rating_desc","group":"players"}`
	req := httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader(body))
	rec := httptest.NewRecorder()
	ctrl.Create(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "deadbeef", resp["id"])

	stored, ok := svc.Get("deadbeef")
	require.True(t, ok)
	assert.Equal(t, "friday night", stored.Name)
	assert.Equal(t, []string{"alice", "bob"}, stored.Usernames)
}

func TestSessionCreate_MalformedBodyIsBadRequest(t *testing.T) {
	ctrl, svc, _ := newSessionFixture()

	req := httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	ctrl.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, svc.Count())
}

func TestSessionCreate_ValidationFailureIsBadRequest(t *testing.T) {
	ctrl, svc, logger := newSessionFixture()
	svc.Fail = errors.New("name is required")

	req := httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader(`{"usernames":["alice"]}`))
	rec := httptest.NewRecorder()
	ctrl.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotEmpty(t, logger.Logs)
	assert.Equal(t, "debug", logger.Logs[0].Level)
}

func TestSessionCreate_OversizedBodyRejected(t *testing.T) {
	ctrl, _, _ := newSessionFixture()

	huge := strings.Repeat("x", maxRequestBodySize+1)
	req := httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader(`{"name":"`+huge+`"}`))
	rec := httptest.NewRecorder()
	ctrl.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionGet_ReturnsStoredSession(t *testing.T) {
	ctrl, svc, _ := newSessionFixture()
	svc.Restore([]*models.Session{{
		ID:        "abc123",
		Name:      "friday night",
		Usernames: []string{"alice"},
		Sort:      models.SortRatingDesc,
	}})

	req := httptest.NewRequest(http.MethodGet, "/session?id=abc123", nil)
	rec := httptest.NewRecorder()
	ctrl.Get(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var sess models.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sess))
	assert.Equal(t, "friday night", sess.Name)
	assert.Equal(t, models.SortRatingDesc, sess.Sort)
}

func TestSessionGet_MissingIDIsBadRequest(t *testing.T) {
	ctrl, _, _ := newSessionFixture()

	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	rec := httptest.NewRecorder()
	ctrl.Get(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionGet_UnknownIDIsNotFound(t *testing.T) {
	ctrl, _, _ := newSessionFixture()

	req := httptest.NewRequest(http.MethodGet, "/session?id=nope", nil)
	rec := httptest.NewRecorder()
	ctrl.Get(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
