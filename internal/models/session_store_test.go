package models

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(id string, age time.Duration) *Session {
	return &Session{
		ID:        id,
		Name:      "game night",
		Usernames: []string{"alice", "bob"},
		CreatedAt: time.Now().Add(-age),
	}
}

func TestSessionStore_PutGet(t *testing.T) {
	store, err := NewSessionStore(10, time.Hour)
	require.NoError(t, err)

	sess := newTestSession("abc", 0)
	store.Put(sess)

	got, ok := store.Get("abc")
	require.True(t, ok)
	assert.Equal(t, sess, got)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestSessionStore_ExpiredSessionIsDroppedOnGet(t *testing.T) {
	store, err := NewSessionStore(10, time.Minute)
	require.NoError(t, err)

	store.Put(newTestSession("old", 2*time.Minute))

	_, ok := store.Get("old")
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestSessionStore_EvictsOldestBeyondCap(t *testing.T) {
	store, err := NewSessionStore(3, time.Hour)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		store.Put(newTestSession(fmt.Sprintf("s%d", i), 0))
	}

	assert.Equal(t, 3, store.Len())
	_, ok := store.Get("s0")
	assert.False(t, ok)
	_, ok = store.Get("s4")
	assert.True(t, ok)
}

func TestSessionStore_Sweep(t *testing.T) {
	store, err := NewSessionStore(10, time.Minute)
	require.NoError(t, err)

	store.Put(newTestSession("live", 0))
	store.Put(newTestSession("stale1", 2*time.Minute))
	store.Put(newTestSession("stale2", 3*time.Minute))

	removed := store.Sweep()

	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, store.Len())
	_, ok := store.Get("live")
	assert.True(t, ok)
}

func TestSessionStore_SnapshotOrderedByCreation(t *testing.T) {
	store, err := NewSessionStore(10, time.Hour)
	require.NoError(t, err)

	store.Put(newTestSession("newest", time.Minute))
	store.Put(newTestSession("oldest", 30*time.Minute))
	store.Put(newTestSession("middle", 10*time.Minute))

	snap := store.Snapshot()

	require.Len(t, snap, 3)
	assert.Equal(t, "oldest", snap[0].ID)
	assert.Equal(t, "middle", snap[1].ID)
	assert.Equal(t, "newest", snap[2].ID)
}

func TestSessionStore_SnapshotSkipsExpired(t *testing.T) {
	store, err := NewSessionStore(10, time.Minute)
	require.NoError(t, err)

	store.Put(newTestSession("live", 0))
	store.Put(newTestSession("stale", time.Hour))

	snap := store.Snapshot()

	require.Len(t, snap, 1)
	assert.Equal(t, "live", snap[0].ID)
}

func TestSessionStore_RestoreSkipsExpired(t *testing.T) {
	store, err := NewSessionStore(10, time.Minute)
	require.NoError(t, err)

	store.Restore([]*Session{
		newTestSession("live", 0),
		newTestSession("stale", time.Hour),
		nil,
	})

	assert.Equal(t, 1, store.Len())
	_, ok := store.Get("live")
	assert.True(t, ok)
}

func TestSession_Expired(t *testing.T) {
	assert.False(t, newTestSession("a", time.Minute).Expired(time.Hour))
	assert.True(t, newTestSession("b", 2*time.Hour).Expired(time.Hour))
}
