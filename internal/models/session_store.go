package models

import (
	"sort"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

// SessionStore is a bounded in-memory store for shareable sessions.
// The LRU cap keeps memory bounded under abuse; the TTL expires entries
// lazily on Get and eagerly via Sweep.
type SessionStore struct {
	cache *lru.Cache
	ttl   time.Duration
}

func NewSessionStore(maxEntries int, ttl time.Duration) (*SessionStore, error) {
	cache, err := lru.New(maxEntries)
	if err != nil {
		return nil, err
	}
	return &SessionStore{cache: cache, ttl: ttl}, nil
}

func (s *SessionStore) Put(sess *Session) {
	s.cache.Add(sess.ID, sess)
}

func (s *SessionStore) Get(id string) (*Session, bool) {
	val, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	sess := val.(*Session)
	if sess.Expired(s.ttl) {
		s.cache.Remove(id)
		return nil, false
	}
	return sess, true
}

func (s *SessionStore) Len() int {
	return s.cache.Len()
}

// Sweep removes expired sessions and returns how many were dropped.
func (s *SessionStore) Sweep() int {
	removed := 0
	for _, key := range s.cache.Keys() {
		val, ok := s.cache.Peek(key)
		if !ok {
			continue
		}
		if val.(*Session).Expired(s.ttl) {
			s.cache.Remove(key)
			removed++
		}
	}
	return removed
}

// Snapshot returns all live sessions ordered by creation time, oldest
// first, so a restore replays them in their original recency order.
func (s *SessionStore) Snapshot() []*Session {
	sessions := make([]*Session, 0, s.cache.Len())
	for _, key := range s.cache.Keys() {
		if val, ok := s.cache.Peek(key); ok {
			sess := val.(*Session)
			if !sess.Expired(s.ttl) {
				sessions = append(sessions, sess)
			}
		}
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})
	return sessions
}

// Restore loads a snapshot, skipping sessions that expired while the
// daemon was down.
func (s *SessionStore) Restore(sessions []*Session) {
	for _, sess := range sessions {
		if sess == nil || sess.Expired(s.ttl) {
			continue
		}
		s.cache.Add(sess.ID, sess)
	}
}
