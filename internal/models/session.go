package models

import "time"

// Session is a shareable game-night setup: who is coming and how the
// combined collection should be narrowed for the evening.
type Session struct {
	ID        string         `json:"id"`
	Name      string         `json:"name" validate:"required"`
	Usernames []string       `json:"usernames" validate:"required|minLen:1"`
	Criteria  FilterCriteria `json:"criteria"`
	Sort      SortKey        `json:"sort"`
	Group     GroupMode      `json:"group"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Expired reports whether the session has outlived the given TTL.
func (s *Session) Expired(ttl time.Duration) bool {
	return time.Since(s.CreatedAt) > ttl
}
