package models

// GameStats carries the per-game numbers used by the filter, sort and
// grouping engines. Missing upstream values are stored as zero; the sort
// engine relies on that (unrated games sort as worst).
type GameStats struct {
	MinPlayers  int     `json:"minPlayers"`
	MaxPlayers  int     `json:"maxPlayers"`
	MinPlayTime int     `json:"minPlayTime"`
	MaxPlayTime int     `json:"maxPlayTime"`
	PlayingTime int     `json:"playingTime"`
	Rating      float64 `json:"rating"`
}

// Owner is one collection's claim on a game. Status is the per-source
// status blob (own/wishlist/... flags) and is carried opaquely.
type Owner struct {
	Username          string            `json:"username"`
	CollectionEntryID string            `json:"collectionEntryId"`
	Status            map[string]string `json:"status,omitempty"`
}

// GameRecord is the canonical shape every source normalizes into.
// Records are value objects: the merge step copies them and never
// mutates owner slices in place.
type GameRecord struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	SortIndex     int       `json:"sortIndex,omitempty"`
	Thumbnail     string    `json:"thumbnail,omitempty"`
	Image         string    `json:"image,omitempty"`
	YearPublished int       `json:"yearPublished,omitempty"`
	Stats         GameStats `json:"stats"`
	Owners        []Owner   `json:"owners"`
}

type CollectionSummary struct {
	Username      string `json:"username"`
	TotalItems    int    `json:"totalItems"`
	PublishedDate string `json:"publishedDate"`
}

// UserCollection is one user's fetched and normalized collection.
type UserCollection struct {
	Summary CollectionSummary `json:"summary"`
	Items   []GameRecord      `json:"items"`
}

type FetchFailure struct {
	Username string `json:"username"`
	Reason   string `json:"reason"`
}

// MergedCollection is the output of the merge step: summaries in input
// order, deduplicated games in first-seen order, and the per-user
// failures that were isolated from the merge.
type MergedCollection struct {
	Collections []CollectionSummary `json:"collections"`
	Boardgames  []GameRecord        `json:"boardgames"`
	Failures    []FetchFailure      `json:"failures,omitempty"`
	// Malformed counts input items that arrived without an id and got a
	// synthesized key.
	Malformed int `json:"-"`
}
