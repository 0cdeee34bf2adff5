package models

// FilterCriteria holds the optional narrowing parameters. Zero means
// "not set" and the corresponding filter passes everything through.
type FilterCriteria struct {
	NumberOfPlayers   int     `json:"numberOfPlayers,omitempty"`
	PlayingTimeBucket int     `json:"playingTimeBucket,omitempty"`
	MinRating         float64 `json:"minRating,omitempty"`
}

type SortKey string

const (
	SortNameAsc    SortKey = "name_asc"
	SortNameDesc   SortKey = "name_desc"
	SortRatingAsc  SortKey = "rating_asc"
	SortRatingDesc SortKey = "rating_desc"
	SortYearAsc    SortKey = "year_asc"
	SortYearDesc   SortKey = "year_desc"
)

// ParseSortKey maps an arbitrary string onto a valid sort key.
// Anything unknown falls back to name ascending.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortNameAsc, SortNameDesc, SortRatingAsc, SortRatingDesc, SortYearAsc, SortYearDesc:
		return SortKey(s)
	}
	return SortNameAsc
}

type GroupMode string

const (
	GroupNone        GroupMode = "none"
	GroupPlayers     GroupMode = "players"
	GroupRating      GroupMode = "rating"
	GroupBestPlayers GroupMode = "bestPlayers"
)

// ParseGroupMode maps an arbitrary string onto a valid grouping mode.
// Anything unknown falls back to the single catch-all bucket.
func ParseGroupMode(s string) GroupMode {
	switch GroupMode(s) {
	case GroupNone, GroupPlayers, GroupRating, GroupBestPlayers:
		return GroupMode(s)
	}
	return GroupNone
}

// ViewParams is the full set of derived-view parameters for one request.
type ViewParams struct {
	Criteria FilterCriteria
	Query    string
	Sort     SortKey
	Group    GroupMode
}
