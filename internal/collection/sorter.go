package collection

import (
	"sort"
	"strings"

	"bgmix/internal/models"
)

// Sort returns a new slice ordered by the given key. The sort is stable:
// equal keys keep their relative input order. Missing ratings and years
// are zero, so unrated games land at the bottom of rating_desc and the
// front of year_asc.
func Sort(list []models.GameRecord, key models.SortKey) []models.GameRecord {
	out := append([]models.GameRecord(nil), list...)

	var less func(a, b models.GameRecord) bool
	switch key {
	case models.SortNameDesc:
		less = func(a, b models.GameRecord) bool { return strings.Compare(a.Name, b.Name) > 0 }
	case models.SortRatingAsc:
		less = func(a, b models.GameRecord) bool { return a.Stats.Rating < b.Stats.Rating }
	case models.SortRatingDesc:
		less = func(a, b models.GameRecord) bool { return a.Stats.Rating > b.Stats.Rating }
	case models.SortYearAsc:
		less = func(a, b models.GameRecord) bool { return a.YearPublished < b.YearPublished }
	case models.SortYearDesc:
		less = func(a, b models.GameRecord) bool { return a.YearPublished > b.YearPublished }
	default:
		less = func(a, b models.GameRecord) bool { return strings.Compare(a.Name, b.Name) < 0 }
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
