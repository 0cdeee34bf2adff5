package collection

import "bgmix/internal/models"

// The filter functions are pure and commute: each keeps input order and
// an unset criterion (zero) is a pass-through, so any application order
// yields the same result.

// FilterByPlayers keeps games playable with exactly n players,
// boundary-inclusive on both ends.
func FilterByPlayers(list []models.GameRecord, n int) []models.GameRecord {
	if n <= 0 {
		return list
	}
	out := make([]models.GameRecord, 0, len(list))
	for _, g := range list {
		if g.Stats.MinPlayers <= n && n <= g.Stats.MaxPlayers {
			out = append(out, g)
		}
	}
	return out
}

// FilterByPlayingTime keeps games whose max playing time falls into one
// of six fixed buckets. Ranges are left-open/right-closed, so a game at
// an exact boundary (30, 60, 120, 180, 240) belongs to the lower bucket.
func FilterByPlayingTime(list []models.GameRecord, bucket int) []models.GameRecord {
	if bucket < 1 || bucket > 6 {
		return list
	}
	out := make([]models.GameRecord, 0, len(list))
	for _, g := range list {
		if playingTimeBucket(g.Stats.MaxPlayTime) == bucket {
			out = append(out, g)
		}
	}
	return out
}

func playingTimeBucket(maxPlayTime int) int {
	switch {
	case maxPlayTime <= 30:
		return 1
	case maxPlayTime <= 60:
		return 2
	case maxPlayTime <= 120:
		return 3
	case maxPlayTime <= 180:
		return 4
	case maxPlayTime <= 240:
		return 5
	default:
		return 6
	}
}

// FilterByMinRating keeps games rated at or above min.
func FilterByMinRating(list []models.GameRecord, min float64) []models.GameRecord {
	if min <= 0 {
		return list
	}
	out := make([]models.GameRecord, 0, len(list))
	for _, g := range list {
		if g.Stats.Rating >= min {
			out = append(out, g)
		}
	}
	return out
}

// ApplyFilters runs all criteria in one pass over the chain.
func ApplyFilters(list []models.GameRecord, c models.FilterCriteria) []models.GameRecord {
	list = FilterByPlayers(list, c.NumberOfPlayers)
	list = FilterByPlayingTime(list, c.PlayingTimeBucket)
	list = FilterByMinRating(list, c.MinRating)
	return list
}
