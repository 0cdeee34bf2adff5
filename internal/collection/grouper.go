package collection

import (
	"fmt"
	"math"
	"sort"

	"bgmix/internal/models"
)

// GroupBucket is one named partition of the game list. The numeric sort
// key stays internal; only the label is rendered.
type GroupBucket struct {
	Label   string               `json:"label"`
	Games   []models.GameRecord  `json:"games"`
	sortKey int
}

// Group partitions the list into ordered buckets. Games keep their input
// order inside each bucket; empty buckets are never returned.
func Group(list []models.GameRecord, mode models.GroupMode) []GroupBucket {
	switch mode {
	case models.GroupPlayers:
		return groupByPlayers(list)
	case models.GroupRating:
		return groupByRating(list)
	case models.GroupBestPlayers:
		return groupByBestPlayers(list)
	default:
		return []GroupBucket{{Label: "All Games", Games: list}}
	}
}

func groupByPlayers(list []models.GameRecord) []GroupBucket {
	return accumulate(list, func(g models.GameRecord) (string, int) {
		min, max := g.Stats.MinPlayers, g.Stats.MaxPlayers
		if min == max {
			return fmt.Sprintf("%d Player(s)", min), min
		}
		return fmt.Sprintf("%d-%d Players", min, max), min
	})
}

// The five rating bands plus "Unrated" for a rating of exactly zero.
// Band order is fixed; empty bands are omitted.
var ratingBands = []struct {
	label string
	min   float64
}{
	{"9.0+ (Excellent)", 9.0},
	{"8.0-8.9 (Very Good)", 8.0},
	{"7.0-7.9 (Good)", 7.0},
	{"6.0-6.9 (Average)", 6.0},
	{"Below 6.0 (Poor)", math.SmallestNonzeroFloat64},
	{"Unrated", 0},
}

func groupByRating(list []models.GameRecord) []GroupBucket {
	return accumulate(list, func(g models.GameRecord) (string, int) {
		for i, band := range ratingBands {
			if g.Stats.Rating >= band.min {
				return band.label, i
			}
		}
		return "Unrated", len(ratingBands) - 1
	})
}

func groupByBestPlayers(list []models.GameRecord) []GroupBucket {
	return accumulate(list, func(g models.GameRecord) (string, int) {
		best := bestPlayerCount(g.Stats.MinPlayers, g.Stats.MaxPlayers)
		return fmt.Sprintf("Best with %d player(s)", best), best
	})
}

// bestPlayerCount approximates the typical best player count. The
// formula is a heuristic carried over for output parity, not a verified
// fact about any game.
func bestPlayerCount(min, max int) int {
	if max <= min {
		return min
	}
	if max-min == 1 {
		return max
	}
	best := min + int(math.Ceil(float64(max-min)*0.67))
	if best > max {
		best = max
	}
	return best
}

// accumulate buckets games by the key function, keeping first-seen order
// during accumulation, then orders buckets ascending by sort key.
func accumulate(list []models.GameRecord, key func(models.GameRecord) (string, int)) []GroupBucket {
	index := make(map[string]int)
	buckets := make([]GroupBucket, 0)
	for _, g := range list {
		label, sortKey := key(g)
		pos, ok := index[label]
		if !ok {
			pos = len(buckets)
			index[label] = pos
			buckets = append(buckets, GroupBucket{Label: label, sortKey: sortKey})
		}
		buckets[pos].Games = append(buckets[pos].Games, g)
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].sortKey < buckets[j].sortKey
	})
	return buckets
}
