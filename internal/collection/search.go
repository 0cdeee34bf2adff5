package collection

import (
	"strings"

	"github.com/arbovm/levenshtein"
	"github.com/sahilm/fuzzy"

	"bgmix/internal/models"
)

const defaultSearchThreshold = 0.25

// Searcher filters game lists by approximate name match. A game passes
// when its name contains the query, matches it as a subsequence, or one
// of its name tokens is within the normalized edit-distance threshold.
type Searcher struct {
	threshold float64
}

func NewSearcher(threshold float64) *Searcher {
	if threshold <= 0 {
		threshold = defaultSearchThreshold
	}
	return &Searcher{threshold: threshold}
}

type gameNames []models.GameRecord

func (g gameNames) Len() int            { return len(g) }
func (g gameNames) String(i int) string { return strings.ToLower(g[i].Name) }

// Search returns the games matching query, preserving input order.
// Queries shorter than two characters pass everything through.
func (s *Searcher) Search(list []models.GameRecord, query string) []models.GameRecord {
	query = strings.ToLower(strings.TrimSpace(query))
	if len([]rune(query)) < 2 {
		return list
	}

	matched := make(map[int]struct{})
	for _, m := range fuzzy.FindFrom(query, gameNames(list)) {
		matched[m.Index] = struct{}{}
	}

	out := make([]models.GameRecord, 0, len(list))
	for i, g := range list {
		if _, ok := matched[i]; ok {
			out = append(out, g)
			continue
		}
		if s.nameMatches(strings.ToLower(g.Name), query) {
			out = append(out, g)
		}
	}
	return out
}

// nameMatches covers what subsequence matching misses: typos and
// transpositions, scored by edit distance against each name token.
func (s *Searcher) nameMatches(name, query string) bool {
	if strings.Contains(name, query) {
		return true
	}
	for _, token := range strings.Fields(name) {
		if s.similarity(token, query) <= s.threshold {
			return true
		}
	}
	return s.similarity(name, query) <= s.threshold
}

func (s *Searcher) similarity(a, b string) float64 {
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 0
	}
	return float64(levenshtein.Distance(a, b)) / float64(longest)
}
