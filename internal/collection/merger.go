package collection

import (
	"fmt"

	"bgmix/internal/models"
)

// Merge combines per-user collections into one deduplicated game list.
// Games are keyed by their external id; the output keeps first-seen
// insertion order and every source collection appends its own owner
// entry, in input order. Duplicate usernames across inputs are kept as
// separate owner entries.
//
// Items without an id get a synthesized key so they stay distinct
// instead of collapsing under one empty key. The caller can inspect
// MergedCollection.Malformed to report them.
func Merge(collections []models.UserCollection) *models.MergedCollection {
	merged := &models.MergedCollection{
		Collections: make([]models.CollectionSummary, 0, len(collections)),
		Boardgames:  make([]models.GameRecord, 0),
	}

	index := make(map[string]int)
	for _, col := range collections {
		merged.Collections = append(merged.Collections, col.Summary)
		for i, item := range col.Items {
			key := item.ID
			if key == "" {
				key = fallbackKey(col.Summary.Username, entryID(item), i)
				merged.Malformed++
			}
			if pos, ok := index[key]; ok {
				existing := merged.Boardgames[pos]
				owners := make([]models.Owner, 0, len(existing.Owners)+len(item.Owners))
				owners = append(owners, existing.Owners...)
				owners = append(owners, item.Owners...)
				existing.Owners = owners
				merged.Boardgames[pos] = existing
				continue
			}
			record := item
			record.Owners = append([]models.Owner(nil), item.Owners...)
			index[key] = len(merged.Boardgames)
			merged.Boardgames = append(merged.Boardgames, record)
		}
	}
	return merged
}

func fallbackKey(username, entry string, idx int) string {
	if entry != "" {
		return fmt.Sprintf("~%s/%s", username, entry)
	}
	return fmt.Sprintf("~%s/#%d", username, idx)
}

func entryID(item models.GameRecord) string {
	if len(item.Owners) > 0 {
		return item.Owners[0].CollectionEntryID
	}
	return ""
}
