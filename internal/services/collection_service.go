package services

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"bgmix/internal/bgg/interfaces"
	"bgmix/internal/collection"
	"bgmix/internal/models"
	"bgmix/internal/structures"
)

type CollectionServiceInterface interface {
	FetchAll(ctx context.Context, usernames []string) *models.MergedCollection
	BuildView(games []models.GameRecord, view *models.ViewParams) ([]models.GameRecord, []collection.GroupBucket)
}

// CollectionService fans out one fetch per username and merges the
// results. Fetches run concurrently but the merge consumes them in
// input order, so owner ordering is deterministic for a given request
// regardless of which fetch finishes first.
type CollectionService struct {
	fetcher  interfaces.FetcherInterface
	searcher *collection.Searcher
}

func NewCollectionService(conf *structures.Config, fetcher interfaces.FetcherInterface) CollectionServiceInterface {
	return &CollectionService{
		fetcher:  fetcher,
		searcher: collection.NewSearcher(conf.Search.Threshold),
	}
}

type fetchResult struct {
	col models.UserCollection
	err error
}

func (cs *CollectionService) FetchAll(ctx context.Context, usernames []string) *models.MergedCollection {
	results := make([]fetchResult, len(usernames))

	// Per-user failures are captured in the result slot, never returned
	// through the group: one bad username must not cancel the rest.
	g, ctx := errgroup.WithContext(ctx)
	for i, username := range usernames {
		i, username := i, username
		g.Go(func() error {
			col, err := cs.fetcher.FetchCollection(ctx, username)
			results[i] = fetchResult{col: col, err: err}
			return nil
		})
	}
	_ = g.Wait()

	collections := make([]models.UserCollection, 0, len(usernames))
	failures := make([]models.FetchFailure, 0)
	for i, res := range results {
		switch {
		case res.err == nil:
			collections = append(collections, res.col)
		case errors.Is(res.err, interfaces.ErrCollectionEmpty):
			// empty collection: the summary still counts, zero games
			collections = append(collections, models.UserCollection{Summary: res.col.Summary})
		default:
			failures = append(failures, models.FetchFailure{
				Username: usernames[i],
				Reason:   res.err.Error(),
			})
		}
	}

	merged := collection.Merge(collections)
	merged.Failures = failures
	return merged
}

// BuildView applies filter, search, sort and grouping in that order.
// All steps are pure; invalid parameters were already collapsed to safe
// fallbacks during parsing.
func (cs *CollectionService) BuildView(games []models.GameRecord, view *models.ViewParams) ([]models.GameRecord, []collection.GroupBucket) {
	filtered := collection.ApplyFilters(games, view.Criteria)
	filtered = cs.searcher.Search(filtered, view.Query)
	sorted := collection.Sort(filtered, view.Sort)
	return sorted, collection.Group(sorted, view.Group)
}
