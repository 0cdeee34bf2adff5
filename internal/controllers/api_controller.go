package controllers

import (
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"

	"bgmix/internal/collection"
	"bgmix/internal/models"
	"bgmix/internal/providers"
	"bgmix/internal/services"
)

type ApiController struct {
	logger  providers.Logger
	service services.CollectionServiceInterface
	cache   providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, service services.CollectionServiceInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

type collectionsResponse struct {
	Collections []models.CollectionSummary `json:"collections"`
	Failures    []models.FetchFailure      `json:"failures,omitempty"`
	Boardgames  []models.GameRecord        `json:"boardgames"`
	Groups      []collection.GroupBucket   `json:"groups,omitempty"`
}

func parseUsernames(raw string) []string {
	parts := strings.Split(raw, ",")
	users := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			users = append(users, p)
		}
	}
	return users
}

// parseViewParams maps query values onto view parameters. Bad values
// collapse to safe fallbacks: no-op filters, name_asc, no grouping.
func parseViewParams(r *http.Request) *models.ViewParams {
	q := r.URL.Query()
	return &models.ViewParams{
		Criteria: models.FilterCriteria{
			NumberOfPlayers:   cast.ToInt(q.Get("players")),
			PlayingTimeBucket: cast.ToInt(q.Get("time")),
			MinRating:         cast.ToFloat64(q.Get("minRating")),
		},
		Query: q.Get("q"),
		Sort:  models.ParseSortKey(q.Get("sort")),
		Group: models.ParseGroupMode(q.Get("group")),
	}
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// GetCollections merges the collections of all requested users and
// applies the requested derived view. Per-user fetch failures show up
// in the failures field; they never fail the whole request.
func (ac *ApiController) GetCollections(w http.ResponseWriter, r *http.Request) {
	users := parseUsernames(r.URL.Query().Get("users"))
	if len(users) == 0 {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	view := parseViewParams(r)
	withGroups := r.URL.Query().Get("group") != ""

	cacheKey := "col:" + r.URL.Query().Encode()
	ac.serveFromCacheOrCompute(w, cacheKey, func() (any, error) {
		merged := ac.service.FetchAll(r.Context(), users)
		if merged.Malformed > 0 {
			ac.logger.Warnf(providers.TypeGet, "Merge saw %d items without an id", merged.Malformed)
		}

		games, groups := ac.service.BuildView(merged.Boardgames, view)
		resp := collectionsResponse{
			Collections: merged.Collections,
			Failures:    merged.Failures,
			Boardgames:  games,
		}
		if withGroups {
			resp.Groups = groups
		}
		return resp, nil
	})
}
