package bgg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"bgmix/internal/bgg/interfaces"
	"bgmix/internal/models"
	"bgmix/internal/providers"
	"bgmix/internal/structures"
)

const sourceGraphQL = "graphql"

const collectionQuery = `query Collection($username: String!) {
  collection(username: $username) {
    totalItems
    publishedDate
    items {
      entryId
      status
      game {
        id name sortIndex thumbnail image yearPublished
        minPlayers maxPlayers minPlayTime maxPlayTime playingTime
        rating { average }
      }
    }
  }
}`

// GraphQLClient fetches collections through the GraphQL proxy. The proxy
// answers synchronously, so there is no still-processing retry loop;
// rate limiting and circuit breaking match the XML client.
type GraphQLClient struct {
	url        string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[*upstreamResponse]
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewGraphQLClient(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) *GraphQLClient {
	rps := conf.BGG.RequestsPerSec
	if rps <= 0 {
		rps = defaultRequestsPerSec
	}
	burst := conf.BGG.Burst
	if burst <= 0 {
		burst = defaultBurst
	}
	return &GraphQLClient{
		url:        conf.BGG.GraphQLURL,
		httpClient: &http.Client{Timeout: conf.BGG.RequestTimeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		breaker:    gobreaker.NewCircuitBreaker[*upstreamResponse](gobreaker.Settings{Name: "bgg-graphql"}),
		logger:     logger,
		metrics:    metrics,
	}
}

func (c *GraphQLClient) Source() string {
	return sourceGraphQL
}

type gqlRequest struct {
	Query     string            `json:"query"`
	Variables map[string]string `json:"variables"`
}

type gqlResponse struct {
	Data struct {
		Collection *struct {
			TotalItems    int       `json:"totalItems"`
			PublishedDate string    `json:"publishedDate"`
			Items         []gqlItem `json:"items"`
		} `json:"collection"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (c *GraphQLClient) FetchCollection(ctx context.Context, username string) (models.UserCollection, error) {
	if username == "" {
		return models.UserCollection{}, fmt.Errorf("username must not be empty")
	}

	start := time.Now()
	defer func() {
		c.metrics.ObserveFetchDuration(sourceGraphQL, time.Since(start))
	}()

	if err := c.limiter.Wait(ctx); err != nil {
		return models.UserCollection{}, err
	}

	payload, err := json.Marshal(gqlRequest{
		Query:     collectionQuery,
		Variables: map[string]string{"username": username},
	})
	if err != nil {
		return models.UserCollection{}, err
	}

	resp, err := c.breaker.Execute(func() (*upstreamResponse, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		httpResp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer httpResp.Body.Close()

		body, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return nil, err
		}
		if httpResp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("status %d", httpResp.StatusCode)
		}
		return &upstreamResponse{status: httpResp.StatusCode, body: body}, nil
	})
	if err != nil {
		c.metrics.IncUpstreamFailures(sourceGraphQL)
		return models.UserCollection{}, &interfaces.UpstreamError{Source: sourceGraphQL, Err: err}
	}

	var parsed gqlResponse
	if err := json.Unmarshal(resp.body, &parsed); err != nil {
		c.metrics.IncUpstreamFailures(sourceGraphQL)
		return models.UserCollection{}, &interfaces.UpstreamError{Source: sourceGraphQL, Err: fmt.Errorf("malformed response: %w", err)}
	}

	if len(parsed.Errors) > 0 {
		msg := parsed.Errors[0].Message
		if strings.Contains(strings.ToLower(msg), "not found") {
			return models.UserCollection{}, interfaces.ErrUserNotFound
		}
		return models.UserCollection{}, &interfaces.UpstreamError{Source: sourceGraphQL, Err: fmt.Errorf("upstream error: %s", msg)}
	}
	if parsed.Data.Collection == nil {
		return models.UserCollection{}, interfaces.ErrUserNotFound
	}

	col := parsed.Data.Collection
	items := make([]models.GameRecord, 0, len(col.Items))
	for _, it := range col.Items {
		items = append(items, normalizeGraphQLItem(username, it))
	}
	out := models.UserCollection{
		Summary: models.CollectionSummary{
			Username:      username,
			TotalItems:    col.TotalItems,
			PublishedDate: col.PublishedDate,
		},
		Items: items,
	}
	if col.TotalItems == 0 {
		return out, interfaces.ErrCollectionEmpty
	}
	return out, nil
}
