package bgg

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"bgmix/internal/bgg/interfaces"
	"bgmix/internal/models"
	"bgmix/internal/providers"
	"bgmix/internal/structures"
)

const (
	sourceXML = "xml"

	defaultRequestsPerSec = 2.0
	defaultBurst          = 1
	defaultRetryDelay     = 2 * time.Second
)

// XMLClient talks to the BGG XML API2. A freshly requested collection
// export answers 202 until it is ready, so fetches retry a bounded
// number of times with a fixed delay. All outbound calls share a rate
// limiter (BGG throttles per IP) and a circuit breaker.
type XMLClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[*upstreamResponse]
	retryCount int
	retryDelay time.Duration
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

type upstreamResponse struct {
	status int
	body   []byte
}

func NewXMLClient(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) *XMLClient {
	rps := conf.BGG.RequestsPerSec
	if rps <= 0 {
		rps = defaultRequestsPerSec
	}
	burst := conf.BGG.Burst
	if burst <= 0 {
		burst = defaultBurst
	}
	retryDelay := conf.BGG.RetryDelay
	if retryDelay <= 0 {
		retryDelay = defaultRetryDelay
	}

	breaker := gobreaker.NewCircuitBreaker[*upstreamResponse](gobreaker.Settings{
		Name: "bgg-xml",
	})

	return &XMLClient{
		baseURL:    strings.TrimSuffix(conf.BGG.XMLBaseURL, "/"),
		httpClient: &http.Client{Timeout: conf.BGG.RequestTimeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		breaker:    breaker,
		retryCount: conf.BGG.RetryCount,
		retryDelay: retryDelay,
		logger:     logger,
		metrics:    metrics,
	}
}

func (c *XMLClient) Source() string {
	return sourceXML
}

func (c *XMLClient) FetchCollection(ctx context.Context, username string) (models.UserCollection, error) {
	if username == "" {
		return models.UserCollection{}, fmt.Errorf("username must not be empty")
	}

	start := time.Now()
	defer func() {
		c.metrics.ObserveFetchDuration(sourceXML, time.Since(start))
	}()

	reqURL := fmt.Sprintf("%s/collection?username=%s&stats=1&own=1", c.baseURL, url.QueryEscape(username))

	for attempt := 0; ; attempt++ {
		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			c.metrics.IncUpstreamFailures(sourceXML)
			return models.UserCollection{}, &interfaces.UpstreamError{Source: sourceXML, Err: err}
		}

		switch resp.status {
		case http.StatusOK:
			return c.parseCollection(username, resp.body)
		case http.StatusAccepted:
			if attempt >= c.retryCount {
				c.metrics.IncUpstreamFailures(sourceXML)
				return models.UserCollection{}, &interfaces.UpstreamError{
					Source: sourceXML,
					Err:    fmt.Errorf("collection for %q still processing after %d attempts", username, attempt+1),
				}
			}
			c.metrics.IncFetchRetries(sourceXML)
			c.logger.Debugf(providers.TypeApp, "Collection for %s still processing, retry %d", username, attempt+1)
			select {
			case <-time.After(c.retryDelay):
			case <-ctx.Done():
				return models.UserCollection{}, ctx.Err()
			}
		case http.StatusNotFound:
			return models.UserCollection{}, interfaces.ErrUserNotFound
		default:
			c.metrics.IncUpstreamFailures(sourceXML)
			return models.UserCollection{}, &interfaces.UpstreamError{
				Source: sourceXML,
				Err:    fmt.Errorf("unexpected status %d", resp.status),
			}
		}
	}
}

func (c *XMLClient) doRequest(ctx context.Context, reqURL string) (*upstreamResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return c.breaker.Execute(func() (*upstreamResponse, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, fmt.Errorf("status %d", resp.StatusCode)
		}
		return &upstreamResponse{status: resp.StatusCode, body: body}, nil
	})
}

func (c *XMLClient) parseCollection(username string, body []byte) (models.UserCollection, error) {
	// BGG reports unknown usernames as an error document with status 200.
	var errDoc xmlErrors
	if err := xml.Unmarshal(body, &errDoc); err == nil && len(errDoc.Errors) > 0 {
		if strings.Contains(strings.ToLower(errDoc.Errors[0].Message), "invalid username") {
			return models.UserCollection{}, interfaces.ErrUserNotFound
		}
		return models.UserCollection{}, &interfaces.UpstreamError{
			Source: sourceXML,
			Err:    fmt.Errorf("upstream error: %s", errDoc.Errors[0].Message),
		}
	}

	var doc xmlCollection
	if err := xml.Unmarshal(body, &doc); err != nil {
		c.metrics.IncUpstreamFailures(sourceXML)
		return models.UserCollection{}, &interfaces.UpstreamError{Source: sourceXML, Err: fmt.Errorf("malformed response: %w", err)}
	}

	col := normalizeXMLCollection(username, &doc)
	if col.Summary.TotalItems == 0 {
		return col, interfaces.ErrCollectionEmpty
	}
	return col, nil
}
