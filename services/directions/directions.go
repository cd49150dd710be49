// Package directions wraps the external routing provider behind a
// read-through cache and an outbound rate limiter, so the scheduler can
// call it once per trip leg without worrying about quota or latency.
package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"shuttlesched/database/repository/cache"
	"shuttlesched/errs"
)

// Client resolves the driving distance and duration between two addresses.
// ok is false (with a nil error) when the provider answers with status "OK"
// but no routes or legs, so callers can tell "unreachable" from "the network
// broke". Any other provider status, ZERO_RESULTS included, is returned as
// an errs.ErrRoutingUnavailable error.
type Client interface {
	Route(ctx context.Context, from, to string, departureAt time.Time) (distanceMeters, durationSeconds int, ok bool, err error)
}

const defaultBaseURL = "https://maps.googleapis.com/maps/api/directions/json"

type googleClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      cache.Cache
	limiter    *rate.Limiter
	logger     *zap.Logger
	now        func() time.Time
}

// New builds a Client backed by the Google Directions API. cache may be
// nil, in which case every lookup falls straight through to the network.
func New(apiKey string, c cache.Cache, logger *zap.Logger) Client {
	return &googleClient{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      c,
		limiter:    rate.NewLimiter(rate.Limit(10), 10),
		logger:     logger,
		now:        time.Now,
	}
}

type directionsAPIResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		Legs []struct {
			Distance struct {
				Value int `json:"value"`
			} `json:"distance"`
			Duration struct {
				Value int `json:"value"`
			} `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}

func (g *googleClient) Route(ctx context.Context, from, to string, departureAt time.Time) (int, int, bool, error) {
	key := from + "|" + to

	if g.cache != nil {
		if v, ok, err := g.cache.Get(ctx, key); err != nil {
			g.logger.Warn("directions cache read failed, falling through to network", zap.Error(err))
		} else if ok {
			return v.DistanceMeters, v.DurationSeconds, true, nil
		}
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return 0, 0, false, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := g.buildURL(from, to, departureAt)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, 0, false, fmt.Errorf("build directions request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return 0, 0, false, fmt.Errorf("%w: %v", errs.ErrRoutingUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, false, fmt.Errorf("%w: http %d", errs.ErrRoutingUnavailable, resp.StatusCode)
	}

	var body directionsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, 0, false, fmt.Errorf("%w: decode response: %v", errs.ErrRoutingUnavailable, err)
	}

	if body.Status != "OK" {
		if body.ErrorMessage != "" {
			return 0, 0, false, fmt.Errorf("%w: provider status %s: %s", errs.ErrRoutingUnavailable, body.Status, body.ErrorMessage)
		}
		return 0, 0, false, fmt.Errorf("%w: provider status %s", errs.ErrRoutingUnavailable, body.Status)
	}
	if len(body.Routes) == 0 || len(body.Routes[0].Legs) == 0 {
		return 0, 0, false, nil
	}

	leg := body.Routes[0].Legs[0]
	duration := leg.Duration.Value
	distance := leg.Distance.Value

	if g.cache != nil {
		if err := g.cache.Put(ctx, key, cache.Value{DistanceMeters: distance, DurationSeconds: duration}); err != nil {
			g.logger.Warn("directions cache write failed", zap.Error(err))
		}
	}

	return distance, duration, true, nil
}

// buildURL omits departure_time entirely for lookups in the past or
// present; the provider treats its absence as "now" and there is no value
// in pinning traffic conditions to an instant that has already elapsed.
func (g *googleClient) buildURL(from, to string, departureAt time.Time) string {
	q := url.Values{}
	q.Set("origin", from)
	q.Set("destination", to)
	q.Set("key", g.apiKey)

	if departureAt.After(g.now()) {
		secs := int64(math.Ceil(float64(departureAt.UnixNano()) / float64(time.Second)))
		q.Set("departure_time", fmt.Sprintf("%d", secs))
	}

	return g.baseURL + "?" + q.Encode()
}
