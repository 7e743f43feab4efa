// SPDX-License-Identifier: MIT

package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// Sentinel errors returned by counters.
var (
	// ErrEndpoint indicates an unusable search endpoint URL.
	ErrEndpoint = errors.New("web: invalid endpoint")

	// ErrStatus indicates a non-200 reply from the search endpoint.
	ErrStatus = errors.New("web: unexpected HTTP status")

	// ErrNoCount indicates a reply without an estimated result count.
	ErrNoCount = errors.New("web: response carries no result count")

	// ErrEmptyTerm indicates a count request for an empty term.
	ErrEmptyTerm = errors.New("web: empty term")
)

// Counter reports the estimated number of pages matching a query.
// A query made of several terms is the terms joined by a single space.
type Counter interface {
	Count(ctx context.Context, term string) (int64, error)
}

// Default request pacing, well below what public search APIs tolerate.
const (
	DefaultRequestsPerSecond = 1.0
	DefaultBurst             = 1
	maxResponseBytes         = 1 << 20

	// maxFetchTime bounds a shared fetch, rate-limiter wait included.
	maxFetchTime = time.Minute
)

// HTTPCounter fetches counts with GET <endpoint>?q=<term> and reads
// responseData.cursor.estimatedResultCount from the JSON reply.
// Safe for concurrent use.
type HTTPCounter struct {
	endpoint *url.URL
	client   *http.Client
	limiter  *rate.Limiter
	group    singleflight.Group
}

var _ Counter = (*HTTPCounter)(nil)

// CounterOption configures an HTTPCounter.
type CounterOption func(*HTTPCounter)

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(c *http.Client) CounterOption {
	if c == nil {
		panic("web: WithHTTPClient(nil)")
	}

	return func(h *HTTPCounter) { h.client = c }
}

// WithRate sets the sustained request rate and burst size.
// Panics on a non-positive rate or burst.
func WithRate(perSecond float64, burst int) CounterOption {
	if perSecond <= 0 || burst <= 0 {
		panic(fmt.Sprintf("web: WithRate(%g,%d): rate and burst must be > 0", perSecond, burst))
	}

	return func(h *HTTPCounter) { h.limiter = rate.NewLimiter(rate.Limit(perSecond), burst) }
}

// NewHTTPCounter validates endpoint and returns a counter for it.
func NewHTTPCounter(endpoint string, opts ...CounterOption) (*HTTPCounter, error) {
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%q: %w", endpoint, ErrEndpoint)
	}

	h := &HTTPCounter{
		endpoint: u,
		client:   &http.Client{Timeout: 10 * time.Second},
		limiter:  rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), DefaultBurst),
	}
	for _, opt := range opts {
		opt(h)
	}

	return h, nil
}

// Count implements Counter. Concurrent calls for the same term share one
// request. The shared request is detached from any single caller, so a
// caller giving up returns ctx.Err() without failing the others.
func (h *HTTPCounter) Count(ctx context.Context, term string) (int64, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return 0, ErrEmptyTerm
	}

	ch := h.group.DoChan(term, func() (interface{}, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), maxFetchTime)
		defer cancel()

		return h.fetch(fctx, term)
	})

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return 0, res.Err
		}
		return res.Val.(int64), nil
	}
}

func (h *HTTPCounter) fetch(ctx context.Context, term string) (int64, error) {
	if err := h.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	u := *h.endpoint
	q := u.Query()
	q.Set("q", term)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("querying %q: %w", term, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("querying %q: %d: %w", term, resp.StatusCode, ErrStatus)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, fmt.Errorf("reading response: %w", err)
	}

	return decodeCount(body)
}

// searchResponse mirrors the part of the search API reply we read.
type searchResponse struct {
	ResponseData *struct {
		Cursor struct {
			EstimatedResultCount *resultCount `json:"estimatedResultCount"`
		} `json:"cursor"`
	} `json:"responseData"`
}

// resultCount accepts both "13700" and 13700.
type resultCount int64

func (n *resultCount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("estimatedResultCount %s: %w", b, ErrNoCount)
	}
	*n = resultCount(v)

	return nil
}

func decodeCount(body []byte) (int64, error) {
	var r searchResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return 0, fmt.Errorf("decoding response: %w", err)
	}
	if r.ResponseData == nil || r.ResponseData.Cursor.EstimatedResultCount == nil {
		return 0, ErrNoCount
	}
	n := int64(*r.ResponseData.Cursor.EstimatedResultCount)
	if n < 0 {
		return 0, fmt.Errorf("negative count %d: %w", n, ErrNoCount)
	}

	return n, nil
}
