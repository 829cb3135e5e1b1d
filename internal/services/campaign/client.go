package campaign

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/viralforge/studio/internal/httpclient"
	"github.com/viralforge/studio/internal/interfaces"
	"github.com/viralforge/studio/internal/models"
)

const (
	// DefaultTimeout is the default HTTP timeout for generation calls.
	DefaultTimeout = 90 * time.Second

	// DefaultRateLimit is the default rate limit (requests per second).
	DefaultRateLimit = 5
)

// APIClient posts campaign requests to the remote generation API and
// returns the raw response body for normalization. It never retries;
// retry policy belongs to the user, not the transport.
type APIClient struct {
	httpClient *http.Client
	logger     arbor.ILogger
	limiter    *rate.Limiter
}

// APIClientOption configures the APIClient.
type APIClientOption func(*APIClient)

// WithAPIHTTPClient sets a custom HTTP client.
func WithAPIHTTPClient(c *http.Client) APIClientOption {
	return func(cl *APIClient) {
		cl.httpClient = c
	}
}

// WithAPILogger sets a logger.
func WithAPILogger(logger arbor.ILogger) APIClientOption {
	return func(cl *APIClient) {
		cl.logger = logger
	}
}

// WithAPIRateLimit sets a custom rate limit.
func WithAPIRateLimit(requestsPerSecond int) APIClientOption {
	return func(cl *APIClient) {
		cl.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// NewAPIClient creates a new generation API client.
func NewAPIClient(opts ...APIClientOption) *APIClient {
	c := &APIClient{
		httpClient: httpclient.NewDefaultHTTPClient(DefaultTimeout),
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Generate POSTs the campaign request to the given endpoint and returns the
// raw response body. Fails with *interfaces.NetworkError on transport
// failure and *interfaces.ServerError on non-2xx.
func (c *APIClient) Generate(ctx context.Context, endpointURL string, request *models.CampaignRequest) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &interfaces.NetworkError{Op: "generation rate limit wait", Err: err}
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal campaign request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpointURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if c.logger != nil {
		c.logger.Debug().
			Str("endpoint", endpointURL).
			Str("product", request.Product.Name).
			Msg("Campaign generation request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &interfaces.NetworkError{Op: "campaign generation", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &interfaces.NetworkError{Op: "campaign generation read", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &interfaces.ServerError{
			Status:   resp.StatusCode,
			Body:     string(body),
			Endpoint: endpointURL,
		}
	}

	return body, nil
}
