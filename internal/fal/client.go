package fal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Static errors for fal client operations.
var (
	// ErrAPIKeyNotSet is returned when no API key is configured.
	// The check happens at call time, not construction.
	ErrAPIKeyNotSet = errors.New("fal: FAL_KEY is not set")
	// ErrAppRequired is returned when the queue app path is empty.
	ErrAppRequired = errors.New("fal: queue app path is required")
	// ErrRequestIDRequired is returned when the request ID is empty.
	ErrRequestIDRequired = errors.New("fal: request ID is required")
	// ErrNoRequestID is returned when the submit response has no request ID.
	ErrNoRequestID = errors.New("fal: submit failed: no request ID returned")
	// ErrServerError is returned when the server returns a 5xx status code.
	ErrServerError = errors.New("fal: server error")
	// ErrRateLimited is returned when the server returns a 429 status code.
	ErrRateLimited = errors.New("fal: rate limited")
	// ErrRequestFailed is returned when the request fails with a non-2xx status code.
	ErrRequestFailed = errors.New("fal: request failed")
)

// Client defines the interface for interacting with the fal queue API.
// The endpoint path is chosen by the caller because each model family
// has its own queue; status, result and cancel calls take the app
// namespace the submission was made under.
type Client interface {
	// Submit enqueues a generation on the given endpoint path and
	// returns the queue request ID.
	Submit(ctx context.Context, endpoint string, payload any) (requestID string, err error)

	// GetStatus fetches the queue status of a request.
	GetStatus(ctx context.Context, app, requestID string) (QueueStatus, error)

	// GetResult fetches the final result payload of a completed request.
	GetResult(ctx context.Context, app, requestID string) (json.RawMessage, error)

	// CancelRequest asks the queue to cancel a request.
	CancelRequest(ctx context.Context, app, requestID string) error
}

// HTTPClient is the HTTP implementation of the fal Client interface.
type HTTPClient struct {
	apiKey      string
	baseURL     string
	httpClient  *http.Client
	maxRetries  int
	baseBackoff time.Duration
}

// ClientOption is a function that configures an HTTPClient.
type ClientOption func(*HTTPClient)

// WithAPIKey sets the API key for authentication.
func WithAPIKey(key string) ClientOption {
	return func(hc *HTTPClient) {
		hc.apiKey = key
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(hc *HTTPClient) {
		hc.httpClient = c
	}
}

// WithBaseURL sets a custom base URL for the fal queue API.
func WithBaseURL(url string) ClientOption {
	return func(hc *HTTPClient) {
		hc.baseURL = url
	}
}

// WithMaxRetries sets the maximum number of retries for status fetches.
func WithMaxRetries(n int) ClientOption {
	return func(hc *HTTPClient) {
		hc.maxRetries = n
	}
}

// WithBaseBackoff sets the initial backoff duration for retries.
func WithBaseBackoff(d time.Duration) ClientOption {
	return func(hc *HTTPClient) {
		hc.baseBackoff = d
	}
}

// NewClient creates a new fal HTTP client. The key can be set via
// WithAPIKey; if not provided it is read from the environment variable
// FAL_KEY. An absent key is reported on first use.
func NewClient(opts ...ClientOption) *HTTPClient {
	c := &HTTPClient{
		baseURL:     "https://queue.fal.run",
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		maxRetries:  3,
		baseBackoff: 1 * time.Second,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.apiKey == "" {
		c.apiKey = os.Getenv("FAL_KEY")
	}

	return c
}

// Submit enqueues a generation and returns the queue request ID.
// Submission is never retried to avoid billing a duplicate request.
func (c *HTTPClient) Submit(ctx context.Context, endpoint string, payload any) (string, error) {
	if c.apiKey == "" {
		return "", ErrAPIKeyNotSet
	}
	if endpoint == "" {
		return "", ErrAppRequired
	}

	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("fal: marshal request: %w", err)
	}

	var resp submitResponse
	url := fmt.Sprintf("%s/%s", c.baseURL, endpoint)
	if err := c.doRequest(ctx, http.MethodPost, url, bodyBytes, &resp); err != nil {
		return "", err
	}

	if resp.RequestID == "" {
		return "", ErrNoRequestID
	}

	return resp.RequestID, nil
}

// GetStatus fetches the queue status of a request. Reads are
// idempotent, so transient failures are retried with backoff.
func (c *HTTPClient) GetStatus(ctx context.Context, app, requestID string) (QueueStatus, error) {
	if c.apiKey == "" {
		return QueueStatus{}, ErrAPIKeyNotSet
	}
	if app == "" {
		return QueueStatus{}, ErrAppRequired
	}
	if requestID == "" {
		return QueueStatus{}, ErrRequestIDRequired
	}

	var status QueueStatus
	url := fmt.Sprintf("%s/%s/requests/%s/status", c.baseURL, app, requestID)
	if err := c.doRequestWithRetry(ctx, http.MethodGet, url, nil, &status); err != nil {
		return QueueStatus{}, err
	}
	return status, nil
}

// GetResult fetches the final result payload of a completed request.
func (c *HTTPClient) GetResult(ctx context.Context, app, requestID string) (json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, ErrAPIKeyNotSet
	}
	if app == "" {
		return nil, ErrAppRequired
	}
	if requestID == "" {
		return nil, ErrRequestIDRequired
	}

	var raw json.RawMessage
	url := fmt.Sprintf("%s/%s/requests/%s", c.baseURL, app, requestID)
	if err := c.doRequestWithRetry(ctx, http.MethodGet, url, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// CancelRequest asks the queue to cancel a request.
func (c *HTTPClient) CancelRequest(ctx context.Context, app, requestID string) error {
	if c.apiKey == "" {
		return ErrAPIKeyNotSet
	}
	if app == "" {
		return ErrAppRequired
	}
	if requestID == "" {
		return ErrRequestIDRequired
	}

	url := fmt.Sprintf("%s/%s/requests/%s/cancel", c.baseURL, app, requestID)
	return c.doRequest(ctx, http.MethodPut, url, nil, nil)
}

// doRequestWithRetry performs an HTTP request with exponential backoff retry.
func (c *HTTPClient) doRequestWithRetry(ctx context.Context, method, url string, body []byte, result interface{}) error {
	var lastErr error
	backoff := c.baseBackoff

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("fal: context cancelled: %w", ctx.Err())
			case <-time.After(backoff):
				backoff *= 2
			}
		}

		err := c.doRequest(ctx, method, url, body, result)
		if err == nil {
			return nil
		}

		if !isRetryable(err) {
			return err
		}

		lastErr = err
	}

	return fmt.Errorf("fal: max retries exceeded: %w", lastErr)
}

// doRequest performs a single HTTP request.
func (c *HTTPClient) doRequest(ctx context.Context, method, url string, body []byte, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("fal: create request: %w", err)
	}

	req.Header.Set("Authorization", "Key "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &retryableError{err: fmt.Errorf("fal: request failed: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &retryableError{err: fmt.Errorf("fal: read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode >= 500 {
			return &retryableError{err: fmt.Errorf("%w %d: %s", ErrServerError, resp.StatusCode, string(respBody))}
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			return &retryableError{err: fmt.Errorf("%w: %s", ErrRateLimited, string(respBody))}
		}
		return fmt.Errorf("%w with status %d: %s", ErrRequestFailed, resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("fal: unmarshal response: %w", err)
		}
	}

	return nil
}

// retryableError wraps errors that should be retried.
type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return e.err.Error()
}

func (e *retryableError) Unwrap() error {
	return e.err
}

// isRetryable returns true if the error should be retried.
func isRetryable(err error) bool {
	var re *retryableError
	return errors.As(err, &re)
}

// Compile-time check that HTTPClient implements Client.
var _ Client = (*HTTPClient)(nil)
