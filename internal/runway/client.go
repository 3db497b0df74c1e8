package runway

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

// apiVersion is the value of the X-Runway-Version header the API requires.
const apiVersion = "2024-11-06"

// Static errors for Runway client operations.
var (
	// ErrAPIKeyNotSet is returned when no API key is configured.
	// The check happens at call time, not construction.
	ErrAPIKeyNotSet = errors.New("runway: RUNWAY_API_KEY is not set")
	// ErrTaskIDRequired is returned when the task ID is empty.
	ErrTaskIDRequired = errors.New("runway: task ID is required")
	// ErrNoTaskID is returned when the create response has no task ID.
	ErrNoTaskID = errors.New("runway: create failed: no task ID returned")
	// ErrServerError is returned when the server returns a 5xx status code.
	ErrServerError = errors.New("runway: server error")
	// ErrRateLimited is returned when the server returns a 429 status code.
	ErrRateLimited = errors.New("runway: rate limited")
	// ErrRequestFailed is returned when the request fails with a non-2xx status code.
	ErrRequestFailed = errors.New("runway: request failed")
)

// Client defines the interface for interacting with the Runway API.
// Runway has no cancellation endpoint; cancellation is handled one
// layer up by reporting it as unsupported.
type Client interface {
	// Generate submits a video generation task.
	Generate(ctx context.Context, req GenerateRequest) (taskID string, err error)

	// GetTask fetches the current state of a task.
	GetTask(ctx context.Context, taskID string) (Task, error)
}

// HTTPClient is the HTTP implementation of the Runway Client interface.
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

// WithBaseURL sets a custom base URL for the Runway API.
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

// NewClient creates a new Runway HTTP client. The key can be set via
// WithAPIKey; if not provided it is read from the environment variable
// RUNWAY_API_KEY. An absent key is reported on first use.
func NewClient(opts ...ClientOption) *HTTPClient {
	c := &HTTPClient{
		baseURL:     "https://api.dev.runwayml.com",
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		maxRetries:  3,
		baseBackoff: 1 * time.Second,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.apiKey == "" {
		c.apiKey = os.Getenv("RUNWAY_API_KEY")
	}

	return c
}

// Generate submits a video generation task and returns its ID.
// Submission is never retried to avoid billing a duplicate task.
func (c *HTTPClient) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if c.apiKey == "" {
		return "", ErrAPIKeyNotSet
	}

	bodyBytes, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("runway: marshal request: %w", err)
	}

	var resp generateResponse
	url := c.baseURL + "/v1/text_to_video"
	if err := c.doRequest(ctx, http.MethodPost, url, bodyBytes, &resp); err != nil {
		return "", err
	}

	if resp.ID == "" {
		if resp.Error != "" {
			return "", fmt.Errorf("%w: %s", ErrRequestFailed, resp.Error)
		}
		return "", ErrNoTaskID
	}

	return resp.ID, nil
}

// GetTask fetches the current state of a task. Reads are idempotent,
// so transient failures are retried with backoff.
func (c *HTTPClient) GetTask(ctx context.Context, taskID string) (Task, error) {
	if c.apiKey == "" {
		return Task{}, ErrAPIKeyNotSet
	}
	if taskID == "" {
		return Task{}, ErrTaskIDRequired
	}

	var task Task
	url := fmt.Sprintf("%s/v1/tasks/%s", c.baseURL, taskID)
	if err := c.doRequestWithRetry(ctx, http.MethodGet, url, nil, &task); err != nil {
		return Task{}, err
	}
	return task, nil
}

// doRequestWithRetry performs an HTTP request with exponential backoff retry.
func (c *HTTPClient) doRequestWithRetry(ctx context.Context, method, url string, body []byte, result interface{}) error {
	var lastErr error
	backoff := c.baseBackoff

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("runway: context cancelled: %w", ctx.Err())
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

	return fmt.Errorf("runway: max retries exceeded: %w", lastErr)
}

// doRequest performs a single HTTP request.
func (c *HTTPClient) doRequest(ctx context.Context, method, url string, body []byte, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("runway: create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Runway-Version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &retryableError{err: fmt.Errorf("runway: request failed: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &retryableError{err: fmt.Errorf("runway: read response: %w", err)}
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
			return fmt.Errorf("runway: unmarshal response: %w", err)
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
