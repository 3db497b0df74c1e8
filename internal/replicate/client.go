package replicate

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

// Static errors for Replicate client operations.
var (
	// ErrAPITokenNotSet is returned when no API token is configured.
	// The check happens at call time, not construction, so a missing
	// credential only fails requests against this provider.
	ErrAPITokenNotSet = errors.New("replicate: REPLICATE_API_TOKEN is not set")
	// ErrPredictionIDRequired is returned when the prediction ID is empty.
	ErrPredictionIDRequired = errors.New("replicate: prediction ID is required")
	// ErrNoPredictionID is returned when the create response has no ID.
	ErrNoPredictionID = errors.New("replicate: create failed: no prediction ID returned")
	// ErrServerError is returned when the server returns a 5xx status code.
	ErrServerError = errors.New("replicate: server error")
	// ErrRateLimited is returned when the server returns a 429 status code.
	ErrRateLimited = errors.New("replicate: rate limited")
	// ErrRequestFailed is returned when the request fails with a non-2xx status code.
	ErrRequestFailed = errors.New("replicate: request failed")
)

// Client defines the interface for interacting with the Replicate API.
type Client interface {
	// CreatePrediction submits a video generation prediction.
	CreatePrediction(ctx context.Context, model string, input PredictionInput, webhookURL string) (Prediction, error)

	// GetPrediction fetches the current state of a prediction.
	GetPrediction(ctx context.Context, predictionID string) (Prediction, error)

	// CancelPrediction requests cancellation of a running prediction.
	CancelPrediction(ctx context.Context, predictionID string) error
}

// HTTPClient is the HTTP implementation of the Replicate Client interface.
type HTTPClient struct {
	apiToken    string
	baseURL     string
	httpClient  *http.Client
	maxRetries  int
	baseBackoff time.Duration
}

// ClientOption is a function that configures an HTTPClient.
type ClientOption func(*HTTPClient)

// WithAPIToken sets the API token for authentication.
func WithAPIToken(token string) ClientOption {
	return func(hc *HTTPClient) {
		hc.apiToken = token
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(hc *HTTPClient) {
		hc.httpClient = c
	}
}

// WithBaseURL sets a custom base URL for the Replicate API.
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

// NewClient creates a new Replicate HTTP client. The token can be set
// via WithAPIToken; if not provided it is read from the environment
// variable REPLICATE_API_TOKEN. An absent token is not an error here:
// it is reported on first use so one unconfigured provider does not
// take down the rest.
func NewClient(opts ...ClientOption) *HTTPClient {
	c := &HTTPClient{
		baseURL:     "https://api.replicate.com/v1",
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		maxRetries:  3,
		baseBackoff: 1 * time.Second,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.apiToken == "" {
		c.apiToken = os.Getenv("REPLICATE_API_TOKEN")
	}

	return c
}

// CreatePrediction submits a video generation prediction and returns it.
// Submission is never retried: a duplicate create would start (and bill)
// a second remote job.
func (c *HTTPClient) CreatePrediction(ctx context.Context, model string, input PredictionInput, webhookURL string) (Prediction, error) {
	if c.apiToken == "" {
		return Prediction{}, ErrAPITokenNotSet
	}

	reqBody := createRequest{
		Model: model,
		Input: input,
	}
	if webhookURL != "" {
		reqBody.Webhook = webhookURL
		reqBody.WebhookEventsFilter = []string{"completed"}
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return Prediction{}, fmt.Errorf("replicate: marshal request: %w", err)
	}

	var pred Prediction
	url := c.baseURL + "/predictions"
	if err := c.doRequest(ctx, http.MethodPost, url, bodyBytes, &pred); err != nil {
		return Prediction{}, err
	}

	if pred.ID == "" {
		if msg := pred.ErrorMessage(); msg != "" {
			return Prediction{}, fmt.Errorf("%w: %s", ErrRequestFailed, msg)
		}
		return Prediction{}, ErrNoPredictionID
	}

	return pred, nil
}

// GetPrediction fetches the current state of a prediction. Reads are
// idempotent, so transient failures are retried with backoff.
func (c *HTTPClient) GetPrediction(ctx context.Context, predictionID string) (Prediction, error) {
	if c.apiToken == "" {
		return Prediction{}, ErrAPITokenNotSet
	}
	if predictionID == "" {
		return Prediction{}, ErrPredictionIDRequired
	}

	var pred Prediction
	url := fmt.Sprintf("%s/predictions/%s", c.baseURL, predictionID)
	if err := c.doRequestWithRetry(ctx, http.MethodGet, url, nil, &pred); err != nil {
		return Prediction{}, err
	}
	return pred, nil
}

// CancelPrediction requests cancellation of a running prediction.
func (c *HTTPClient) CancelPrediction(ctx context.Context, predictionID string) error {
	if c.apiToken == "" {
		return ErrAPITokenNotSet
	}
	if predictionID == "" {
		return ErrPredictionIDRequired
	}

	url := fmt.Sprintf("%s/predictions/%s/cancel", c.baseURL, predictionID)
	return c.doRequest(ctx, http.MethodPost, url, nil, nil)
}

// doRequestWithRetry performs an HTTP request with exponential backoff retry.
func (c *HTTPClient) doRequestWithRetry(ctx context.Context, method, url string, body []byte, result interface{}) error {
	var lastErr error
	backoff := c.baseBackoff

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("replicate: context cancelled: %w", ctx.Err())
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

	return fmt.Errorf("replicate: max retries exceeded: %w", lastErr)
}

// doRequest performs a single HTTP request.
func (c *HTTPClient) doRequest(ctx context.Context, method, url string, body []byte, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("replicate: create request: %w", err)
	}

	req.Header.Set("Authorization", "Token "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &retryableError{err: fmt.Errorf("replicate: request failed: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &retryableError{err: fmt.Errorf("replicate: read response: %w", err)}
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
			return fmt.Errorf("replicate: unmarshal response: %w", err)
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
