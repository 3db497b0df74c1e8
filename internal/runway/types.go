// Package runway provides an HTTP client for the Runway task API,
// covering the Gen-3/Gen-4 video generation models.
package runway

import "strings"

// Status values returned by the Runway task API.
const (
	StatusPending   = "PENDING"
	StatusThrottled = "THROTTLED"
	StatusRunning   = "RUNNING"
	StatusSucceeded = "SUCCEEDED"
	StatusFailed    = "FAILED"
)

// GenerateRequest is the request body for POST /v1/text_to_video.
// Runway spells the ratio with an underscore instead of a colon; use
// Ratio to convert from the normalized aspect ratio form.
type GenerateRequest struct {
	Model       string `json:"model"`
	PromptText  string `json:"promptText"`
	Duration    int    `json:"duration,omitempty"`
	Ratio       string `json:"ratio,omitempty"`
	PromptImage string `json:"promptImage,omitempty"`
	Seed        *int   `json:"seed,omitempty"`
}

// generateResponse is the response body for a task creation.
type generateResponse struct {
	ID    string `json:"id"`
	Error string `json:"error,omitempty"`
}

// Task is the task resource returned by GET /v1/tasks/{id}.
type Task struct {
	ID          string   `json:"id"`
	Status      string   `json:"status"`
	Output      []string `json:"output,omitempty"`
	Failure     string   `json:"failure,omitempty"`
	FailureCode string   `json:"failureCode,omitempty"`
}

// OutputURL unwraps the result media URL. Runway returns an array of
// output URLs; the first element is the generated video.
func (t Task) OutputURL() string {
	if len(t.Output) == 0 {
		return ""
	}
	return t.Output[0]
}

// ErrorMessage unwraps the task failure text, if any.
func (t Task) ErrorMessage() string {
	return t.Failure
}

// Ratio converts a normalized aspect ratio ("16:9") into Runway's
// underscore form ("16_9").
func Ratio(aspectRatio string) string {
	return strings.ReplaceAll(aspectRatio, ":", "_")
}
