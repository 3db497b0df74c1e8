// Package replicate provides an HTTP client for the Replicate
// predictions API, covering the video generation models served there.
package replicate

import "encoding/json"

// Status values returned by the Replicate API for a prediction.
const (
	StatusStarting   = "starting"
	StatusProcessing = "processing"
	StatusSucceeded  = "succeeded"
	StatusFailed     = "failed"
	StatusCanceled   = "canceled"
)

// PredictionInput is the model input for a video generation prediction.
// Field names follow Replicate's schema for the supported video models.
type PredictionInput struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt,omitempty"`
	Duration       int    `json:"duration,omitempty"`
	AspectRatio    string `json:"aspect_ratio,omitempty"`
	Resolution     string `json:"resolution,omitempty"`
	FPS            int    `json:"fps,omitempty"`
	Seed           *int   `json:"seed,omitempty"`
	Image          string `json:"image,omitempty"`
}

// createRequest is the request body for POST /predictions.
type createRequest struct {
	Model               string          `json:"model"`
	Input               PredictionInput `json:"input"`
	Webhook             string          `json:"webhook,omitempty"`
	WebhookEventsFilter []string        `json:"webhook_events_filter,omitempty"`
}

// Prediction is the prediction resource returned by create and get.
// Output and Error are kept raw because Replicate's shapes vary per
// model: output is a bare URL string or an array of URL strings, and
// error is a string, an object, or null.
type Prediction struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Output json.RawMessage `json:"output,omitempty"`
	Error  json.RawMessage `json:"error,omitempty"`
}

// OutputURL unwraps the prediction output into a media URL. It accepts
// a bare string or an array of strings (first element wins) and returns
// "" for anything else.
func (p Prediction) OutputURL() string {
	if len(p.Output) == 0 {
		return ""
	}
	var single string
	if err := json.Unmarshal(p.Output, &single); err == nil {
		return single
	}
	var many []string
	if err := json.Unmarshal(p.Output, &many); err == nil && len(many) > 0 {
		return many[0]
	}
	return ""
}

// ErrorMessage unwraps the prediction error into plain text. It accepts
// a bare string or an object carrying a detail/message field.
func (p Prediction) ErrorMessage() string {
	if len(p.Error) == 0 {
		return ""
	}
	var single string
	if err := json.Unmarshal(p.Error, &single); err == nil {
		return single
	}
	var obj struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(p.Error, &obj); err == nil {
		if obj.Detail != "" {
			return obj.Detail
		}
		return obj.Message
	}
	return string(p.Error)
}
