package videogen

import (
	"context"
	"strconv"
	"strings"

	"github.com/pixevo/videogen-api/internal/fal"
)

// falJobIDSep joins the queue app namespace and the request ID into
// the job ID this adapter hands out. Status and cancel calls need the
// app path back, and the job ID is the only thing callers retain, so
// the adapter makes it self-describing instead of re-deriving the app
// from a registry lookup.
const falJobIDSep = "::"

// FalAdapter adapts the fal.ai queue API to the Adapter interface.
// Unlike the other providers, fal has no single submission endpoint:
// each model family lives on its own queue and expects its own payload
// shape, so submission branches per model.
type FalAdapter struct {
	client fal.Client
}

// NewFalAdapter creates a new fal adapter.
func NewFalAdapter(client fal.Client) *FalAdapter {
	return &FalAdapter{client: client}
}

// klingPayload is the submission shape of the kling-video family.
// Kling wants the duration as a string.
type klingPayload struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt,omitempty"`
	Duration       string `json:"duration,omitempty"`
	AspectRatio    string `json:"aspect_ratio,omitempty"`
	ImageURL       string `json:"image_url,omitempty"`
}

// veoPayload is the submission shape of the veo family. Veo expects a
// duration with a unit suffix and an explicit audio switch.
type veoPayload struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt,omitempty"`
	Duration       string `json:"duration,omitempty"`
	AspectRatio    string `json:"aspect_ratio,omitempty"`
	GenerateAudio  bool   `json:"generate_audio"`
	Seed           *int   `json:"seed,omitempty"`
}

// genericPayload is the submission shape used for model families
// without special casing.
type genericPayload struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt,omitempty"`
	Duration       int    `json:"duration,omitempty"`
	AspectRatio    string `json:"aspect_ratio,omitempty"`
	Resolution     string `json:"resolution,omitempty"`
	ImageURL       string `json:"image_url,omitempty"`
	Seed           *int   `json:"seed,omitempty"`
}

// Submit enqueues a generation on the model's queue endpoint.
func (a *FalAdapter) Submit(ctx context.Context, req GenerationRequest, model ModelConfig) GenerationResult {
	endpoint := falEndpoint(model, req.ImageURL != "")
	payload := falPayload(req, model)

	requestID, err := a.client.Submit(ctx, endpoint, payload)
	if err != nil {
		return failedResult(ProviderFal, errorText(err))
	}

	return GenerationResult{
		Success:       true,
		JobID:         falApp(endpoint) + falJobIDSep + requestID,
		Provider:      ProviderFal,
		Status:        StatusProcessing,
		EstimatedTime: model.ProcessingTime,
	}
}

// CheckStatus fetches the queue status and, once completed, performs
// the second fetch for the result payload.
func (a *FalAdapter) CheckStatus(ctx context.Context, jobID string) GenerationResult {
	app, requestID, ok := splitFalJobID(jobID)
	if !ok {
		return failedJobResult(ProviderFal, jobID, "fal: malformed job ID")
	}

	status, err := a.client.GetStatus(ctx, app, requestID)
	if err != nil {
		return failedJobResult(ProviderFal, jobID, errorText(err))
	}

	switch status.Status {
	case fal.StatusCompleted:
		raw, err := a.client.GetResult(ctx, app, requestID)
		if err != nil {
			return failedJobResult(ProviderFal, jobID, errorText(err))
		}
		videoURL, thumbnailURL := fal.ParseResult(raw)
		return GenerationResult{
			Success:      true,
			JobID:        jobID,
			Provider:     ProviderFal,
			Status:       StatusCompleted,
			VideoURL:     videoURL,
			ThumbnailURL: thumbnailURL,
		}
	case fal.StatusFailed:
		msg := status.Error
		if msg == "" {
			// Some families only report the failure detail in the
			// result payload.
			if raw, err := a.client.GetResult(ctx, app, requestID); err == nil {
				msg = fal.ParseResultError(raw)
			}
		}
		return failedJobResult(ProviderFal, jobID, msg)
	default:
		// IN_QUEUE, IN_PROGRESS.
		return GenerationResult{
			Success:  true,
			JobID:    jobID,
			Provider: ProviderFal,
			Status:   StatusProcessing,
		}
	}
}

// Cancel asks the queue to cancel the request.
func (a *FalAdapter) Cancel(ctx context.Context, jobID string) bool {
	app, requestID, ok := splitFalJobID(jobID)
	if !ok {
		return false
	}
	return a.client.CancelRequest(ctx, app, requestID) == nil
}

// falEndpoint picks the queue endpoint for the model, appending the
// generation mode segment for families that split text- and
// image-to-video onto separate endpoints.
func falEndpoint(model ModelConfig, hasImage bool) string {
	switch {
	case strings.HasPrefix(model.ProviderModelID, "fal-ai/kling-video"):
		if hasImage {
			return model.ProviderModelID + "/image-to-video"
		}
		return model.ProviderModelID + "/text-to-video"
	default:
		return model.ProviderModelID
	}
}

// falPayload builds the submission payload for the model's family.
func falPayload(req GenerationRequest, model ModelConfig) any {
	switch {
	case strings.HasPrefix(model.ProviderModelID, "fal-ai/kling-video"):
		return klingPayload{
			Prompt:         req.Prompt,
			NegativePrompt: req.NegativePrompt,
			Duration:       strconv.Itoa(req.Duration),
			AspectRatio:    req.AspectRatio,
			ImageURL:       req.ImageURL,
		}
	case strings.HasPrefix(model.ProviderModelID, "fal-ai/veo"):
		return veoPayload{
			Prompt:         req.Prompt,
			NegativePrompt: req.NegativePrompt,
			Duration:       strconv.Itoa(req.Duration) + "s",
			AspectRatio:    req.AspectRatio,
			GenerateAudio:  model.SupportsAudio,
			Seed:           req.Seed,
		}
	default:
		return genericPayload{
			Prompt:         req.Prompt,
			NegativePrompt: req.NegativePrompt,
			Duration:       req.Duration,
			AspectRatio:    req.AspectRatio,
			Resolution:     req.Resolution,
			ImageURL:       req.ImageURL,
			Seed:           req.Seed,
		}
	}
}

// falApp reduces a queue endpoint to its app namespace, the first two
// path segments ("fal-ai/kling-video/v2.5-turbo/pro/text-to-video"
// polls under "fal-ai/kling-video").
func falApp(endpoint string) string {
	parts := strings.SplitN(endpoint, "/", 3)
	if len(parts) < 2 {
		return endpoint
	}
	return parts[0] + "/" + parts[1]
}

// splitFalJobID splits a composite job ID back into app and request ID.
func splitFalJobID(jobID string) (app, requestID string, ok bool) {
	app, requestID, ok = strings.Cut(jobID, falJobIDSep)
	if !ok || app == "" || requestID == "" {
		return "", "", false
	}
	return app, requestID, true
}

// Compile-time check that FalAdapter implements Adapter.
var _ Adapter = (*FalAdapter)(nil)
