package videogen

import (
	"context"

	"github.com/pixevo/videogen-api/internal/piapi"
)

// PiAPIAdapter adapts the PiAPI unified task API to the Adapter
// interface. The task type is derived from the request: a source image
// makes it an image2video task, otherwise text2video.
type PiAPIAdapter struct {
	client piapi.Client
}

// NewPiAPIAdapter creates a new PiAPI adapter.
func NewPiAPIAdapter(client piapi.Client) *PiAPIAdapter {
	return &PiAPIAdapter{client: client}
}

// Submit creates a task for the request.
func (a *PiAPIAdapter) Submit(ctx context.Context, req GenerationRequest, model ModelConfig) GenerationResult {
	taskType := piapi.TaskTypeTextToVideo
	if req.ImageURL != "" {
		taskType = piapi.TaskTypeImageToVideo
	}

	input := piapi.TaskInput{
		Prompt:         req.Prompt,
		NegativePrompt: req.NegativePrompt,
		Duration:       req.Duration,
		AspectRatio:    req.AspectRatio,
		Resolution:     req.Resolution,
		FPS:            req.FPS,
		Seed:           req.Seed,
		ImageURL:       req.ImageURL,
	}

	task, err := a.client.CreateTask(ctx, model.ProviderModelID, taskType, input, req.WebhookURL)
	if err != nil {
		return failedResult(ProviderPiAPI, errorText(err))
	}

	return GenerationResult{
		Success:       true,
		JobID:         task.TaskID,
		Provider:      ProviderPiAPI,
		Status:        StatusProcessing,
		EstimatedTime: model.ProcessingTime,
	}
}

// CheckStatus fetches the task and maps its status vocabulary.
func (a *PiAPIAdapter) CheckStatus(ctx context.Context, jobID string) GenerationResult {
	task, err := a.client.GetTask(ctx, jobID)
	if err != nil {
		return failedJobResult(ProviderPiAPI, jobID, errorText(err))
	}

	switch task.Status {
	case piapi.StatusCompleted, piapi.StatusSuccess:
		return GenerationResult{
			Success:      true,
			JobID:        jobID,
			Provider:     ProviderPiAPI,
			Status:       StatusCompleted,
			VideoURL:     task.VideoURL(),
			ThumbnailURL: task.ThumbnailURL(),
		}
	case piapi.StatusFailed:
		return failedJobResult(ProviderPiAPI, jobID, task.ErrorMessage())
	default:
		// pending, staged, processing.
		return GenerationResult{
			Success:  true,
			JobID:    jobID,
			Provider: ProviderPiAPI,
			Status:   StatusProcessing,
		}
	}
}

// Cancel requests cancellation of the task.
func (a *PiAPIAdapter) Cancel(ctx context.Context, jobID string) bool {
	return a.client.CancelTask(ctx, jobID) == nil
}

// Compile-time check that PiAPIAdapter implements Adapter.
var _ Adapter = (*PiAPIAdapter)(nil)
