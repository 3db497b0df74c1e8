package videogen

import (
	"context"

	"github.com/pixevo/videogen-api/internal/runway"
)

// RunwayAdapter adapts the Runway task API to the Adapter interface.
// Runway exposes no cancellation endpoint, so Cancel always reports
// false instead of pretending.
type RunwayAdapter struct {
	client runway.Client
}

// NewRunwayAdapter creates a new Runway adapter.
func NewRunwayAdapter(client runway.Client) *RunwayAdapter {
	return &RunwayAdapter{client: client}
}

// Submit creates a generation task for the request.
func (a *RunwayAdapter) Submit(ctx context.Context, req GenerationRequest, model ModelConfig) GenerationResult {
	taskID, err := a.client.Generate(ctx, runway.GenerateRequest{
		Model:       model.ProviderModelID,
		PromptText:  req.Prompt,
		Duration:    req.Duration,
		Ratio:       runway.Ratio(req.AspectRatio),
		PromptImage: req.ImageURL,
		Seed:        req.Seed,
	})
	if err != nil {
		return failedResult(ProviderRunway, errorText(err))
	}

	return GenerationResult{
		Success:       true,
		JobID:         taskID,
		Provider:      ProviderRunway,
		Status:        StatusProcessing,
		EstimatedTime: model.ProcessingTime,
	}
}

// CheckStatus fetches the task and maps its status vocabulary.
func (a *RunwayAdapter) CheckStatus(ctx context.Context, jobID string) GenerationResult {
	task, err := a.client.GetTask(ctx, jobID)
	if err != nil {
		return failedJobResult(ProviderRunway, jobID, errorText(err))
	}

	switch task.Status {
	case runway.StatusSucceeded:
		return GenerationResult{
			Success:  true,
			JobID:    jobID,
			Provider: ProviderRunway,
			Status:   StatusCompleted,
			VideoURL: task.OutputURL(),
		}
	case runway.StatusFailed:
		return failedJobResult(ProviderRunway, jobID, task.ErrorMessage())
	default:
		// PENDING, THROTTLED, RUNNING.
		return GenerationResult{
			Success:  true,
			JobID:    jobID,
			Provider: ProviderRunway,
			Status:   StatusProcessing,
		}
	}
}

// Cancel reports cancellation as unsupported.
func (a *RunwayAdapter) Cancel(_ context.Context, _ string) bool {
	return false
}

// Compile-time check that RunwayAdapter implements Adapter.
var _ Adapter = (*RunwayAdapter)(nil)
