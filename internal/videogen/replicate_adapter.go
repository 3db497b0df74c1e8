package videogen

import (
	"context"

	"github.com/pixevo/videogen-api/internal/replicate"
)

// ReplicateAdapter adapts the Replicate predictions API to the Adapter
// interface. Replicate is the one provider with webhook completion:
// when the request carries a webhook URL it is forwarded so Replicate
// pushes the completion event instead of being polled.
type ReplicateAdapter struct {
	client replicate.Client
}

// NewReplicateAdapter creates a new Replicate adapter.
func NewReplicateAdapter(client replicate.Client) *ReplicateAdapter {
	return &ReplicateAdapter{client: client}
}

// Submit creates a prediction for the request.
func (a *ReplicateAdapter) Submit(ctx context.Context, req GenerationRequest, model ModelConfig) GenerationResult {
	input := replicate.PredictionInput{
		Prompt:         req.Prompt,
		NegativePrompt: req.NegativePrompt,
		Duration:       req.Duration,
		AspectRatio:    req.AspectRatio,
		Resolution:     req.Resolution,
		FPS:            req.FPS,
		Seed:           req.Seed,
		Image:          req.ImageURL,
	}

	pred, err := a.client.CreatePrediction(ctx, model.ProviderModelID, input, req.WebhookURL)
	if err != nil {
		return failedResult(ProviderReplicate, errorText(err))
	}

	return GenerationResult{
		Success:       true,
		JobID:         pred.ID,
		Provider:      ProviderReplicate,
		Status:        StatusProcessing,
		EstimatedTime: model.ProcessingTime,
	}
}

// CheckStatus fetches the prediction and maps its status vocabulary.
func (a *ReplicateAdapter) CheckStatus(ctx context.Context, jobID string) GenerationResult {
	pred, err := a.client.GetPrediction(ctx, jobID)
	if err != nil {
		return failedJobResult(ProviderReplicate, jobID, errorText(err))
	}

	switch pred.Status {
	case replicate.StatusSucceeded:
		return GenerationResult{
			Success:  true,
			JobID:    jobID,
			Provider: ProviderReplicate,
			Status:   StatusCompleted,
			VideoURL: pred.OutputURL(),
		}
	case replicate.StatusFailed, replicate.StatusCanceled:
		return failedJobResult(ProviderReplicate, jobID, pred.ErrorMessage())
	default:
		// starting, processing and anything newer Replicate introduces.
		return GenerationResult{
			Success:  true,
			JobID:    jobID,
			Provider: ProviderReplicate,
			Status:   StatusProcessing,
		}
	}
}

// Cancel requests cancellation of the prediction.
func (a *ReplicateAdapter) Cancel(ctx context.Context, jobID string) bool {
	return a.client.CancelPrediction(ctx, jobID) == nil
}

// Compile-time check that ReplicateAdapter implements Adapter.
var _ Adapter = (*ReplicateAdapter)(nil)
