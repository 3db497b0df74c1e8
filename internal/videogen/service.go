package videogen

import (
	"context"
	"fmt"
	"log/slog"
)

// Service is the single entry point for video generation. It resolves
// the model, validates the request against the model's declared
// capabilities, and dispatches to the provider's adapter. Status and
// cancel calls are routed purely by the provider tag stored alongside
// the job ID, so they keep working even if the originating model is
// later deactivated or reconfigured.
//
// The service holds no mutable state and is safe for concurrent use.
type Service struct {
	catalog  ModelCatalog
	adapters map[Provider]Adapter
	logger   *slog.Logger
}

// NewService creates a new generation service. The adapter map is
// copied so later mutations by the caller cannot change routing.
func NewService(catalog ModelCatalog, adapters map[Provider]Adapter, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	copied := make(map[Provider]Adapter, len(adapters))
	for p, a := range adapters {
		copied[p] = a
	}
	return &Service{
		catalog:  catalog,
		adapters: copied,
		logger:   logger,
	}
}

// GenerateVideo validates the request and submits it to the model's
// provider. Validation failures return before any network call: no job
// ID is allocated and no provider cost is incurred. Exactly one
// external call is made per invocation; retrying a failed submission
// is the caller's decision because resubmission may incur cost.
func (s *Service) GenerateVideo(ctx context.Context, req GenerationRequest) GenerationResult {
	model, ok := s.catalog.Get(req.ModelID)
	if !ok {
		return failedResult("", fmt.Sprintf("unknown model: %s", req.ModelID))
	}
	if !model.Active {
		return failedResult(model.Provider, fmt.Sprintf("model %s is inactive", model.ID))
	}
	if !model.SupportsDuration(req.Duration) {
		return failedResult(model.Provider, fmt.Sprintf(
			"model %s does not support duration %ds (supported: %v)",
			model.ID, req.Duration, model.Durations))
	}
	if !model.SupportsAspectRatio(req.AspectRatio) {
		return failedResult(model.Provider, fmt.Sprintf(
			"model %s does not support aspect ratio %s (supported: %v)",
			model.ID, req.AspectRatio, model.AspectRatios))
	}

	adapter, ok := s.adapters[model.Provider]
	if !ok {
		return failedResult(model.Provider, fmt.Sprintf("no adapter registered for provider %s", model.Provider))
	}

	result := adapter.Submit(ctx, req, model)

	if result.Success {
		s.logger.Info("generation submitted",
			slog.String("model", model.ID),
			slog.String("provider", string(model.Provider)),
			slog.String("job_id", result.JobID),
			slog.Int("duration", req.Duration),
			slog.String("aspect_ratio", req.AspectRatio),
		)
	} else {
		s.logger.Warn("generation submission failed",
			slog.String("model", model.ID),
			slog.String("provider", string(model.Provider)),
			slog.String("error", result.Error),
		)
	}

	return result
}

// CheckGenerationStatus fetches the current state of a job from its
// provider. Routing is keyed by the provider tag alone; the model
// registry is never consulted.
func (s *Service) CheckGenerationStatus(ctx context.Context, jobID string, provider Provider) GenerationResult {
	adapter, ok := s.adapters[provider]
	if !ok {
		return failedJobResult(provider, jobID, fmt.Sprintf("unknown provider: %s", provider))
	}
	return adapter.CheckStatus(ctx, jobID)
}

// CancelGeneration requests best-effort cancellation of a job. It
// returns false for providers without cancel support and for any
// transport failure; it never reports a failed cancel as a failed job.
func (s *Service) CancelGeneration(ctx context.Context, jobID string, provider Provider) bool {
	adapter, ok := s.adapters[provider]
	if !ok {
		return false
	}
	cancelled := adapter.Cancel(ctx, jobID)
	s.logger.Info("cancellation requested",
		slog.String("provider", string(provider)),
		slog.String("job_id", jobID),
		slog.Bool("cancelled", cancelled),
	)
	return cancelled
}

// EstimateCost returns the credit cost of running the model at the
// given duration, and the tool type billing attributes it to. The cost
// is 0 for an undeclared model or duration; callers must validate
// capabilities before relying on it for billing.
func (s *Service) EstimateCost(modelID string, seconds int) (credits float64, toolType string) {
	model, ok := s.catalog.Get(modelID)
	if !ok {
		return 0, ToolType
	}
	return model.CreditsPerDuration[seconds], ToolType
}
