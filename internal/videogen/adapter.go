package videogen

import "context"

// Adapter translates the normalized request/result shapes to and from
// one provider's wire format. Adapters hold no state of their own; all
// job state lives with the provider and in the caller's persistence.
//
// No Adapter method returns an error: every failure mode becomes a
// GenerationResult with Success=false so callers branch on the result,
// not on exceptions.
type Adapter interface {
	// Submit builds the provider-native payload for the request and
	// issues it. On acceptance the result carries the provider's job
	// ID and status processing; on rejection it carries no job ID.
	Submit(ctx context.Context, req GenerationRequest, model ModelConfig) GenerationResult

	// CheckStatus maps the provider's status vocabulary onto
	// processing/completed/failed and extracts the result media URL on
	// completion. Checks are idempotent reads of provider-side truth.
	CheckStatus(ctx context.Context, jobID string) GenerationResult

	// Cancel requests cancellation best-effort. It returns false when
	// the provider has no cancellation endpoint or the call fails; a
	// failure to cancel is never a failure of the underlying job.
	Cancel(ctx context.Context, jobID string) bool
}

// unknownError substitutes for an absent provider error message; the
// adapters never invent an explanation of their own.
const unknownError = "Unknown error"

// failedResult builds the uniform rejection/failure result.
func failedResult(p Provider, msg string) GenerationResult {
	if msg == "" {
		msg = unknownError
	}
	return GenerationResult{
		Success:  false,
		Provider: p,
		Status:   StatusFailed,
		Error:    msg,
	}
}

// failedJobResult is failedResult for a job that was accepted earlier,
// so the provider's job ID is retained.
func failedJobResult(p Provider, jobID, msg string) GenerationResult {
	r := failedResult(p, msg)
	r.JobID = jobID
	return r
}

// errorText extracts the message to surface for a transport error.
func errorText(err error) string {
	if err == nil || err.Error() == "" {
		return unknownError
	}
	return err.Error()
}
