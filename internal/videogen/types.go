// Package videogen normalizes video generation across heterogeneous
// third-party providers. Each provider gets one adapter translating the
// normalized request/result shapes to and from its wire format; the
// Service façade validates capabilities, dispatches submissions, and
// routes later status and cancel calls by provider tag.
package videogen

// Provider identifies one external video generation API.
type Provider string

// Supported providers.
const (
	ProviderReplicate Provider = "replicate"
	ProviderPiAPI     Provider = "piapi"
	ProviderRunway    Provider = "runway"
	ProviderFal       Provider = "fal"
)

// IsValid returns true if the provider is one of the supported tags.
func (p Provider) IsValid() bool {
	switch p {
	case ProviderReplicate, ProviderPiAPI, ProviderRunway, ProviderFal:
		return true
	default:
		return false
	}
}

// Status represents the normalized lifecycle state of a generation job.
type Status string

// Job lifecycle states shared across all providers.
const (
	// StatusPending exists only between request construction and
	// submission; a submitted job is immediately processing or failed.
	StatusPending Status = "pending"
	// StatusProcessing indicates the provider accepted the job.
	StatusProcessing Status = "processing"
	// StatusCompleted indicates the job finished and a result URL is set.
	StatusCompleted Status = "completed"
	// StatusFailed indicates validation, transport or provider failure.
	StatusFailed Status = "failed"
)

// IsTerminal returns true if the status represents a final state.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// ToolType tags cost estimates produced by this subsystem so the
// billing ledger can attribute them.
const ToolType = "ai_video_generation"

// ProcessingTime is the estimated wall-clock range for a generation,
// in seconds. Callers use Max as the polling abandonment hint.
type ProcessingTime struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// ModelConfig describes a single generation model and its declared
// capabilities. Configs are defined at build time and never mutated.
type ModelConfig struct {
	// ID is the public model identifier (e.g. "pixverse-v5").
	ID string `json:"id"`
	// Name is the display name for UI population.
	Name string `json:"name"`
	// Provider is the external service that runs this model.
	Provider Provider `json:"provider"`
	// ProviderModelID is the identifier the provider's API expects.
	ProviderModelID string `json:"provider_model_id"`
	// Durations lists the supported clip lengths in seconds.
	Durations []int `json:"durations"`
	// AspectRatios lists the supported aspect ratios (e.g. "16:9").
	AspectRatios []string `json:"aspect_ratios"`
	// Resolutions lists the supported output resolutions (e.g. "720p").
	Resolutions []string `json:"resolutions"`
	// SupportsImageInput is true when the model accepts a source image
	// for image-to-video generation.
	SupportsImageInput bool `json:"supports_image_input"`
	// SupportsAudio is true when the model generates an audio track.
	SupportsAudio bool `json:"supports_audio"`
	// ProcessingTime is the estimated generation time range.
	ProcessingTime ProcessingTime `json:"processing_time"`
	// CreditsPerDuration maps a duration in seconds to its credit cost.
	CreditsPerDuration map[int]float64 `json:"credits_per_duration"`
	// Active is false when the model is temporarily withdrawn.
	Active bool `json:"active"`
	// Premium marks models restricted to paid plans.
	Premium bool `json:"premium"`
}

// SupportsDuration returns true if the model declares the given duration.
func (m ModelConfig) SupportsDuration(seconds int) bool {
	for _, d := range m.Durations {
		if d == seconds {
			return true
		}
	}
	return false
}

// SupportsAspectRatio returns true if the model declares the given ratio.
func (m ModelConfig) SupportsAspectRatio(ratio string) bool {
	for _, r := range m.AspectRatios {
		if r == ratio {
			return true
		}
	}
	return false
}

// SupportsResolution returns true if the model declares the given resolution.
func (m ModelConfig) SupportsResolution(resolution string) bool {
	for _, r := range m.Resolutions {
		if r == resolution {
			return true
		}
	}
	return false
}

// ModelCatalog is the orchestrator's read-only view of the model
// registry. Injected at construction so tests can substitute fake
// model sets.
type ModelCatalog interface {
	Get(modelID string) (ModelConfig, bool)
}

// GenerationRequest is the normalized, provider-agnostic request shape.
type GenerationRequest struct {
	// Prompt is the generation prompt text.
	Prompt string
	// NegativePrompt describes what the model should avoid.
	NegativePrompt string
	// ModelID selects the model from the registry.
	ModelID string
	// Duration is the requested clip length in seconds.
	Duration int
	// AspectRatio is the requested aspect ratio (e.g. "16:9").
	AspectRatio string
	// Resolution is the requested output resolution (e.g. "720p").
	Resolution string
	// FPS is the requested frame rate; 0 uses the provider default.
	FPS int
	// Seed fixes the random seed; nil uses the provider default.
	Seed *int
	// ImageURL is the source image for image-to-video generation.
	ImageURL string
	// WebhookURL, when set, asks providers that support push
	// completion to call back instead of being polled.
	WebhookURL string
}

// GenerationResult is the normalized outcome of a submission or status
// check. Every failure mode in this subsystem is expressed as a result
// with Success=false rather than an error crossing the façade.
type GenerationResult struct {
	// Success is false for rejected requests and failed jobs. A
	// rejected request additionally has an empty JobID, which is how
	// billing distinguishes it from an accepted-but-failed job.
	Success bool `json:"success"`
	// JobID is the provider-assigned job identifier, opaque to callers.
	JobID string `json:"job_id,omitempty"`
	// Provider tags the job so later status/cancel calls can be routed
	// without re-resolving the model.
	Provider Provider `json:"provider,omitempty"`
	// Status is the normalized lifecycle state.
	Status Status `json:"status"`
	// VideoURL is the result media URL, set when completed.
	VideoURL string `json:"video_url,omitempty"`
	// ThumbnailURL is the preview image URL, where the provider has one.
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	// Error is the failure description, provider text when available.
	Error string `json:"error,omitempty"`
	// EstimatedTime hints how long the generation is expected to take.
	EstimatedTime ProcessingTime `json:"estimated_time,omitzero"`
}
