// Package server provides the HTTP API for the video generation
// service. It includes handlers, middleware, routes, and DTOs separated
// from domain types.
package server

import (
	"time"

	"github.com/pixevo/videogen-api/internal/job"
	"github.com/pixevo/videogen-api/internal/videogen"
)

// CreateGenerationRequest is the HTTP request body for starting a generation.
type CreateGenerationRequest struct {
	// Prompt is the generation prompt text.
	Prompt string `json:"prompt" validate:"required,min=1,max=2000"`
	// NegativePrompt describes what the model should avoid.
	NegativePrompt string `json:"negative_prompt,omitempty" validate:"max=2000"`
	// Model selects the registry model to run.
	Model string `json:"model" validate:"required"`
	// Duration is the requested clip length in seconds.
	Duration int `json:"duration" validate:"required,min=1,max=60"`
	// AspectRatio is the requested aspect ratio (e.g. "16:9").
	AspectRatio string `json:"aspect_ratio" validate:"required"`
	// Resolution is the requested output resolution (e.g. "720p").
	Resolution string `json:"resolution,omitempty"`
	// FPS is the requested frame rate; 0 uses the provider default.
	FPS int `json:"fps,omitempty" validate:"omitempty,min=1,max=60"`
	// Seed fixes the random seed.
	Seed *int `json:"seed,omitempty"`
	// ImageURL is the source image for image-to-video generation.
	ImageURL string `json:"image_url,omitempty" validate:"omitempty,url"`
}

// GenerationResponse is the HTTP view of a generation record.
type GenerationResponse struct {
	// ID is the local record identifier.
	ID string `json:"id"`
	// JobID is the provider-assigned job identifier.
	JobID string `json:"job_id,omitempty"`
	// Provider is the external service running the job.
	Provider string `json:"provider"`
	// Model is the registry model the job was submitted with.
	Model string `json:"model"`
	// Status is the normalized lifecycle state.
	Status string `json:"status"`
	// VideoURL is the result media URL once completed.
	VideoURL string `json:"video_url,omitempty"`
	// ThumbnailURL is the preview image URL, where available.
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	// Error is the failure description once failed.
	Error string `json:"error,omitempty"`
	// Credits is the cost estimate charged for the job.
	Credits float64 `json:"credits"`
	// ToolType attributes the cost estimate for billing.
	ToolType string `json:"tool_type"`
	// CreatedAt is when the record was created.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when the record was last updated.
	UpdatedAt time.Time `json:"updated_at"`
	// CompletedAt is when the job reached a terminal state.
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// newGenerationResponse maps a record to its HTTP view.
func newGenerationResponse(r *job.Record) GenerationResponse {
	resp := GenerationResponse{
		ID:           r.ID,
		JobID:        r.ProviderJobID,
		Provider:     string(r.Provider),
		Model:        r.ModelID,
		Status:       string(r.Status),
		VideoURL:     r.VideoURL,
		ThumbnailURL: r.ThumbnailURL,
		Error:        r.Error,
		Credits:      r.Credits,
		ToolType:     r.ToolType,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if !r.CompletedAt.IsZero() {
		completed := r.CompletedAt
		resp.CompletedAt = &completed
	}
	return resp
}

// GenerationListResponse is the HTTP response for listing records.
type GenerationListResponse struct {
	// Generations holds the record views.
	Generations []GenerationResponse `json:"generations"`
}

// CancelResponse is the HTTP response for a cancellation request.
type CancelResponse struct {
	// Cancelled is true when the provider accepted the cancellation.
	// False means the provider has no cancel support or refused; it
	// says nothing about the job itself.
	Cancelled bool `json:"cancelled"`
}

// ModelListResponse is the HTTP response for listing models.
type ModelListResponse struct {
	// Models holds the registry configs.
	Models []videogen.ModelConfig `json:"models"`
}

// WebhookResponse acknowledges a provider callback.
type WebhookResponse struct {
	// Status is "settled" when the callback updated a record.
	Status string `json:"status"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	// Error is the human-readable error message.
	Error string `json:"error"`
	// Code is the error code for programmatic handling.
	Code string `json:"code"`
}

// HealthResponse is the HTTP response for the health check endpoint.
type HealthResponse struct {
	// Status is the health status of the service.
	Status string `json:"status"`
}
