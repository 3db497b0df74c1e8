// Package job provides the generation record kept by this service on
// behalf of its callers, plus repository interfaces for persistence.
// The record mirrors provider-side truth; the orchestrator itself never
// reads or writes it.
package job

import (
	"time"

	"github.com/pixevo/videogen-api/internal/job/id"
	"github.com/pixevo/videogen-api/internal/videogen"
)

// Record is one generation request tracked by this service. It stores
// the provider tag next to the provider's job ID so status and cancel
// calls can be routed without re-resolving the model.
type Record struct {
	// ID is the local identifier handed to API callers.
	ID string
	// ProviderJobID is the provider-assigned job identifier.
	ProviderJobID string
	// Provider is the external service running the job.
	Provider videogen.Provider
	// ModelID is the registry model the job was submitted with.
	ModelID string
	// Prompt is the generation prompt text.
	Prompt string
	// Duration is the requested clip length in seconds.
	Duration int
	// AspectRatio is the requested aspect ratio.
	AspectRatio string
	// Resolution is the requested output resolution.
	Resolution string
	// Status is the normalized lifecycle state.
	Status videogen.Status
	// VideoURL is the result media URL once completed.
	VideoURL string
	// ThumbnailURL is the preview image URL, where available.
	ThumbnailURL string
	// Error is the failure description once failed.
	Error string
	// Credits is the cost estimate charged for the job.
	Credits float64
	// ToolType attributes the cost estimate for billing.
	ToolType string
	// CreatedAt is when the record was created.
	CreatedAt time.Time
	// UpdatedAt is when the record was last updated.
	UpdatedAt time.Time
	// CompletedAt is when the job reached a terminal state.
	CompletedAt time.Time
}

// New creates a record from a request and its submission result,
// generating a local ID.
func New(req videogen.GenerationRequest, res videogen.GenerationResult, credits float64) *Record {
	now := time.Now()
	r := &Record{
		ID:            id.Generate(),
		ProviderJobID: res.JobID,
		Provider:      res.Provider,
		ModelID:       req.ModelID,
		Prompt:        req.Prompt,
		Duration:      req.Duration,
		AspectRatio:   req.AspectRatio,
		Resolution:    req.Resolution,
		Status:        res.Status,
		Error:         res.Error,
		Credits:       credits,
		ToolType:      videogen.ToolType,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if r.Status.IsTerminal() {
		r.CompletedAt = now
	}
	return r
}

// Apply folds a status-check or webhook settlement into the record and
// reports whether anything changed. Settlement is idempotent: terminal
// states are last-write-wins between terminal results, and a terminal
// record never regresses to processing when a stale poll races a
// webhook delivery.
func (r *Record) Apply(res videogen.GenerationResult) bool {
	if r.Status.IsTerminal() && !res.Status.IsTerminal() {
		return false
	}
	if r.Status == res.Status &&
		r.VideoURL == res.VideoURL &&
		r.ThumbnailURL == res.ThumbnailURL &&
		r.Error == res.Error {
		return false
	}

	r.Status = res.Status
	r.VideoURL = res.VideoURL
	r.ThumbnailURL = res.ThumbnailURL
	r.Error = res.Error
	r.UpdatedAt = time.Now()
	if res.Status.IsTerminal() && r.CompletedAt.IsZero() {
		r.CompletedAt = r.UpdatedAt
	}
	return true
}

// IsTerminal returns true if the record reached a final state.
func (r *Record) IsTerminal() bool {
	return r.Status.IsTerminal()
}

// Clone creates a copy of the record for safe reads.
func (r *Record) Clone() *Record {
	clone := *r
	return &clone
}
