// Package registry provides the static catalog of video generation models.
// Each entry declares which provider serves the model and which durations,
// aspect ratios and resolutions the model accepts, so requests can be
// rejected locally before any money is spent on a remote job.
package registry

import "github.com/pixevo/videogen-api/internal/videogen"

// Registry is an immutable lookup table of model configurations.
// It is safe for unlimited concurrent reads.
type Registry struct {
	models map[string]videogen.ModelConfig
	order  []string
}

// Compile-time check that Registry satisfies the orchestrator's catalog port.
var _ videogen.ModelCatalog = (*Registry)(nil)

// NewRegistry builds a registry from the given configs. A duplicate ID
// overwrites the earlier entry but keeps its position.
func NewRegistry(models ...videogen.ModelConfig) *Registry {
	r := &Registry{
		models: make(map[string]videogen.ModelConfig, len(models)),
		order:  make([]string, 0, len(models)),
	}
	for _, m := range models {
		if _, exists := r.models[m.ID]; !exists {
			r.order = append(r.order, m.ID)
		}
		r.models[m.ID] = m
	}
	return r
}

// Get returns the config for the given model ID.
func (r *Registry) Get(modelID string) (videogen.ModelConfig, bool) {
	m, ok := r.models[modelID]
	return m, ok
}

// IsActive returns true if the model exists and is active.
func (r *Registry) IsActive(modelID string) bool {
	m, ok := r.models[modelID]
	return ok && m.Active
}

// SupportsDuration returns true if the model exists and declares the duration.
func (r *Registry) SupportsDuration(modelID string, seconds int) bool {
	m, ok := r.models[modelID]
	return ok && m.SupportsDuration(seconds)
}

// SupportsResolution returns true if the model exists and declares the resolution.
func (r *Registry) SupportsResolution(modelID string, resolution string) bool {
	m, ok := r.models[modelID]
	return ok && m.SupportsResolution(resolution)
}

// EstimateCost returns the credit cost for running the model at the
// given duration. It returns 0, not an error, when the duration is not
// declared; callers performing billing must run capability validation
// first and never treat 0 as "free".
func (r *Registry) EstimateCost(modelID string, seconds int) float64 {
	m, ok := r.models[modelID]
	if !ok {
		return 0
	}
	return m.CreditsPerDuration[seconds]
}

// ActiveModels returns all active configs in registration order.
func (r *Registry) ActiveModels() []videogen.ModelConfig {
	result := make([]videogen.ModelConfig, 0, len(r.order))
	for _, id := range r.order {
		if m := r.models[id]; m.Active {
			result = append(result, m)
		}
	}
	return result
}

// ModelsByProvider returns all configs served by the given provider,
// in registration order, including inactive ones.
func (r *Registry) ModelsByProvider(p videogen.Provider) []videogen.ModelConfig {
	result := make([]videogen.ModelConfig, 0, len(r.order))
	for _, id := range r.order {
		if m := r.models[id]; m.Provider == p {
			result = append(result, m)
		}
	}
	return result
}

// Len returns the number of registered models.
func (r *Registry) Len() int {
	return len(r.models)
}
