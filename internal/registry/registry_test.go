package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixevo/videogen-api/internal/videogen"
)

func testRegistry() *Registry {
	return NewRegistry(
		videogen.ModelConfig{
			ID:                 "pixverse-v5",
			Provider:           videogen.ProviderReplicate,
			ProviderModelID:    "pixverse/pixverse-v5",
			Durations:          []int{5, 8},
			AspectRatios:       []string{"16:9", "9:16", "1:1"},
			Resolutions:        []string{"540p", "720p"},
			CreditsPerDuration: map[int]float64{5: 30, 8: 45},
			Active:             true,
		},
		videogen.ModelConfig{
			ID:              "gen3a-turbo",
			Provider:        videogen.ProviderRunway,
			ProviderModelID: "gen3a_turbo",
			Durations:       []int{5, 10},
			AspectRatios:    []string{"16:9", "9:16"},
			Resolutions:     []string{"720p"},
			Active:          true,
		},
		videogen.ModelConfig{
			ID:              "retired-model",
			Provider:        videogen.ProviderReplicate,
			ProviderModelID: "acme/retired",
			Durations:       []int{5},
			AspectRatios:    []string{"16:9"},
			Active:          false,
		},
	)
}

func TestRegistry_Get(t *testing.T) {
	reg := testRegistry()

	model, ok := reg.Get("pixverse-v5")
	require.True(t, ok)
	assert.Equal(t, videogen.ProviderReplicate, model.Provider)
	assert.Equal(t, "pixverse/pixverse-v5", model.ProviderModelID)

	_, ok = reg.Get("no-such-model")
	assert.False(t, ok)
}

func TestRegistry_IsActive(t *testing.T) {
	reg := testRegistry()

	assert.True(t, reg.IsActive("pixverse-v5"))
	assert.False(t, reg.IsActive("retired-model"))
	assert.False(t, reg.IsActive("no-such-model"))
}

func TestRegistry_SupportsDuration(t *testing.T) {
	reg := testRegistry()

	assert.True(t, reg.SupportsDuration("pixverse-v5", 5))
	assert.True(t, reg.SupportsDuration("pixverse-v5", 8))
	assert.False(t, reg.SupportsDuration("pixverse-v5", 7))
	assert.False(t, reg.SupportsDuration("no-such-model", 5))
}

func TestRegistry_SupportsResolution(t *testing.T) {
	reg := testRegistry()

	assert.True(t, reg.SupportsResolution("pixverse-v5", "720p"))
	assert.False(t, reg.SupportsResolution("pixverse-v5", "1080p"))
	assert.False(t, reg.SupportsResolution("no-such-model", "720p"))
}

func TestRegistry_EstimateCost(t *testing.T) {
	reg := testRegistry()

	assert.Equal(t, 30.0, reg.EstimateCost("pixverse-v5", 5))
	assert.Equal(t, 45.0, reg.EstimateCost("pixverse-v5", 8))

	// Undeclared durations and unknown models cost zero, not an error;
	// billing callers must validate capabilities first.
	assert.Equal(t, 0.0, reg.EstimateCost("pixverse-v5", 7))
	assert.Equal(t, 0.0, reg.EstimateCost("gen3a-turbo", 5))
	assert.Equal(t, 0.0, reg.EstimateCost("no-such-model", 5))
}

func TestRegistry_ActiveModels(t *testing.T) {
	reg := testRegistry()

	active := reg.ActiveModels()
	require.Len(t, active, 2)
	assert.Equal(t, "pixverse-v5", active[0].ID)
	assert.Equal(t, "gen3a-turbo", active[1].ID)
}

func TestRegistry_ModelsByProvider(t *testing.T) {
	reg := testRegistry()

	replicateModels := reg.ModelsByProvider(videogen.ProviderReplicate)
	require.Len(t, replicateModels, 2)
	assert.Equal(t, "pixverse-v5", replicateModels[0].ID)
	assert.Equal(t, "retired-model", replicateModels[1].ID)

	assert.Empty(t, reg.ModelsByProvider(videogen.ProviderFal))
}

func TestNewRegistry_DuplicateIDOverwrites(t *testing.T) {
	reg := NewRegistry(
		videogen.ModelConfig{ID: "m", Provider: videogen.ProviderReplicate, Active: false},
		videogen.ModelConfig{ID: "m", Provider: videogen.ProviderFal, Active: true},
	)

	require.Equal(t, 1, reg.Len())
	model, ok := reg.Get("m")
	require.True(t, ok)
	assert.Equal(t, videogen.ProviderFal, model.Provider)
	assert.True(t, model.Active)
}

func TestDefault(t *testing.T) {
	reg := Default()

	// Spot-check the catalog rather than mirroring it entry by entry.
	model, ok := reg.Get("pixverse-v5")
	require.True(t, ok)
	assert.Equal(t, videogen.ProviderReplicate, model.Provider)
	assert.Equal(t, []int{5, 8}, model.Durations)
	assert.True(t, model.Active)

	for _, m := range reg.ActiveModels() {
		assert.True(t, m.Provider.IsValid(), "model %s has invalid provider %q", m.ID, m.Provider)
		assert.NotEmpty(t, m.ProviderModelID, "model %s has no provider model ID", m.ID)
		assert.NotEmpty(t, m.Durations, "model %s declares no durations", m.ID)
		assert.NotEmpty(t, m.AspectRatios, "model %s declares no aspect ratios", m.ID)
		for _, d := range m.Durations {
			assert.Greater(t, m.CreditsPerDuration[d], 0.0,
				"model %s has no cost for declared duration %d", m.ID, d)
		}
	}
}
