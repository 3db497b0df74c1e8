package videogen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProvider_IsValid(t *testing.T) {
	assert.True(t, ProviderReplicate.IsValid())
	assert.True(t, ProviderPiAPI.IsValid())
	assert.True(t, ProviderRunway.IsValid())
	assert.True(t, ProviderFal.IsValid())
	assert.False(t, Provider("acme").IsValid())
	assert.False(t, Provider("").IsValid())
}

func TestStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status   Status
		terminal bool
	}{
		{StatusPending, false},
		{StatusProcessing, false},
		{StatusCompleted, true},
		{StatusFailed, true},
		{Status("unknown"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.terminal, tt.status.IsTerminal())
		})
	}
}

func TestModelConfig_Capabilities(t *testing.T) {
	model := ModelConfig{
		Durations:    []int{5, 8},
		AspectRatios: []string{"16:9", "9:16"},
		Resolutions:  []string{"720p"},
	}

	assert.True(t, model.SupportsDuration(5))
	assert.False(t, model.SupportsDuration(7))
	assert.True(t, model.SupportsAspectRatio("16:9"))
	assert.False(t, model.SupportsAspectRatio("1:1"))
	assert.True(t, model.SupportsResolution("720p"))
	assert.False(t, model.SupportsResolution("1080p"))
}
