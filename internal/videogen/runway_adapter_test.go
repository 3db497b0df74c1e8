package videogen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pixevo/videogen-api/internal/runway"
)

type mockRunwayClient struct {
	mock.Mock
}

func (m *mockRunwayClient) Generate(ctx context.Context, req runway.GenerateRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *mockRunwayClient) GetTask(ctx context.Context, taskID string) (runway.Task, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).(runway.Task), args.Error(1)
}

func runwayModel() ModelConfig {
	return ModelConfig{
		ID:              "gen3a-turbo",
		Provider:        ProviderRunway,
		ProviderModelID: "gen3a_turbo",
		Durations:       []int{5, 10},
		AspectRatios:    []string{"16:9", "9:16"},
		ProcessingTime:  ProcessingTime{Min: 60, Max: 180},
		Active:          true,
	}
}

func TestRunwayAdapter_Submit(t *testing.T) {
	client := new(mockRunwayClient)
	adapter := NewRunwayAdapter(client)

	req := GenerationRequest{
		Prompt:      "drone shot over a fjord",
		ModelID:     "gen3a-turbo",
		Duration:    10,
		AspectRatio: "16:9",
	}

	client.On("Generate", mock.Anything, mock.MatchedBy(func(r runway.GenerateRequest) bool {
		return r.Model == "gen3a_turbo" &&
			r.PromptText == "drone shot over a fjord" &&
			r.Duration == 10 &&
			r.Ratio == "16_9"
	})).Return("task-7", nil)

	result := adapter.Submit(context.Background(), req, runwayModel())

	require.True(t, result.Success)
	assert.Equal(t, "task-7", result.JobID)
	assert.Equal(t, ProviderRunway, result.Provider)
	assert.Equal(t, StatusProcessing, result.Status)
	client.AssertExpectations(t)
}

func TestRunwayAdapter_Submit_Error(t *testing.T) {
	client := new(mockRunwayClient)
	adapter := NewRunwayAdapter(client)

	client.On("Generate", mock.Anything, mock.Anything).Return("", runway.ErrAPIKeyNotSet)

	result := adapter.Submit(context.Background(), GenerationRequest{Prompt: "p"}, runwayModel())

	require.False(t, result.Success)
	assert.Empty(t, result.JobID)
	assert.Contains(t, result.Error, "RUNWAY_API_KEY")
}

func TestRunwayAdapter_CheckStatus(t *testing.T) {
	tests := []struct {
		name       string
		task       runway.Task
		wantStatus Status
		wantURL    string
		wantError  string
	}{
		{
			name:       "pending maps to processing",
			task:       runway.Task{ID: "task-7", Status: runway.StatusPending},
			wantStatus: StatusProcessing,
		},
		{
			name:       "throttled maps to processing",
			task:       runway.Task{ID: "task-7", Status: runway.StatusThrottled},
			wantStatus: StatusProcessing,
		},
		{
			name:       "running maps to processing",
			task:       runway.Task{ID: "task-7", Status: runway.StatusRunning},
			wantStatus: StatusProcessing,
		},
		{
			name: "succeeded takes first output",
			task: runway.Task{
				ID:     "task-7",
				Status: runway.StatusSucceeded,
				Output: []string{"https://cdn.example.com/out.mp4", "https://cdn.example.com/extra.mp4"},
			},
			wantStatus: StatusCompleted,
			wantURL:    "https://cdn.example.com/out.mp4",
		},
		{
			name: "failed carries failure text",
			task: runway.Task{
				ID:          "task-7",
				Status:      runway.StatusFailed,
				Failure:     "content moderation rejected the prompt",
				FailureCode: "SAFETY.INPUT.TEXT",
			},
			wantStatus: StatusFailed,
			wantError:  "content moderation rejected the prompt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mockRunwayClient)
			adapter := NewRunwayAdapter(client)
			client.On("GetTask", mock.Anything, "task-7").Return(tt.task, nil)

			result := adapter.CheckStatus(context.Background(), "task-7")

			assert.Equal(t, tt.wantStatus, result.Status)
			assert.Equal(t, "task-7", result.JobID)
			assert.Equal(t, tt.wantURL, result.VideoURL)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, result.Error)
				assert.False(t, result.Success)
			} else {
				assert.True(t, result.Success)
			}
		})
	}
}

func TestRunwayAdapter_Cancel_AlwaysFalse(t *testing.T) {
	adapter := NewRunwayAdapter(new(mockRunwayClient))

	assert.False(t, adapter.Cancel(context.Background(), "task-7"))
}
