// Package piapi provides an HTTP client for the PiAPI unified task API,
// covering the video generation models served there.
package piapi

// Status values returned by the PiAPI task API.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusStaged     = "staged"
	StatusCompleted  = "completed"
	StatusSuccess    = "success"
	StatusFailed     = "failed"
)

// Task types accepted by the PiAPI task API.
const (
	TaskTypeTextToVideo  = "text2video"
	TaskTypeImageToVideo = "image2video"
)

// TaskInput is the nested input block of a task creation request.
type TaskInput struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt,omitempty"`
	Duration       int    `json:"duration,omitempty"`
	AspectRatio    string `json:"aspect_ratio,omitempty"`
	Resolution     string `json:"resolution,omitempty"`
	FPS            int    `json:"fps,omitempty"`
	Seed           *int   `json:"seed,omitempty"`
	ImageURL       string `json:"image_url,omitempty"`
}

// taskConfig is the nested config block of a task creation request.
type taskConfig struct {
	WebhookURL string `json:"webhook_url,omitempty"`
}

// createTaskRequest is the request body for POST /api/v1/task.
type createTaskRequest struct {
	Model    string      `json:"model"`
	TaskType string      `json:"task_type"`
	Input    TaskInput   `json:"input"`
	Config   *taskConfig `json:"config,omitempty"`
}

// taskEnvelope is the response envelope wrapping every task API call.
type taskEnvelope struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	Data    Task   `json:"data"`
}

// TaskOutput is the nested output block of a task.
type TaskOutput struct {
	VideoURL     string `json:"video_url,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// TaskError is the nested error block of a task.
type TaskError struct {
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// Task is the task resource under the envelope's data field.
type Task struct {
	TaskID string     `json:"task_id"`
	Status string     `json:"status"`
	Output TaskOutput `json:"output,omitzero"`
	Error  TaskError  `json:"error,omitzero"`
}

// VideoURL unwraps the result media URL from the nested output block.
func (t Task) VideoURL() string {
	return t.Output.VideoURL
}

// ThumbnailURL unwraps the thumbnail URL from the nested output block.
func (t Task) ThumbnailURL() string {
	return t.Output.ThumbnailURL
}

// ErrorMessage unwraps the task error text, if any.
func (t Task) ErrorMessage() string {
	return t.Error.Message
}
