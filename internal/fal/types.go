// Package fal provides an HTTP client for the fal.ai queue API.
// Every model family lives on its own queue endpoint; submission
// returns a request ID, status is polled from a status endpoint, and
// the final payload needs a second fetch once the status is COMPLETED.
package fal

import "encoding/json"

// Status values returned by the fal queue API.
const (
	StatusInQueue    = "IN_QUEUE"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"
)

// submitResponse is the response body for a queue submission.
type submitResponse struct {
	RequestID string `json:"request_id"`
}

// QueueStatus is the response body of the status endpoint.
type QueueStatus struct {
	Status string `json:"status"`
	// Error is populated by some model families when a request fails
	// in the queue before producing a result payload.
	Error string `json:"error,omitempty"`
}

// ResultVideo is the nested video object most fal model families emit.
type ResultVideo struct {
	URL          string `json:"url,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// resultPayload covers the result shapes across the supported model
// families: a nested video object, a flat video_url, or a flat url.
type resultPayload struct {
	Video        ResultVideo `json:"video,omitzero"`
	VideoURL     string      `json:"video_url,omitempty"`
	URL          string      `json:"url,omitempty"`
	ThumbnailURL string      `json:"thumbnail_url,omitempty"`
	Detail       string      `json:"detail,omitempty"`
}

// ParseResult unwraps a completed request payload into the video and
// thumbnail URLs, tolerating the per-family shape differences.
func ParseResult(raw json.RawMessage) (videoURL, thumbnailURL string) {
	if len(raw) == 0 {
		return "", ""
	}
	var p resultPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return "", ""
	}
	switch {
	case p.Video.URL != "":
		videoURL = p.Video.URL
	case p.VideoURL != "":
		videoURL = p.VideoURL
	default:
		videoURL = p.URL
	}
	if p.Video.ThumbnailURL != "" {
		thumbnailURL = p.Video.ThumbnailURL
	} else {
		thumbnailURL = p.ThumbnailURL
	}
	return videoURL, thumbnailURL
}

// ParseResultError unwraps the failure detail some model families put
// in the result payload instead of the status response.
func ParseResultError(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var p resultPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return ""
	}
	return p.Detail
}
