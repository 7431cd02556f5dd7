package types

import "encoding/json"

// ProgressUpdate is the loosely-typed payload a producer submits. Every
// field except Status is optional; the hub validates and coerces it into a
// ProgressEvent at the emit boundary and silently drops anything malformed.
type ProgressUpdate struct {
	// Upstream provider that runs the task.
	// example: openai
	Vendor string `json:"vendor,omitempty" example:"openai"`
	// Graph node the task belongs to.
	// example: node-42
	NodeID string `json:"nodeId,omitempty" example:"node-42"`
	// Kind of the originating node.
	// example: imageGen
	NodeKind string `json:"nodeKind,omitempty" example:"imageGen"`
	// Task instance identifier.
	// example: task-7f3a
	TaskID string `json:"taskId,omitempty" example:"task-7f3a"`
	// Producer-defined task classification; opaque to the hub.
	// example: video
	TaskKind string `json:"taskKind,omitempty" example:"video"`
	// Required lifecycle status: queued|running|succeeded|failed.
	// example: running
	Status string `json:"status" example:"running"`
	// Completion percentage. Clamped to [0,100].
	// example: 42.5
	Progress *float64 `json:"progress,omitempty" example:"42.5"`
	// Human-readable status text.
	// example: rendering frame 12/480
	Message string `json:"message,omitempty" example:"rendering frame 12/480"`
	// Opaque description of artifacts produced so far.
	Assets json.RawMessage `json:"assets,omitempty" swaggertype:"object"`
	// Opaque producer-specific debugging payload.
	Raw json.RawMessage `json:"raw,omitempty" swaggertype:"object"`
	// Epoch milliseconds; defaulted to now when zero.
	// example: 1700000000000
	Timestamp int64 `json:"timestamp,omitempty" example:"1700000000000"`
}

// ProgressEvent is a validated task-progress snapshot as distributed to
// subscribers and returned by pending queries. Produced only by the hub.
type ProgressEvent struct {
	Vendor    string          `json:"vendor,omitempty" example:"openai"`
	NodeID    string          `json:"nodeId,omitempty" example:"node-42"`
	NodeKind  string          `json:"nodeKind,omitempty" example:"imageGen"`
	TaskID    string          `json:"taskId,omitempty" example:"task-7f3a"`
	TaskKind  string          `json:"taskKind,omitempty" example:"video"`
	Status    string          `json:"status" example:"running"`
	Progress  *float64        `json:"progress,omitempty" example:"42.5"`
	Message   string          `json:"message,omitempty" example:"rendering frame 12/480"`
	Assets    json.RawMessage `json:"assets,omitempty" swaggertype:"object"`
	Raw       json.RawMessage `json:"raw,omitempty" swaggertype:"object"`
	Timestamp int64           `json:"timestamp" example:"1700000000000"`
}
