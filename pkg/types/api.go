package types

// AcceptedResponse acknowledges a producer emit. The hub is a best-effort
// channel, so acceptance does not imply the event was stored or delivered.
type AcceptedResponse struct {
	// example: true
	Accepted bool `json:"accepted" example:"true"`
}

// PendingResponse wraps the snapshots returned by GET /v1/pending.
type PendingResponse struct {
	// Non-terminal snapshots currently retained for the tenant.
	Snapshots []ProgressEvent `json:"snapshots"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Tenants that currently have at least one live subscriber.
	// example: 3
	SubscriberTenants int `json:"subscriber_tenants" example:"3"`
	// Live subscriptions across all tenants.
	// example: 5
	Subscriptions int `json:"subscriptions" example:"5"`
	// Tenants that currently have retained snapshots.
	// example: 2
	SnapshotTenants int `json:"snapshot_tenants" example:"2"`
	// Retained non-terminal snapshots across all tenants.
	// example: 14
	PendingSnapshots int `json:"pending_snapshots" example:"14"`
	// Total events accepted by the emit boundary since start.
	// example: 1200
	EventsTotal uint64 `json:"events_total" example:"1200"`
	// Total malformed emits dropped since start.
	// example: 4
	DroppedTotal uint64 `json:"dropped_total" example:"4"`
	// Total subscriber pushes that panicked since start.
	// example: 1
	PushFailures uint64 `json:"push_failures_total" example:"1"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
