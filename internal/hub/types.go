package hub

// Status classifies a task progress update.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// ParseStatus maps a raw string onto the closed status set.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusQueued, StatusRunning, StatusSucceeded, StatusFailed:
		return Status(s), true
	}
	return "", false
}

// Terminal reports whether the status marks the task as no longer pending.
// Terminal events evict the stored snapshot and are never retained.
func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}
