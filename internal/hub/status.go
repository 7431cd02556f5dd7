package hub

import (
	"time"

	"progressd/pkg/types"
)

// Ready reports readiness for /readyz. The hub holds only in-memory state
// and is serviceable as soon as it is constructed.
func (h *Hub) Ready() bool {
	return h != nil
}

// Status builds a detailed status response for /status.
func (h *Hub) Status() types.StatusResponse {
	h.mu.RLock()
	defer h.mu.RUnlock()
	subscriptions := 0
	for _, set := range h.subs {
		subscriptions += len(set)
	}
	return types.StatusResponse{
		SubscriberTenants: len(h.subs),
		Subscriptions:     subscriptions,
		SnapshotTenants:   len(h.snaps),
		PendingSnapshots:  h.pendingCountLocked(),
		EventsTotal:       h.emitted.Load(),
		DroppedTotal:      h.dropped.Load(),
		PushFailures:      h.pushFailures.Load(),
		UptimeSeconds:     int64(time.Since(h.start).Seconds()),
		ServerTimeUnix:    time.Now().Unix(),
	}
}
