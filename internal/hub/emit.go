package hub

import "progressd/pkg/types"

// Emit validates in, records it in the snapshot store, then pushes it to
// every current subscriber of tenantID. It is the only entry point for
// producers. Malformed input (empty tenant, missing or unknown status) is
// dropped silently: this is a best-effort telemetry path and must never
// disturb the producer's control flow. Success means "the snapshot store
// was updated", regardless of how many subscribers existed or whether any
// push failed.
func (h *Hub) Emit(tenantID string, in types.ProgressUpdate) {
	if tenantID == "" {
		h.drop("missing_tenant")
		return
	}
	ev, ok := h.validate(in)
	if !ok {
		h.drop("invalid_status")
		return
	}
	// Record and fan out as one unit: a concurrent Emit for the same
	// subscriber must not overtake an in-flight delivery. Push targets are
	// fast and non-blocking by contract, so serializing here is cheap.
	h.emitMu.Lock()
	defer h.emitMu.Unlock()
	h.record(tenantID, ev)
	h.emitted.Add(1)
	eventsTotal.WithLabelValues(ev.Status).Inc()

	targets := h.subscribersOf(tenantID)
	if len(targets) == 0 {
		return
	}
	for _, target := range targets {
		h.push(tenantID, ev, target)
	}
}

// push delivers one event to one subscriber. Each delivery is its own
// isolation boundary: a panicking target is logged and skipped without
// affecting the remaining subscribers or the recorded snapshot.
func (h *Hub) push(tenantID string, ev types.ProgressEvent, target Subscriber) {
	defer func() {
		if r := recover(); r != nil {
			h.pushFailures.Add(1)
			pushFailuresTotal.Inc()
			h.log.Warn().
				Str("tenant", tenantID).
				Str("status", ev.Status).
				Str("task_id", ev.TaskID).
				Str("node_id", ev.NodeID).
				Interface("panic", r).
				Msg("subscriber push failed")
		}
	}()
	target.Push(ev)
}

func (h *Hub) drop(reason string) {
	h.dropped.Add(1)
	droppedTotal.WithLabelValues(reason).Inc()
}
