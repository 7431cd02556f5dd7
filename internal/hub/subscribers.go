package hub

import "progressd/pkg/types"

// Subscriber is a live push target for one tenant's events. Push must be
// fast and non-blocking (e.g., hand off to a transport's internal queue);
// the hub does not manage backpressure or delivery confirmation.
// Implementations must be comparable (use a pointer receiver) since the
// registry keeps a set keyed by target identity.
type Subscriber interface {
	Push(types.ProgressEvent)
}

// Subscribe registers target for tenantID. Adding the same target twice is
// a no-op; it never results in duplicate delivery.
func (h *Hub) Subscribe(tenantID string, target Subscriber) {
	if tenantID == "" || target == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.subs[tenantID]
	if set == nil {
		set = make(map[Subscriber]struct{})
		h.subs[tenantID] = set
	}
	if _, ok := set[target]; ok {
		return
	}
	set[target] = struct{}{}
	subscriptionsGauge.Inc()
}

// Unsubscribe removes target for tenantID; the tenant entry is deleted
// entirely once its set empties so churn of short-lived tenants cannot
// grow the registry. Effective immediately for subsequent emits.
func (h *Hub) Unsubscribe(tenantID string, target Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.subs[tenantID]
	if set == nil {
		return
	}
	if _, ok := set[target]; !ok {
		return
	}
	delete(set, target)
	subscriptionsGauge.Dec()
	if len(set) == 0 {
		delete(h.subs, tenantID)
	}
}

// subscribersOf snapshots the current targets for a tenant so fan-out can
// run without holding the registry lock.
func (h *Hub) subscribersOf(tenantID string) []Subscriber {
	h.mu.RLock()
	defer h.mu.RUnlock()
	set := h.subs[tenantID]
	if len(set) == 0 {
		return nil
	}
	out := make([]Subscriber, 0, len(set))
	for target := range set {
		out = append(out, target)
	}
	return out
}
