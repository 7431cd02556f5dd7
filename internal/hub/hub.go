package hub

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Hub is the process-wide progress directory. All state is scoped to an
// opaque tenant id; both stores lazily create tenant buckets on first use.
type Hub struct {
	mu    sync.RWMutex
	subs  map[string]map[Subscriber]struct{}
	snaps map[string]*snapshotBucket

	// emitMu serializes the record-then-notify sequence so a subscriber
	// never observes same-tenant events out of emit-call order. Held only
	// in Emit; registry and query paths use mu alone, so a subscriber may
	// safely unsubscribe from inside Push.
	emitMu sync.Mutex

	aliases  map[string]string
	ttl      time.Duration // 0 = no expiry
	capacity int           // 0 = unbounded
	log      zerolog.Logger
	start    time.Time

	emitted      atomic.Uint64
	dropped      atomic.Uint64
	pushFailures atomic.Uint64
}

// SubscriberTenants returns the number of tenants with at least one live
// subscriber. Exposed for status reporting and as a leak probe in tests.
func (h *Hub) SubscriberTenants() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Subscriptions returns the number of live subscriptions for a tenant.
func (h *Hub) Subscriptions(tenantID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[tenantID])
}

// SnapshotTenants returns the number of tenants with retained snapshots.
func (h *Hub) SnapshotTenants() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.snaps)
}
