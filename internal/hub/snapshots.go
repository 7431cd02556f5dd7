package hub

import (
	"context"
	"sort"

	"github.com/jellydator/ttlcache/v3"

	"progressd/pkg/types"
)

// snapshotBucket holds one tenant's latest snapshot per composite key.
type snapshotBucket = ttlcache.Cache[string, types.ProgressEvent]

func (h *Hub) newBucket(tenantID string) *snapshotBucket {
	opts := []ttlcache.Option[string, types.ProgressEvent]{
		// Reads must not extend retention.
		ttlcache.WithDisableTouchOnHit[string, types.ProgressEvent](),
	}
	ttl := ttlcache.NoTTL
	if h.ttl > 0 {
		ttl = h.ttl
	}
	opts = append(opts, ttlcache.WithTTL[string, types.ProgressEvent](ttl))
	if h.capacity > 0 {
		opts = append(opts, ttlcache.WithCapacity[string, types.ProgressEvent](uint64(h.capacity)))
	}
	c := ttlcache.New(opts...)
	c.OnEviction(func(_ context.Context, reason ttlcache.EvictionReason, _ *ttlcache.Item[string, types.ProgressEvent]) {
		switch reason {
		case ttlcache.EvictionReasonExpired:
			snapshotEvictionsTotal.WithLabelValues("expired").Inc()
			// The cache holds its own lock here; re-enter via a fresh
			// goroutine so the mu-then-cache lock order stays consistent.
			go h.pruneBucket(tenantID, c)
		case ttlcache.EvictionReasonCapacityReached:
			snapshotEvictionsTotal.WithLabelValues("capacity").Inc()
		}
	})
	go c.Start()
	return c
}

// pruneBucket drops a tenant's bucket (and stops its expiry goroutine)
// once expiry has emptied it, so idle tenants do not accumulate.
func (h *Hub) pruneBucket(tenantID string, bucket *snapshotBucket) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.snaps[tenantID] != bucket || bucket.Len() != 0 {
		return
	}
	bucket.Stop()
	delete(h.snaps, tenantID)
}

// record applies one validated event to the snapshot store: terminal
// statuses evict, everything else overwrites (last write wins per key).
func (h *Hub) record(tenantID string, ev types.ProgressEvent) {
	key := h.storedKey(ev.Vendor, ev.NodeID, ev.TaskID)
	h.mu.Lock()
	defer h.mu.Unlock()
	bucket := h.snaps[tenantID]
	if Status(ev.Status).Terminal() {
		if bucket == nil {
			return
		}
		bucket.Delete(key)
		if bucket.Len() == 0 {
			bucket.Stop()
			delete(h.snaps, tenantID)
		}
		return
	}
	if bucket == nil {
		bucket = h.newBucket(tenantID)
		h.snaps[tenantID] = bucket
	}
	bucket.Set(key, ev, ttlcache.DefaultTTL)
}

// Pending returns the retained non-terminal snapshots for a tenant,
// optionally filtered by (normalized) vendor. Unknown tenants yield an
// empty list, never an error. Results are ordered by timestamp.
func (h *Hub) Pending(tenantID, vendor string) []types.ProgressEvent {
	h.mu.RLock()
	bucket := h.snaps[tenantID]
	h.mu.RUnlock()
	out := []types.ProgressEvent{}
	if bucket == nil {
		return out
	}
	filter := h.normalizeVendor(vendor)
	for _, item := range bucket.Items() {
		if item == nil || item.IsExpired() {
			continue
		}
		ev := item.Value()
		if Status(ev.Status).Terminal() {
			continue
		}
		if filter != "" && h.normalizeVendor(ev.Vendor) != filter {
			continue
		}
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp != out[j].Timestamp {
			return out[i].Timestamp < out[j].Timestamp
		}
		return h.storedKey(out[i].Vendor, out[i].NodeID, out[i].TaskID) <
			h.storedKey(out[j].Vendor, out[j].NodeID, out[j].TaskID)
	})
	return out
}

// pendingCountLocked sums retained snapshots across tenants. Caller holds mu.
func (h *Hub) pendingCountLocked() int {
	n := 0
	for _, bucket := range h.snaps {
		n += bucket.Len()
	}
	return n
}
