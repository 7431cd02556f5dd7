package hub

import (
	"sync"
	"testing"
	"time"

	"progressd/pkg/types"
)

func fptr(v float64) *float64 { return &v }

// panicSubscriber always panics on push.
type panicSubscriber struct{}

func (panicSubscriber) Push(types.ProgressEvent) { panic("boom") }

// gatedSubscriber blocks its first push until released and records the
// order in which deliveries complete.
type gatedSubscriber struct {
	mu      sync.Mutex
	order   []string
	entered chan struct{}
	release chan struct{}
	first   sync.Once
}

func (s *gatedSubscriber) Push(ev types.ProgressEvent) {
	s.first.Do(func() {
		close(s.entered)
		<-s.release
	})
	s.mu.Lock()
	s.order = append(s.order, ev.TaskID)
	s.mu.Unlock()
}

func TestTerminalStatusEvicts(t *testing.T) {
	h := New()
	h.Emit("u1", types.ProgressUpdate{Vendor: "openai", NodeID: "n1", TaskID: "t1", Status: "queued"})
	if got := len(h.Pending("u1", "")); got != 1 {
		t.Fatalf("pending=%d, want 1", got)
	}
	h.Emit("u1", types.ProgressUpdate{Vendor: "openai", NodeID: "n1", TaskID: "t1", Status: "succeeded"})
	if got := len(h.Pending("u1", "")); got != 0 {
		t.Fatalf("pending after succeeded=%d, want 0", got)
	}

	h.Emit("u1", types.ProgressUpdate{Vendor: "openai", NodeID: "n1", TaskID: "t1", Status: "running"})
	h.Emit("u1", types.ProgressUpdate{Vendor: "openai", NodeID: "n1", TaskID: "t1", Status: "failed"})
	if got := len(h.Pending("u1", "")); got != 0 {
		t.Fatalf("pending after failed=%d, want 0", got)
	}
	// Tenant bucket is pruned once its last snapshot is evicted.
	if got := h.SnapshotTenants(); got != 0 {
		t.Fatalf("snapshot tenants=%d, want 0", got)
	}
}

func TestLastWriteWinsPerKey(t *testing.T) {
	h := New()
	h.Emit("u1", types.ProgressUpdate{Vendor: "openai", NodeID: "n1", TaskID: "t1", Status: "running", Progress: fptr(10)})
	h.Emit("u1", types.ProgressUpdate{Vendor: "openai", NodeID: "n1", TaskID: "t1", Status: "running", Progress: fptr(50)})
	snaps := h.Pending("u1", "")
	if len(snaps) != 1 {
		t.Fatalf("pending=%d, want 1", len(snaps))
	}
	if snaps[0].Progress == nil || *snaps[0].Progress != 50 {
		t.Fatalf("progress=%v, want 50", snaps[0].Progress)
	}
}

func TestSubscriberIsolation(t *testing.T) {
	h := New()
	good := NewMemorySubscriber()
	h.Subscribe("u1", panicSubscriber{})
	h.Subscribe("u1", good)
	h.Emit("u1", types.ProgressUpdate{Status: "running", TaskID: "t1"})
	if got := len(good.Events()); got != 1 {
		t.Fatalf("surviving subscriber got %d events, want 1", got)
	}
	// Snapshot write is not rolled back by the failing push.
	if got := len(h.Pending("u1", "")); got != 1 {
		t.Fatalf("pending=%d, want 1", got)
	}
}

func TestRegistrySelfPrunes(t *testing.T) {
	h := New()
	a := NewMemorySubscriber()
	for i := 0; i < 3; i++ {
		h.Subscribe("u1", a)
		h.Unsubscribe("u1", a)
		if got := h.SubscriberTenants(); got != 0 {
			t.Fatalf("cycle %d: subscriber tenants=%d, want 0", i, got)
		}
	}
	// Removing an unknown target or tenant is a no-op.
	h.Unsubscribe("u1", a)
	h.Unsubscribe("ghost", a)
}

func TestSubscribeIdempotentPerTarget(t *testing.T) {
	h := New()
	a := NewMemorySubscriber()
	h.Subscribe("u1", a)
	h.Subscribe("u1", a)
	if got := h.Subscriptions("u1"); got != 1 {
		t.Fatalf("subscriptions=%d, want 1", got)
	}
	h.Emit("u1", types.ProgressUpdate{Status: "queued"})
	if got := len(a.Events()); got != 1 {
		t.Fatalf("events=%d, want 1 (no duplicate delivery)", got)
	}
}

func TestEmitOrderPreservedPerSubscriber(t *testing.T) {
	h := New()
	sub := &gatedSubscriber{entered: make(chan struct{}), release: make(chan struct{})}
	h.Subscribe("u1", sub)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		h.Emit("u1", types.ProgressUpdate{TaskID: "t1", Status: "queued"})
	}()
	// Wait until the first delivery is parked inside Push, then start a
	// second emit for the same tenant. It must not overtake the first.
	<-sub.entered
	go func() {
		defer wg.Done()
		h.Emit("u1", types.ProgressUpdate{TaskID: "t2", Status: "running"})
	}()
	time.Sleep(50 * time.Millisecond)
	close(sub.release)
	wg.Wait()

	sub.mu.Lock()
	defer sub.mu.Unlock()
	if len(sub.order) != 2 || sub.order[0] != "t1" || sub.order[1] != "t2" {
		t.Fatalf("delivery order=%v, want [t1 t2]", sub.order)
	}
}

func TestExpiredSnapshotsPruneTenant(t *testing.T) {
	h := NewWithConfig(Config{SnapshotTTL: 50 * time.Millisecond})
	h.Emit("u1", types.ProgressUpdate{Vendor: "openai", TaskID: "t1", Status: "queued"})
	if got := h.SnapshotTenants(); got != 1 {
		t.Fatalf("snapshot tenants=%d, want 1", got)
	}
	deadline := time.Now().Add(3 * time.Second)
	for h.SnapshotTenants() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("tenant bucket not pruned after expiry: tenants=%d", h.SnapshotTenants())
		}
		time.Sleep(20 * time.Millisecond)
	}
	if got := len(h.Pending("u1", "")); got != 0 {
		t.Fatalf("pending after expiry=%d, want 0", got)
	}
}

func TestMalformedEmitIsNoOp(t *testing.T) {
	h := New()
	sub := NewMemorySubscriber()
	h.Subscribe("u1", sub)

	h.Emit("u1", types.ProgressUpdate{})                       // missing status
	h.Emit("u1", types.ProgressUpdate{Status: "exploded"})     // unknown status
	h.Emit("", types.ProgressUpdate{Status: "running"})        // missing tenant
	if got := len(sub.Events()); got != 0 {
		t.Fatalf("pushes recorded for malformed emits: %d", got)
	}
	if got := h.SnapshotTenants(); got != 0 {
		t.Fatalf("snapshot state created by malformed emits: %d tenants", got)
	}
	if st := h.Status(); st.DroppedTotal != 3 {
		t.Fatalf("dropped=%d, want 3", st.DroppedTotal)
	}
}

func TestPendingVendorFilterWithAlias(t *testing.T) {
	h := New()
	h.Emit("u1", types.ProgressUpdate{Vendor: "gemini", TaskID: "t1", Status: "running"})
	h.Emit("u1", types.ProgressUpdate{Vendor: "openai", TaskID: "t2", Status: "running"})
	snaps := h.Pending("u1", "google")
	if len(snaps) != 1 {
		t.Fatalf("filtered pending=%d, want 1", len(snaps))
	}
	if snaps[0].Vendor != "gemini" {
		t.Fatalf("vendor=%q, want gemini", snaps[0].Vendor)
	}
	if got := len(h.Pending("u1", "")); got != 2 {
		t.Fatalf("unfiltered pending=%d, want 2", got)
	}
	if got := len(h.Pending("nobody", "")); got != 0 {
		t.Fatalf("unknown tenant pending=%d, want 0", got)
	}
}

func TestEventValidationAndCoercion(t *testing.T) {
	h := New()
	sub := NewMemorySubscriber()
	h.Subscribe("u1", sub)
	h.Emit("u1", types.ProgressUpdate{Status: " running ", TaskID: " t1 ", Progress: fptr(250)})
	evts := sub.Events()
	if len(evts) != 1 {
		t.Fatalf("events=%d, want 1", len(evts))
	}
	ev := evts[0]
	if ev.Status != "running" || ev.TaskID != "t1" {
		t.Fatalf("not trimmed: %+v", ev)
	}
	if ev.Progress == nil || *ev.Progress != 100 {
		t.Fatalf("progress=%v, want clamp to 100", ev.Progress)
	}
	if ev.Timestamp == 0 {
		t.Fatalf("timestamp not defaulted")
	}
}

func TestSnapshotCapacityBound(t *testing.T) {
	h := NewWithConfig(Config{SnapshotCapacity: 2})
	h.Emit("u1", types.ProgressUpdate{TaskID: "t1", Status: "running"})
	h.Emit("u1", types.ProgressUpdate{TaskID: "t2", Status: "running"})
	h.Emit("u1", types.ProgressUpdate{TaskID: "t3", Status: "running"})
	if got := len(h.Pending("u1", "")); got != 2 {
		t.Fatalf("pending=%d, want capacity-capped 2", got)
	}
}

func TestEndToEndScenario(t *testing.T) {
	h := New()
	sub := NewMemorySubscriber()
	h.Subscribe("u1", sub)

	h.Emit("u1", types.ProgressUpdate{Vendor: "openai", NodeID: "n1", TaskID: "t1", Status: "queued"})
	if got := len(sub.Events()); got != 1 {
		t.Fatalf("after queued: events=%d, want 1", got)
	}
	if got := len(h.Pending("u1", "")); got != 1 {
		t.Fatalf("after queued: pending=%d, want 1", got)
	}

	h.Emit("u1", types.ProgressUpdate{Vendor: "openai", NodeID: "n1", TaskID: "t1", Status: "running", Progress: fptr(50)})
	if got := len(sub.Events()); got != 2 {
		t.Fatalf("after running: events=%d, want 2", got)
	}
	snaps := h.Pending("u1", "")
	if len(snaps) != 1 {
		t.Fatalf("after running: pending=%d, want 1", len(snaps))
	}
	if snaps[0].Progress == nil || *snaps[0].Progress != 50 {
		t.Fatalf("after running: progress=%v, want 50", snaps[0].Progress)
	}

	h.Emit("u1", types.ProgressUpdate{Vendor: "openai", NodeID: "n1", TaskID: "t1", Status: "succeeded"})
	evts := sub.Events()
	if len(evts) != 3 {
		t.Fatalf("after succeeded: events=%d, want 3 (terminal still delivered)", len(evts))
	}
	if evts[2].Status != "succeeded" {
		t.Fatalf("last event status=%q", evts[2].Status)
	}
	if got := len(h.Pending("u1", "")); got != 0 {
		t.Fatalf("after succeeded: pending=%d, want 0", got)
	}
}
