// Package hub provides the per-tenant task-progress directory: producers
// emit status updates, live subscribers receive them, and the latest
// non-terminal snapshot per task is retained for late-arriving clients.
// It is structured into small files by concern:
//
//   - hub.go: core Hub type, constructor, simple getters.
//   - config.go: Config and package defaults; NewWithConfig applies defaults.
//   - types.go: the closed status set and its helpers.
//   - key.go: vendor normalization and composite snapshot keys.
//   - event.go: the emit-side validation boundary (loose input -> ProgressEvent).
//   - snapshots.go: per-tenant snapshot retention and the pending query.
//   - subscribers.go: per-tenant subscriber sets with self-pruning.
//   - emit.go: Emit entry point; record-then-notify with per-push isolation.
//   - status.go: Status/Ready reporting for the operational endpoints.
//   - metrics.go: Prometheus collectors.
//   - memory.go: MemorySubscriber, an in-memory target for tests.
//
// A Hub is an isolated value; construct one per process (or per test) and
// inject it into producers and consumers. Emit never returns an error and
// never panics under documented misuse: malformed input is dropped, and a
// panicking subscriber only loses its own delivery.
package hub
