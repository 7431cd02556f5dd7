package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"progressd/pkg/types"
)

// sseSubscriber bridges hub pushes onto a per-connection buffered channel.
// Push never blocks: when the buffer is full the event is dropped and
// counted, keeping a slow consumer from stalling the emitter.
type sseSubscriber struct {
	ch chan types.ProgressEvent
}

func (s *sseSubscriber) Push(ev types.ProgressEvent) {
	select {
	case s.ch <- ev:
	default:
		IncrementStreamDropped("slow_consumer")
	}
}

// streamHandler serves GET /v1/stream as Server-Sent Events. On connect it
// registers a subscriber, replays the tenant's pending snapshots as
// `snapshot` frames (state that predates the subscription), then forwards
// live pushes as `progress` frames until the client disconnects or the
// server shuts down. The vendor query parameter filters the backfill only;
// live frames always cover the whole tenant.
func streamHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant := tenantID(r)
		if tenant == "" {
			writeJSONError(w, http.StatusBadRequest, "missing "+tenantHeader+" header")
			return
		}
		fl, ok := w.(http.Flusher)
		if !ok {
			writeJSONError(w, http.StatusInternalServerError, "streaming unsupported")
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		connID := uuid.NewString()
		sub := &sseSubscriber{ch: make(chan types.ProgressEvent, streamBuffer)}
		svc.Subscribe(tenant, sub)
		defer svc.Unsubscribe(tenant, sub)
		if zlog != nil {
			zlog.Debug().Str("tenant", tenant).Str("conn_id", connID).Msg("stream opened")
			defer zlog.Debug().Str("tenant", tenant).Str("conn_id", connID).Msg("stream closed")
		}

		for _, ev := range svc.Pending(tenant, r.URL.Query().Get("vendor")) {
			writeSSE(w, "snapshot", ev)
		}
		fl.Flush()

		// Join server base context with request context so shutdown ends streams too.
		ctx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		heartbeat := time.NewTicker(heartbeatInterval)
		defer heartbeat.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-sub.ch:
				writeSSE(w, "progress", ev)
				fl.Flush()
			case <-heartbeat.C:
				fmt.Fprint(w, ": ping\n\n")
				fl.Flush()
			}
		}
	}
}

func writeSSE(w io.Writer, event string, ev types.ProgressEvent) {
	b, err := json.Marshal(ev)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, b)
}
