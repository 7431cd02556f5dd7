package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"progressd/internal/hub"
	"progressd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Emit(tenantID string, in types.ProgressUpdate)
	Pending(tenantID, vendor string) []types.ProgressEvent
	Subscribe(tenantID string, target hub.Subscriber)
	Unsubscribe(tenantID string, target hub.Subscriber)
	Status() types.StatusResponse
	Ready() bool
}

// tenantHeader carries the tenant identity. The fronting layer is trusted
// to derive it from an authenticated session before proxying here.
const tenantHeader = "X-Tenant-ID"

func tenantID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(tenantHeader))
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	r.Use(MetricsMiddleware)
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	// handleEmit godoc
	// @Summary      Emit a task progress update
	// @Description  Best-effort: malformed events are dropped without error.
	// @Accept       json
	// @Produce      json
	// @Param        X-Tenant-ID  header  string                true  "Tenant identity"
	// @Param        event        body    types.ProgressUpdate  true  "Progress update"
	// @Success      202  {object}  types.AcceptedResponse
	// @Failure      400  {object}  types.ErrorResponse
	// @Failure      413  {object}  types.ErrorResponse
	// @Router       /v1/progress [post]
	r.Post("/v1/progress", func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		tenant := tenantID(r)
		if tenant == "" {
			writeJSONError(w, http.StatusBadRequest, "missing "+tenantHeader+" header")
			return
		}
		// Limit body size (configurable, default 1MiB)
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var in types.ProgressUpdate
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeJSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		start := time.Now()
		svc.Emit(tenant, in)
		if requestLogLevel(r) >= LevelDebug && zlog != nil {
			z := zlog.Debug().Str("path", r.URL.Path).Str("tenant", tenant).
				Str("status", in.Status).Dur("dur", time.Since(start))
			if rid := middleware.GetReqID(r.Context()); rid != "" {
				z = z.Str("request_id", rid)
			}
			z.Msg("progress emitted")
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(types.AcceptedResponse{Accepted: true})
	})

	// handlePending godoc
	// @Summary      List pending (non-terminal) snapshots for the tenant
	// @Produce      json
	// @Param        X-Tenant-ID  header  string  true   "Tenant identity"
	// @Param        vendor       query   string  false  "Filter by vendor (aliases resolve)"
	// @Success      200  {object}  types.PendingResponse
	// @Failure      400  {object}  types.ErrorResponse
	// @Router       /v1/pending [get]
	r.Get("/v1/pending", func(w http.ResponseWriter, r *http.Request) {
		tenant := tenantID(r)
		if tenant == "" {
			writeJSONError(w, http.StatusBadRequest, "missing "+tenantHeader+" header")
			return
		}
		snaps := svc.Pending(tenant, r.URL.Query().Get("vendor"))
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(types.PendingResponse{Snapshots: snaps}); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	})

	r.Get("/v1/stream", streamHandler(svc))

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(svc.Status()); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("starting"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}
