package httpapi

import "time"

// maxBodyBytes controls the maximum allowed request body size for JSON endpoints.
var maxBodyBytes int64 = 1 << 20

// SetMaxBodyBytes allows configuring the maximum request body size.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = 1 << 20
		return
	}
	maxBodyBytes = n
}

// streamBuffer is the per-connection SSE queue size. Events beyond it are
// dropped for that connection rather than blocking the emitter.
var streamBuffer = 64

// SetStreamBuffer configures the per-connection SSE queue size.
func SetStreamBuffer(n int) {
	if n <= 0 {
		streamBuffer = 64
		return
	}
	streamBuffer = n
}

// heartbeatInterval controls SSE keepalive comments.
var heartbeatInterval = 15 * time.Second

// SetHeartbeatInterval configures the SSE keepalive period (0 restores default).
func SetHeartbeatInterval(d time.Duration) {
	if d <= 0 {
		heartbeatInterval = 15 * time.Second
		return
	}
	heartbeatInterval = d
}

// CORS configuration (opt-in). If disabled, no CORS middleware is added.
var (
	corsEnabled        bool
	corsAllowedOrigins []string
	corsAllowedMethods []string
	corsAllowedHeaders []string
)

// SetCORSOptions configures CORS behavior for the HTTP server.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsEnabled = enabled
	corsAllowedOrigins = append([]string(nil), origins...)
	corsAllowedMethods = append([]string(nil), methods...)
	corsAllowedHeaders = append([]string(nil), headers...)
}
