package hub

import (
	"time"

	"github.com/rs/zerolog"
)

// Defaults applied when corresponding Config fields are unset.
const (
	defaultSnapshotTTL      = 6 * time.Hour
	defaultSnapshotCapacity = 512
)

// Config encapsulates all tunables for Hub construction.
type Config struct {
	// SnapshotTTL bounds how long a snapshot is retained without a terminal
	// event. Zero selects the package default; negative disables expiry.
	SnapshotTTL time.Duration
	// SnapshotCapacity caps retained snapshots per tenant (oldest evicted
	// first). Zero selects the package default; negative disables the cap.
	SnapshotCapacity int
	// VendorAliases maps alternate vendor names onto canonical ids. Entries
	// are merged over the built-in aliases; keys and values are trimmed and
	// lowercased.
	VendorAliases map[string]string
	// Logger used for push-failure warnings. Nil disables logging.
	Logger *zerolog.Logger
}

// New constructs a Hub with package defaults.
func New() *Hub {
	// Delegate to NewWithConfig to centralize defaults and option parsing
	return NewWithConfig(Config{})
}

// NewWithConfig constructs a Hub from Config.
func NewWithConfig(cfg Config) *Hub {
	h := &Hub{
		subs:    make(map[string]map[Subscriber]struct{}),
		snaps:   make(map[string]*snapshotBucket),
		aliases: make(map[string]string, len(defaultVendorAliases)+len(cfg.VendorAliases)),
		log:     zerolog.Nop(),
		start:   time.Now(),
	}
	// Apply defaults if unset
	switch {
	case cfg.SnapshotTTL == 0:
		h.ttl = defaultSnapshotTTL
	case cfg.SnapshotTTL < 0:
		h.ttl = 0 // no expiry
	default:
		h.ttl = cfg.SnapshotTTL
	}
	switch {
	case cfg.SnapshotCapacity == 0:
		h.capacity = defaultSnapshotCapacity
	case cfg.SnapshotCapacity < 0:
		h.capacity = 0 // unbounded
	default:
		h.capacity = cfg.SnapshotCapacity
	}
	for alias, canonical := range defaultVendorAliases {
		h.aliases[alias] = canonical
	}
	for alias, canonical := range cfg.VendorAliases {
		a := normalizeToken(alias)
		c := normalizeToken(canonical)
		if a == "" || c == "" {
			continue
		}
		h.aliases[a] = c
	}
	if cfg.Logger != nil {
		h.log = *cfg.Logger
	}
	return h
}
