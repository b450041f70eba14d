package feature

import (
	"fmt"
	"time"
)

// DefaultVersion is the version applied when a caller does not pin one.
const DefaultVersion = "1.0"

// Metadata describes one cached feature value: what it is, when it was
// computed, and how long it stays fresh.
type Metadata struct {
	Name         string
	Version      string
	ComputedAt   time.Time
	TTL          time.Duration
	Dependencies []string
}

// Expired reports whether the value is stale at the given instant.
func (m Metadata) Expired(now time.Time) bool {
	return now.Sub(m.ComputedAt) > m.TTL
}

// Cached is an immutable value/metadata pair as held by the cache.
type Cached struct {
	Value float64
	Meta  Metadata
}

// Key renders the cache key for a (user, feature, version) triple.
// At most one live cache entry exists per key at any instant.
func Key(userID, name, version string) string {
	if version == "" {
		version = DefaultVersion
	}
	return fmt.Sprintf("%s:%s:%s", userID, name, version)
}
