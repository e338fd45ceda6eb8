// Package cache provides result caching for layout and routing runs.
//
// Laying out and routing a diagram is deterministic, so a result computed
// once for a given diagram can be replayed from cache. Keys are derived from
// the content hash of the diagram document; any edit to the diagram produces
// a different hash and therefore a fresh computation.
package cache

import (
	"context"
	"time"
)

// TTLs for the different result kinds. Results are pure functions of the
// diagram, so the TTLs exist only to bound cache directory growth.
const (
	// TTLLayout is how long cached layout results are kept.
	TTLLayout = 7 * 24 * time.Hour

	// TTLRoute is how long cached routing results are kept.
	TTLRoute = 7 * 24 * time.Hour
)

// Cache stores serialized results keyed by string.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present (and unexpired).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Keyer generates cache keys for the different result kinds.
type Keyer interface {
	// LayoutKey generates a key for a cached layout result.
	LayoutKey(diagramHash string) string

	// RouteKey generates a key for a cached routing result.
	RouteKey(diagramHash string) string
}

// DefaultKeyer generates unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for a cached layout result.
func (k *DefaultKeyer) LayoutKey(diagramHash string) string {
	return hashKey("layout", diagramHash)
}

// RouteKey generates a key for a cached routing result.
func (k *DefaultKeyer) RouteKey(diagramHash string) string {
	return hashKey("route", diagramHash)
}
