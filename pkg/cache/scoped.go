package cache

// ScopedKeyer wraps a Keyer with a prefix so separate workspaces can share
// one cache directory without colliding.
//
// Example usage:
//
//	// Per-project keys when several projects share a cache
//	projectKeyer := NewScopedKeyer(NewDefaultKeyer(), "project:billing:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// LayoutKey generates a prefixed key for a cached layout result.
func (k *ScopedKeyer) LayoutKey(diagramHash string) string {
	return k.prefix + k.inner.LayoutKey(diagramHash)
}

// RouteKey generates a prefixed key for a cached routing result.
func (k *ScopedKeyer) RouteKey(diagramHash string) string {
	return k.prefix + k.inner.RouteKey(diagramHash)
}
