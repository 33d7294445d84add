package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// This is useful in embedding services where different users or contexts
// need separate cache namespaces.
//
// Example usage:
//
//	// User-specific keys for saved charts
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
//
//	// Global keys for shared ephemeris responses
//	globalKeyer := NewDefaultKeyer()
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

// EphemerisKey generates a prefixed key for an ephemeris response.
func (k *ScopedKeyer) EphemerisKey(service string, opts EphemerisKeyOpts) string {
	return k.prefix + k.inner.EphemerisKey(service, opts)
}

// ChartKey generates a prefixed key for a built chart.
func (k *ScopedKeyer) ChartKey(positionsHash string, opts ChartKeyOpts) string {
	return k.prefix + k.inner.ChartKey(positionsHash, opts)
}

// Ensure ScopedKeyer implements Keyer.
var _ Keyer = (*ScopedKeyer)(nil)
