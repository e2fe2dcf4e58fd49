package cache

// ScopedKeyer wraps a Keyer with a prefix. The CLI scopes keys by build
// version so that grids written by an older binary are never read back.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1.2.0:")
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

// DensityKey generates a prefixed key for density grid caching.
func (k *ScopedKeyer) DensityKey(pointsHash string, opts DensityKeyOpts) string {
	return k.prefix + k.inner.DensityKey(pointsHash, opts)
}
