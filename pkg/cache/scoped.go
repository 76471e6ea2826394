package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// The server uses this to keep per-deployment cache namespaces separate
// when several instances share one Redis.
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

// GridKey generates a prefixed key for a generated grid.
func (k *ScopedKeyer) GridKey(configHash string, opts GridKeyOpts) string {
	return k.prefix + k.inner.GridKey(configHash, opts)
}

// DiagramKey generates a prefixed key for a rendered chain diagram.
func (k *ScopedKeyer) DiagramKey(configHash string, opts DiagramKeyOpts) string {
	return k.prefix + k.inner.DiagramKey(configHash, opts)
}
