package cache

// ScopedKeyer wraps a Keyer with a prefix. Several servers can share one
// Redis instance without reading each other's entries:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "stagekit:prod:")
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

// SummaryKey generates a prefixed summary key.
func (k *ScopedKeyer) SummaryKey(docHash string, opts SummaryKeyOpts) string {
	return k.prefix + k.inner.SummaryKey(docHash, opts)
}

// DiagramKey generates a prefixed diagram key.
func (k *ScopedKeyer) DiagramKey(docHash string, opts DiagramKeyOpts) string {
	return k.prefix + k.inner.DiagramKey(docHash, opts)
}
