package cache

// ScopedKeyer wraps a Keyer with a prefix so several document stores can
// share one backend without colliding.
//
//	mongoKeyer := NewScopedKeyer(NewDefaultKeyer(), "mongo:boards:")
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

// FingerprintKey generates a prefixed fingerprint key.
func (k *ScopedKeyer) FingerprintKey(document string) string {
	return k.prefix + k.inner.FingerprintKey(document)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(fingerprint string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(fingerprint, opts)
}
