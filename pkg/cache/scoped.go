package cache

// ScopedKeyer wraps a Keyer with a prefix, so deployments sharing one redis
// instance (staging and production, or several servers with different
// databanks) get separate namespaces.
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

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(bankHash string, objID int, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(bankHash, objID, opts)
}
