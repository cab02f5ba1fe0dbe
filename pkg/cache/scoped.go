package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation. The
// preview server uses this to keep per-dataset keys apart when several
// datasets share one Redis instance.
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

// RowsKey generates a prefixed key for normalized patients.
func (k *ScopedKeyer) RowsKey(source, contentHash string) string {
	return k.prefix + k.inner.RowsKey(source, contentHash)
}

// GeometryKey generates a prefixed key for geometry caching.
func (k *ScopedKeyer) GeometryKey(patientsHash string, opts GeometryKeyOpts) string {
	return k.prefix + k.inner.GeometryKey(patientsHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(geometryHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(geometryHash, opts)
}
