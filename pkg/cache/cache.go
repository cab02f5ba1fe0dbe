// Package cache provides content-addressed caching for pipeline stages.
//
// Every stage of the swimplot pipeline is a pure function, so its output
// can be cached under a hash of its inputs: normalized patients under the
// source content hash, geometry under the patients hash plus layout
// options, and rendered artifacts under the geometry hash plus render
// options. Backends:
//   - FileCache: XDG cache directory, for CLI usage
//   - RedisCache: shared cache for the preview server
//   - NullCache: caching disabled
package cache

import (
	"context"
	"time"
)

// Stage TTLs. Rows expire since a source export can be re-cut under the
// same name; geometry and artifacts are content-addressed, so a longer
// lifetime is safe.
const (
	TTLRows     = 24 * time.Hour
	TTLGeometry = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return value is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL (0 means no expiration).
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// GeometryKeyOpts are the layout options that participate in geometry
// cache keys. Two runs over the same patients with equal opts must map to
// the same key.
type GeometryKeyOpts struct {
	SortBy        string
	GroupByCohort bool
	ShowGrid      bool
	BarHeight     int
	BarGap        int
}

// ArtifactKeyOpts are the render options that participate in artifact
// cache keys.
type ArtifactKeyOpts struct {
	Format string
	Style  string
	Theme  string
	Title  string
	Legend bool
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// RowsKey keys normalized patients by source identity and content hash.
	RowsKey(source, contentHash string) string

	// GeometryKey keys a computed geometry by patients hash and layout opts.
	GeometryKey(patientsHash string, opts GeometryKeyOpts) string

	// ArtifactKey keys a rendered artifact by geometry hash and render opts.
	ArtifactKey(geometryHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// RowsKey implements Keyer.
func (k *DefaultKeyer) RowsKey(source, contentHash string) string {
	return hashKey("rows", source, contentHash)
}

// GeometryKey implements Keyer.
func (k *DefaultKeyer) GeometryKey(patientsHash string, opts GeometryKeyOpts) string {
	return hashKey("geometry", patientsHash, opts)
}

// ArtifactKey implements Keyer.
func (k *DefaultKeyer) ArtifactKey(geometryHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", geometryHash, opts)
}
