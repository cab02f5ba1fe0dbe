package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/linker268/Swimmer-plot/pkg/cache"
	"github.com/linker268/Swimmer-plot/pkg/observability"
	"github.com/linker268/Swimmer-plot/pkg/plot"
	"github.com/linker268/Swimmer-plot/pkg/trial"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it stores no
// pipeline results. Multiple goroutines can safely share one Runner with
// independent options: cached values are content-addressed, so
// last-writer-wins on the shared cache is harmless.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	// One correlation id per run so interleaved server requests stay
	// readable in the logs.
	runLog := r.Logger.With("run", uuid.NewString()[:8])
	opts.Logger = runLog

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Parse
	parseStart := time.Now()
	parsed, parseHit, err := r.ParseWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Patients = parsed.Patients
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.PatientCount = len(parsed.Patients)
	result.Stats.DroppedRows = parsed.Dropped
	result.Stats.EventCount = trial.EventCount(parsed.Patients)
	result.CacheInfo.ParseHit = parseHit

	if data, err := json.Marshal(parsed.Patients); err == nil {
		result.PatientsHash = cache.Hash(data)
	}

	runLog.Info("normalized patients",
		"patients", result.Stats.PatientCount,
		"events", result.Stats.EventCount,
		"dropped", result.Stats.DroppedRows,
		"duration", result.Stats.ParseTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	geometry, layoutHit, err := r.ComputeGeometryWithCacheInfo(ctx, parsed.Patients, opts)
	if err != nil {
		return nil, err
	}
	result.Geometry = geometry
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	runLog.Info("computed geometry",
		"bars", len(geometry.Bars),
		"markers", len(geometry.Markers),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, geometry, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	runLog.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ParseWithCacheInfo normalizes patients with caching and returns cache
// hit info. CSV sources are cached by file content hash; Mongo sources
// always reload since the collection content is not cheaply hashable.
func (r *Runner) ParseWithCacheInfo(ctx context.Context, opts Options) (ParseOutput, bool, error) {
	if err := opts.ValidateForParse(); err != nil {
		return ParseOutput{}, false, err
	}

	sourceName := opts.Source + ":" + opts.Input
	observability.Pipeline().OnParseStart(ctx, sourceName)
	start := time.Now()

	cacheKey := ""
	if opts.Source == SourceCSV {
		if content, err := os.ReadFile(opts.Input); err == nil {
			cacheKey = r.Keyer.RowsKey("csv:"+opts.Input, cache.Hash(content))
		}
	}

	if cacheKey != "" && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if out, err := unmarshalParseOutput(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "rows")
				observability.Pipeline().OnParseComplete(ctx, sourceName, len(out.Patients), time.Since(start), nil)
				return out, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "rows")
	}

	out, err := Parse(ctx, opts)
	observability.Pipeline().OnParseComplete(ctx, sourceName, len(out.Patients), time.Since(start), err)
	if err != nil {
		return ParseOutput{}, false, err
	}

	if cacheKey != "" {
		if data, err := marshalParseOutput(out); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLRows)
			observability.Cache().OnCacheSet(ctx, "rows", len(data))
		}
	}
	return out, false, nil
}

// Parse is a convenience wrapper that discards the cache hit info.
func (r *Runner) Parse(ctx context.Context, opts Options) (ParseOutput, error) {
	out, _, err := r.ParseWithCacheInfo(ctx, opts)
	return out, err
}

// ComputeGeometryWithCacheInfo computes the geometry with caching and
// returns cache hit info.
func (r *Runner) ComputeGeometryWithCacheInfo(ctx context.Context, patients []trial.Patient, opts Options) (plot.Geometry, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return plot.Geometry{}, false, err
	}

	observability.Pipeline().OnLayoutStart(ctx, len(patients))
	start := time.Now()

	patientsData, _ := json.Marshal(patients)
	cacheKey := r.Keyer.GeometryKey(cache.Hash(patientsData), opts.GeometryKeyOpts())

	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		if cached, err := plot.UnmarshalGeometry(data); err == nil {
			observability.Cache().OnCacheHit(ctx, "geometry")
			observability.Pipeline().OnLayoutComplete(ctx, time.Since(start), nil)
			return cached, true, nil
		}
		// If deserialization fails, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "geometry")

	geometry, err := ComputeGeometry(patients, opts)
	observability.Pipeline().OnLayoutComplete(ctx, time.Since(start), err)
	if err != nil {
		return plot.Geometry{}, false, err
	}

	if data, err := plot.MarshalGeometry(geometry); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLGeometry)
		observability.Cache().OnCacheSet(ctx, "geometry", len(data))
	}
	return geometry, false, nil
}

// ComputeGeometry is a convenience wrapper that discards the cache hit info.
func (r *Runner) ComputeGeometry(ctx context.Context, patients []trial.Patient, opts Options) (plot.Geometry, error) {
	g, _, err := r.ComputeGeometryWithCacheInfo(ctx, patients, opts)
	return g, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g plot.Geometry, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	geometryData, err := plot.MarshalGeometry(g)
	if err != nil {
		return nil, false, err
	}
	geometryHash := cache.Hash(geometryData)

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(geometryHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}
	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	rendered, err := Render(g, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(geometryHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, g plot.Geometry, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, g, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
