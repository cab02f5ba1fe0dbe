// Package pipeline provides the core swimmer-plot pipeline for swimplot.
//
// This package implements the complete parse → layout → render pipeline
// shared by the CLI, the preview server, and the TUI. Centralizing it
// keeps behavior identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: load raw rows from a source and normalize them into patients
//  2. Layout: organize patients into cohort groups, plan the axis, and
//     compute the pixel geometry
//  3. Render: serialize the geometry in the requested formats (SVG, PNG,
//     PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "trial.csv",
//	    SortBy:  "duration",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/linker268/Swimmer-plot/pkg/cache"
	"github.com/linker268/Swimmer-plot/pkg/errors"
	"github.com/linker268/Swimmer-plot/pkg/plot"
	"github.com/linker268/Swimmer-plot/pkg/source/mongo"
	"github.com/linker268/Swimmer-plot/pkg/trial"
)

// Default values, the single source of truth for CLI, server, and TUI.
const (
	// DefaultBarHeight is the bar height in pixels.
	DefaultBarHeight = 20

	// DefaultBarGap is the vertical gap between bars in pixels.
	DefaultBarGap = 10

	// DefaultSortBy orders patients by time on treatment.
	DefaultSortBy = string(plot.SortDuration)

	// DefaultStyle is the default visual style.
	DefaultStyle = "simple"
)

// Source kinds accepted by Options.Source.
const (
	SourceCSV   = "csv"
	SourceMongo = "mongo"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidSortKeys is the set of supported patient orderings.
var ValidSortKeys = map[string]bool{
	string(plot.SortDuration): true,
	string(plot.SortID):       true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	"simple":   true,
	"clinical": true,
}

// Options contains all configuration for the swimmer-plot pipeline.
// This struct supports JSON serialization for preview-server requests.
type Options struct {
	// Parse options
	Input   string       `json:"input,omitempty"`  // CSV file path (Source == "csv")
	Source  string       `json:"source,omitempty"` // "csv" (default) or "mongo"
	Mongo   mongo.Config `json:"mongo,omitempty"`
	Refresh bool         `json:"refresh,omitempty"`

	// Layout options
	SortBy        string `json:"sort_by,omitempty"`
	GroupByCohort bool   `json:"group_by_cohort,omitempty"`
	ShowGrid      *bool  `json:"show_grid,omitempty"` // nil means the default (on)
	BarHeight     int    `json:"bar_height,omitempty"`
	BarGap        int    `json:"bar_gap,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Style   string   `json:"style,omitempty"`
	Theme   string   `json:"theme,omitempty"` // TOML theme file path
	Title   string   `json:"title,omitempty"`
	Legend  bool     `json:"legend,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Patients are the normalized patients in input order.
	Patients []trial.Patient

	// PatientsHash is the content hash of the normalized patients.
	PatientsHash string

	// Geometry is the computed drawing plan.
	Geometry plot.Geometry

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PatientCount int
	EventCount   int
	DroppedRows  int // input rows discarded for lacking a reference date
	ParseTime    time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ParseHit  bool // whether normalized patients came from cache
	LayoutHit bool // whether the geometry came from cache
	RenderHit bool // whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateSortKey checks that a sort key is valid.
func ValidateSortKey(key string) error {
	if !ValidSortKeys[key] {
		return errors.New(errors.ErrCodeInvalidSort, "invalid sort key: %q (must be one of: duration, id)", key)
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: simple, clinical)", style)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	if err := ValidateSortKey(o.SortBy); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks required fields for parsing.
func (o *Options) ValidateForParse() error {
	switch o.Source {
	case "", SourceCSV:
		o.Source = SourceCSV
		if o.Input == "" {
			return errors.New(errors.ErrCodeInvalidInput, "input file is required")
		}
	case SourceMongo:
		if o.Mongo.URI == "" {
			return errors.New(errors.ErrCodeInvalidSource, "mongo uri is required")
		}
	default:
		return errors.New(errors.ErrCodeInvalidSource, "invalid source: %q (must be csv or mongo)", o.Source)
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation. Bar
// height is clamped into the supported range here, at the options
// boundary; the layout engine itself never clamps.
func (o *Options) SetLayoutDefaults() {
	if o.SortBy == "" {
		o.SortBy = DefaultSortBy
	}
	if o.BarHeight == 0 {
		o.BarHeight = DefaultBarHeight
	}
	if o.BarHeight < plot.MinBarHeight {
		o.BarHeight = plot.MinBarHeight
	}
	if o.BarHeight > plot.MaxBarHeight {
		o.BarHeight = plot.MaxBarHeight
	}
	if o.BarGap == 0 {
		o.BarGap = DefaultBarGap
	}
	if o.ShowGrid == nil {
		on := true
		o.ShowGrid = &on
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return ValidateSortKey(o.SortBy)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

// GridEnabled resolves the grid tri-state.
func (o *Options) GridEnabled() bool {
	return o.ShowGrid == nil || *o.ShowGrid
}

// LayoutConfig converts the options into the layout engine's config.
func (o *Options) LayoutConfig() plot.Config {
	return plot.Config{
		BarHeight:     o.BarHeight,
		BarGap:        o.BarGap,
		ShowGrid:      o.GridEnabled(),
		GroupByCohort: o.GroupByCohort,
	}
}

// GeometryKeyOpts returns cache key options for the layout stage.
func (o *Options) GeometryKeyOpts() cache.GeometryKeyOpts {
	return cache.GeometryKeyOpts{
		SortBy:        o.SortBy,
		GroupByCohort: o.GroupByCohort,
		ShowGrid:      o.GridEnabled(),
		BarHeight:     o.BarHeight,
		BarGap:        o.BarGap,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Style:  o.Style,
		Theme:  o.Theme,
		Title:  o.Title,
		Legend: o.Legend,
	}
}
