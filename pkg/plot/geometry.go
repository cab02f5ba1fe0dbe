package plot

import (
	"encoding/json"
	"fmt"
	"os"
)

// Marker kinds.
const (
	MarkerResponse = "response" // circle at a response assessment
	MarkerASCT     = "asct"     // diamond at the transplant date
)

// Geometry is the renderer-agnostic drawing plan for one swimmer plot.
//
// It is pure derived output: recomputed from scratch on every data or
// settings change, owned by its consumer for the duration of one render,
// and never mutated incrementally. The json/bson tags make it the
// serialization format for artifacts, caching, and Mongo documents alike.
type Geometry struct {
	CanvasWidth  float64 `json:"canvas_width" bson:"canvas_width"`
	CanvasHeight float64 `json:"canvas_height" bson:"canvas_height"`
	DomainMax    float64 `json:"domain_max" bson:"domain_max"`

	Axis     Line      `json:"axis" bson:"axis"`
	Ticks    []Tick    `json:"ticks,omitempty" bson:"ticks,omitempty"`
	Grid     []Line    `json:"grid,omitempty" bson:"grid,omitempty"`
	Bars     []Bar     `json:"bars,omitempty" bson:"bars,omitempty"`
	Markers  []Marker  `json:"markers,omitempty" bson:"markers,omitempty"`
	Brackets []Bracket `json:"brackets,omitempty" bson:"brackets,omitempty"`
}

// Bar is one patient's horizontal time-on-treatment rectangle.
type Bar struct {
	PatientID string  `json:"patient_id" bson:"patient_id"`
	Cohort    string  `json:"cohort" bson:"cohort"`
	X         float64 `json:"x" bson:"x"`
	Y         float64 `json:"y" bson:"y"`
	Width     float64 `json:"width" bson:"width"`
	Height    float64 `json:"height" bson:"height"`
}

// CenterY returns the vertical center of the bar, where markers sit.
func (b Bar) CenterY() float64 { return b.Y + b.Height/2 }

// Marker is a point annotation on a patient's bar.
type Marker struct {
	PatientID string  `json:"patient_id" bson:"patient_id"`
	Kind      string  `json:"kind" bson:"kind"`
	X         float64 `json:"x" bson:"x"`
	Y         float64 `json:"y" bson:"y"`

	// CategoryKey is the response code for response markers; empty for
	// ASCT markers. Unrecognized keys map to a fallback appearance in the
	// sink, never an error.
	CategoryKey string `json:"category_key,omitempty" bson:"category_key,omitempty"`
}

// Tick is one axis tick: its mark position and label.
type Tick struct {
	Month float64 `json:"month" bson:"month"`
	X     float64 `json:"x" bson:"x"`
	Y     float64 `json:"y" bson:"y"`
	Label string  `json:"label" bson:"label"`
}

// Line is a straight segment (axis baseline, grid guide).
type Line struct {
	X1 float64 `json:"x1" bson:"x1"`
	Y1 float64 `json:"y1" bson:"y1"`
	X2 float64 `json:"x2" bson:"x2"`
	Y2 float64 `json:"y2" bson:"y2"`
}

// Bracket is a cohort group's vertical bracket and rotated label, drawn
// left of the bars and centered on the group's vertical span.
type Bracket struct {
	Label string  `json:"label" bson:"label"`
	X     float64 `json:"x" bson:"x"`
	Top   float64 `json:"top" bson:"top"`
	Bottom float64 `json:"bottom" bson:"bottom"`
}

// CenterY returns the vertical midpoint of the bracket span.
func (b Bracket) CenterY() float64 { return (b.Top + b.Bottom) / 2 }

// MarshalGeometry serializes a geometry with stable, indented output.
func MarshalGeometry(g Geometry) ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}

// UnmarshalGeometry parses a serialized geometry.
func UnmarshalGeometry(data []byte) (Geometry, error) {
	var g Geometry
	if err := json.Unmarshal(data, &g); err != nil {
		return Geometry{}, fmt.Errorf("decode geometry: %w", err)
	}
	return g, nil
}

// ReadGeometryFile loads a geometry JSON file from disk.
func ReadGeometryFile(path string) (Geometry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Geometry{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalGeometry(data)
}
