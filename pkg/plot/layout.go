package plot

import "strconv"

// Canvas constants. The horizontal frame is fixed; only the height grows
// with the patient count.
const (
	CanvasWidth = 900.0 // total canvas width in pixels
	PlotX0      = 100.0 // left edge of the plot area
	PlotWidth   = 700.0 // width of the plot area (symmetric label margins)
	PlotY0      = 50.0  // top edge of the first bar row
	GroupGap    = 40.0  // extra vertical padding after each completed group
	heightBase  = 80.0  // fixed top+bottom canvas padding

	bracketInset = 18.0 // bracket distance left of the plot area
)

// BarHeight bounds accepted by the layout configuration. Out-of-range
// values are the caller's responsibility to clamp before invoking
// BuildGeometry.
const (
	MinBarHeight = 12
	MaxBarHeight = 32
)

// Config is the immutable display configuration for one layout run. It is
// passed explicitly; the engine reads no ambient state.
type Config struct {
	BarHeight     int  `json:"bar_height" bson:"bar_height"`
	BarGap        int  `json:"bar_gap" bson:"bar_gap"`
	ShowGrid      bool `json:"show_grid" bson:"show_grid"`
	GroupByCohort bool `json:"group_by_cohort" bson:"group_by_cohort"`
}

// BuildGeometry maps organized patients and an axis plan onto canvas pixel
// coordinates.
//
// Horizontal mapping: month m → PlotX0 + m/DomainMax*PlotWidth. Negative
// offsets map left of the plot area unclamped. Vertical mapping: patients
// stack top to bottom in group order, each row BarHeight+BarGap tall, with
// GroupGap inserted once per completed group.
//
// Group brackets and labels are emitted only when cohort grouping is
// active and more than one group exists; the single implicit group never
// gets a bracket. Grid guides are emitted only when ShowGrid is set, but
// the baseline axis and its ticks are always present.
//
// The function is a pure, idempotent transform: identical inputs yield
// identical geometry.
func BuildGeometry(groups []CohortGroup, axis AxisPlan, cfg Config) Geometry {
	g := Geometry{
		CanvasWidth: CanvasWidth,
		DomainMax:   axis.DomainMax,
	}

	rowStride := float64(cfg.BarHeight + cfg.BarGap)
	g.CanvasHeight = heightBase
	for _, grp := range groups {
		g.CanvasHeight += float64(len(grp.Patients))*rowStride + GroupGap
	}

	x := func(m float64) float64 {
		return PlotX0 + m/axis.DomainMax*PlotWidth
	}

	// Bars and markers, top to bottom across all groups.
	row := 0
	for gi, grp := range groups {
		groupTop := PlotY0 + float64(row)*rowStride + float64(gi)*GroupGap

		for pi, p := range grp.Patients {
			y := groupTop + float64(pi)*rowStride
			bar := Bar{
				PatientID: p.ID,
				Cohort:    grp.Label,
				X:         PlotX0,
				Y:         y,
				Width:     p.DurationMonths / axis.DomainMax * PlotWidth,
				Height:    float64(cfg.BarHeight),
			}
			g.Bars = append(g.Bars, bar)

			for _, e := range p.Events {
				g.Markers = append(g.Markers, Marker{
					PatientID:   p.ID,
					Kind:        MarkerResponse,
					X:           x(e.MonthOffset),
					Y:           bar.CenterY(),
					CategoryKey: e.Category,
				})
			}
			if p.HasASCT {
				g.Markers = append(g.Markers, Marker{
					PatientID: p.ID,
					Kind:      MarkerASCT,
					X:         x(p.ASCTMonthOffset),
					Y:         bar.CenterY(),
				})
			}
		}

		if cfg.GroupByCohort && len(groups) > 1 && len(grp.Patients) > 0 {
			span := float64(len(grp.Patients))*rowStride - float64(cfg.BarGap)
			g.Brackets = append(g.Brackets, Bracket{
				Label:  grp.Label,
				X:      PlotX0 - bracketInset,
				Top:    groupTop,
				Bottom: groupTop + span,
			})
		}

		row += len(grp.Patients)
	}

	// Axis baseline sits under the last bar row.
	axisY := g.CanvasHeight - heightBase/2
	g.Axis = Line{X1: PlotX0, Y1: axisY, X2: PlotX0 + PlotWidth, Y2: axisY}

	for _, m := range axis.Ticks {
		tx := x(m)
		g.Ticks = append(g.Ticks, Tick{
			Month: m,
			X:     tx,
			Y:     axisY,
			Label: strconv.FormatFloat(m, 'f', -1, 64),
		})
		if cfg.ShowGrid {
			g.Grid = append(g.Grid, Line{X1: tx, Y1: PlotY0, X2: tx, Y2: axisY})
		}
	}

	return g
}
