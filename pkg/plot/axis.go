package plot

import (
	"math"

	"github.com/linker268/Swimmer-plot/pkg/trial"
)

const (
	// tickStep is the fixed spacing between axis ticks, in months.
	tickStep = 3.0

	// fallbackDomain is the raw domain used when the patient set is empty,
	// so the axis never degenerates to zero width.
	fallbackDomain = 21.0
)

// AxisPlan is the shared time domain and tick set for one plot.
type AxisPlan struct {
	// DomainMax strictly exceeds the largest duration in the data set and
	// is always of the form 3k+3.
	DomainMax float64 `json:"domain_max" bson:"domain_max"`

	// Ticks are evenly spaced at 3-month steps starting at 0.
	Ticks []float64 `json:"ticks" bson:"ticks"`
}

// PlanAxis derives the month-domain upper bound and tick values from the
// full patient set.
//
// The domain rounds the longest duration up to the next multiple of 3 and
// adds one extra tick of padding, so the longest bar never touches the
// right edge and every tick lands on a multiple of 3 months. An empty
// patient set falls back to a 21-month raw domain.
func PlanAxis(patients []trial.Patient) AxisPlan {
	rawMax := 0.0
	for _, p := range patients {
		if p.DurationMonths > rawMax {
			rawMax = p.DurationMonths
		}
	}
	if rawMax == 0 {
		rawMax = fallbackDomain
	}

	domainMax := math.Ceil(rawMax/tickStep)*tickStep + tickStep

	ticks := make([]float64, 0, int(domainMax/tickStep)+1)
	for m := 0.0; m <= domainMax; m += tickStep {
		ticks = append(ticks, m)
	}

	return AxisPlan{DomainMax: domainMax, Ticks: ticks}
}
