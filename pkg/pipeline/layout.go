package pipeline

import (
	"github.com/linker268/Swimmer-plot/pkg/plot"
	"github.com/linker268/Swimmer-plot/pkg/trial"
)

// ComputeGeometry runs the layout stage: organize patients into cohort
// groups, plan the shared axis, and map both onto the canvas. Pure; all
// state flows through the arguments.
func ComputeGeometry(patients []trial.Patient, opts Options) (plot.Geometry, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return plot.Geometry{}, err
	}

	groups := plot.Organize(patients, plot.SortKey(opts.SortBy), opts.GroupByCohort)
	axis := plot.PlanAxis(patients)
	return plot.BuildGeometry(groups, axis, opts.LayoutConfig()), nil
}
