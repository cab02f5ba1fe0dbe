package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/linker268/Swimmer-plot/pkg/errors"
	swimio "github.com/linker268/Swimmer-plot/pkg/io"
	"github.com/linker268/Swimmer-plot/pkg/pipeline"
	"github.com/linker268/Swimmer-plot/pkg/plot"
)

// layoutCommand creates the layout command: patients.json → geometry.json.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output    string
		sortBy    string
		group     bool
		noGrid    bool
		barHeight int
		barGap    int
	)

	cmd := &cobra.Command{
		Use:   "layout <patients.json>",
		Short: "Compute swimmer-plot geometry from normalized patients",
		Long: `Layout organizes normalized patients into cohort groups, plans the
shared month axis, and maps everything onto canvas coordinates. The
resulting geometry.json fully determines the drawing; visualize renders
it without recomputation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			patients, err := swimio.ImportPatients(input)
			if err != nil {
				return err
			}

			popts := pipeline.Options{
				SortBy:        sortBy,
				GroupByCohort: group,
				BarHeight:     barHeight,
				BarGap:        barGap,
				Logger:        c.Logger,
			}
			if noGrid {
				off := false
				popts.ShowGrid = &off
			}

			geometry, err := pipeline.ComputeGeometry(patients, popts)
			if err != nil {
				printError("%s", errors.UserMessage(err))
				return err
			}

			path := output
			if path == "" {
				base := strings.TrimSuffix(input, filepath.Ext(input))
				base = strings.TrimSuffix(base, "_patients")
				path = base + "_geometry.json"
			}

			data, err := plot.MarshalGeometry(geometry)
			if err != nil {
				return err
			}
			if err := swimio.WriteArtifact(path, data); err != nil {
				return err
			}

			printSuccess("Wrote %s", path)
			printDetail("%d bars, %d markers, canvas %.0fx%.0f",
				len(geometry.Bars), len(geometry.Markers), geometry.CanvasWidth, geometry.CanvasHeight)
			printNextStep("Next", fmt.Sprintf("swimplot visualize %s", path))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>_geometry.json)")
	cmd.Flags().StringVar(&sortBy, "sort", pipeline.DefaultSortBy, "patient order: duration (default), id")
	cmd.Flags().BoolVar(&group, "group", false, "group patients by cohort with brackets")
	cmd.Flags().BoolVar(&noGrid, "no-grid", false, "hide vertical grid guides")
	cmd.Flags().IntVar(&barHeight, "bar-height", pipeline.DefaultBarHeight, "bar height in pixels (12-32)")
	cmd.Flags().IntVar(&barGap, "bar-gap", pipeline.DefaultBarGap, "gap between bars in pixels")

	return cmd
}
