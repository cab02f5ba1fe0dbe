package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/linker268/Swimmer-plot/pkg/errors"
	swimio "github.com/linker268/Swimmer-plot/pkg/io"
	"github.com/linker268/Swimmer-plot/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string // output file path (or base path for multiple formats)
	sortBy    string // patient ordering: "duration" or "id"
	group     bool   // partition patients into cohort groups
	noGrid    bool   // suppress vertical grid guides
	barHeight int    // bar height in pixels
	barGap    int    // vertical gap between bars in pixels
	style     string // visual style: "simple" or "clinical"
	theme     string // TOML theme file path
	title     string // plot title
	legend    bool   // draw a response-category legend
	refresh   bool   // bypass the parse cache
	noCache   bool   // disable caching entirely

	mongoURI        string // read rows from MongoDB instead of a CSV file
	mongoDatabase   string
	mongoCollection string
}

// renderCommand creates the render command for the full pipeline.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		sortBy:    pipeline.DefaultSortBy,
		barHeight: pipeline.DefaultBarHeight,
		barGap:    pipeline.DefaultBarGap,
		style:     pipeline.DefaultStyle,
	}

	cmd := &cobra.Command{
		Use:   "render [data.csv]",
		Short: "Render a swimmer plot from a trial export",
		Long: `Render runs the full pipeline: normalize the rows of a clinical-trial
export, compute the swimmer-plot geometry, and write the plot in the
requested formats. With --mongo-uri the rows are read from a MongoDB
collection instead of a CSV file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			return c.runRender(cmd, input, parseFormats(formatsStr), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&opts.sortBy, "sort", opts.sortBy, "patient order: duration (default), id")
	cmd.Flags().BoolVar(&opts.group, "group", false, "group patients by cohort with brackets")
	cmd.Flags().BoolVar(&opts.noGrid, "no-grid", false, "hide vertical grid guides")
	cmd.Flags().IntVar(&opts.barHeight, "bar-height", opts.barHeight, "bar height in pixels (12-32)")
	cmd.Flags().IntVar(&opts.barGap, "bar-gap", opts.barGap, "gap between bars in pixels")
	cmd.Flags().StringVar(&opts.style, "style", opts.style, "visual style: simple (default), clinical")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "TOML theme file overriding the palette")
	cmd.Flags().StringVar(&opts.title, "title", "", "plot title")
	cmd.Flags().BoolVar(&opts.legend, "legend", false, "draw a response-category legend")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the parse cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "read rows from this MongoDB deployment")
	cmd.Flags().StringVar(&opts.mongoDatabase, "mongo-db", "", "MongoDB database name")
	cmd.Flags().StringVar(&opts.mongoCollection, "mongo-collection", "", "MongoDB collection name")

	return cmd
}

// pipelineOptions converts command flags into pipeline options.
func (o *renderOpts) pipelineOptions(input string, formats []string) pipeline.Options {
	popts := pipeline.Options{
		Input:         input,
		SortBy:        o.sortBy,
		GroupByCohort: o.group,
		BarHeight:     o.barHeight,
		BarGap:        o.barGap,
		Formats:       formats,
		Style:         o.style,
		Theme:         o.theme,
		Title:         o.title,
		Legend:        o.legend,
		Refresh:       o.refresh,
	}
	if o.noGrid {
		off := false
		popts.ShowGrid = &off
	}
	if o.mongoURI != "" {
		popts.Source = pipeline.SourceMongo
		popts.Mongo.URI = o.mongoURI
		popts.Mongo.Database = o.mongoDatabase
		popts.Mongo.Collection = o.mongoCollection
	}
	return popts
}

// runRender executes the full pipeline and writes one artifact per format.
func (c *CLI) runRender(cmd *cobra.Command, input string, formats []string, opts *renderOpts) error {
	popts := opts.pipelineOptions(input, formats)
	if err := popts.ValidateAndSetDefaults(); err != nil {
		printError("%s", errors.UserMessage(err))
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(cmd.Context(), "Rendering swimmer plot...")
	spinner.Start()

	result, err := runner.Execute(cmd.Context(), popts)
	if err != nil {
		spinner.StopWithError(errors.UserMessage(err))
		return err
	}
	spinner.StopWithSuccess("Rendered swimmer plot")
	printStats(result.Stats.PatientCount, result.Stats.EventCount, result.Stats.DroppedRows, result.CacheInfo.RenderHit)

	base := outputBase(opts.output, input)
	if base == "" {
		base = "swimplot"
	}
	for _, format := range popts.Formats {
		path := opts.output
		if path == "" || len(popts.Formats) > 1 {
			path = fmt.Sprintf("%s.%s", base, format)
		}
		if err := swimio.WriteArtifact(path, result.Artifacts[format]); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}
