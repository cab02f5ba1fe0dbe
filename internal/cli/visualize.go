package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/linker268/Swimmer-plot/pkg/errors"
	swimio "github.com/linker268/Swimmer-plot/pkg/io"
	"github.com/linker268/Swimmer-plot/pkg/pipeline"
	"github.com/linker268/Swimmer-plot/pkg/plot"
)

// visualizeCommand creates the visualize command: geometry.json → artifacts.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		style      string
		theme      string
		title      string
		legend     bool
	)

	cmd := &cobra.Command{
		Use:   "visualize <geometry.json>",
		Short: "Render artifacts from a precomputed geometry",
		Long: `Visualize renders a geometry.json file produced by the layout command
into SVG, PNG, PDF, or JSON artifacts without rerunning normalization
or layout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			geometry, err := plot.ReadGeometryFile(input)
			if err != nil {
				return err
			}

			popts := pipeline.Options{
				Formats: parseFormats(formatsStr),
				Style:   style,
				Theme:   theme,
				Title:   title,
				Legend:  legend,
				Logger:  c.Logger,
			}

			artifacts, err := pipeline.Render(geometry, popts)
			if err != nil {
				printError("%s", errors.UserMessage(err))
				return err
			}

			base := outputBase(output, input)
			for _, format := range popts.Formats {
				path := output
				if path == "" || len(popts.Formats) > 1 {
					path = fmt.Sprintf("%s.%s", base, format)
				}
				if err := swimio.WriteArtifact(path, artifacts[format]); err != nil {
					return err
				}
				printFile(path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&style, "style", pipeline.DefaultStyle, "visual style: simple (default), clinical")
	cmd.Flags().StringVar(&theme, "theme", "", "TOML theme file overriding the palette")
	cmd.Flags().StringVar(&title, "title", "", "plot title")
	cmd.Flags().BoolVar(&legend, "legend", false, "draw a response-category legend")

	return cmd
}
