package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/linker268/Swimmer-plot/pkg/errors"
	swimio "github.com/linker268/Swimmer-plot/pkg/io"
	"github.com/linker268/Swimmer-plot/pkg/pipeline"
	"github.com/linker268/Swimmer-plot/pkg/trial"
)

// parseCommand creates the parse command: normalize rows into patients.json.
func (c *CLI) parseCommand() *cobra.Command {
	var (
		output  string
		refresh bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "parse <data.csv>",
		Short: "Normalize a trial export into patients.json",
		Long: `Parse loads a clinical-trial CSV export, resolves its mixed date
formats, and normalizes each row into a patient record. Rows without a
usable reference date are discarded. The result is written as a
patients.json file that the layout command consumes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			popts := pipeline.Options{Input: input, Refresh: refresh, Logger: c.Logger}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(c.Logger)
			out, hit, err := runner.ParseWithCacheInfo(cmd.Context(), popts)
			if err != nil {
				printError("%s", errors.UserMessage(err))
				return err
			}
			prog.done(fmt.Sprintf("Normalized %d patients", len(out.Patients)))

			if out.Dropped > 0 {
				printWarning("%d rows discarded (no usable reference date)", out.Dropped)
			}

			path := output
			if path == "" {
				path = strings.TrimSuffix(input, filepath.Ext(input)) + "_patients.json"
			}
			if err := swimio.ExportPatients(out.Patients, path); err != nil {
				return err
			}

			printSuccess("Wrote %s", path)
			printStats(len(out.Patients), trial.EventCount(out.Patients), out.Dropped, hit)
			printNextStep("Next", fmt.Sprintf("swimplot layout %s", path))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>_patients.json)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the parse cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
