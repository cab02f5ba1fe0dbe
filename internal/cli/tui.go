package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/linker268/Swimmer-plot/pkg/errors"
	swimio "github.com/linker268/Swimmer-plot/pkg/io"
	"github.com/linker268/Swimmer-plot/pkg/pipeline"
)

// tuiCommand creates the tui command: an interactive terminal preview.
func (c *CLI) tuiCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "tui <data.csv>",
		Short: "Interactively preview display settings in the terminal",
		Long: `Tui opens a terminal UI for one trial export. Toggling a setting
re-runs the pipeline and rewrites the preview SVG, so a browser or
image viewer pointed at the file follows along:

  s  toggle sort order (duration / id)
  g  toggle cohort grouping
  x  toggle grid guides
  q  quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			preview := output
			if preview == "" {
				preview = outputBase("", args[0]) + "_preview.svg"
			}

			model := newTuiModel(cmd.Context(), runner, args[0], preview)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "preview SVG path (default: <input>_preview.svg)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// renderedMsg carries the result of one pipeline run back into the model.
type renderedMsg struct {
	stats pipeline.Stats
	hit   bool
	err   error
}

// tuiModel is the bubbletea model for the interactive preview.
type tuiModel struct {
	ctx     context.Context
	runner  *pipeline.Runner
	input   string
	preview string

	sortBy  string
	group   bool
	grid    bool
	running bool

	stats   pipeline.Stats
	fromHit bool
	err     error
}

func newTuiModel(ctx context.Context, runner *pipeline.Runner, input, preview string) tuiModel {
	return tuiModel{
		ctx:     ctx,
		runner:  runner,
		input:   input,
		preview: preview,
		sortBy:  pipeline.DefaultSortBy,
		grid:    true,
	}
}

func (m tuiModel) Init() tea.Cmd {
	return m.rerender()
}

// rerender runs the pipeline with the current settings and writes the
// preview file.
func (m tuiModel) rerender() tea.Cmd {
	opts := pipeline.Options{
		Input:         m.input,
		SortBy:        m.sortBy,
		GroupByCohort: m.group,
		Formats:       []string{pipeline.FormatSVG},
		Legend:        true,
	}
	grid := m.grid
	opts.ShowGrid = &grid

	runner, ctx, preview := m.runner, m.ctx, m.preview
	return func() tea.Msg {
		result, err := runner.Execute(ctx, opts)
		if err != nil {
			return renderedMsg{err: err}
		}
		if err := swimio.WriteArtifact(preview, result.Artifacts[pipeline.FormatSVG]); err != nil {
			return renderedMsg{err: err}
		}
		return renderedMsg{stats: result.Stats, hit: result.CacheInfo.RenderHit}
	}
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "s":
			if m.sortBy == "duration" {
				m.sortBy = "id"
			} else {
				m.sortBy = "duration"
			}
			m.running = true
			return m, m.rerender()
		case "g":
			m.group = !m.group
			m.running = true
			return m, m.rerender()
		case "x":
			m.grid = !m.grid
			m.running = true
			return m, m.rerender()
		}
	case renderedMsg:
		m.running = false
		m.err = msg.err
		if msg.err == nil {
			m.stats = msg.stats
			m.fromHit = msg.hit
		}
	}
	return m, nil
}

func (m tuiModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("swimplot preview"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("s sort  g group  x grid  q quit"))
	b.WriteString("\n\n")

	b.WriteString(settingLine("sort", m.sortBy))
	b.WriteString(settingLine("group by cohort", onOff(m.group)))
	b.WriteString(settingLine("grid", onOff(m.grid)))
	b.WriteString(settingLine("preview", m.preview))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(styleIconError.Render(iconError) + " " + errors.UserMessage(m.err))
	case m.running:
		b.WriteString(StyleDim.Render("rendering..."))
	default:
		status := iconFresh
		if m.fromHit {
			status = iconCached
		}
		b.WriteString(StyleDim.Render(fmt.Sprintf(
			"%d patients · %d responses · %s", m.stats.PatientCount, m.stats.EventCount, status)))
	}
	b.WriteString("\n")

	return b.String()
}

func settingLine(key, value string) string {
	return fmt.Sprintf("  %s %s\n", StyleDim.Render(key+":"), StyleValue.Render(value))
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
