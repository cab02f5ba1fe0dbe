package cli

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/linker268/Swimmer-plot/pkg/errors"
	"github.com/linker268/Swimmer-plot/pkg/pipeline"
)

// serveCommand creates the serve command: a live-preview HTTP server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		style   string
		theme   string
		title   string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve <data.csv>",
		Short: "Serve a live swimmer-plot preview over HTTP",
		Long: `Serve starts a preview server for one trial export. Every request to
/plot.svg re-runs layout and render with the query parameters applied,
so sort order, grouping, grid, and bar height can be explored from the
browser without restarting:

  GET /plot.svg?sort=id&group=1&grid=0&barh=24

The pipeline cache keeps repeated requests cheap; set SWIMPLOT_REDIS_ADDR
to share the cache across server instances.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := &previewServer{
				runner: runner,
				input:  args[0],
				style:  style,
				theme:  theme,
				title:  title,
				logger: c.Logger,
			}

			printInfo("Serving %s on http://%s", args[0], addr)
			printDetail("GET /plot.svg?sort=duration|id&group=0|1&grid=0|1&barh=12..32")

			server := &http.Server{
				Addr:              addr,
				Handler:           srv.routes(),
				ReadHeaderTimeout: 5 * time.Second,
			}
			return server.ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "listen address")
	cmd.Flags().StringVar(&style, "style", pipeline.DefaultStyle, "visual style: simple (default), clinical")
	cmd.Flags().StringVar(&theme, "theme", "", "TOML theme file overriding the palette")
	cmd.Flags().StringVar(&title, "title", "", "plot title")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// previewServer renders one input file with per-request display options.
type previewServer struct {
	runner *pipeline.Runner
	input  string
	style  string
	theme  string
	title  string
	logger *log.Logger
}

func (s *previewServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/plot.svg", s.handlePlot)
	r.Get("/healthz", s.handleHealth)
	return r
}

// handlePlot runs the pipeline with the query parameters applied and
// returns the SVG. Out-of-range bar heights are clamped, never rejected.
func (s *previewServer) handlePlot(w http.ResponseWriter, r *http.Request) {
	opts := pipeline.Options{
		Input:   s.input,
		Formats: []string{pipeline.FormatSVG},
		Style:   s.style,
		Theme:   s.theme,
		Title:   s.title,
	}

	q := r.URL.Query()
	if sort := q.Get("sort"); sort != "" {
		opts.SortBy = sort
	}
	opts.GroupByCohort = q.Get("group") == "1"
	if grid := q.Get("grid"); grid != "" {
		on := grid == "1"
		opts.ShowGrid = &on
	}
	if barh := q.Get("barh"); barh != "" {
		if v, err := strconv.Atoi(barh); err == nil {
			opts.BarHeight = v // clamped by SetLayoutDefaults
		}
	}
	opts.Legend = q.Get("legend") != "0"

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		status := http.StatusInternalServerError
		switch errors.GetCode(err) {
		case errors.ErrCodeInvalidSort, errors.ErrCodeInvalidStyle, errors.ErrCodeInvalidFormat:
			status = http.StatusBadRequest
		case errors.ErrCodeFileNotFound:
			status = http.StatusNotFound
		}
		s.logger.Error("render failed", "err", err)
		http.Error(w, errors.UserMessage(err), status)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(result.Artifacts[pipeline.FormatSVG])
}

// handleIndex serves a minimal page embedding the plot with toggles.
func (s *previewServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, `<!doctype html>
<html>
<head><title>swimplot preview</title></head>
<body style="font-family: sans-serif; margin: 2rem">
  <h3>swimplot preview</h3>
  <p>
    sort: <a href="/?">duration</a> | <a href="/?sort=id">id</a>
    &nbsp; group: <a href="/?group=1">on</a> | <a href="/?">off</a>
    &nbsp; grid: <a href="/?grid=0">off</a> | <a href="/?">on</a>
  </p>
  <img src="/plot.svg?`+r.URL.RawQuery+`" alt="swimmer plot" style="max-width: 100%">
</body>
</html>`)
}

func (s *previewServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
