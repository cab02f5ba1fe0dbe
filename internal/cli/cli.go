// Package cli implements the swimplot command-line interface.
//
// This package provides commands for normalizing clinical-trial exports,
// computing swimmer-plot geometry, rendering artifacts, and previewing
// plots over HTTP or in the terminal. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: run the full pipeline from a CSV export to plot artifacts
//   - parse: normalize rows into a patients.json file
//   - layout: compute geometry.json from a patients.json file
//   - visualize: render artifacts from a precomputed geometry.json
//   - serve: run a live-preview HTTP server
//   - tui: interactive terminal preview
//   - cache: manage the pipeline result cache
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/linker268/Swimmer-plot/pkg/buildinfo"
	"github.com/linker268/Swimmer-plot/pkg/cache"
	"github.com/linker268/Swimmer-plot/pkg/pipeline"
)

const (
	// appName is the application name used for directories and display.
	appName = "swimplot"

	// redisEnv names the Redis address variable; when set, the CLI uses a
	// shared Redis cache instead of the local file cache.
	redisEnv = "SWIMPLOT_REDIS_ADDR"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Swimplot renders clinical-trial swimmer plots",
		Long:         `Swimplot is a CLI tool that turns clinical-trial response exports into swimmer plots: one horizontal bar per patient showing time on treatment, with response assessments and transplant markers along the bar.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// newCache picks the cache backend: Redis when SWIMPLOT_REDIS_ADDR is
// set, otherwise the XDG file cache. Cache failures degrade to no
// caching rather than failing the command.
func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if addr := os.Getenv(redisEnv); addr != "" {
		rc, err := cache.NewRedisCache(context.Background(), cache.RedisConfig{Addr: addr})
		if err == nil {
			return rc, nil
		}
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/swimplot/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// outputBase derives the base artifact path from the output and input
// paths: an explicit output wins (with any known format extension
// stripped), otherwise the input path minus its extension.
func outputBase(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
