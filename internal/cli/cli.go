// Package cli implements the chartlayout command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartlayout/pkg/buildinfo"
	"github.com/matzehuels/chartlayout/pkg/cache"
	"github.com/matzehuels/chartlayout/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "chartlayout"

	// layoutSuffix marks files written by the layout command.
	layoutSuffix = ".layout.json"
)

// Cache backends selectable with --cache.
const (
	cacheFile  = "file"
	cacheRedis = "redis"
	cacheMongo = "mongo"
	cacheNone  = "none"
)

// Log levels accepted by New.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives command output. Defaults to os.Stdout.
	Out io.Writer

	verbose bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "chartlayout",
		Short: "Chartlayout computes the geometry of Cartesian charts",
		Long: `Chartlayout lays out Cartesian charts: it measures axes, sizes the plot
area, maps data points to pixels and places data labels. Layouts can be
written as JSON or rendered to SVG, PNG, PDF and Graphviz diagrams.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			c.setVerbose(c.verbose)
		},
	}
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log layout passes, axis ranges and cache activity")

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheFlags selects the cache backend of a command.
type cacheFlags struct {
	backend   string
	redisAddr string
	mongoURI  string
	noCache   bool
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.backend, "cache", cacheFile, "cache backend: file, redis, mongo, none")
	cmd.Flags().StringVar(&f.redisAddr, "redis-addr", "localhost:6379", "redis address (with --cache redis)")
	cmd.Flags().StringVar(&f.mongoURI, "mongo-uri", "mongodb://localhost:27017", "MongoDB URI (with --cache mongo)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	completeValues(cmd, "cache", cacheFile, cacheRedis, cacheMongo, cacheNone)
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, f cacheFlags) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, f)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, nil, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, f cacheFlags) (cache.Cache, error) {
	if f.noCache {
		return cache.NewNullCache(), nil
	}
	switch f.backend {
	case cacheFile, "":
		dir, err := cacheDir()
		if err != nil {
			c.Logger.Debug("no cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	case cacheRedis:
		return cache.NewRedisCache(ctx, cache.RedisOptions{Addr: f.redisAddr})
	case cacheMongo:
		return cache.NewMongoCache(ctx, cache.MongoOptions{URI: f.mongoURI})
	case cacheNone:
		return cache.NewNullCache(), nil
	}
	return nil, fmt.Errorf("unknown cache backend %q (must be file, redis, mongo or none)", f.backend)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/chartlayout/).
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

// basePath returns the output path without extension. Without an explicit
// output it is derived from input, dropping a .layout.json suffix.
func basePath(output, input string) string {
	if output == "" {
		if strings.HasSuffix(input, layoutSuffix) {
			return strings.TrimSuffix(input, layoutSuffix)
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath returns the file a format is written to.
func outputPath(output, input, format string, single bool) string {
	if single && output != "" && filepath.Ext(output) != "" {
		return output
	}
	return basePath(output, input) + "." + extension(format)
}

func extension(format string) string {
	if format == pipeline.FormatTopology {
		return "topology.svg"
	}
	return format
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// layoutFlags registers the layout options shared by layout and render.
func layoutFlags(cmd *cobra.Command, opts *pipeline.Options, sideBySide *string) {
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "chart width when the definition sets none")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "chart height when the definition sets none")
	cmd.Flags().StringVar(&opts.Measurer, "measurer", opts.Measurer, "text measurer: font (default), approx")
	cmd.Flags().IntVar(&opts.MaxIterations, "max-iterations", 0, "maximum layout passes (0 uses the definition or default)")
	cmd.Flags().StringVar(sideBySide, "side-by-side", "", "override side-by-side placement: true or false")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")
	completeValues(cmd, "measurer", pipeline.MeasurerFont, pipeline.MeasurerApprox)
	completeValues(cmd, "side-by-side", "true", "false")
}

// applySideBySide parses the --side-by-side flag into opts.
func applySideBySide(opts *pipeline.Options, v string) error {
	switch v {
	case "":
	case "true":
		b := true
		opts.SideBySide = &b
	case "false":
		b := false
		opts.SideBySide = &b
	default:
		return fmt.Errorf("--side-by-side must be true or false, got %q", v)
	}
	return nil
}
