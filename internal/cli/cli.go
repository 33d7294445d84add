// Package cli implements the jyotir command-line interface.
//
// This package provides commands for computing divisional charts from chart
// request files, evaluating vargottama status, listing the supported
// harmonics, and managing the ephemeris response cache. The CLI is built
// using cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - chart: Compute and print divisional charts from a request file
//   - vargottama: Evaluate per-body vargottama status (D1 vs D9)
//   - divisions: List the supported harmonics
//   - cache: Manage the ephemeris response cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/nakshatralabs/jyotir/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nakshatralabs/jyotir/pkg/buildinfo"
	"github.com/nakshatralabs/jyotir/pkg/cache"
	"github.com/nakshatralabs/jyotir/pkg/ephem"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "jyotir"

	// envEphemURL names the environment variable for the ephemeris service.
	envEphemURL = "JYOTIR_EPHEM_URL"

	// envRedisAddr names the environment variable for a shared Redis cache.
	envRedisAddr = "REDIS_ADDR"
)

// Log levels exported for use in main.go.
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
		Short:        "Jyotir computes divisional (varga) charts",
		Long:         `Jyotir is a CLI tool for computing the sixteen classical divisional charts from sidereal positions, with whole-sign houses and vargottama evaluation.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.chartCommand())
	root.AddCommand(c.vargottamaCommand())
	root.AddCommand(c.divisionsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Provider Factory
// =============================================================================

// newProvider creates the remote ephemeris provider, or nil when no service
// is configured. Request files carrying raw positions work without one.
func newProvider(ctx context.Context, ephemURL string, noCache bool) (ephem.Provider, error) {
	if ephemURL == "" {
		ephemURL = os.Getenv(envEphemURL)
	}
	if ephemURL == "" {
		return nil, nil
	}
	backend, err := newBackend(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return ephem.NewClient(ephemURL, backend, 0) // positions never change; no expiry
}

// newBackend selects the cache backend: Redis when REDIS_ADDR is set, the
// XDG file cache otherwise, the null cache when caching is disabled.
func newBackend(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if addr := os.Getenv(envRedisAddr); addr != "" {
		return cache.NewRedisCache(ctx, cache.RedisOptions{Addr: addr})
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/jyotir/).
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
