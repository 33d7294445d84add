package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/nakshatralabs/jyotir/pkg/ephem"
	"github.com/nakshatralabs/jyotir/pkg/graha"
	"github.com/nakshatralabs/jyotir/pkg/observability"
	"github.com/nakshatralabs/jyotir/pkg/varga"
)

// Runner executes chart requests against one ephemeris provider.
//
// The Runner is stateless except for the provider and logger - it doesn't
// store results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Provider ephem.Provider
	Logger   *log.Logger
}

// NewRunner creates a runner with the given provider.
// If logger is nil, the default logger is used.
func NewRunner(provider ephem.Provider, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Provider: provider,
		Logger:   logger,
	}
}

// Run executes the complete resolve → build → evaluate pipeline.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RequestID: uuid.NewString(),
		Charts:    make(map[int]*varga.Chart, len(opts.Divisions)),
	}

	runStart := time.Now()
	observability.Chart().OnRunStart(ctx, result.RequestID, opts.Divisions)
	runErr := r.run(ctx, opts, result)
	observability.Chart().OnRunComplete(ctx, result.RequestID, time.Since(runStart), runErr)
	if runErr != nil {
		return nil, runErr
	}
	return result, nil
}

func (r *Runner) run(ctx context.Context, opts Options, result *Result) error {
	// Stage 1: Resolve
	resolveStart := time.Now()
	longs, err := r.Provider.Positions(ctx, opts.Request)
	if err != nil {
		return fmt.Errorf("resolve positions: %w", err)
	}
	result.Longitudes = longs
	result.Stats.ResolveTime = time.Since(resolveStart)

	opts.Logger.Info("resolved positions",
		"request", result.RequestID,
		"duration", result.Stats.ResolveTime)

	// Stage 2: Build
	buildStart := time.Now()
	if err := r.buildCharts(ctx, opts, longs, result); err != nil {
		return err
	}
	result.Stats.BuildTime = time.Since(buildStart)

	opts.Logger.Info("built charts",
		"request", result.RequestID,
		"divisions", len(result.Charts),
		"duration", result.Stats.BuildTime)

	// Stage 3: Evaluate
	evalStart := time.Now()
	if err := r.evaluate(result); err != nil {
		return err
	}
	result.Stats.EvaluateTime = time.Since(evalStart)

	if result.Vargottama != nil {
		opts.Logger.Debug("evaluated vargottama",
			"request", result.RequestID,
			"bodies", len(result.Vargottama))
	}
	return nil
}

// buildCharts assembles each requested harmonic in its own goroutine.
// Charts are pure functions of the longitudes, so no synchronization beyond
// the per-division result slots is needed.
func (r *Runner) buildCharts(ctx context.Context, opts Options, longs varga.Longitudes, result *Result) error {
	charts := make([]*varga.Chart, len(opts.Divisions))
	g, gctx := errgroup.WithContext(ctx)

	for i, d := range opts.Divisions {
		g.Go(func() error {
			start := time.Now()
			observability.Chart().OnBuildStart(gctx, d)
			chart, err := varga.BuildChart(longs, d)
			observability.Chart().OnBuildComplete(gctx, d, time.Since(start), err)
			if err != nil {
				return fmt.Errorf("build D%d: %w", d, err)
			}
			charts[i] = chart
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, d := range opts.Divisions {
		result.Charts[d] = charts[i]
	}
	return nil
}

// evaluate derives cross-chart results. Vargottama needs both the rashi and
// navamsha charts; with either missing the map stays nil. Both charts came
// from this run, so a per-body failure is surfaced rather than dropped: a
// silently missing body would misreport the evaluation as complete.
func (r *Runner) evaluate(result *Result) error {
	base, okBase := result.Charts[1]
	ninth, okNinth := result.Charts[9]
	if !okBase || !okNinth {
		return nil
	}

	statuses := make(map[graha.Body]varga.VargottamaStatus, graha.Count)
	for _, b := range graha.All() {
		status, err := varga.Vargottama(b, base, ninth)
		if err != nil {
			return fmt.Errorf("evaluate vargottama for %s: %w", b, err)
		}
		statuses[b] = status
	}
	result.Vargottama = statuses
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
