// Package pipeline orchestrates one chart request end to end.
//
// This package implements the resolve → build → evaluate flow shared by the
// CLI and embedding services. By centralizing this logic, we ensure
// consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Resolve: Obtain raw sidereal longitudes from an ephemeris provider
//  2. Build: Assemble the requested divisional charts (concurrently; charts
//     for different harmonics are independent)
//  3. Evaluate: Derive cross-chart results, currently vargottama status when
//     both D1 and D9 were built
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(provider, logger)
//	opts := pipeline.Options{
//	    Request:   ephem.Request{Time: born, Latitude: lat, Longitude: lon},
//	    Divisions: []int{1, 9, 10},
//	}
//	result, err := runner.Run(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	d9 := result.Charts[9]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nakshatralabs/jyotir/pkg/ephem"
	"github.com/nakshatralabs/jyotir/pkg/graha"
	"github.com/nakshatralabs/jyotir/pkg/varga"

	apperrors "github.com/nakshatralabs/jyotir/pkg/errors"
)

// Options contains all configuration for one pipeline run.
type Options struct {
	// Request identifies the moment and place. Ignored by providers that
	// carry their own positions (ephem.Static).
	Request ephem.Request `json:"request"`

	// Divisions lists the harmonics to build. Empty means all supported
	// harmonics.
	Divisions []int `json:"divisions,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RequestID uniquely identifies this run in logs and hook events.
	RequestID string

	// Longitudes are the resolved base longitudes the charts were built from.
	Longitudes varga.Longitudes

	// Charts holds the built charts keyed by harmonic.
	Charts map[int]*varga.Chart

	// Vargottama holds per-body vargottama status. Nil unless both D1 and
	// D9 were built.
	Vargottama map[graha.Body]varga.VargottamaStatus

	// Stats contains timing information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ResolveTime  time.Duration
	BuildTime    time.Duration
	EvaluateTime time.Duration
}

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if len(o.Divisions) == 0 {
		o.Divisions = varga.Divisions()
	}
	seen := make(map[int]bool, len(o.Divisions))
	for _, d := range o.Divisions {
		if !varga.Supported(d) {
			return apperrors.New(apperrors.ErrCodeUnsupportedDivision, "division D%d is not supported", d)
		}
		if seen[d] {
			return apperrors.New(apperrors.ErrCodeInvalidInput, "division D%d requested twice", d)
		}
		seen[d] = true
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}
