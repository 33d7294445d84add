package pipeline

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/nakshatralabs/jyotir/pkg/ephem"
	"github.com/nakshatralabs/jyotir/pkg/graha"
	"github.com/nakshatralabs/jyotir/pkg/varga"

	apperrors "github.com/nakshatralabs/jyotir/pkg/errors"
)

func testProvider() ephem.Provider {
	return &ephem.Static{Longitudes: varga.Longitudes{
		Ascendant: 102.5,
		Bodies: map[graha.Body]float64{
			graha.Sun:     250.125,
			graha.Moon:    342.6,
			graha.Mars:    1.5,
			graha.Mercury: 30.0,
			graha.Jupiter: 183.25,
			graha.Venus:   299.0,
			graha.Saturn:  0.0,
			graha.Rahu:    212.75,
			graha.Ketu:    32.75,
		},
	}}
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestRunnerRun(t *testing.T) {
	runner := NewRunner(testProvider(), quietLogger())

	result, err := runner.Run(context.Background(), Options{Divisions: []int{1, 9, 10}})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if result.RequestID == "" {
		t.Error("Run() should assign a request ID")
	}
	if len(result.Charts) != 3 {
		t.Fatalf("Charts count = %d, want 3", len(result.Charts))
	}
	for _, d := range []int{1, 9, 10} {
		chart, ok := result.Charts[d]
		if !ok || chart == nil {
			t.Fatalf("Charts missing D%d", d)
		}
		if chart.Division != d {
			t.Errorf("Charts[%d].Division = %d, want %d", d, chart.Division, d)
		}
	}
	if result.Longitudes.Ascendant != 102.5 {
		t.Errorf("Longitudes.Ascendant = %v, want 102.5", result.Longitudes.Ascendant)
	}
}

func TestRunnerRunDefaultsToAllDivisions(t *testing.T) {
	runner := NewRunner(testProvider(), quietLogger())

	result, err := runner.Run(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(result.Charts) != len(varga.Divisions()) {
		t.Errorf("Charts count = %d, want all %d supported harmonics", len(result.Charts), len(varga.Divisions()))
	}
}

func TestRunnerRunVargottama(t *testing.T) {
	runner := NewRunner(testProvider(), quietLogger())
	ctx := context.Background()

	// D1 + D9 present: statuses computed for all bodies
	result, err := runner.Run(ctx, Options{Divisions: []int{1, 9}})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(result.Vargottama) != graha.Count {
		t.Fatalf("Vargottama count = %d, want %d", len(result.Vargottama), graha.Count)
	}
	if got := result.Vargottama[graha.Mars]; got != varga.VargottamaYes {
		t.Errorf("Vargottama[mars] = %s, want %s", got, varga.VargottamaYes)
	}
	if got := result.Vargottama[graha.Rahu]; got != varga.VargottamaInapplicable {
		t.Errorf("Vargottama[rahu] = %s, want %s", got, varga.VargottamaInapplicable)
	}

	// D9 alone: no evaluation
	result, err = runner.Run(ctx, Options{Divisions: []int{9}})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if result.Vargottama != nil {
		t.Errorf("Vargottama = %v, want nil without D1", result.Vargottama)
	}
}

func TestEvaluateSurfacesVargottamaErrors(t *testing.T) {
	runner := NewRunner(testProvider(), quietLogger())

	result, err := runner.Run(context.Background(), Options{Divisions: []int{1, 9}})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	// A body missing from a chart must surface as an error, not as a
	// quietly incomplete status map.
	delete(result.Charts[1].Bodies, graha.Sun)
	if err := runner.evaluate(result); !errors.Is(err, varga.ErrVargottamaCharts) {
		t.Errorf("evaluate() error = %v, want wrapped %v", err, varga.ErrVargottamaCharts)
	}
}

func TestRunnerRunOptionErrors(t *testing.T) {
	runner := NewRunner(testProvider(), quietLogger())
	ctx := context.Background()

	if _, err := runner.Run(ctx, Options{Divisions: []int{5}}); err == nil {
		t.Error("Run() should reject unsupported divisions")
	}
	if _, err := runner.Run(ctx, Options{Divisions: []int{9, 9}}); err == nil {
		t.Error("Run() should reject duplicate divisions")
	}
}

type failingProvider struct{ err error }

func (p *failingProvider) Positions(ctx context.Context, req ephem.Request) (varga.Longitudes, error) {
	return varga.Longitudes{}, p.err
}

func TestRunnerRunResolveFailure(t *testing.T) {
	wantErr := apperrors.New(apperrors.ErrCodeNetwork, "service unreachable")
	runner := NewRunner(&failingProvider{err: wantErr}, quietLogger())

	_, err := runner.Run(context.Background(), Options{Divisions: []int{1}})
	if err == nil {
		t.Fatal("Run() should propagate provider errors")
	}
	if !apperrors.Is(err, apperrors.ErrCodeNetwork) {
		t.Errorf("Run() error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeNetwork)
	}
}

func TestRunnerRunBuildFailure(t *testing.T) {
	// A provider whose positions are structurally broken: missing bodies.
	broken := &ephem.Static{Longitudes: varga.Longitudes{Ascendant: 10}}
	runner := NewRunner(broken, quietLogger())

	_, err := runner.Run(context.Background(), Options{Divisions: []int{1, 9}})
	if err == nil {
		t.Fatal("Run() should fail when charts cannot be built")
	}
	if !errors.Is(err, varga.ErrMissingBody) {
		t.Errorf("Run() error = %v, want wrapped %v", err, varga.ErrMissingBody)
	}
}

func TestValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Divisions: []int{9}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("first call error: %v", err)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second call error: %v", err)
	}
	if len(opts.Divisions) != 1 || opts.Divisions[0] != 9 {
		t.Errorf("Divisions = %v, want [9]", opts.Divisions)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}
