// Package ephem resolves sidereal positions for a birth moment.
//
// The chart engine in pkg/varga is a pure function of longitudes; it never
// performs I/O. This package supplies those longitudes: either from a remote
// ephemeris service (Client) or from values given directly in a request file
// (Static). Both satisfy the Provider interface consumed by the pipeline.
package ephem

import (
	"context"
	"time"

	"github.com/nakshatralabs/jyotir/pkg/graha"
	"github.com/nakshatralabs/jyotir/pkg/varga"

	apperrors "github.com/nakshatralabs/jyotir/pkg/errors"
)

// Request identifies the moment and place to compute positions for.
type Request struct {
	// Time is the birth moment. It is normalized to UTC before use, so
	// equal instants in different zones resolve identically.
	Time time.Time

	// Latitude and Longitude locate the birth place in degrees.
	Latitude  float64
	Longitude float64

	// Ayanamsha names the sidereal correction scheme (e.g. "lahiri").
	// Empty selects the service default.
	Ayanamsha string
}

// Validate checks the request coordinates.
func (r Request) Validate() error {
	if r.Time.IsZero() {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "birth moment is required")
	}
	return apperrors.ValidateCoordinates(r.Latitude, r.Longitude)
}

// Provider resolves a request to the raw longitudes the chart engine needs.
//
// Implementations must be safe for concurrent use.
type Provider interface {
	Positions(ctx context.Context, req Request) (varga.Longitudes, error)
}

// Static is a Provider that returns fixed longitudes regardless of the
// request. It backs request files that carry explicit positions, and tests.
type Static struct {
	Longitudes varga.Longitudes
}

// Positions returns the stored longitudes.
func (s *Static) Positions(ctx context.Context, req Request) (varga.Longitudes, error) {
	return s.Longitudes, nil
}

// Ensure Static implements Provider.
var _ Provider = (*Static)(nil)

// checkResponseBodies verifies a service response covers the nine bodies.
func checkResponseBodies(bodies map[graha.Body]float64) error {
	for _, b := range graha.All() {
		if _, ok := bodies[b]; !ok {
			return apperrors.New(apperrors.ErrCodeInternal, "ephemeris response missing body %s", b)
		}
	}
	return nil
}
