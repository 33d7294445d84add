package varga

import (
	"errors"
	"fmt"

	"github.com/nakshatralabs/jyotir/pkg/graha"
)

// ErrVargottamaCharts is returned when Vargottama is handed charts of the
// wrong harmonics or a body absent from either chart.
var ErrVargottamaCharts = errors.New("vargottama requires a D1 and a D9 chart")

// VargottamaStatus is the tri-state result of a vargottama evaluation.
// Inapplicable is distinct from No: the two shadow nodes are never
// evaluated, and callers must not conflate "not vargottama" with "the
// question does not apply".
type VargottamaStatus int

const (
	// VargottamaNo means the body occupies different signs in the base and
	// nine-fold charts.
	VargottamaNo VargottamaStatus = iota

	// VargottamaYes means the body occupies the same sign in both charts.
	VargottamaYes

	// VargottamaInapplicable means the evaluation is not defined for this
	// body (the shadow nodes Rahu and Ketu).
	VargottamaInapplicable
)

var vargottamaNames = [3]string{"no", "yes", "inapplicable"}

// String returns the status name.
func (s VargottamaStatus) String() string { return vargottamaNames[s] }

// MarshalText encodes the status as its name, so JSON output carries
// "yes"/"no"/"inapplicable" rather than bare integers.
func (s VargottamaStatus) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(vargottamaNames) {
		return nil, fmt.Errorf("invalid vargottama status %d", int(s))
	}
	return []byte(vargottamaNames[s]), nil
}

// Vargottama reports whether body occupies the same sign in the base (D1)
// chart and its nine-fold (D9) projection. The shadow nodes are always
// VargottamaInapplicable, never VargottamaNo.
//
// Both charts must come from the same base longitudes; Vargottama can only
// check that they carry the expected harmonic numbers and the requested
// body.
func Vargottama(body graha.Body, base, ninth *Chart) (VargottamaStatus, error) {
	if base == nil || ninth == nil || base.Division != 1 || ninth.Division != 9 {
		return VargottamaNo, ErrVargottamaCharts
	}
	if body.IsNode() {
		return VargottamaInapplicable, nil
	}

	basePos, ok := base.Body(body)
	if !ok {
		return VargottamaNo, fmt.Errorf("%w: %s missing from base chart", ErrVargottamaCharts, body)
	}
	ninthPos, ok := ninth.Body(body)
	if !ok {
		return VargottamaNo, fmt.Errorf("%w: %s missing from nine-fold chart", ErrVargottamaCharts, body)
	}

	if basePos.Sign == ninthPos.Sign {
		return VargottamaYes, nil
	}
	return VargottamaNo, nil
}
