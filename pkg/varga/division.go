package varga

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/nakshatralabs/jyotir/pkg/zodiac"
)

var (
	// ErrUnsupportedDivision is returned when a caller requests a harmonic
	// number outside the closed sixteen-entry registry. Requests are never
	// mapped to a "nearest" supported value.
	ErrUnsupportedDivision = errors.New("unsupported divisional chart")

	// ErrInvalidLongitude is returned when an input longitude is NaN or
	// infinite. This is always an upstream ephemeris defect and is raised
	// before any division rule executes.
	ErrInvalidLongitude = errors.New("longitude must be finite")

	// ErrMissingBody is returned by BuildChart when the supplied positions
	// do not cover exactly the nine classical bodies.
	ErrMissingBody = errors.New("missing body longitude")
)

// signRule selects the resulting sign for one division cell.
// source is the already-classified source sign and ordinal the 0-based
// division ordinal computed by the shared scaling law.
type signRule func(source zodiac.Sign, ordinal int) zodiac.Sign

// cell keys a per-cell override: one (source sign, division ordinal) pair.
type cell struct {
	Sign    zodiac.Sign
	Ordinal int
}

// rule is one entry of the division registry. Rules are immutable after
// package init.
type rule struct {
	division int

	// houses reports whether whole-sign houses are defined for this
	// harmonic. The six highest harmonics are sign-only.
	houses bool

	// sign is the generic sign-selection policy applied to all entities.
	sign signRule

	// ascendant, when non-nil, replaces sign for the ascendant entity only.
	// Only D=12 defines one: its ascendant counts from the source sign
	// directly while bodies take a modality offset first.
	ascendant signRule

	// overrides maps individual cells to exact resulting signs. Overrides
	// are empirical fixed data and always take precedence over sign.
	overrides map[cell]zodiac.Sign
}

// registry is the closed rule table, keyed by harmonic number.
// Built once in rules.go at package init; read-only thereafter.
var registry = buildRegistry()

// Supported reports whether d is one of the sixteen supported harmonics.
func Supported(d int) bool {
	_, ok := registry[d]
	return ok
}

// Divisions returns the supported harmonic numbers in ascending order.
func Divisions() []int {
	return slices.Sorted(maps.Keys(registry))
}

// HousesEnabled reports whether whole-sign houses are defined for harmonic d.
// It is false for the sign-only set {24, 27, 30, 40, 45, 60} and false for
// unsupported harmonics.
func HousesEnabled(d int) bool {
	r, ok := registry[d]
	return ok && r.houses
}

// lookup fetches the rule for d or fails with ErrUnsupportedDivision.
func lookup(d int) (*rule, error) {
	r, ok := registry[d]
	if !ok {
		return nil, fmt.Errorf("%w: D%d (supported: %v)", ErrUnsupportedDivision, d, Divisions())
	}
	return r, nil
}

// resolveSign applies the rule's sign policy for one cell, honoring the
// override table first and the ascendant sub-rule when requested.
func (r *rule) resolveSign(source zodiac.Sign, ordinal int, ascendant bool) zodiac.Sign {
	if s, ok := r.overrides[cell{Sign: source, Ordinal: ordinal}]; ok {
		return s
	}
	if ascendant && r.ascendant != nil {
		return r.ascendant(source, ordinal)
	}
	return r.sign(source, ordinal)
}
