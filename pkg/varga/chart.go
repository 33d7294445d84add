package varga

import (
	"fmt"

	"github.com/nakshatralabs/jyotir/pkg/graha"
	"github.com/nakshatralabs/jyotir/pkg/zodiac"
)

// Longitudes carries the raw sidereal longitudes for one chart request:
// the ascendant plus all nine bodies. Values may be negative or ≥360 —
// normalization is the engine's job, performed exactly once during
// assembly. The map must cover exactly the nine classical bodies.
type Longitudes struct {
	Ascendant float64
	Bodies    map[graha.Body]float64
}

// Chart is one fully assembled divisional chart. It is built atomically:
// BuildChart either returns a chart that passed the full validation gate or
// fails — partially valid charts never escape. Treat charts as immutable
// values after assembly.
type Chart struct {
	// Division is the harmonic number this chart was projected into.
	Division int `json:"division"`

	// Ascendant is the projected lagna. When houses are enabled for this
	// harmonic its house is always exactly 1.
	Ascendant Projected `json:"ascendant"`

	// Bodies holds the nine projected body placements.
	Bodies map[graha.Body]Projected `json:"bodies"`
}

// SignOnly reports whether this chart's harmonic carries no house
// placements.
func (c *Chart) SignOnly() bool { return !HousesEnabled(c.Division) }

// Body returns the projected placement for b and whether it exists.
func (c *Chart) Body(b graha.Body) (Projected, bool) {
	p, ok := c.Bodies[b]
	return p, ok
}

// IntegrityError reports a post-build invariant violation: a bug in a rule
// definition, never bad user input. The computation is deterministic, so
// the failure is never retried; it carries full diagnostic context because
// silent tolerance would propagate incorrect placements downstream into
// user-facing text.
type IntegrityError struct {
	Entity     string // "ascendant" or a body name
	Division   int
	Field      string // which invariant failed ("sign", "degree", "house")
	Stored     float64
	Recomputed float64
}

// Error implements the error interface.
func (e *IntegrityError) Error() string {
	return fmt.Sprintf("chart integrity violation: D%d %s %s: stored %v, recomputed %v",
		e.Division, e.Entity, e.Field, e.Stored, e.Recomputed)
}

// BuildChart assembles the divisional chart for harmonic d from raw base
// longitudes. It is a pure function of its inputs and the immutable rule
// registry: no I/O, no retained state, safe for unsynchronized concurrent
// calls.
//
// Assembly order: validate the harmonic and all longitudes, classify each
// longitude once, project the ascendant (using the ascendant sub-rule when
// the harmonic defines one), project each body with the generic rule,
// resolve whole-sign houses when the harmonic supports them, then run the
// exhaustive validation gate. On any violation the build fails with an
// *IntegrityError and no chart is returned.
func BuildChart(longs Longitudes, d int) (*Chart, error) {
	r, err := lookup(d)
	if err != nil {
		return nil, err
	}
	if err := checkBodies(longs.Bodies); err != nil {
		return nil, err
	}

	asc, err := PositionOf(longs.Ascendant)
	if err != nil {
		return nil, fmt.Errorf("ascendant: %w", err)
	}
	ascProj := r.project(asc, true)

	bodies := make(map[graha.Body]Projected, graha.Count)
	for body, lon := range longs.Bodies {
		pos, err := PositionOf(lon)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", body, err)
		}
		bodies[body] = r.project(pos, false)
	}

	if r.houses {
		ascProj.House = houseOf(ascProj.Sign, ascProj.Sign)
		for body, p := range bodies {
			p.House = houseOf(p.Sign, ascProj.Sign)
			bodies[body] = p
		}
	}

	chart := &Chart{Division: d, Ascendant: ascProj, Bodies: bodies}
	if err := chart.validate(r); err != nil {
		return nil, err
	}
	return chart, nil
}

// checkBodies verifies the position set covers exactly the nine bodies.
func checkBodies(bodies map[graha.Body]float64) error {
	for _, b := range graha.All() {
		if _, ok := bodies[b]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingBody, b)
		}
	}
	if len(bodies) != graha.Count {
		for b := range bodies {
			if !b.Valid() {
				return fmt.Errorf("%w: unknown body %q", ErrMissingBody, b)
			}
		}
	}
	return nil
}

// validate is the single exhaustive post-build gate. It re-derives every
// stored value that can be re-derived, so a future edit to a rule table
// that silently breaks consistency is caught here rather than downstream.
func (c *Chart) validate(r *rule) error {
	if err := c.validateEntity("ascendant", c.Ascendant, r); err != nil {
		return err
	}
	for body, p := range c.Bodies {
		if err := c.validateEntity(string(body), p, r); err != nil {
			return err
		}
	}

	if r.houses && c.Ascendant.House != 1 {
		return &IntegrityError{
			Entity:     "ascendant",
			Division:   c.Division,
			Field:      "house",
			Stored:     float64(c.Ascendant.House),
			Recomputed: 1,
		}
	}
	return nil
}

// validateEntity checks one entity's ranges and, for houses-enabled
// harmonics, independently re-derives its house from the two stored signs.
func (c *Chart) validateEntity(name string, p Projected, r *rule) error {
	fail := func(field string, stored, recomputed float64) error {
		return &IntegrityError{
			Entity:     name,
			Division:   c.Division,
			Field:      field,
			Stored:     stored,
			Recomputed: recomputed,
		}
	}

	if !p.Sign.Valid() {
		return fail("sign", float64(p.Sign), -1)
	}
	if p.Degree < 0 || p.Degree >= zodiac.DegreesPerSign {
		return fail("degree", p.Degree, -1)
	}
	if p.Ordinal < 0 || p.Ordinal >= r.division {
		return fail("ordinal", float64(p.Ordinal), -1)
	}

	if !r.houses {
		if p.House != 0 {
			return fail("house", float64(p.House), 0)
		}
		return nil
	}

	want := houseOf(p.Sign, c.Ascendant.Sign)
	if p.House != want {
		return fail("house", float64(p.House), float64(want))
	}
	return nil
}
