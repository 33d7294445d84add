// Package varga implements the divisional-chart (varga) computation engine.
//
// A divisional chart projects sidereal ecliptic longitudes into one of
// sixteen classical harmonic subdivisions of the zodiac. Each harmonic
// number D partitions every 30° sign into D equal parts and reassigns each
// part to a resulting sign according to a fixed, D-specific rule. The rule
// set is closed — sixteen entries, defined once at package init and never
// mutated — so concurrent chart builds need no synchronization.
//
// # Pipeline
//
// BuildChart is the single entry point consumed by rendering, pattern
// detection, and narrative layers:
//
//	longs := varga.Longitudes{
//	    Ascendant: 102.5,
//	    Bodies:    map[graha.Body]float64{graha.Sun: 250.1, /* … all nine */},
//	}
//	chart, err := varga.BuildChart(longs, 9)
//
// The assembler normalizes and classifies each longitude once, projects the
// ascendant (honoring the D=12 ascendant sub-rule), projects the nine
// bodies, resolves whole-sign houses where the harmonic supports them, and
// finally runs one exhaustive validation gate over the assembled chart. A
// chart is therefore either fully valid or the build fails with an
// *IntegrityError; partially valid charts never escape.
//
// # Rule structure
//
// Every rule shares one scaling law — division ordinal and resulting degree
// are pure functions of the degree-in-sign — and differs only in sign
// selection. Sign selection is expressed as a per-D function plus, for a few
// harmonics, a table of per-cell overrides that always take precedence. The
// override tables reproduce empirically verified cells from a third-party
// reference tool and are fixed data, not formulas.
package varga
