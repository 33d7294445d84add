package varga

import (
	"math"

	"github.com/nakshatralabs/jyotir/pkg/zodiac"
)

// Position is a classified base position: a normalized sidereal longitude
// decomposed into sign and degree-in-sign. Positions are computed fresh per
// request from externally supplied longitudes and are immutable values.
type Position struct {
	Longitude float64     // normalized, [0, 360)
	Sign      zodiac.Sign // 0–11
	Degree    float64     // degree within sign, [0, 30)
}

// PositionOf normalizes a raw longitude and classifies it into a Position.
// It returns ErrInvalidLongitude for NaN or infinite inputs, before any
// division rule can execute.
func PositionOf(longitude float64) (Position, error) {
	if math.IsNaN(longitude) || math.IsInf(longitude, 0) {
		return Position{}, ErrInvalidLongitude
	}
	lon := zodiac.Normalize(longitude)
	sign, deg := zodiac.SignOf(lon)
	return Position{Longitude: lon, Sign: sign, Degree: deg}, nil
}

// Projected is one entity's placement in a divisional chart.
type Projected struct {
	Sign      zodiac.Sign `json:"sign"`
	Degree    float64     `json:"degree"`    // degree within the result sign, [0, 30)
	Longitude float64     `json:"longitude"` // Sign*30 + Degree, [0, 360)
	Ordinal   int         `json:"ordinal"`   // 0-based division ordinal, [0, D)

	// House is the whole-sign house, 1–12. Zero for sign-only harmonics,
	// where no entity carries a house at all.
	House int `json:"house,omitempty"`
}

// HasHouse reports whether a house placement is present.
func (p Projected) HasHouse() bool { return p.House != 0 }

// Project applies the rule for harmonic d to a single classified position.
// When ascendant is true and the harmonic defines an ascendant sub-rule
// (only D=12 does), that sub-rule replaces the generic body policy.
//
// The division ordinal and resulting degree follow the shared scaling law:
// ordinal = clamp(floor(degree / (30/D)), 0, D-1) and
// degree' = (degree * D) mod 30. House placement is not resolved here —
// it requires the projected ascendant and is handled by the chart assembler.
func Project(pos Position, d int, ascendant bool) (Projected, error) {
	r, err := lookup(d)
	if err != nil {
		return Projected{}, err
	}
	return r.project(pos, ascendant), nil
}

// project applies the shared scaling law and the rule's sign policy.
func (r *rule) project(pos Position, ascendant bool) Projected {
	ordinal := divisionOrdinal(pos.Degree, r.division)
	sign := r.resolveSign(pos.Sign, ordinal, ascendant)
	degree := math.Mod(pos.Degree*float64(r.division), zodiac.DegreesPerSign)

	return Projected{
		Sign:      sign,
		Degree:    degree,
		Longitude: float64(sign)*zodiac.DegreesPerSign + degree,
		Ordinal:   ordinal,
	}
}

// divisionOrdinal computes the 0-based part index for a degree-in-sign,
// clamped to [0, d-1] to absorb float rounding at part boundaries.
func divisionOrdinal(degree float64, d int) int {
	span := zodiac.DegreesPerSign / float64(d)
	ordinal := int(degree / span)
	if ordinal < 0 {
		ordinal = 0
	}
	if ordinal > d-1 {
		ordinal = d - 1
	}
	return ordinal
}
