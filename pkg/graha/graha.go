// Package graha defines the nine classical bodies (grahas) whose positions
// are projected into divisional charts.
//
// The set is closed: seven visible bodies plus the two lunar nodes (Rahu and
// Ketu). The nodes are mathematical points, not physical bodies, and a few
// downstream evaluations — vargottama in particular — are defined as
// inapplicable for them rather than false. Body.IsNode marks them.
package graha

// Body identifies one of the nine classical bodies by its canonical name.
// The ascendant is not a Body: it is a chart-level angle handled separately
// by the chart assembler.
type Body string

// The nine bodies in their traditional order.
const (
	Sun     Body = "sun"
	Moon    Body = "moon"
	Mars    Body = "mars"
	Mercury Body = "mercury"
	Jupiter Body = "jupiter"
	Venus   Body = "venus"
	Saturn  Body = "saturn"
	Rahu    Body = "rahu"
	Ketu    Body = "ketu"
)

// all lists the bodies in traditional order. Count must stay at nine; the
// chart assembler rejects position sets that don't cover exactly this set.
var all = [9]Body{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn, Rahu, Ketu}

// All returns the nine bodies in traditional order.
// The returned slice is a fresh copy and may be modified by the caller.
func All() []Body {
	bodies := make([]Body, len(all))
	copy(bodies, all[:])
	return bodies
}

// Count is the number of bodies in the closed set.
const Count = 9

// Valid reports whether b is one of the nine known bodies.
func (b Body) Valid() bool {
	for _, known := range all {
		if b == known {
			return true
		}
	}
	return false
}

// IsNode reports whether the body is one of the two shadow nodes
// (Rahu or Ketu).
func (b Body) IsNode() bool { return b == Rahu || b == Ketu }

var displayNames = map[Body]string{
	Sun:     "Sun",
	Moon:    "Moon",
	Mars:    "Mars",
	Mercury: "Mercury",
	Jupiter: "Jupiter",
	Venus:   "Venus",
	Saturn:  "Saturn",
	Rahu:    "Rahu",
	Ketu:    "Ketu",
}

// Display returns the capitalized display name, or the raw value for
// unknown bodies.
func (b Body) Display() string {
	if name, ok := displayNames[b]; ok {
		return name
	}
	return string(b)
}
