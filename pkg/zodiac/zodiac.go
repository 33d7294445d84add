// Package zodiac provides the fixed twelve-sign reference frame and the
// longitude arithmetic shared by every divisional chart computation.
//
// The package is deliberately tiny: a normalized sidereal longitude is
// decomposed exactly once into a (sign, degree-in-sign) pair, and every
// higher layer works with that pair. Signs carry two fixed classifications,
// Modality (every third sign) and Element (every fourth sign), which several
// division rules use as selectors.
//
// All functions are pure and total; the sign table is a process-wide
// constant safe for unsynchronized concurrent reads.
package zodiac

import "math"

// DegreesPerSign is the angular width of one zodiac sign.
const DegreesPerSign = 30.0

// SignCount is the number of zodiac signs.
const SignCount = 12

// Sign identifies one of the twelve zodiac signs, indexed 0 (Aries)
// through 11 (Pisces).
type Sign int

// The twelve signs in zodiacal order.
const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [SignCount]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// String returns the English sign name, or "Invalid" for out-of-range values.
func (s Sign) String() string {
	if !s.Valid() {
		return "Invalid"
	}
	return signNames[s]
}

// Valid reports whether the sign index is within [0, 11].
func (s Sign) Valid() bool { return s >= 0 && s < SignCount }

// Ordinal returns the 1-based sign number (Aries=1 … Pisces=12).
// Several division rules branch on whether this ordinal is odd or even.
func (s Sign) Ordinal() int { return int(s) + 1 }

// Odd reports whether the sign has an odd 1-based ordinal (Aries, Gemini, …).
func (s Sign) Odd() bool { return int(s)%2 == 0 }

// Add returns the sign n steps forward in zodiacal order, wrapping mod 12.
// Negative steps move backward.
func (s Sign) Add(n int) Sign {
	return Sign(((int(s)+n)%SignCount + SignCount) % SignCount)
}

// Modality is the cyclic Movable/Fixed/Dual classification of signs.
// It repeats every three signs and acts as a rule selector for several
// divisional charts.
type Modality int

// Modalities in their cyclic order starting at Aries.
const (
	Movable Modality = iota
	Fixed
	Dual
)

var modalityNames = [3]string{"Movable", "Fixed", "Dual"}

// String returns the modality name.
func (m Modality) String() string { return modalityNames[m] }

// Modality returns the sign's Movable/Fixed/Dual classification.
// The mapping is index mod 3: Aries is Movable, Taurus Fixed, Gemini Dual,
// and so on around the zodiac.
func (s Sign) Modality() Modality { return Modality(int(s) % 3) }

// Element is the cyclic Fire/Earth/Air/Water classification of signs.
// It repeats every four signs and selects the base sign for the 27-fold
// divisional chart.
type Element int

// Elements in their cyclic order starting at Aries.
const (
	Fire Element = iota
	Earth
	Air
	Water
)

var elementNames = [4]string{"Fire", "Earth", "Air", "Water"}

// String returns the element name.
func (e Element) String() string { return elementNames[e] }

// Element returns the sign's Fire/Earth/Air/Water classification.
// The mapping is index mod 4: Aries is Fire, Taurus Earth, Gemini Air,
// Cancer Water, repeating.
func (s Sign) Element() Element { return Element(int(s) % 4) }

// Normalize reduces any real degree value to the canonical [0, 360) range.
// It is a total function: negative values wrap backward, values at or above
// 360 wrap forward, and the result of a tiny negative input that rounds up
// to exactly 360 is folded back to 0.
//
// Normalize does not reject non-finite inputs; callers that accept external
// longitudes must check those before normalizing.
func Normalize(x float64) float64 {
	n := math.Mod(x, 360)
	if n < 0 {
		n += 360
	}
	if n >= 360 {
		// Float rounding: Mod of a tiny negative plus 360 can land on 360.
		n -= 360
	}
	return n
}

// SignOf decomposes a normalized longitude into its sign and degree-in-sign.
// The longitude must already be in [0, 360) — normalization is performed
// exactly once upstream, by the chart assembler, so this function never
// re-normalizes.
//
// The boundary belongs to the higher sign: SignOf(30) is (Taurus, 0),
// never (Aries, 30).
func SignOf(lon float64) (Sign, float64) {
	s := Sign(int(lon / DegreesPerSign))
	if s >= SignCount {
		// lon fractionally below 360 can truncate to 12 after division.
		s = SignCount - 1
	}
	return s, lon - float64(s)*DegreesPerSign
}
