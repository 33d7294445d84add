package varga

import "github.com/nakshatralabs/jyotir/pkg/zodiac"

// houseOf computes the whole-sign house of an entity relative to the
// projected ascendant: each house is exactly one sign wide and house 1 is
// the ascendant's sign. The formula is applied uniformly to the ascendant
// and every body — the ascendant's house works out to 1 by arithmetic, it
// is never hard-coded.
func houseOf(entity, ascendant zodiac.Sign) int {
	return (int(entity)-int(ascendant)+zodiac.SignCount)%zodiac.SignCount + 1
}
