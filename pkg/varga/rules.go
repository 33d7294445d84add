package varga

import "github.com/nakshatralabs/jyotir/pkg/zodiac"

// modalityOffset is the forward step applied to a source sign before
// sequential counting in the D=4 and D=12 body rules: Movable signs count
// from themselves, Fixed signs from the fourth sign onward, Dual signs from
// the seventh.
var modalityOffset = map[zodiac.Modality]int{
	zodiac.Movable: 0,
	zodiac.Fixed:   3,
	zodiac.Dual:    6,
}

// baseByModality builds a sign rule that counts ordinal steps from a fixed
// base sign chosen by the source sign's modality.
func baseByModality(movable, fixed, dual zodiac.Sign) signRule {
	bases := map[zodiac.Modality]zodiac.Sign{
		zodiac.Movable: movable,
		zodiac.Fixed:   fixed,
		zodiac.Dual:    dual,
	}
	return func(source zodiac.Sign, ordinal int) zodiac.Sign {
		return bases[source.Modality()].Add(ordinal)
	}
}

// baseByParity builds a sign rule that counts ordinal steps from a fixed
// base sign chosen by the source sign's 1-based parity.
func baseByParity(odd, even zodiac.Sign) signRule {
	return func(source zodiac.Sign, ordinal int) zodiac.Sign {
		if source.Odd() {
			return odd.Add(ordinal)
		}
		return even.Add(ordinal)
	}
}

// forwardFromSource counts ordinal steps from the source sign itself.
// D=1 (where the ordinal is always 0, so the chart is the identity) and
// D=60 both use it.
func forwardFromSource(source zodiac.Sign, ordinal int) zodiac.Sign {
	return source.Add(ordinal)
}

// horaSign implements D=2: each sign splits into a solar half (Leo) and a
// lunar half (Cancer), with the two halves swapping order between odd and
// even source signs.
func horaSign(source zodiac.Sign, ordinal int) zodiac.Sign {
	solarFirst := source.Odd()
	if ordinal == 1 {
		solarFirst = !solarFirst
	}
	if solarFirst {
		return zodiac.Leo
	}
	return zodiac.Cancer
}

// drekkanaSign implements D=3: the three parts go to the source sign and
// the signs four and eight ahead of it, with no parity branching.
func drekkanaSign(source zodiac.Sign, ordinal int) zodiac.Sign {
	return source.Add(4 * ordinal)
}

// chaturthamshaSign implements the generic D=4 policy: a modality-derived
// base sign followed by sequential quarter steps of three signs. The Dual
// fourth-quarter cells deviate from this sequence and live in the override
// table instead.
func chaturthamshaSign(source zodiac.Sign, ordinal int) zodiac.Sign {
	return source.Add(modalityOffset[source.Modality()] + 3*ordinal)
}

// chaturthamshaOverrides pins the Dual-sign fourth quarter to the source
// sign itself, deviating from the sequential-quarter rule.
func chaturthamshaOverrides() map[cell]zodiac.Sign {
	o := make(map[cell]zodiac.Sign, 4)
	for _, s := range []zodiac.Sign{zodiac.Gemini, zodiac.Virgo, zodiac.Sagittarius, zodiac.Pisces} {
		o[cell{Sign: s, Ordinal: 3}] = s
	}
	return o
}

// saptamshaSign implements D=7: odd signs step forward from themselves;
// even signs mirror, stepping backward from the seventh sign.
func saptamshaSign(source zodiac.Sign, ordinal int) zodiac.Sign {
	if source.Odd() {
		return source.Add(ordinal)
	}
	return source.Add(6 - ordinal)
}

// saptamshaOverrides holds the two even-sign cells that deviate from the
// mirrored formula. Fixed data, never re-derived.
var saptamshaOverrides = map[cell]zodiac.Sign{
	{Sign: zodiac.Virgo, Ordinal: 3}:  zodiac.Gemini,
	{Sign: zodiac.Pisces, Ordinal: 5}: zodiac.Scorpio,
}

// navamshaSign implements D=9 with the uniform closed form
// (source*9 + ordinal) mod 12. No parity branching.
func navamshaSign(source zodiac.Sign, ordinal int) zodiac.Sign {
	return zodiac.Sign((int(source)*9 + ordinal) % zodiac.SignCount)
}

// dashamshaSign implements the generic D=10 policy: odd signs count from
// themselves, even signs from the ninth sign onward.
func dashamshaSign(source zodiac.Sign, ordinal int) zodiac.Sign {
	if source.Odd() {
		return source.Add(ordinal)
	}
	return source.Add(8 + ordinal)
}

// dashamshaOverrides holds the cells that deviate from the parity formula.
// Fixed data, never re-derived.
var dashamshaOverrides = map[cell]zodiac.Sign{
	{Sign: zodiac.Taurus, Ordinal: 2}: zodiac.Aquarius,
	{Sign: zodiac.Cancer, Ordinal: 9}: zodiac.Aries,
	{Sign: zodiac.Virgo, Ordinal: 7}:  zodiac.Capricorn,
}

// dwadashamshaBodySign implements the D=12 body policy: a modality offset
// followed by uniform forward stepping.
func dwadashamshaBodySign(source zodiac.Sign, ordinal int) zodiac.Sign {
	return source.Add(modalityOffset[source.Modality()] + ordinal)
}

// dwadashamshaAscendantSign is the D=12 ascendant sub-rule: base-only
// forward stepping with no modality offset. The cross-entity asymmetry with
// dwadashamshaBodySign is intentional and must be preserved.
func dwadashamshaAscendantSign(source zodiac.Sign, ordinal int) zodiac.Sign {
	return source.Add(ordinal)
}

// buildRegistry constructs the closed sixteen-entry rule table. It runs once
// at package init; the result is treated as read-only for the remainder of
// the process lifetime.
func buildRegistry() map[int]*rule {
	rules := []*rule{
		{division: 1, houses: true, sign: forwardFromSource},
		{division: 2, houses: true, sign: horaSign},
		{division: 3, houses: true, sign: drekkanaSign},
		{division: 4, houses: true, sign: chaturthamshaSign, overrides: chaturthamshaOverrides()},
		{division: 7, houses: true, sign: saptamshaSign, overrides: saptamshaOverrides},
		{division: 9, houses: true, sign: navamshaSign},
		{division: 10, houses: true, sign: dashamshaSign, overrides: dashamshaOverrides},
		{division: 12, houses: true, sign: dwadashamshaBodySign, ascendant: dwadashamshaAscendantSign},
		{division: 16, houses: true, sign: baseByModality(zodiac.Aries, zodiac.Leo, zodiac.Sagittarius)},
		{division: 20, houses: true, sign: baseByModality(zodiac.Aries, zodiac.Sagittarius, zodiac.Leo)},
		{division: 24, houses: false, sign: baseByParity(zodiac.Leo, zodiac.Cancer)},
		{division: 27, houses: false, sign: bhamshaSign},
		{division: 30, houses: false, sign: baseByParity(zodiac.Aries, zodiac.Libra)},
		{division: 40, houses: false, sign: baseByModality(zodiac.Libra, zodiac.Aquarius, zodiac.Gemini)},
		{division: 45, houses: false, sign: baseByModality(zodiac.Aries, zodiac.Leo, zodiac.Sagittarius)},
		{division: 60, houses: false, sign: forwardFromSource},
	}

	reg := make(map[int]*rule, len(rules))
	for _, r := range rules {
		reg[r.division] = r
	}
	return reg
}

// bhamshaSign implements D=27: counting starts from the cardinal sign of
// the source sign's element (Fire→Aries, Earth→Cancer, Air→Libra,
// Water→Capricorn).
func bhamshaSign(source zodiac.Sign, ordinal int) zodiac.Sign {
	bases := [4]zodiac.Sign{zodiac.Aries, zodiac.Cancer, zodiac.Libra, zodiac.Capricorn}
	return bases[source.Element()].Add(ordinal)
}
