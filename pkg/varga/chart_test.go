package varga

import (
	"errors"
	"math"
	"testing"

	"github.com/nakshatralabs/jyotir/pkg/graha"
	"github.com/nakshatralabs/jyotir/pkg/zodiac"
)

// testLongitudes returns a full position set with deliberately messy raw
// values: negatives, values above 360, and exact sign boundaries.
func testLongitudes() Longitudes {
	return Longitudes{
		Ascendant: 102.5,
		Bodies: map[graha.Body]float64{
			graha.Sun:     250.125,
			graha.Moon:    -17.4, // normalizes to 342.6
			graha.Mars:    365.0, // normalizes to 5.0
			graha.Mercury: 30.0,  // exact boundary: Taurus 0°
			graha.Jupiter: 183.4,
			graha.Venus:   299.999999,
			graha.Saturn:  0.0,
			graha.Rahu:    212.75,
			graha.Ketu:    32.75,
		},
	}
}

func TestBuildChartRangeInvariant(t *testing.T) {
	longs := testLongitudes()
	for _, d := range Divisions() {
		chart, err := BuildChart(longs, d)
		if err != nil {
			t.Fatalf("BuildChart(D%d) error: %v", d, err)
		}

		check := func(name string, p Projected) {
			if !p.Sign.Valid() {
				t.Errorf("D%d %s sign = %d, want [0,11]", d, name, p.Sign)
			}
			if p.Degree < 0 || p.Degree >= 30 {
				t.Errorf("D%d %s degree = %v, want [0,30)", d, name, p.Degree)
			}
			if p.Ordinal < 0 || p.Ordinal >= d {
				t.Errorf("D%d %s ordinal = %d, want [0,%d)", d, name, p.Ordinal, d)
			}
			if p.HasHouse() && (p.House < 1 || p.House > 12) {
				t.Errorf("D%d %s house = %d, want [1,12]", d, name, p.House)
			}
		}

		check("ascendant", chart.Ascendant)
		for body, p := range chart.Bodies {
			check(string(body), p)
		}
	}
}

func TestBuildChartLagnaInvariant(t *testing.T) {
	// For every houses-enabled harmonic and a sweep of ascendant longitudes,
	// the ascendant's house must be exactly 1.
	longs := testLongitudes()
	for _, d := range Divisions() {
		if !HousesEnabled(d) {
			continue
		}
		for lon := -400.0; lon < 800; lon += 13.7 {
			longs.Ascendant = lon
			chart, err := BuildChart(longs, d)
			if err != nil {
				t.Fatalf("BuildChart(D%d, asc=%v) error: %v", d, lon, err)
			}
			if chart.Ascendant.House != 1 {
				t.Fatalf("D%d asc=%v: ascendant house = %d, want 1", d, lon, chart.Ascendant.House)
			}
		}
	}
}

func TestBuildChartHouseConsistency(t *testing.T) {
	longs := testLongitudes()
	for _, d := range Divisions() {
		if !HousesEnabled(d) {
			continue
		}
		chart, err := BuildChart(longs, d)
		if err != nil {
			t.Fatalf("BuildChart(D%d) error: %v", d, err)
		}
		for body, p := range chart.Bodies {
			want := (int(p.Sign)-int(chart.Ascendant.Sign)+12)%12 + 1
			if p.House != want {
				t.Errorf("D%d %s house = %d, want %d", d, body, p.House, want)
			}
		}
	}
}

func TestBuildChartSignOnlyInvariant(t *testing.T) {
	longs := testLongitudes()
	for _, d := range []int{24, 27, 30, 40, 45, 60} {
		chart, err := BuildChart(longs, d)
		if err != nil {
			t.Fatalf("BuildChart(D%d) error: %v", d, err)
		}
		if !chart.SignOnly() {
			t.Errorf("D%d SignOnly() = false, want true", d)
		}
		if chart.Ascendant.HasHouse() {
			t.Errorf("D%d ascendant carries house %d, want none", d, chart.Ascendant.House)
		}
		for body, p := range chart.Bodies {
			if p.HasHouse() {
				t.Errorf("D%d %s carries house %d, want none", d, body, p.House)
			}
		}
	}
}

func TestBuildChartSignBoundary(t *testing.T) {
	// 30° belongs to Taurus at degree 0, never Aries at degree 30.
	chart, err := BuildChart(testLongitudes(), 1)
	if err != nil {
		t.Fatalf("BuildChart(D1) error: %v", err)
	}
	mercury := chart.Bodies[graha.Mercury]
	if mercury.Sign != zodiac.Taurus {
		t.Errorf("D1 Mercury at 30° sign = %s, want Taurus", mercury.Sign)
	}
	if mercury.Degree != 0 {
		t.Errorf("D1 Mercury at 30° degree = %v, want 0", mercury.Degree)
	}
}

func TestBuildChartNavamshaScenario(t *testing.T) {
	// 183.4° sits in Libra at 3.4°, inside the second ninth: result sign
	// (6*9+1) mod 12 = Scorpio with degree 3.4*9 mod 30 = 0.6.
	chart, err := BuildChart(testLongitudes(), 9)
	if err != nil {
		t.Fatalf("BuildChart(D9) error: %v", err)
	}
	jupiter := chart.Bodies[graha.Jupiter]
	if jupiter.Ordinal != 1 {
		t.Errorf("D9 Jupiter ordinal = %d, want 1", jupiter.Ordinal)
	}
	if jupiter.Sign != zodiac.Scorpio {
		t.Errorf("D9 Jupiter sign = %s, want Scorpio", jupiter.Sign)
	}
	if math.Abs(jupiter.Degree-0.6) > 1e-9 {
		t.Errorf("D9 Jupiter degree = %v, want 0.6", jupiter.Degree)
	}
}

func TestBuildChartNavamshaBoundaryFolding(t *testing.T) {
	// The 3°20′ part boundary has no exact binary representation, so a
	// longitude written just below it must stay in the first ninth with its
	// folded degree approaching 30, never rounding up into the next part.
	longs := testLongitudes()
	longs.Bodies[graha.Jupiter] = 183.33333

	chart, err := BuildChart(longs, 9)
	if err != nil {
		t.Fatalf("BuildChart(D9) error: %v", err)
	}

	jupiter := chart.Bodies[graha.Jupiter]
	if jupiter.Ordinal != 0 {
		t.Errorf("D9 Jupiter ordinal = %d, want 0", jupiter.Ordinal)
	}
	if jupiter.Sign != zodiac.Libra {
		t.Errorf("D9 Jupiter sign = %s, want Libra", jupiter.Sign)
	}
	if jupiter.Degree < 29.99 || jupiter.Degree >= 30 {
		t.Errorf("D9 Jupiter degree = %v, want just under 30", jupiter.Degree)
	}
}

func TestBuildChartDrekkanaScenario(t *testing.T) {
	// 195° is Libra 15°, the second third: offset +4 lands in Aquarius at 15°.
	longs := testLongitudes()
	longs.Bodies[graha.Sun] = 195.0
	chart, err := BuildChart(longs, 3)
	if err != nil {
		t.Fatalf("BuildChart(D3) error: %v", err)
	}
	sun := chart.Bodies[graha.Sun]
	if sun.Ordinal != 1 {
		t.Errorf("D3 Sun ordinal = %d, want 1", sun.Ordinal)
	}
	if sun.Sign != zodiac.Aquarius {
		t.Errorf("D3 Sun sign = %s, want Aquarius", sun.Sign)
	}
	if math.Abs(sun.Degree-15) > 1e-9 {
		t.Errorf("D3 Sun degree = %v, want 15", sun.Degree)
	}
}

func TestBuildChartDwadashamshaAsymmetry(t *testing.T) {
	// Scorpio 12° is the fifth twelfth (ordinal 4). The ascendant sub-rule
	// counts from Scorpio directly; bodies take the Fixed-sign offset of
	// three first. Same longitude, different result signs, three apart.
	lon := float64(zodiac.Scorpio)*30 + 12.0
	longs := testLongitudes()
	longs.Ascendant = lon
	longs.Bodies[graha.Moon] = lon

	chart, err := BuildChart(longs, 12)
	if err != nil {
		t.Fatalf("BuildChart(D12) error: %v", err)
	}

	asc := chart.Ascendant
	moon := chart.Bodies[graha.Moon]
	if asc.Ordinal != 4 || moon.Ordinal != 4 {
		t.Fatalf("D12 ordinals = (%d, %d), want (4, 4)", asc.Ordinal, moon.Ordinal)
	}
	if asc.Sign != zodiac.Pisces {
		t.Errorf("D12 ascendant sign = %s, want Pisces", asc.Sign)
	}
	if moon.Sign != zodiac.Gemini {
		t.Errorf("D12 Moon sign = %s, want Gemini", moon.Sign)
	}
	if want := asc.Sign.Add(3); moon.Sign != want {
		t.Errorf("D12 Moon sign = %s, want ascendant+3 = %s", moon.Sign, want)
	}
}

func TestBuildChartUnsupportedDivision(t *testing.T) {
	for _, d := range []int{0, 5, 6, 8, 13, 61} {
		if _, err := BuildChart(testLongitudes(), d); !errors.Is(err, ErrUnsupportedDivision) {
			t.Errorf("BuildChart(D%d) error = %v, want ErrUnsupportedDivision", d, err)
		}
	}
}

func TestBuildChartInvalidLongitude(t *testing.T) {
	longs := testLongitudes()
	longs.Bodies[graha.Venus] = math.NaN()
	if _, err := BuildChart(longs, 9); !errors.Is(err, ErrInvalidLongitude) {
		t.Errorf("BuildChart(NaN venus) error = %v, want ErrInvalidLongitude", err)
	}

	longs = testLongitudes()
	longs.Ascendant = math.Inf(1)
	if _, err := BuildChart(longs, 9); !errors.Is(err, ErrInvalidLongitude) {
		t.Errorf("BuildChart(+Inf ascendant) error = %v, want ErrInvalidLongitude", err)
	}
}

func TestBuildChartMissingBody(t *testing.T) {
	longs := testLongitudes()
	delete(longs.Bodies, graha.Saturn)
	if _, err := BuildChart(longs, 9); !errors.Is(err, ErrMissingBody) {
		t.Errorf("BuildChart(no saturn) error = %v, want ErrMissingBody", err)
	}
}

func TestValidateCatchesCorruptedHouse(t *testing.T) {
	chart, err := BuildChart(testLongitudes(), 9)
	if err != nil {
		t.Fatalf("BuildChart(D9) error: %v", err)
	}

	// Simulate a rule-table bug by corrupting a stored house, then re-run
	// the gate.
	sun := chart.Bodies[graha.Sun]
	sun.House = sun.House%12 + 1
	chart.Bodies[graha.Sun] = sun

	err = chart.validate(registry[9])
	var integrity *IntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("validate() error = %v, want *IntegrityError", err)
	}
	if integrity.Entity != string(graha.Sun) || integrity.Field != "house" {
		t.Errorf("IntegrityError = %+v, want sun/house", integrity)
	}
}
