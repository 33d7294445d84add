// Package manifest parses chart request files.
//
// A request file is a TOML document naming the chart and either a [moment]
// block (birth time and place, resolved through an ephemeris provider) or a
// [positions] block (raw sidereal longitudes, used directly). Exactly one of
// the two must be present.
//
// Example with a moment:
//
//	name = "Example Natal"
//	ayanamsha = "lahiri"
//	divisions = [1, 9, 10]
//
//	[moment]
//	time = 1987-03-14T05:30:00Z
//	latitude = 23.1793
//	longitude = 75.7849
//
// Example with raw positions:
//
//	name = "Worked Example"
//
//	[positions]
//	ascendant = 102.5
//	sun = 250.125
//	moon = 342.6
//	# ... all nine bodies required
package manifest

import (
	"io"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/nakshatralabs/jyotir/pkg/ephem"
	"github.com/nakshatralabs/jyotir/pkg/graha"
	"github.com/nakshatralabs/jyotir/pkg/varga"

	apperrors "github.com/nakshatralabs/jyotir/pkg/errors"
)

// Moment is the birth time and place, resolved through an ephemeris provider.
type Moment struct {
	Time      time.Time `toml:"time"`
	Latitude  float64   `toml:"latitude"`
	Longitude float64   `toml:"longitude"`
}

// Manifest is one parsed chart request.
type Manifest struct {
	// Name is the display name for the request. Required.
	Name string `toml:"name"`

	// Ayanamsha names the sidereal correction scheme. Optional; empty
	// selects the provider default.
	Ayanamsha string `toml:"ayanamsha"`

	// Divisions lists the harmonics to build. Empty means all supported
	// harmonics.
	Divisions []int `toml:"divisions"`

	// Moment is the birth moment. Mutually exclusive with Positions.
	Moment *Moment `toml:"moment"`

	// Positions holds raw longitudes keyed by "ascendant" and the nine
	// body names. Mutually exclusive with Moment.
	Positions map[string]float64 `toml:"positions"`
}

// Load reads and validates a request file from disk.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "request file %s not found", path)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "open request file %s", path)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads and validates a request document.
func Parse(r io.Reader) (*Manifest, error) {
	var m Manifest
	meta, err := toml.NewDecoder(r).Decode(&m)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidManifest, err, "parse request file")
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidManifest, "unknown key %q in request file", undecoded[0].String())
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the manifest for structural errors: a valid name, exactly
// one source of longitudes, supported divisions, in-range coordinates, and a
// complete position set when positions are given.
func (m *Manifest) Validate() error {
	if err := apperrors.ValidateChartName(m.Name); err != nil {
		return err
	}

	hasMoment := m.Moment != nil
	hasPositions := len(m.Positions) > 0
	switch {
	case hasMoment && hasPositions:
		return apperrors.New(apperrors.ErrCodeInvalidManifest, "request file has both [moment] and [positions]; use one")
	case !hasMoment && !hasPositions:
		return apperrors.New(apperrors.ErrCodeInvalidManifest, "request file needs a [moment] or [positions] block")
	}

	for _, d := range m.Divisions {
		if !varga.Supported(d) {
			return apperrors.New(apperrors.ErrCodeUnsupportedDivision, "division D%d is not supported", d)
		}
	}

	if hasMoment {
		if m.Moment.Time.IsZero() {
			return apperrors.New(apperrors.ErrCodeInvalidManifest, "[moment] block is missing time")
		}
		return apperrors.ValidateCoordinates(m.Moment.Latitude, m.Moment.Longitude)
	}
	return m.validatePositions()
}

func (m *Manifest) validatePositions() error {
	if _, ok := m.Positions["ascendant"]; !ok {
		return apperrors.New(apperrors.ErrCodeInvalidManifest, "[positions] block is missing ascendant")
	}
	for _, b := range graha.All() {
		if _, ok := m.Positions[string(b)]; !ok {
			return apperrors.New(apperrors.ErrCodeInvalidManifest, "[positions] block is missing %s", b)
		}
	}
	for key := range m.Positions {
		if key != "ascendant" && !graha.Body(key).Valid() {
			return apperrors.New(apperrors.ErrCodeInvalidManifest, "[positions] block has unknown body %q", key)
		}
	}
	return nil
}

// RequestedDivisions returns the harmonics to build, defaulting to all
// supported harmonics when the file names none.
func (m *Manifest) RequestedDivisions() []int {
	if len(m.Divisions) > 0 {
		ds := make([]int, len(m.Divisions))
		copy(ds, m.Divisions)
		return ds
	}
	return varga.Divisions()
}

// Provider returns the ephemeris provider and request backing this manifest:
// a Static provider for a [positions] block, or the given remote provider
// paired with the [moment] request. The manifest must have been validated.
func (m *Manifest) Provider(remote ephem.Provider) (ephem.Provider, ephem.Request, error) {
	if len(m.Positions) > 0 {
		bodies := make(map[graha.Body]float64, graha.Count)
		for _, b := range graha.All() {
			bodies[b] = m.Positions[string(b)]
		}
		static := &ephem.Static{Longitudes: varga.Longitudes{
			Ascendant: m.Positions["ascendant"],
			Bodies:    bodies,
		}}
		return static, ephem.Request{}, nil
	}
	if remote == nil {
		return nil, ephem.Request{}, apperrors.New(apperrors.ErrCodeInvalidInput, "request file has a [moment] block but no ephemeris service is configured")
	}
	return remote, ephem.Request{
		Time:      m.Moment.Time,
		Latitude:  m.Moment.Latitude,
		Longitude: m.Moment.Longitude,
		Ayanamsha: m.Ayanamsha,
	}, nil
}
