package manifest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nakshatralabs/jyotir/pkg/ephem"
	"github.com/nakshatralabs/jyotir/pkg/graha"
	"github.com/nakshatralabs/jyotir/pkg/varga"

	apperrors "github.com/nakshatralabs/jyotir/pkg/errors"
)

const momentDoc = `
name = "Example Natal"
ayanamsha = "lahiri"
divisions = [1, 9, 10]

[moment]
time = 1987-03-14T05:30:00Z
latitude = 23.1793
longitude = 75.7849
`

const positionsDoc = `
name = "Worked Example"

[positions]
ascendant = 102.5
sun = 250.125
moon = 342.6
mars = 1.5
mercury = 30.0
jupiter = 183.25
venus = 299.0
saturn = 0.0
rahu = 212.75
ketu = 32.75
`

func TestParseMoment(t *testing.T) {
	m, err := Parse(strings.NewReader(momentDoc))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if m.Name != "Example Natal" {
		t.Errorf("Name = %q, want %q", m.Name, "Example Natal")
	}
	if m.Ayanamsha != "lahiri" {
		t.Errorf("Ayanamsha = %q, want lahiri", m.Ayanamsha)
	}
	if m.Moment == nil {
		t.Fatal("Moment = nil, want parsed block")
	}
	if m.Moment.Latitude != 23.1793 {
		t.Errorf("Latitude = %v, want 23.1793", m.Moment.Latitude)
	}
	if got := m.Moment.Time.UTC().Format("2006-01-02T15:04:05Z"); got != "1987-03-14T05:30:00Z" {
		t.Errorf("Time = %s, want 1987-03-14T05:30:00Z", got)
	}
	if len(m.Divisions) != 3 || m.Divisions[1] != 9 {
		t.Errorf("Divisions = %v, want [1 9 10]", m.Divisions)
	}
}

func TestParsePositions(t *testing.T) {
	m, err := Parse(strings.NewReader(positionsDoc))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if m.Positions["ascendant"] != 102.5 {
		t.Errorf("ascendant = %v, want 102.5", m.Positions["ascendant"])
	}
	if m.Positions["sun"] != 250.125 {
		t.Errorf("sun = %v, want 250.125", m.Positions["sun"])
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code apperrors.Code
	}{
		{
			name: "bad toml",
			doc:  "name = ",
			code: apperrors.ErrCodeInvalidManifest,
		},
		{
			name: "unknown key",
			doc:  momentDoc + "\nmystery = 1\n",
			code: apperrors.ErrCodeInvalidManifest,
		},
		{
			name: "missing name",
			doc:  strings.Replace(momentDoc, `name = "Example Natal"`, "", 1),
			code: apperrors.ErrCodeInvalidManifest,
		},
		{
			name: "no source block",
			doc:  `name = "Empty"`,
			code: apperrors.ErrCodeInvalidManifest,
		},
		{
			name: "both source blocks",
			doc:  momentDoc + "\n[positions]\nascendant = 1.0\n",
			code: apperrors.ErrCodeInvalidManifest,
		},
		{
			name: "unsupported division",
			doc:  strings.Replace(momentDoc, "[1, 9, 10]", "[1, 5]", 1),
			code: apperrors.ErrCodeUnsupportedDivision,
		},
		{
			name: "latitude out of range",
			doc:  strings.Replace(momentDoc, "latitude = 23.1793", "latitude = 95.0", 1),
			code: apperrors.ErrCodeInvalidCoordinates,
		},
		{
			name: "positions missing body",
			doc:  strings.Replace(positionsDoc, "saturn = 0.0\n", "", 1),
			code: apperrors.ErrCodeInvalidManifest,
		},
		{
			name: "positions unknown body",
			doc:  positionsDoc + "\npluto = 12.0\n",
			code: apperrors.ErrCodeInvalidManifest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatal("Parse() should fail")
			}
			if !apperrors.Is(err, tt.code) {
				t.Errorf("Parse() error code = %v, want %v (err: %v)", apperrors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "natal.toml")
	if err := os.WriteFile(path, []byte(momentDoc), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if m.Name != "Example Natal" {
		t.Errorf("Name = %q, want %q", m.Name, "Example Natal")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("Load() error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeFileNotFound)
	}
}

func TestRequestedDivisions(t *testing.T) {
	m, err := Parse(strings.NewReader(momentDoc))
	if err != nil {
		t.Fatal(err)
	}
	if got := m.RequestedDivisions(); len(got) != 3 {
		t.Errorf("RequestedDivisions() = %v, want the 3 named harmonics", got)
	}

	m2, err := Parse(strings.NewReader(positionsDoc))
	if err != nil {
		t.Fatal(err)
	}
	if got := m2.RequestedDivisions(); len(got) != len(varga.Divisions()) {
		t.Errorf("RequestedDivisions() = %v, want all supported harmonics", got)
	}
}

func TestProviderFromPositions(t *testing.T) {
	m, err := Parse(strings.NewReader(positionsDoc))
	if err != nil {
		t.Fatal(err)
	}

	p, _, err := m.Provider(nil)
	if err != nil {
		t.Fatalf("Provider() error: %v", err)
	}
	longs, err := p.Positions(context.Background(), ephem.Request{})
	if err != nil {
		t.Fatalf("Positions() error: %v", err)
	}
	if longs.Ascendant != 102.5 {
		t.Errorf("Ascendant = %v, want 102.5", longs.Ascendant)
	}
	if longs.Bodies[graha.Ketu] != 32.75 {
		t.Errorf("Ketu = %v, want 32.75", longs.Bodies[graha.Ketu])
	}
	if len(longs.Bodies) != graha.Count {
		t.Errorf("Bodies count = %d, want %d", len(longs.Bodies), graha.Count)
	}
}

func TestProviderFromMoment(t *testing.T) {
	m, err := Parse(strings.NewReader(momentDoc))
	if err != nil {
		t.Fatal(err)
	}

	// No remote provider configured
	if _, _, err := m.Provider(nil); !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("Provider(nil) error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeInvalidInput)
	}

	remote := &ephem.Static{}
	p, req, err := m.Provider(remote)
	if err != nil {
		t.Fatalf("Provider() error: %v", err)
	}
	if p != ephem.Provider(remote) {
		t.Error("Provider() should return the remote provider for [moment] requests")
	}
	if req.Latitude != 23.1793 || req.Ayanamsha != "lahiri" {
		t.Errorf("request = %+v, want moment fields carried over", req)
	}
}
