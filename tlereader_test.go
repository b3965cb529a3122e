package breakup

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

const issTLE = `ISS (ZARYA)
1 25544U 98067A   08264.51782528 -.00002182  00000-0 -11606-4 0  2927
2 25544  51.6416 247.4627 0006703 130.5360 325.0288 15.72125391563537
`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTLEReaderISS(t *testing.T) {
	path := writeTempFile(t, "iss.tle", issTLE)
	elements, err := NewTLEReader(path).ReadElements()
	if err != nil {
		t.Fatal(err)
	}
	if len(elements) != 1 {
		t.Fatalf("read %d element sets", len(elements))
	}
	el, found := elements[25544]
	if !found {
		t.Fatalf("catalog number 25544 missing: %+v", elements)
	}
	if !relEqual(el.SemiMajorAxisM(), MeanMotionToSemiMajorAxis(15.72125391), 1e-12) {
		t.Fatalf("semi-major axis: %f", el.SemiMajorAxisM())
	}
	if !scalar.EqualWithinAbs(el.Eccentricity(), 0.0006703, 1e-12) {
		t.Fatalf("eccentricity: %f", el.Eccentricity())
	}
	if !scalar.EqualWithinAbs(el.Inclination(), Deg2rad(51.6416), 1e-12) {
		t.Fatalf("inclination: %f", el.Inclination())
	}
	if ep := el.Epoch(); ep.Year != 2008 || !scalar.EqualWithinAbs(ep.Fraction, 264.51782528, 1e-12) {
		t.Fatalf("epoch: %+v", ep)
	}
}

func TestTLEReaderMissingLine1(t *testing.T) {
	path := writeTempFile(t, "bad.tle",
		"2 25544  51.6416 247.4627 0006703 130.5360 325.0288 15.72125391563537\n")
	if _, err := NewTLEReader(path).ReadElements(); !errors.Is(err, ErrParse) {
		t.Fatalf("a dangling line 2 must be rejected, got %v", err)
	}
}

func TestTLEReaderMissingFile(t *testing.T) {
	if _, err := NewTLEReader("/does/not/exist.tle").ReadElements(); !errors.Is(err, ErrInputIO) {
		t.Fatalf("a missing file must surface as an IO error, got %v", err)
	}
}

func TestParseAlpha5ID(t *testing.T) {
	cases := map[string]int64{
		"25544": 25544,
		" 5544": 5544,
		"05544": 5544,
		"A5544": 105544,
		"T5544": 275544,
		"Z9999": 339999,
	}
	for token, want := range cases {
		got, err := ParseAlpha5ID(token)
		if err != nil {
			t.Fatalf("%q: %s", token, err)
		}
		if got != want {
			t.Fatalf("%q decoded to %d, want %d", token, got, want)
		}
	}
	for _, token := range []string{"I5544", "O5544", "a5544", "1234", "123456"} {
		if _, err := ParseAlpha5ID(token); !errors.Is(err, ErrParse) {
			t.Fatalf("%q must be rejected, got %v", token, err)
		}
	}
}

func TestTLEEpochYearPivot(t *testing.T) {
	// Epoch years below 57 land in the 2000s, the rest in the 1900s.
	old := `1 00005U 58002B   58001.00000000  .00000023  00000-0  28098-4 0  4753
2 00005  34.2682 348.7242 1859667 331.7664  19.3264 10.82419157413667
`
	path := writeTempFile(t, "vanguard.tle", old)
	elements, err := NewTLEReader(path).ReadElements()
	if err != nil {
		t.Fatal(err)
	}
	if ep := elements[5].Epoch(); ep.Year != 1958 {
		t.Fatalf("epoch year = %d", ep.Year)
	}
}
