package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFile = `
plot-z-distribution-axial-velocity
-0.010	1.00
0.000	2.00
0.010	1.50

plot-profile-axial-velocity-at-z 0.008
-0.002 1.0 extra tokens ignored
0.000 2.0
garbage row
0.002 1.0

plot-empty-section
not numbers
also not numbers

plot-jet-width
0.000 0.004
0.016 0.002
`

func TestParseExperimentalSections(t *testing.T) {
	ds, err := ParseExperimental(strings.NewReader(sampleFile))
	require.NoError(t, err)

	// The all-garbage section is dropped, not stored empty.
	require.Equal(t, 3, ds.Len())
	assert.Nil(t, ds.ByLabel("plot-empty-section"))

	cl := ds.ByLabel("plot-z-distribution-axial-velocity")
	require.NotNil(t, cl)
	require.Len(t, cl.Points, 3)
	assert.Equal(t, Point{X: -0.010, Y: 1.00}, cl.Points[0])
	assert.Equal(t, Point{X: 0.010, Y: 1.50}, cl.Points[2])

	// Rows keep file order; the garbage row contributes nothing.
	prof := ds.ByLabel("plot-profile-axial-velocity-at-z 0.008")
	require.NotNil(t, prof)
	require.Len(t, prof.Points, 3)
	assert.Equal(t, 1.0, prof.Points[0].Y)
	assert.Equal(t, 2.0, prof.Points[1].Y)
	assert.Equal(t, 1.0, prof.Points[2].Y)
}

func TestParseExperimentalIdempotent(t *testing.T) {
	first, err := ParseExperimental(strings.NewReader(sampleFile))
	require.NoError(t, err)
	second, err := ParseExperimental(strings.NewReader(sampleFile))
	require.NoError(t, err)

	require.Equal(t, first.Len(), second.Len())
	for i, s := range first.Sections {
		assert.Equal(t, s.Label, second.Sections[i].Label)
		assert.Equal(t, s.Points, second.Sections[i].Points)
	}
}

func TestParseExperimentalNoSections(t *testing.T) {
	ds, err := ParseExperimental(strings.NewReader("1.0 2.0\n3.0 4.0\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
}

func TestParseExperimentalEmptyStream(t *testing.T) {
	ds, err := ParseExperimental(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
}

func TestParseExperimentalDataBeforeHeaderIgnored(t *testing.T) {
	ds, err := ParseExperimental(strings.NewReader("1.0 2.0\nplot-jet-width\n0.1 0.2\n"))
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	assert.Len(t, ds.Sections[0].Points, 1)
}

func TestParseLabel(t *testing.T) {
	tests := []struct {
		raw  string
		kind Kind
		z    float64
		hasZ bool
	}{
		{"plot-profile-axial-velocity-at-z 0.008", KindAxialVelocityProfile, 0.008, true},
		{"plot-profile-axial-velocity-at-z -0.048", KindAxialVelocityProfile, -0.048, true},
		{"plot-profile-radial-velocity-at-z 0.032", KindRadialVelocityProfile, 0.032, true},
		{"plot-z-distribution-axial-velocity", KindCenterlineAxialVelocity, 0, false},
		{"plot-z-distribution-pressure", KindCenterlinePressure, 0, false},
		{"plot-wall-distribution-pressure", KindWallPressure, 0, false},
		{"plot-jet-width", KindJetWidth, 0, false},
		{"plot-something-else", KindUnknown, 0, false},
	}
	for _, tc := range tests {
		lbl := ParseLabel(tc.raw)
		assert.Equal(t, tc.kind, lbl.Kind, tc.raw)
		assert.Equal(t, tc.hasZ, lbl.HasZ, tc.raw)
		if tc.hasZ {
			assert.InDelta(t, tc.z, lbl.Z, 1e-12, tc.raw)
		}
	}
}

func TestProfileLookupTolerance(t *testing.T) {
	content := `plot-profile-axial-velocity-at-z 0.008
0.0 1.0
plot-profile-axial-velocity-at-z 0.016
0.0 2.0
`
	ds, err := ParseExperimental(strings.NewReader(content))
	require.NoError(t, err)

	// Within 1 mm matches, beyond does not.
	assert.NotNil(t, ds.Profile(KindAxialVelocityProfile, 0.008))
	assert.NotNil(t, ds.Profile(KindAxialVelocityProfile, 0.0085))
	assert.Nil(t, ds.Profile(KindAxialVelocityProfile, 0.010))
	assert.Nil(t, ds.Profile(KindRadialVelocityProfile, 0.008))

	got := ds.Profile(KindAxialVelocityProfile, 0.016)
	require.NotNil(t, got)
	assert.Equal(t, 2.0, got.Points[0].Y)
}

func TestFirstByKind(t *testing.T) {
	ds, err := ParseExperimental(strings.NewReader(sampleFile))
	require.NoError(t, err)

	jet := ds.First(KindJetWidth)
	require.NotNil(t, jet)
	assert.Equal(t, "plot-jet-width", jet.Label.Raw)
	assert.Nil(t, ds.First(KindWallPressure))
}

func TestSectionColumnAccessors(t *testing.T) {
	s := &Section{Points: []Point{{1, 10}, {2, 20}}}
	assert.Equal(t, []float64{1, 2}, s.Xs())
	assert.Equal(t, []float64{10, 20}, s.Ys())
}
