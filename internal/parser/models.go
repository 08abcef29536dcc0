package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// SectionPrefix marks the start of a named data series in the
// experimental file.
const SectionPrefix = "plot-"

// Kind classifies an experimental section by the physical quantity its
// label encodes.
type Kind int

const (
	KindUnknown Kind = iota
	KindCenterlineAxialVelocity
	KindAxialVelocityProfile
	KindRadialVelocityProfile
	KindCenterlinePressure
	KindWallPressure
	KindJetWidth
)

func (k Kind) String() string {
	switch k {
	case KindCenterlineAxialVelocity:
		return "centerline-axial-velocity"
	case KindAxialVelocityProfile:
		return "axial-velocity-profile"
	case KindRadialVelocityProfile:
		return "radial-velocity-profile"
	case KindCenterlinePressure:
		return "centerline-pressure"
	case KindWallPressure:
		return "wall-pressure"
	case KindJetWidth:
		return "jet-width"
	}
	return "unknown"
}

// Label is a section label parsed once at load time: the raw text, the
// quantity kind and, for radial profiles, the axial coordinate embedded as
// "at-z <value>". Lookups match on these fields instead of re-scanning the
// raw string per query.
type Label struct {
	Raw  string
	Kind Kind
	// Z is the axial coordinate (m) for profile sections. Valid only
	// when HasZ is true.
	Z    float64
	HasZ bool
}

var atZPattern = regexp.MustCompile(`at-z\s+(-?[\d.]+)`)

// ParseLabel classifies a raw section label.
func ParseLabel(raw string) Label {
	lbl := Label{Raw: raw, Kind: KindUnknown}
	switch {
	case strings.Contains(raw, "profile-axial-velocity-at-z"):
		lbl.Kind = KindAxialVelocityProfile
	case strings.Contains(raw, "profile-radial-velocity-at-z"):
		lbl.Kind = KindRadialVelocityProfile
	case strings.Contains(raw, "z-distribution-axial-velocity"):
		lbl.Kind = KindCenterlineAxialVelocity
	case strings.Contains(raw, "wall-distribution-pressure"):
		lbl.Kind = KindWallPressure
	case strings.Contains(raw, "z-distribution-pressure"):
		lbl.Kind = KindCenterlinePressure
	case strings.Contains(raw, "jet-width"):
		lbl.Kind = KindJetWidth
	}
	if m := atZPattern.FindStringSubmatch(raw); m != nil {
		if z, err := strconv.ParseFloat(m[1], 64); err == nil {
			lbl.Z = z
			lbl.HasZ = true
		}
	}
	return lbl
}

// Point is one measurement row: independent variable first, dependent
// second.
type Point struct {
	X float64
	Y float64
}

// Section is one labeled measurement series in file order.
type Section struct {
	Label  Label
	Points []Point
}

// Xs returns the independent values in row order.
func (s *Section) Xs() []float64 {
	xs := make([]float64, len(s.Points))
	for i, p := range s.Points {
		xs[i] = p.X
	}
	return xs
}

// Ys returns the dependent values in row order.
func (s *Section) Ys() []float64 {
	ys := make([]float64, len(s.Points))
	for i, p := range s.Points {
		ys[i] = p.Y
	}
	return ys
}

// Dataset holds all sections of one experimental file. Labels are unique
// within a file, section order follows file order, and a section with zero
// valid rows is never stored.
type Dataset struct {
	Sections []*Section
	byLabel  map[string]*Section
}

// NewDataset returns an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{byLabel: make(map[string]*Section)}
}

// Len reports the number of stored sections.
func (d *Dataset) Len() int { return len(d.Sections) }

// ByLabel returns the section with the exact raw label, or nil.
func (d *Dataset) ByLabel(raw string) *Section {
	return d.byLabel[raw]
}

// First returns the first section of the given kind in file order, or nil.
func (d *Dataset) First(kind Kind) *Section {
	for _, s := range d.Sections {
		if s.Label.Kind == kind {
			return s
		}
	}
	return nil
}

// zTolerance is the coordinate match window for profile lookups (m).
const zTolerance = 0.001

// Profile returns the profile section of the given kind whose embedded
// axial coordinate is within zTolerance of z, or nil.
func (d *Dataset) Profile(kind Kind, z float64) *Section {
	for _, s := range d.Sections {
		if s.Label.Kind != kind || !s.Label.HasZ {
			continue
		}
		if math.Abs(s.Label.Z-z) < zTolerance {
			return s
		}
	}
	return nil
}

func (d *Dataset) add(s *Section) {
	if s == nil || len(s.Points) == 0 {
		return
	}
	d.Sections = append(d.Sections, s)
	d.byLabel[s.Label.Raw] = s
}
