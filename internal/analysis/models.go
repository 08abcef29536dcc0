package analysis

import "fmt"

// LocationResult holds one aligned comparison: the experimental and
// simulation curves in plot units (mm on the abscissa) and the computed
// metrics. Metrics is nil when the comparison was undefined, and a curve
// may be empty when its input was missing.
type LocationResult struct {
	// Name keys the summary table row, e.g. "radial_z_plus008".
	Name string
	// Title labels the plot, e.g. "z = +8mm".
	Title string

	ExpX []float64
	ExpY []float64
	SimX []float64
	SimY []float64

	Metrics *Metrics
}

// HasExp reports whether an experimental curve was found.
func (lr *LocationResult) HasExp() bool { return len(lr.ExpX) > 0 }

// HasSim reports whether simulation data was found.
func (lr *LocationResult) HasSim() bool { return len(lr.SimX) > 0 }

// JetWidthRow is one per-station line of the jet-width summary.
type JetWidthRow struct {
	ZMm    float64
	ExpMm  float64
	SimMm  float64
	ErrPct float64
}

// AnalysisResult is the outcome of one analysis (one physical quantity):
// ordered location comparisons plus any non-fatal warnings collected along
// the way.
type AnalysisResult struct {
	// Name is the artifact slug, e.g. "vv_axial_velocity".
	Name      string
	Title     string
	XLabel    string
	YLabel    string
	Locations []LocationResult
	Warnings  []string

	// JetRows is populated by the jet-width analysis only.
	JetRows []JetWidthRow
}

func (ar *AnalysisResult) warnf(format string, args ...interface{}) {
	ar.Warnings = append(ar.Warnings, fmt.Sprintf(format, args...))
}
