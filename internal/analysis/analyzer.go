// Package analysis aligns simulation sample curves with experimental PIV
// sections and scores them. Each driver covers one physical quantity and
// never fails the whole run for a missing location: it records a warning
// and carries on, leaving that location's metrics undefined.
package analysis

import (
	"fmt"
	"math"

	"github.com/baditaflorin/l"

	"github.com/user/nozzle_vv_go/internal/config"
	"github.com/user/nozzle_vv_go/internal/parser"
	"github.com/user/nozzle_vv_go/internal/sample"
)

const mPerMm = 1000.0

// Analyzer runs the per-quantity comparisons for one case. The
// experimental dataset is parsed once at construction; each driver reads
// the simulation samples it needs.
type Analyzer struct {
	cfg    *config.Case
	exp    *parser.Dataset
	logger l.Logger
}

// New parses the case's experimental file and returns an analyzer. A
// missing or unreadable experimental file is an error; the analysis cannot
// proceed without the reference data.
func New(cfg *config.Case, logger l.Logger) (*Analyzer, error) {
	ds, err := parser.ParseExperimentalFile(cfg.ExpFile)
	if err != nil {
		return nil, err
	}
	a := &Analyzer{cfg: cfg, exp: ds, logger: logger}
	a.logf("loaded experimental data", "file", cfg.ExpFile, "sections", ds.Len())
	return a, nil
}

// Dataset exposes the parsed experimental data.
func (a *Analyzer) Dataset() *parser.Dataset { return a.exp }

func (a *Analyzer) logf(msg string, args ...interface{}) {
	if a.logger != nil {
		a.logger.Info(msg, args...)
	}
}

func (a *Analyzer) readSet(setName string) (*sample.Sample, error) {
	return sample.Read(a.cfg.SimDataDir, setName, sample.Latest())
}

// maskZeros drops points whose dependent value is exactly zero, the PIV
// "no measurement" sentinel.
func maskZeros(xs, ys []float64) ([]float64, []float64) {
	var xo, yo []float64
	for i, y := range ys {
		if y != 0 {
			xo = append(xo, xs[i])
			yo = append(yo, y)
		}
	}
	return xo, yo
}

func scale(xs []float64, factor float64) []float64 {
	out := make([]float64, len(xs))
	for i, v := range xs {
		out[i] = v * factor
	}
	return out
}

// shiftScale maps simulation axial positions into the experimental frame
// in mm: subtract the expansion-plane offset, then convert m to mm.
func (a *Analyzer) shiftScale(pos []float64) []float64 {
	out := make([]float64, len(pos))
	for i, v := range pos {
		out[i] = (v - a.cfg.ZExpansion) * mPerMm
	}
	return out
}

// AxialVelocity compares the centerline axial-velocity distribution and
// the per-station radial profiles of Uz.
func (a *Analyzer) AxialVelocity() *AnalysisResult {
	res := &AnalysisResult{
		Name:   "vv_axial_velocity",
		Title:  "Axial Velocity (Uz) Profiles",
		XLabel: "Radial position (mm)",
		YLabel: "Axial velocity (m/s)",
	}

	// Centerline distribution: axial positions need the expansion-frame
	// shift; radial stations below do not.
	cl := LocationResult{Name: "centerline", Title: "Centerline Axial Velocity"}
	if exp := a.exp.First(parser.KindCenterlineAxialVelocity); exp != nil {
		cl.ExpX = scale(exp.Xs(), mPerMm)
		cl.ExpY = exp.Ys()
	} else {
		res.warnf("no centerline axial-velocity section in experimental data")
	}
	if sim, err := a.readSet("centerline"); err == nil {
		cl.SimX = a.shiftScale(sim.Position)
		cl.SimY = sim.Uz
	} else {
		res.warnf("centerline sample: %v", err)
	}
	cl.Metrics = CalculateErrorMetrics(cl.ExpX, cl.ExpY, cl.SimX, cl.SimY)
	res.Locations = append(res.Locations, cl)

	for _, st := range a.cfg.Stations {
		loc := LocationResult{Name: st.SetName, Title: st.Label}
		if exp := a.exp.Profile(parser.KindAxialVelocityProfile, st.Z); exp != nil {
			// Metrics are computed on the full section (the engine
			// applies its own zero mask); the stored curve is
			// pre-masked for display.
			expX := scale(exp.Xs(), mPerMm)
			expY := exp.Ys()
			if sim, err := a.readSet(st.SetName); err == nil {
				loc.SimX = scale(sim.Position, mPerMm)
				loc.SimY = sim.Uz
			} else {
				res.warnf("%s: %v", st.SetName, err)
			}
			loc.Metrics = CalculateErrorMetrics(expX, expY, loc.SimX, loc.SimY)
			loc.ExpX, loc.ExpY = maskZeros(expX, expY)
		} else {
			res.warnf("no axial-velocity section at z = %g", st.Z)
			if sim, err := a.readSet(st.SetName); err == nil {
				loc.SimX = scale(sim.Position, mPerMm)
				loc.SimY = sim.Uz
			}
		}
		res.Locations = append(res.Locations, loc)
	}
	return res
}

// RadialVelocity compares the per-station radial profiles of Uy.
func (a *Analyzer) RadialVelocity() *AnalysisResult {
	res := &AnalysisResult{
		Name:   "vv_radial_velocity",
		Title:  "Radial Velocity (Uy) Profiles",
		XLabel: "Radial position (mm)",
		YLabel: "Radial velocity (m/s)",
	}

	for _, st := range a.cfg.Stations {
		exp := a.exp.Profile(parser.KindRadialVelocityProfile, st.Z)
		if exp == nil {
			// Not every station has a radial-velocity measurement;
			// skip silently like the reference analysis.
			continue
		}
		loc := LocationResult{Name: st.SetName, Title: st.Label}
		expX := scale(exp.Xs(), mPerMm)
		expY := exp.Ys()
		if sim, err := a.readSet(st.SetName); err == nil {
			loc.SimX = scale(sim.Position, mPerMm)
			loc.SimY = sim.Uy
		} else {
			res.warnf("%s: %v", st.SetName, err)
		}
		loc.Metrics = CalculateErrorMetrics(expX, expY, loc.SimX, loc.SimY)
		loc.ExpX, loc.ExpY = maskZeros(expX, expY)
		if len(loc.ExpX) == 0 {
			// All-zero section: keep the raw points so the plot can
			// still show where measurements were attempted.
			loc.ExpX, loc.ExpY = expX, expY
		}
		res.Locations = append(res.Locations, loc)
	}
	return res
}

// Pressure compares the centerline and wall pressure distributions.
// Simulation pressure is kinematic and is converted to Pa; experimental
// pressure is relative, so the simulation curve is shifted to match at
// z = 0. The centerline shift is reused for the wall curve when available.
func (a *Analyzer) Pressure() *AnalysisResult {
	res := &AnalysisResult{
		Name:   "vv_pressure",
		Title:  "Pressure Distribution",
		XLabel: "Axial position from expansion (mm)",
		YLabel: "Pressure (Pa)",
	}

	var offset float64
	haveOffset := false

	cl := LocationResult{Name: "centerline_p", Title: "Centerline Pressure"}
	if exp := a.exp.First(parser.KindCenterlinePressure); exp != nil {
		cl.ExpX = scale(exp.Xs(), mPerMm)
		cl.ExpY = exp.Ys()
	} else {
		res.warnf("no centerline pressure section in experimental data")
	}
	if sim, err := a.readSet("centerline"); err == nil {
		cl.SimX = a.shiftScale(sim.Position)
		simP := ToStatic(sim.Pressure, a.cfg.Rho)
		if cl.HasExp() {
			if off, ok := AlignOffset(cl.ExpX, cl.ExpY, cl.SimX, simP, 0); ok {
				offset = off
				haveOffset = true
				simP = Shifted(simP, off)
			}
		}
		cl.SimY = simP
	} else {
		res.warnf("centerline sample: %v", err)
	}
	cl.Metrics = CalculateErrorMetrics(cl.ExpX, cl.ExpY, cl.SimX, cl.SimY)
	res.Locations = append(res.Locations, cl)

	wall := LocationResult{Name: "wall_p", Title: "Wall Pressure"}
	if exp := a.exp.First(parser.KindWallPressure); exp != nil {
		wall.ExpX = scale(exp.Xs(), mPerMm)
		wall.ExpY = exp.Ys()
	} else {
		res.warnf("no wall pressure section in experimental data")
	}
	if sim, err := a.readSet("wall_pressure"); err == nil {
		wall.SimX = a.shiftScale(sim.Position)
		simP := ToStatic(sim.Pressure, a.cfg.Rho)
		if haveOffset {
			simP = Shifted(simP, offset)
		} else if wall.HasExp() {
			if off, ok := AlignOffset(wall.ExpX, wall.ExpY, wall.SimX, simP, 0); ok {
				simP = Shifted(simP, off)
			}
		}
		wall.SimY = simP
	} else {
		res.warnf("wall_pressure sample: %v", err)
	}
	wall.Metrics = CalculateErrorMetrics(wall.ExpX, wall.ExpY, wall.SimX, wall.SimY)
	res.Locations = append(res.Locations, wall)

	return res
}

// downstreamCutoff keeps the z = 0 station when filtering to the
// downstream region despite floating-point noise in the coordinates.
const downstreamCutoff = -0.001

// JetWidthAnalysis derives the simulation jet width at every station and
// compares the resulting width-versus-z curve with the experimental
// jet-width section, both downstream-only and over the full profile.
func (a *Analyzer) JetWidthAnalysis() (*AnalysisResult, error) {
	res := &AnalysisResult{
		Name:   "vv_jet_width",
		Title:  "Jet Width Analysis",
		XLabel: "Axial position from expansion (mm)",
		YLabel: "Jet Width (mm)",
	}

	exp := a.exp.First(parser.KindJetWidth)
	if exp == nil {
		return nil, fmt.Errorf("no jet width data found in experimental file")
	}
	expZ := exp.Xs()
	expW := exp.Ys()

	var simZ, simW []float64
	for _, st := range a.cfg.Stations {
		sim, err := a.readSet(st.SetName)
		if err != nil {
			res.warnf("%s: %v", st.SetName, err)
			continue
		}
		w, ok := JetWidth(sim.Position, sim.Uz)
		if !ok {
			// Uniform or reversed flow at this station; no width to
			// report.
			continue
		}
		simZ = append(simZ, st.Z)
		simW = append(simW, w)
	}

	var expZd, expWd, simZd, simWd []float64
	for i := range expZ {
		if expZ[i] >= downstreamCutoff {
			expZd = append(expZd, expZ[i])
			expWd = append(expWd, expW[i])
		}
	}
	for i := range simZ {
		if simZ[i] >= downstreamCutoff {
			simZd = append(simZd, simZ[i])
			simWd = append(simWd, simW[i])
		}
	}

	down := LocationResult{
		Name:  "jet_width_downstream",
		Title: "Jet Width (Downstream)",
		ExpX:  scale(expZd, mPerMm),
		ExpY:  scale(expWd, mPerMm),
		SimX:  scale(simZd, mPerMm),
		SimY:  scale(simWd, mPerMm),
	}
	down.Metrics = CalculateErrorMetrics(down.ExpX, down.ExpY, down.SimX, down.SimY)
	res.Locations = append(res.Locations, down)

	full := LocationResult{
		Name:  "jet_width_full",
		Title: "Jet Width (Full Profile)",
		ExpX:  scale(expZ, mPerMm),
		ExpY:  scale(expW, mPerMm),
		SimX:  scale(simZ, mPerMm),
		SimY:  scale(simW, mPerMm),
	}
	full.Metrics = CalculateErrorMetrics(full.ExpX, full.ExpY, full.SimX, full.SimY)
	res.Locations = append(res.Locations, full)

	for i := range simZ {
		row := JetWidthRow{ZMm: simZ[i] * mPerMm, SimMm: simW[i] * mPerMm}
		if we, ok := InterpAt(simZ[i], expZ, expW); ok {
			row.ExpMm = we * mPerMm
			if we > 0 {
				row.ErrPct = math.Abs(simW[i]-we) / we * 100
			}
		}
		res.JetRows = append(res.JetRows, row)
	}

	return res, nil
}
