package analysis

// ToStatic converts kinematic pressure (p/rho, as solved by incompressible
// solvers) to static pressure in Pa.
func ToStatic(kinematic []float64, rho float64) []float64 {
	p := make([]float64, len(kinematic))
	for i, v := range kinematic {
		p[i] = v * rho
	}
	return p
}

// InterpAt evaluates the piecewise-linear curve (xs, ys) at x with flat
// extrapolation outside the sampled range.
func InterpAt(x float64, xs, ys []float64) (float64, bool) {
	at, ok := curveAt(xs, ys)
	if !ok {
		return 0, false
	}
	return at(x), true
}

// AlignOffset computes the additive shift that brings the simulation curve
// to the experimental curve's value at the reference coordinate refX.
// Experimental pressure is reported relative, so curves are matched at a
// reference point rather than compared absolutely.
func AlignOffset(expX, expY, simX, simY []float64, refX float64) (float64, bool) {
	expRef, ok := InterpAt(refX, expX, expY)
	if !ok {
		return 0, false
	}
	simRef, ok := InterpAt(refX, simX, simY)
	if !ok {
		return 0, false
	}
	return expRef - simRef, true
}

// Shifted returns ys with the additive offset applied.
func Shifted(ys []float64, offset float64) []float64 {
	out := make([]float64, len(ys))
	for i, v := range ys {
		out[i] = v + offset
	}
	return out
}
