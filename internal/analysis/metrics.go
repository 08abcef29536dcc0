package analysis

import (
	"math"

	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/stat"
)

// Metrics is the fixed battery of scalar error statistics between one
// experimental curve and one simulation curve. R2 and NRMSE are NaN when
// their denominators are degenerate; a fully-undefined comparison is a nil
// *Metrics, never a partial value.
type Metrics struct {
	RMSE   float64
	MAE    float64
	MaxErr float64
	R2     float64
	NRMSE  float64
}

// curveAt builds an evaluator for the piecewise-linear curve (xs, ys) with
// flat extrapolation outside the sampled range. ok is false when the curve
// cannot be fitted (mismatched lengths, non-increasing abscissa).
func curveAt(xs, ys []float64) (func(float64) float64, bool) {
	if len(xs) == 0 || len(xs) != len(ys) {
		return nil, false
	}
	if len(xs) == 1 {
		y := ys[0]
		return func(float64) float64 { return y }, true
	}
	// Fit panics on a non-increasing abscissa; guard so a degenerate
	// curve yields an undefined comparison instead.
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return nil, false
		}
	}
	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return nil, false
	}
	// PiecewiseLinear clamps to the boundary values outside [xs[0],
	// xs[n-1]], matching the standard boundary convention.
	return pl.Predict, true
}

// CalculateErrorMetrics resamples the simulation curve onto the
// experimental abscissa and scores the difference. Experimental rows whose
// dependent value is exactly zero are treated as "no measurement recorded"
// and dropped before comparison. Returns nil when the inputs are
// insufficient: empty simulation abscissa, absent experimental abscissa,
// every experimental row filtered, or interpolation failure.
func CalculateErrorMetrics(expX, expY, simX, simY []float64) *Metrics {
	if len(simX) == 0 || expX == nil || len(expX) != len(expY) {
		return nil
	}

	var xFilt, yFilt []float64
	for i, y := range expY {
		if y != 0 {
			xFilt = append(xFilt, expX[i])
			yFilt = append(yFilt, y)
		}
	}
	if len(xFilt) == 0 {
		return nil
	}

	simAt, ok := curveAt(simX, simY)
	if !ok {
		return nil
	}

	errs := make([]float64, len(xFilt))
	for i, x := range xFilt {
		errs[i] = simAt(x) - yFilt[i]
	}

	var sumSq, sumAbs, maxAbs float64
	for _, e := range errs {
		sumSq += e * e
		sumAbs += math.Abs(e)
		if a := math.Abs(e); a > maxAbs {
			maxAbs = a
		}
	}
	n := float64(len(errs))
	m := &Metrics{
		RMSE:   math.Sqrt(sumSq / n),
		MAE:    sumAbs / n,
		MaxErr: maxAbs,
	}

	expMean := stat.Mean(yFilt, nil)
	var ssTot float64
	for _, y := range yFilt {
		ssTot += (y - expMean) * (y - expMean)
	}
	if ssTot > 0 {
		m.R2 = 1 - sumSq/ssTot
	} else {
		m.R2 = math.NaN()
	}

	var peak float64
	for _, y := range yFilt {
		if a := math.Abs(y); a > peak {
			peak = a
		}
	}
	if peak > 0 {
		m.NRMSE = m.RMSE / peak * 100
	} else {
		m.NRMSE = math.NaN()
	}

	return m
}
