package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsIdenticalCurves(t *testing.T) {
	x := []float64{0, 1, 2}
	y := []float64{1, 2, 3}

	m := CalculateErrorMetrics(x, y, x, y)
	require.NotNil(t, m)
	assert.Equal(t, 0.0, m.RMSE)
	assert.Equal(t, 0.0, m.MAE)
	assert.Equal(t, 0.0, m.MaxErr)
	assert.Equal(t, 1.0, m.R2)
	assert.Equal(t, 0.0, m.NRMSE)
}

func TestMetricsAllZeroExperimental(t *testing.T) {
	m := CalculateErrorMetrics([]float64{0, 1, 2}, []float64{0, 0, 0}, []float64{0, 1, 2}, []float64{1, 2, 3})
	assert.Nil(t, m)
}

func TestMetricsConstantExperimental(t *testing.T) {
	// Constant nonzero reference matched exactly: errors vanish but the
	// total variance is zero, so R2 is undefined while RMSE is 0.
	x := []float64{0, 1, 2}
	y := []float64{5, 5, 5}

	m := CalculateErrorMetrics(x, y, x, y)
	require.NotNil(t, m)
	assert.Equal(t, 0.0, m.RMSE)
	assert.True(t, math.IsNaN(m.R2))
	assert.Equal(t, 0.0, m.NRMSE)
}

func TestMetricsEmptySimulation(t *testing.T) {
	assert.Nil(t, CalculateErrorMetrics([]float64{0, 1}, []float64{1, 2}, nil, nil))
	assert.Nil(t, CalculateErrorMetrics([]float64{0, 1}, []float64{1, 2}, []float64{}, []float64{}))
}

func TestMetricsAbsentExperimental(t *testing.T) {
	assert.Nil(t, CalculateErrorMetrics(nil, nil, []float64{0, 1}, []float64{1, 2}))
}

func TestMetricsZeroRowsFiltered(t *testing.T) {
	// The zero row at x=1 is "no measurement" and must not count as an
	// error sample; the remaining rows match the simulation exactly.
	expX := []float64{0, 1, 2}
	expY := []float64{1, 0, 3}
	simX := []float64{0, 1, 2}
	simY := []float64{1, 99, 3}

	m := CalculateErrorMetrics(expX, expY, simX, simY)
	require.NotNil(t, m)
	assert.Equal(t, 0.0, m.RMSE)
	assert.Equal(t, 1.0, m.R2)
}

func TestMetricsInterpolationAndClamping(t *testing.T) {
	// Experimental points beyond the simulated range use the boundary
	// simulation values (flat extrapolation).
	expX := []float64{-1, 0.5, 3}
	expY := []float64{1, 1.5, 2}
	simX := []float64{0, 1, 2}
	simY := []float64{1, 2, 2}

	m := CalculateErrorMetrics(expX, expY, simX, simY)
	require.NotNil(t, m)
	// errors: 1-1=0 (clamped left), 1.5-1.5=0 (interior), 2-2=0 (clamped right)
	assert.InDelta(t, 0.0, m.RMSE, 1e-12)
	assert.InDelta(t, 0.0, m.MaxErr, 1e-12)
}

func TestMetricsKnownErrors(t *testing.T) {
	expX := []float64{0, 1, 2, 3}
	expY := []float64{1, 2, 3, 4}
	simX := []float64{0, 1, 2, 3}
	simY := []float64{2, 3, 4, 5} // uniformly +1

	m := CalculateErrorMetrics(expX, expY, simX, simY)
	require.NotNil(t, m)
	assert.InDelta(t, 1.0, m.RMSE, 1e-12)
	assert.InDelta(t, 1.0, m.MAE, 1e-12)
	assert.InDelta(t, 1.0, m.MaxErr, 1e-12)
	// ssRes = 4, ssTot = 5 -> R2 = 0.2
	assert.InDelta(t, 0.2, m.R2, 1e-12)
	// NRMSE = 1 / 4 * 100
	assert.InDelta(t, 25.0, m.NRMSE, 1e-12)
}

func TestMetricsNonIncreasingSimAbscissa(t *testing.T) {
	// A simulation abscissa the interpolator cannot fit yields an
	// undefined comparison, not a panic.
	m := CalculateErrorMetrics([]float64{0, 1}, []float64{1, 2}, []float64{2, 1, 0}, []float64{1, 2, 3})
	assert.Nil(t, m)

	// Duplicate sample positions are just as unfittable.
	m = CalculateErrorMetrics([]float64{0, 1}, []float64{1, 2}, []float64{0, 1, 1, 2}, []float64{1, 2, 3, 4})
	assert.Nil(t, m)
}

func TestMetricsSinglePointSimulation(t *testing.T) {
	// One simulated point acts as a constant curve.
	m := CalculateErrorMetrics([]float64{0, 1}, []float64{2, 2}, []float64{5}, []float64{2})
	require.NotNil(t, m)
	assert.Equal(t, 0.0, m.RMSE)
}

func TestMetricsMismatchedExperimentalLengths(t *testing.T) {
	assert.Nil(t, CalculateErrorMetrics([]float64{0, 1}, []float64{1}, []float64{0, 1}, []float64{1, 2}))
}
