package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/user/nozzle_vv_go/internal/analysis"
)

func TestPrintMetricsTable(t *testing.T) {
	locs := []analysis.LocationResult{
		{Name: "centerline", Metrics: &analysis.Metrics{RMSE: 0.1234, NRMSE: 5.6, R2: 0.9876}},
		{Name: "radial_z_plus008", Metrics: &analysis.Metrics{RMSE: 0.5, NRMSE: math.NaN(), R2: math.NaN()}},
		{Name: "radial_z_plus016"},
	}

	var buf bytes.Buffer
	PrintMetricsTable(&buf, "AXIAL VELOCITY (Uz) ERROR METRICS", locs)
	out := buf.String()

	assert.Contains(t, out, "AXIAL VELOCITY (Uz) ERROR METRICS")
	assert.Contains(t, out, "Location")
	assert.Contains(t, out, "0.1234")
	assert.Contains(t, out, "5.6")
	assert.Contains(t, out, "0.9876")

	// Undefined metrics and missing rows both render as N/A.
	lines := strings.Split(out, "\n")
	var z8, z16 string
	for _, ln := range lines {
		if strings.HasPrefix(ln, "radial_z_plus008") {
			z8 = ln
		}
		if strings.HasPrefix(ln, "radial_z_plus016") {
			z16 = ln
		}
	}
	assert.Contains(t, z8, "0.5000")
	assert.Contains(t, z8, "N/A")
	assert.Equal(t, 2, strings.Count(z8, "N/A"))
	assert.Equal(t, 3, strings.Count(z16, "N/A"))
}

func TestPrintJetWidthTable(t *testing.T) {
	rows := []analysis.JetWidthRow{
		{ZMm: 16.0, ExpMm: 2.0, SimMm: 3.333, ErrPct: 66.7},
	}

	var buf bytes.Buffer
	PrintJetWidthTable(&buf, rows)
	out := buf.String()

	assert.Contains(t, out, "JET WIDTH ANALYSIS SUMMARY")
	assert.Contains(t, out, "16.0")
	assert.Contains(t, out, "3.333")
	assert.Contains(t, out, "66.7")
}
