package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/user/nozzle_vv_go/internal/analysis"
)

const tableWidth = 70

// PrintMetricsTable writes the fixed-width error-metric summary for one
// analysis. Undefined metrics print as N/A.
func PrintMetricsTable(w io.Writer, title string, locs []analysis.LocationResult) {
	bar := strings.Repeat("=", tableWidth)
	fmt.Fprintf(w, "\n%s\n", bar)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, bar)
	fmt.Fprintf(w, "%-25s %-12s %-12s %-10s\n", "Location", "RMSE", "NRMSE (%)", "R2")
	fmt.Fprintln(w, strings.Repeat("-", tableWidth))

	for _, loc := range locs {
		if loc.Metrics == nil {
			fmt.Fprintf(w, "%-25s %-12s %-12s %-10s\n", loc.Name, "N/A", "N/A", "N/A")
			continue
		}
		fmt.Fprintf(w, "%-25s %-12s %-12s %-10s\n",
			loc.Name,
			tableValue(loc.Metrics.RMSE, 4),
			tableValue(loc.Metrics.NRMSE, 1),
			tableValue(loc.Metrics.R2, 4))
	}
	fmt.Fprintln(w, bar)
}

// PrintJetWidthTable writes the per-station jet-width comparison.
func PrintJetWidthTable(w io.Writer, rows []analysis.JetWidthRow) {
	bar := strings.Repeat("=", 50)
	fmt.Fprintf(w, "\n%s\n", bar)
	fmt.Fprintln(w, "JET WIDTH ANALYSIS SUMMARY")
	fmt.Fprintln(w, bar)
	fmt.Fprintf(w, "%-10s %-12s %-12s %-12s\n", "z (mm)", "Exp (mm)", "Sim (mm)", "Error (%)")
	fmt.Fprintln(w, strings.Repeat("-", 50))
	for _, r := range rows {
		fmt.Fprintf(w, "%-10.1f %-12.3f %-12.3f %-12.1f\n", r.ZMm, r.ExpMm, r.SimMm, r.ErrPct)
	}
	fmt.Fprintln(w, bar)
}

func tableValue(v float64, prec int) string {
	if math.IsNaN(v) {
		return "N/A"
	}
	return fmt.Sprintf("%.*f", prec, v)
}
