package report

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/user/nozzle_vv_go/internal/analysis"
)

var (
	expColor = color.RGBA{A: 255}         // black markers for measurements
	simColor = color.RGBA{B: 255, A: 255} // blue line for simulation
	refColor = color.RGBA{R: 255, A: 255} // red dashed reference guides
)

const (
	panelWidth  = vg.Length(320)
	panelHeight = vg.Length(240)
)

// makeComparisonPlot builds one experiment-vs-simulation panel. The
// expansion-plane guide at x = 0 is drawn for axial-coordinate plots.
func makeComparisonPlot(loc *analysis.LocationResult, xLabel, yLabel string, markZero bool) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	title := loc.Title
	switch {
	case loc.Metrics != nil:
		title += fmt.Sprintf("\n(NRMSE: %s%%, R2: %s, RMSE: %s)",
			tableValue(loc.Metrics.NRMSE, 1),
			tableValue(loc.Metrics.R2, 3),
			tableValue(loc.Metrics.RMSE, 4))
	case !loc.HasExp():
		title += "\n(No exp. data)"
	case !loc.HasSim():
		title += "\n(Sim data missing)"
	}
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(9)

	if loc.HasExp() {
		pts := make(plotter.XYs, len(loc.ExpX))
		for i := range loc.ExpX {
			pts[i] = plotter.XY{X: loc.ExpX[i], Y: loc.ExpY[i]}
		}
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("failed to create experiment scatter: %v", err)
		}
		scatter.GlyphStyle.Color = expColor
		scatter.GlyphStyle.Radius = vg.Points(2)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(scatter)
		p.Legend.Add("Experiment (PIV)", scatter)
	}

	if loc.HasSim() {
		pts := make(plotter.XYs, len(loc.SimX))
		for i := range loc.SimX {
			pts[i] = plotter.XY{X: loc.SimX[i], Y: loc.SimY[i]}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("failed to create simulation line: %v", err)
		}
		line.Color = simColor
		line.LineStyle.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add("Simulation", line)
	}

	if markZero {
		ymin, ymax := yRange(loc)
		guide, err := plotter.NewLine(plotter.XYs{{X: 0, Y: ymin}, {X: 0, Y: ymax}})
		if err == nil {
			guide.Color = refColor
			guide.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
			p.Add(guide)
		}
	}

	p.Legend.Top = true
	p.Legend.TextStyle.Font.Size = vg.Points(8)
	return p, nil
}

func yRange(loc *analysis.LocationResult) (float64, float64) {
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for _, ys := range [][]float64{loc.ExpY, loc.SimY} {
		for _, y := range ys {
			ymin = math.Min(ymin, y)
			ymax = math.Max(ymax, y)
		}
	}
	if ymin > ymax {
		return 0, 1
	}
	return ymin, ymax
}

// figureCols picks the panel grid width for a figure.
func figureCols(n int) int {
	switch {
	case n <= 2:
		return n
	case n <= 9:
		return 3
	default:
		return 4
	}
}

// CreateComparisonFigure renders all locations of one analysis into a
// single tiled PNG and returns its bytes.
func CreateComparisonFigure(res *analysis.AnalysisResult) ([]byte, error) {
	if len(res.Locations) == 0 {
		return nil, fmt.Errorf("no locations to plot for %s", res.Name)
	}

	cols := figureCols(len(res.Locations))
	rows := (len(res.Locations) + cols - 1) / cols

	// Guides at x = 0 mark the expansion plane; they only make sense on
	// axial abscissas.
	markZero := res.Name != "vv_axial_velocity" && res.Name != "vv_radial_velocity"

	plots := make([][]*plot.Plot, rows)
	for r := 0; r < rows; r++ {
		plots[r] = make([]*plot.Plot, cols)
	}
	for i := range res.Locations {
		loc := &res.Locations[i]
		mark := markZero || loc.Name == "centerline"
		p, err := makeComparisonPlot(loc, res.XLabel, res.YLabel, mark)
		if err != nil {
			return nil, fmt.Errorf("failed to plot %s: %v", loc.Name, err)
		}
		plots[i/cols][i%cols] = p
	}

	img := vgimg.New(panelWidth*vg.Length(cols), panelHeight*vg.Length(rows))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: rows, Cols: cols,
		PadX: vg.Points(6), PadY: vg.Points(6),
		PadTop: vg.Points(4), PadBottom: vg.Points(4),
		PadLeft: vg.Points(4), PadRight: vg.Points(4),
	}
	canvases := plot.Align(plots, tiles, dc)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if plots[r][c] != nil {
				plots[r][c].Draw(canvases[r][c])
			}
		}
	}

	buf := new(bytes.Buffer)
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("failed to encode figure: %v", err)
	}
	return buf.Bytes(), nil
}

// WriteFigure renders the analysis figure and writes it into dir as
// <name>.png, creating the directory if needed. It returns the file path.
func WriteFigure(res *analysis.AnalysisResult, dir string) (string, error) {
	data, err := CreateComparisonFigure(res)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create plots dir: %w", err)
	}
	path := filepath.Join(dir, res.Name+".png")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write figure: %w", err)
	}
	return path, nil
}
