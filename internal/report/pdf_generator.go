package report

import (
	"bytes"
	"fmt"
	"image/png"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/user/nozzle_vv_go/internal/analysis"
	"github.com/user/nozzle_vv_go/internal/config"
)

const (
	inchToMm               = 25.4
	pdfPageWidthLandscape  = 11 * inchToMm // Letter landscape
	pdfPageHeightLandscape = 8.5 * inchToMm
	pdfMargin              = 0.5 * inchToMm
	pdfContentWidth        = pdfPageWidthLandscape - (2 * pdfMargin)
)

// pdfStyler holds reusable styling and manual Y-position tracking for the
// flowing report content.
type pdfStyler struct {
	pdf        *gofpdf.Fpdf
	styles     map[string]func()
	lineHeight float64
	currentY   float64
	pageHeight float64
}

func newPDFStyler(pdf *gofpdf.Fpdf) *pdfStyler {
	s := &pdfStyler{
		pdf:        pdf,
		styles:     make(map[string]func()),
		lineHeight: 6,
		pageHeight: pdfPageHeightLandscape - pdfMargin,
	}
	s.currentY = pdfMargin
	s.defineStyles()
	return s
}

func (s *pdfStyler) defineStyles() {
	s.styles["h1"] = func() {
		s.pdf.SetFont("Arial", "B", 16)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["h2"] = func() {
		s.pdf.SetFont("Arial", "B", 13)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["normal"] = func() {
		s.pdf.SetFont("Arial", "", 10)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableHeader"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetFillColor(200, 200, 200)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableCell"] = func() {
		s.pdf.SetFont("Arial", "", 9)
		s.pdf.SetTextColor(50, 50, 50)
	}
}

func (s *pdfStyler) applyStyle(name string) {
	if fn, ok := s.styles[name]; ok {
		fn()
	} else {
		s.styles["normal"]()
	}
}

func (s *pdfStyler) checkAddPage(neededHeight float64) {
	if s.currentY+neededHeight > s.pageHeight {
		s.pdf.AddPage()
		s.currentY = pdfMargin
	}
}

func (s *pdfStyler) writeLine(text, style string) {
	s.applyStyle(style)
	s.checkAddPage(s.lineHeight)
	s.pdf.SetXY(pdfMargin, s.currentY)
	s.pdf.MultiCell(pdfContentWidth, s.lineHeight, text, "", "L", false)
	s.currentY = s.pdf.GetY() + 1
}

func (s *pdfStyler) addSpacer(height float64) {
	s.currentY += height
	if s.currentY > s.pageHeight {
		s.pdf.AddPage()
		s.currentY = pdfMargin
	}
}

func (s *pdfStyler) addMetricsTable(locs []analysis.LocationResult) {
	colWidths := []float64{70, 35, 35, 35}
	headers := []string{"Location", "RMSE", "NRMSE (%)", "R2"}

	s.checkAddPage(s.lineHeight * float64(len(locs)+1))
	s.applyStyle("tableHeader")
	s.pdf.SetXY(pdfMargin, s.currentY)
	for i, h := range headers {
		s.pdf.CellFormat(colWidths[i], s.lineHeight, h, "1", 0, "L", true, 0, "")
	}
	s.currentY += s.lineHeight

	s.applyStyle("tableCell")
	for _, loc := range locs {
		s.checkAddPage(s.lineHeight)
		s.pdf.SetXY(pdfMargin, s.currentY)
		cells := []string{loc.Name, "N/A", "N/A", "N/A"}
		if loc.Metrics != nil {
			cells[1] = tableValue(loc.Metrics.RMSE, 4)
			cells[2] = tableValue(loc.Metrics.NRMSE, 1)
			cells[3] = tableValue(loc.Metrics.R2, 4)
		}
		for i, c := range cells {
			s.pdf.CellFormat(colWidths[i], s.lineHeight, c, "1", 0, "L", false, 0, "")
		}
		s.currentY += s.lineHeight
	}
	s.currentY += 2
}

func (s *pdfStyler) addFigure(name string, data []byte) error {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to decode figure %s: %w", name, err)
	}
	width := pdfContentWidth
	height := width * float64(cfg.Height) / float64(cfg.Width)

	// Tall multi-panel figures get their own page scaled to fit.
	if height > s.pageHeight-pdfMargin {
		ratio := (s.pageHeight - pdfMargin) / height
		height *= ratio
		width *= ratio
	}
	s.checkAddPage(height)

	s.pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(data))
	s.pdf.ImageOptions(name, pdfMargin, s.currentY, width, height, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	s.currentY += height + 2
	return nil
}

// BuildPDFReport writes the consolidated V&V report: a title page with the
// case constants, then one section per analysis with its metrics table and
// comparison figure. figures maps analysis names to PNG bytes; analyses
// without a figure still get their table.
func BuildPDFReport(path string, cfg *config.Case, results []*analysis.AnalysisResult, figures map[string][]byte) error {
	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.AddPage()
	s := newPDFStyler(pdf)

	s.writeLine("FDA Nozzle Benchmark - V&V Analysis Report", "h1")
	s.writeLine(fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04")), "normal")
	s.writeLine(fmt.Sprintf("Experimental data: %s", cfg.ExpFile), "normal")
	s.writeLine(fmt.Sprintf("Simulation data: %s", cfg.SimDataDir), "normal")
	s.writeLine(fmt.Sprintf("Expansion plane offset: %.6f m, density: %.1f kg/m3", cfg.ZExpansion, cfg.Rho), "normal")
	s.addSpacer(4)

	for _, res := range results {
		s.writeLine(res.Title, "h2")
		s.addMetricsTable(res.Locations)
		if data, ok := figures[res.Name]; ok {
			if err := s.addFigure(res.Name, data); err != nil {
				return err
			}
		}
		for _, warn := range res.Warnings {
			s.writeLine("Note: "+warn, "tableCell")
		}
		s.addSpacer(4)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write PDF report: %w", err)
	}
	return nil
}
