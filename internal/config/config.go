// Package config holds the case layout and physical constants for a
// nozzle benchmark V&V run. Constants travel inside the Case value so the
// analysis code stays pure and testable with alternate configurations.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Station is one radial sampling location: the axial coordinate in the
// experimental frame (m, relative to the expansion plane) and the name of
// the corresponding sample set in the simulation tree.
type Station struct {
	Z       float64 `yaml:"z"`
	SetName string  `yaml:"set"`
	Label   string  `yaml:"label"`
}

// Case describes one benchmark case: where its files live and the physical
// constants used to map simulation output into the experimental frame.
type Case struct {
	CaseDir    string `yaml:"case_dir"`
	ExpFile    string `yaml:"experimental_file"`
	SimDataDir string `yaml:"simulation_data"`
	PlotsDir   string `yaml:"plots_dir"`
	ReportPath string `yaml:"report_path"`
	SolverDir  string `yaml:"solver_sample_dir"`

	// ZExpansion is the expansion plane location in simulation
	// coordinates (m). Simulation axial positions are shifted by this
	// amount before any comparison.
	ZExpansion float64 `yaml:"z_expansion"`
	// Rho is the fluid density (kg/m3) used to convert kinematic
	// pressure to static pressure.
	Rho float64 `yaml:"rho"`

	Stations []Station `yaml:"stations"`
}

// DefaultStations lists the benchmark's radial sampling locations, aligned
// exactly to the PIV measurement planes.
func DefaultStations() []Station {
	return []Station{
		{-0.088, "radial_z_minus088", "z = -88mm (inlet)"},
		{-0.064, "radial_z_minus064", "z = -64mm"},
		{-0.048, "radial_z_minus048", "z = -48mm (collector)"},
		{-0.042, "radial_z_minus042", "z = -42mm"},
		{-0.020, "radial_z_minus020", "z = -20mm (throat)"},
		{-0.008, "radial_z_minus008", "z = -8mm"},
		{0.000, "radial_z_000", "z = 0 (expansion)"},
		{0.008, "radial_z_plus008", "z = +8mm"},
		{0.016, "radial_z_plus016", "z = +16mm"},
		{0.024, "radial_z_plus024", "z = +24mm"},
		{0.032, "radial_z_plus032", "z = +32mm"},
		{0.040, "radial_z_plus040", "z = +40mm"},
		{0.048, "radial_z_plus048", "z = +48mm"},
		{0.060, "radial_z_plus060", "z = +60mm"},
		{0.080, "radial_z_plus080", "z = +80mm"},
	}
}

// Default returns the standard case layout rooted at caseDir.
func Default(caseDir string) *Case {
	return &Case{
		CaseDir:    caseDir,
		ExpFile:    filepath.Join(caseDir, "experimental_data", "PIV_Sudden_Expansion_500_243.txt"),
		SimDataDir: filepath.Join(caseDir, "simulation_data"),
		PlotsDir:   filepath.Join(caseDir, "plots"),
		ReportPath: filepath.Join(caseDir, "plots", "vv_report.pdf"),
		SolverDir:  filepath.Join(caseDir, "simulation", "postProcessing", "sampleDict"),
		ZExpansion: 0.122685,
		Rho:        1056.0,
		Stations:   DefaultStations(),
	}
}

// Load reads a YAML case file and overlays it on the defaults for caseDir.
// Fields left unset in the file keep their default values.
func Load(path, caseDir string) (*Case, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read case config: %w", err)
	}
	c := Default(caseDir)
	override := &Case{}
	if err := yaml.Unmarshal(raw, override); err != nil {
		return nil, fmt.Errorf("failed to parse case config: %w", err)
	}
	c.merge(override)
	return c, nil
}

func (c *Case) merge(o *Case) {
	if o.CaseDir != "" {
		c.CaseDir = o.CaseDir
	}
	if o.ExpFile != "" {
		c.ExpFile = o.ExpFile
	}
	if o.SimDataDir != "" {
		c.SimDataDir = o.SimDataDir
	}
	if o.PlotsDir != "" {
		c.PlotsDir = o.PlotsDir
	}
	if o.ReportPath != "" {
		c.ReportPath = o.ReportPath
	}
	if o.SolverDir != "" {
		c.SolverDir = o.SolverDir
	}
	if o.ZExpansion != 0 {
		c.ZExpansion = o.ZExpansion
	}
	if o.Rho != 0 {
		c.Rho = o.Rho
	}
	if len(o.Stations) > 0 {
		c.Stations = o.Stations
	}
}
