package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/baditaflorin/l"
	"github.com/spf13/cobra"

	"github.com/user/nozzle_vv_go/internal/analysis"
	"github.com/user/nozzle_vv_go/internal/config"
	"github.com/user/nozzle_vv_go/internal/report"
	"github.com/user/nozzle_vv_go/internal/vvsync"
)

func loadCase(cmd *cobra.Command) (*config.Case, error) {
	caseDir, _ := cmd.Flags().GetString("case")
	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		return config.Load(configPath, caseDir)
	}
	return config.Default(caseDir), nil
}

// analysisStep binds one physical quantity to its driver.
type analysisStep struct {
	desc string
	run  func(*analysis.Analyzer) (*analysis.AnalysisResult, error)
}

func analysisSteps() []analysisStep {
	return []analysisStep{
		{"Axial Velocity (Uz) Profiles", func(a *analysis.Analyzer) (*analysis.AnalysisResult, error) {
			return a.AxialVelocity(), nil
		}},
		{"Radial Velocity (Uy) Profiles", func(a *analysis.Analyzer) (*analysis.AnalysisResult, error) {
			return a.RadialVelocity(), nil
		}},
		{"Pressure Distribution", func(a *analysis.Analyzer) (*analysis.AnalysisResult, error) {
			return a.Pressure(), nil
		}},
		{"Jet Width Analysis", func(a *analysis.Analyzer) (*analysis.AnalysisResult, error) {
			return a.JetWidthAnalysis()
		}},
	}
}

// reportAnalysis prints the metrics table and writes the comparison
// figure, returning the rendered figure bytes for PDF embedding.
func reportAnalysis(res *analysis.AnalysisResult, cfg *config.Case, logger l.Logger) ([]byte, error) {
	report.PrintMetricsTable(os.Stdout, res.Title+" - ERROR METRICS", res.Locations)
	if len(res.JetRows) > 0 {
		report.PrintJetWidthTable(os.Stdout, res.JetRows)
	}
	for _, warn := range res.Warnings {
		logger.Warn("analysis warning", "analysis", res.Name, "detail", warn)
	}

	data, err := report.CreateComparisonFigure(res)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.PlotsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create plots dir: %w", err)
	}
	path := filepath.Join(cfg.PlotsDir, res.Name+".png")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write figure: %w", err)
	}
	logger.Info("saved figure", "path", path)
	return data, nil
}

// runSingle executes one analysis end to end for the standalone
// subcommands.
func runSingle(cmd *cobra.Command, step analysisStep) error {
	cfg, err := loadCase(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	a, err := analysis.New(cfg, logger)
	if err != nil {
		return err
	}
	res, err := step.run(a)
	if err != nil {
		return err
	}
	_, err = reportAnalysis(res, cfg, logger)
	return err
}

func newAxialCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "axial",
		Short: "Compare axial velocity (Uz) profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSingle(cmd, analysisSteps()[0])
		},
	}
}

func newRadialCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "radial",
		Short: "Compare radial velocity (Uy) profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSingle(cmd, analysisSteps()[1])
		},
	}
}

func newPressureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pressure",
		Short: "Compare wall and centerline pressure distributions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSingle(cmd, analysisSteps()[2])
		},
	}
}

func newJetWidthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "jetwidth",
		Short: "Compare jet width against the experimental profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSingle(cmd, analysisSteps()[3])
		},
	}
}

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Copy solver sample output into the working data directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCase(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger()
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer logger.Close()

			n, err := vvsync.Sync(cfg.SolverDir, cfg.SimDataDir, logger)
			if err != nil {
				return err
			}
			if n == 0 {
				logger.Warn("no time directories found to sync", "source", cfg.SolverDir)
			}
			fmt.Printf("Synced %d time directories.\n", n)
			return nil
		},
	}
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Sync data and run the complete V&V analysis sequence",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCase(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger()
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer logger.Close()
			return runAll(cfg, logger)
		},
	}
}

// safeStep guards one analysis so a panic marks the step failed without
// aborting the remaining steps.
func safeStep(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic recovered: %v", r)
		}
	}()
	return fn()
}

func runAll(cfg *config.Case, logger l.Logger) error {
	fmt.Println("FDA Nozzle Benchmark - Complete V&V Analysis")
	fmt.Println("Re = 500, Laminar, Sudden Expansion")

	if n, err := vvsync.Sync(cfg.SolverDir, cfg.SimDataDir, logger); err != nil {
		logger.Warn("data sync skipped", "error", err.Error())
	} else {
		fmt.Printf("Synced %d time directories.\n", n)
	}

	// Hard stop: without any sample table there is nothing to analyze.
	if !vvsync.HasSampleTables(cfg.SimDataDir) {
		return fmt.Errorf("no simulation data found in %s: run the solver and postProcess first", cfg.SimDataDir)
	}

	a, err := analysis.New(cfg, logger)
	if err != nil {
		return err
	}

	status := make(map[string]bool)
	figures := make(map[string][]byte)
	var results []*analysis.AnalysisResult
	var order []string

	for _, step := range analysisSteps() {
		step := step
		order = append(order, step.desc)
		err := safeStep(func() error {
			res, err := step.run(a)
			if err != nil {
				return err
			}
			data, err := reportAnalysis(res, cfg, logger)
			if err != nil {
				return err
			}
			results = append(results, res)
			figures[res.Name] = data
			return nil
		})
		if err != nil {
			logger.Error("analysis failed", "analysis", step.desc, "error", err.Error())
		}
		status[step.desc] = err == nil
	}

	if len(results) > 0 {
		if err := report.BuildPDFReport(cfg.ReportPath, cfg, results, figures); err != nil {
			logger.Error("report generation failed", "error", err.Error())
		} else {
			fmt.Printf("\nSaved report to: %s\n", cfg.ReportPath)
		}
	}

	fmt.Println("\nGenerated Files (in plots/):")
	for _, name := range []string{"vv_axial_velocity.png", "vv_radial_velocity.png", "vv_pressure.png", "vv_jet_width.png"} {
		mark := "MISSING"
		if _, err := os.Stat(filepath.Join(cfg.PlotsDir, name)); err == nil {
			mark = "ok"
		}
		fmt.Printf("  [%s] %s\n", mark, name)
	}

	fmt.Println("\nAnalysis Status:")
	for _, desc := range order {
		state := "FAIL"
		if status[desc] {
			state = "PASS"
		}
		fmt.Printf("  %s: %s\n", desc, state)
	}

	// Individual failures are reported above; only missing data aborts.
	return nil
}
