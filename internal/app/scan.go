package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/debtscan/internal/config"
	"github.com/blackwell-systems/debtscan/internal/output"
	"github.com/blackwell-systems/debtscan/internal/report"
	"github.com/blackwell-systems/debtscan/internal/scan"
	"github.com/blackwell-systems/debtscan/internal/scoring"
	"github.com/blackwell-systems/debtscan/internal/store"
)

var (
	scanFlagInput   string
	scanFlagOutput  string
	scanFlagTop     int
	scanFlagNoStore bool
	scanFlagJSON    bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Score a batch of projects from analyzer output",
	Long: `Scan reads a manifest of projects and their raw analyzer metrics,
scores each project across the four debt categories, classifies risk,
and aggregates the batch into a fleet report. Results are stored in the
local database unless --no-store is given.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanFlagInput, "input", "", "Manifest file with projects and raw metrics (required)")
	scanCmd.Flags().StringVar(&scanFlagOutput, "output", "", "Write the full report JSON to this file")
	scanCmd.Flags().IntVar(&scanFlagTop, "top", 0, "Number of projects in the top-debt ranking (default from config)")
	scanCmd.Flags().BoolVar(&scanFlagNoStore, "no-store", false, "Skip persisting the scan to the local database")
	scanCmd.Flags().BoolVar(&scanFlagJSON, "json", false, "Output as JSON")
	_ = scanCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(scanCmd)
}

// fullReport is what --output writes and --json prints: the fleet summary
// plus every per-project result.
type fullReport struct {
	Summary report.Summary    `json:"summary"`
	Results []scan.ScanResult `json:"results"`
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	manifest, err := scan.LoadManifest(scanFlagInput)
	if err != nil {
		return fmt.Errorf("loading manifest: %w", err)
	}
	projects := manifest.ProjectList()

	opts := scan.Options{
		Weights: scoring.WeightVector{
			CodeQuality:    cfg.Weights.CodeQuality,
			Architecture:   cfg.Weights.Architecture,
			Infrastructure: cfg.Weights.Infrastructure,
			Operations:     cfg.Weights.Operations,
		},
		Thresholds: scoring.RiskThresholds{
			Low:      cfg.RiskLevels.Low,
			Medium:   cfg.RiskLevels.Medium,
			High:     cfg.RiskLevels.High,
			Critical: cfg.RiskLevels.Critical,
		},
		Parallel: cfg.Tools.ParallelProjects,
		Timeout:  time.Duration(cfg.Tools.TimeoutPerProject) * time.Second,
	}

	orch := scan.New(scan.NewManifestCollector(manifest), opts)
	results, err := orch.Run(cmd.Context(), projects)
	if err != nil {
		return fmt.Errorf("scanning: %w", err)
	}

	topN := cfg.TopDebt
	if scanFlagTop > 0 {
		topN = scanFlagTop
	}
	summary := report.BuildSummary(results, topN, &cfg.Filters)

	if !scanFlagNoStore {
		db, err := store.Open(config.DBPath())
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer func() { _ = db.Close() }()
		if _, err := db.SaveScan(summary, results, appVersion); err != nil {
			return fmt.Errorf("storing scan: %w", err)
		}
	}

	if scanFlagOutput != "" {
		if err := writeReportFile(scanFlagOutput, summary, results); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		if flagVerbose {
			fmt.Fprintf(os.Stderr, "report written to %s\n", scanFlagOutput)
		}
	}

	if scanFlagJSON || flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(fullReport{Summary: summary, Results: results})
	}

	renderSummary(summary, results)
	return nil
}

func writeReportFile(path string, summary report.Summary, results []scan.ScanResult) error {
	data, err := json.MarshalIndent(fullReport{Summary: summary, Results: results}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func renderSummary(summary report.Summary, results []scan.ScanResult) {
	fmt.Println(output.Section("Fleet Debt Scan"))
	fmt.Println()
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Projects scanned:"),
		output.StyleValue.Render(fmt.Sprintf("%d", summary.TotalProjects)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Successful:"),
		output.StyleValue.Render(fmt.Sprintf("%d", summary.SuccessfulScans)))
	if summary.FailedScans > 0 {
		fmt.Printf(" %s %s\n",
			output.StyleLabel.Render("Failed:"),
			output.StyleError.Render(fmt.Sprintf("%d", summary.FailedScans)))
	}
	if tp, ok := report.BuildTrendPoint(results, summary.ScanDate); ok {
		fmt.Printf(" %s %s\n",
			output.StyleLabel.Render("Fleet mean score:"),
			output.ScoreBar(tp.OverallScore, 10))
	}
	fmt.Println()

	// Risk distribution, worst first.
	for i := len(scoring.RiskLevels) - 1; i >= 0; i-- {
		level := scoring.RiskLevels[i]
		n := summary.RiskDistribution[level]
		fmt.Printf(" %s %s\n",
			output.StyleLabel.Render(string(level)+":"),
			output.RiskStyle(string(level)).Render(fmt.Sprintf("%d", n)))
	}

	if len(summary.TopDebtProjects) > 0 {
		fmt.Println(output.Section("Highest Debt"))
		fmt.Println()
		tbl := output.NewTable("Project", "Score", "Risk", "")
		for _, rp := range summary.TopDebtProjects {
			tbl.AddRow(
				rp.Name,
				fmt.Sprintf("%.1f", scoring.Round1(rp.OverallScore)),
				output.RiskStyle(string(rp.RiskLevel)).Render(string(rp.RiskLevel)),
				output.ScoreBar(rp.OverallScore, 10),
			)
		}
		tbl.Print()
	}

	if len(summary.Recommendations) > 0 {
		fmt.Println(output.Section("Recommendations"))
		fmt.Println()
		for _, rec := range summary.Recommendations {
			fmt.Printf(" • %s\n", rec)
		}
	}

	if flagVerbose {
		renderFailures(results)
	}
	fmt.Println()
}

func renderFailures(results []scan.ScanResult) {
	var failed []scan.ScanResult
	for _, r := range results {
		if r.Failed() {
			failed = append(failed, r)
		}
	}
	if len(failed) == 0 {
		return
	}

	fmt.Println(output.Section("Failures"))
	fmt.Println()
	for _, r := range failed {
		fmt.Printf(" %s %s\n",
			output.StyleBold.Render(r.Project.Name),
			output.StyleError.Render(r.Error))
	}
}
