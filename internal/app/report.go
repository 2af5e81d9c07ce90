package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/debtscan/internal/config"
	"github.com/blackwell-systems/debtscan/internal/output"
	"github.com/blackwell-systems/debtscan/internal/scoring"
	"github.com/blackwell-systems/debtscan/internal/store"
)

var (
	reportFlagNth  int
	reportFlagJSON bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the most recent stored scan",
	Long: `Report loads a stored scan from the local database and renders its
fleet summary: risk distribution, the top-debt ranking, and fleet-level
recommendations. Use --nth to look at earlier scans.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().IntVar(&reportFlagNth, "nth", 1, "Show the Nth most recent scan (1 = latest)")
	reportCmd.Flags().BoolVar(&reportFlagJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	db, err := store.Open(config.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	rec, err := db.GetScanN(reportFlagNth)
	if err != nil {
		return fmt.Errorf("loading scan: %w", err)
	}
	if rec == nil {
		fmt.Println(output.StyleMuted.Render(" No stored scans. Run 'debtscan scan' first."))
		return nil
	}

	if reportFlagJSON || flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec.Summary)
	}

	fmt.Println(output.Section("Stored Scan"))
	fmt.Println()
	fmt.Printf(" Scan #%d taken at %s (debtscan %s)\n",
		rec.ID, rec.ScannedAt.Format("2006-01-02 15:04:05"), rec.Version)
	fmt.Println()

	summary := rec.Summary
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
	fmt.Println()

	for i := len(scoring.RiskLevels) - 1; i >= 0; i-- {
		level := scoring.RiskLevels[i]
		fmt.Printf(" %s %s\n",
			output.StyleLabel.Render(string(level)+":"),
			output.RiskStyle(string(level)).Render(fmt.Sprintf("%d", summary.RiskDistribution[level])))
	}

	if len(summary.TopDebtProjects) > 0 {
		fmt.Println(output.Section("Highest Debt"))
		fmt.Println()
		tbl := output.NewTable("Project", "Score", "Risk")
		for _, rp := range summary.TopDebtProjects {
			tbl.AddRow(
				rp.Name,
				fmt.Sprintf("%.1f", scoring.Round1(rp.OverallScore)),
				output.RiskStyle(string(rp.RiskLevel)).Render(string(rp.RiskLevel)),
			)
		}
		tbl.Print()
	}

	if len(summary.Recommendations) > 0 {
		fmt.Println(output.Section("Recommendations"))
		fmt.Println()
		for _, msg := range summary.Recommendations {
			fmt.Printf(" • %s\n", msg)
		}
	}
	fmt.Println()
	return nil
}
