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
	trendFlagLimit int
	trendFlagJSON  bool
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Show fleet debt scores over time",
	Long: `Trend lists the fleet mean debt scores recorded by past scans,
oldest first, with a delta arrow from the previous point. Debt improves
downward, so a falling score is an improvement.`,
	RunE: runTrend,
}

func init() {
	trendCmd.Flags().IntVar(&trendFlagLimit, "limit", 12, "Number of most recent points to show (0 = all)")
	trendCmd.Flags().BoolVar(&trendFlagJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(trendCmd)
}

func runTrend(cmd *cobra.Command, args []string) error {
	db, err := store.Open(config.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	points, err := db.ListTrendPoints(trendFlagLimit)
	if err != nil {
		return fmt.Errorf("loading trend points: %w", err)
	}

	if trendFlagJSON || flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(points)
	}

	if len(points) == 0 {
		fmt.Println(output.StyleMuted.Render(" No trend data. Run 'debtscan scan' to record a point."))
		return nil
	}

	fmt.Println(output.Section("Fleet Debt Trend"))
	fmt.Println()

	tbl := output.NewTable("Date", "Overall", "Code", "Arch", "Infra", "Ops", "Δ")
	for i, tp := range points {
		delta := ""
		if i > 0 {
			delta = output.TrendArrow(scoring.Round1(tp.OverallScore - points[i-1].OverallScore))
		}
		tbl.AddRow(
			tp.Date.Format("2006-01-02"),
			fmt.Sprintf("%.1f", scoring.Round1(tp.OverallScore)),
			fmt.Sprintf("%.1f", scoring.Round1(tp.CodeQuality)),
			fmt.Sprintf("%.1f", scoring.Round1(tp.Architecture)),
			fmt.Sprintf("%.1f", scoring.Round1(tp.Infrastructure)),
			fmt.Sprintf("%.1f", scoring.Round1(tp.Operations)),
			delta,
		)
	}
	tbl.Print()

	latest := points[len(points)-1]
	fmt.Println()
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Current fleet mean:"),
		output.ScoreBar(latest.OverallScore, 20))
	fmt.Println()
	return nil
}
