package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ctxtimer/ctt/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report <daily|weekly>",
	Short: "Show a daily or weekly report",
	Long: `Aggregate today's (or this week's) sessions into a report: total time,
distinct tasks, context switches and a per-task breakdown.

Examples:
  ctt report daily
  ctt report weekly --csv`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"daily", "weekly"},
	Run: func(cmd *cobra.Command, args []string) {
		toCSV, _ := cmd.Flags().GetBool("csv")
		now := time.Now()

		switch args[0] {
		case "daily":
			rep, err := report.BuildDaily(now)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			fmt.Print(rep.Render())
			if toCSV {
				exportDaily(rep, now)
			}
		case "weekly":
			rep, err := report.BuildWeekly(now)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			fmt.Print(rep.Render())
			if toCSV {
				exportWeekly(rep, now)
			}
		default:
			fmt.Printf("Error: unknown report type '%s' (want daily or weekly)\n", args[0])
		}
	},
}

func exportDaily(rep *report.DailyReport, now time.Time) {
	dir, err := report.DefaultExportDir()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	path := filepath.Join(dir, report.ExportFilename("daily", now.UTC().Format("20060102"), now))
	if err := rep.WriteDailyCSV(path); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("\n📄 Daily report exported to %s\n", path)
}

func exportWeekly(rep *report.WeeklyReport, now time.Time) {
	dir, err := report.DefaultExportDir()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	path := filepath.Join(dir, report.ExportFilename("weekly", rep.WeekStart.Format("20060102"), now))
	if err := rep.WriteWeeklyCSV(path); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("\n📄 Weekly report exported to %s\n", path)
}

func init() {
	reportCmd.Flags().Bool("csv", false, "Also export the report to CSV")
}
