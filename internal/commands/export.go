package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ctxtimer/ctt/internal/db"
	"github.com/ctxtimer/ctt/internal/report"
	"github.com/ctxtimer/ctt/internal/timeutil"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export raw timer sessions to CSV",
	Long: `Export timer sessions for a period to a CSV file under
~/Documents/ctt-exports. Filenames embed the period and export time, so
repeated exports never collide.

Examples:
  ctt export
  ctt export --period week
  ctt export --period all`,
	Run: func(cmd *cobra.Command, args []string) {
		period, _ := cmd.Flags().GetString("period")
		now := time.Now()

		var start, end time.Time
		var suffix string
		switch period {
		case "today":
			start, end = timeutil.DayRange(now)
			suffix = now.UTC().Format("20060102")
		case "week":
			start, end = timeutil.WeekRange(now)
			suffix = timeutil.WeekDates(now)[0].Format("20060102") + "-week"
		case "month":
			start, end = timeutil.MonthRange(now)
			suffix = now.UTC().Format("200601")
		case "all":
			start = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
			end = now.UTC()
			suffix = "all-time"
		default:
			fmt.Printf("Error: unknown period '%s' (want today, week, month or all)\n", period)
			return
		}

		sessions, err := db.GetSessionsInRange(start, end)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		dir, err := report.DefaultExportDir()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		rows := report.BuildSessionRows(sessions, now)
		path := filepath.Join(dir, report.ExportFilename("sessions", suffix, now))
		if err := report.WriteSessionsCSV(rows, path); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("📄 Exported %d timer sessions to %s\n", len(rows), path)
	},
}

func init() {
	exportCmd.Flags().StringP("period", "p", "today", "Period to export: today, week, month or all")
}
