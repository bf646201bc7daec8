package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ctxtimer/ctt/internal/db"
	"github.com/ctxtimer/ctt/internal/timeutil"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear session history",
	Long: `Delete sessions and context switches for a period. Tasks and settings
are kept. This is permanent; pass --yes to confirm.

Examples:
  ctt clear --period today --yes
  ctt clear --all --yes`,
	Run: func(cmd *cobra.Command, args []string) {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Println("Refusing to delete history without --yes.")
			return
		}

		all, _ := cmd.Flags().GetBool("all")
		if all {
			count, err := db.ClearAllHistory()
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			fmt.Printf("🧹 Deleted %d sessions and all context switches\n", count)
			return
		}

		period, _ := cmd.Flags().GetString("period")
		now := time.Now()

		var start, end time.Time
		switch period {
		case "today":
			start, end = timeutil.DayRange(now)
		case "week":
			start, end = timeutil.WeekRange(now)
		case "month":
			start, end = timeutil.MonthRange(now)
		default:
			fmt.Printf("Error: unknown period '%s' (want today, week or month)\n", period)
			return
		}

		count, err := db.ClearHistoryRange(start, end)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("🧹 Deleted %d sessions for this %s\n", count, period)
	},
}

func init() {
	clearCmd.Flags().StringP("period", "p", "today", "Period to clear: today, week or month")
	clearCmd.Flags().Bool("all", false, "Clear the entire history")
	clearCmd.Flags().Bool("yes", false, "Confirm deletion")
}
