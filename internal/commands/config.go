package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ctxtimer/ctt/internal/db"
	"github.com/ctxtimer/ctt/internal/models"
)

var configCmd = &cobra.Command{
	Use:   "config <get|set> <key> [value]",
	Short: "Read or write preferences",
	Long: `Read or write a preference key. Recognized keys:

  expected_start_time    "HH:MM" - the dashboard auto-starts your work day
                         when opened after this time
  expected_daily_hours   expected hours of work per day

Unknown keys are stored and passed through untouched.

Examples:
  ctt config set expected_start_time 09:00
  ctt config get expected_start_time`,
	Args: cobra.RangeArgs(2, 3),
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "get":
			value, err := db.GetSetting(args[1])
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			if value == "" {
				fmt.Printf("%s is not set\n", args[1])
				return
			}
			fmt.Println(value)
		case "set":
			if len(args) < 3 {
				fmt.Println("Error: 'set' needs a key and a value")
				return
			}
			if args[1] == models.SettingSchemaVersion {
				fmt.Println("Error: schema_version is managed by ctt")
				return
			}
			if err := db.SetSetting(args[1], args[2]); err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			fmt.Printf("⚙️  %s = %s\n", args[1], args[2])
		default:
			fmt.Printf("Error: unknown action '%s' (want get or set)\n", args[0])
		}
	},
}
