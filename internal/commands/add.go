package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ctxtimer/ctt/internal/db"
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a new task",
	Long: `Create a new task to run timers against.

Examples:
  ctt add "Code review"
  ctt add "Standup" --color "#9b59b6"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		color, _ := cmd.Flags().GetString("color")

		task, err := db.CreateTask(args[0], color)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("✅ New task \"%s\" added - ID: %d\n", task.Name, task.ID)
	},
}

func init() {
	addCmd.Flags().StringP("color", "c", "", "Display color as a hex code, e.g. #3498db")
}
