package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ctxtimer/ctt/internal/db"
)

var editCmd = &cobra.Command{
	Use:   "edit <task-id>",
	Short: "Rename or recolor a task",
	Long: `Rename or recolor an existing task.

Examples:
  ctt edit 42 --name "Code review (backend)"
  ctt edit 42 --color "#e67e22"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		taskID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid task ID '%s'\n", args[0])
			return
		}

		var name, color *string
		if cmd.Flags().Changed("name") {
			v, _ := cmd.Flags().GetString("name")
			name = &v
		}
		if cmd.Flags().Changed("color") {
			v, _ := cmd.Flags().GetString("color")
			color = &v
		}

		if name == nil && color == nil {
			fmt.Println("Nothing to change. Pass --name and/or --color.")
			return
		}

		task, err := db.UpdateTask(uint(taskID), name, color)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("✏️  Updated task #%d: %s\n", task.ID, task.Name)
	},
}

func init() {
	editCmd.Flags().StringP("name", "n", "", "New task name")
	editCmd.Flags().StringP("color", "c", "", "New display color")
}
