package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ctxtimer/ctt/internal/db"
)

var removeCmd = &cobra.Command{
	Use:     "rm <task-id>",
	Aliases: []string{"remove", "delete"},
	Short:   "Delete a task (history is kept)",
	Long: `Soft-delete a task. Historical sessions stay queryable and keep the
task's last-known name in reports; you just can't start new timers for it.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		taskID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid task ID '%s'\n", args[0])
			return
		}

		task, err := db.GetTaskByID(uint(taskID))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if err := db.DeleteTask(task.ID); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("🗑️  Deleted task #%d: %s (historical sessions kept)\n", task.ID, task.Name)
	},
}
