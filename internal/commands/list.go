package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ctxtimer/ctt/internal/db"
	"github.com/ctxtimer/ctt/internal/timeutil"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List tasks",
	Long:    "List tasks alphabetically. Reserved tasks (Work Day, Lunch, Break) are hidden unless --all is set.",
	Run: func(cmd *cobra.Command, args []string) {
		tasks, err := db.GetTasks()
		if err != nil {
			fmt.Printf("Error fetching tasks: %v\n", err)
			return
		}

		showAll, _ := cmd.Flags().GetBool("all")

		fmt.Printf("%-4s %-40s %-10s %s\n", "ID", "NAME", "COLOR", "CREATED")
		fmt.Println(strings.Repeat("-", 72))

		shown := 0
		for _, task := range tasks {
			if task.IsReserved() && !showAll {
				continue
			}

			name := task.Name
			if len(name) > 38 {
				name = name[:35] + "..."
			}

			fmt.Printf("%-4d %-40s %-10s %s\n",
				task.ID,
				name,
				task.Color,
				timeutil.FormatDate(task.CreatedAt))
			shown++
		}

		if shown == 0 {
			fmt.Println("No tasks found. Use 'ctt add \"task name\"' to create your first task.")
		}
	},
}

func init() {
	listCmd.Flags().BoolP("all", "a", false, "Include reserved tasks")
}
