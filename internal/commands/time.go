package commands

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ctxtimer/ctt/internal/db"
	"github.com/ctxtimer/ctt/internal/tui"
)

var startCmd = &cobra.Command{
	Use:   "start <task-id>",
	Short: "Start tracking time on a task",
	Long: `Start tracking time on a task. Opens the live dashboard by default,
use --no-ui for a simple start.

Starting a task while another timer runs logs a context switch. Starting a
task that is already being timed is a no-op.

Examples:
  ctt start 42         # Start timer and open the dashboard
  ctt start 42 --no-ui # Start timer and return to the shell`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		taskID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid task ID '%s'\n", args[0])
			return
		}

		session, err := db.StartSession(uint(taskID))
		if err != nil {
			if errors.Is(err, db.ErrSessionRunning) {
				// Benign: the timer was already going
				fmt.Printf("⏱️  Timer for %s is already running (since %s)\n",
					session.TaskDisplayName(), session.StartedAt.Local().Format("15:04:05"))
			} else {
				fmt.Printf("Error: %v\n", err)
				return
			}
		} else {
			fmt.Printf("⏱️  Started tracking time for task #%d: %s\n", session.TaskID, session.TaskDisplayName())
		}

		noUI, _ := cmd.Flags().GetBool("no-ui")
		if !noUI {
			MaybeAutoStartWorkDay()
			if err := tui.RunDashboard(); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
		}
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop <session-id>",
	Short: "Stop a running timer session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sessionID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid session ID '%s'\n", args[0])
			return
		}

		session, err := db.StopSession(uint(sessionID))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("⏹️  Stopped %s - session duration: %s\n",
			session.TaskDisplayName(), session.ElapsedDisplay(time.Now()))
	},
}

var stopAllCmd = &cobra.Command{
	Use:   "stopall",
	Short: "Stop all running timers",
	Long:  "Stop every running timer. The Work Day session keeps running unless --include-work-day is set.",
	Run: func(cmd *cobra.Command, args []string) {
		includeWorkDay, _ := cmd.Flags().GetBool("include-work-day")

		stopped, err := db.StopAllSessions(!includeWorkDay)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if len(stopped) == 0 {
			fmt.Println("No running timers.")
			return
		}

		now := time.Now()
		for _, s := range stopped {
			fmt.Printf("⏹️  Stopped %s (%s)\n", s.TaskDisplayName(), s.ElapsedDisplay(now))
		}
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show running timers",
	Long:  "Print a snapshot of running timers, or open the live dashboard with --watch.",
	Run: func(cmd *cobra.Command, args []string) {
		watch, _ := cmd.Flags().GetBool("watch")
		if watch {
			MaybeAutoStartWorkDay()
			if err := tui.RunDashboard(); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
			return
		}

		sessions, err := db.GetActiveSessions()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if len(sessions) == 0 {
			fmt.Println("No active time tracking session")
			return
		}

		now := time.Now()
		for _, s := range sessions {
			fmt.Printf("⏱️  #%d %s - started %s, elapsed %s\n",
				s.ID, s.TaskDisplayName(),
				s.StartedAt.Local().Format("15:04:05"),
				s.ElapsedDisplay(now))
		}
	},
}

func init() {
	startCmd.Flags().Bool("no-ui", false, "Start timer without the dashboard")
	stopAllCmd.Flags().Bool("include-work-day", false, "Also stop the Work Day session")
	statusCmd.Flags().BoolP("watch", "w", false, "Open the live dashboard")
}
