package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ctxtimer/ctt/internal/db"
	"github.com/ctxtimer/ctt/internal/models"
)

var dayCmd = &cobra.Command{
	Use:   "day <start|stop>",
	Short: "Start or stop your work day",
	Long: `Control the Work Day container timer.

'ctt day start' resumes today's Work Day session if one exists (stopped or
running) instead of creating a duplicate, so the whole day's total lives in
one session. 'ctt day stop' pauses it; start again later the same day to
resume.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"start", "stop"},
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "start":
			session, err := db.GetOrCreateWorkDaySessionForToday()
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			fmt.Printf("🌅 Work day running since %s (elapsed %s)\n",
				session.StartedAt.Local().Format("15:04:05"),
				session.ElapsedDisplay(time.Now()))
		case "stop":
			stopReserved(models.WorkDayTaskName)
		default:
			fmt.Printf("Error: unknown action '%s' (want start or stop)\n", args[0])
		}
	},
}

var lunchCmd = &cobra.Command{
	Use:       "lunch <start|stop>",
	Short:     "Start or stop the lunch timer",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"start", "stop"},
	Run: func(cmd *cobra.Command, args []string) {
		runReserved(models.LunchTaskName, args[0], "🍴")
	},
}

var breakCmd = &cobra.Command{
	Use:       "break <start|stop>",
	Short:     "Start or stop the break timer",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"start", "stop"},
	Run: func(cmd *cobra.Command, args []string) {
		runReserved(models.BreakTaskName, args[0], "☕")
	},
}

// runReserved starts or stops a Lunch/Break timer. Reserved timers never
// log context switches.
func runReserved(name, action, icon string) {
	switch action {
	case "start":
		session, err := db.StartReservedSession(name)
		if err != nil {
			if errors.Is(err, db.ErrSessionRunning) {
				fmt.Printf("%s %s already running since %s\n",
					icon, name, session.StartedAt.Local().Format("15:04:05"))
				return
			}
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("%s %s started at %s\n", icon, name, session.StartedAt.Local().Format("15:04:05"))
	case "stop":
		stopReserved(name)
	default:
		fmt.Printf("Error: unknown action '%s' (want start or stop)\n", action)
	}
}

// stopReserved stops the running session of a reserved task, if any.
func stopReserved(name string) {
	sessions, err := db.GetActiveSessions()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	for _, s := range sessions {
		if s.TaskDisplayName() != name {
			continue
		}
		stopped, err := db.StopSession(s.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("⏹️  %s stopped after %s\n", name, stopped.ElapsedDisplay(time.Now()))
		return
	}

	fmt.Printf("No running %s timer.\n", name)
}

// MaybeAutoStartWorkDay starts the Work Day session when the
// expected_start_time preference has passed and nothing is running yet.
// Called when the dashboard opens, which is this app's "launch".
func MaybeAutoStartWorkDay() {
	due, err := db.WorkDayAutoStartDue(time.Now())
	if err != nil || !due {
		return
	}

	sessions, err := db.GetActiveSessions()
	if err != nil {
		return
	}
	for _, s := range sessions {
		if s.TaskDisplayName() == models.WorkDayTaskName {
			return
		}
	}

	if _, err := db.GetOrCreateWorkDaySessionForToday(); err == nil {
		fmt.Println("🌅 Work day auto-started (expected start time passed)")
	}
}
