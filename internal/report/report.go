// Package report aggregates store rows into daily and weekly summaries and
// serializes them to CSV.
package report

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/ctxtimer/ctt/internal/db"
	"github.com/ctxtimer/ctt/internal/models"
	"github.com/ctxtimer/ctt/internal/timeutil"
)

// TaskBreakdown is one task's share of a daily report.
type TaskBreakdown struct {
	TaskID   uint
	Name     string
	Seconds  int
	Sessions int
}

// DailyReport summarizes one local calendar day.
type DailyReport struct {
	Date          time.Time // local midnight of the reported day
	TotalTasks    int
	TotalSwitches int
	TotalSeconds  int
	Tasks         []TaskBreakdown // sorted by descending duration
}

// DaySummary is one row of a weekly report.
type DaySummary struct {
	Date     time.Time
	Seconds  int
	Switches int
	Tasks    int
}

// WeeklyReport summarizes the Monday-to-Sunday local week.
type WeeklyReport struct {
	WeekStart           time.Time
	WeekEnd             time.Time
	Days                []DaySummary
	TotalSeconds        int
	TotalSwitches       int
	AverageDailySeconds int
}

// BuildDaily aggregates the local calendar day containing now. Rows with an
// end timestamp before their start are logged and excluded rather than
// corrupting the totals; running sessions count up to now.
func BuildDaily(now time.Time) (*DailyReport, error) {
	dayStart, dayEnd := timeutil.DayRange(now)

	sessions, err := db.GetSessionsInRange(dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	switches, err := db.GetContextSwitchesInRange(dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load context switches: %w", err)
	}

	local := now.Local()
	rep := &DailyReport{
		Date:          time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location()),
		TotalSwitches: len(switches),
	}

	byTask := make(map[uint]*TaskBreakdown)
	for i := range sessions {
		s := &sessions[i]
		seconds, err := s.ElapsedSeconds(now)
		if err != nil {
			log.Printf("report: skipping corrupt session: %v", err)
			continue
		}
		rep.TotalSeconds += seconds

		entry, ok := byTask[s.TaskID]
		if !ok {
			entry = &TaskBreakdown{TaskID: s.TaskID, Name: s.TaskDisplayName()}
			byTask[s.TaskID] = entry
		}
		entry.Seconds += seconds
		entry.Sessions++
	}

	for _, entry := range byTask {
		rep.Tasks = append(rep.Tasks, *entry)
	}
	sort.Slice(rep.Tasks, func(i, j int) bool {
		if rep.Tasks[i].Seconds != rep.Tasks[j].Seconds {
			return rep.Tasks[i].Seconds > rep.Tasks[j].Seconds
		}
		return rep.Tasks[i].Name < rep.Tasks[j].Name
	})
	rep.TotalTasks = len(rep.Tasks)

	return rep, nil
}

// BuildWeekly aggregates the Monday-to-Sunday local week containing now.
func BuildWeekly(now time.Time) (*WeeklyReport, error) {
	days := timeutil.WeekDates(now)

	rep := &WeeklyReport{
		WeekStart: days[0],
		WeekEnd:   days[len(days)-1],
	}

	for _, day := range days {
		dayStart := day.UTC()
		dayEnd := day.AddDate(0, 0, 1).UTC()

		sessions, err := db.GetSessionsInRange(dayStart, dayEnd)
		if err != nil {
			return nil, fmt.Errorf("failed to load sessions: %w", err)
		}
		switches, err := db.GetContextSwitchesInRange(dayStart, dayEnd)
		if err != nil {
			return nil, fmt.Errorf("failed to load context switches: %w", err)
		}

		summary := DaySummary{Date: day, Switches: len(switches)}
		taskIDs := make(map[uint]struct{})
		for i := range sessions {
			s := &sessions[i]
			seconds, err := s.ElapsedSeconds(now)
			if err != nil {
				log.Printf("report: skipping corrupt session: %v", err)
				continue
			}
			summary.Seconds += seconds
			taskIDs[s.TaskID] = struct{}{}
		}
		summary.Tasks = len(taskIDs)

		rep.Days = append(rep.Days, summary)
		rep.TotalSeconds += summary.Seconds
		rep.TotalSwitches += summary.Switches
	}

	rep.AverageDailySeconds = rep.TotalSeconds / len(days)

	return rep, nil
}

// Render formats a daily report for terminal display.
func (r *DailyReport) Render() string {
	var b strings.Builder
	line := strings.Repeat("-", 60)

	fmt.Fprintf(&b, "DAILY REPORT - %s\n", timeutil.FormatDate(r.Date))
	b.WriteString(line + "\n")
	fmt.Fprintf(&b, "Total Tasks Worked On:     %d\n", r.TotalTasks)
	fmt.Fprintf(&b, "Total Context Switches:    %d\n", r.TotalSwitches)
	fmt.Fprintf(&b, "Total Time Worked:         %s\n", timeutil.FormatDuration(r.TotalSeconds))

	if len(r.Tasks) > 0 {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%-30s %-12s %s\n", "Task", "Time", "Sessions")
		b.WriteString(line + "\n")
		for _, t := range r.Tasks {
			fmt.Fprintf(&b, "%-30s %-12s %d\n", t.Name, timeutil.FormatDuration(t.Seconds), t.Sessions)
		}
	}

	return b.String()
}

// Render formats a weekly report for terminal display.
func (r *WeeklyReport) Render() string {
	var b strings.Builder
	line := strings.Repeat("-", 70)

	fmt.Fprintf(&b, "WEEKLY REPORT - Week of %s\n", timeutil.FormatDate(r.WeekStart))
	b.WriteString(line + "\n")
	fmt.Fprintf(&b, "%-15s %-15s %-20s %s\n", "Date", "Total Time", "Context Switches", "Tasks")
	b.WriteString(line + "\n")
	for _, d := range r.Days {
		fmt.Fprintf(&b, "%-15s %-15s %-20d %d\n",
			timeutil.FormatDate(d.Date), timeutil.FormatDuration(d.Seconds), d.Switches, d.Tasks)
	}
	b.WriteString(line + "\n")
	fmt.Fprintf(&b, "Total Time Worked:         %s\n", timeutil.FormatDuration(r.TotalSeconds))
	fmt.Fprintf(&b, "Total Context Switches:    %d\n", r.TotalSwitches)
	fmt.Fprintf(&b, "Average Daily Time:        %s\n", timeutil.FormatDuration(r.AverageDailySeconds))

	return b.String()
}

// SessionRow is one raw-session export line.
type SessionRow struct {
	TaskName          string
	StartTime         string
	EndTime           string // "Running" for an active session
	DurationSeconds   int
	DurationFormatted string
}

// BuildSessionRows flattens sessions for the raw export, skipping corrupt
// rows the same way the aggregates do.
func BuildSessionRows(sessions []models.Session, now time.Time) []SessionRow {
	rows := make([]SessionRow, 0, len(sessions))
	for i := range sessions {
		s := &sessions[i]
		seconds, err := s.ElapsedSeconds(now)
		if err != nil {
			log.Printf("report: skipping corrupt session: %v", err)
			continue
		}

		end := "Running"
		if s.FinishedAt != nil {
			end = s.FinishedAt.UTC().Format("2006-01-02 15:04:05")
		}

		rows = append(rows, SessionRow{
			TaskName:          s.TaskDisplayName(),
			StartTime:         s.StartedAt.UTC().Format("2006-01-02 15:04:05"),
			EndTime:           end,
			DurationSeconds:   seconds,
			DurationFormatted: timeutil.FormatDuration(seconds),
		})
	}
	return rows
}
