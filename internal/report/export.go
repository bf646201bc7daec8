package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ctxtimer/ctt/internal/timeutil"
)

// DefaultExportDir returns the per-user directory CSV exports land in,
// creating it on first use.
func DefaultExportDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(homeDir, "Documents", "ctt-exports")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	return dir, nil
}

// ExportFilename builds a filename embedding the report type, date and a
// time component, so repeated exports on the same day never collide.
func ExportFilename(reportType, dateSuffix string, now time.Time) string {
	if dateSuffix == "" {
		dateSuffix = now.UTC().Format("20060102")
	}
	return fmt.Sprintf("ctt-%s-%s-%s.csv", reportType, dateSuffix, now.UTC().Format("150405"))
}

// WriteDailyCSV serializes a daily report. Column order is stable: summary
// rows first, then one row per task.
func (r *DailyReport) WriteDailyCSV(path string) error {
	return writeCSV(path, func(w *csv.Writer) error {
		records := [][]string{
			{"Context Timer - Daily Report"},
			{fmt.Sprintf("Date: %s", timeutil.FormatDate(r.Date))},
			{},
			{"Summary"},
			{"Total Tasks Worked On", strconv.Itoa(r.TotalTasks)},
			{"Total Context Switches", strconv.Itoa(r.TotalSwitches)},
			{"Total Time Worked", timeutil.FormatDuration(r.TotalSeconds)},
			{},
			{"Task", "Time Spent", "Sessions"},
		}
		for _, t := range r.Tasks {
			records = append(records, []string{
				t.Name,
				timeutil.FormatDuration(t.Seconds),
				strconv.Itoa(t.Sessions),
			})
		}
		return w.WriteAll(records)
	})
}

// WriteWeeklyCSV serializes a weekly report: one row per day, then the
// week-level totals.
func (r *WeeklyReport) WriteWeeklyCSV(path string) error {
	return writeCSV(path, func(w *csv.Writer) error {
		records := [][]string{
			{"Context Timer - Weekly Report"},
			{fmt.Sprintf("Week: %s - %s", timeutil.FormatDate(r.WeekStart), timeutil.FormatDate(r.WeekEnd))},
			{},
			{"Date", "Total Time", "Context Switches", "Tasks Worked"},
		}
		for _, d := range r.Days {
			records = append(records, []string{
				timeutil.FormatDate(d.Date),
				timeutil.FormatDuration(d.Seconds),
				strconv.Itoa(d.Switches),
				strconv.Itoa(d.Tasks),
			})
		}
		records = append(records,
			[]string{},
			[]string{"Weekly Summary"},
			[]string{"Total Time Worked", timeutil.FormatDuration(r.TotalSeconds)},
			[]string{"Total Context Switches", strconv.Itoa(r.TotalSwitches)},
			[]string{"Average Daily Time", timeutil.FormatDuration(r.AverageDailySeconds)},
		)
		return w.WriteAll(records)
	})
}

// WriteSessionsCSV serializes raw session rows with a stable header.
func WriteSessionsCSV(rows []SessionRow, path string) error {
	return writeCSV(path, func(w *csv.Writer) error {
		records := [][]string{
			{"Task Name", "Start Time", "End Time", "Duration (seconds)", "Duration (HH:MM:SS)"},
		}
		for _, row := range rows {
			records = append(records, []string{
				row.TaskName,
				row.StartTime,
				row.EndTime,
				strconv.Itoa(row.DurationSeconds),
				row.DurationFormatted,
			})
		}
		return w.WriteAll(records)
	})
}

func writeCSV(path string, fill func(*csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := fill(w); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
