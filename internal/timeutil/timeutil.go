// Package timeutil holds the duration formatting and calendar-range helpers
// shared by the store, reports and the TUI.
package timeutil

import (
	"fmt"
	"time"
)

// FormatDuration formats a second count as HH:MM:SS. Hours accumulate past
// 24 (97200 renders as "27:00:00", not a day rollover).
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}

// FormatDurationVerbose formats a second count like "2h 15m 30s", dropping
// zero components except for a bare "0s".
func FormatDurationVerbose(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	out := ""
	if hours > 0 {
		out += fmt.Sprintf("%dh", hours)
	}
	if minutes > 0 {
		if out != "" {
			out += " "
		}
		out += fmt.Sprintf("%dm", minutes)
	}
	if secs > 0 || out == "" {
		if out != "" {
			out += " "
		}
		out += fmt.Sprintf("%ds", secs)
	}
	return out
}

// DayRange returns the UTC half-open interval [start, end) covering the
// local calendar day containing now. Range queries always work on UTC
// boundaries derived from the caller's local day, not the UTC day.
func DayRange(now time.Time) (time.Time, time.Time) {
	local := now.Local()
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}

// WeekRange returns the UTC half-open interval covering the local
// Monday-to-Sunday week containing now.
func WeekRange(now time.Time) (time.Time, time.Time) {
	monday := startOfWeek(now)
	return monday.UTC(), monday.AddDate(0, 0, 7).UTC()
}

// MonthRange returns the UTC half-open interval covering the local calendar
// month containing now.
func MonthRange(now time.Time) (time.Time, time.Time) {
	local := now.Local()
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, local.Location())
	return start.UTC(), start.AddDate(0, 1, 0).UTC()
}

// WeekDates returns the seven local midnights of the Monday-to-Sunday week
// containing now.
func WeekDates(now time.Time) []time.Time {
	monday := startOfWeek(now)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = monday.AddDate(0, 0, i)
	}
	return days
}

// startOfWeek returns the local midnight of the Monday of now's week.
func startOfWeek(now time.Time) time.Time {
	local := now.Local()
	// time.Weekday counts Sunday as 0; shift so Monday is day 0.
	offset := (int(local.Weekday()) + 6) % 7
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
	return day.AddDate(0, 0, -offset)
}

// FormatDate renders a timestamp like "Jan 11, 2026".
func FormatDate(t time.Time) string {
	return t.Format("Jan 02, 2006")
}

// FormatDateTime renders a timestamp like "Jan 11, 2026 3:45 PM".
func FormatDateTime(t time.Time) string {
	return t.Format("Jan 02, 2006 3:04 PM")
}
