package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/ctxtimer/ctt/internal/timeutil"
)

// ErrCorruptSession marks a stored end timestamp earlier than the start.
// Readers log and skip such rows; nothing ever writes a "fixed" value back.
var ErrCorruptSession = errors.New("session ends before it starts")

// Placeholder display values for sessions whose task row is gone.
const (
	DeletedTaskName  = "(deleted task)"
	DeletedTaskColor = "#7f8c8d"
)

// Session represents a timer session for a task. FinishedAt is nil while
// the timer is running.
type Session struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	TaskID          uint       `gorm:"not null;index:idx_sessions_task_start" json:"task_id"`
	StartedAt       time.Time  `gorm:"not null;index:idx_sessions_task_start;index" json:"started_at"`
	FinishedAt      *time.Time `json:"finished_at"`
	DurationSeconds *int       `json:"duration_seconds"` // set when the session stops

	// Relationships
	Task Task `json:"task"`
}

// IsRunning reports whether the session has no end timestamp yet.
func (s *Session) IsRunning() bool {
	return s.FinishedAt == nil
}

// ElapsedSeconds returns the session's elapsed time at now. For a stopped
// session this is fixed at finish minus start. A stored end timestamp
// earlier than the start is a data error, never clamped.
func (s *Session) ElapsedSeconds(now time.Time) (int, error) {
	end := now.UTC()
	if s.FinishedAt != nil {
		end = s.FinishedAt.UTC()
	}
	elapsed := int(end.Sub(s.StartedAt.UTC()).Seconds())
	if elapsed < 0 {
		return 0, fmt.Errorf("%w: session #%d, off by %ds", ErrCorruptSession, s.ID, -elapsed)
	}
	return elapsed, nil
}

// ElapsedDisplay formats the elapsed time as HH:MM:SS. Corrupt sessions
// render as 00:00:00; callers that care use ElapsedSeconds directly.
func (s *Session) ElapsedDisplay(now time.Time) string {
	elapsed, err := s.ElapsedSeconds(now)
	if err != nil {
		return timeutil.FormatDuration(0)
	}
	return timeutil.FormatDuration(elapsed)
}

// TaskDisplayName returns the owning task's name, or a placeholder when the
// task row was never loaded (e.g. hard-removed out of band).
func (s *Session) TaskDisplayName() string {
	if s.Task.ID == 0 {
		return DeletedTaskName
	}
	return s.Task.Name
}

// TaskDisplayColor returns the owning task's color with the same fallback.
func (s *Session) TaskDisplayColor() string {
	if s.Task.ID == 0 {
		return DeletedTaskColor
	}
	if s.Task.Color == "" {
		return DeletedTaskColor
	}
	return s.Task.Color
}
