package db

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ctxtimer/ctt/internal/models"
	"github.com/ctxtimer/ctt/internal/timeutil"
)

// nowUTC returns the current time at the second precision all session
// timestamps are stored with.
func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// withTask preloads the owning task, including soft-deleted ones, so
// historical sessions still resolve a display name.
func withTask(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Task", func(tx *gorm.DB) *gorm.DB {
		return tx.Unscoped()
	})
}

// StartSession starts a new time tracking session for a task. If a session
// is already running for the task, the existing session is returned along
// with ErrSessionRunning; no duplicate row and no context switch are
// created. Starting while other timers run logs exactly one context switch,
// from the most recently started of them.
func StartSession(taskID uint) (*models.Session, error) {
	task, err := GetTaskByID(taskID)
	if err != nil {
		return nil, err
	}

	var existing models.Session
	err = withTask(DB).Where("task_id = ? AND finished_at IS NULL", taskID).First(&existing).Error
	if err == nil {
		return &existing, fmt.Errorf("%w: task #%d", ErrSessionRunning, taskID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := nowUTC()

	// A switch models attention moving away from the last thing the user
	// was doing, so only the most recently started timer counts as "from".
	var last models.Session
	err = DB.Where("finished_at IS NULL").Order("started_at DESC, id DESC").First(&last).Error
	if err == nil {
		sw := models.ContextSwitch{
			FromTaskID: &last.TaskID,
			ToTaskID:   taskID,
			Timestamp:  now,
		}
		if err := DB.Create(&sw).Error; err != nil {
			return nil, err
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	session := models.Session{
		TaskID:    taskID,
		StartedAt: now,
	}
	if err := DB.Create(&session).Error; err != nil {
		return nil, err
	}
	session.Task = *task

	return &session, nil
}

// StartReservedSession starts a session for a reserved task (Lunch, Break).
// Reserved timers never log context switches; attention is considered to
// stay with whatever task was running.
func StartReservedSession(name string) (*models.Session, error) {
	task, err := EnsureReservedTask(name)
	if err != nil {
		return nil, err
	}

	var existing models.Session
	err = withTask(DB).Where("task_id = ? AND finished_at IS NULL", task.ID).First(&existing).Error
	if err == nil {
		return &existing, fmt.Errorf("%w: task #%d", ErrSessionRunning, task.ID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	session := models.Session{
		TaskID:    task.ID,
		StartedAt: nowUTC(),
	}
	if err := DB.Create(&session).Error; err != nil {
		return nil, err
	}
	session.Task = *task

	return &session, nil
}

// StopSession sets the session's end timestamp to now. Stopping an already
// stopped session is an idempotent success and returns it unchanged.
func StopSession(sessionID uint) (*models.Session, error) {
	var session models.Session
	err := withTask(DB).First(&session, sessionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: #%d", ErrSessionNotFound, sessionID)
		}
		return nil, err
	}

	if session.FinishedAt != nil {
		return &session, nil
	}

	now := nowUTC()
	duration := int(now.Sub(session.StartedAt.UTC()).Seconds())
	session.FinishedAt = &now
	session.DurationSeconds = &duration

	if err := DB.Save(&session).Error; err != nil {
		return nil, err
	}

	return &session, nil
}

// StopAllSessions stops every running session. When skipWorkDay is true the
// Work Day container keeps running while the task timers stop.
func StopAllSessions(skipWorkDay bool) ([]models.Session, error) {
	active, err := GetActiveSessions()
	if err != nil {
		return nil, err
	}

	var stopped []models.Session
	for _, s := range active {
		if skipWorkDay && s.TaskDisplayName() == models.WorkDayTaskName {
			continue
		}
		done, err := StopSession(s.ID)
		if err != nil {
			return stopped, err
		}
		stopped = append(stopped, *done)
	}

	return stopped, nil
}

// GetActiveSessions returns all running sessions ordered by start time
func GetActiveSessions() ([]models.Session, error) {
	var sessions []models.Session

	err := withTask(DB).
		Where("finished_at IS NULL").
		Order("started_at ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

// GetSessionByID retrieves a session by ID
func GetSessionByID(id uint) (*models.Session, error) {
	var session models.Session

	err := withTask(DB).First(&session, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: #%d", ErrSessionNotFound, id)
		}
		return nil, err
	}

	return &session, nil
}

// GetSessionsInRange returns sessions whose start falls in the half-open
// UTC interval [start, end), running ones included, ordered by start time.
func GetSessionsInRange(start, end time.Time) ([]models.Session, error) {
	var sessions []models.Session

	err := withTask(DB).
		Where("started_at >= ? AND started_at < ?", start.UTC(), end.UTC()).
		Order("started_at ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

// GetContextSwitchesInRange returns switches in [start, end) ordered by time
func GetContextSwitchesInRange(start, end time.Time) ([]models.ContextSwitch, error) {
	var switches []models.ContextSwitch

	err := DB.
		Where("timestamp >= ? AND timestamp < ?", start.UTC(), end.UTC()).
		Order("timestamp ASC").
		Find(&switches).Error
	if err != nil {
		return nil, err
	}

	return switches, nil
}

// GetOrCreateWorkDaySessionForToday returns today's Work Day session,
// creating or re-opening it as needed. The local calendar day has at most
// one Work Day row: a session stopped earlier today is re-opened (end
// timestamp cleared) instead of duplicated, so the day's total lives in a
// single row. Sessions that cross midnight belong to the day they started.
func GetOrCreateWorkDaySessionForToday() (*models.Session, error) {
	task, err := EnsureReservedTask(models.WorkDayTaskName)
	if err != nil {
		return nil, err
	}

	dayStart, dayEnd := timeutil.DayRange(time.Now())

	var session models.Session
	err = withTask(DB).
		Where("task_id = ? AND started_at >= ? AND started_at < ?", task.ID, dayStart, dayEnd).
		Order("started_at DESC, id DESC").
		First(&session).Error
	if err == nil {
		if session.IsRunning() {
			return &session, nil
		}
		// Re-open rather than create a second row for the same day
		session.FinishedAt = nil
		session.DurationSeconds = nil
		if err := DB.Save(&session).Error; err != nil {
			return nil, err
		}
		return &session, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	session = models.Session{
		TaskID:    task.ID,
		StartedAt: nowUTC(),
	}
	if err := DB.Create(&session).Error; err != nil {
		return nil, err
	}
	session.Task = *task

	return &session, nil
}

// WorkDayAutoStartDue reports whether the expected_start_time preference is
// set and the local clock has passed it today.
func WorkDayAutoStartDue(now time.Time) (bool, error) {
	value, err := GetSetting(models.SettingExpectedStartTime)
	if err != nil || value == "" {
		return false, err
	}

	expected, err := time.Parse("15:04", value)
	if err != nil {
		// An unparseable preference never auto-starts anything
		return false, nil
	}

	local := now.Local()
	cutoff := time.Date(local.Year(), local.Month(), local.Day(),
		expected.Hour(), expected.Minute(), 0, 0, local.Location())
	return !local.Before(cutoff), nil
}

// ClearHistoryRange deletes sessions and context switches in the half-open
// UTC interval [start, end). Returns the number of sessions removed.
func ClearHistoryRange(start, end time.Time) (int64, error) {
	var count int64
	err := DB.Model(&models.Session{}).
		Where("started_at >= ? AND started_at < ?", start.UTC(), end.UTC()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	err = DB.Where("timestamp >= ? AND timestamp < ?", start.UTC(), end.UTC()).
		Delete(&models.ContextSwitch{}).Error
	if err != nil {
		return 0, err
	}

	err = DB.Where("started_at >= ? AND started_at < ?", start.UTC(), end.UTC()).
		Delete(&models.Session{}).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// ClearAllHistory deletes every session and context switch. Tasks and
// settings are kept. Returns the number of sessions removed.
func ClearAllHistory() (int64, error) {
	var count int64
	if err := DB.Model(&models.Session{}).Count(&count).Error; err != nil {
		return 0, err
	}

	if err := DB.Where("1 = 1").Delete(&models.ContextSwitch{}).Error; err != nil {
		return 0, err
	}
	if err := DB.Where("1 = 1").Delete(&models.Session{}).Error; err != nil {
		return 0, err
	}

	return count, nil
}
