package db

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/ctxtimer/ctt/internal/models"
	"github.com/ctxtimer/ctt/internal/timeutil"
)

func setupDB(t *testing.T) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	if err := InitializeAt(dbPath); err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() {
		if err := Close(); err != nil {
			t.Errorf("Failed to close database: %v", err)
		}
	})
}

func countSwitches(t *testing.T) int64 {
	t.Helper()
	var count int64
	if err := DB.Model(&models.ContextSwitch{}).Count(&count).Error; err != nil {
		t.Fatalf("Failed to count switches: %v", err)
	}
	return count
}

func countSessions(t *testing.T) int64 {
	t.Helper()
	var count int64
	if err := DB.Model(&models.Session{}).Count(&count).Error; err != nil {
		t.Fatalf("Failed to count sessions: %v", err)
	}
	return count
}

func TestCreateTaskValidation(t *testing.T) {
	setupDB(t)

	if _, err := CreateTask("   ", ""); !errors.Is(err, ErrEmptyTaskName) {
		t.Errorf("blank name: got %v, want ErrEmptyTaskName", err)
	}

	long := make([]rune, 101)
	for i := range long {
		long[i] = 'x'
	}
	if _, err := CreateTask(string(long), ""); !errors.Is(err, ErrTaskNameTooLong) {
		t.Errorf("over-long name: got %v, want ErrTaskNameTooLong", err)
	}

	if _, err := CreateTask("Deep Work", "#3498db"); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if _, err := CreateTask("Deep Work", ""); !errors.Is(err, ErrTaskNameTaken) {
		t.Errorf("duplicate name: got %v, want ErrTaskNameTaken", err)
	}

	if _, err := CreateTask(models.WorkDayTaskName, ""); !errors.Is(err, ErrTaskReserved) {
		t.Errorf("reserved name: got %v, want ErrTaskReserved", err)
	}
}

func TestReservedTasksProtected(t *testing.T) {
	setupDB(t)

	task, err := EnsureReservedTask(models.WorkDayTaskName)
	if err != nil {
		t.Fatalf("EnsureReservedTask: %v", err)
	}

	if err := DeleteTask(task.ID); !errors.Is(err, ErrTaskReserved) {
		t.Errorf("delete reserved: got %v, want ErrTaskReserved", err)
	}

	newName := "My Day"
	if _, err := UpdateTask(task.ID, &newName, nil); !errors.Is(err, ErrTaskReserved) {
		t.Errorf("rename reserved: got %v, want ErrTaskReserved", err)
	}

	// Recoloring a reserved task is fine
	color := "#1abc9c"
	updated, err := UpdateTask(task.ID, nil, &color)
	if err != nil {
		t.Fatalf("recolor reserved: %v", err)
	}
	if updated.Color != color {
		t.Errorf("color = %q, want %q", updated.Color, color)
	}
}

func TestGetTasksSortedByName(t *testing.T) {
	setupDB(t)

	for _, name := range []string{"Writing", "Email", "Meetings"} {
		if _, err := CreateTask(name, ""); err != nil {
			t.Fatalf("CreateTask(%s): %v", name, err)
		}
	}

	tasks, err := GetTasks()
	if err != nil {
		t.Fatalf("GetTasks: %v", err)
	}
	want := []string{"Email", "Meetings", "Writing"}
	if len(tasks) != len(want) {
		t.Fatalf("got %d tasks, want %d", len(tasks), len(want))
	}
	for i, name := range want {
		if tasks[i].Name != name {
			t.Errorf("task %d = %q, want %q", i, tasks[i].Name, name)
		}
	}
}

func TestStartSessionAlreadyRunning(t *testing.T) {
	setupDB(t)

	task, err := CreateTask("Deep Work", "")
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	first, err := StartSession(task.ID)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	// Second start is benign: same session back, no new rows, no switch
	again, err := StartSession(task.ID)
	if !errors.Is(err, ErrSessionRunning) {
		t.Fatalf("second start: got %v, want ErrSessionRunning", err)
	}
	if again == nil || again.ID != first.ID {
		t.Errorf("second start returned a different session")
	}
	if got := countSessions(t); got != 1 {
		t.Errorf("got %d sessions, want 1", got)
	}
	if got := countSwitches(t); got != 0 {
		t.Errorf("got %d context switches, want 0", got)
	}
}

func TestStopSessionIdempotent(t *testing.T) {
	setupDB(t)

	task, err := CreateTask("Deep Work", "")
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	session, err := StartSession(task.ID)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	stopped, err := StopSession(session.ID)
	if err != nil {
		t.Fatalf("StopSession: %v", err)
	}
	if stopped.FinishedAt == nil || stopped.DurationSeconds == nil {
		t.Fatal("stopped session missing end timestamp or duration")
	}

	finishedAt := *stopped.FinishedAt
	duration := *stopped.DurationSeconds

	// Stopping again succeeds and changes nothing
	again, err := StopSession(session.ID)
	if err != nil {
		t.Fatalf("second StopSession: %v", err)
	}
	if !again.FinishedAt.Equal(finishedAt) || *again.DurationSeconds != duration {
		t.Error("second stop modified the session")
	}

	if _, err := StopSession(9999); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("unknown session: got %v, want ErrSessionNotFound", err)
	}
}

func TestContextSwitchLogging(t *testing.T) {
	setupDB(t)

	taskA, err := CreateTask("Task A", "")
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	taskB, err := CreateTask("Task B", "")
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	// First timer of the day: no switch
	if _, err := StartSession(taskB.ID); err != nil {
		t.Fatalf("StartSession(B): %v", err)
	}
	if got := countSwitches(t); got != 0 {
		t.Fatalf("got %d switches after first start, want 0", got)
	}

	// Starting A while B runs logs exactly one switch, from=B to=A
	if _, err := StartSession(taskA.ID); err != nil {
		t.Fatalf("StartSession(A): %v", err)
	}

	var switches []models.ContextSwitch
	if err := DB.Find(&switches).Error; err != nil {
		t.Fatalf("Failed to load switches: %v", err)
	}
	if len(switches) != 1 {
		t.Fatalf("got %d switches, want 1", len(switches))
	}
	sw := switches[0]
	if sw.FromTaskID == nil || *sw.FromTaskID != taskB.ID {
		t.Errorf("switch from = %v, want %d", sw.FromTaskID, taskB.ID)
	}
	if sw.ToTaskID != taskA.ID {
		t.Errorf("switch to = %d, want %d", sw.ToTaskID, taskA.ID)
	}

	// Starting A again while A runs: zero new sessions, zero new switches
	if _, err := StartSession(taskA.ID); !errors.Is(err, ErrSessionRunning) {
		t.Fatalf("restart of A: got %v, want ErrSessionRunning", err)
	}
	if got := countSwitches(t); got != 1 {
		t.Errorf("got %d switches after no-op restart, want 1", got)
	}
	if got := countSessions(t); got != 2 {
		t.Errorf("got %d sessions after no-op restart, want 2", got)
	}
}

func TestContextSwitchFromMostRecent(t *testing.T) {
	setupDB(t)

	var ids []uint
	for _, name := range []string{"Task A", "Task B", "Task C"} {
		task, err := CreateTask(name, "")
		if err != nil {
			t.Fatalf("CreateTask(%s): %v", name, err)
		}
		ids = append(ids, task.ID)
	}

	// Start A, then B, then C with A and B still running. C's switch
	// comes from B, the most recently started timer, never one per
	// active session.
	for _, id := range ids {
		if _, err := StartSession(id); err != nil {
			t.Fatalf("StartSession(%d): %v", id, err)
		}
	}

	var switches []models.ContextSwitch
	if err := DB.Order("id ASC").Find(&switches).Error; err != nil {
		t.Fatalf("Failed to load switches: %v", err)
	}
	if len(switches) != 2 {
		t.Fatalf("got %d switches, want 2", len(switches))
	}
	last := switches[1]
	if last.FromTaskID == nil || *last.FromTaskID != ids[1] {
		t.Errorf("switch from = %v, want %d (most recently started)", last.FromTaskID, ids[1])
	}
	if last.ToTaskID != ids[2] {
		t.Errorf("switch to = %d, want %d", last.ToTaskID, ids[2])
	}
}

func TestWorkDayConsolidation(t *testing.T) {
	setupDB(t)

	first, err := GetOrCreateWorkDaySessionForToday()
	if err != nil {
		t.Fatalf("GetOrCreateWorkDaySessionForToday: %v", err)
	}
	if !first.IsRunning() {
		t.Fatal("new work day session should be running")
	}

	// Same day, still running: same row back
	second, err := GetOrCreateWorkDaySessionForToday()
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second call returned session %d, want %d", second.ID, first.ID)
	}

	// Stop, then start the day again: same row re-opened, not duplicated
	if _, err := StopSession(first.ID); err != nil {
		t.Fatalf("StopSession: %v", err)
	}
	third, err := GetOrCreateWorkDaySessionForToday()
	if err != nil {
		t.Fatalf("third call: %v", err)
	}
	if third.ID != first.ID {
		t.Errorf("re-opened session %d, want %d", third.ID, first.ID)
	}
	if !third.IsRunning() {
		t.Error("re-opened session should have its end timestamp cleared")
	}
	if third.DurationSeconds != nil {
		t.Error("re-opened session should have its duration cleared")
	}
	if got := countSessions(t); got != 1 {
		t.Errorf("got %d work day sessions, want 1", got)
	}

	// Work day starts never log switches
	if got := countSwitches(t); got != 0 {
		t.Errorf("got %d switches from work day starts, want 0", got)
	}
}

func TestStopAllSkipsWorkDay(t *testing.T) {
	setupDB(t)

	task, err := CreateTask("Deep Work", "")
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if _, err := GetOrCreateWorkDaySessionForToday(); err != nil {
		t.Fatalf("GetOrCreateWorkDaySessionForToday: %v", err)
	}
	if _, err := StartSession(task.ID); err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	stopped, err := StopAllSessions(true)
	if err != nil {
		t.Fatalf("StopAllSessions: %v", err)
	}
	if len(stopped) != 1 || stopped[0].TaskID != task.ID {
		t.Fatalf("stopped %d sessions, want just the task timer", len(stopped))
	}

	active, err := GetActiveSessions()
	if err != nil {
		t.Fatalf("GetActiveSessions: %v", err)
	}
	if len(active) != 1 || active[0].TaskDisplayName() != models.WorkDayTaskName {
		t.Error("work day session should still be running")
	}
}

func TestSoftDeleteKeepsSessions(t *testing.T) {
	setupDB(t)

	task, err := CreateTask("Old Project", "#e74c3c")
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	session, err := StartSession(task.ID)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if _, err := StopSession(session.ID); err != nil {
		t.Fatalf("StopSession: %v", err)
	}

	if err := DeleteTask(task.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}

	// Gone from the task list
	tasks, err := GetTasks()
	if err != nil {
		t.Fatalf("GetTasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("got %d tasks after delete, want 0", len(tasks))
	}
	if _, err := GetTaskByID(task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("GetTaskByID after delete: got %v, want ErrTaskNotFound", err)
	}

	// History still queryable with the last-known name
	dayStart, dayEnd := timeutil.DayRange(time.Now())
	sessions, err := GetSessionsInRange(dayStart, dayEnd)
	if err != nil {
		t.Fatalf("GetSessionsInRange: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("got %d historical sessions, want 1", len(sessions))
	}
	if got := sessions[0].TaskDisplayName(); got != "Old Project" {
		t.Errorf("historical session task name = %q, want last-known name", got)
	}

	// The freed name can be reused
	if _, err := CreateTask("Old Project", ""); err != nil {
		t.Errorf("reusing a deleted task's name: %v", err)
	}
}

func TestSessionsInRangeHalfOpen(t *testing.T) {
	setupDB(t)

	task, err := CreateTask("Deep Work", "")
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	base := time.Date(2026, time.January, 11, 10, 0, 0, 0, time.UTC)
	for _, offset := range []time.Duration{-time.Hour, 0, time.Hour, 3 * time.Hour} {
		end := base.Add(offset + 30*time.Minute)
		dur := 1800
		s := models.Session{
			TaskID:          task.ID,
			StartedAt:       base.Add(offset),
			FinishedAt:      &end,
			DurationSeconds: &dur,
		}
		if err := DB.Create(&s).Error; err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
	}

	// [base, base+3h) includes starts at base and base+1h, excludes
	// base-1h and the boundary at base+3h
	sessions, err := GetSessionsInRange(base, base.Add(3*time.Hour))
	if err != nil {
		t.Fatalf("GetSessionsInRange: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(sessions))
	}
	if !sessions[0].StartedAt.Before(sessions[1].StartedAt) {
		t.Error("sessions not ordered by start time ascending")
	}
}

func TestSettings(t *testing.T) {
	setupDB(t)

	value, err := GetSetting("missing_key")
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if value != "" {
		t.Errorf("unset key = %q, want empty", value)
	}

	if err := SetSetting(models.SettingExpectedStartTime, "09:00"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	value, err = GetSetting(models.SettingExpectedStartTime)
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if value != "09:00" {
		t.Errorf("got %q, want 09:00", value)
	}

	// Upsert keeps no history
	if err := SetSetting(models.SettingExpectedStartTime, "10:30"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	value, _ = GetSetting(models.SettingExpectedStartTime)
	if value != "10:30" {
		t.Errorf("got %q after upsert, want 10:30", value)
	}

	var count int64
	if err := DB.Model(&models.Setting{}).Where("key = ?", models.SettingExpectedStartTime).Count(&count).Error; err != nil {
		t.Fatalf("count settings: %v", err)
	}
	if count != 1 {
		t.Errorf("got %d rows for one key, want 1", count)
	}
}

func TestWorkDayAutoStartDue(t *testing.T) {
	setupDB(t)

	// No preference: never due
	due, err := WorkDayAutoStartDue(time.Now())
	if err != nil {
		t.Fatalf("WorkDayAutoStartDue: %v", err)
	}
	if due {
		t.Error("auto-start due without a preference")
	}

	if err := SetSetting(models.SettingExpectedStartTime, "09:00"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}

	morning := time.Date(2026, time.January, 12, 8, 0, 0, 0, time.Local)
	if due, _ := WorkDayAutoStartDue(morning); due {
		t.Error("auto-start due before the expected start time")
	}
	afternoon := time.Date(2026, time.January, 12, 14, 0, 0, 0, time.Local)
	if due, _ := WorkDayAutoStartDue(afternoon); !due {
		t.Error("auto-start not due after the expected start time")
	}

	// A garbage preference never auto-starts
	if err := SetSetting(models.SettingExpectedStartTime, "not-a-time"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	if due, _ := WorkDayAutoStartDue(afternoon); due {
		t.Error("auto-start due with an unparseable preference")
	}
}

func TestClearHistoryRange(t *testing.T) {
	setupDB(t)

	taskA, err := CreateTask("Task A", "")
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	taskB, err := CreateTask("Task B", "")
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	if _, err := StartSession(taskA.ID); err != nil {
		t.Fatalf("StartSession(A): %v", err)
	}
	if _, err := StartSession(taskB.ID); err != nil {
		t.Fatalf("StartSession(B): %v", err)
	}

	dayStart, dayEnd := timeutil.DayRange(time.Now())
	count, err := ClearHistoryRange(dayStart, dayEnd)
	if err != nil {
		t.Fatalf("ClearHistoryRange: %v", err)
	}
	if count != 2 {
		t.Errorf("cleared %d sessions, want 2", count)
	}
	if got := countSessions(t); got != 0 {
		t.Errorf("%d sessions left, want 0", got)
	}
	if got := countSwitches(t); got != 0 {
		t.Errorf("%d switches left, want 0", got)
	}

	// Tasks survive a history wipe
	tasks, err := GetTasks()
	if err != nil {
		t.Fatalf("GetTasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("got %d tasks after clear, want 2", len(tasks))
	}
}
