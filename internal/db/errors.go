package db

import "errors"

// Store error taxonomy. Validation and not-found errors are surfaced to the
// user synchronously; ErrSessionRunning is benign and comes back together
// with the session that is already running.
var (
	ErrEmptyTaskName   = errors.New("task name is empty")
	ErrTaskNameTooLong = errors.New("task name is too long")
	ErrTaskNameTaken   = errors.New("a task with that name already exists")
	ErrTaskReserved    = errors.New("task is reserved")
	ErrTaskNotFound    = errors.New("task not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionRunning  = errors.New("a session is already running for this task")
	ErrSchemaTooNew    = errors.New("database was created by a newer version")
	ErrLocked          = errors.New("another instance is already running")
)
