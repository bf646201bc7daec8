package models

import "time"

// ContextSwitch records user attention moving from one running timer to a
// newly started one. FromTaskID is nil when no timer was running before.
// Rows are immutable after creation.
type ContextSwitch struct {
	ID uint `gorm:"primarykey" json:"id"`

	FromTaskID *uint     `json:"from_task_id"`
	ToTaskID   uint      `gorm:"not null" json:"to_task_id"`
	Timestamp  time.Time `gorm:"not null;index" json:"timestamp"`
}
