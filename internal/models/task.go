package models

import (
	"time"

	"gorm.io/gorm"
)

// Reserved task names backing the work-day controls. They are created on
// demand and hidden from the normal task list.
const (
	WorkDayTaskName = "Work Day"
	LunchTaskName   = "Lunch"
	BreakTaskName   = "Break"
)

// Default colors for the reserved tasks.
const (
	WorkDayTaskColor = "#2ecc71"
	LunchTaskColor   = "#f39c12"
	BreakTaskColor   = "#f39c12"
)

// Task represents something the user can run a timer against
type Task struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name  string `gorm:"not null;index" json:"name"`
	Color string `json:"color"` // optional display hint, e.g. "#3498db"

	// Relationships
	Sessions []Session `gorm:"foreignKey:TaskID" json:"sessions"`
}

// IsReserved reports whether the task backs one of the work-day controls.
func (t *Task) IsReserved() bool {
	return IsReservedTaskName(t.Name)
}

// IsReservedTaskName reports whether name is one of the reserved categories.
func IsReservedTaskName(name string) bool {
	switch name {
	case WorkDayTaskName, LunchTaskName, BreakTaskName:
		return true
	}
	return false
}
