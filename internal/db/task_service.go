package db

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/ctxtimer/ctt/internal/models"
)

// maxTaskNameLen keeps task names printable in report columns.
const maxTaskNameLen = 100

// CreateTask creates a new task. Names are unique among active tasks; a
// soft-deleted task's name may be reused.
func CreateTask(name, color string) (*models.Task, error) {
	name = strings.TrimSpace(name)
	if err := validateTaskName(name); err != nil {
		return nil, err
	}

	task := models.Task{
		Name:  name,
		Color: color,
	}

	if err := DB.Create(&task).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// validateTaskName rejects empty, over-long and duplicate names.
func validateTaskName(name string) error {
	if name == "" {
		return ErrEmptyTaskName
	}
	if utf8.RuneCountInString(name) > maxTaskNameLen {
		return fmt.Errorf("%w (max %d characters)", ErrTaskNameTooLong, maxTaskNameLen)
	}
	if models.IsReservedTaskName(name) {
		return fmt.Errorf("%w: %q is managed automatically", ErrTaskReserved, name)
	}

	var count int64
	if err := DB.Model(&models.Task{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %q", ErrTaskNameTaken, name)
	}
	return nil
}

// GetTaskByID retrieves an active task by ID
func GetTaskByID(id uint) (*models.Task, error) {
	var task models.Task

	err := DB.First(&task, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: #%d", ErrTaskNotFound, id)
		}
		return nil, err
	}

	return &task, nil
}

// GetTasks retrieves all active tasks ordered alphabetically by name
func GetTasks() ([]models.Task, error) {
	var tasks []models.Task

	if err := DB.Order("name ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// UpdateTask renames and/or recolors a task. Nil fields are left untouched.
func UpdateTask(id uint, name, color *string) (*models.Task, error) {
	task, err := GetTaskByID(id)
	if err != nil {
		return nil, err
	}
	if name != nil && task.IsReserved() {
		return nil, fmt.Errorf("%w: %q cannot be renamed", ErrTaskReserved, task.Name)
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed != task.Name {
			if err := validateTaskName(trimmed); err != nil {
				return nil, err
			}
			task.Name = trimmed
		}
	}
	if color != nil {
		task.Color = *color
	}

	if err := DB.Save(task).Error; err != nil {
		return nil, err
	}

	return task, nil
}

// DeleteTask soft-deletes a task. Historical sessions keep referencing it
// and still resolve the last-known name and color.
func DeleteTask(id uint) error {
	task, err := GetTaskByID(id)
	if err != nil {
		return err
	}
	if task.IsReserved() {
		return fmt.Errorf("%w: %q cannot be deleted", ErrTaskReserved, task.Name)
	}

	return DB.Delete(task).Error
}

// EnsureReservedTask returns the reserved task with the given name,
// creating it with its default color on first use.
func EnsureReservedTask(name string) (*models.Task, error) {
	if !models.IsReservedTaskName(name) {
		return nil, fmt.Errorf("%w: %q is not a reserved task", ErrTaskNotFound, name)
	}

	var task models.Task
	err := DB.Where("name = ?", name).First(&task).Error
	if err == nil {
		return &task, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	color := models.WorkDayTaskColor
	switch name {
	case models.LunchTaskName:
		color = models.LunchTaskColor
	case models.BreakTaskName:
		color = models.BreakTaskColor
	}

	task = models.Task{Name: name, Color: color}
	if err := DB.Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}
