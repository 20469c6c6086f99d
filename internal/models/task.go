package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// ErrInvalidStatus is returned for a status outside AllTaskStatuses.
var ErrInvalidStatus = errors.New("invalid task status")

// AllTaskStatuses lists every accepted status. Any status may move to any
// other; there is no ordering between them.
var AllTaskStatuses = []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusDone}

// ParseTaskStatus validates a raw status value.
func ParseTaskStatus(raw string) (TaskStatus, error) {
	for _, s := range AllTaskStatuses {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: status must be one of [%s]", ErrInvalidStatus, allowedStatuses())
}

func allowedStatuses() string {
	names := make([]string, len(AllTaskStatuses))
	for i, s := range AllTaskStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	ProjectID   string     `json:"project_id"`
	CreatedAt   time.Time  `json:"created_at"`
	Status      TaskStatus `json:"status"`
	AssigneeID  *string    `json:"assignee_id"`
}

// RecordID implements store.Record.
func (t Task) RecordID() string {
	return t.ID
}

// TaskPatch is a partial update for a task. Nil fields keep their current
// value.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	AssigneeID  *string
}

// Apply merges the patch into t and returns the result.
func (patch TaskPatch) Apply(t Task) Task {
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		desc := *patch.Description
		t.Description = &desc
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.AssigneeID != nil {
		assignee := *patch.AssigneeID
		t.AssigneeID = &assignee
	}
	return t
}
