package model

import (
	"time"
)

// Status represents the current state of a task
type Status string

const (
	StatusTodo       Status = "To Do"
	StatusInProgress Status = "In Progress"
	StatusDone       Status = "Done"
)

// Priority represents task or project priority level
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Task represents a single unit of work inside a project.
// A task never exists outside its owning project; ProjectID is a
// lookup key back to the owner, not an ownership edge.
type Task struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"projectId"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Assignee    string     `json:"assignee,omitempty"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// SyncCompleted recomputes the stored Completed flag from Status.
// The flag survives serialization for schema compatibility but is
// never trusted from input: every load and mutation path calls this.
func (t *Task) SyncCompleted() {
	t.Completed = t.Status == StatusDone
}

// IsOverdue returns true if the task has a due date strictly in the
// past and is not done. Completed tasks are never overdue.
func (t *Task) IsOverdue() bool {
	if t.DueDate == nil || t.Status == StatusDone {
		return false
	}
	return t.DueDate.Before(time.Now())
}

// IsDueOn returns true if the task's due date falls on the same
// calendar day as the given date (date component only).
func (t *Task) IsDueOn(date time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	y1, m1, d1 := t.DueDate.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// PriorityWeight returns a numeric weight for sorting by priority
func (t *Task) PriorityWeight() int {
	switch t.Priority {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 2
	}
}
