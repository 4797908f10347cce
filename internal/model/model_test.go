package model

import (
	"testing"
	"time"
)

func taskWithStatus(status Status) Task {
	t := Task{ID: "t", Status: status}
	t.SyncCompleted()
	return t
}

func TestProjectProgress(t *testing.T) {
	tests := []struct {
		name  string
		tasks []Task
		want  int
	}{
		{"no tasks", nil, 0},
		{"none done", []Task{taskWithStatus(StatusTodo)}, 0},
		{"all done", []Task{taskWithStatus(StatusDone), taskWithStatus(StatusDone)}, 100},
		{"one third rounds to 33", []Task{
			taskWithStatus(StatusDone), taskWithStatus(StatusTodo), taskWithStatus(StatusTodo),
		}, 33},
		{"two thirds rounds to 67", []Task{
			taskWithStatus(StatusDone), taskWithStatus(StatusDone), taskWithStatus(StatusTodo),
		}, 67},
		{"half rounds to 50", []Task{
			taskWithStatus(StatusDone), taskWithStatus(StatusInProgress),
		}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Project{ID: "p", Tasks: tt.tasks}
			if got := p.Progress(); got != tt.want {
				t.Errorf("Progress() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSyncCompleted(t *testing.T) {
	task := Task{Status: StatusDone}
	task.SyncCompleted()
	if !task.Completed {
		t.Error("Expected completed to be true for done task")
	}

	task.Status = StatusInProgress
	task.SyncCompleted()
	if task.Completed {
		t.Error("Expected completed to be false after leaving done")
	}

	// A stored completed flag must never survive a recompute
	task = Task{Status: StatusTodo, Completed: true}
	task.SyncCompleted()
	if task.Completed {
		t.Error("Expected stale completed flag to be recomputed from status")
	}
}

func TestIsOverdue(t *testing.T) {
	yesterday := time.Now().AddDate(0, 0, -1)
	tomorrow := time.Now().AddDate(0, 0, 1)

	task := Task{Status: StatusTodo, DueDate: &yesterday}
	if !task.IsOverdue() {
		t.Error("Expected task due yesterday to be overdue")
	}

	// Completed tasks are never overdue regardless of date
	task.Status = StatusDone
	task.SyncCompleted()
	if task.IsOverdue() {
		t.Error("Expected done task to never be overdue")
	}

	task = Task{Status: StatusTodo, DueDate: &tomorrow}
	if task.IsOverdue() {
		t.Error("Expected task due tomorrow to not be overdue")
	}

	task = Task{Status: StatusTodo}
	if task.IsOverdue() {
		t.Error("Expected task without due date to not be overdue")
	}
}

func TestIsDueOn(t *testing.T) {
	due := time.Date(2026, time.March, 14, 15, 30, 0, 0, time.Local)
	task := Task{DueDate: &due}

	sameDay := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.Local)
	if !task.IsDueOn(sameDay) {
		t.Error("Expected task to be due on the same calendar day regardless of time")
	}

	nextDay := sameDay.AddDate(0, 0, 1)
	if task.IsDueOn(nextDay) {
		t.Error("Expected task to not be due the next day")
	}

	if (&Task{}).IsDueOn(sameDay) {
		t.Error("Expected task without due date to not be due on any day")
	}
}
