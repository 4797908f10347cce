package model

import (
	"math"
	"time"
)

// ProjectStatus represents the current state of a project
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "Active"
	ProjectCompleted ProjectStatus = "Completed"
	ProjectOnHold    ProjectStatus = "On Hold"
)

// Project represents a collection of tasks tracked together.
// A project exclusively owns its tasks; deleting a project deletes
// every task in it.
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Status      ProjectStatus `json:"status"`
	Priority    Priority      `json:"priority"`
	Deadline    *time.Time    `json:"deadline,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	Tasks       []Task        `json:"tasks"`
}

// Progress returns the percentage of done tasks, rounded to the
// nearest integer. A project with no tasks is at 0.
func (p *Project) Progress() int {
	if len(p.Tasks) == 0 {
		return 0
	}
	return int(math.Round(float64(p.DoneCount()) * 100 / float64(len(p.Tasks))))
}

// DoneCount returns the number of done tasks
func (p *Project) DoneCount() int {
	count := 0
	for i := range p.Tasks {
		if p.Tasks[i].Status == StatusDone {
			count++
		}
	}
	return count
}

// FindTask returns a pointer to the task with the given id, or nil
func (p *Project) FindTask(taskID string) *Task {
	for i := range p.Tasks {
		if p.Tasks[i].ID == taskID {
			return &p.Tasks[i]
		}
	}
	return nil
}
