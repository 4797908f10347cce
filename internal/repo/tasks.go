package repo

import (
	"time"

	"github.com/google/uuid"
	"github.com/hollis/boardwalk/internal/model"
)

// TaskRepository manages tasks nested inside the project collection.
// It holds no state of its own; every task lives in its owning
// project and every mutation persists through the project repository.
type TaskRepository struct {
	projects *ProjectRepository
}

// NewTaskRepository wraps a project repository
func NewTaskRepository(projects *ProjectRepository) *TaskRepository {
	return &TaskRepository{projects: projects}
}

// CreateTask appends a task to the given project's list. Creating a
// task under a nonexistent project reports ErrNotFound rather than
// silently dropping the task.
func (r *TaskRepository) CreateTask(projectID, name, description string, status model.Status, priority model.Priority, dueDate *time.Time, assignee string) (*model.Task, error) {
	p := r.projects.find(projectID)
	if p == nil {
		return nil, ErrNotFound
	}

	t := model.Task{
		ID:          uuid.New().String(),
		ProjectID:   projectID,
		Name:        name,
		Description: description,
		Status:      status,
		Priority:    priority,
		DueDate:     dueDate,
		Assignee:    assignee,
		CreatedAt:   time.Now(),
	}
	t.SyncCompleted()

	p.Tasks = append(p.Tasks, t)
	if err := r.projects.persist(); err != nil {
		return nil, err
	}

	created := t
	return &created, nil
}

// TaskUpdate is a partial update; nil fields are left unchanged.
// ClearDueDate removes the due date regardless of the DueDate field.
type TaskUpdate struct {
	Name         *string
	Description  *string
	Assignee     *string
	Status       *model.Status
	Priority     *model.Priority
	DueDate      *time.Time
	ClearDueDate bool
}

// UpdateTask overwrites the supplied fields of a task. The completed
// flag is recomputed from the effective status even when the update
// does not touch status, so it can never drift.
func (r *TaskRepository) UpdateTask(projectID, taskID string, upd TaskUpdate) (*model.Task, error) {
	p := r.projects.find(projectID)
	if p == nil {
		return nil, ErrNotFound
	}
	t := p.FindTask(taskID)
	if t == nil {
		return nil, ErrNotFound
	}

	if upd.Name != nil {
		t.Name = *upd.Name
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}
	if upd.Assignee != nil {
		t.Assignee = *upd.Assignee
	}
	if upd.Status != nil {
		t.Status = *upd.Status
	}
	if upd.Priority != nil {
		t.Priority = *upd.Priority
	}
	if upd.ClearDueDate {
		t.DueDate = nil
	} else if upd.DueDate != nil {
		d := *upd.DueDate
		t.DueDate = &d
	}
	t.SyncCompleted()

	if err := r.projects.persist(); err != nil {
		return nil, err
	}

	updated := *t
	return &updated, nil
}

// DeleteTask removes a task from its project's list. Absent project
// or task ids are a no-op, not an error.
func (r *TaskRepository) DeleteTask(projectID, taskID string) error {
	p := r.projects.find(projectID)
	if p == nil {
		return nil
	}
	for i := range p.Tasks {
		if p.Tasks[i].ID == taskID {
			p.Tasks = append(p.Tasks[:i], p.Tasks[i+1:]...)
			return r.projects.persist()
		}
	}
	return nil
}

// GetTask returns a copy of the task with the given ids
func (r *TaskRepository) GetTask(projectID, taskID string) (*model.Task, bool) {
	p := r.projects.find(projectID)
	if p == nil {
		return nil, false
	}
	t := p.FindTask(taskID)
	if t == nil {
		return nil, false
	}
	cp := *t
	return &cp, true
}

// TaskWithProject annotates a task with its owning project's name.
// The name is a view-only denormalization, never stored.
type TaskWithProject struct {
	model.Task
	ProjectName string
}

// AllTasks flattens every project's task list in project-then-task
// insertion order.
func (r *TaskRepository) AllTasks() []TaskWithProject {
	var out []TaskWithProject
	for i := range r.projects.projects {
		p := &r.projects.projects[i]
		for j := range p.Tasks {
			out = append(out, TaskWithProject{Task: p.Tasks[j], ProjectName: p.Name})
		}
	}
	return out
}

// TasksByStatus filters AllTasks by exact, case-sensitive status match
func (r *TaskRepository) TasksByStatus(status model.Status) []TaskWithProject {
	var out []TaskWithProject
	for _, t := range r.AllTasks() {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// OverdueTasks filters AllTasks to tasks past their due date,
// evaluated against the clock at call time.
func (r *TaskRepository) OverdueTasks() []TaskWithProject {
	var out []TaskWithProject
	for _, t := range r.AllTasks() {
		if t.IsOverdue() {
			out = append(out, t)
		}
	}
	return out
}

// PendingTasks filters AllTasks to tasks that are not done
func (r *TaskRepository) PendingTasks() []TaskWithProject {
	var out []TaskWithProject
	for _, t := range r.AllTasks() {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// TaskStats holds aggregate counts over all tasks across all projects
type TaskStats struct {
	Pending    int
	Overdue    int
	Completed  int
	ToDo       int
	InProgress int
	Total      int
}

// Stats aggregates task counts across the whole collection
func (r *TaskRepository) Stats() TaskStats {
	var s TaskStats
	for _, t := range r.AllTasks() {
		s.Total++
		if !t.Completed {
			s.Pending++
		}
		if t.IsOverdue() {
			s.Overdue++
		}
		switch t.Status {
		case model.StatusTodo:
			s.ToDo++
		case model.StatusInProgress:
			s.InProgress++
		case model.StatusDone:
			s.Completed++
		}
	}
	return s
}
