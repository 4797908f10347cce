package repo

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hollis/boardwalk/internal/model"
	"github.com/hollis/boardwalk/internal/store"
)

// ErrNotFound is returned when an operation references a project or
// task id that does not exist. Callers may surface or ignore it; it
// is never a crash condition.
var ErrNotFound = errors.New("not found")

// ProjectRepository owns the project collection. It loads the whole
// collection once at construction and re-serializes it to the gateway
// after every mutation. Iteration order is insertion order.
type ProjectRepository struct {
	gw       store.Gateway
	projects []model.Project
}

// NewProjectRepository loads the persisted collection from the gateway
func NewProjectRepository(gw store.Gateway) (*ProjectRepository, error) {
	r := &ProjectRepository{gw: gw}

	raw, ok, err := gw.Load(store.ProjectsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	if !ok {
		return r, nil
	}

	if err := json.Unmarshal(raw, &r.projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", err)
	}

	// Stored completed flags are never trusted
	for i := range r.projects {
		syncProject(&r.projects[i])
	}

	return r, nil
}

// syncProject recomputes every derived stored field of a project's tasks
func syncProject(p *model.Project) {
	if p.Tasks == nil {
		p.Tasks = []model.Task{}
	}
	for i := range p.Tasks {
		p.Tasks[i].ProjectID = p.ID
		p.Tasks[i].SyncCompleted()
	}
}

// persist re-serializes the full collection and saves it
func (r *ProjectRepository) persist() error {
	raw, err := json.Marshal(r.projects)
	if err != nil {
		return fmt.Errorf("failed to encode projects: %w", err)
	}
	if err := r.gw.Save(store.ProjectsKey, raw); err != nil {
		return fmt.Errorf("failed to save projects: %w", err)
	}
	return nil
}

// find returns a pointer to the stored project with the given id
func (r *ProjectRepository) find(id string) *model.Project {
	for i := range r.projects {
		if r.projects[i].ID == id {
			return &r.projects[i]
		}
	}
	return nil
}

// CreateProject appends a new project with an empty task list
func (r *ProjectRepository) CreateProject(name, description string, status model.ProjectStatus, priority model.Priority, deadline *time.Time) (*model.Project, error) {
	p := model.Project{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Status:      status,
		Priority:    priority,
		Deadline:    deadline,
		CreatedAt:   time.Now(),
		Tasks:       []model.Task{},
	}

	r.projects = append(r.projects, p)
	if err := r.persist(); err != nil {
		return nil, err
	}

	created := p
	return &created, nil
}

// ProjectUpdate is a partial update; nil fields are left unchanged.
// ClearDeadline removes the deadline regardless of the Deadline field.
type ProjectUpdate struct {
	Name          *string
	Description   *string
	Status        *model.ProjectStatus
	Priority      *model.Priority
	Deadline      *time.Time
	ClearDeadline bool
}

// UpdateProject overwrites the supplied fields of a project
func (r *ProjectRepository) UpdateProject(id string, upd ProjectUpdate) (*model.Project, error) {
	p := r.find(id)
	if p == nil {
		return nil, ErrNotFound
	}

	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Status != nil {
		p.Status = *upd.Status
	}
	if upd.Priority != nil {
		p.Priority = *upd.Priority
	}
	if upd.ClearDeadline {
		p.Deadline = nil
	} else if upd.Deadline != nil {
		d := *upd.Deadline
		p.Deadline = &d
	}

	if err := r.persist(); err != nil {
		return nil, err
	}

	updated := *p
	return &updated, nil
}

// DeleteProject removes a project and, by ownership, all of its
// tasks. Deleting an absent id is a no-op, not an error.
func (r *ProjectRepository) DeleteProject(id string) error {
	for i := range r.projects {
		if r.projects[i].ID == id {
			r.projects = append(r.projects[:i], r.projects[i+1:]...)
			return r.persist()
		}
	}
	return nil
}

// GetProject returns a copy of the project with the given id
func (r *ProjectRepository) GetProject(id string) (*model.Project, bool) {
	p := r.find(id)
	if p == nil {
		return nil, false
	}
	cp := *p
	cp.Tasks = append([]model.Task{}, p.Tasks...)
	return &cp, true
}

// Projects returns the collection in insertion order
func (r *ProjectRepository) Projects() []model.Project {
	out := make([]model.Project, len(r.projects))
	copy(out, r.projects)
	return out
}

// ProjectStats holds counts of projects by status. Statuses outside
// the enumerated set count toward Total only.
type ProjectStats struct {
	Total     int
	Active    int
	Completed int
	OnHold    int
}

// Stats aggregates project counts by status
func (r *ProjectRepository) Stats() ProjectStats {
	s := ProjectStats{Total: len(r.projects)}
	for i := range r.projects {
		switch r.projects[i].Status {
		case model.ProjectActive:
			s.Active++
		case model.ProjectCompleted:
			s.Completed++
		case model.ProjectOnHold:
			s.OnHold++
		}
	}
	return s
}

// ReplaceAll swaps in a whole new collection (used by import) and
// persists it. Derived task fields are recomputed, never trusted.
func (r *ProjectRepository) ReplaceAll(projects []model.Project) error {
	for i := range projects {
		syncProject(&projects[i])
	}

	prev := r.projects
	r.projects = projects
	if err := r.persist(); err != nil {
		r.projects = prev
		return err
	}
	return nil
}
