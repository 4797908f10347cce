package repo

import (
	"errors"
	"testing"
	"time"

	"github.com/hollis/boardwalk/internal/model"
	"github.com/hollis/boardwalk/internal/store"
)

func newTestRepos(t *testing.T) (*store.Memory, *ProjectRepository, *TaskRepository) {
	t.Helper()
	gw := store.NewMemory()
	projects, err := NewProjectRepository(gw)
	if err != nil {
		t.Fatalf("Failed to create project repository: %v", err)
	}
	return gw, projects, NewTaskRepository(projects)
}

func TestCreateProject(t *testing.T) {
	_, projects, _ := newTestRepos(t)

	p, err := projects.CreateProject("Launch", "Ship it", model.ProjectActive, model.PriorityHigh, nil)
	if err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}

	if p.ID == "" {
		t.Error("Expected a generated id")
	}
	if p.Tasks == nil || len(p.Tasks) != 0 {
		t.Error("Expected an empty, non-nil task list")
	}
	if p.Progress() != 0 {
		t.Errorf("Progress() = %d, want 0 for a new project", p.Progress())
	}

	// Two rapid creates must never collide on id
	p2, err := projects.CreateProject("Launch 2", "", model.ProjectActive, model.PriorityLow, nil)
	if err != nil {
		t.Fatalf("Failed to create second project: %v", err)
	}
	if p2.ID == p.ID {
		t.Error("Expected distinct ids for rapid successive creates")
	}
}

func TestProjectsInsertionOrder(t *testing.T) {
	_, projects, _ := newTestRepos(t)

	for _, name := range []string{"first", "second", "third"} {
		if _, err := projects.CreateProject(name, "", model.ProjectActive, model.PriorityMedium, nil); err != nil {
			t.Fatalf("Failed to create project %q: %v", name, err)
		}
	}

	all := projects.Projects()
	if len(all) != 3 {
		t.Fatalf("Projects() returned %d, want 3", len(all))
	}
	for i, want := range []string{"first", "second", "third"} {
		if all[i].Name != want {
			t.Errorf("Projects()[%d].Name = %q, want %q", i, all[i].Name, want)
		}
	}
}

func TestUpdateProjectPartial(t *testing.T) {
	_, projects, _ := newTestRepos(t)

	p, err := projects.CreateProject("Launch", "desc", model.ProjectActive, model.PriorityHigh, nil)
	if err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}

	status := model.ProjectOnHold
	updated, err := projects.UpdateProject(p.ID, ProjectUpdate{Status: &status})
	if err != nil {
		t.Fatalf("Failed to update project: %v", err)
	}

	// Only the supplied field changes
	if updated.Status != model.ProjectOnHold {
		t.Errorf("Status = %q, want On Hold", updated.Status)
	}
	if updated.Name != "Launch" || updated.Description != "desc" || updated.Priority != model.PriorityHigh {
		t.Error("Fields not in the update were changed")
	}

	deadline := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.Local)
	if _, err := projects.UpdateProject(p.ID, ProjectUpdate{Deadline: &deadline}); err != nil {
		t.Fatalf("Failed to set deadline: %v", err)
	}
	got, _ := projects.GetProject(p.ID)
	if got.Deadline == nil || !got.Deadline.Equal(deadline) {
		t.Error("Deadline not applied")
	}

	if _, err := projects.UpdateProject(p.ID, ProjectUpdate{ClearDeadline: true}); err != nil {
		t.Fatalf("Failed to clear deadline: %v", err)
	}
	got, _ = projects.GetProject(p.ID)
	if got.Deadline != nil {
		t.Error("Deadline not cleared")
	}
}

func TestUpdateProjectNotFound(t *testing.T) {
	_, projects, _ := newTestRepos(t)

	name := "renamed"
	if _, err := projects.UpdateProject("nope", ProjectUpdate{Name: &name}); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateProject on missing id returned %v, want ErrNotFound", err)
	}
}

func TestDeleteProjectCascades(t *testing.T) {
	_, projects, tasks := newTestRepos(t)

	p, _ := projects.CreateProject("Launch", "", model.ProjectActive, model.PriorityHigh, nil)
	keep, _ := projects.CreateProject("Keep", "", model.ProjectActive, model.PriorityLow, nil)

	yesterday := time.Now().AddDate(0, 0, -1)
	if _, err := tasks.CreateTask(p.ID, "Design", "", model.StatusTodo, model.PriorityMedium, &yesterday, ""); err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}
	if _, err := tasks.CreateTask(keep.ID, "Other", "", model.StatusTodo, model.PriorityMedium, nil, ""); err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}

	if err := projects.DeleteProject(p.ID); err != nil {
		t.Fatalf("Failed to delete project: %v", err)
	}

	// No orphaned tasks in any aggregate view
	all := tasks.AllTasks()
	if len(all) != 1 || all[0].ProjectName != "Keep" {
		t.Fatalf("AllTasks() after cascade = %d tasks, want 1 from Keep", len(all))
	}
	if got := tasks.Stats().Total; got != 1 {
		t.Errorf("Stats().Total = %d, want 1", got)
	}
	if got := len(tasks.OverdueTasks()); got != 0 {
		t.Errorf("OverdueTasks() = %d, want 0 after cascade", got)
	}

	// Deleting an absent id is a no-op, not an error
	if err := projects.DeleteProject("nope"); err != nil {
		t.Errorf("DeleteProject on missing id returned %v", err)
	}
}

func TestProjectStats(t *testing.T) {
	_, projects, _ := newTestRepos(t)

	// Zero projects: all buckets zero
	if s := projects.Stats(); s != (ProjectStats{}) {
		t.Errorf("Stats() on empty repository = %+v, want all zero", s)
	}

	projects.CreateProject("a", "", model.ProjectActive, model.PriorityLow, nil)
	projects.CreateProject("b", "", model.ProjectActive, model.PriorityLow, nil)
	projects.CreateProject("c", "", model.ProjectCompleted, model.PriorityLow, nil)
	projects.CreateProject("d", "", model.ProjectOnHold, model.PriorityLow, nil)
	// A status outside the enumerated set counts toward Total only
	projects.CreateProject("e", "", model.ProjectStatus("Archived"), model.PriorityLow, nil)

	s := projects.Stats()
	want := ProjectStats{Total: 5, Active: 2, Completed: 1, OnHold: 1}
	if s != want {
		t.Errorf("Stats() = %+v, want %+v", s, want)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	gw, projects, tasks := newTestRepos(t)

	p, _ := projects.CreateProject("Launch", "Ship it", model.ProjectActive, model.PriorityHigh, nil)
	due := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.Local)
	if _, err := tasks.CreateTask(p.ID, "Design", "mockups", model.StatusDone, model.PriorityMedium, &due, "sam"); err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}

	// A fresh repository over the same gateway sees the identical collection
	reloaded, err := NewProjectRepository(gw)
	if err != nil {
		t.Fatalf("Failed to reload repository: %v", err)
	}

	got, ok := reloaded.GetProject(p.ID)
	if !ok {
		t.Fatal("Project lost in round trip")
	}
	if got.Name != "Launch" || got.Description != "Ship it" || got.Priority != model.PriorityHigh {
		t.Errorf("Project fields lost in round trip: %+v", got)
	}
	if len(got.Tasks) != 1 {
		t.Fatalf("Tasks lost in round trip: %d", len(got.Tasks))
	}
	task := got.Tasks[0]
	if task.Name != "Design" || task.Assignee != "sam" || !task.Completed || task.DueDate == nil || !task.DueDate.Equal(due) {
		t.Errorf("Task fields lost in round trip: %+v", task)
	}
}

func TestLoadRecomputesCompleted(t *testing.T) {
	gw := store.NewMemory()

	// A stored document with a drifted completed flag
	raw := []byte(`[{"id":"p1","name":"Launch","status":"Active","priority":"High","createdAt":"2026-01-01T00:00:00Z","tasks":[{"id":"t1","projectId":"p1","name":"Design","status":"Done","priority":"Medium","completed":false,"createdAt":"2026-01-01T00:00:00Z"}]}]`)
	if err := gw.Save(store.ProjectsKey, raw); err != nil {
		t.Fatalf("Failed to seed gateway: %v", err)
	}

	projects, err := NewProjectRepository(gw)
	if err != nil {
		t.Fatalf("Failed to load repository: %v", err)
	}

	p, ok := projects.GetProject("p1")
	if !ok {
		t.Fatal("Seeded project not loaded")
	}
	if !p.Tasks[0].Completed {
		t.Error("Expected completed to be recomputed from status on load")
	}
	if p.Progress() != 100 {
		t.Errorf("Progress() = %d, want 100", p.Progress())
	}
}
