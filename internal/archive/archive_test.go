package archive

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hollis/boardwalk/internal/model"
)

func sampleProjects() []model.Project {
	due := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	return []model.Project{
		{
			ID:        "p1",
			Name:      "Launch",
			Status:    model.ProjectActive,
			Priority:  model.PriorityHigh,
			CreatedAt: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
			Tasks: []model.Task{
				{
					ID:        "t1",
					ProjectID: "p1",
					Name:      "Design",
					Status:    model.StatusDone,
					Priority:  model.PriorityMedium,
					DueDate:   &due,
					Assignee:  "sam",
					Completed: true,
					CreatedAt: time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC),
				},
			},
		},
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, sampleProjects()); err != nil {
		t.Fatalf("Failed to export: %v", err)
	}

	got, err := Import(&buf)
	if err != nil {
		t.Fatalf("Failed to import: %v", err)
	}

	if len(got) != 1 || got[0].ID != "p1" || got[0].Name != "Launch" {
		t.Fatalf("Project lost in round trip: %+v", got)
	}
	task := got[0].Tasks[0]
	if task.ID != "t1" || task.Assignee != "sam" || !task.Completed || task.DueDate == nil {
		t.Errorf("Task lost in round trip: %+v", task)
	}
}

func TestExportShape(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, sampleProjects()); err != nil {
		t.Fatalf("Failed to export: %v", err)
	}

	// The document carries exactly the projects list and a timestamp
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("Export is not valid JSON: %v", err)
	}
	if _, ok := doc["projects"]; !ok {
		t.Error("Export missing projects field")
	}
	if _, ok := doc["exportDate"]; !ok {
		t.Error("Export missing exportDate field")
	}
	if len(doc) != 2 {
		t.Errorf("Export carries %d fields, want 2", len(doc))
	}
}

func TestImportMalformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not json", "{nope"},
		{"missing projects", `{"exportDate":"2026-01-01T00:00:00Z"}`},
		{"null projects", `{"projects":null,"exportDate":"2026-01-01T00:00:00Z"}`},
		{"project without id", `{"projects":[{"name":"x"}],"exportDate":"2026-01-01T00:00:00Z"}`},
		{"task without id", `{"projects":[{"id":"p1","name":"x","tasks":[{"name":"t"}]}],"exportDate":"2026-01-01T00:00:00Z"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Import(strings.NewReader(tt.in)); !errors.Is(err, ErrMalformedImport) {
				t.Errorf("Import returned %v, want ErrMalformedImport", err)
			}
		})
	}
}

func TestImportEmptyCollection(t *testing.T) {
	// An empty projects array is a valid document, not a malformed one
	got, err := Import(strings.NewReader(`{"projects":[],"exportDate":"2026-01-01T00:00:00Z"}`))
	if err != nil {
		t.Fatalf("Import of empty collection returned %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Import returned %d projects, want 0", len(got))
	}
}

func TestImportRecomputesCompleted(t *testing.T) {
	in := `{
		"projects": [{
			"id": "p1", "name": "Launch", "status": "Active", "priority": "High",
			"createdAt": "2026-01-01T00:00:00Z",
			"tasks": [
				{"id": "t1", "name": "a", "status": "Done", "priority": "Low", "completed": false, "createdAt": "2026-01-01T00:00:00Z"},
				{"id": "t2", "name": "b", "status": "To Do", "priority": "Low", "completed": true, "createdAt": "2026-01-01T00:00:00Z"}
			]
		}],
		"exportDate": "2026-01-01T00:00:00Z"
	}`

	got, err := Import(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Failed to import: %v", err)
	}

	tasks := got[0].Tasks
	if !tasks[0].Completed {
		t.Error("Done task not marked completed on import")
	}
	if tasks[1].Completed {
		t.Error("To Do task kept a stale completed flag on import")
	}
	// Ownership is stamped from the enclosing project
	if tasks[0].ProjectID != "p1" || tasks[1].ProjectID != "p1" {
		t.Error("Task projectId not backfilled from the enclosing project")
	}
}

func TestExportImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")

	if err := ExportFile(path, sampleProjects()); err != nil {
		t.Fatalf("Failed to export file: %v", err)
	}

	got, err := ImportFile(path)
	if err != nil {
		t.Fatalf("Failed to import file: %v", err)
	}
	if len(got) != 1 || got[0].ID != "p1" {
		t.Errorf("File round trip lost the collection: %+v", got)
	}
}
