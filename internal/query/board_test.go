package query

import (
	"testing"

	"github.com/hollis/boardwalk/internal/model"
	"github.com/hollis/boardwalk/internal/repo"
)

func TestBoardBuckets(t *testing.T) {
	tasks := []repo.TaskWithProject{
		{Task: model.Task{ID: "a", Status: model.StatusDone}},
		{Task: model.Task{ID: "b", Status: model.StatusTodo}},
		{Task: model.Task{ID: "c", Status: model.StatusInProgress}},
		{Task: model.Task{ID: "d", Status: model.StatusTodo}},
	}

	cols := Board(tasks)

	if cols[0].Status != model.StatusTodo || cols[1].Status != model.StatusInProgress || cols[2].Status != model.StatusDone {
		t.Fatalf("Unexpected column order: %v %v %v", cols[0].Status, cols[1].Status, cols[2].Status)
	}

	if len(cols[0].Tasks) != 2 || cols[0].Tasks[0].ID != "b" || cols[0].Tasks[1].ID != "d" {
		t.Errorf("To Do column wrong, got %d tasks", len(cols[0].Tasks))
	}
	if len(cols[1].Tasks) != 1 || cols[1].Tasks[0].ID != "c" {
		t.Errorf("In Progress column wrong, got %d tasks", len(cols[1].Tasks))
	}
	if len(cols[2].Tasks) != 1 || cols[2].Tasks[0].ID != "a" {
		t.Errorf("Done column wrong, got %d tasks", len(cols[2].Tasks))
	}
}

func TestBoardEmpty(t *testing.T) {
	cols := Board(nil)
	for i := range cols {
		if len(cols[i].Tasks) != 0 {
			t.Errorf("Expected empty column %v", cols[i].Status)
		}
	}
}
