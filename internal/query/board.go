package query

import (
	"github.com/hollis/boardwalk/internal/model"
	"github.com/hollis/boardwalk/internal/repo"
)

// BoardStatuses lists the kanban columns in display order
var BoardStatuses = [3]model.Status{
	model.StatusTodo,
	model.StatusInProgress,
	model.StatusDone,
}

// Column is one kanban column: a status and its tasks in insertion order
type Column struct {
	Status model.Status
	Tasks  []repo.TaskWithProject
}

// Board buckets tasks into the three kanban columns
func Board(tasks []repo.TaskWithProject) [3]Column {
	var cols [3]Column
	for i, status := range BoardStatuses {
		cols[i].Status = status
	}
	for _, t := range tasks {
		for i := range cols {
			if t.Status == cols[i].Status {
				cols[i].Tasks = append(cols[i].Tasks, t)
				break
			}
		}
	}
	return cols
}
