package query

import (
	"testing"
	"time"

	"github.com/hollis/boardwalk/internal/model"
	"github.com/hollis/boardwalk/internal/repo"
)

func TestMonthGridSize(t *testing.T) {
	for _, month := range []time.Month{time.January, time.February, time.June, time.December} {
		grid := MonthGrid(2026, month)
		if len(grid) != GridSize {
			t.Errorf("MonthGrid(2026, %s) returned %d cells, want %d", month, len(grid), GridSize)
		}
	}
}

func TestMonthGridStartsOnSunday(t *testing.T) {
	grid := MonthGrid(2026, time.August)
	if got := grid[0].Date().Weekday(); got != time.Sunday {
		t.Errorf("First cell is a %s, want Sunday", got)
	}

	// August 1 2026 is a Saturday, so the grid leads with July days
	if grid[0].Month != time.July || grid[0].InMonth {
		t.Errorf("Expected leading cell from July, got %s InMonth=%v", grid[0].Month, grid[0].InMonth)
	}
}

func TestMonthGridInMonthRun(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		days  int
	}{
		{2026, time.August, 31},
		{2026, time.February, 28},
		{2024, time.February, 29}, // leap year
		{2026, time.April, 30},
	}

	for _, tt := range tests {
		grid := MonthGrid(tt.year, tt.month)

		// Exactly one contiguous run of in-month cells, as long as the month
		count := 0
		runs := 0
		inRun := false
		for _, cell := range grid {
			if cell.InMonth {
				count++
				if !inRun {
					runs++
					inRun = true
				}
			} else {
				inRun = false
			}
		}

		if count != tt.days {
			t.Errorf("%s %d: %d in-month cells, want %d", tt.month, tt.year, count, tt.days)
		}
		if runs != 1 {
			t.Errorf("%s %d: %d in-month runs, want 1", tt.month, tt.year, runs)
		}
		if count != DaysInMonth(tt.year, tt.month) {
			t.Errorf("%s %d: DaysInMonth disagrees with grid", tt.month, tt.year)
		}
	}
}

func TestMonthGridDecemberRollsYearForward(t *testing.T) {
	grid := MonthGrid(2026, time.December)

	last := grid[len(grid)-1]
	if last.Month != time.January || last.Year != 2027 {
		t.Errorf("Trailing cell is %s %d, want January 2027", last.Month, last.Year)
	}
}

func TestMonthGridJanuaryRollsYearBack(t *testing.T) {
	grid := MonthGrid(2026, time.January)

	// January 1 2026 is a Thursday, so the grid leads with December 2025
	first := grid[0]
	if first.Month != time.December || first.Year != 2025 {
		t.Errorf("Leading cell is %s %d, want December 2025", first.Month, first.Year)
	}
}

func TestTasksForDate(t *testing.T) {
	day := time.Date(2026, time.May, 10, 0, 0, 0, 0, time.Local)
	sameDayLater := time.Date(2026, time.May, 10, 18, 0, 0, 0, time.Local)
	otherDay := day.AddDate(0, 0, 3)

	tasks := []repo.TaskWithProject{
		{Task: model.Task{ID: "a", DueDate: &sameDayLater}},
		{Task: model.Task{ID: "b", DueDate: &otherDay}},
		{Task: model.Task{ID: "c"}},
		{Task: model.Task{ID: "d", DueDate: &day}},
	}

	got := TasksForDate(tasks, day)
	if len(got) != 2 {
		t.Fatalf("TasksForDate returned %d tasks, want 2", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "d" {
		t.Errorf("TasksForDate returned %s, %s; want a, d", got[0].ID, got[1].ID)
	}
}
