package query

import (
	"time"

	"github.com/hollis/boardwalk/internal/repo"
)

// GridSize is the number of cells in a month grid: six full weeks
const GridSize = 42

// DayCell is one cell of a month grid. Month and Year are resolved,
// so cells belonging to the previous or next month carry that month's
// values (including year rollover at December/January).
type DayCell struct {
	Day     int
	Month   time.Month
	Year    int
	InMonth bool
}

// Date returns the cell's date at midnight local time
func (c DayCell) Date() time.Time {
	return time.Date(c.Year, c.Month, c.Day, 0, 0, 0, 0, time.Local)
}

// MonthGrid produces the 42-cell grid for a month, starting from the
// Sunday on or before the 1st and padded with trailing days of the
// next month.
func MonthGrid(year int, month time.Month) []DayCell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	cells := make([]DayCell, 0, GridSize)
	for i := 0; i < GridSize; i++ {
		d := start.AddDate(0, 0, i)
		cells = append(cells, DayCell{
			Day:     d.Day(),
			Month:   d.Month(),
			Year:    d.Year(),
			InMonth: d.Month() == month && d.Year() == year,
		})
	}
	return cells
}

// DaysInMonth returns the number of days in the given month
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// TasksForDate filters tasks to those due on the given calendar day
func TasksForDate(tasks []repo.TaskWithProject, date time.Time) []repo.TaskWithProject {
	var out []repo.TaskWithProject
	for _, t := range tasks {
		if t.IsDueOn(date) {
			out = append(out, t)
		}
	}
	return out
}
