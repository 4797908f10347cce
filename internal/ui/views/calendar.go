package views

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hollis/boardwalk/internal/app"
	"github.com/hollis/boardwalk/internal/model"
	"github.com/hollis/boardwalk/internal/query"
	"github.com/hollis/boardwalk/internal/repo"
	"github.com/hollis/boardwalk/internal/ui/theme"
)

type calendarReloadMsg struct{}

// CalendarView shows the month grid with tasks bucketed by due date
type CalendarView struct {
	app    *app.App
	width  int
	height int

	year  int
	month time.Month

	selectedDay int

	grid       []query.DayCell
	tasksByDay map[int][]repo.TaskWithProject
}

// NewCalendarView creates a new calendar view
func NewCalendarView(a *app.App) CalendarView {
	now := time.Now()
	return CalendarView{
		app:         a,
		year:        now.Year(),
		month:       now.Month(),
		selectedDay: now.Day(),
		tasksByDay:  make(map[int][]repo.TaskWithProject),
	}
}

// Init schedules a reload of the month
func (v CalendarView) Init() tea.Cmd {
	return func() tea.Msg { return calendarReloadMsg{} }
}

// SetSize sets the view dimensions
func (v CalendarView) SetSize(width, height int) CalendarView {
	v.width = width
	v.height = height
	return v
}

// reload rebuilds the grid and the per-day task buckets
func (v *CalendarView) reload() {
	v.grid = query.MonthGrid(v.year, v.month)

	tasks := v.app.Tasks.AllTasks()
	tasksByDay := make(map[int][]repo.TaskWithProject)
	for day := 1; day <= query.DaysInMonth(v.year, v.month); day++ {
		date := time.Date(v.year, v.month, day, 0, 0, 0, 0, time.Local)
		if due := query.TasksForDate(tasks, date); len(due) > 0 {
			tasksByDay[day] = due
		}
	}
	v.tasksByDay = tasksByDay
}

// Update handles messages
func (v CalendarView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case calendarReloadMsg:
		v.reload()
		return v, nil

	case tea.KeyMsg:
		daysInMonth := query.DaysInMonth(v.year, v.month)

		switch msg.String() {
		case "h", "left":
			if v.selectedDay > 1 {
				v.selectedDay--
			}
			return v, nil

		case "l", "right":
			if v.selectedDay < daysInMonth {
				v.selectedDay++
			}
			return v, nil

		case "k", "up":
			if v.selectedDay > 7 {
				v.selectedDay -= 7
			}
			return v, nil

		case "j", "down":
			if v.selectedDay+7 <= daysInMonth {
				v.selectedDay += 7
			}
			return v, nil

		case "H", "pgup":
			v.month--
			if v.month < time.January {
				v.month = time.December
				v.year--
			}
			v.clampSelectedDay()
			v.reload()
			return v, nil

		case "L", "pgdown":
			v.month++
			if v.month > time.December {
				v.month = time.January
				v.year++
			}
			v.clampSelectedDay()
			v.reload()
			return v, nil

		case "t":
			now := time.Now()
			v.year = now.Year()
			v.month = now.Month()
			v.selectedDay = now.Day()
			v.reload()
			return v, nil

		case "g":
			v.selectedDay = 1
			return v, nil

		case "G":
			v.selectedDay = daysInMonth
			return v, nil
		}
	}

	return v, nil
}

// clampSelectedDay ensures selected day is valid for the current month
func (v *CalendarView) clampSelectedDay() {
	daysInMonth := query.DaysInMonth(v.year, v.month)
	if v.selectedDay > daysInMonth {
		v.selectedDay = daysInMonth
	}
}

// View renders the calendar
func (v CalendarView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current.Theme

	calWidth := 28
	listWidth := v.width - calWidth - 4

	calendar := v.renderCalendar(calWidth)
	taskList := v.renderTaskList(listWidth)

	panels := lipgloss.JoinHorizontal(lipgloss.Top, calendar, taskList)

	hints := lipgloss.NewStyle().Foreground(t.Subtle).Render(
		"h/j/k/l: navigate days • H/L: change month • t: today",
	)

	return lipgloss.JoinVertical(lipgloss.Left, panels, hints)
}

// renderCalendar renders the six-week month grid
func (v CalendarView) renderCalendar(width int) string {
	t := theme.Current.Theme

	monthName := fmt.Sprintf("%s %d", v.month.String(), v.year)
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		Width(width).
		Align(lipgloss.Center)

	var lines []string
	lines = append(lines, headerStyle.Render(monthName))
	lines = append(lines, lipgloss.NewStyle().Foreground(t.Subtle).Render("Su Mo Tu We Th Fr Sa"))

	now := time.Now()

	var week []string
	for i, cell := range v.grid {
		dayStyle := lipgloss.NewStyle().Width(3).Align(lipgloss.Center)

		hasTasks := cell.InMonth && len(v.tasksByDay[cell.Day]) > 0
		isSelected := cell.InMonth && cell.Day == v.selectedDay
		isToday := cell.Year == now.Year() && cell.Month == now.Month() && cell.Day == now.Day()

		if !cell.InMonth {
			dayStyle = dayStyle.Foreground(t.Subtle)
		}
		if isSelected {
			dayStyle = dayStyle.Background(t.Highlight).Bold(true)
		}
		if isToday {
			dayStyle = dayStyle.Foreground(t.Primary)
		}
		if hasTasks && !isSelected {
			dayStyle = dayStyle.Foreground(t.Info)
		}

		dayStr := fmt.Sprintf("%2d", cell.Day)
		if hasTasks {
			dayStr += "•"
		} else {
			dayStr += " "
		}

		week = append(week, dayStyle.Render(dayStr))

		if (i+1)%7 == 0 {
			lines = append(lines, strings.Join(week, ""))
			week = nil
		}
	}

	content := strings.Join(lines, "\n")
	boxStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	return boxStyle.Render(content)
}

// renderTaskList renders the task list for the selected day
func (v CalendarView) renderTaskList(width int) string {
	t := theme.Current.Theme

	date := time.Date(v.year, v.month, v.selectedDay, 0, 0, 0, 0, time.Local)
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		Width(width).
		Render(date.Format("Monday, January 2"))

	tasks := v.tasksByDay[v.selectedDay]

	var lines []string
	lines = append(lines, header)
	lines = append(lines, "")

	if len(tasks) == 0 {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(t.Subtle).
			Italic(true).
			Render("No tasks due this day"))
	} else {
		for _, task := range tasks {
			checkbox := "☐"
			if task.Completed {
				checkbox = "☑"
			}

			priorityChar := renderPriority(task.Priority)

			name := task.Name
			maxLen := width - len(task.ProjectName) - 12
			if maxLen > 3 && len(name) > maxLen {
				name = name[:maxLen-3] + "..."
			}

			taskStyle := lipgloss.NewStyle().Foreground(t.Foreground)
			if task.Status == model.StatusDone {
				taskStyle = taskStyle.Strikethrough(true).Foreground(t.Subtle)
			} else if task.IsOverdue() {
				taskStyle = taskStyle.Foreground(t.Error)
			}

			projectStr := lipgloss.NewStyle().Foreground(t.Secondary).Render("[" + task.ProjectName + "]")
			lines = append(lines, fmt.Sprintf("%s %s %s %s", checkbox, priorityChar, taskStyle.Render(name), projectStr))
		}
	}

	content := strings.Join(lines, "\n")
	boxStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1).
		Width(width)

	return boxStyle.Render(content)
}

// IsInputMode returns whether the view is in input mode
func (v CalendarView) IsInputMode() bool {
	return false
}
