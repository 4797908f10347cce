package views

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hollis/boardwalk/internal/app"
	"github.com/hollis/boardwalk/internal/model"
	"github.com/hollis/boardwalk/internal/repo"
	"github.com/hollis/boardwalk/internal/ui/theme"
)

type dashboardReloadMsg struct{}

// DashboardView shows aggregate stats and attention-worthy tasks
type DashboardView struct {
	app    *app.App
	width  int
	height int

	projectStats repo.ProjectStats
	taskStats    repo.TaskStats
	projects     []model.Project
	overdue      []repo.TaskWithProject
}

// NewDashboardView creates a new dashboard view
func NewDashboardView(a *app.App) DashboardView {
	return DashboardView{app: a}
}

// Init schedules a reload of the stats
func (v DashboardView) Init() tea.Cmd {
	return func() tea.Msg { return dashboardReloadMsg{} }
}

// SetSize sets the view dimensions
func (v DashboardView) SetSize(width, height int) DashboardView {
	v.width = width
	v.height = height
	return v
}

// reload rebuilds the aggregates from the repositories
func (v *DashboardView) reload() {
	v.projectStats = v.app.Projects.Stats()
	v.taskStats = v.app.Tasks.Stats()
	v.projects = v.app.Projects.Projects()

	overdue := v.app.Tasks.OverdueTasks()
	sort.SliceStable(overdue, func(i, j int) bool {
		return overdue[i].PriorityWeight() > overdue[j].PriorityWeight()
	})
	v.overdue = overdue
}

// Update handles messages
func (v DashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case dashboardReloadMsg:
		v.reload()
		return v, nil
	}
	return v, nil
}

// View renders the dashboard
func (v DashboardView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current.Theme

	panelWidth := (v.width - 6) / 2
	if panelWidth < 30 {
		panelWidth = 30
	}

	statsRow := lipgloss.JoinHorizontal(lipgloss.Top,
		v.renderProjectStats(panelWidth),
		v.renderTaskStats(panelWidth),
	)

	bottomRow := lipgloss.JoinHorizontal(lipgloss.Top,
		v.renderProgress(panelWidth),
		v.renderOverdue(panelWidth),
	)

	hints := lipgloss.NewStyle().Foreground(t.Subtle).Render(
		"2: kanban • 3: calendar • 4: projects",
	)

	return lipgloss.JoinVertical(lipgloss.Left, statsRow, bottomRow, hints)
}

// renderProjectStats renders project counts by status
func (v DashboardView) renderProjectStats(width int) string {
	t := theme.Current.Theme
	s := v.projectStats

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Render("Projects"))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Total      %3d", s.Total))
	lines = append(lines, lipgloss.NewStyle().Foreground(t.ProjectActive).Render(fmt.Sprintf("Active     %3d", s.Active)))
	lines = append(lines, lipgloss.NewStyle().Foreground(t.ProjectCompleted).Render(fmt.Sprintf("Completed  %3d", s.Completed)))
	lines = append(lines, lipgloss.NewStyle().Foreground(t.ProjectOnHold).Render(fmt.Sprintf("On Hold    %3d", s.OnHold)))

	return panelStyle(width).Render(strings.Join(lines, "\n"))
}

// renderTaskStats renders task counts across all projects
func (v DashboardView) renderTaskStats(width int) string {
	t := theme.Current.Theme
	s := v.taskStats

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Render("Tasks"))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Total        %3d", s.Total))
	lines = append(lines, lipgloss.NewStyle().Foreground(t.StatusTodo).Render(fmt.Sprintf("To Do        %3d", s.ToDo)))
	lines = append(lines, lipgloss.NewStyle().Foreground(t.StatusInProgress).Render(fmt.Sprintf("In Progress  %3d", s.InProgress)))
	lines = append(lines, lipgloss.NewStyle().Foreground(t.StatusDone).Render(fmt.Sprintf("Done         %3d", s.Completed)))
	lines = append(lines, fmt.Sprintf("Pending      %3d", s.Pending))
	overdueStyle := lipgloss.NewStyle()
	if s.Overdue > 0 {
		overdueStyle = overdueStyle.Foreground(t.Error).Bold(true)
	}
	lines = append(lines, overdueStyle.Render(fmt.Sprintf("Overdue      %3d", s.Overdue)))

	return panelStyle(width).Render(strings.Join(lines, "\n"))
}

// renderProgress renders a progress bar per project
func (v DashboardView) renderProgress(width int) string {
	t := theme.Current.Theme

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Render("Progress"))
	lines = append(lines, "")

	if len(v.projects) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(t.Subtle).Italic(true).Render("No projects yet"))
	}

	barWidth := width - 24
	if barWidth < 10 {
		barWidth = 10
	}

	for i := range v.projects {
		p := &v.projects[i]
		progress := p.Progress()

		filled := progress * barWidth / 100
		bar := lipgloss.NewStyle().Foreground(t.Success).Render(strings.Repeat("█", filled)) +
			lipgloss.NewStyle().Foreground(t.Subtle).Render(strings.Repeat("░", barWidth-filled))

		name := p.Name
		if len(name) > 14 {
			name = name[:11] + "..."
		}
		lines = append(lines, fmt.Sprintf("%-14s %s %3d%%", name, bar, progress))
	}

	return panelStyle(width).Render(strings.Join(lines, "\n"))
}

// renderOverdue renders overdue tasks, highest priority first
func (v DashboardView) renderOverdue(width int) string {
	t := theme.Current.Theme

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(t.Error).Render("Overdue"))
	lines = append(lines, "")

	if len(v.overdue) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(t.Subtle).Italic(true).Render("Nothing overdue"))
	}

	for _, task := range v.overdue {
		name := task.Name
		maxLen := width - len(task.ProjectName) - 22
		if maxLen > 3 && len(name) > maxLen {
			name = name[:maxLen-3] + "..."
		}
		due := lipgloss.NewStyle().Foreground(t.Warning).Render(task.DueDate.Format("Jan 2"))
		projectStr := lipgloss.NewStyle().Foreground(t.Secondary).Render("[" + task.ProjectName + "]")
		lines = append(lines, fmt.Sprintf("%s %s %s %s", renderPriority(task.Priority), name, due, projectStr))
	}

	return panelStyle(width).Render(strings.Join(lines, "\n"))
}

func panelStyle(width int) lipgloss.Style {
	t := theme.Current.Theme
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1).
		Width(width)
}

// IsInputMode returns whether the view is in input mode
func (v DashboardView) IsInputMode() bool {
	return false
}
