package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hollis/boardwalk/internal/app"
	"github.com/hollis/boardwalk/internal/model"
	"github.com/hollis/boardwalk/internal/repo"
	"github.com/hollis/boardwalk/internal/ui/theme"
)

type projectsReloadMsg struct{}

// ProjectsMode represents the current input mode
type ProjectsMode int

const (
	ProjectsModeNormal ProjectsMode = iota
	ProjectsModeAdd
	ProjectsModeEdit
	ProjectsModeDeadline
	ProjectsModeConfirmDelete
)

// deadlineLayout is the date format accepted when setting a deadline
const deadlineLayout = "2006-01-02"

// ProjectsView lists projects with progress and lifecycle actions
type ProjectsView struct {
	app    *app.App
	width  int
	height int

	projects []model.Project
	cursor   int

	statusMsg string

	mode      ProjectsMode
	textInput textinput.Model

	targetID string
}

// NewProjectsView creates a new projects view
func NewProjectsView(a *app.App) ProjectsView {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256

	return ProjectsView{
		app:       a,
		textInput: ti,
	}
}

// Init schedules a reload of the project list
func (v ProjectsView) Init() tea.Cmd {
	return func() tea.Msg { return projectsReloadMsg{} }
}

// SetSize sets the view dimensions
func (v ProjectsView) SetSize(width, height int) ProjectsView {
	v.width = width
	v.height = height
	return v
}

// reload rebuilds the project list from the repository
func (v *ProjectsView) reload() {
	v.projects = v.app.Projects.Projects()
	if v.cursor >= len(v.projects) {
		if len(v.projects) > 0 {
			v.cursor = len(v.projects) - 1
		} else {
			v.cursor = 0
		}
	}
}

// current returns the project under the cursor, or nil
func (v *ProjectsView) current() *model.Project {
	if len(v.projects) == 0 || v.cursor >= len(v.projects) {
		return nil
	}
	return &v.projects[v.cursor]
}

// Update handles messages
func (v ProjectsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case projectsReloadMsg:
		v.reload()
		return v, nil

	case tea.KeyMsg:
		switch v.mode {
		case ProjectsModeAdd, ProjectsModeEdit, ProjectsModeDeadline:
			return v.handleInputMode(msg)
		case ProjectsModeConfirmDelete:
			return v.handleConfirmDeleteMode(msg)
		default:
			return v.handleNormalMode(msg)
		}
	}

	return v, nil
}

// handleNormalMode handles keys in normal mode
func (v ProjectsView) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if v.cursor < len(v.projects)-1 {
			v.cursor++
		}
		return v, nil

	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}
		return v, nil

	case "g":
		v.cursor = 0
		return v, nil

	case "G":
		if len(v.projects) > 0 {
			v.cursor = len(v.projects) - 1
		}
		return v, nil

	case "a":
		v.mode = ProjectsModeAdd
		v.textInput.SetValue("")
		v.textInput.Placeholder = "New project..."
		v.textInput.Focus()
		return v, nil

	case "enter":
		if p := v.current(); p != nil {
			v.mode = ProjectsModeEdit
			v.targetID = p.ID
			v.textInput.SetValue(p.Name)
			v.textInput.Placeholder = ""
			v.textInput.Focus()
			v.textInput.CursorEnd()
		}
		return v, nil

	case "d":
		if p := v.current(); p != nil {
			v.targetID = p.ID
			v.mode = ProjectsModeConfirmDelete
		}
		return v, nil

	case "s":
		return v.cycleStatus()

	case "p":
		return v.cyclePriority()

	case "D":
		if p := v.current(); p != nil {
			v.mode = ProjectsModeDeadline
			v.targetID = p.ID
			if p.Deadline != nil {
				v.textInput.SetValue(p.Deadline.Format(deadlineLayout))
			} else {
				v.textInput.SetValue("")
			}
			v.textInput.Placeholder = deadlineLayout
			v.textInput.Focus()
			v.textInput.CursorEnd()
		}
		return v, nil
	}

	return v, nil
}

// handleInputMode handles the add, rename, and deadline prompts
func (v ProjectsView) handleInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		value := strings.TrimSpace(v.textInput.Value())
		mode := v.mode
		v.mode = ProjectsModeNormal
		v.textInput.Blur()

		switch mode {
		case ProjectsModeAdd:
			if value == "" {
				// Required field: mutation never attempted
				v.statusMsg = "Project name is required"
				return v, nil
			}
			if _, err := v.app.Projects.CreateProject(value, "", model.ProjectActive, model.PriorityMedium, nil); err != nil {
				v.statusMsg = err.Error()
			}
		case ProjectsModeEdit:
			if value == "" {
				v.statusMsg = "Project name is required"
				return v, nil
			}
			if _, err := v.app.Projects.UpdateProject(v.targetID, repo.ProjectUpdate{Name: &value}); err != nil {
				v.statusMsg = err.Error()
			}
		case ProjectsModeDeadline:
			if value == "" {
				if _, err := v.app.Projects.UpdateProject(v.targetID, repo.ProjectUpdate{ClearDeadline: true}); err != nil {
					v.statusMsg = err.Error()
				}
			} else {
				deadline, err := time.ParseInLocation(deadlineLayout, value, time.Local)
				if err != nil {
					v.statusMsg = fmt.Sprintf("Invalid date %q (want %s)", value, deadlineLayout)
					return v, nil
				}
				if _, err := v.app.Projects.UpdateProject(v.targetID, repo.ProjectUpdate{Deadline: &deadline}); err != nil {
					v.statusMsg = err.Error()
				}
			}
		}
		v.targetID = ""
		v.reload()
		return v, nil

	case "esc":
		v.mode = ProjectsModeNormal
		v.textInput.Blur()
		v.targetID = ""
		return v, nil
	}

	var cmd tea.Cmd
	v.textInput, cmd = v.textInput.Update(msg)
	return v, cmd
}

// handleConfirmDeleteMode handles the delete confirmation prompt
func (v ProjectsView) handleConfirmDeleteMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.mode = ProjectsModeNormal
		id := v.targetID
		v.targetID = ""
		if err := v.app.Projects.DeleteProject(id); err != nil {
			v.statusMsg = err.Error()
		}
		v.reload()
		return v, nil
	case "n", "N", "esc":
		v.mode = ProjectsModeNormal
		v.targetID = ""
		return v, nil
	}
	return v, nil
}

// cycleStatus cycles the current project's status
func (v ProjectsView) cycleStatus() (tea.Model, tea.Cmd) {
	p := v.current()
	if p == nil {
		return v, nil
	}

	var next model.ProjectStatus
	switch p.Status {
	case model.ProjectActive:
		next = model.ProjectOnHold
	case model.ProjectOnHold:
		next = model.ProjectCompleted
	default:
		next = model.ProjectActive
	}

	if _, err := v.app.Projects.UpdateProject(p.ID, repo.ProjectUpdate{Status: &next}); err != nil {
		v.statusMsg = err.Error()
	}
	v.reload()
	return v, nil
}

// cyclePriority cycles the current project's priority
func (v ProjectsView) cyclePriority() (tea.Model, tea.Cmd) {
	p := v.current()
	if p == nil {
		return v, nil
	}

	var next model.Priority
	switch p.Priority {
	case model.PriorityLow:
		next = model.PriorityMedium
	case model.PriorityMedium:
		next = model.PriorityHigh
	default:
		next = model.PriorityLow
	}

	if _, err := v.app.Projects.UpdateProject(p.ID, repo.ProjectUpdate{Priority: &next}); err != nil {
		v.statusMsg = err.Error()
	}
	v.reload()
	return v, nil
}

// View renders the project list
func (v ProjectsView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current.Theme

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Render(fmt.Sprintf("Projects (%d)", len(v.projects))))
	lines = append(lines, "")

	if len(v.projects) == 0 {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(t.Subtle).
			Italic(true).
			Render("No projects - press 'a' to create one"))
	}

	for i := range v.projects {
		p := &v.projects[i]

		rowStyle := lipgloss.NewStyle()
		if i == v.cursor {
			rowStyle = rowStyle.Background(t.Highlight)
		}

		statusStyle := lipgloss.NewStyle()
		switch p.Status {
		case model.ProjectActive:
			statusStyle = statusStyle.Foreground(t.ProjectActive)
		case model.ProjectCompleted:
			statusStyle = statusStyle.Foreground(t.ProjectCompleted)
		case model.ProjectOnHold:
			statusStyle = statusStyle.Foreground(t.ProjectOnHold)
		}

		name := p.Name
		if len(name) > 24 {
			name = name[:21] + "..."
		}

		deadlineStr := ""
		if p.Deadline != nil {
			deadlineStr = lipgloss.NewStyle().Foreground(t.Warning).Render(" due " + p.Deadline.Format("Jan 2 2006"))
		}

		row := fmt.Sprintf(" %s %-24s %s %3d%%  %d/%d tasks%s",
			renderPriority(p.Priority),
			name,
			statusStyle.Render(fmt.Sprintf("%-9s", string(p.Status))),
			p.Progress(),
			p.DoneCount(),
			len(p.Tasks),
			deadlineStr,
		)
		lines = append(lines, rowStyle.Render(row))
	}

	content := strings.Join(lines, "\n")
	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1).
		Width(v.width - 4).
		Render(content)

	var footer string
	inputStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(0, 1).
		Width(v.width - 4)

	switch v.mode {
	case ProjectsModeAdd:
		footer = inputStyle.Render("New project: " + v.textInput.View())
	case ProjectsModeEdit:
		footer = inputStyle.Render("Rename: " + v.textInput.View())
	case ProjectsModeDeadline:
		footer = inputStyle.Render("Deadline (empty clears): " + v.textInput.View())
	case ProjectsModeConfirmDelete:
		name := ""
		taskCount := 0
		for i := range v.projects {
			if v.projects[i].ID == v.targetID {
				name = v.projects[i].Name
				taskCount = len(v.projects[i].Tasks)
			}
		}
		footer = lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true).
			Render(fmt.Sprintf("Delete '%s' and its %d tasks? (y/n)", name, taskCount))
	default:
		hints := "j/k: nav • a: add • enter: rename • d: delete • s: status • p: priority • D: deadline"
		if v.statusMsg != "" {
			hints = v.statusMsg
		}
		footer = lipgloss.NewStyle().Foreground(t.Subtle).Render(hints)
	}

	return lipgloss.JoinVertical(lipgloss.Left, box, footer)
}

// IsInputMode returns whether the view is in input mode
func (v ProjectsView) IsInputMode() bool {
	return v.mode != ProjectsModeNormal
}
