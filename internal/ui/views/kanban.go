package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hollis/boardwalk/internal/app"
	"github.com/hollis/boardwalk/internal/model"
	"github.com/hollis/boardwalk/internal/query"
	"github.com/hollis/boardwalk/internal/repo"
	"github.com/hollis/boardwalk/internal/ui/theme"
)

type kanbanReloadMsg struct{}

// KanbanMode represents the current input mode
type KanbanMode int

const (
	KanbanModeNormal KanbanMode = iota
	KanbanModeAdd
	KanbanModeEdit
	KanbanModeSearch
	KanbanModeConfirmDelete
)

// KanbanView is the board view: one column per task status
type KanbanView struct {
	app    *app.App
	width  int
	height int

	columns [3]query.Column

	currentColumn int
	cursorRow     int
	columnScroll  [3]int

	statusMsg string

	mode      KanbanMode
	textInput textinput.Model

	editTask   *repo.TaskWithProject
	deleteTask *repo.TaskWithProject

	// Project selector (for picking where a new task goes)
	selectingProject bool
	selectorCursor   int
	pendingTaskName  string

	searchFilter string
}

// NewKanbanView creates a new kanban view
func NewKanbanView(a *app.App) KanbanView {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256

	return KanbanView{
		app:       a,
		textInput: ti,
	}
}

// Init schedules a reload of the board
func (v KanbanView) Init() tea.Cmd {
	return func() tea.Msg { return kanbanReloadMsg{} }
}

// SetSize sets the view dimensions
func (v KanbanView) SetSize(width, height int) KanbanView {
	v.width = width
	v.height = height
	return v
}

// reload rebuilds the columns from the repositories
func (v *KanbanView) reload() {
	v.columns = query.Board(v.app.Tasks.AllTasks())
	v.clampCursor()
}

// Update handles messages
func (v KanbanView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case kanbanReloadMsg:
		v.reload()
		return v, nil

	case tea.KeyMsg:
		switch v.mode {
		case KanbanModeAdd:
			return v.handleAddMode(msg)
		case KanbanModeEdit:
			return v.handleEditMode(msg)
		case KanbanModeSearch:
			return v.handleSearchMode(msg)
		case KanbanModeConfirmDelete:
			return v.handleConfirmDeleteMode(msg)
		default:
			if v.selectingProject {
				return v.handleProjectSelector(msg)
			}
			return v.handleNormalMode(msg)
		}
	}

	return v, nil
}

// handleNormalMode handles keys in normal mode
func (v KanbanView) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "left":
		if v.currentColumn > 0 {
			v.currentColumn--
			v.clampCursor()
		}
		return v, nil

	case "l", "right":
		if v.currentColumn < 2 {
			v.currentColumn++
			v.clampCursor()
		}
		return v, nil

	case "j", "down":
		col := v.filteredColumn(v.currentColumn)
		if v.cursorRow < len(col)-1 {
			v.cursorRow++
			v.ensureCursorVisible()
		}
		return v, nil

	case "k", "up":
		if v.cursorRow > 0 {
			v.cursorRow--
			v.ensureCursorVisible()
		}
		return v, nil

	case "H":
		return v.moveTask(-1)

	case "L":
		return v.moveTask(1)

	case "tab":
		return v.toggleCurrentTask()

	case "g":
		v.cursorRow = 0
		v.columnScroll[v.currentColumn] = 0
		return v, nil

	case "G":
		col := v.filteredColumn(v.currentColumn)
		if len(col) > 0 {
			v.cursorRow = len(col) - 1
			v.ensureCursorVisible()
		}
		return v, nil

	case "a":
		if len(v.app.Projects.Projects()) == 0 {
			v.statusMsg = "No projects yet - create one in the Projects view (4)"
			return v, nil
		}
		v.mode = KanbanModeAdd
		v.textInput.SetValue("")
		v.textInput.Placeholder = "New task..."
		v.textInput.Focus()
		return v, nil

	case "enter":
		col := v.filteredColumn(v.currentColumn)
		if len(col) > 0 && v.cursorRow < len(col) {
			task := col[v.cursorRow]
			v.mode = KanbanModeEdit
			v.editTask = &task
			v.textInput.SetValue(task.Name)
			v.textInput.Placeholder = ""
			v.textInput.Focus()
			v.textInput.CursorEnd()
		}
		return v, nil

	case "d":
		col := v.filteredColumn(v.currentColumn)
		if len(col) > 0 && v.cursorRow < len(col) {
			task := col[v.cursorRow]
			v.deleteTask = &task
			v.mode = KanbanModeConfirmDelete
		}
		return v, nil

	case "p":
		return v.cyclePriority()

	case "/":
		v.mode = KanbanModeSearch
		v.textInput.SetValue(v.searchFilter)
		v.textInput.Placeholder = "Search..."
		v.textInput.Focus()
		return v, nil

	case "esc":
		if v.searchFilter != "" {
			v.searchFilter = ""
			v.statusMsg = "Filter cleared"
			v.clampCursor()
		}
		return v, nil
	}

	return v, nil
}

// handleAddMode handles keys while typing a new task name
func (v KanbanView) handleAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := strings.TrimSpace(v.textInput.Value())
		if name == "" {
			// Required field: mutation never attempted
			v.statusMsg = "Task name is required"
			return v, nil
		}
		v.mode = KanbanModeNormal
		v.textInput.Blur()

		projects := v.app.Projects.Projects()
		if len(projects) == 1 {
			return v.createTask(name, projects[0].ID)
		}
		// More than one project: pick where the task goes
		v.selectingProject = true
		v.selectorCursor = 0
		v.pendingTaskName = name
		return v, nil
	case "esc":
		v.mode = KanbanModeNormal
		v.textInput.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.textInput, cmd = v.textInput.Update(msg)
	return v, cmd
}

// handleEditMode handles keys while renaming a task
func (v KanbanView) handleEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := strings.TrimSpace(v.textInput.Value())
		if name == "" {
			v.statusMsg = "Task name is required"
			return v, nil
		}
		if v.editTask != nil {
			task := v.editTask
			v.mode = KanbanModeNormal
			v.textInput.Blur()
			v.editTask = nil
			if _, err := v.app.Tasks.UpdateTask(task.ProjectID, task.ID, repo.TaskUpdate{Name: &name}); err != nil {
				v.statusMsg = err.Error()
			}
			v.reload()
		}
		return v, nil
	case "esc":
		v.mode = KanbanModeNormal
		v.textInput.Blur()
		v.editTask = nil
		return v, nil
	}

	var cmd tea.Cmd
	v.textInput, cmd = v.textInput.Update(msg)
	return v, cmd
}

// handleSearchMode handles keys while typing a search filter
func (v KanbanView) handleSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		v.searchFilter = strings.TrimSpace(v.textInput.Value())
		v.mode = KanbanModeNormal
		v.textInput.Blur()
		v.cursorRow = 0
		for i := range v.columnScroll {
			v.columnScroll[i] = 0
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.textInput, cmd = v.textInput.Update(msg)
	return v, cmd
}

// handleConfirmDeleteMode handles the delete confirmation prompt
func (v KanbanView) handleConfirmDeleteMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.mode = KanbanModeNormal
		if v.deleteTask != nil {
			task := v.deleteTask
			v.deleteTask = nil
			if err := v.app.Tasks.DeleteTask(task.ProjectID, task.ID); err != nil {
				v.statusMsg = err.Error()
			}
			v.reload()
		}
		return v, nil
	case "n", "N", "esc":
		v.mode = KanbanModeNormal
		v.deleteTask = nil
		return v, nil
	}
	return v, nil
}

// handleProjectSelector handles picking the project for a new task
func (v KanbanView) handleProjectSelector(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	projects := v.app.Projects.Projects()

	switch msg.String() {
	case "j", "down":
		if v.selectorCursor < len(projects)-1 {
			v.selectorCursor++
		}
	case "k", "up":
		if v.selectorCursor > 0 {
			v.selectorCursor--
		}
	case "enter":
		if v.selectorCursor < len(projects) {
			project := projects[v.selectorCursor]
			name := v.pendingTaskName
			v.selectingProject = false
			v.pendingTaskName = ""
			return v.createTask(name, project.ID)
		}
	case "esc":
		v.selectingProject = false
		v.pendingTaskName = ""
	}
	return v, nil
}

// createTask creates a task in the current column's status
func (v KanbanView) createTask(name, projectID string) (tea.Model, tea.Cmd) {
	status := query.BoardStatuses[v.currentColumn]
	if _, err := v.app.Tasks.CreateTask(projectID, name, "", status, model.PriorityMedium, nil, ""); err != nil {
		v.statusMsg = err.Error()
	}
	v.reload()
	return v, nil
}

// moveTask moves the current task to an adjacent column
func (v KanbanView) moveTask(direction int) (tea.Model, tea.Cmd) {
	col := v.filteredColumn(v.currentColumn)
	if len(col) == 0 || v.cursorRow >= len(col) {
		return v, nil
	}

	newColumn := v.currentColumn + direction
	if newColumn < 0 || newColumn > 2 {
		return v, nil
	}

	task := col[v.cursorRow]
	newStatus := query.BoardStatuses[newColumn]
	if _, err := v.app.Tasks.UpdateTask(task.ProjectID, task.ID, repo.TaskUpdate{Status: &newStatus}); err != nil {
		v.statusMsg = err.Error()
	}
	v.reload()
	return v, nil
}

// toggleCurrentTask toggles the current task between done and to do
func (v KanbanView) toggleCurrentTask() (tea.Model, tea.Cmd) {
	col := v.filteredColumn(v.currentColumn)
	if len(col) == 0 || v.cursorRow >= len(col) {
		return v, nil
	}

	task := col[v.cursorRow]
	newStatus := model.StatusDone
	if task.Status == model.StatusDone {
		newStatus = model.StatusTodo
	}
	if _, err := v.app.Tasks.UpdateTask(task.ProjectID, task.ID, repo.TaskUpdate{Status: &newStatus}); err != nil {
		v.statusMsg = err.Error()
	}
	v.reload()
	return v, nil
}

// cyclePriority cycles the priority of the current task
func (v KanbanView) cyclePriority() (tea.Model, tea.Cmd) {
	col := v.filteredColumn(v.currentColumn)
	if len(col) == 0 || v.cursorRow >= len(col) {
		return v, nil
	}

	task := col[v.cursorRow]
	var newPriority model.Priority
	switch task.Priority {
	case model.PriorityLow:
		newPriority = model.PriorityMedium
	case model.PriorityMedium:
		newPriority = model.PriorityHigh
	case model.PriorityHigh:
		newPriority = model.PriorityLow
	default:
		newPriority = model.PriorityMedium
	}

	if _, err := v.app.Tasks.UpdateTask(task.ProjectID, task.ID, repo.TaskUpdate{Priority: &newPriority}); err != nil {
		v.statusMsg = err.Error()
	}
	v.reload()
	return v, nil
}

// filteredColumn returns a column's tasks after the search filter
func (v *KanbanView) filteredColumn(colIndex int) []repo.TaskWithProject {
	tasks := v.columns[colIndex].Tasks
	if v.searchFilter == "" {
		return tasks
	}

	var filtered []repo.TaskWithProject
	searchLower := strings.ToLower(v.searchFilter)
	for _, task := range tasks {
		if strings.Contains(strings.ToLower(task.Name), searchLower) {
			filtered = append(filtered, task)
		}
	}
	return filtered
}

// clampCursor ensures cursor is valid for the current column
func (v *KanbanView) clampCursor() {
	col := v.filteredColumn(v.currentColumn)
	if v.cursorRow >= len(col) {
		if len(col) > 0 {
			v.cursorRow = len(col) - 1
		} else {
			v.cursorRow = 0
		}
	}
	v.ensureCursorVisible()
}

// ensureCursorVisible adjusts scroll to keep the cursor in view
func (v *KanbanView) ensureCursorVisible() {
	visibleItems := v.visibleItemCount()
	if visibleItems <= 0 {
		visibleItems = 5
	}

	col := v.currentColumn
	if v.cursorRow >= v.columnScroll[col]+visibleItems {
		v.columnScroll[col] = v.cursorRow - visibleItems + 1
	}
	if v.cursorRow < v.columnScroll[col] {
		v.columnScroll[col] = v.cursorRow
	}
}

// visibleItemCount returns how many items fit in the column height
func (v *KanbanView) visibleItemCount() int {
	availableHeight := v.height - 7
	if availableHeight < 1 {
		return 1
	}
	return availableHeight
}

// View renders the kanban board
func (v KanbanView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current.Theme

	columnNames := []string{"To Do", "In Progress", "Done"}
	columnColors := []lipgloss.Color{t.StatusTodo, t.StatusInProgress, t.StatusDone}

	colWidth := (v.width - 4) / 3
	if colWidth < 25 {
		colWidth = 25
	}

	headerStyle := func(i int, active bool) lipgloss.Style {
		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(columnColors[i]).
			Width(colWidth).
			Align(lipgloss.Center)
		if active {
			s = s.Background(t.Highlight)
		}
		return s
	}

	columnStyle := lipgloss.NewStyle().
		Width(colWidth).
		Height(v.height - 3).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border)

	var headers []string
	for i := 0; i < 3; i++ {
		tasks := v.filteredColumn(i)
		totalTasks := len(v.columns[i].Tasks)
		header := fmt.Sprintf("%s (%d)", columnNames[i], len(tasks))
		if len(tasks) != totalTasks {
			header = fmt.Sprintf("%s (%d/%d)", columnNames[i], len(tasks), totalTasks)
		}
		headers = append(headers, headerStyle(i, i == v.currentColumn).Render(header))
	}
	headerRow := lipgloss.JoinHorizontal(lipgloss.Top, headers...)

	visibleItems := v.visibleItemCount()
	var cols []string
	for i := 0; i < 3; i++ {
		tasks := v.filteredColumn(i)
		isActiveCol := i == v.currentColumn
		scrollOffset := v.columnScroll[i]

		startIdx := scrollOffset
		endIdx := scrollOffset + visibleItems
		if startIdx > len(tasks) {
			startIdx = len(tasks)
		}
		if endIdx > len(tasks) {
			endIdx = len(tasks)
		}

		var items []string

		if scrollOffset > 0 {
			items = append(items, lipgloss.NewStyle().
				Foreground(t.Subtle).
				Width(colWidth-4).
				Align(lipgloss.Center).
				Render(fmt.Sprintf("↑ %d more", scrollOffset)))
		}

		for j := startIdx; j < endIdx; j++ {
			task := tasks[j]
			isSelected := isActiveCol && j == v.cursorRow

			cardStyle := lipgloss.NewStyle().
				Width(colWidth - 4).
				Padding(0, 1).
				Foreground(t.Foreground)
			if isSelected {
				cardStyle = cardStyle.Background(t.Highlight)
			}

			projectStr := lipgloss.NewStyle().Foreground(t.Secondary).Render("[" + task.ProjectName + "] ")

			priorityChar := renderPriority(task.Priority)

			var overdueStr string
			overdueLen := 0
			if task.IsOverdue() {
				overdueStr = lipgloss.NewStyle().Foreground(t.Error).Render(" ⚠")
				overdueLen = 2
			}

			name := task.Name
			maxNameLen := colWidth - 8 - len(task.ProjectName) - 3 - overdueLen
			if maxNameLen < 10 {
				maxNameLen = 10
			}
			if len(name) > maxNameLen {
				name = name[:maxNameLen-3] + "..."
			}

			cardContent := fmt.Sprintf("%s %s%s%s", priorityChar, projectStr, name, overdueStr)
			items = append(items, cardStyle.Render(cardContent))
		}

		if endIdx < len(tasks) {
			items = append(items, lipgloss.NewStyle().
				Foreground(t.Subtle).
				Width(colWidth-4).
				Align(lipgloss.Center).
				Render(fmt.Sprintf("↓ %d more", len(tasks)-endIdx)))
		}

		content := strings.Join(items, "\n")
		if len(tasks) == 0 {
			content = lipgloss.NewStyle().
				Foreground(t.Subtle).
				Italic(true).
				Render("(empty)")
		}

		cs := columnStyle
		if isActiveCol {
			cs = cs.BorderForeground(t.Primary)
		}
		cols = append(cols, cs.Render(content))
	}
	columnsRow := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	var footer string
	inputStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(0, 1).
		Width(v.width - 4)

	switch v.mode {
	case KanbanModeAdd:
		footer = inputStyle.Render("Add task: " + v.textInput.View())
	case KanbanModeEdit:
		footer = inputStyle.Render("Edit: " + v.textInput.View())
	case KanbanModeSearch:
		footer = inputStyle.Render("Search: " + v.textInput.View())
	case KanbanModeConfirmDelete:
		name := ""
		if v.deleteTask != nil {
			name = v.deleteTask.Name
		}
		footer = lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true).
			Render(fmt.Sprintf("Delete '%s'? (y/n)", name))
	default:
		if v.selectingProject {
			footer = v.renderProjectSelector()
		} else {
			hints := "h/l: column • j/k: nav • H/L: move • tab: toggle • a: add • enter: edit • d: del • p: priority • /: search"
			if v.searchFilter != "" {
				filterStatus := lipgloss.NewStyle().Foreground(t.Info).Render("[Search: " + v.searchFilter + "] ")
				hints = filterStatus + "esc: clear"
			} else if v.statusMsg != "" {
				hints = v.statusMsg
			}
			footer = lipgloss.NewStyle().Foreground(t.Subtle).Render(hints)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, headerRow, columnsRow, footer)
}

// renderProjectSelector renders the project picker popup
func (v KanbanView) renderProjectSelector() string {
	t := theme.Current.Theme

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render("Add to project:"))

	for i, p := range v.app.Projects.Projects() {
		style := lipgloss.NewStyle()
		if i == v.selectorCursor {
			style = style.Background(t.Highlight).Foreground(t.Foreground)
		}
		lines = append(lines, style.Render(" "+p.Name))
	}
	lines = append(lines, lipgloss.NewStyle().Foreground(t.Subtle).Render("j/k: navigate • enter: select • esc: cancel"))

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// IsInputMode returns whether the view is in input mode
func (v KanbanView) IsInputMode() bool {
	return v.mode != KanbanModeNormal || v.selectingProject
}

// renderPriority returns the colored priority indicator for a task
func renderPriority(p model.Priority) string {
	t := theme.Current.Theme
	style := lipgloss.NewStyle()
	switch p {
	case model.PriorityHigh:
		return style.Foreground(t.PriorityHigh).Render("▲")
	case model.PriorityMedium:
		return style.Foreground(t.PriorityMedium).Render("●")
	case model.PriorityLow:
		return style.Foreground(t.PriorityLow).Render("▽")
	default:
		return " "
	}
}
