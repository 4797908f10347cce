package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hollis/boardwalk/internal/app"
	"github.com/hollis/boardwalk/internal/ui/theme"
	"github.com/hollis/boardwalk/internal/ui/views"
)

// RootModel is the main application model that manages views
type RootModel struct {
	app    *app.App
	keys   KeyMap
	help   help.Model
	width  int
	height int

	currentView   View
	dashboardView views.DashboardView
	kanbanView    views.KanbanView
	calendarView  views.CalendarView
	projectsView  views.ProjectsView
	helpVisible   bool

	statusMsg string
	errorMsg  string
}

// NewRootModel creates a new root model
func NewRootModel(application *app.App) RootModel {
	h := help.New()
	h.ShowAll = false

	return RootModel{
		app:           application,
		keys:          DefaultKeyMap(),
		help:          h,
		currentView:   ViewDashboard,
		dashboardView: views.NewDashboardView(application),
		kanbanView:    views.NewKanbanView(application),
		calendarView:  views.NewCalendarView(application),
		projectsView:  views.NewProjectsView(application),
	}
}

// SetView switches the starting view
func (m RootModel) SetView(v View) RootModel {
	m.currentView = v
	return m
}

// Init initializes the model
func (m RootModel) Init() tea.Cmd {
	switch m.currentView {
	case ViewKanban:
		return m.kanbanView.Init()
	case ViewCalendar:
		return m.calendarView.Init()
	case ViewProjects:
		return m.projectsView.Init()
	default:
		return m.dashboardView.Init()
	}
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		// Reserve space for header and footer
		contentHeight := m.height - 4
		m.dashboardView = m.dashboardView.SetSize(m.width, contentHeight)
		m.kanbanView = m.kanbanView.SetSize(m.width, contentHeight)
		m.calendarView = m.calendarView.SetSize(m.width, contentHeight)
		m.projectsView = m.projectsView.SetSize(m.width, contentHeight)

	case tea.KeyMsg:
		m.statusMsg = ""
		m.errorMsg = ""

		isInputMode := false
		switch m.currentView {
		case ViewDashboard:
			isInputMode = m.dashboardView.IsInputMode()
		case ViewKanban:
			isInputMode = m.kanbanView.IsInputMode()
		case ViewCalendar:
			isInputMode = m.calendarView.IsInputMode()
		case ViewProjects:
			isInputMode = m.projectsView.IsInputMode()
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			// ctrl+c always quits, but 'q' only quits when not in input mode
			if msg.String() == "ctrl+c" || !isInputMode {
				return m, tea.Quit
			}

		case key.Matches(msg, m.keys.ThemeCycle):
			m.cycleTheme()
			return m, nil
		}

		if isInputMode {
			break // Fall through to view delegation
		}

		switch {
		case key.Matches(msg, m.keys.Help):
			m.helpVisible = !m.helpVisible
			m.help.ShowAll = m.helpVisible
			return m, nil

		case key.Matches(msg, m.keys.DashboardView):
			m.currentView = ViewDashboard
			return m, m.dashboardView.Init()
		case key.Matches(msg, m.keys.KanbanView):
			m.currentView = ViewKanban
			return m, m.kanbanView.Init()
		case key.Matches(msg, m.keys.CalendarView):
			m.currentView = ViewCalendar
			return m, m.calendarView.Init()
		case key.Matches(msg, m.keys.ProjectsView):
			m.currentView = ViewProjects
			return m, m.projectsView.Init()
		}

	case ErrorMsg:
		m.errorMsg = msg.Err.Error()
		return m, nil

	case StatusMsg:
		m.statusMsg = msg.Message
		return m, nil

	case ThemeChangedMsg:
		m.statusMsg = fmt.Sprintf("Theme: %s", msg.ThemeName)
		return m, nil
	}

	// Delegate to current view
	switch m.currentView {
	case ViewDashboard:
		newView, cmd := m.dashboardView.Update(msg)
		m.dashboardView = newView.(views.DashboardView)
		cmds = append(cmds, cmd)
	case ViewKanban:
		newView, cmd := m.kanbanView.Update(msg)
		m.kanbanView = newView.(views.KanbanView)
		cmds = append(cmds, cmd)
	case ViewCalendar:
		newView, cmd := m.calendarView.Update(msg)
		m.calendarView = newView.(views.CalendarView)
		cmds = append(cmds, cmd)
	case ViewProjects:
		newView, cmd := m.projectsView.Update(msg)
		m.projectsView = newView.(views.ProjectsView)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// cycleTheme switches to the next available theme
func (m *RootModel) cycleTheme() {
	available := theme.Available()
	for i, t := range available {
		if t.Name == theme.Current.Theme.Name {
			next := available[(i+1)%len(available)]
			theme.SetTheme(next)
			m.statusMsg = fmt.Sprintf("Theme: %s", next.Name)
			return
		}
	}
	theme.SetTheme(available[0])
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var sections []string

	sections = append(sections, m.renderHeader())

	contentHeight := m.height - 4
	var content string
	if m.helpVisible {
		content = m.renderHelp()
	} else {
		switch m.currentView {
		case ViewDashboard:
			content = m.dashboardView.View()
		case ViewKanban:
			content = m.kanbanView.View()
		case ViewCalendar:
			content = m.calendarView.View()
		case ViewProjects:
			content = m.projectsView.View()
		}
	}

	contentLines := strings.Count(content, "\n") + 1
	if contentLines < contentHeight {
		content += strings.Repeat("\n", contentHeight-contentLines)
	}
	sections = append(sections, content)

	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

// renderHeader renders the header bar
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := styles.Header.Render("boardwalk")

	viewStyle := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Padding(0, 1)

	var tabs []string
	for v := ViewDashboard; v <= ViewProjects; v++ {
		label := fmt.Sprintf("%d:%s", int(v)+1, v.String())
		if v == m.currentView {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Render(label))
		} else {
			tabs = append(tabs, viewStyle.Render(label))
		}
	}

	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, title, strings.Join(tabs, " "))
	rightSide := viewStyle.Render(fmt.Sprintf("theme: %s", t.Name))

	gap := m.width - lipgloss.Width(leftSide) - lipgloss.Width(rightSide)
	if gap < 0 {
		gap = 0
	}

	return leftSide + strings.Repeat(" ", gap) + rightSide
}

// renderHelp renders the full keybinding help
func (m RootModel) renderHelp() string {
	styles := theme.Current.Styles
	return styles.Panel.Render(m.help.View(m.keys))
}

// renderFooter renders the footer/status bar
func (m RootModel) renderFooter() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	if m.errorMsg != "" {
		return lipgloss.NewStyle().Foreground(t.Error).Padding(0, 1).Render("✗ " + m.errorMsg)
	}
	if m.statusMsg != "" {
		return lipgloss.NewStyle().Foreground(t.Success).Padding(0, 1).Render(m.statusMsg)
	}

	return styles.Footer.Render(m.help.View(m.keys))
}
