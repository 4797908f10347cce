package ui

// View represents the current active view
type View int

const (
	ViewDashboard View = iota
	ViewKanban
	ViewCalendar
	ViewProjects
)

// String returns the display name for a view
func (v View) String() string {
	switch v {
	case ViewDashboard:
		return "Dashboard"
	case ViewKanban:
		return "Kanban"
	case ViewCalendar:
		return "Calendar"
	case ViewProjects:
		return "Projects"
	default:
		return "Unknown"
	}
}

// Messages for inter-component communication

// ErrorMsg contains an error to display in the footer
type ErrorMsg struct {
	Err error
}

// StatusMsg contains a status message to display in the footer
type StatusMsg struct {
	Message string
}

// DataChangedMsg indicates the collection was mutated; views rebuild
// their derived state when they receive it.
type DataChangedMsg struct{}

// ThemeChangedMsg indicates the theme was changed
type ThemeChangedMsg struct {
	ThemeName string
}
