package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hollis/boardwalk/internal/app"
	"github.com/hollis/boardwalk/internal/archive"
	"github.com/hollis/boardwalk/internal/model"
	"github.com/hollis/boardwalk/internal/repo"
	"github.com/hollis/boardwalk/internal/store"
	"github.com/hollis/boardwalk/internal/ui"
	"github.com/hollis/boardwalk/internal/ui/theme"
)

var (
	version = "0.1.0"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "add":
			handleAdd(os.Args[2:])
			return
		case "export":
			handleExport(os.Args[2:])
			return
		case "import":
			handleImport(os.Args[2:])
			return
		case "version":
			fmt.Printf("boardwalk v%s\n", version)
			return
		case "help", "-h", "--help":
			printHelp()
			return
		}
	}

	viewFlag := flag.String("view", "dashboard", "Starting view (dashboard, kanban, calendar, projects)")
	themeFlag := flag.String("theme", "", "Theme name (nord, dracula)")
	flag.Parse()

	if err := runTUI(*viewFlag, *themeFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	help := `boardwalk - a terminal project and task tracker

Usage:
  boardwalk                     Start the TUI
  boardwalk add <task> [flags]  Quick add a task
  boardwalk export <file>       Export all projects to a JSON file
  boardwalk import <file>       Replace all projects from a JSON file
  boardwalk version             Show version
  boardwalk help                Show this help

Quick Add:
  boardwalk add "Review PR" --project Launch --priority High --due 2026-09-01

TUI Options:
  --view <name>     Starting view (dashboard, kanban, calendar, projects)
  --theme <name>    Theme (nord, dracula)

Keybindings:
  Navigation:   ↑/↓/←/→ or h/j/k/l   Move cursor
                g/G                  Go to top/bottom

  Actions:      a             Add
                enter         Edit
                tab           Toggle done
                d             Delete (with confirm)
                p             Cycle priority

  Views:        1-4           Switch views
                ?             Help
                q             Quit`

	fmt.Println(help)
}

// openRepos opens the store directly for one-shot subcommands. Saves
// go straight to disk; no debounce and no instance lock are needed
// for a single synchronous operation.
func openRepos() (*store.SQLite, *repo.ProjectRepository, *repo.TaskRepository, error) {
	db, err := store.Open(store.DefaultDBPath())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open store: %w", err)
	}
	projects, err := repo.NewProjectRepository(db)
	if err != nil {
		db.Close()
		return nil, nil, nil, err
	}
	return db, projects, repo.NewTaskRepository(projects), nil
}

func handleAdd(args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	projectFlag := fs.String("project", "", "Project name the task belongs to")
	priorityFlag := fs.String("priority", string(model.PriorityMedium), "Priority (Low, Medium, High)")
	dueFlag := fs.String("due", "", "Due date (2006-01-02)")
	assigneeFlag := fs.String("assignee", "", "Assignee")
	fs.Parse(args)

	name := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if name == "" {
		fmt.Fprintln(os.Stderr, "Usage: boardwalk add <task> [--project <name>] [--priority <p>] [--due <date>]")
		os.Exit(1)
	}

	db, projects, tasks, err := openRepos()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	var dueDate *time.Time
	if *dueFlag != "" {
		d, err := time.ParseInLocation("2006-01-02", *dueFlag, time.Local)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid due date %q (want 2006-01-02)\n", *dueFlag)
			os.Exit(1)
		}
		dueDate = &d
	}

	target, err := resolveProject(projects, *projectFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	task, err := tasks.CreateTask(target.ID, name, "", model.StatusTodo, model.Priority(*priorityFlag), dueDate, *assigneeFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Added %q to %s\n", task.Name, target.Name)
}

// resolveProject picks the target project for a quick add: by name
// when given, otherwise the only project when there is exactly one.
func resolveProject(projects *repo.ProjectRepository, name string) (*model.Project, error) {
	all := projects.Projects()
	if name == "" {
		if len(all) == 1 {
			return &all[0], nil
		}
		if len(all) == 0 {
			return nil, fmt.Errorf("no projects yet - create one in the TUI first")
		}
		names := make([]string, len(all))
		for i := range all {
			names[i] = all[i].Name
		}
		return nil, fmt.Errorf("multiple projects, pick one with --project (%s)", strings.Join(names, ", "))
	}

	for i := range all {
		if strings.EqualFold(all[i].Name, name) {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("no project named %q", name)
}

func handleExport(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: boardwalk export <file>")
		os.Exit(1)
	}

	db, projects, _, err := openRepos()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := archive.ExportFile(args[0], projects.Projects()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported %d projects to %s\n", len(projects.Projects()), args[0])
}

func handleImport(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: boardwalk import <file>")
		os.Exit(1)
	}

	db, projects, _, err := openRepos()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	imported, err := archive.ImportFile(args[0])
	if err != nil {
		// Malformed documents leave the existing collection untouched
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := projects.ReplaceAll(imported); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Imported %d projects from %s\n", len(imported), args[0])
}

func runTUI(viewName, themeName string) error {
	if themeName != "" {
		t, ok := theme.ByName(themeName)
		if !ok {
			return fmt.Errorf("unknown theme %q", themeName)
		}
		theme.SetTheme(t)
	}

	application, err := app.New(nil)
	if err != nil {
		return err
	}
	defer application.Close()

	root := ui.NewRootModel(application)
	switch viewName {
	case "kanban":
		root = root.SetView(ui.ViewKanban)
	case "calendar":
		root = root.SetView(ui.ViewCalendar)
	case "projects":
		root = root.SetView(ui.ViewProjects)
	case "dashboard", "":
		root = root.SetView(ui.ViewDashboard)
	default:
		return fmt.Errorf("unknown view %q", viewName)
	}

	p := tea.NewProgram(root, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}
