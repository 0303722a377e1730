package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"focusdo/app"
	"focusdo/export"
	"focusdo/model"
	"focusdo/store"
	"focusdo/tui"
)

// Version information set via ldflags
var version = "dev"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	dir := flag.String("dir", "", "state directory (default: XDG data dir)")
	importPath := flag.String("import", "", "replace stored tasks with an exported JSON document and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("focusdo %s\n", version)
		return
	}

	stateDir := *dir
	if stateDir == "" {
		stateDir = store.DefaultDir()
	}
	tasksPath := filepath.Join(stateDir, store.TasksFile)
	appPath := filepath.Join(stateDir, store.AppFile)

	if *importPath != "" {
		if err := export.Import(*importPath, tasksPath); err != nil {
			fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Imported %s; state replaced, will load on next start\n", *importPath)
		return
	}

	taskState, taskMsg := store.LoadTasksWithRecovery(tasksPath)
	appPersist, appMsg := store.LoadAppWithRecovery(appPath)

	tasks := app.NewTaskStore(taskState)
	session := app.NewSessionStore(model.FromPersist(appPersist))
	session.SetNotifier(tui.DesktopNotifier{})

	// Persistence is an observer of the stores: every mutation writes
	// the owning slot, fire-and-forget. The two slots are independent.
	tasks.OnChange(func() {
		_ = store.SaveTasks(tasksPath, tasks.State())
	})
	session.OnChange(func() {
		_ = store.SaveApp(appPath, session.State().Persist())
	})

	startup := strings.TrimSpace(strings.Join([]string{taskMsg, appMsg}, " "))
	m := tui.NewModel(tasks, session, stateDir, startup)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}
