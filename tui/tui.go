package tui

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"focusdo/app"
	"focusdo/export"
	"focusdo/model"
)

type focusPane int

const (
	focusSidebar focusPane = iota
	focusTasks
	focusSubtasks
)

func (f focusPane) String() string {
	switch f {
	case focusTasks:
		return "tasks"
	case focusSubtasks:
		return "subtasks"
	default:
		return "sidebar"
	}
}

type uiMode int

const (
	modeNormal uiMode = iota
	modeAddTask
	modeEditTitle
	modeEditDescription
	modeEditDue
	modeEditTags
	modeAddSubtask
	modeAddProject
	modeRenameProject
	modeSettings
	modeSearch
	modeConfirmDeleteTask
	modeConfirmDeleteProject
)

// tickMsg carries a generation counter so a stale scheduled tick can
// never double-decrement the countdown: only the newest generation is
// honored, keeping at most one live tick chain.
type tickMsg struct {
	gen int
}

var filterEntries = []model.Filter{
	model.FilterAll,
	model.FilterToday,
	model.FilterUpcoming,
	model.FilterCompleted,
}

var projectPalette = []string{"#7aa2f7", "#9ece6a", "#e0af68", "#bb9af7", "#7dcfff", "#f7768e"}

var projectIcons = []string{"folder", "star", "heart", "book", "flag", "rocket"}

// Model is the Bubble Tea program driving both stores. It owns the
// single outstanding pomodoro tick and funnels every user action
// through the stores' methods.
type Model struct {
	tasks   *app.TaskStore
	session *app.SessionStore
	dir     string

	palette Palette

	focus focusPane
	mode  uiMode
	input textinput.Model

	sideCursor int
	taskCursor int
	subCursor  int

	confirmID   string
	confirmName string

	calMonth time.Time
	tickGen  int

	status    string
	statusErr bool
	showHelp  bool

	width  int
	height int
}

// NewModel wires a fresh UI over the two stores. startupStatus, when
// non-empty, is surfaced on the status line (recovery messages).
func NewModel(tasks *app.TaskStore, session *app.SessionStore, dir, startupStatus string) *Model {
	input := textinput.New()
	input.CharLimit = 200

	status := strings.TrimSpace(startupStatus)
	if status == "" {
		status = "Ready"
	}

	now := time.Now()
	return &Model{
		tasks:    tasks,
		session:  session,
		dir:      dir,
		palette:  ResolvePalette(session.State().Theme),
		focus:    focusTasks,
		mode:     modeNormal,
		input:    input,
		calMonth: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local),
		status:   status,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tickMsg:
		return m, m.handleTick(msg)
	case tea.KeyMsg:
		switch m.mode {
		case modeConfirmDeleteTask, modeConfirmDeleteProject:
			m.updateConfirmMode(msg)
		case modeNormal:
			cmd, quit := m.updateNormalMode(msg)
			if quit {
				return m, tea.Quit
			}
			return m, cmd
		default:
			return m, m.updateInputMode(msg)
		}
	}
	return m, nil
}

// handleTick advances the countdown by one second and keeps the tick
// chain alive while the timer runs.
func (m *Model) handleTick(msg tickMsg) tea.Cmd {
	if msg.gen != m.tickGen {
		return nil
	}
	if !m.session.State().Pomodoro.IsRunning {
		return nil
	}
	m.session.TickPomodoro()
	p := m.session.State().Pomodoro
	if !p.IsRunning {
		if p.TimeLeft == 0 {
			if p.IsBreak {
				m.setStatus("Break finished", false)
			} else {
				m.setStatus("Pomodoro finished. Press b for a break", false)
			}
		}
		return nil
	}
	return m.scheduleTick()
}

func (m *Model) scheduleTick() tea.Cmd {
	m.tickGen++
	gen := m.tickGen
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (m *Model) updateNormalMode(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return nil, true
	case "tab":
		if m.focus == focusSidebar {
			m.focus = focusTasks
		} else {
			m.focus = focusSidebar
		}
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "enter":
		m.handleEnter()
	case "o":
		m.toggleSubtaskPane()
	case "a":
		m.startAdd()
	case "e":
		m.startEdit(modeEditTitle)
	case "i":
		m.startEdit(modeEditDescription)
	case "w":
		m.startEdit(modeEditDue)
	case "g":
		m.startEdit(modeEditTags)
	case "r":
		m.startRenameProject()
	case "x":
		m.toggleSelected()
	case "c":
		m.cycleSelectedStatus()
	case "d":
		m.startDelete()
	case "1":
		m.setSelectedPriority(model.PriorityLow)
	case "2":
		m.setSelectedPriority(model.PriorityMedium)
	case "3":
		m.setSelectedPriority(model.PriorityHigh)
	case "J":
		m.reorderSelected(1)
	case "K":
		m.reorderSelected(-1)
	case "m":
		m.moveSelectedToNextProject()
	case "f":
		m.cycleFilter()
	case "/":
		m.startSearch()
		return textinput.Blink, false
	case "v":
		m.toggleViewMode()
	case "[":
		if m.session.State().ViewMode == model.ViewCalendar {
			m.calMonth = m.calMonth.AddDate(0, -1, 0)
		}
	case "]":
		if m.session.State().ViewMode == model.ViewCalendar {
			m.calMonth = m.calMonth.AddDate(0, 1, 0)
		}
	case "p":
		return m.startPomodoroOnSelected(), false
	case " ", "space":
		return m.togglePomodoroRunning(), false
	case "b":
		return m.startBreak(), false
	case "R":
		m.tickGen++
		m.session.ResetPomodoro()
		m.setStatus("Pomodoro reset", false)
	case "t":
		m.cycleTheme()
	case "z":
		m.session.ToggleFocusMode()
	case "-":
		m.session.ToggleSidebar()
	case ",":
		m.startSettings()
		return textinput.Blink, false
	case "y":
		m.exportJSON()
	case "Y":
		m.exportCSV()
	case "?":
		m.showHelp = !m.showHelp
	case "esc":
		switch {
		case m.showHelp:
			m.showHelp = false
		case m.focus == focusSubtasks:
			m.focus = focusTasks
		case m.tasks.State().SearchQuery != "":
			m.tasks.SetSearchQuery("")
			m.taskCursor = 0
			m.setStatus("Search cleared", false)
		}
	}

	m.clampCursors()
	return nil, false
}

func (m *Model) updateInputMode(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "esc":
		if m.mode == modeSearch {
			m.tasks.SetSearchQuery("")
			m.taskCursor = 0
		}
		m.closeInput("Cancelled", false)
		return nil
	case "enter":
		m.applyInput()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if m.mode == modeSearch {
		m.tasks.SetSearchQuery(strings.TrimSpace(m.input.Value()))
		m.taskCursor = 0
		m.clampCursors()
	}
	return cmd
}

func (m *Model) updateConfirmMode(msg tea.KeyMsg) {
	switch strings.ToLower(msg.String()) {
	case "y":
		if m.mode == modeConfirmDeleteTask {
			m.tasks.DeleteTask(m.confirmID)
			m.setStatus("Task deleted", false)
		} else {
			m.tasks.DeleteProject(m.confirmID)
			m.sideCursor = 0
			m.setStatus(fmt.Sprintf("Project %q deleted; its tasks moved to Inbox", m.confirmName), false)
		}
		m.confirmID = ""
		m.confirmName = ""
		m.mode = modeNormal
		m.clampCursors()
	case "n", "esc", "enter":
		m.confirmID = ""
		m.confirmName = ""
		m.mode = modeNormal
		m.setStatus("Cancelled", false)
	}
}

func (m *Model) applyInput() {
	text := strings.TrimSpace(m.input.Value())
	switch m.mode {
	case modeAddTask:
		if text == "" {
			m.setStatus("Task title must not be empty", true)
			return
		}
		draft := model.Task{
			Title:     text,
			Priority:  model.PriorityMedium,
			Status:    model.StatusTodo,
			ProjectID: m.tasks.State().ActiveProjectID,
		}
		task := m.tasks.AddTask(draft)
		m.closeInput("Task created", false)
		m.focus = focusTasks
		m.taskCursor = m.indexOfTask(task.ID)
	case modeEditTitle:
		if text == "" {
			m.setStatus("Task title must not be empty", true)
			return
		}
		if task, ok := m.selectedTask(); ok {
			m.tasks.UpdateTask(task.ID, app.TaskUpdate{Title: &text})
		}
		m.closeInput("Task updated", false)
	case modeEditDescription:
		if task, ok := m.selectedTask(); ok {
			m.tasks.UpdateTask(task.ID, app.TaskUpdate{Description: &text})
		}
		m.closeInput("Description updated", false)
	case modeEditDue:
		if text != "" {
			if _, err := time.Parse(model.DateLayout, text); err != nil {
				m.setStatus("Due date must be YYYY-MM-DD", true)
				return
			}
		}
		if task, ok := m.selectedTask(); ok {
			m.tasks.UpdateTask(task.ID, app.TaskUpdate{DueDate: &text})
		}
		m.closeInput("Due date updated", false)
	case modeEditTags:
		tags := splitTags(text)
		if task, ok := m.selectedTask(); ok {
			m.tasks.UpdateTask(task.ID, app.TaskUpdate{Tags: &tags})
		}
		m.closeInput("Tags updated", false)
	case modeAddSubtask:
		if text == "" {
			m.setStatus("Subtask title must not be empty", true)
			return
		}
		if task, ok := m.selectedTask(); ok {
			m.tasks.AddSubtask(task.ID, text)
		}
		m.closeInput("Subtask added", false)
	case modeAddProject:
		if text == "" {
			m.setStatus("Project name must not be empty", true)
			return
		}
		n := len(m.tasks.Projects())
		project := m.tasks.AddProject(model.Project{
			Name:  text,
			Color: projectPalette[n%len(projectPalette)],
			Icon:  projectIcons[n%len(projectIcons)],
		})
		m.session.SetProjectCreateOpen(false)
		m.closeInput(fmt.Sprintf("Project %q created", project.Name), false)
		m.focus = focusSidebar
		m.sideCursor = len(filterEntries) + len(m.tasks.Projects()) - 1
	case modeRenameProject:
		if text == "" {
			m.setStatus("Project name must not be empty", true)
			return
		}
		if project, ok := m.selectedProject(); ok {
			m.tasks.UpdateProject(project.ID, app.ProjectUpdate{Name: &text})
		}
		m.closeInput("Project renamed", false)
	case modeSettings:
		work, brk, err := parseSettings(text)
		if err != nil {
			m.setStatus("Enter work and break minutes, e.g. \"25 5\"", true)
			return
		}
		m.session.UpdatePomodoroSettings(app.PomodoroSettingsUpdate{
			WorkDuration:  &work,
			BreakDuration: &brk,
		})
		m.session.SetSettingsOpen(false)
		m.closeInput(fmt.Sprintf("Pomodoro set to %d min work / %d min break", work, brk), false)
	case modeSearch:
		m.mode = modeNormal
		m.input.Blur()
		m.setStatus("Search applied", false)
	}
	m.clampCursors()
}

func (m *Model) closeInput(status string, isErr bool) {
	m.mode = modeNormal
	m.input.Blur()
	m.input.SetValue("")
	if m.session.State().SettingsOpen {
		m.session.SetSettingsOpen(false)
	}
	if m.session.State().ProjectCreateOpen {
		m.session.SetProjectCreateOpen(false)
	}
	m.setStatus(status, isErr)
}

func (m *Model) openInput(mode uiMode, placeholder, value string) {
	m.mode = mode
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *Model) startAdd() {
	switch m.focus {
	case focusSidebar:
		m.session.SetProjectCreateOpen(true)
		m.openInput(modeAddProject, "Project name", "")
	case focusSubtasks:
		m.openInput(modeAddSubtask, "Subtask title", "")
	default:
		m.openInput(modeAddTask, "Task title", "")
	}
}

func (m *Model) startEdit(mode uiMode) {
	task, ok := m.selectedTask()
	if !ok {
		m.setStatus("No task selected", true)
		return
	}
	switch mode {
	case modeEditTitle:
		m.openInput(mode, "Task title", task.Title)
	case modeEditDescription:
		m.openInput(mode, "Description", task.Description)
	case modeEditDue:
		m.openInput(mode, "YYYY-MM-DD (empty clears)", task.DueDate)
	case modeEditTags:
		m.openInput(mode, "Comma-separated tags", strings.Join(task.Tags, ", "))
	}
}

func (m *Model) startRenameProject() {
	project, ok := m.selectedProject()
	if !ok {
		m.setStatus("Select a project in the sidebar first", true)
		return
	}
	m.openInput(modeRenameProject, "Project name", project.Name)
}

func (m *Model) startSearch() {
	m.openInput(modeSearch, "Search title, description, tags", m.tasks.State().SearchQuery)
}

func (m *Model) startSettings() {
	settings := m.session.State().PomodoroSettings
	m.session.SetSettingsOpen(true)
	m.openInput(modeSettings, "work break (minutes)",
		fmt.Sprintf("%d %d", settings.WorkDuration, settings.BreakDuration))
}

func (m *Model) startDelete() {
	switch m.focus {
	case focusSidebar:
		project, ok := m.selectedProject()
		if !ok {
			m.setStatus("Select a project to delete", true)
			return
		}
		m.mode = modeConfirmDeleteProject
		m.confirmID = project.ID
		m.confirmName = project.Name
	case focusSubtasks:
		task, ok := m.selectedTask()
		if !ok {
			return
		}
		if m.subCursor < len(task.Subtasks) {
			m.tasks.DeleteSubtask(task.ID, task.Subtasks[m.subCursor].ID)
			m.setStatus("Subtask deleted", false)
			m.clampCursors()
		}
	default:
		task, ok := m.selectedTask()
		if !ok {
			m.setStatus("No task selected", true)
			return
		}
		m.mode = modeConfirmDeleteTask
		m.confirmID = task.ID
		m.confirmName = task.Title
	}
}

func (m *Model) handleEnter() {
	switch m.focus {
	case focusSidebar:
		if m.sideCursor < len(filterEntries) {
			m.tasks.SetActiveFilter(filterEntries[m.sideCursor])
			m.setStatus(fmt.Sprintf("Filter: %s", filterEntries[m.sideCursor]), false)
		} else if project, ok := m.selectedProject(); ok {
			m.tasks.SetActiveProjectID(project.ID)
			m.setStatus(fmt.Sprintf("Project: %s", project.Name), false)
		}
		m.taskCursor = 0
	case focusTasks:
		m.toggleSubtaskPane()
	case focusSubtasks:
		task, ok := m.selectedTask()
		if !ok {
			return
		}
		if m.subCursor < len(task.Subtasks) {
			m.tasks.ToggleSubtask(task.ID, task.Subtasks[m.subCursor].ID)
		}
	}
}

func (m *Model) toggleSubtaskPane() {
	if m.focus == focusSubtasks {
		m.focus = focusTasks
		return
	}
	if _, ok := m.selectedTask(); ok {
		m.focus = focusSubtasks
		m.subCursor = 0
	}
}

func (m *Model) toggleSelected() {
	switch m.focus {
	case focusSubtasks:
		task, ok := m.selectedTask()
		if !ok {
			return
		}
		if m.subCursor < len(task.Subtasks) {
			m.tasks.ToggleSubtask(task.ID, task.Subtasks[m.subCursor].ID)
		}
	default:
		task, ok := m.selectedTask()
		if !ok {
			return
		}
		m.tasks.ToggleTaskStatus(task.ID)
		if task.Status == model.StatusCompleted {
			m.setStatus("Task reopened", false)
		} else {
			m.setStatus("Task completed", false)
		}
		m.clampCursors()
	}
}

// cycleSelectedStatus walks todo → in-progress → completed → todo,
// keeping CompletedAt consistent from this side of the store contract.
func (m *Model) cycleSelectedStatus() {
	task, ok := m.selectedTask()
	if !ok {
		return
	}
	var next model.Status
	switch task.Status {
	case model.StatusTodo:
		next = model.StatusInProgress
	case model.StatusInProgress:
		next = model.StatusCompleted
	default:
		next = model.StatusTodo
	}

	upd := app.TaskUpdate{Status: &next}
	if next == model.StatusCompleted {
		now := time.Now().UTC()
		upd.CompletedAt = &now
	} else if task.Status == model.StatusCompleted {
		upd.ClearCompletedAt = true
	}
	m.tasks.UpdateTask(task.ID, upd)
	m.setStatus(fmt.Sprintf("Status: %s", next), false)
	m.clampCursors()
}

func (m *Model) setSelectedPriority(priority model.Priority) {
	task, ok := m.selectedTask()
	if !ok {
		return
	}
	m.tasks.UpdateTask(task.ID, app.TaskUpdate{Priority: &priority})
	m.setStatus(fmt.Sprintf("Priority: %s", priority), false)
}

// reorderSelected moves the selected task one slot within the visible
// slice, then splices the reordered slice back into the full list so
// hidden tasks keep their positions.
func (m *Model) reorderSelected(direction int) {
	visible := m.tasks.FilteredTasks()
	if len(visible) < 2 || m.taskCursor >= len(visible) {
		return
	}
	target := m.taskCursor + direction
	if target < 0 || target >= len(visible) {
		return
	}
	visible[m.taskCursor], visible[target] = visible[target], visible[m.taskCursor]

	full := m.tasks.Tasks()
	slots := make([]int, 0, len(visible))
	members := make(map[string]bool, len(visible))
	for _, t := range visible {
		members[t.ID] = true
	}
	for i, t := range full {
		if members[t.ID] {
			slots = append(slots, i)
		}
	}
	for i, slot := range slots {
		full[slot] = visible[i]
	}

	m.tasks.ReorderTasks(full)
	m.taskCursor = target
}

func (m *Model) moveSelectedToNextProject() {
	task, ok := m.selectedTask()
	if !ok {
		return
	}
	projects := m.tasks.Projects()
	if len(projects) == 0 {
		return
	}
	next := 0
	for i, p := range projects {
		if p.ID == task.ProjectID {
			next = (i + 1) % len(projects)
			break
		}
	}
	id := projects[next].ID
	m.tasks.UpdateTask(task.ID, app.TaskUpdate{ProjectID: &id})
	m.setStatus(fmt.Sprintf("Moved to %s", projects[next].Name), false)
	m.clampCursors()
}

func (m *Model) cycleFilter() {
	current := m.tasks.State().ActiveFilter
	for i, f := range filterEntries {
		if f == current {
			nextFilter := filterEntries[(i+1)%len(filterEntries)]
			m.tasks.SetActiveFilter(nextFilter)
			m.setStatus(fmt.Sprintf("Filter: %s", nextFilter), false)
			m.taskCursor = 0
			return
		}
	}
	m.tasks.SetActiveFilter(model.FilterAll)
	m.taskCursor = 0
}

func (m *Model) toggleViewMode() {
	if m.session.State().ViewMode == model.ViewList {
		m.session.SetViewMode(model.ViewCalendar)
		m.setStatus("Calendar view", false)
	} else {
		m.session.SetViewMode(model.ViewList)
		m.setStatus("List view", false)
	}
}

func (m *Model) cycleTheme() {
	var next model.Theme
	switch m.session.State().Theme {
	case model.ThemeLight:
		next = model.ThemeDark
	case model.ThemeDark:
		next = model.ThemeSystem
	default:
		next = model.ThemeLight
	}
	m.session.SetTheme(next)
	m.setStatus(fmt.Sprintf("Theme: %s", next), false)
}

func (m *Model) startPomodoroOnSelected() tea.Cmd {
	task, ok := m.selectedTask()
	if !ok {
		m.setStatus("Select a task to focus on", true)
		return nil
	}
	m.session.StartPomodoro(task.ID, 0)
	m.setStatus(fmt.Sprintf("Focusing on %q", task.Title), false)
	return m.scheduleTick()
}

func (m *Model) togglePomodoroRunning() tea.Cmd {
	p := m.session.State().Pomodoro
	if p.IsRunning {
		m.tickGen++
		m.session.PausePomodoro()
		m.setStatus("Pomodoro paused", false)
		return nil
	}
	if p.TimeLeft == 0 {
		m.setStatus("Session over. Start a new pomodoro or a break", false)
		return nil
	}
	m.session.ResumePomodoro()
	m.setStatus("Pomodoro resumed", false)
	return m.scheduleTick()
}

func (m *Model) startBreak() tea.Cmd {
	m.session.StartBreak(0)
	m.setStatus("Break started", false)
	return m.scheduleTick()
}

func (m *Model) exportJSON() {
	state := m.tasks.State()
	path := filepath.Join(m.dir, "export-"+time.Now().Format("20060102-150405")+".json")
	if err := export.WriteJSON(path, state.Tasks, state.Projects); err != nil {
		m.setStatus("Export failed: "+err.Error(), true)
		return
	}
	m.setStatus("Exported to "+path, false)
}

func (m *Model) exportCSV() {
	state := m.tasks.State()
	path := filepath.Join(m.dir, "export-"+time.Now().Format("20060102-150405")+".csv")
	if err := export.WriteCSV(path, state.Tasks, state.Projects); err != nil {
		m.setStatus("Export failed: "+err.Error(), true)
		return
	}
	m.setStatus("Exported to "+path, false)
}

func (m *Model) moveCursor(delta int) {
	switch m.focus {
	case focusSidebar:
		m.sideCursor += delta
	case focusTasks:
		m.taskCursor += delta
	case focusSubtasks:
		m.subCursor += delta
	}
	m.clampCursors()
}

func (m *Model) clampCursors() {
	sideMax := len(filterEntries) + len(m.tasks.Projects()) - 1
	m.sideCursor = clamp(m.sideCursor, 0, sideMax)

	visible := m.tasks.FilteredTasks()
	m.taskCursor = clamp(m.taskCursor, 0, max(len(visible)-1, 0))

	if task, ok := m.selectedTask(); ok {
		m.subCursor = clamp(m.subCursor, 0, max(len(task.Subtasks)-1, 0))
	} else {
		m.subCursor = 0
		if m.focus == focusSubtasks {
			m.focus = focusTasks
		}
	}
}

func (m *Model) selectedTask() (model.Task, bool) {
	visible := m.tasks.FilteredTasks()
	if len(visible) == 0 {
		return model.Task{}, false
	}
	if m.taskCursor < 0 || m.taskCursor >= len(visible) {
		m.taskCursor = 0
	}
	return visible[m.taskCursor], true
}

func (m *Model) selectedProject() (model.Project, bool) {
	projects := m.tasks.Projects()
	idx := m.sideCursor - len(filterEntries)
	if idx < 0 || idx >= len(projects) {
		return model.Project{}, false
	}
	return projects[idx], true
}

func (m *Model) indexOfTask(id string) int {
	for i, t := range m.tasks.FilteredTasks() {
		if t.ID == id {
			return i
		}
	}
	return 0
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func splitTags(text string) []string {
	parts := strings.Split(text, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for _, part := range parts {
		tag := strings.TrimSpace(part)
		if tag == "" || seen[strings.ToLower(tag)] {
			continue
		}
		seen[strings.ToLower(tag)] = true
		out = append(out, tag)
	}
	return out
}

func parseSettings(text string) (work, brk int, err error) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("expected two values")
	}
	work, err = strconv.Atoi(fields[0])
	if err != nil || work <= 0 {
		return 0, 0, fmt.Errorf("invalid work duration")
	}
	brk, err = strconv.Atoi(fields[1])
	if err != nil || brk <= 0 {
		return 0, 0, fmt.Errorf("invalid break duration")
	}
	return work, brk, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
