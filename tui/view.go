package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"focusdo/model"
)

const sidebarWidth = 24

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	// System theme follows the terminal background; re-resolving on
	// every render picks up a change while system stays selected.
	m.palette = ResolvePalette(m.session.State().Theme)
	p := m.palette
	session := m.session.State()

	header := m.renderHeader()

	contentWidth := m.width - 2
	mainWidth := contentWidth
	showSidebar := !session.SidebarCollapsed && !session.FocusMode
	if showSidebar {
		mainWidth = contentWidth - sidebarWidth - 1
	}

	var main string
	if session.ViewMode == model.ViewCalendar {
		main = m.renderCalendar(mainWidth)
	} else {
		main = m.renderTaskList(mainWidth)
	}

	var body string
	if showSidebar {
		divider := lipgloss.NewStyle().Foreground(p.Border).Render("│")
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), divider, main)
	} else {
		body = main
	}

	sections := []string{header, body}
	if pomodoro := m.renderPomodoro(contentWidth); pomodoro != "" {
		sections = append(sections, pomodoro)
	}
	if m.showHelp {
		sections = append(sections, m.renderHelpOverlay(contentWidth))
	}
	if m.mode != modeNormal && m.mode != modeConfirmDeleteTask && m.mode != modeConfirmDeleteProject {
		sections = append(sections, m.renderInputLine(contentWidth))
	}
	if m.mode == modeConfirmDeleteTask || m.mode == modeConfirmDeleteProject {
		sections = append(sections, m.renderConfirmLine())
	}
	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.NewStyle().Padding(0, 1).Render(strings.Join(sections, "\n"))
}

func (m *Model) renderHeader() string {
	p := m.palette
	state := m.tasks.State()
	session := m.session.State()

	title := lipgloss.NewStyle().Bold(true).Foreground(p.Primary).Render("focusdo")

	scope := "filter: " + string(state.ActiveFilter)
	if state.ActiveProjectID != "" {
		if project, ok := m.tasks.ProjectByID(state.ActiveProjectID); ok {
			scope = "project: " + project.Name
		}
	}
	summary := fmt.Sprintf("%s • view: %s • theme: %s", scope, session.ViewMode, session.Theme)
	if state.SearchQuery != "" {
		summary += fmt.Sprintf(" • search: %q", state.SearchQuery)
	}
	if session.FocusMode {
		summary += " • focus mode"
	}

	return lipgloss.JoinHorizontal(lipgloss.Left,
		title,
		lipgloss.NewStyle().Foreground(p.Dim).Render("  "+summary),
	)
}

func (m *Model) renderSidebar() string {
	state := m.tasks.State()

	lines := make([]string, 0, 16)
	lines = append(lines, m.paneTitle("Filters", m.focus == focusSidebar))
	for i, f := range filterEntries {
		marker := " "
		if state.ActiveProjectID == "" && state.ActiveFilter == f {
			marker = "●"
		}
		line := fmt.Sprintf("%s %s %s", m.cursorFor(focusSidebar, i), marker, filterLabel(f))
		lines = append(lines, m.highlight(line, m.focus == focusSidebar && m.sideCursor == i))
	}

	lines = append(lines, "", m.paneTitle("Projects", m.focus == focusSidebar))
	projects := m.tasks.Projects()
	for i, project := range projects {
		idx := len(filterEntries) + i
		marker := " "
		if state.ActiveProjectID == project.ID {
			marker = "●"
		}
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(project.Color)).Render("■")
		count := len(m.tasks.TasksByProject(project.ID))
		line := fmt.Sprintf("%s %s %s %s (%d)", m.cursorFor(focusSidebar, idx), marker, dot, project.Name, count)
		lines = append(lines, m.highlight(line, m.focus == focusSidebar && m.sideCursor == idx))
	}

	return lipgloss.NewStyle().Width(sidebarWidth).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderTaskList(width int) string {
	p := m.palette
	visible := m.tasks.FilteredTasks()

	lines := make([]string, 0, len(visible)+4)
	lines = append(lines, m.paneTitle(fmt.Sprintf("Tasks (%d)", len(visible)), m.focus != focusSidebar))

	if len(visible) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(p.Dim).Render("Nothing here. Press 'a' to add a task."))
		return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
	}

	for i, t := range visible {
		check := "[ ]"
		if t.Status == model.StatusCompleted {
			check = "[x]"
		} else if t.Status == model.StatusInProgress {
			check = "[~]"
		}

		prio := lipgloss.NewStyle().Foreground(priorityColor(p, t.Priority)).Render("!")
		line := fmt.Sprintf("%s %s %s %s", m.cursorFor(focusTasks, i), check, prio, t.Title)
		if t.DueDate != "" {
			line += lipgloss.NewStyle().Foreground(p.Warning).Render("  ⏱ " + t.DueDate)
		}
		if len(t.Subtasks) > 0 {
			done := 0
			for _, st := range t.Subtasks {
				if st.Completed {
					done++
				}
			}
			line += lipgloss.NewStyle().Foreground(p.Dim).Render(fmt.Sprintf("  %d/%d", done, len(t.Subtasks)))
		}
		if len(t.Tags) > 0 {
			line += lipgloss.NewStyle().Foreground(p.Accent).Render("  #" + strings.Join(t.Tags, " #"))
		}

		selected := m.focus != focusSidebar && m.taskCursor == i
		if t.Status == model.StatusCompleted && !selected {
			line = lipgloss.NewStyle().Foreground(p.Dim).Strikethrough(true).Render(line)
		}
		lines = append(lines, m.highlight(line, selected))

		if selected {
			lines = append(lines, m.renderTaskDetail(t)...)
		}
	}

	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderTaskDetail(t model.Task) []string {
	p := m.palette
	dim := lipgloss.NewStyle().Foreground(p.Dim)

	out := make([]string, 0, len(t.Subtasks)+2)
	if t.Description != "" {
		out = append(out, dim.Render("      "+t.Description))
	}
	if project, ok := m.tasks.ProjectByID(t.ProjectID); ok {
		out = append(out, dim.Render("      in "+project.Name))
	}
	for j, st := range t.Subtasks {
		check := "[ ]"
		if st.Completed {
			check = "[x]"
		}
		line := fmt.Sprintf("      %s %s %s", m.cursorFor(focusSubtasks, j), check, st.Title)
		out = append(out, m.highlight(line, m.focus == focusSubtasks && m.subCursor == j))
	}
	return out
}

func (m *Model) renderPomodoro(width int) string {
	p := m.palette
	session := m.session.State()
	pom := session.Pomodoro

	idle := !pom.IsRunning && pom.TimeLeft == pom.TotalTime && !pom.IsBreak && pom.ActiveTaskID == ""
	if idle && !session.FocusMode {
		return ""
	}

	kind := "Work"
	if pom.IsBreak {
		kind = "Break"
	}
	state := "paused"
	if pom.IsRunning {
		state = "running"
	} else if pom.TimeLeft == 0 {
		state = "done"
	}

	label := fmt.Sprintf("%s %02d:%02d (%s)", kind, pom.TimeLeft/60, pom.TimeLeft%60, state)
	if pom.ActiveTaskID != "" {
		if task, ok := m.tasks.TaskByID(pom.ActiveTaskID); ok {
			label += " — " + task.Title
		}
	}

	barWidth := width - lipgloss.Width(label) - 6
	if barWidth < 10 {
		barWidth = 10
	}
	filled := 0
	if pom.TotalTime > 0 {
		filled = barWidth * (pom.TotalTime - pom.TimeLeft) / pom.TotalTime
	}
	bar := lipgloss.NewStyle().Foreground(p.Success).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(p.Border).Render(strings.Repeat("░", barWidth-filled))

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)
	return style.Render(label + "  " + bar)
}

func (m *Model) renderInputLine(width int) string {
	p := m.palette
	label := map[uiMode]string{
		modeAddTask:         "New task",
		modeEditTitle:       "Edit title",
		modeEditDescription: "Edit description",
		modeEditDue:         "Due date",
		modeEditTags:        "Tags",
		modeAddSubtask:      "New subtask",
		modeAddProject:      "New project",
		modeRenameProject:   "Rename project",
		modeSettings:        "Pomodoro settings",
		modeSearch:          "Search",
	}[m.mode]

	prompt := lipgloss.NewStyle().Bold(true).Foreground(p.Primary).Render(label + ": ")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.BorderFocus).
		Padding(0, 1).
		Width(width).
		Render(prompt + m.input.View())
}

func (m *Model) renderConfirmLine() string {
	p := m.palette
	what := "task"
	if m.mode == modeConfirmDeleteProject {
		what = "project (its tasks move to Inbox)"
	}
	text := fmt.Sprintf("Delete %s %q? y/n", what, m.confirmName)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Error).
		Padding(0, 1).
		Render(text)
}

func (m *Model) renderStatusBar(width int) string {
	p := m.palette
	style := lipgloss.NewStyle().Foreground(p.Success)
	if m.statusErr {
		style = lipgloss.NewStyle().Foreground(p.Error)
	}

	left := style.Render(m.status)
	right := lipgloss.NewStyle().Foreground(p.Dim).Render(m.contextualHelp())

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		return left
	}
	return left + strings.Repeat(" ", padding) + right
}

func (m *Model) contextualHelp() string {
	switch m.mode {
	case modeSearch:
		return "type to filter live • Enter apply • Esc clear"
	case modeConfirmDeleteTask, modeConfirmDeleteProject:
		return "y confirm • n/Esc cancel"
	case modeNormal:
	default:
		return "Enter confirm • Esc cancel"
	}

	switch m.focus {
	case focusSidebar:
		return "Enter select • a new project • r rename • d delete • Tab tasks • ? help"
	case focusSubtasks:
		return "j/k move • x/Enter toggle • a add • d delete • o back • ? help"
	default:
		return "a add • x done • p pomodoro • v calendar • / search • ? help • q quit"
	}
}

func (m *Model) renderHelpOverlay(width int) string {
	p := m.palette
	section := lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	line := lipgloss.NewStyle().Foreground(p.Foreground)

	rows := []string{
		lipgloss.NewStyle().Bold(true).Render("Keys"),
		"",
		section.Render("Global"),
		line.Render("  Tab focus • j/k navigate • / search • f cycle filter • v list/calendar"),
		line.Render("  t theme • z focus mode • - sidebar • , settings • y/Y export JSON/CSV • q quit"),
		"",
		section.Render("Tasks"),
		line.Render("  a add • e title • i description • w due date • g tags • m project"),
		line.Render("  x complete/reopen • c cycle status • 1/2/3 priority • J/K reorder • d delete"),
		line.Render("  o subtasks • Enter expand"),
		"",
		section.Render("Pomodoro"),
		line.Render("  p start on selected task • Space pause/resume • b break • R reset"),
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(1, 2).
		Width(width).
		Render(strings.Join(rows, "\n"))
}

func (m *Model) paneTitle(text string, active bool) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(m.palette.Dim)
	if active {
		style = style.Foreground(m.palette.Primary)
	}
	return style.Render(text)
}

func (m *Model) cursorFor(pane focusPane, index int) string {
	current := map[focusPane]int{
		focusSidebar:  m.sideCursor,
		focusTasks:    m.taskCursor,
		focusSubtasks: m.subCursor,
	}[pane]
	if m.focus == pane && current == index {
		return "▸"
	}
	return " "
}

func (m *Model) highlight(line string, selected bool) string {
	if !selected {
		return line
	}
	return lipgloss.NewStyle().Bold(true).Foreground(m.palette.Foreground).Background(m.palette.Selection).Render(line)
}

func filterLabel(f model.Filter) string {
	switch f {
	case model.FilterToday:
		return "Today"
	case model.FilterUpcoming:
		return "Upcoming"
	case model.FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}
