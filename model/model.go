package model

import "time"

// Filter is a named query lens applied on top of project scoping and search.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterToday     Filter = "today"
	FilterUpcoming  Filter = "upcoming"
	FilterCompleted Filter = "completed"
)

// Priority of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Status of a task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// DateLayout is the calendar-date format used for due dates.
// Due dates carry no time component; lexicographic comparison of
// two dates in this layout matches chronological order.
const DateLayout = "2006-01-02"

// InboxProjectID is the sentinel project that always exists and
// receives tasks orphaned by project deletion.
const InboxProjectID = "inbox"

// Subtask is a child checklist item of a task. It never exists
// outside its parent task.
type Subtask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Task is a trackable unit of work.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	Priority    Priority   `json:"priority"`
	Status      Status     `json:"status"`
	DueDate     string     `json:"dueDate,omitempty"`
	Tags        []string   `json:"tags"`
	ProjectID   string     `json:"projectId"`
	Subtasks    []Subtask  `json:"subtasks"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CompletedAt *time.Time `json:"completedAt"`
}

// Project is a named grouping for tasks.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"createdAt"`
}

// TaskState is the full persisted state of the task store.
type TaskState struct {
	Tasks           []Task    `json:"tasks"`
	Projects        []Project `json:"projects"`
	ActiveFilter    Filter    `json:"activeFilter,omitempty"`
	ActiveProjectID string    `json:"activeProjectId,omitempty"`
	SearchQuery     string    `json:"searchQuery,omitempty"`
}

// Theme is the requested appearance mode. System defers to the
// host environment's color-scheme preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// ViewMode selects the main content presentation.
type ViewMode string

const (
	ViewList     ViewMode = "list"
	ViewCalendar ViewMode = "calendar"
)

// PomodoroSettings holds session durations in minutes.
type PomodoroSettings struct {
	WorkDuration  int `json:"workDuration"`
	BreakDuration int `json:"breakDuration"`
}

// Pomodoro is the live countdown state of the focus timer.
type Pomodoro struct {
	IsRunning    bool   `json:"isRunning"`
	TimeLeft     int    `json:"timeLeft"`
	TotalTime    int    `json:"totalTime"`
	IsBreak      bool   `json:"isBreak"`
	ActiveTaskID string `json:"activeTaskId,omitempty"`
}

// AppState is the full session-store state. Only the subset in
// AppPersist survives restarts.
type AppState struct {
	Theme             Theme            `json:"theme"`
	FocusMode         bool             `json:"focusMode"`
	SidebarCollapsed  bool             `json:"sidebarCollapsed"`
	ViewMode          ViewMode         `json:"viewMode"`
	SettingsOpen      bool             `json:"settingsOpen"`
	ProjectCreateOpen bool             `json:"projectCreateOpen"`
	PomodoroSettings  PomodoroSettings `json:"pomodoroSettings"`
	Pomodoro          Pomodoro         `json:"pomodoro"`
}

// AppPersist is the persisted subset of AppState. The live countdown
// and dialog flags are deliberately excluded.
type AppPersist struct {
	Theme            Theme            `json:"theme"`
	FocusMode        bool             `json:"focusMode"`
	SidebarCollapsed bool             `json:"sidebarCollapsed"`
	PomodoroSettings PomodoroSettings `json:"pomodoroSettings"`
}

const (
	DefaultWorkMinutes  = 25
	DefaultBreakMinutes = 5
)

// DefaultPomodoro returns the idle 25-minute work configuration.
func DefaultPomodoro() Pomodoro {
	return Pomodoro{
		IsRunning: false,
		TimeLeft:  DefaultWorkMinutes * 60,
		TotalTime: DefaultWorkMinutes * 60,
		IsBreak:   false,
	}
}

// DefaultProjects returns the three projects present at first run.
func DefaultProjects() []Project {
	now := time.Now().UTC()
	return []Project{
		{ID: InboxProjectID, Name: "Inbox", Color: "#64748b", Icon: "inbox", CreatedAt: now},
		{ID: "personal", Name: "Personal", Color: "#8b5cf6", Icon: "user", CreatedAt: now},
		{ID: "work", Name: "Work", Color: "#0ea5e9", Icon: "briefcase", CreatedAt: now},
	}
}

// NewTaskState returns an initialized first-run task state.
func NewTaskState() TaskState {
	return TaskState{
		Tasks:        []Task{},
		Projects:     DefaultProjects(),
		ActiveFilter: FilterAll,
	}
}

// NewAppState returns an initialized first-run session state.
func NewAppState() AppState {
	return AppState{
		Theme:    ThemeSystem,
		ViewMode: ViewList,
		PomodoroSettings: PomodoroSettings{
			WorkDuration:  DefaultWorkMinutes,
			BreakDuration: DefaultBreakMinutes,
		},
		Pomodoro: DefaultPomodoro(),
	}
}

// Persist extracts the restart-surviving subset of the session state.
func (s AppState) Persist() AppPersist {
	return AppPersist{
		Theme:            s.Theme,
		FocusMode:        s.FocusMode,
		SidebarCollapsed: s.SidebarCollapsed,
		PomodoroSettings: s.PomodoroSettings,
	}
}

// FromPersist rebuilds a full session state from a persisted subset.
// Everything excluded from persistence comes back at defaults.
func FromPersist(p AppPersist) AppState {
	state := NewAppState()
	if p.Theme != "" {
		state.Theme = p.Theme
	}
	state.FocusMode = p.FocusMode
	state.SidebarCollapsed = p.SidebarCollapsed
	if p.PomodoroSettings.WorkDuration > 0 {
		state.PomodoroSettings.WorkDuration = p.PomodoroSettings.WorkDuration
	}
	if p.PomodoroSettings.BreakDuration > 0 {
		state.PomodoroSettings.BreakDuration = p.PomodoroSettings.BreakDuration
	}
	return state
}
