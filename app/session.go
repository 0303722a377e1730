package app

import "focusdo/model"

// Notifier delivers a best-effort user notification. Delivery failures
// are the implementation's problem; the store never depends on them.
type Notifier interface {
	Notify(title, body string)
}

// SessionStore owns UI-adjacent session state: theme, view mode,
// dialog visibility, and the Pomodoro countdown. The countdown is a
// pure state machine; an external scheduler calls Tick once per second
// while the timer runs. The store holds no timer of its own.
type SessionStore struct {
	state    model.AppState
	notifier Notifier
	onChange func()
}

// NewSessionStore creates a store seeded with the provided state.
func NewSessionStore(state model.AppState) *SessionStore {
	if state.ViewMode == "" {
		state.ViewMode = model.ViewList
	}
	if state.Theme == "" {
		state.Theme = model.ThemeSystem
	}
	if state.PomodoroSettings.WorkDuration <= 0 {
		state.PomodoroSettings.WorkDuration = model.DefaultWorkMinutes
	}
	if state.PomodoroSettings.BreakDuration <= 0 {
		state.PomodoroSettings.BreakDuration = model.DefaultBreakMinutes
	}
	if state.Pomodoro.TotalTime <= 0 {
		state.Pomodoro = model.DefaultPomodoro()
	}
	return &SessionStore{state: state}
}

// SetNotifier installs the session-end notification channel.
// A nil notifier silently drops notifications.
func (s *SessionStore) SetNotifier(n Notifier) {
	s.notifier = n
}

// OnChange registers a hook fired after every mutation.
func (s *SessionStore) OnChange(fn func()) {
	s.onChange = fn
}

func (s *SessionStore) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

// State returns a copy of the current session state.
func (s *SessionStore) State() model.AppState {
	return s.state
}

// SetTheme stores the requested appearance mode. Resolution to a
// concrete light/dark appearance happens in the presentation layer,
// which re-resolves system mode whenever it redraws.
func (s *SessionStore) SetTheme(theme model.Theme) {
	s.state.Theme = theme
	s.changed()
}

// ToggleFocusMode flips distraction-free mode.
func (s *SessionStore) ToggleFocusMode() {
	s.state.FocusMode = !s.state.FocusMode
	s.changed()
}

// ToggleSidebar flips the sidebar collapsed state.
func (s *SessionStore) ToggleSidebar() {
	s.state.SidebarCollapsed = !s.state.SidebarCollapsed
	s.changed()
}

// SetViewMode switches between the list and calendar presentations.
func (s *SessionStore) SetViewMode(mode model.ViewMode) {
	s.state.ViewMode = mode
	s.changed()
}

// SetSettingsOpen shows or hides the settings dialog.
func (s *SessionStore) SetSettingsOpen(open bool) {
	s.state.SettingsOpen = open
	s.changed()
}

// SetProjectCreateOpen shows or hides the new-project dialog.
func (s *SessionStore) SetProjectCreateOpen(open bool) {
	s.state.ProjectCreateOpen = open
	s.changed()
}

// PomodoroSettingsUpdate is a partial settings mutation in minutes.
type PomodoroSettingsUpdate struct {
	WorkDuration  *int
	BreakDuration *int
}

// UpdatePomodoroSettings merges new durations into the settings.
// Running sessions keep their original duration.
func (s *SessionStore) UpdatePomodoroSettings(upd PomodoroSettingsUpdate) {
	if upd.WorkDuration != nil {
		s.state.PomodoroSettings.WorkDuration = *upd.WorkDuration
	}
	if upd.BreakDuration != nil {
		s.state.PomodoroSettings.BreakDuration = *upd.BreakDuration
	}
	s.changed()
}

// StartPomodoro begins a work session focused on the given task,
// unconditionally replacing any session already in flight. A duration
// of 0 means the configured work duration.
func (s *SessionStore) StartPomodoro(taskID string, duration int) {
	if duration <= 0 {
		duration = s.state.PomodoroSettings.WorkDuration * 60
	}
	s.state.Pomodoro = model.Pomodoro{
		IsRunning:    true,
		TimeLeft:     duration,
		TotalTime:    duration,
		IsBreak:      false,
		ActiveTaskID: taskID,
	}
	s.changed()
}

// StartBreak begins a break session; no task is focused during breaks.
// A duration of 0 means the configured break duration.
func (s *SessionStore) StartBreak(duration int) {
	if duration <= 0 {
		duration = s.state.PomodoroSettings.BreakDuration * 60
	}
	s.state.Pomodoro = model.Pomodoro{
		IsRunning:    true,
		TimeLeft:     duration,
		TotalTime:    duration,
		IsBreak:      true,
		ActiveTaskID: "",
	}
	s.changed()
}

// PausePomodoro suspends the countdown without touching TimeLeft.
func (s *SessionStore) PausePomodoro() {
	s.state.Pomodoro.IsRunning = false
	s.changed()
}

// ResumePomodoro continues a paused countdown.
func (s *SessionStore) ResumePomodoro() {
	s.state.Pomodoro.IsRunning = true
	s.changed()
}

// ResetPomodoro returns the timer to the idle default configuration.
func (s *SessionStore) ResetPomodoro() {
	s.state.Pomodoro = model.DefaultPomodoro()
	s.changed()
}

// TickPomodoro advances the countdown by one second. The decrement
// that reaches zero stops the timer and emits a one-shot completion
// notification; a tick at zero clamps and never underflows. The store
// does not auto-transition into a break or restart.
func (s *SessionStore) TickPomodoro() {
	p := &s.state.Pomodoro
	if p.TimeLeft <= 0 {
		p.TimeLeft = 0
		p.IsRunning = false
		s.changed()
		return
	}

	p.TimeLeft--
	if p.TimeLeft == 0 {
		p.IsRunning = false
		if s.notifier != nil {
			if p.IsBreak {
				s.notifier.Notify("Break time is over!", "Time to get back to work.")
			} else {
				s.notifier.Notify("Pomodoro completed!", "Great job! Take a short break.")
			}
		}
	}
	s.changed()
}
