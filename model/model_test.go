package model

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestTaskSerializationRoundTrip(t *testing.T) {
	now := time.Date(2026, 8, 19, 12, 0, 0, 0, time.UTC)
	done := now.Add(time.Hour)
	task := Task{
		ID:          "t1",
		Title:       "write tests",
		Description: "cover the round trip",
		ImageURL:    "https://example.com/cover.png",
		Priority:    PriorityHigh,
		Status:      StatusCompleted,
		DueDate:     "2026-08-20",
		Tags:        []string{"tests", "go"},
		ProjectID:   "work",
		Subtasks: []Subtask{
			{ID: "s1", Title: "table cases", Completed: true},
			{ID: "s2", Title: "edge cases", Completed: false},
		},
		CreatedAt:   now,
		UpdatedAt:   done,
		CompletedAt: &done,
	}

	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var got Task
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !reflect.DeepEqual(task, got) {
		t.Fatalf("round-trip mismatch\nwant=%+v\ngot=%+v", task, got)
	}
}

func TestNewTaskStateHasThreeDefaultProjects(t *testing.T) {
	state := NewTaskState()

	if len(state.Tasks) != 0 {
		t.Fatalf("expected no tasks at first run, got %d", len(state.Tasks))
	}
	if state.ActiveFilter != FilterAll {
		t.Fatalf("expected default filter %q, got %q", FilterAll, state.ActiveFilter)
	}

	wantIDs := []string{"inbox", "personal", "work"}
	if len(state.Projects) != len(wantIDs) {
		t.Fatalf("expected %d default projects, got %d", len(wantIDs), len(state.Projects))
	}
	for i, id := range wantIDs {
		if state.Projects[i].ID != id {
			t.Fatalf("expected project %d to be %q, got %q", i, id, state.Projects[i].ID)
		}
		if state.Projects[i].Color == "" || state.Projects[i].Icon == "" {
			t.Fatalf("default project %q missing color or icon", id)
		}
	}
}

func TestNewAppStateDefaults(t *testing.T) {
	state := NewAppState()

	if state.Theme != ThemeSystem {
		t.Fatalf("expected system theme, got %q", state.Theme)
	}
	if state.ViewMode != ViewList {
		t.Fatalf("expected list view, got %q", state.ViewMode)
	}
	if state.PomodoroSettings.WorkDuration != DefaultWorkMinutes || state.PomodoroSettings.BreakDuration != DefaultBreakMinutes {
		t.Fatalf("unexpected pomodoro settings: %+v", state.PomodoroSettings)
	}
	if state.Pomodoro.IsRunning {
		t.Fatal("expected timer to start idle")
	}
	if state.Pomodoro.TimeLeft != DefaultWorkMinutes*60 || state.Pomodoro.TotalTime != DefaultWorkMinutes*60 {
		t.Fatalf("expected 25-minute default session, got %+v", state.Pomodoro)
	}
}

func TestPersistExcludesLiveCountdownAndDialogs(t *testing.T) {
	state := NewAppState()
	state.Theme = ThemeDark
	state.FocusMode = true
	state.SidebarCollapsed = true
	state.ViewMode = ViewCalendar
	state.SettingsOpen = true
	state.ProjectCreateOpen = true
	state.PomodoroSettings = PomodoroSettings{WorkDuration: 50, BreakDuration: 10}
	state.Pomodoro = Pomodoro{IsRunning: true, TimeLeft: 42, TotalTime: 3000, ActiveTaskID: "t1"}

	restored := FromPersist(state.Persist())

	if restored.Theme != ThemeDark || !restored.FocusMode || !restored.SidebarCollapsed {
		t.Fatalf("persisted fields lost: %+v", restored)
	}
	if restored.PomodoroSettings != state.PomodoroSettings {
		t.Fatalf("pomodoro settings lost: %+v", restored.PomodoroSettings)
	}
	if restored.ViewMode != ViewList {
		t.Fatalf("view mode should reset to default, got %q", restored.ViewMode)
	}
	if restored.SettingsOpen || restored.ProjectCreateOpen {
		t.Fatal("dialog flags must not survive a restart")
	}
	if !reflect.DeepEqual(restored.Pomodoro, DefaultPomodoro()) {
		t.Fatalf("live countdown must reset to idle default, got %+v", restored.Pomodoro)
	}
}
