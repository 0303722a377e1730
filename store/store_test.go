package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"focusdo/model"
)

func sampleTaskState(label string) model.TaskState {
	now := time.Date(2026, 8, 19, 12, 30, 0, 0, time.UTC)
	done := now.Add(time.Hour)
	return model.TaskState{
		Tasks: []model.Task{{
			ID:          "task-" + label,
			Title:       "Task " + label,
			Description: "sample",
			Priority:    model.PriorityMedium,
			Status:      model.StatusCompleted,
			DueDate:     "2026-08-20",
			Tags:        []string{"a", "b"},
			ProjectID:   model.InboxProjectID,
			Subtasks:    []model.Subtask{{ID: "sub-" + label, Title: "Sub " + label}},
			CreatedAt:   now,
			UpdatedAt:   done,
			CompletedAt: &done,
		}},
		Projects: []model.Project{{
			ID:        model.InboxProjectID,
			Name:      "Inbox",
			Color:     "#64748b",
			Icon:      "inbox",
			CreatedAt: now,
		}},
		ActiveFilter:    model.FilterCompleted,
		ActiveProjectID: "",
		SearchQuery:     "Task",
	}
}

func samplePersist() model.AppPersist {
	return model.AppPersist{
		Theme:            model.ThemeDark,
		FocusMode:        true,
		SidebarCollapsed: true,
		PomodoroSettings: model.PomodoroSettings{WorkDuration: 50, BreakDuration: 10},
	}
}

func TestLoadTasksMissingFileReturnsFirstRunState(t *testing.T) {
	path := filepath.Join(t.TempDir(), TasksFile)

	state, err := LoadTasks(path)
	if err != nil {
		t.Fatalf("load missing file failed: %v", err)
	}
	if len(state.Tasks) != 0 {
		t.Fatalf("expected no tasks, got %d", len(state.Tasks))
	}
	if len(state.Projects) != 3 || state.Projects[0].ID != model.InboxProjectID {
		t.Fatalf("expected default projects, got %+v", state.Projects)
	}
}

func TestSaveThenLoadTasks(t *testing.T) {
	path := filepath.Join(t.TempDir(), TasksFile)
	want := sampleTaskState("a")

	if err := SaveTasks(path, want); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := LoadTasks(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("save/load mismatch\nwant=%+v\ngot=%+v", want, got)
	}
}

func TestSaveWritesVersionedEnvelope(t *testing.T) {
	path := filepath.Join(t.TempDir(), TasksFile)
	if err := SaveTasks(path, sampleTaskState("a")); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var env struct {
		State   json.RawMessage `json:"state"`
		Version int             `json:"version"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("envelope decode failed: %v", err)
	}
	if env.Version != SchemaVersion {
		t.Fatalf("expected version %d, got %d", SchemaVersion, env.Version)
	}
	if env.State == nil {
		t.Fatal("envelope missing state")
	}
}

func TestLoadRejectsNewerVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), TasksFile)
	blob := `{"state": {"tasks": [], "projects": []}, "version": 99}` + "\n"
	if err := os.WriteFile(path, []byte(blob), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if _, err := LoadTasks(path); err == nil {
		t.Fatal("expected an error for a newer schema version")
	}
}

func TestSaveKeepsPreviousBlobAsBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), TasksFile)
	initial := sampleTaskState("old")
	updated := sampleTaskState("new")

	if err := SaveTasks(path, initial); err != nil {
		t.Fatalf("initial save failed: %v", err)
	}
	if err := SaveTasks(path, updated); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	gotLatest, err := LoadTasks(path)
	if err != nil {
		t.Fatalf("load latest failed: %v", err)
	}
	if !reflect.DeepEqual(updated, gotLatest) {
		t.Fatal("latest state mismatch")
	}

	gotBackup, err := LoadTasks(path + ".bak")
	if err != nil {
		t.Fatalf("load backup failed: %v", err)
	}
	if !reflect.DeepEqual(initial, gotBackup) {
		t.Fatal("backup should hold the previous state")
	}
}

func TestSaveRotatesTimestampedBackupsAndPrunes(t *testing.T) {
	path := filepath.Join(t.TempDir(), TasksFile)

	// The first save has nothing to back up; each of the next 12
	// adds a rotating member, trimmed down to the cap.
	for i := 0; i < 13; i++ {
		if err := SaveTasks(path, sampleTaskState("a")); err != nil {
			t.Fatalf("save %d failed: %v", i, err)
		}
	}

	rotating, err := filepath.Glob(path + ".bak.*")
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	if len(rotating) != maxRotatingBackups {
		t.Fatalf("expected %d rotating backups, got %d", maxRotatingBackups, len(rotating))
	}
	if _, err := os.Stat(path + ".bak"); err != nil {
		t.Fatalf("latest backup missing: %v", err)
	}
}

func TestRecoveryScansRotatingBackupsWhenLatestIsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), TasksFile)
	want := sampleTaskState("good")

	if err := SaveTasks(path, want); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := SaveTasks(path, want); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	// Both the slot and the latest backup are damaged; only the
	// rotating member still holds a valid blob.
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt write failed: %v", err)
	}
	if err := os.WriteFile(path+".bak", []byte("{also not json"), 0o644); err != nil {
		t.Fatalf("corrupt backup write failed: %v", err)
	}

	got, msg := LoadTasksWithRecovery(path)
	if !reflect.DeepEqual(want, got) {
		t.Fatal("expected state recovered from a rotating backup")
	}
	if !strings.Contains(msg, ".bak.") {
		t.Fatalf("message should name the rotating backup used, got %q", msg)
	}
}

func TestLoadTasksWithRecoveryFallsBackToBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), TasksFile)
	want := sampleTaskState("good")

	if err := SaveTasks(path, want); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := SaveTasks(path, want); err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt write failed: %v", err)
	}

	got, msg := LoadTasksWithRecovery(path)
	if !reflect.DeepEqual(want, got) {
		t.Fatal("expected state recovered from backup")
	}
	if !strings.Contains(msg, "Recovered") {
		t.Fatalf("expected a recovery message, got %q", msg)
	}

	// The corrupt file was moved aside, not left in place.
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("corrupt file should have been moved aside")
	}
	moved, err := filepath.Glob(path[:len(path)-len(".json")] + ".corrupt-*")
	if err != nil || len(moved) != 1 {
		t.Fatalf("expected one corrupt file moved aside, got %v (%v)", moved, err)
	}
}

func TestLoadTasksWithRecoveryWithoutBackupStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), TasksFile)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt write failed: %v", err)
	}

	got, msg := LoadTasksWithRecovery(path)
	if len(got.Tasks) != 0 || len(got.Projects) != 3 {
		t.Fatalf("expected first-run defaults, got %+v", got)
	}
	if msg == "" {
		t.Fatal("expected a user-facing message")
	}
}

func TestSaveThenLoadAppPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), AppFile)
	want := samplePersist()

	if err := SaveApp(path, want); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := LoadApp(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got != want {
		t.Fatalf("save/load mismatch\nwant=%+v\ngot=%+v", want, got)
	}
}

func TestLoadAppMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), AppFile)

	got, err := LoadApp(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Theme != model.ThemeSystem {
		t.Fatalf("expected system theme default, got %q", got.Theme)
	}
	if got.PomodoroSettings.WorkDuration != model.DefaultWorkMinutes {
		t.Fatalf("expected default work duration, got %d", got.PomodoroSettings.WorkDuration)
	}
}

func TestLoadAppNormalizesBlankFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), AppFile)
	blob := `{"state": {"theme": "", "pomodoroSettings": {"workDuration": 0, "breakDuration": 0}}, "version": 1}`
	if err := os.WriteFile(path, []byte(blob), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got, err := LoadApp(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Theme != model.ThemeSystem {
		t.Fatalf("blank theme should normalize to system, got %q", got.Theme)
	}
	if got.PomodoroSettings.WorkDuration != model.DefaultWorkMinutes || got.PomodoroSettings.BreakDuration != model.DefaultBreakMinutes {
		t.Fatalf("zero durations should normalize to defaults, got %+v", got.PomodoroSettings)
	}
}
